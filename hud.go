package main

import (
	"fmt"

	"github.com/milk9111/quarterturn/common"
	"github.com/milk9111/quarterturn/ecs"
	"go.uber.org/zap"
)

// messageTicks is how long an on-screen message stays up (1.5 s).
const messageTicks = common.TPS * 3 / 2

const maxMessages = 6

type hudMessage struct {
	text string
	ttl  int
}

// messageLog is the short-lived on-screen message list, newest last.
type messageLog struct {
	items []hudMessage
}

func (l *messageLog) Push(text string) {
	l.items = append(l.items, hudMessage{text: text, ttl: messageTicks})
	if len(l.items) > maxMessages {
		l.items = l.items[len(l.items)-maxMessages:]
	}
}

// Tick ages every message by one frame and drops the expired ones.
func (l *messageLog) Tick() {
	kept := l.items[:0]
	for _, m := range l.items {
		m.ttl--
		if m.ttl > 0 {
			kept = append(kept, m)
		}
	}
	l.items = kept
}

func (l *messageLog) Lines() []string {
	lines := make([]string, 0, len(l.items))
	for _, m := range l.items {
		lines = append(lines, m.text)
	}
	return lines
}

// eventMessage turns a frame event into HUD text. Progress and depth events
// are too frequent for the screen and only get logged.
func eventMessage(evt ecs.Event) (string, bool) {
	switch evt.Kind {
	case ecs.EventRotationStarted:
		return fmt.Sprintf("Turning to %.0f°", common.SnapDegrees(evt.Value)), true
	case ecs.EventRotationFinished:
		return fmt.Sprintf("Facing %.0f°", evt.Value), true
	case ecs.EventRotationDenied:
		return "Turn blocked", true
	case ecs.EventDrop:
		return "Drop", true
	default:
		return "", false
	}
}

func logEvent(logger *zap.Logger, evt ecs.Event) {
	fields := []zap.Field{
		zap.String("kind", string(evt.Kind)),
		zap.Stringer("entity", evt.Entity),
		zap.Float64("value", evt.Value),
	}
	if evt.Message != "" {
		fields = append(fields, zap.String("message", evt.Message))
	}
	switch evt.Kind {
	case ecs.EventRotationProgress, ecs.EventDepthCorrected:
		logger.Debug("event", fields...)
	default:
		logger.Info("event", fields...)
	}
}

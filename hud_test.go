package main

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/milk9111/quarterturn/ecs"
)

func TestMessageLogExpires(t *testing.T) {
	var l messageLog
	l.Push("first")
	for i := 0; i < 30; i++ {
		l.Tick()
	}
	l.Push("second")

	if diff := cmp.Diff([]string{"first", "second"}, l.Lines()); diff != "" {
		t.Fatalf("lines mismatch (-want +got):\n%s", diff)
	}

	for i := 0; i < messageTicks-30; i++ {
		l.Tick()
	}
	if diff := cmp.Diff([]string{"second"}, l.Lines()); diff != "" {
		t.Fatalf("after first expiry (-want +got):\n%s", diff)
	}

	for i := 0; i < 30; i++ {
		l.Tick()
	}
	if len(l.Lines()) != 0 {
		t.Fatalf("expected empty log, got %v", l.Lines())
	}
}

func TestMessageLogCapsLength(t *testing.T) {
	var l messageLog
	for i := 0; i < maxMessages+3; i++ {
		l.Push(string(rune('a' + i)))
	}
	lines := l.Lines()
	if len(lines) != maxMessages || lines[0] != "d" {
		t.Fatalf("unexpected lines %v", lines)
	}
}

func TestEventMessage(t *testing.T) {
	cases := []struct {
		evt    ecs.Event
		want   string
		wantOK bool
	}{
		{ecs.Event{Kind: ecs.EventRotationStarted, Value: 450}, "Turning to 90°", true},
		{ecs.Event{Kind: ecs.EventRotationFinished, Value: 270}, "Facing 270°", true},
		{ecs.Event{Kind: ecs.EventRotationDenied, Value: 90}, "Turn blocked", true},
		{ecs.Event{Kind: ecs.EventRotationProgress, Value: 3}, "", false},
		{ecs.Event{Kind: ecs.EventDepthCorrected, Value: 3}, "", false},
	}
	for _, c := range cases {
		t.Run(string(c.evt.Kind), func(t *testing.T) {
			got, ok := eventMessage(c.evt)
			if got != c.want || ok != c.wantOK {
				t.Fatalf("got %q %v, want %q %v", got, ok, c.want, c.wantOK)
			}
		})
	}
}

package ecs

// EventKind identifies gameplay events raised during a frame.
type EventKind string

const (
	EventRotationStarted  EventKind = "rotation_started"
	EventRotationProgress EventKind = "rotation_progress"
	EventRotationFinished EventKind = "rotation_finished"
	EventRotationDenied   EventKind = "rotation_denied"
	EventDepthCorrected   EventKind = "depth_corrected"
	EventDrop             EventKind = "drop"
)

// Event is a frame-local notification. Value carries the kind-specific number
// (target yaw, remaining delta, corrected coordinate).
type Event struct {
	Kind    EventKind
	Entity  Entity
	Message string
	Value   float64
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Len reports the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

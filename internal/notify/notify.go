// Package notify delivers task event notifications to chat platforms.
package notify

import "context"

// Actions describe what happened to a task.
const (
	ActionCreated  = "created"
	ActionStatus   = "status"
	ActionAssigned = "assigned"
)

// Event is one task change worth announcing.
type Event struct {
	Action    string // one of the Action constants
	TaskID    uint
	TaskTitle string
	Detail    string // e.g. "Open -> InProgress"
}

// Notifier delivers events to a chat platform. Implementations send
// synchronously; callers decide whether a failure matters.
type Notifier interface {
	Notify(ctx context.Context, ev Event) error
}

// Nop is a Notifier that discards every event.
type Nop struct{}

// Notify implements Notifier.
func (Nop) Notify(context.Context, Event) error { return nil }

// Multi fans an event out to several notifiers. Every notifier is
// attempted; the first error is returned.
type Multi []Notifier

// Notify implements Notifier.
func (m Multi) Notify(ctx context.Context, ev Event) error {
	var first error
	for _, n := range m {
		if err := n.Notify(ctx, ev); err != nil && first == nil {
			first = err
		}
	}
	return first
}

package transport

// EventType identifies a refresh coordination step.
type EventType string

const (
	EventRefreshStarted   EventType = "refresh_started"
	EventWaiterQueued     EventType = "waiter_queued"
	EventWaiterResolved   EventType = "waiter_resolved"
	EventRefreshSucceeded EventType = "refresh_succeeded"
	EventRefreshFailed    EventType = "refresh_failed"
	EventRedirected       EventType = "redirected"
)

// Event reports a refresh coordination step. Seq identifies a queued waiter.
type Event struct {
	Type EventType
	Seq  uint64
	Err  error
}

// Listener observes coordination events.
type Listener func(event Event)

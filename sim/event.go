package sim

// An eventState tracks the lifecycle of a scheduled event.
type eventState int

const (
	statePending eventState = iota
	stateCancelled
	stateExecuted
)

// An event is a callback bound to a future virtual time. Events are ordered
// by (fireTime, seq); seq is assigned in scheduling order so that events
// with the same fire time execute first-scheduled-first.
type event struct {
	fireTime VTimeInNano
	seq      uint64
	fn       func()
	state    eventState
}

// An EventHandle refers to a scheduled event and can be used to cancel it or
// to query its lifecycle state. The zero handle refers to no event and reads
// as expired.
type EventHandle struct {
	evt *event
}

// IsPending returns true if the referenced event is still waiting to fire.
func (h EventHandle) IsPending() bool {
	return h.evt != nil && h.evt.state == statePending
}

// IsExpired returns true if the referenced event has already fired or has
// been cancelled. Querying a zero handle is safe and reports expired.
func (h EventHandle) IsExpired() bool {
	return !h.IsPending()
}

// TimeTeller can be used to read the current virtual time.
type TimeTeller interface {
	Now() VTimeInNano
}

// Scheduler can be used to schedule and cancel future callbacks. Client
// state machines should depend on this interface rather than on the
// concrete Engine.
type Scheduler interface {
	TimeTeller

	ScheduleAt(t VTimeInNano, fn func()) (EventHandle, error)
	ScheduleAfter(d VTimeInNano, fn func()) (EventHandle, error)
	Cancel(h EventHandle)
}

// Named is anything that carries a name, used to register models with
// simulations, monitors, and tracers.
type Named interface {
	Name() string
}

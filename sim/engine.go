package sim

import (
	"fmt"
	"sync"
)

// An Engine drives one discrete-event simulation. It owns the virtual
// clock and the event queue, and it executes scheduled callbacks one at a
// time in (fireTime, scheduling order). Exactly one callback runs at a
// time and runs to completion, so callbacks may mutate shared model state
// without synchronization.
//
// Each Engine is fully independent. Creating one engine per test allows
// simulations to run in parallel within a process without
// cross-contamination.
type Engine struct {
	HookableBase

	timeLock sync.RWMutex
	now      VTimeInNano

	queue *eventQueue

	scheduleLock sync.Mutex
	nextSeq      uint64

	runStateLock  sync.Mutex
	running       bool
	stopRequested bool
	stopAt        VTimeInNano
	stopAtActive  bool

	isPaused     bool
	isPausedLock sync.Mutex
	pauseLock    sync.Mutex
}

// NewEngine creates an Engine with an empty queue and the clock at zero.
func NewEngine() *Engine {
	e := new(Engine)
	e.queue = newEventQueue()
	return e
}

// Now returns the current virtual time. Inside a callback it reads exactly
// the fire time of the event being executed.
func (e *Engine) Now() VTimeInNano {
	e.timeLock.RLock()
	t := e.now
	e.timeLock.RUnlock()
	return t
}

func (e *Engine) writeNow(t VTimeInNano) {
	e.timeLock.Lock()
	e.now = t
	e.timeLock.Unlock()
}

// ScheduleAt registers fn to run when the virtual clock reaches t. It
// returns ErrInvalidTime if t is before the current time; a fire time is
// never clamped.
func (e *Engine) ScheduleAt(t VTimeInNano, fn func()) (EventHandle, error) {
	if fn == nil {
		panic("sim: scheduling a nil callback")
	}

	if t < e.Now() {
		return EventHandle{}, ErrInvalidTime
	}

	e.scheduleLock.Lock()
	e.nextSeq++
	evt := &event{
		fireTime: t,
		seq:      e.nextSeq,
		fn:       fn,
	}
	e.scheduleLock.Unlock()

	e.queue.Push(evt)

	return EventHandle{evt: evt}, nil
}

// ScheduleAfter registers fn to run after d has passed on the virtual
// clock. A zero duration schedules for the current time; the event still
// honors FIFO order among same-time events. Negative durations return
// ErrInvalidDuration.
func (e *Engine) ScheduleAfter(d VTimeInNano, fn func()) (EventHandle, error) {
	if d < 0 {
		return EventHandle{}, ErrInvalidDuration
	}

	return e.ScheduleAt(e.Now()+d, fn)
}

// Cancel marks the referenced event so it will never execute. Cancelling
// an already-executed, already-cancelled, or zero handle is a no-op;
// client modules routinely cancel speculatively.
func (e *Engine) Cancel(h EventHandle) {
	if h.evt == nil || h.evt.state != statePending {
		return
	}

	h.evt.state = stateCancelled
	e.queue.NoteCancelled()
}

// IsPending reports whether the referenced event is still waiting to fire.
func (e *Engine) IsPending(h EventHandle) bool {
	return h.IsPending()
}

// IsExpired reports whether the referenced event has fired or been
// cancelled.
func (e *Engine) IsExpired(h EventHandle) bool {
	return h.IsExpired()
}

// EventCount returns the number of live events waiting in the queue.
func (e *Engine) EventCount() int {
	return e.queue.Len()
}

// Run executes scheduled events in time order until the queue drains or a
// stop is requested. Callbacks may schedule further events, cancel pending
// ones, and request a stop. A second top-level Run while one is in
// progress returns ErrAlreadyRunning; scheduling calls from within a
// callback are, of course, fine.
func (e *Engine) Run() error {
	e.runStateLock.Lock()
	if e.running {
		e.runStateLock.Unlock()
		return ErrAlreadyRunning
	}
	e.running = true
	e.runStateLock.Unlock()

	defer func() {
		e.runStateLock.Lock()
		e.running = false
		e.stopRequested = false
		e.stopAtActive = false
		e.runStateLock.Unlock()
	}()

	for {
		e.pauseLock.Lock()

		evt := e.queue.Pop()
		if evt == nil {
			e.pauseLock.Unlock()
			return nil
		}

		if e.pastStopTime(evt.fireTime) {
			evt.state = stateCancelled
			e.pauseLock.Unlock()
			continue
		}

		now := e.Now()
		if evt.fireTime < now {
			panic(fmt.Sprintf(
				"sim: cannot run event in the past, evt @ %s, now %s",
				evt.fireTime, now,
			))
		}
		e.writeNow(evt.fireTime)
		evt.state = stateExecuted

		hookCtx := HookCtx{
			Domain: e,
			Pos:    HookPosBeforeEvent,
			Item:   EventHandle{evt: evt},
		}
		e.InvokeHook(hookCtx)

		evt.fn()

		hookCtx.Pos = HookPosAfterEvent
		e.InvokeHook(hookCtx)

		e.pauseLock.Unlock()

		if e.takeStopRequest() {
			return nil
		}
	}
}

func (e *Engine) pastStopTime(t VTimeInNano) bool {
	e.runStateLock.Lock()
	past := e.stopAtActive && t > e.stopAt
	e.runStateLock.Unlock()
	return past
}

func (e *Engine) takeStopRequest() bool {
	e.runStateLock.Lock()
	stop := e.stopRequested
	e.runStateLock.Unlock()
	return stop
}

// Stop requests the run loop to exit. It takes effect after the currently
// executing callback returns; it never preempts one mid-flight. Calling
// Stop while the engine is idle is a no-op.
func (e *Engine) Stop() {
	e.runStateLock.Lock()
	if e.running {
		e.stopRequested = true
	}
	e.runStateLock.Unlock()
}

// StopAt arranges for the run to halt once the clock would pass t. Events
// scheduled exactly at t still execute; events beyond t are dropped from
// the queue without executing. The deadline applies to the next (or
// current) run only. StopAt returns ErrInvalidTime if t is already in the
// past.
func (e *Engine) StopAt(t VTimeInNano) error {
	if t < e.Now() {
		return ErrInvalidTime
	}

	e.runStateLock.Lock()
	if !e.stopAtActive || t < e.stopAt {
		e.stopAt = t
		e.stopAtActive = true
	}
	e.runStateLock.Unlock()

	return nil
}

// Destroy drops all remaining events without executing them and resets the
// clock and the sequence counter, readying the engine for an independent
// run. Destroying a running engine is a programming error and returns
// ErrInvalidState. Destroy is idempotent.
func (e *Engine) Destroy() error {
	e.runStateLock.Lock()
	if e.running {
		e.runStateLock.Unlock()
		return ErrInvalidState
	}
	e.stopRequested = false
	e.stopAtActive = false
	e.runStateLock.Unlock()

	e.queue.Drain()
	e.writeNow(0)

	e.scheduleLock.Lock()
	e.nextSeq = 0
	e.scheduleLock.Unlock()

	return nil
}

// Pause prevents the engine from dispatching more events until Continue is
// called. The callback in flight, if any, still runs to completion.
func (e *Engine) Pause() {
	e.isPausedLock.Lock()
	defer e.isPausedLock.Unlock()

	if e.isPaused {
		return
	}

	e.pauseLock.Lock()
	e.isPaused = true
}

// Continue resumes event dispatching after a Pause.
func (e *Engine) Continue() {
	e.isPausedLock.Lock()
	defer e.isPausedLock.Unlock()

	if !e.isPaused {
		return
	}

	e.pauseLock.Unlock()
	e.isPaused = false
}

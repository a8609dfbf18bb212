package sim

import (
	"log"
	"reflect"
	"runtime"
)

// EventLogger is a hook that prints every event the engine dispatches,
// with its fire time and the name of the callback function.
type EventLogger struct {
	LogHookBase
}

// NewEventLogger returns an EventLogger that writes into the given logger.
func NewEventLogger(logger *log.Logger) *EventLogger {
	h := new(EventLogger)
	h.Logger = logger
	return h
}

// Func writes the event information into the logger.
func (h *EventLogger) Func(ctx HookCtx) {
	if ctx.Pos != HookPosBeforeEvent {
		return
	}

	handle, ok := ctx.Item.(EventHandle)
	if !ok || handle.evt == nil {
		return
	}

	evt := handle.evt
	h.Logger.Printf("%.9f, #%d, %s",
		evt.fireTime.ToSeconds(), evt.seq, callbackName(evt.fn))
}

func callbackName(fn func()) string {
	pc := reflect.ValueOf(fn).Pointer()
	f := runtime.FuncForPC(pc)
	if f == nil {
		return "unknown"
	}
	return f.Name()
}

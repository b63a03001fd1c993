package events

import (
	"context"
)

var Emit = func(ctx context.Context, name string, evt TurnEvent) {}

// EnableLogEmitter routes every event to the global logger.
func EnableLogEmitter() {
	Emit = func(ctx context.Context, name string, evt TurnEvent) {
		logTurnEvent(name, withSession(ctx, evt))
	}
}

func SetCustomEmitter(f func(ctx context.Context, name string, evt TurnEvent)) {
	if f == nil {
		Emit = func(context.Context, string, TurnEvent) {}
		return
	}
	Emit = func(ctx context.Context, name string, evt TurnEvent) {
		f(ctx, name, withSession(ctx, evt))
	}
}

func withSession(ctx context.Context, evt TurnEvent) TurnEvent {
	if evt.SessionKey == "" {
		if session := SessionFromContext(ctx); session != "" {
			evt.SessionKey = session
		}
	}
	return evt
}

package events

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func logTurnEvent(name string, event TurnEvent) {
	var e *zerolog.Event
	switch event.Type {
	case EventError:
		e = log.Error()
	case EventWarn:
		e = log.Warn()
	default:
		e = log.Info()
	}

	e = e.Str("event", name).Str("id", event.ID)
	if event.SessionKey != "" {
		e = e.Str("session", event.SessionKey)
	}
	for k, v := range event.Metadata {
		e = e.Str(k, v)
	}
	e.Msg(event.Message)
}

package events

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventInfo    EventType = "info"
	EventWarn    EventType = "warn"
	EventSuccess EventType = "success"
	EventError   EventType = "error"
)

const (
	ContextChanged = "events:context:changed"
	TurnStarted    = "events:turn:started"
	TurnDone       = "events:turn:done"
	TurnFailed     = "events:turn:failed"
	SessionReset   = "events:session:reset"
)

// TurnEvent is the payload emitted around settings changes and turns.
type TurnEvent struct {
	ID         string            `json:"id"`
	Type       EventType         `json:"type"`
	Message    string            `json:"message"`
	Timestamp  time.Time         `json:"timestamp"`
	SessionKey string            `json:"sessionKey,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

type contextKey string

const sessionContextKey contextKey = "artdirector/events/session"

// WithSession returns a derived context annotated with the given session key
// so event emitters can automatically scope payloads.
func WithSession(ctx context.Context, sessionKey string) context.Context {
	if strings.TrimSpace(sessionKey) == "" {
		return ctx
	}
	return context.WithValue(ctx, sessionContextKey, sessionKey)
}

// SessionFromContext extracts the session key associated with ctx.
func SessionFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(sessionContextKey).(string); ok {
		return v
	}
	return ""
}

func CreateTurnEvent(eventType EventType, message string) TurnEvent {
	return TurnEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Message:   message,
		Timestamp: time.Now(),
	}
}

func NewInfo(message string) TurnEvent {
	return CreateTurnEvent(EventInfo, message)
}

func NewWarn(message string) TurnEvent {
	return CreateTurnEvent(EventWarn, message)
}

func NewError(message string) TurnEvent {
	return CreateTurnEvent(EventError, message)
}

func NewSuccess(message string) TurnEvent {
	return CreateTurnEvent(EventSuccess, message)
}

// With returns a copy of the event carrying one more metadata entry.
func (e TurnEvent) With(key, value string) TurnEvent {
	meta := make(map[string]string, len(e.Metadata)+1)
	for k, v := range e.Metadata {
		meta[k] = v
	}
	meta[key] = value
	e.Metadata = meta
	return e
}

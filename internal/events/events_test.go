package events

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionContext(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, ctx, WithSession(ctx, "  "))
	assert.Equal(t, "", SessionFromContext(ctx))
	assert.Equal(t, "abc", SessionFromContext(WithSession(ctx, "abc")))
}

func TestSetCustomEmitter_FillsSession(t *testing.T) {
	t.Cleanup(func() { SetCustomEmitter(nil) })

	var got []TurnEvent
	SetCustomEmitter(func(_ context.Context, _ string, evt TurnEvent) {
		got = append(got, evt)
	})

	ctx := WithSession(context.Background(), "s1")
	Emit(ctx, TurnStarted, NewInfo("start"))
	explicit := NewSuccess("done")
	explicit.SessionKey = "s2"
	Emit(ctx, TurnDone, explicit)

	require.Len(t, got, 2)
	assert.Equal(t, "s1", got[0].SessionKey)
	assert.Equal(t, "s2", got[1].SessionKey)
	assert.NotEmpty(t, got[0].ID)
}

func TestEnableLogEmitter(t *testing.T) {
	prev := log.Logger
	t.Cleanup(func() {
		log.Logger = prev
		SetCustomEmitter(nil)
	})

	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)
	EnableLogEmitter()

	Emit(WithSession(context.Background(), "s1"), TurnFailed, NewError("model failed").With("model", "gemini-2.0-flash"))

	out := buf.String()
	assert.Contains(t, out, `"level":"error"`)
	assert.Contains(t, out, `"event":"events:turn:failed"`)
	assert.Contains(t, out, `"session":"s1"`)
	assert.Contains(t, out, `"model":"gemini-2.0-flash"`)
	assert.Contains(t, out, "model failed")
}

func TestWith_DoesNotShareMetadata(t *testing.T) {
	base := NewInfo("x")
	a := base.With("k", "a")
	b := base.With("k", "b")
	assert.Equal(t, "a", a.Metadata["k"])
	assert.Equal(t, "b", b.Metadata["k"])
}

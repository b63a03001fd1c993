package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestSetup_ParsesLevel(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	var buf bytes.Buffer
	assert.Equal(t, zerolog.DebugLevel, Setup(" DEBUG ", &buf))

	log.Debug().Str("k", "v").Msg("hello")
	assert.Contains(t, buf.String(), "hello")
	assert.Contains(t, buf.String(), "k=v")
}

func TestSetup_UnknownLevelFallsBackToInfo(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	var buf bytes.Buffer
	assert.Equal(t, zerolog.InfoLevel, Setup("verbose", &buf))
	assert.Equal(t, zerolog.InfoLevel, Setup("", &buf))

	log.Debug().Msg("hidden")
	assert.NotContains(t, buf.String(), "hidden")
}

func TestGormWriter(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	var buf bytes.Buffer
	Setup("debug", &buf)

	GormWriter{}.Printf("slow query %dms", 250)
	assert.Contains(t, buf.String(), "slow query 250ms")
	assert.Contains(t, buf.String(), "component=gorm")
}

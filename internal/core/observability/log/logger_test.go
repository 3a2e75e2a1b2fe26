package log

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerWritesTypedFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := NewZap(zap.New(core))

	l.With(String("scene", "levels/a.scene")).Warn("unknown component",
		String("type", "Laser"), Int("index", 2), Error(errors.New("boom")))

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		ctx := entries[0].ContextMap()
		assert.Equal(t, "unknown component", entries[0].Message)
		assert.Equal(t, "levels/a.scene", ctx["scene"])
		assert.Equal(t, "Laser", ctx["type"])
		assert.EqualValues(t, 2, ctx["index"])
		assert.Equal(t, "boom", ctx["error"])
	}
}

func TestLogRespectsLevel(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := NewZap(zap.New(core))
	l.SetLevel(LevelWarn)
	assert.Equal(t, LevelWarn, l.GetLevel())

	l.Log(LevelInfo, "dropped")
	l.Log(LevelError, "kept")
	assert.Equal(t, 1, logs.Len())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("debug"))
	assert.Equal(t, LevelWarn, ParseLevel("warning"))
	assert.Equal(t, LevelInfo, ParseLevel("chatty"))
}

func TestNopAndProvide(t *testing.T) {
	NewNop().Error("nothing happens")
	assert.NotNil(t, Provide())
}

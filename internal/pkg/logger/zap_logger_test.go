package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLoggerTagsModule(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := New(zap.New(core))

	l.Info("AUTH", "user signed up", map[string]interface{}{"email": "a@b.c"})
	l.Debug("SESSION", "sweep", nil)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "user signed up", entries[0].Message)
	assert.Equal(t, "AUTH", entries[0].ContextMap()["module"])
	assert.Equal(t, "SESSION", entries[1].ContextMap()["module"])
}

func TestZapLoggerErrorKeepsCause(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := New(zap.New(core))

	l.Error("CHAT", "append failed", map[string]interface{}{"error": errors.New("locked")})

	entries := logs.FilterMessage("append failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	assert.Equal(t, "locked", entries[0].ContextMap()["error_ref"])
}

package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLoggerFormatsMessages(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewZap(zap.New(core))

	log.Debug("field %s changed", "category")
	log.Warn("retry in %d ms", 300)
	log.Printf("plain %v", true)

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, "field category changed", entries[0].Message)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "retry in 300 ms", entries[1].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, zapcore.InfoLevel, entries[2].Level)
}

func TestNewZapLoggerFallsBackToInfo(t *testing.T) {
	log, err := NewZapLogger("not-a-level", "console")
	require.NoError(t, err)
	assert.NotNil(t, log)

	NewNop().Error("ignored %d", 1)
}

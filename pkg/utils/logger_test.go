package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLogger_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "server.log")

	logger, err := NewLogger(LoggerConfig{Level: "debug", OutputPath: path, Format: "json"})
	require.NoError(t, err)

	logger.Info("report approved", zap.String("report_id", "2"))
	require.NoError(t, logger.Sync())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"report_id":"2"`)
	assert.Contains(t, string(content), `"timestamp"`)
}

func TestNewLogger_UnknownLevelFallsBackToInfo(t *testing.T) {
	logger, err := NewLogger(LoggerConfig{Level: "chatty", OutputPath: "stderr"})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
}

func TestKVLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	kv := NewKVLogger(zap.New(core))

	kv.Info("Expense created", "id", "42", "amount", 12.5)
	kv.Error("Failed to dispatch event", "event_type", "report.approved")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "42", entries[0].ContextMap()["id"])
	assert.Equal(t, 12.5, entries[0].ContextMap()["amount"])
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
}

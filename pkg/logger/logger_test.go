package logger

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObserved(level zapcore.Level) (*Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := New(zap.New(core))
	l.level.SetLevel(level)
	return l, logs
}

func TestSetLevelAppliesToRunningLogger(t *testing.T) {
	l, logs := newObserved(zapcore.InfoLevel)

	l.Debug("hidden")
	l.Info("shown")
	require.Equal(t, 1, logs.Len())

	l.SetLevel("warn")
	assert.Equal(t, zapcore.WarnLevel, l.Level())
	logs.TakeAll()

	l.Info("hidden")
	l.Warn("shown")
	assert.Equal(t, []string{"shown"}, messages(logs))

	l.SetLevel("debug")
	logs.TakeAll()
	l.Debug("now shown")
	assert.Equal(t, []string{"now shown"}, messages(logs))
}

func TestUninitializedLoggerIsSilent(t *testing.T) {
	var l Logger

	assert.NotPanics(t, func() {
		l.Info("dropped")
		l.SetLevel("debug")
		l.LogAction("quit", "menu", nil)
	})
	assert.Equal(t, zapcore.InfoLevel, l.Level())
	assert.PanicsWithValue(t, "broken", func() { l.Panic("broken") })
}

func TestLogAction(t *testing.T) {
	l, logs := newObserved(zapcore.DebugLevel)

	l.LogAction("app.quit", "accelerator", nil)
	l.LogAction("win.help", "menu", errors.New("no browser"))

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "accelerator", entries[0].ContextMap()["source"])
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, "no browser", entries[1].ContextMap()["error"])
}

func TestInitializeRotatesOversizedLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "packet.log")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("0123456789"), 0644))

	l := &Logger{}
	require.NoError(t, l.Initialize(Config{LogPath: path, Level: "error", MaxSize: 4}))
	defer l.Close()

	assert.Equal(t, zapcore.ErrorLevel, l.Level())
	rotated, err := os.ReadFile(path + ".1")
	require.NoError(t, err)
	assert.Equal(t, "0123456789", string(rotated))
}

func messages(logs *observer.ObservedLogs) []string {
	var out []string
	for _, e := range logs.TakeAll() {
		out = append(out, e.Message)
	}
	return out
}

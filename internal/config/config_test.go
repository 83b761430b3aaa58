package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigManagerDefaultsWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cm, err := NewConfigManager(path)
	require.NoError(t, err)

	cfg := cm.Get()
	assert.True(t, cfg.RunInBackground)
	assert.True(t, cm.RunInBackground())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "system", cfg.Theme)
	assert.NotEmpty(t, cfg.DeviceName)
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	cm, err := NewConfigManager(path)
	require.NoError(t, err)

	cfg := cm.Stored()
	cfg.RunInBackground = false
	cfg.DeviceName = "desk"
	require.NoError(t, cm.Set(&cfg))

	reloaded, err := NewConfigManager(path)
	require.NoError(t, err)
	assert.False(t, reloaded.RunInBackground())
	assert.Equal(t, "desk", reloaded.Get().DeviceName)
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"device_name":"laptop"}`), 0600))

	cm, err := NewConfigManager(path)
	require.NoError(t, err)
	cfg := cm.Get()
	assert.Equal(t, "laptop", cfg.DeviceName)
	assert.True(t, cfg.EnableNotifications)
	assert.Equal(t, 480, cfg.WindowWidth)
}

func TestInvalidFileIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0600))

	_, err := NewConfigManager(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PACKET_LOG_LEVEL", "debug")
	t.Setenv("PACKET_SOCKET_PATH", "/tmp/packet-test.sock")

	cm, err := NewConfigManager(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, err)

	assert.Equal(t, "debug", cm.Get().LogLevel)
	assert.Equal(t, "info", cm.Stored().LogLevel)
	assert.Equal(t, "/tmp/packet-test.sock", cm.Env().SocketPath)
	assert.Equal(t, "default", cm.Env().Profile)
}

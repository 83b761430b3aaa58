package app

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"packet/internal/config"
	"packet/internal/instance"
	"packet/pkg/logger"
)

func newTestApp(t *testing.T, socket string) (*App, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	t.Setenv("PACKET_SOCKET_PATH", socket)

	cm, err := config.NewConfigManager(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, err)

	var stdout, stderr bytes.Buffer
	return newApp(cm, logger.New(zaptest.NewLogger(t)), &stdout, &stderr), &stdout, &stderr
}

func tempSocket(t *testing.T) string {
	t.Helper()
	dir, err := os.MkdirTemp("", "pkt")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })
	return filepath.Join(dir, "app.sock")
}

func TestRunHelp(t *testing.T) {
	a, stdout, _ := newTestApp(t, tempSocket(t))

	assert.Equal(t, ExitOK, a.Run([]string{"--help"}))
	assert.Contains(t, stdout.String(), "--background")
}

func TestRunUsageError(t *testing.T) {
	a, _, stderr := newTestApp(t, tempSocket(t))

	assert.Equal(t, ExitUsage, a.Run([]string{"--frobnicate"}))
	assert.Contains(t, stderr.String(), "frobnicate")
	assert.Contains(t, stderr.String(), "Usage:")
}

func TestRunForwardsToPrimary(t *testing.T) {
	socket := tempSocket(t)
	primary, err := instance.Listen(socket, logger.New(zaptest.NewLogger(t)))
	require.NoError(t, err)
	defer primary.Close()

	got := make(chan instance.Request, 1)
	primary.Serve(func(req instance.Request) error {
		got <- req
		return nil
	})

	a, _, _ := newTestApp(t, socket)
	assert.Equal(t, ExitOK, a.Run([]string{"-b"}))

	req := <-got
	assert.Equal(t, instance.CommandActivate, req.Command)
	assert.Equal(t, []string{"-b"}, req.Args)
}

func TestHandleForwardedRejectsUnknownCommand(t *testing.T) {
	a, _, _ := newTestApp(t, tempSocket(t))

	err := a.handleForwarded(instance.Request{Command: "shutdown"})
	assert.Error(t, err)
}

func TestRunRejectsValueForBackground(t *testing.T) {
	a, _, stderr := newTestApp(t, tempSocket(t))

	assert.Equal(t, ExitUsage, a.Run([]string{"--background=false"}))
	assert.Contains(t, stderr.String(), "does not take a value")
}

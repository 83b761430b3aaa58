package instance

import (
	"errors"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"packet/pkg/logger"
)

func socketPath(t *testing.T) string {
	t.Helper()
	dir, err := os.MkdirTemp("", "pkt")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })
	return filepath.Join(dir, "i.sock")
}

func TestForwardDeliversArgs(t *testing.T) {
	path := socketPath(t)
	log := logger.New(zaptest.NewLogger(t))

	srv, err := Listen(path, log)
	require.NoError(t, err)
	defer srv.Close()

	got := make(chan Request, 1)
	srv.Serve(func(req Request) error {
		got <- req
		return nil
	})

	require.NoError(t, Forward(path, []string{"--background"}))
	req := <-got
	assert.Equal(t, CommandActivate, req.Command)
	assert.Equal(t, []string{"--background"}, req.Args)
}

func TestForwardReportsHandlerError(t *testing.T) {
	path := socketPath(t)
	srv, err := Listen(path, logger.New(zaptest.NewLogger(t)))
	require.NoError(t, err)
	defer srv.Close()

	srv.Serve(func(Request) error { return errors.New("bad flag") })

	err = Forward(path, nil)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "bad flag"))
}

func TestSecondListenerIsRejected(t *testing.T) {
	path := socketPath(t)
	log := logger.New(zaptest.NewLogger(t))

	srv, err := Listen(path, log)
	require.NoError(t, err)
	defer srv.Close()
	srv.Serve(func(Request) error { return nil })

	_, err = Listen(path, log)
	assert.ErrorIs(t, err, ErrAlreadyRunning)
}

func TestStaleSocketIsReclaimed(t *testing.T) {
	path := socketPath(t)

	// Leave a socket file with nobody listening.
	ln, err := net.Listen("unix", path)
	require.NoError(t, err)
	ln.(*net.UnixListener).SetUnlinkOnClose(false)
	require.NoError(t, ln.Close())
	_, err = os.Stat(path)
	require.NoError(t, err)

	srv, err := Listen(path, logger.New(zaptest.NewLogger(t)))
	require.NoError(t, err)
	assert.Equal(t, path, srv.Path())
	require.NoError(t, srv.Close())
}

func TestForwardWithoutPrimaryFails(t *testing.T) {
	assert.Error(t, Forward(socketPath(t), nil))
}

func TestCloseIsIdempotent(t *testing.T) {
	path := socketPath(t)
	srv, err := Listen(path, logger.New(zaptest.NewLogger(t)))
	require.NoError(t, err)
	srv.Serve(func(Request) error { return nil })

	require.NoError(t, srv.Close())
	require.NoError(t, srv.Close())
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

// Package instance keeps one primary process per user and forwards later
// invocations to it over a local socket.
package instance

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"packet/pkg/logger"
)

// ErrAlreadyRunning is returned by Listen when another process owns the socket.
var ErrAlreadyRunning = errors.New("another instance is already running")

// CommandActivate asks the primary to handle the forwarded command line and
// activate.
const CommandActivate = "activate"

const dialTimeout = 2 * time.Second

// Request is one forwarded invocation.
type Request struct {
	Command string   `json:"command"`
	Args    []string `json:"args"`
}

type response struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// Handler processes a forwarded request.
type Handler func(Request) error

// Server is the primary instance's end of the socket.
type Server struct {
	listener net.Listener
	path     string
	log      *logger.Logger

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// SocketPath returns the per-user socket path for appID.
func SocketPath(appID string) string {
	dir := os.Getenv("XDG_RUNTIME_DIR")
	if dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, fmt.Sprintf("%s-%d.sock", appID, os.Getuid()))
}

// Listen claims path for this process. A socket left behind by a dead
// process is removed and reclaimed.
func Listen(path string, log *logger.Logger) (*Server, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("create socket directory: %w", err)
	}

	ln, err := net.Listen("unix", path)
	if err != nil {
		if alive(path) {
			return nil, ErrAlreadyRunning
		}
		log.Warn("removing stale instance socket", zap.String("path", path))
		if rmErr := os.Remove(path); rmErr != nil && !os.IsNotExist(rmErr) {
			return nil, fmt.Errorf("remove stale socket: %w", rmErr)
		}
		ln, err = net.Listen("unix", path)
		if err != nil {
			return nil, fmt.Errorf("listen on %s: %w", path, err)
		}
	}

	return &Server{listener: ln, path: path, log: log}, nil
}

func alive(path string) bool {
	conn, err := net.DialTimeout("unix", path, dialTimeout)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// Serve accepts forwarded requests until Close is called.
func (s *Server) Serve(h Handler) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			conn, err := s.listener.Accept()
			if err != nil {
				if !s.isClosed() {
					s.log.Error("instance socket accept failed", zap.Error(err))
				}
				return
			}
			s.handle(conn, h)
		}
	}()
}

func (s *Server) handle(conn net.Conn, h Handler) {
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(dialTimeout))

	line, err := bufio.NewReader(conn).ReadBytes('\n')
	if err != nil {
		s.log.Warn("failed to read forwarded request", zap.Error(err))
		return
	}

	var req Request
	resp := response{OK: true}
	if err := json.Unmarshal(line, &req); err != nil {
		resp = response{Error: fmt.Sprintf("decode request: %v", err)}
	} else if err := h(req); err != nil {
		resp = response{Error: err.Error()}
	}
	s.log.Debug("forwarded request handled",
		zap.String("command", req.Command),
		zap.Strings("args", req.Args),
		zap.Bool("ok", resp.OK))

	_ = json.NewEncoder(conn).Encode(resp)
}

func (s *Server) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Path returns the socket path.
func (s *Server) Path() string {
	return s.path
}

// Close stops accepting requests and removes the socket file.
func (s *Server) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	err := s.listener.Close()
	s.wg.Wait()
	if rmErr := os.Remove(s.path); rmErr != nil && !os.IsNotExist(rmErr) && err == nil {
		err = rmErr
	}
	return err
}

// Forward sends args to the primary instance listening on path and waits
// for it to acknowledge.
func Forward(path string, args []string) error {
	conn, err := net.DialTimeout("unix", path, dialTimeout)
	if err != nil {
		return fmt.Errorf("connect to running instance: %w", err)
	}
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(dialTimeout))

	if args == nil {
		args = []string{}
	}
	if err := json.NewEncoder(conn).Encode(Request{Command: CommandActivate, Args: args}); err != nil {
		return fmt.Errorf("send request: %w", err)
	}

	var resp response
	if err := json.NewDecoder(conn).Decode(&resp); err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if !resp.OK {
		return fmt.Errorf("running instance rejected request: %s", resp.Error)
	}
	return nil
}

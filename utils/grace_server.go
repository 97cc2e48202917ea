package utils

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const (
	defaultReadTimeout  = 60 * time.Second
	defaultWriteTimeout = 60 * time.Second

	gracefulEnvKey     = "IS_GRACEFUL"
	gracefulEnvValue   = gracefulEnvKey + "=1"
	gracefulListenerFD = 3
)

// GraceServer runs an HTTP server that shuts down cleanly on SIGTERM/SIGINT
// and hands its listener to a freshly exec'd child on SIGUSR2, so deploys do
// not drop in-flight requests.
func GraceServer(addr string, handler http.Handler) error {
	srv := &graceServer{
		server: &http.Server{
			Addr:         addr,
			Handler:      handler,
			ReadTimeout:  defaultReadTimeout,
			WriteTimeout: defaultWriteTimeout,
		},
		shutdownDone: make(chan struct{}),
	}
	return srv.listenAndServe()
}

type graceServer struct {
	server       *http.Server
	listener     net.Listener
	shutdownDone chan struct{}
}

func (s *graceServer) listenAndServe() error {
	ln, err := s.acquireListener()
	if err != nil {
		return err
	}
	s.listener = ln

	go s.watchSignals()

	err = s.server.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		// Serve returns immediately on Shutdown; wait for drain to finish.
		<-s.shutdownDone
		return nil
	}
	return err
}

// acquireListener binds a fresh socket, or inherits fd 3 when this process
// was spawned by a graceful restart.
func (s *graceServer) acquireListener() (net.Listener, error) {
	if os.Getenv(gracefulEnvKey) != "" {
		file := os.NewFile(gracefulListenerFD, "")
		ln, err := net.FileListener(file)
		if err != nil {
			return nil, fmt.Errorf("inherit listener: %w", err)
		}
		return ln, nil
	}
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", s.server.Addr, err)
	}
	return ln, nil
}

func (s *graceServer) watchSignals() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGUSR2)

	for sig := range sigCh {
		switch sig {
		case syscall.SIGTERM, syscall.SIGINT:
			Sugar.Infof("received %s, shutting down HTTP server", sig)
			s.shutdown()
			return
		case syscall.SIGUSR2:
			Sugar.Info("received SIGUSR2, graceful restart")
			if pid, err := s.spawnSuccessor(); err != nil {
				Sugar.Errorf("graceful restart failed: %v, continuing to serve", err)
			} else {
				Sugar.Infof("successor started pid=%d, draining old server", pid)
				s.shutdown()
				return
			}
		}
	}
}

func (s *graceServer) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := s.server.Shutdown(ctx); err != nil {
		Sugar.Errorf("HTTP server shutdown error: %v", err)
	}
	close(s.shutdownDone)
}

// spawnSuccessor forks a new copy of this binary with the listener fd attached.
func (s *graceServer) spawnSuccessor() (int, error) {
	tcpLn, ok := s.listener.(*net.TCPListener)
	if !ok {
		return 0, fmt.Errorf("listener is not *net.TCPListener")
	}
	file, err := tcpLn.File()
	if err != nil {
		return 0, fmt.Errorf("get listener file: %w", err)
	}

	envs := []string{}
	for _, e := range os.Environ() {
		if e != gracefulEnvValue {
			envs = append(envs, e)
		}
	}
	envs = append(envs, gracefulEnvValue)

	attr := &syscall.ProcAttr{
		Env:   envs,
		Files: []uintptr{os.Stdin.Fd(), os.Stdout.Fd(), os.Stderr.Fd(), file.Fd()},
	}
	pid, err := syscall.ForkExec(os.Args[0], os.Args, attr)
	if err != nil {
		return 0, fmt.Errorf("forkexec: %w", err)
	}
	return pid, nil
}

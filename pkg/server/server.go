// Package server runs the plain-text static file server.
//
// Files under the configured root are served with the usual static-file
// semantics, but every response goes through ForcePlainText, so clients
// always see exactly one "Content-Type: text/plain" header.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/yeisme/ptserve/pkg/configs"
	"github.com/yeisme/ptserve/pkg/static"
	"github.com/yeisme/ptserve/pkg/utils/version"
	"golang.org/x/net/netutil"
)

// shutdownTimeout bounds graceful shutdown.
const shutdownTimeout = 5 * time.Second

// Server owns the listening socket and the served root.
type Server struct {
	config     configs.ServerConfig
	logger     zerolog.Logger
	out        io.Writer
	root       *os.Root
	httpServer *http.Server

	mu       sync.Mutex
	listener net.Listener
}

// Option configures a Server.
type Option func(*Server)

// WithOutput sets where the startup line is printed (os.Stdout by default).
func WithOutput(w io.Writer) Option {
	return func(s *Server) {
		s.out = w
	}
}

// New opens cfg.Root and prepares the HTTP server. Nothing is bound until
// Listen or Start is called.
func New(cfg configs.ServerConfig, logger *zerolog.Logger, opts ...Option) (*Server, error) {
	root, err := os.OpenRoot(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("open root %s: %w", cfg.Root, err)
	}

	s := &Server{
		config: cfg,
		logger: zerolog.Nop(),
		out:    os.Stdout,
		root:   root,
	}
	if logger != nil {
		s.logger = *logger
	}
	for _, opt := range opts {
		opt(s)
	}

	s.httpServer = &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	// one request per connection, so a single idle client cannot hold the serial listener
	if cfg.Serial {
		s.httpServer.SetKeepAlivesEnabled(false)
	}
	return s, nil
}

// Handler returns the full request pipeline: static files, then the
// Content-Type override, then the access log.
func (s *Server) Handler() http.Handler {
	var h http.Handler = static.New(s.root.FS(), static.WithServerName(version.ServerName()))
	h = ForcePlainText(h)
	if s.config.AccessLog {
		h = accessLog(s.logger, h)
	}
	return h
}

// Listen binds the configured address and prints the startup line. A bind
// failure is returned as is; there is no retry.
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", s.config.Address())
	if err != nil {
		return fmt.Errorf("failed to bind %s: %w", s.config.Address(), err)
	}
	port := s.config.Port
	if addr, ok := ln.Addr().(*net.TCPAddr); ok {
		port = addr.Port
	}
	ln = plainTextListener{Listener: ln}
	if s.config.Serial {
		ln = netutil.LimitListener(ln, 1)
	}

	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()

	fmt.Fprintf(s.out, "Serving at port %d\n", port)
	s.logger.Info().
		Str("addr", ln.Addr().String()).
		Str("root", s.config.Root).
		Bool("serial", s.config.Serial).
		Msg("HTTP server listening")
	return nil
}

// Addr returns the bound address, or nil before Listen.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Serve blocks serving on the listener bound by Listen. It returns nil once
// Shutdown has been called.
func (s *Server) Serve() error {
	s.mu.Lock()
	ln := s.listener
	s.mu.Unlock()
	if ln == nil {
		return errors.New("server is not listening")
	}

	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

// Start binds, serves, and blocks until ctx is cancelled or SIGINT/SIGTERM
// arrives, then shuts the server down.
func (s *Server) Start(ctx context.Context) error {
	if err := s.Listen(); err != nil {
		_ = s.root.Close()
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Serve()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case <-ctx.Done():
		s.logger.Debug().Msg("context cancelled")
	case sig := <-sigCh:
		s.logger.Info().Str("signal", sig.String()).Msg("received signal")
	case err := <-errCh:
		_ = s.root.Close()
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.Shutdown(shutdownCtx)
}

// Shutdown closes the listener, waits for in-flight requests and releases
// the root directory.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("shutting down HTTP server")
	err := s.httpServer.Shutdown(ctx)

	// Listen without Serve leaves the listener unknown to httpServer
	s.mu.Lock()
	if s.listener != nil {
		_ = s.listener.Close()
	}
	s.mu.Unlock()

	if cerr := s.root.Close(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

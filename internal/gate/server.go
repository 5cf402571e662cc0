/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package gate

import (
	"context"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Seednode/arcade/internal/httpx"
)

// DefaultTickPeriod is the pause between OnTick sweeps.
const DefaultTickPeriod = 100 * time.Millisecond

type registration struct {
	mu     sync.Mutex
	tenant Tenant
}

func (r *registration) with(f func(Tenant)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f(r.tenant)
}

// Server accepts connections and dispatches them to tenants by path.
// The registry is fixed before ListenAndServe and read-only after.
type Server struct {
	tenants    map[string]*registration
	order      []string // registration order, for deterministic ticking
	nextPeer   atomic.Uint64
	maxRequest int
	tickPeriod time.Duration
	staticRoot string
	logf       func(format string, args ...any)
}

// Option configures a Server.
type Option func(*Server)

func WithMaxRequestBytes(n int) Option {
	return func(s *Server) { s.maxRequest = n }
}

func WithTickPeriod(d time.Duration) Option {
	return func(s *Server) { s.tickPeriod = d }
}

func WithStaticRoot(root string) Option {
	return func(s *Server) { s.staticRoot = root }
}

func WithLogger(logf func(format string, args ...any)) Option {
	return func(s *Server) { s.logf = logf }
}

func NewServer(opts ...Option) *Server {
	s := &Server{
		tenants:    make(map[string]*registration),
		maxRequest: httpx.DefaultMaxRequestBytes,
		tickPeriod: DefaultTickPeriod,
		logf:       func(string, ...any) {},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register binds a tenant to an exact request path. Must happen before
// ListenAndServe.
func (s *Server) Register(path string, t Tenant) {
	s.tenants[path] = &registration{tenant: t}
	s.order = append(s.order, path)
}

func (s *Server) find(path string) *registration {
	return s.tenants[path]
}

// ListenAndServe accepts until ctx is cancelled. Each connection gets
// its own goroutine; the periodic driver runs alongside the accept loop.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts on an existing listener. Used directly by tests that
// bind to an ephemeral port first.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	go s.drive(ctx)
	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	s.logf("SERVE: Game server listening on %s", ln.Addr())

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		go s.handle(conn)
	}
}

// drive is the periodic driver: sleep, then tick every tenant in
// registration order under its lock. The next sleep starts only after
// the sweep completes, so slow ticks stretch the period and missed
// ticks are never made up.
func (s *Server) drive(ctx context.Context) {
	timer := time.NewTimer(s.tickPeriod)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		for _, path := range s.order {
			s.tenants[path].with(Tenant.OnTick)
		}

		timer.Reset(s.tickPeriod)
	}
}

// Package server exposes the hstring text operations over HTTP
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/AdrianWangs/go-hstring/internal/analyzer"
	"github.com/AdrianWangs/go-hstring/pkg/hstring"
	"github.com/AdrianWangs/go-hstring/pkg/logger"
	"github.com/AdrianWangs/go-hstring/pkg/router"
)

const (
	defaultBasePath        = "/api"
	defaultShutdownTimeout = 5 * time.Second
)

// Server serves text analysis, random words and line transforms
type Server struct {
	addr      string
	basePath  string
	maxBody   int64
	rateLimit float64
	rateBurst int

	backend Analyzer
	started time.Time

	genMu sync.Mutex // WordGenerator is not safe for concurrent use
	gen   *hstring.WordGenerator

	router     *router.Router
	httpServer *http.Server
	listener   net.Listener
}

// Analyzer is the word analysis backend, an *analyzer.Analyzer or *analyzer.Pool
type Analyzer interface {
	Analyze(ctx context.Context, text []byte) (*analyzer.Report, error)
	AnalyzeBatch(ctx context.Context, texts [][]byte, limit int) ([]*analyzer.Report, error)
	Stats() analyzer.Stats
	Cached() int
	CachedBytes() int64
	Clear()
}

// Option configures a Server
type Option func(*Server)

// WithBasePath configures the path prefix of every endpoint
func WithBasePath(basePath string) Option {
	return func(s *Server) {
		s.basePath = basePath
	}
}

// WithMaxBody limits request bodies to n bytes; 0 disables the limit
func WithMaxBody(n int64) Option {
	return func(s *Server) {
		s.maxBody = n
	}
}

// WithRateLimit limits each client IP to perSecond requests with the given
// burst; perSecond <= 0 disables limiting
func WithRateLimit(perSecond float64, burst int) Option {
	return func(s *Server) {
		s.rateLimit = perSecond
		s.rateBurst = burst
	}
}

// New creates a server. A nil gen is replaced by an entropy-seeded generator.
func New(addr string, a Analyzer, gen *hstring.WordGenerator, opts ...Option) *Server {
	if gen == nil {
		gen = hstring.NewWordGenerator(nil)
	}
	s := &Server{
		addr:     addr,
		basePath: defaultBasePath,
		backend:  a,
		gen:      gen,
		started:  time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) routes() *router.Router {
	r := router.New()
	r.Use(router.RecoveryMiddleware())
	r.Use(router.RequestIDMiddleware())
	r.Use(router.LoggingMiddleware())
	r.Use(router.RateLimitMiddleware(s.rateLimit, s.rateBurst))
	r.Use(router.MaxBodyMiddleware(s.maxBody))

	api := r.Group(s.basePath)
	api.RegisterFunc("GET /health", s.handleHealth)
	api.RegisterFunc("GET /metrics", s.handleMetrics)
	api.RegisterFunc("DELETE /cache", s.handleClearCache)
	api.RegisterFunc("POST /analyze", s.handleAnalyze)
	api.RegisterFunc("POST /analyze/batch", s.handleAnalyzeBatch)
	api.RegisterFunc("GET /random", s.handleRandom)
	api.RegisterFunc("POST /join", s.handleJoin)
	api.RegisterFunc("POST /trim", s.handleTrim)
	api.RegisterFunc("POST /lower", s.handleLower)
	return r
}

// Handler returns the HTTP handler, for embedding or tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Addr returns the bound address once started, the configured one before
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

// Start binds the listener and serves in the background
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.addr, err)
	}
	s.listener = ln
	logger.Infof("hstring server listening on %s", ln.Addr())
	if logger.IsDebug() {
		for _, route := range s.router.Routes() {
			logger.Debugf("route: %s", route)
		}
	}

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf("hstring server error: %v", err)
		}
	}()
	return nil
}

// Stop shuts the server down gracefully
func (s *Server) Stop(ctx context.Context) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaultShutdownTimeout)
		defer cancel()
	}
	logger.Info("Shutting down hstring server...")
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) nextWords(length, count int) []hstring.String {
	s.genMu.Lock()
	defer s.genMu.Unlock()

	words := make([]hstring.String, count)
	for i := range words {
		words[i] = s.gen.Generate(length)
	}
	return words
}

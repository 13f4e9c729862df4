package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/plan-systems/klog"

	"github.com/katalvlaran/circuiteq/remote"
	"github.com/katalvlaran/circuiteq/solver"
)

// ErrNilSampler indicates New was given no sampler.
var ErrNilSampler = errors.New("service: sampler is nil")

const (
	// DefaultCacheSize is the number of cached replies.
	DefaultCacheSize = 128

	maxRequestBytes = 64 << 20
)

// Option configures a Server.
type Option func(*Server)

// WithCacheSize sets the reply cache capacity; 0 disables caching.
func WithCacheSize(n int) Option {
	return func(s *Server) { s.cacheSize = n }
}

// WithSolveTimeout bounds every sampler call; 0 leaves only the request context.
func WithSolveTimeout(d time.Duration) Option {
	return func(s *Server) { s.timeout = d }
}

// Server routes solve requests to a Sampler.
type Server struct {
	router    chi.Router
	sampler   solver.Sampler
	cache     *lru.Cache[string, []remote.WireSample]
	cacheSize int
	timeout   time.Duration
}

// New builds a Server around sampler.
func New(sampler solver.Sampler, opts ...Option) (*Server, error) {
	if sampler == nil {
		return nil, ErrNilSampler
	}
	s := &Server{sampler: sampler, cacheSize: DefaultCacheSize}
	for _, opt := range opts {
		opt(s)
	}
	if s.cacheSize > 0 {
		cache, err := lru.New[string, []remote.WireSample](s.cacheSize)
		if err != nil {
			return nil, err
		}
		s.cache = cache
	}
	s.router = s.buildRouter()

	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Post(remote.SolvePath, s.handleSolve)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req remote.SolveRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, remote.SolveResponse{ID: req.ID, Error: "decode request: " + err.Error()})
		return
	}
	if req.Model == nil {
		writeJSON(w, http.StatusBadRequest, remote.SolveResponse{ID: req.ID, Error: "missing model"})
		return
	}

	key := ""
	if s.cache != nil {
		key = modelKey(req.Model)
		if samples, ok := s.cache.Get(key); ok {
			klog.V(2).Infof("solve %s: cache hit (%d samples)", req.ID, len(samples))
			writeJSON(w, http.StatusOK, remote.SolveResponse{ID: req.ID, Samples: samples})
			return
		}
	}

	ctx := r.Context()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	set, err := s.sampler.Sample(ctx, req.Model)
	if err != nil {
		klog.Errorf("solve %s: %v", req.ID, err)
		writeJSON(w, http.StatusInternalServerError, remote.SolveResponse{ID: req.ID, Error: err.Error()})
		return
	}

	samples := make([]remote.WireSample, 0, set.Len())
	for _, smp := range set.Samples() {
		samples = append(samples, remote.WireSample{
			Assignment:  smp.Assignment,
			Energy:      smp.Energy,
			Occurrences: smp.Occurrences,
		})
	}
	if s.cache != nil {
		s.cache.Add(key, samples)
	}
	klog.V(2).Infof("solve %s: %d variables, %d samples in %s",
		req.ID, req.Model.NumVariables(), len(samples), time.Since(start))
	writeJSON(w, http.StatusOK, remote.SolveResponse{ID: req.ID, Samples: samples})
}

// modelKey hashes the canonical wire form of a model.
func modelKey(m json.Marshaler) string {
	raw, err := m.MarshalJSON()
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(raw)

	return hex.EncodeToString(sum[:])
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		klog.Errorf("write reply: %v", err)
	}
}

// internal/httpserver/server.go
//
// HTTP server wiring for the kidgames backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/games".
//   - Session endpoints: POST /sessions, then token-guarded /sessions/{id}/*.
//   - Websocket event stream per session.
//   - Janitor closing sessions that have been idle for too long.
//
// Notes:
//   - CORS is single-origin (CLIENT_ORIGIN).
//   - Late or invalid game input is never an HTTP error; it comes back as
//     "accepted": false with the current state.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/kidgames/internal/catalog"
	"github.com/robalobadob/kidgames/internal/config"
	"github.com/robalobadob/kidgames/internal/events"
	"github.com/robalobadob/kidgames/internal/random"
	"github.com/robalobadob/kidgames/internal/sched"
	"github.com/robalobadob/kidgames/internal/store"
)

// Server bundles router, session store, event hub and catalogue.
type Server struct {
	r       *chi.Mux
	http    *http.Server
	cfg     config.Config
	store   store.Store
	hub     *events.Hub
	catalog *catalog.Catalog
	tokens  tokens

	sched  sched.Scheduler
	source func() random.Source
}

// Option customises a Server.
type Option func(*Server)

// WithScheduler replaces the wall clock used by sessions.
func WithScheduler(s sched.Scheduler) Option { return func(srv *Server) { srv.sched = s } }

// WithRandom replaces the per-session random source factory.
func WithRandom(f func() random.Source) Option { return func(srv *Server) { srv.source = f } }

// New constructs a Server, installs middleware, and registers routes.
func New(cfg config.Config, st store.Store, hub *events.Hub, cat *catalog.Catalog, opts ...Option) *Server {
	s := &Server{
		r:       chi.NewRouter(),
		cfg:     cfg,
		store:   st,
		hub:     hub,
		catalog: cat,
		tokens:  tokens{secret: []byte(cfg.SessionSecret), lifetime: tokenLifetime},
		sched:   sched.Clock{},
		source:  func() random.Source { return random.New() },
	}
	for _, o := range opts {
		o(s)
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(cors(cfg.ClientOrigin))

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"kidgames","endpoints":["/health","/games","POST /sessions","/sessions/{id}/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "sessions": s.store.Len()})
	})

	s.r.Get("/games", s.handleGames)
	s.mountSessions()

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Start begins serving HTTP on addr. It returns nil after Shutdown.
func (s *Server) Start(addr string) error {
	s.http = &http.Server{Addr: addr, Handler: s.r, ReadHeaderTimeout: 5 * time.Second}
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// Janitor sweeps idle sessions every interval until ctx is done.
func (s *Server) Janitor(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			s.sweep(ctx, now)
		}
	}
}

func (s *Server) sweep(ctx context.Context, now time.Time) {
	for _, id := range s.store.Sweep(ctx, now.Add(-s.cfg.SessionTTL)) {
		s.hub.Drop(id)
		log.Info().Str("session", id).Msg("session expired")
	}
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ------------------------------ catalogue ----------------------------------

type gamesRes struct {
	Games []catalog.Entry `json:"games"`
}

func (s *Server) handleGames(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, gamesRes{Games: s.catalog.Entries})
}

// ------------------------------ helpers ------------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("write response")
	}
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

// apps/go-server/internal/httpserver/server.go
//
// HTTP server wiring for the Jamo Archer backend.
// Responsibilities:
//   - Router + middleware (request IDs, real IP, panic recovery, access log, CORS).
//   - Plain JSON endpoints: "/", "/health", "/config", "/sentences/stats",
//     "/matches/{id}". These run under a handler timeout.
//   - The game itself is played over "/ws" (see ws.go); it is mounted outside the
//     timeout group because the connection lives as long as the match.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled, origin from CLIENT_ORIGIN.
//   - Daily mode orders sentences from DAILY_SALT and the UTC date.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/jamo-archer/apps/go-server/internal/game"
	"github.com/robalobadob/jamo-archer/apps/go-server/internal/sentences"
	"github.com/robalobadob/jamo-archer/apps/go-server/internal/store"
)

// Server bundles the router, the live-match registry and the sentence bank.
type Server struct {
	r     *chi.Mux
	store store.Store
	bank  *sentences.Bank
	cfg   game.Config
	salt  string
	now   func() time.Time
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, bank *sentences.Bank) *Server {
	s := &Server{
		r:     chi.NewRouter(),
		store: st,
		bank:  bank,
		cfg:   game.DefaultConfig(),
		salt:  getEnv("DAILY_SALT", "local_dev_salt"),
		now:   time.Now,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(accessLog)
	s.r.Use(corsFromEnv)

	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(10 * time.Second))
		r.Use(jsonContentType)

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"service":"jamo-archer-go","endpoints":["/health","/config","/sentences/stats","/matches/{id}","/ws?mode=shuffle|daily"]}`))
		})
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"ok":true}`))
		})
		r.Get("/config", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, newConfigView(s.cfg))
		})
		r.Get("/sentences/stats", s.handleStats)
		r.Get("/matches/{id}", s.handleMatch)
	})

	s.r.Get("/ws", s.handleWS)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	return s
}

// Run serves HTTP on addr until ctx is cancelled, then shuts down, giving
// in-flight requests up to five seconds. Hijacked WebSocket connections are
// not waited for.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	n, jamo := s.bank.Stats()
	writeJSON(w, http.StatusOK, map[string]int{"sentences": n, "jamo": jamo})
}

// handleMatch reports a live match, as its WebSocket client would see it.
func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	m, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("get match")
		writeError(w, http.StatusInternalServerError, "lookup_failed")
		return
	}
	writeJSON(w, http.StatusOK, m.Snapshot())
}

// configView is the part of game.Config a client needs to draw the field.
type configView struct {
	PlayWidth       float64   `json:"playWidth"`
	PlayHeight      float64   `json:"playHeight"`
	PlayerWidth     float64   `json:"playerWidth"`
	HitBox          float64   `json:"hitBox"`
	Lanes           []float64 `json:"lanes"`
	TickHz          int       `json:"tickHz"`
	SpawnIntervalMs int64     `json:"spawnIntervalMs"`
	RoundSeconds    int       `json:"roundSeconds"`
}

func newConfigView(cfg game.Config) configView {
	return configView{
		PlayWidth:       cfg.PlayWidth,
		PlayHeight:      cfg.PlayHeight,
		PlayerWidth:     cfg.PlayerWidth,
		HitBox:          cfg.HitBox,
		Lanes:           cfg.Lanes(),
		TickHz:          cfg.TickHz,
		SpawnIntervalMs: cfg.SpawnInterval.Milliseconds(),
		RoundSeconds:    cfg.RoundSeconds,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

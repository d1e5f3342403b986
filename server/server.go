// Package server answers decision requests over HTTP for game trees posted as JSON.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"multiagent/config"
	"multiagent/game"
	"multiagent/gametree"
	"multiagent/searcher"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

const (
	shutdownTimeout = 5 * time.Second
	MaxBodyBytes    = 1 << 20 // Largest accepted decide request
)

// DecideRequest carries the tree to search, unset fields fall back to the server's config
type DecideRequest struct {
	Tree      *gametree.Tree `json:"tree"`
	Depth     *float64       `json:"depth,omitempty"`
	Variant   string         `json:"variant,omitempty"`
	TieBreak  string         `json:"tie_break,omitempty"`
	Heuristic string         `json:"heuristic,omitempty"`
}

type DecideResponse struct {
	Action   game.Action             `json:"action"`
	Value    float64                 `json:"value"`
	Values   map[game.Action]float64 `json:"values"`
	Partial  bool                    `json:"partial"`
	Nodes    int                     `json:"nodes"`
	Leaves   int                     `json:"leaves"`
	Cutoffs  int                     `json:"cutoffs"`
	Duration string                  `json:"duration"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type Server struct {
	config *config.Config
	router chi.Router
}

func New(cfg *config.Config) *Server {
	s := &Server{config: cfg, router: chi.NewRouter()}
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)
	s.router.Get("/healthz", s.handleHealth)
	s.router.Post("/decide", s.handleDecide)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Start serves on addr until ctx is cancelled
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("failed to shut down decision server")
		}
	}()

	log.Info().Msgf("decision server listening on %s", addr)
	err := srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDecide(w http.ResponseWriter, r *http.Request) {
	var req DecideRequest
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad request: " + err.Error()})
		return
	}
	if req.Tree == nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad request: missing tree"})
		return
	}
	if err := req.Tree.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	cfg := s.resolve(req)
	if err := cfg.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	options, _ := cfg.Options()
	depth, _ := cfg.DepthBudget()

	decision, err := searcher.NewSearcher(append(options, searcher.WithMetrics())...).Decide(r.Context(), req.Tree.Start(), depth)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			status = http.StatusServiceUnavailable
		}
		log.Warn().Err(err).Str("request_id", middleware.GetReqID(r.Context())).Msg("decision failed")
		writeJSON(w, status, errorResponse{Error: err.Error()})
		return
	}

	log.Info().
		Str("request_id", middleware.GetReqID(r.Context())).
		Str("variant", decision.Metric.Variant).
		Str("action", string(decision.Action)).
		Msg("served decision")
	writeJSON(w, http.StatusOK, DecideResponse{
		Action:   decision.Action,
		Value:    decision.Value,
		Values:   decision.Values,
		Partial:  decision.Partial,
		Nodes:    decision.Metric.Nodes,
		Leaves:   decision.Metric.Leaves,
		Cutoffs:  decision.Metric.Cutoffs,
		Duration: decision.Metric.Duration.String(),
	})
}

// resolve overlays the request's settings on a copy of the server config
func (s *Server) resolve(req DecideRequest) *config.Config {
	cfg := *s.config
	if req.Depth != nil {
		cfg.Depth = *req.Depth
	}
	if req.Variant != "" {
		cfg.Variant = req.Variant
	}
	if req.TieBreak != "" {
		cfg.TieBreak = req.TieBreak
	}
	if req.Heuristic != "" {
		cfg.Heuristic = req.Heuristic
	}
	return &cfg
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nathanfoale/skycity-blackjack/server/api"
	"github.com/nathanfoale/skycity-blackjack/server/sim"
)

// server holds what the handlers share; base is the env config every
// request is layered over.
type server struct {
	base    sim.Config
	workers int
	maxWork int
	log     *slog.Logger
}

func (s *server) runner() *sim.Runner {
	return &sim.Runner{Workers: s.workers, Logger: s.log, OnSession: observeSession}
}

func Router(s *server) http.Handler {
	initMetrics()
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(countRequests)

	r.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"ok": true})
	})

	r.Get("/api/variants", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"variants": api.Variants()})
	})

	r.Post("/api/simulate", func(w http.ResponseWriter, r *http.Request) {
		var req api.SimulateRequest
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			httpError(w, http.StatusBadRequest, "bad request body: "+err.Error())
			return
		}
		cfg, err := api.Validate(req, s.base, s.maxWork)
		if err != nil {
			httpError(w, statusFor(err), err.Error())
			return
		}
		res, err := s.runner().Run(r.Context(), cfg, 0)
		if err != nil {
			s.log.Error("simulate failed", "err", err)
			httpError(w, statusFor(err), err.Error())
			return
		}
		ExperimentSeconds.Observe(res.Elapsed.Seconds())
		writeJSON(w, api.BuildResponse(res, req.IncludeTrajectories))
	})

	r.Handle("/metrics", promhttp.Handler())
	return r
}

func countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r)
		endpoint := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			endpoint = rc.RoutePattern()
		}
		HttpRequests.WithLabelValues(r.Method, endpoint).Inc()
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, sim.ErrInvalidConfig):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func httpError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]any{"error": msg})
}

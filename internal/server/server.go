// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes a generated question set over a read-only HTTP API
// so the game frontend can be developed against real data.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/pdiddy/trivia-engine/internal/logger"
	"github.com/pdiddy/trivia-engine/internal/store"
	"github.com/pdiddy/trivia-engine/pkg/types"
)

var defaultOrigins = []string{"http://localhost:5173", "https://localhost:5173"}

// New returns a router serving the questions in set.
func New(set *store.Set, cfg types.ServeConfig) http.Handler {
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = defaultOrigins
	}

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(securityHeaders)

	h := &handlers{questions: set.Questions()}
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.Write([]byte("ok")) })
	r.Route("/api", func(r chi.Router) {
		r.Get("/questions", h.list)
		r.Get("/stats", h.stats)
		r.Get("/universes", h.universes)
	})
	return r
}

func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		next.ServeHTTP(w, r)
	})
}

type handlers struct {
	questions []types.Question
}

func (h *handlers) list(w http.ResponseWriter, r *http.Request) {
	c, err := criteria(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, store.Filter(h.questions, c))
}

func (h *handlers) stats(w http.ResponseWriter, r *http.Request) {
	c, err := criteria(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, store.Summarize(store.Filter(h.questions, c)))
}

func (h *handlers) universes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, types.Universes)
}

// criteria parses the universe, type, tier, and maxTier query parameters.
func criteria(r *http.Request) (store.Criteria, error) {
	var c store.Criteria
	q := r.URL.Query()

	if v := q.Get("universe"); v != "" {
		u, err := types.ParseUniverse(v)
		if err != nil {
			return c, err
		}
		c.Universe = u
	}
	switch v := types.QuestionType(q.Get("type")); v {
	case "":
	case types.TrueFalse, types.MultipleChoice:
		c.Type = v
	default:
		return c, fmt.Errorf("unknown question type %q", v)
	}

	var err error
	if c.Tier, err = tierParam(q.Get("tier")); err != nil {
		return c, err
	}
	if c.MaxTier, err = tierParam(q.Get("maxTier")); err != nil {
		return c, err
	}
	return c, nil
}

func tierParam(v string) (int, error) {
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < types.MinDifficulty || n > types.MaxDifficulty {
		return 0, fmt.Errorf("tier %q must be a number between %d and %d", v, types.MinDifficulty, types.MaxDifficulty)
	}
	return n, nil
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("encoding response: %v", err)
	}
}

// Package server exposes ingested acts over a small read-only JSON API:
// act listing, provision lookup, definition listing and full-text
// search.
package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/coolbeans/slovlex/pkg/citation"
	"github.com/coolbeans/slovlex/pkg/query"
	"github.com/coolbeans/slovlex/pkg/types"
)

// Server serves a fixed snapshot of ingested acts. The act set is
// immutable after construction, so no locking is needed.
type Server struct {
	acts  map[string]types.ParsedAct
	order []string
	index *query.Index
	log   zerolog.Logger
}

// actSummary is the listing form of an act, without provision bodies.
type actSummary struct {
	LawID           string `json:"law_id"`
	Title           string `json:"title"`
	FullTitle       string `json:"full_title"`
	Citation        string `json:"citation"`
	Status          string `json:"status"`
	InForceDate     string `json:"in_force_date"`
	ProvisionCount  int    `json:"provision_count"`
	DefinitionCount int    `json:"definition_count"`
}

// New builds a server over the given acts, indexed for search.
func New(acts []types.ParsedAct, log zerolog.Logger) *Server {
	s := &Server{
		acts:  make(map[string]types.ParsedAct, len(acts)),
		index: query.NewIndex(acts),
		log:   log,
	}
	for _, act := range acts {
		s.acts[act.LawID] = act
		s.order = append(s.order, act.LawID)
	}
	return s
}

// Handler builds the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.accessLog)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/laws", s.handleListLaws)
		r.Get("/laws/{lawID}", s.handleGetLaw)
		r.Get("/laws/{lawID}/provisions", s.handleListProvisions)
		r.Get("/laws/{lawID}/provisions/{section}", s.handleGetProvision)
		r.Get("/laws/{lawID}/definitions", s.handleListDefinitions)
		r.Get("/search", s.handleSearch)
	})

	return r
}

// ListenAndServe blocks serving the API on addr.
func (s *Server) ListenAndServe(addr string) error {
	s.log.Info().Str("addr", addr).Msg("serving query API")
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

func (s *Server) handleListLaws(w http.ResponseWriter, r *http.Request) {
	summaries := make([]actSummary, 0, len(s.order))
	for _, id := range s.order {
		act := s.acts[id]
		summaries = append(summaries, actSummary{
			LawID:           act.LawID,
			Title:           act.Title,
			FullTitle:       act.FullTitle,
			Citation:        citation.ActCitation{Year: act.Year, Number: act.Number}.Format(),
			Status:          string(act.Status),
			InForceDate:     act.InForceDate,
			ProvisionCount:  len(act.Provisions),
			DefinitionCount: len(act.Definitions),
		})
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (s *Server) handleGetLaw(w http.ResponseWriter, r *http.Request) {
	act, ok := s.acts[chi.URLParam(r, "lawID")]
	if !ok {
		writeError(w, http.StatusNotFound, "unknown law")
		return
	}
	writeJSON(w, http.StatusOK, act)
}

func (s *Server) handleListProvisions(w http.ResponseWriter, r *http.Request) {
	act, ok := s.acts[chi.URLParam(r, "lawID")]
	if !ok {
		writeError(w, http.StatusNotFound, "unknown law")
		return
	}
	writeJSON(w, http.StatusOK, act.Provisions)
}

func (s *Server) handleGetProvision(w http.ResponseWriter, r *http.Request) {
	act, ok := s.acts[chi.URLParam(r, "lawID")]
	if !ok {
		writeError(w, http.StatusNotFound, "unknown law")
		return
	}

	// Accept the bare section ("5") or the canonical reference ("§5").
	section := chi.URLParam(r, "section")
	reference := section
	if !strings.HasPrefix(reference, "§") {
		reference = "§" + reference
	}
	provision := act.Provision(reference)
	if provision == nil {
		writeError(w, http.StatusNotFound, "unknown provision")
		return
	}
	writeJSON(w, http.StatusOK, provision)
}

func (s *Server) handleListDefinitions(w http.ResponseWriter, r *http.Request) {
	act, ok := s.acts[chi.URLParam(r, "lawID")]
	if !ok {
		writeError(w, http.StatusNotFound, "unknown law")
		return
	}
	writeJSON(w, http.StatusOK, act.Definitions)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if strings.TrimSpace(q) == "" {
		writeError(w, http.StatusBadRequest, "missing query parameter q")
		return
	}

	lawID := r.URL.Query().Get("law")
	if lawID != "" {
		if _, ok := s.acts[lawID]; !ok {
			writeError(w, http.StatusNotFound, "unknown law")
			return
		}
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	hits := s.index.Search(q, lawID, limit)
	if hits == nil {
		hits = []query.Hit{}
	}
	writeJSON(w, http.StatusOK, hits)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

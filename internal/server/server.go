// Package server exposes the marketplace pipeline over HTTP: natural-language
// search against the curated inventory, market recommendations, semantic
// matching, the combined smart search, and listing generation.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"carmarket-api/internal/advisor"
	commonerrors "carmarket-api/internal/common/errors"
	"carmarket-api/internal/common/logger"
	"carmarket-api/internal/common/metrics"
	"carmarket-api/internal/common/observability"
	"carmarket-api/internal/extractor"
	"carmarket-api/internal/listings"
	"carmarket-api/internal/reconciler"
	"carmarket-api/internal/store"
)

// Extractor converts free-form text into typed structures.
type Extractor interface {
	ExtractFilters(ctx context.Context, query string) (*listings.FilterSpec, error)
	GenerateListing(ctx context.Context, description string) (*extractor.ListingDetails, error)
}

// Advisor recommends market makes and models for stated needs.
type Advisor interface {
	Recommend(ctx context.Context, needs string) ([]advisor.Recommendation, error)
}

// Reconciler resolves recommendations against inventory candidates.
type Reconciler interface {
	Match(ctx context.Context, recs []reconciler.RecommendationRef, candidates []reconciler.Candidate) (reconciler.MatchResult, error)
}

// StoreFetcher retrieves seller records from the remote store.
type StoreFetcher interface {
	FetchSellListings(ctx context.Context) ([]store.Record, error)
}

type Server struct {
	extractor  Extractor
	advisor    Advisor
	reconciler Reconciler
	store      StoreFetcher
	inventory  []listings.ListingRecord
	logger     logger.Logger
	obs        *observability.Observability
}

func NewServer(ext Extractor, adv Advisor, rec Reconciler, st StoreFetcher, inventory []listings.ListingRecord, log logger.Logger, obs *observability.Observability) *Server {
	if obs == nil {
		obs = &observability.Observability{}
	}
	return &Server{
		extractor:  ext,
		advisor:    adv,
		reconciler: rec,
		store:      st,
		inventory:  inventory,
		logger:     log.WithFields(map[string]interface{}{"component": "server"}),
		obs:        obs,
	}
}

// Routes builds the request mux. The metrics endpoint is mounted by the
// caller so the server stays decoupled from the exporter.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/car-search", s.instrument("car-search", s.handleCarSearch))
	mux.HandleFunc("POST /api/market-recommendations", s.instrument("market-recommendations", s.handleMarketRecommendations))
	mux.HandleFunc("POST /api/semantic-search", s.instrument("semantic-search", s.handleSemanticSearch))
	mux.HandleFunc("POST /api/smart-search", s.instrument("smart-search", s.handleSmartSearch))
	mux.HandleFunc("POST /api/generate-listing", s.instrument("generate-listing", s.handleGenerateListing))
	mux.HandleFunc("GET /health", s.handleHealth)
	return mux
}

// instrument wraps a handler with request logging and per-route metrics. A
// returned error is translated into the JSON error response; handlers write
// their own success bodies.
func (s *Server) instrument(route string, h func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()
		log := s.logger.WithFields(map[string]interface{}{
			"route":     route,
			"requestId": requestID,
		})

		metrics.APIRequestsTotal.WithLabelValues(route).Inc()

		err := h(w, r)

		duration := time.Since(start)
		metrics.APIRequestDuration.WithLabelValues(route).Observe(duration.Seconds())
		s.obs.RecordDuration(r.Context(), route, duration)

		if err != nil {
			code := commonerrors.CodeOf(err)
			metrics.APIRequestsFailed.WithLabelValues(route, string(code)).Inc()
			s.obs.RecordInvocation(r.Context(), route, "error")
			log.Error("request failed", map[string]interface{}{
				"error":    err.Error(),
				"code":     string(code),
				"duration": duration.String(),
			})
			s.respondError(w, err)
			return
		}

		s.obs.RecordInvocation(r.Context(), route, "ok")
		log.Info("request completed", map[string]interface{}{
			"duration": duration.String(),
		})
	}
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

// respondError surfaces the raw error message under the "error" key; the
// status comes from the error's code, defaulting to 500.
func (s *Server) respondError(w http.ResponseWriter, err error) {
	s.respondJSON(w, commonerrors.HTTPStatus(err), map[string]string{
		"error": err.Error(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "carmarket-api",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

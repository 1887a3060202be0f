package server

import (
	"encoding/json"
	"net/http"

	"carmarket-api/internal/advisor"
	commonerrors "carmarket-api/internal/common/errors"
	"carmarket-api/internal/listings"
	"carmarket-api/internal/reconciler"
	"carmarket-api/internal/store"
)

type queryRequest struct {
	Query string `json:"query"`
}

type carSearchResponse struct {
	Query      string                    `json:"query"`
	Filters    *listings.FilterSpec      `json:"filters"`
	MatchCount int                       `json:"matchCount"`
	Results    []listings.ListingSummary `json:"results"`
}

// handleCarSearch extracts a filter spec from the natural-language query and
// applies it to the curated inventory.
func (s *Server) handleCarSearch(w http.ResponseWriter, r *http.Request) error {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Query == "" {
		return commonerrors.NewValidationError(`A "query" string is required in the request body.`)
	}

	spec, err := s.extractor.ExtractFilters(r.Context(), req.Query)
	if err != nil {
		return err
	}

	matched := listings.Match(s.inventory, *spec)
	results := make([]listings.ListingSummary, 0, len(matched))
	for _, car := range matched {
		results = append(results, car.Summary())
	}

	s.respondJSON(w, http.StatusOK, carSearchResponse{
		Query:      req.Query,
		Filters:    spec,
		MatchCount: len(results),
		Results:    results,
	})
	return nil
}

func (s *Server) handleMarketRecommendations(w http.ResponseWriter, r *http.Request) error {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Query == "" {
		return commonerrors.NewValidationError(`A "query" string is required in the request body.`)
	}

	recs, err := s.advisor.Recommend(r.Context(), req.Query)
	if err != nil {
		return err
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"query":           req.Query,
		"recommendations": recs,
	})
	return nil
}

type semanticSearchRequest struct {
	Recommendations []reconciler.RecommendationRef `json:"recommendations"`
	AvailableCars   []reconciler.Candidate         `json:"availableCars"`
}

// handleSemanticSearch runs the reconciliation step on its own, for callers
// that already hold both lists.
func (s *Server) handleSemanticSearch(w http.ResponseWriter, r *http.Request) error {
	body, err := decodeRawBody(r)
	if err != nil {
		return commonerrors.NewValidationError("Missing or invalid recommendations array")
	}

	if _, ok := body["recommendations"]; !ok {
		return commonerrors.NewValidationError("Missing or invalid recommendations array")
	}
	if _, ok := body["availableCars"]; !ok {
		return commonerrors.NewValidationError("Missing or invalid availableCars array")
	}

	var req semanticSearchRequest
	if err := json.Unmarshal(body["recommendations"], &req.Recommendations); err != nil || req.Recommendations == nil {
		return commonerrors.NewValidationError("Missing or invalid recommendations array")
	}
	if err := json.Unmarshal(body["availableCars"], &req.AvailableCars); err != nil || req.AvailableCars == nil {
		return commonerrors.NewValidationError("Missing or invalid availableCars array")
	}

	result, err := s.reconciler.Match(r.Context(), req.Recommendations, req.AvailableCars)
	if err != nil {
		return err
	}

	s.respondJSON(w, http.StatusOK, result)
	return nil
}

type smartSearchResponse struct {
	Query           string                   `json:"query"`
	Recommendations []advisor.Recommendation `json:"recommendations"`
	MatchedCars     []store.Record           `json:"matchedCars"`
	Message         string                   `json:"message,omitempty"`
}

// handleSmartSearch chains the full pipeline: advise on makes and models,
// fetch the live sell inventory, and reconcile the two lists.
func (s *Server) handleSmartSearch(w http.ResponseWriter, r *http.Request) error {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Query == "" {
		return commonerrors.NewValidationError(`A "query" string is required in the request body.`)
	}

	recs, err := s.advisor.Recommend(r.Context(), req.Query)
	if err != nil {
		return err
	}

	records, err := s.store.FetchSellListings(r.Context())
	if err != nil {
		return err
	}

	if len(records) == 0 {
		s.respondJSON(w, http.StatusOK, smartSearchResponse{
			Query:           req.Query,
			Recommendations: recs,
			MatchedCars:     []store.Record{},
			Message:         "No cars found in database",
		})
		return nil
	}

	refs := make([]reconciler.RecommendationRef, 0, len(recs))
	for _, rec := range recs {
		refs = append(refs, reconciler.RecommendationRef{Make: rec.Make, Model: rec.Model})
	}
	candidates := make([]reconciler.Candidate, 0, len(records))
	for _, record := range records {
		candidates = append(candidates, record.Candidate())
	}

	result, err := s.reconciler.Match(r.Context(), refs, candidates)
	if err != nil {
		return err
	}

	matchedSet := make(map[string]bool, len(result.MatchedIDs))
	for _, id := range result.MatchedIDs {
		matchedSet[id] = true
	}
	matchedCars := []store.Record{}
	for _, record := range records {
		if matchedSet[record.ID] {
			matchedCars = append(matchedCars, record)
		}
	}

	s.respondJSON(w, http.StatusOK, smartSearchResponse{
		Query:           req.Query,
		Recommendations: recs,
		MatchedCars:     matchedCars,
	})
	return nil
}

type generateListingRequest struct {
	Description string `json:"description"`
}

func (s *Server) handleGenerateListing(w http.ResponseWriter, r *http.Request) error {
	var req generateListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Description == "" {
		return commonerrors.NewValidationError(`A "description" string is required in the request body.`)
	}

	details, err := s.extractor.GenerateListing(r.Context(), req.Description)
	if err != nil {
		return err
	}

	s.respondJSON(w, http.StatusOK, details)
	return nil
}

func decodeRawBody(r *http.Request) (map[string]json.RawMessage, error) {
	var body map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, err
	}
	return body, nil
}

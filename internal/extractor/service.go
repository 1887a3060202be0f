// Package extractor turns free-form text into typed structures through the
// schema-constrained generation capability: a search FilterSpec, or listing
// details plus a generated marketing description.
package extractor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	commonerrors "carmarket-api/internal/common/errors"
	"carmarket-api/internal/common/logger"
	"carmarket-api/internal/genai"
	"carmarket-api/internal/listings"
)

type Service struct {
	gen    genai.Generator
	cache  *Cache // nil disables caching
	logger logger.Logger
}

func NewService(gen genai.Generator, cache *Cache, log logger.Logger) *Service {
	return &Service{
		gen:    gen,
		cache:  cache,
		logger: log.WithFields(map[string]interface{}{"component": "extractor"}),
	}
}

// ExtractFilters converts a natural-language car description into a
// FilterSpec. Empty structured output is a terminal failure for the request:
// the caller gets an error, never a silently defaulted spec.
func (s *Service) ExtractFilters(ctx context.Context, query string) (*listings.FilterSpec, error) {
	if s.cache != nil {
		if spec, ok := s.cache.GetFilters(ctx, query); ok {
			s.logger.Debug("filter extraction served from cache", map[string]interface{}{
				"query": query,
			})
			return spec, nil
		}
	}

	raw, err := s.gen.Generate(ctx, genai.Request{
		Operation: "filter-extraction",
		System:    searchSystemPrompt,
		Prompt:    fmt.Sprintf(searchPromptTemplate, query),
		Schema:    filterSchema,
	})
	if err != nil {
		if errors.Is(err, genai.ErrNoOutput) {
			return nil, commonerrors.NewGenerationEmptyError("filter-extraction")
		}
		return nil, commonerrors.NewGenerationCallError("filter-extraction", err)
	}

	var spec listings.FilterSpec
	if err := json.Unmarshal(raw, &spec); err != nil {
		return nil, commonerrors.NewGenerationEmptyError("filter-extraction")
	}

	s.logger.Info("filters extracted", map[string]interface{}{
		"query":    query,
		"makes":    spec.Make,
		"models":   spec.Model,
		"maxPrice": spec.MaxPrice,
	})

	if s.cache != nil {
		s.cache.PutFilters(ctx, query, &spec)
	}

	return &spec, nil
}

// GenerateListing extracts structured details from a seller's free-form
// description and synthesizes the condition summary and marketing copy.
func (s *Service) GenerateListing(ctx context.Context, description string) (*ListingDetails, error) {
	raw, err := s.gen.Generate(ctx, genai.Request{
		Operation: "listing-generation",
		System:    listingSystemPrompt,
		Prompt:    fmt.Sprintf(listingPromptTemplate, description),
		Schema:    listingSchema,
	})
	if err != nil {
		if errors.Is(err, genai.ErrNoOutput) {
			return nil, commonerrors.NewGenerationEmptyError("listing-generation")
		}
		return nil, commonerrors.NewGenerationCallError("listing-generation", err)
	}

	var details ListingDetails
	if err := json.Unmarshal(raw, &details); err != nil {
		return nil, commonerrors.NewGenerationEmptyError("listing-generation")
	}

	s.logger.Info("listing generated", map[string]interface{}{
		"make":  details.Make,
		"model": details.Model,
	})

	return &details, nil
}

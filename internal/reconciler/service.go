// Package reconciler resolves semantic correspondence between recommended
// make/model pairings and inventory candidates whose text may be written in
// a different language or script (e.g. transliterated vs. native-alphabet
// vehicle names). The matching policy itself is delegated to the generation
// capability through a prompt enumerating both lists.
package reconciler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	commonerrors "carmarket-api/internal/common/errors"
	"carmarket-api/internal/common/logger"
	"carmarket-api/internal/genai"
)

const systemPrompt = "You are an expert at matching car names across languages (Hebrew, English, etc.)."

const matchSchema = `{
	"type": "object",
	"properties": {
		"matchedIds": {"type": "array", "items": {"type": "string"}}
	},
	"required": ["matchedIds"]
}`

type Service struct {
	gen    genai.Generator
	logger logger.Logger
}

func NewService(gen genai.Generator, log logger.Logger) *Service {
	return &Service{
		gen:    gen,
		logger: log.WithFields(map[string]interface{}{"component": "reconciler"}),
	}
}

// Match returns the candidates that correspond to at least one
// recommendation. An empty candidate list short-circuits without invoking
// the generation capability. Missing structured output degrades to an empty
// result rather than an error: downstream treats "no matches" and "match
// step unavailable" identically.
func (s *Service) Match(ctx context.Context, recs []RecommendationRef, candidates []Candidate) (MatchResult, error) {
	empty := MatchResult{MatchedIDs: []string{}}

	if len(candidates) == 0 {
		return empty, nil
	}

	raw, err := s.gen.Generate(ctx, genai.Request{
		Operation: "semantic-match",
		System:    systemPrompt,
		Prompt:    buildPrompt(recs, candidates),
		Schema:    matchSchema,
	})
	if err != nil {
		if errors.Is(err, genai.ErrNoOutput) {
			s.logger.Warn("semantic match produced no output, returning empty result", map[string]interface{}{
				"recommendations": len(recs),
				"candidates":      len(candidates),
			})
			return empty, nil
		}
		return empty, commonerrors.NewGenerationCallError("semantic-match", err)
	}

	var out MatchResult
	if err := json.Unmarshal(raw, &out); err != nil {
		return empty, nil
	}

	matched := filterKnownIDs(out.MatchedIDs, candidates)

	s.logger.Info("semantic match completed", map[string]interface{}{
		"recommendations": len(recs),
		"candidates":      len(candidates),
		"matched":         len(matched),
	})

	return MatchResult{MatchedIDs: matched}, nil
}

// filterKnownIDs keeps only identifiers present in the candidate list,
// deduplicated, so the capability can never fabricate ids into the result.
func filterKnownIDs(ids []string, candidates []Candidate) []string {
	known := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		known[c.ID] = true
	}

	result := []string{}
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if known[id] && !seen[id] {
			result = append(result, id)
			seen[id] = true
		}
	}
	return result
}

func buildPrompt(recs []RecommendationRef, candidates []Candidate) string {
	var wanted strings.Builder
	for _, r := range recs {
		wanted.WriteString(fmt.Sprintf("- %s %s\n", r.Make, r.Model))
	}

	var available strings.Builder
	for _, c := range candidates {
		available.WriteString(fmt.Sprintf("- ID: %s | Make: %s | Model: %s", c.ID, c.Make, c.Model))
		if c.Description != "" {
			available.WriteString(" | Description: " + c.Description)
		}
		available.WriteString("\n")
	}

	return fmt.Sprintf(`Your task: Find which cars from the available inventory match the recommendations.

## Important Rules:
- Match semantically, not just by exact text
- "טויוטה" = "Toyota", "קורולה" = "Corolla", "מאזדה" = "Mazda", etc.
- Model names might be formatted slightly differently: "RAV4" = "ראב 4" = "RAV 4"
- A car matches only when its make equals a recommendation's make AND its model is the same or a formatting variant of the recommendation's model; the make alone is never enough
- Return ONLY the IDs of matching cars
- If no matches found, return an empty array

## Recommendations (what we're looking for):
%s
## Available Cars in Inventory:
%s
Return a JSON object of the form {"matchedIds": [...]} listing the IDs of all inventory cars that match any of the recommendations.

IMPORTANT: Your response MUST be a valid JSON object and nothing else. Do not include any explanations or text outside of the JSON.`,
		wanted.String(),
		available.String())
}

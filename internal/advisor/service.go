// Package advisor recommends market makes and models for a buyer's stated
// needs using the generation capability's market knowledge.
package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	commonerrors "carmarket-api/internal/common/errors"
	"carmarket-api/internal/common/logger"
	"carmarket-api/internal/genai"
)

const systemPrompt = "You are a senior automotive consultant specializing in the Israeli car market."

const promptTemplate = `Your task is to recommend a list of specific car makes and models that are officially sold in Israel and best match the user's requirements.

Take into account:
- Reliability and commonality in Israel.
- Fuel efficiency or electric range (important in Israel).
- Resale value.
- Suitability for Israeli roads and climate.

Return a diverse but relevant list of at least 5 and at most 15 recommendations.

Return a JSON object of the form {"recommendations": [{"make": ..., "model": ..., "reasoning": ..., "category": ...}, ...]} where reasoning is a short explanation of why the car fits the user's needs and category is the segment, e.g. "Family SUV" or "City Car".

User Requirements: %s

IMPORTANT: Your response MUST be a valid JSON object and nothing else. Do not include any explanations or text outside of the JSON.`

const recommendationsSchema = `{
	"type": "object",
	"properties": {
		"recommendations": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"make": {"type": "string"},
					"model": {"type": "string"},
					"reasoning": {"type": "string"},
					"category": {"type": "string"}
				},
				"required": ["make", "model"]
			}
		}
	},
	"required": ["recommendations"]
}`

type Service struct {
	gen    genai.Generator
	logger logger.Logger
}

func NewService(gen genai.Generator, log logger.Logger) *Service {
	return &Service{
		gen:    gen,
		logger: log.WithFields(map[string]interface{}{"component": "advisor"}),
	}
}

// Recommend returns market recommendations for the stated needs. Like the
// extractor, empty structured output is a hard failure here.
func (s *Service) Recommend(ctx context.Context, needs string) ([]Recommendation, error) {
	raw, err := s.gen.Generate(ctx, genai.Request{
		Operation: "market-recommendations",
		System:    systemPrompt,
		Prompt:    fmt.Sprintf(promptTemplate, needs),
		Schema:    recommendationsSchema,
	})
	if err != nil {
		if errors.Is(err, genai.ErrNoOutput) {
			return nil, commonerrors.NewGenerationEmptyError("market-recommendations")
		}
		return nil, commonerrors.NewGenerationCallError("market-recommendations", err)
	}

	var out struct {
		Recommendations []Recommendation `json:"recommendations"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, commonerrors.NewGenerationEmptyError("market-recommendations")
	}

	s.logger.Info("recommendations generated", map[string]interface{}{
		"needs": needs,
		"count": len(out.Recommendations),
	})

	return out.Recommendations, nil
}

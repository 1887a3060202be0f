package genai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/xeipuuv/gojsonschema"
	"golang.org/x/time/rate"

	"carmarket-api/internal/common/logger"
	"carmarket-api/internal/common/metrics"
)

type Config struct {
	Model       string
	Temperature float32
	Timeout     time.Duration
}

// Client implements Generator against an OpenAI-compatible chat completion API.
type Client struct {
	api     *openai.Client
	config  Config
	limiter *rate.Limiter
	logger  logger.Logger
}

func NewClient(api *openai.Client, cfg Config, limiter *rate.Limiter, log logger.Logger) *Client {
	return &Client{
		api:     api,
		config:  cfg,
		limiter: limiter,
		logger:  log.WithFields(map[string]interface{}{"component": "genai"}),
	}
}

// Generate performs exactly one generation call per invocation; no retries.
// Cancellation propagates from the caller's context.
func (c *Client) Generate(ctx context.Context, req Request) (json.RawMessage, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.config.Model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: req.System,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: req.Prompt,
			},
		},
		Temperature: c.config.Temperature,
	})
	metrics.GenerationCallDuration.WithLabelValues(req.Operation).Observe(time.Since(start).Seconds())

	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		c.logger.Warn("generation returned no choices", map[string]interface{}{
			"operation": req.Operation,
		})
		return nil, ErrNoOutput
	}

	raw := extractJSON(resp.Choices[0].Message.Content)
	if raw == nil {
		c.logger.Warn("no JSON document in generation reply", map[string]interface{}{
			"operation": req.Operation,
		})
		return nil, ErrNoOutput
	}

	if req.Schema != "" {
		if err := validateAgainstSchema(req.Schema, raw); err != nil {
			c.logger.Warn("generation output failed schema validation", map[string]interface{}{
				"operation": req.Operation,
				"error":     err.Error(),
			})
			return nil, ErrNoOutput
		}
	}

	c.logger.Debug("generation call completed", map[string]interface{}{
		"operation": req.Operation,
		"duration":  time.Since(start).String(),
	})

	return raw, nil
}

// extractJSON slices the outermost JSON object out of the reply, tolerating
// prose or code fences around it.
func extractJSON(raw string) json.RawMessage {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end <= start {
		return nil
	}

	doc := json.RawMessage(raw[start : end+1])
	if !json.Valid(doc) {
		return nil
	}
	return doc
}

func validateAgainstSchema(schema string, doc json.RawMessage) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewBytesLoader(doc),
	)
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}

	if !result.Valid() {
		descriptions := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			descriptions = append(descriptions, desc.String())
		}
		return fmt.Errorf("schema violations: %s", strings.Join(descriptions, "; "))
	}

	return nil
}

// Package e2e exercises the whole pipeline through the HTTP surface with the
// real services wired together: only the generation backend and the remote
// record store are replaced with local test servers.
package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"carmarket-api/internal/advisor"
	"carmarket-api/internal/common/config"
	"carmarket-api/internal/common/logger"
	"carmarket-api/internal/extractor"
	"carmarket-api/internal/genai"
	"carmarket-api/internal/listings"
	"carmarket-api/internal/reconciler"
	"carmarket-api/internal/server"
	"carmarket-api/internal/store"
)

// fakeGenerationBackend answers OpenAI-compatible chat completion requests
// by inspecting the user prompt: each pipeline stage has a distinctive
// prompt shape, so one backend serves them all.
func fakeGenerationBackend(t *testing.T) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/chat/completions", r.URL.Path)

		var req openai.ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotEmpty(t, req.Messages)
		prompt := req.Messages[len(req.Messages)-1].Content

		var reply string
		switch {
		case strings.Contains(prompt, "matchedIds"):
			reply = `{"matchedIds": ["sellA"]}`
		case strings.Contains(prompt, "recommendations"):
			reply = `{"recommendations": [
				{"make": "Toyota", "model": "Corolla", "reasoning": "Reliable and common", "category": "City Car"},
				{"make": "Mazda", "model": "3", "reasoning": "Good value", "category": "Compact"}
			]}`
		default:
			reply = `{"bodyType": ["SUV"], "maxPrice": 60000}`
		}

		resp := openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: reply}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
}

func fakeRecordStore(t *testing.T, body string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/carRequests/sell.json", r.URL.Path)
		fmt.Fprint(w, body)
	}))
}

func newPipelineServer(t *testing.T, storeBody string) *server.Server {
	genBackend := fakeGenerationBackend(t)
	t.Cleanup(genBackend.Close)

	storeBackend := fakeRecordStore(t, storeBody)
	t.Cleanup(storeBackend.Close)

	log := logger.NewTestLogger(t)

	aiConfig := openai.DefaultConfig("test-key")
	aiConfig.BaseURL = genBackend.URL + "/v1"
	generator := genai.NewClient(
		openai.NewClientWithConfig(aiConfig),
		genai.Config{Model: "gpt-4o", Temperature: 0.1, Timeout: 10 * time.Second},
		rate.NewLimiter(rate.Inf, 1),
		log,
	)

	storeClient := store.NewClient(config.StoreConfig{
		DatabaseURL: storeBackend.URL,
		APIKey:      "test-key",
		Timeout:     5,
	}, log)

	return server.NewServer(
		extractor.NewService(generator, nil, log),
		advisor.NewService(generator, log),
		reconciler.NewService(generator, log),
		storeClient,
		listings.Seed(),
		log,
		nil,
	)
}

func post(t *testing.T, srv *server.Server, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rr, req)
	return rr
}

func TestCarSearchPipeline(t *testing.T) {
	srv := newPipelineServer(t, `null`)

	rr := post(t, srv, "/api/car-search", `{"query": "a family SUV under 60k"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		MatchCount int                       `json:"matchCount"`
		Results    []listings.ListingSummary `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

	require.Equal(t, 1, resp.MatchCount)
	assert.Equal(t, "BMW", resp.Results[0].Make)
	assert.Equal(t, "X5", resp.Results[0].Model)
}

func TestSmartSearchPipeline(t *testing.T) {
	srv := newPipelineServer(t, `{
		"user1": {
			"sellA": {"carCompany": ["טויוטה"], "carModel": ["קורולה"], "carYear": ["2021"], "area": "Tel Aviv"},
			"sellB": {"carCompany": ["Kia"], "carModel": ["Picanto"]}
		}
	}`)

	rr := post(t, srv, "/api/smart-search", `{"query": "a reliable city car"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Recommendations []advisor.Recommendation `json:"recommendations"`
		MatchedCars     []map[string]interface{} `json:"matchedCars"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

	require.Len(t, resp.Recommendations, 2)
	require.Len(t, resp.MatchedCars, 1)
	assert.Equal(t, "sellA", resp.MatchedCars[0]["id"])
	assert.Equal(t, "user1", resp.MatchedCars[0]["userId"])
}

func TestSmartSearchPipeline_EmptyStore(t *testing.T) {
	srv := newPipelineServer(t, `null`)

	rr := post(t, srv, "/api/smart-search", `{"query": "anything"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		MatchedCars []map[string]interface{} `json:"matchedCars"`
		Message     string                   `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Empty(t, resp.MatchedCars)
	assert.Equal(t, "No cars found in database", resp.Message)
}

package advisor

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonerrors "carmarket-api/internal/common/errors"
	"carmarket-api/internal/common/logger"
	"carmarket-api/internal/genai"
)

type fakeGenerator struct {
	output string
	err    error
}

func (f *fakeGenerator) Generate(_ context.Context, _ genai.Request) (json.RawMessage, error) {
	if f.err != nil {
		return nil, f.err
	}
	return json.RawMessage(f.output), nil
}

func TestRecommend_Success(t *testing.T) {
	gen := &fakeGenerator{output: `{
		"recommendations": [
			{"make": "Toyota", "model": "Corolla", "reasoning": "Reliable and common", "category": "City Car"},
			{"make": "Mazda", "model": "CX-5", "reasoning": "Good resale value", "category": "Family SUV"}
		]
	}`}
	svc := NewService(gen, logger.NewTestLogger(t))

	recs, err := svc.Recommend(context.Background(), "a safe family car with low fuel consumption")
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "Toyota", recs[0].Make)
	assert.Equal(t, "Corolla", recs[0].Model)
	assert.Equal(t, "Family SUV", recs[1].Category)
}

func TestRecommend_NoOutputIsTerminal(t *testing.T) {
	gen := &fakeGenerator{err: genai.ErrNoOutput}
	svc := NewService(gen, logger.NewTestLogger(t))

	_, err := svc.Recommend(context.Background(), "anything")
	require.Error(t, err)
	assert.Equal(t, commonerrors.ErrCodeGenerationEmpty, commonerrors.CodeOf(err))
}

func TestRecommend_TransportFailure(t *testing.T) {
	gen := &fakeGenerator{err: assert.AnError}
	svc := NewService(gen, logger.NewTestLogger(t))

	_, err := svc.Recommend(context.Background(), "anything")
	require.Error(t, err)
	assert.Equal(t, commonerrors.ErrCodeGenerationCallFailed, commonerrors.CodeOf(err))
}

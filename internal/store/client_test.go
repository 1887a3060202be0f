package store

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carmarket-api/internal/common/config"
	commonerrors "carmarket-api/internal/common/errors"
	"carmarket-api/internal/common/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(config.StoreConfig{
		DatabaseURL: srv.URL,
		APIKey:      "test-key",
		Timeout:     5,
	}, logger.NewTestLogger(t))
}

func TestFetchSellListings_FlattensTree(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/carRequests/sell.json", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("auth"))

		w.Write([]byte(`{
			"user1": {
				"carA": {"carCompany": ["Toyota"], "carModel": ["Corolla"], "carYear": ["2021"], "area": "Tel Aviv"},
				"carB": {"carCompany": ["Mazda"], "carModel": ["3"]}
			},
			"user2": {
				"carC": {"carCompany": "Honda", "carModel": "Civic"}
			}
		}`))
	})

	records, err := client.FetchSellListings(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "carA", records[0].ID)
	assert.Equal(t, "user1", records[0].UserID)
	assert.Equal(t, "carB", records[1].ID)
	assert.Equal(t, "carC", records[2].ID)
	assert.Equal(t, "user2", records[2].UserID)
}

func TestFetchSellListings_NullTree(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`null`))
	})

	records, err := client.FetchSellListings(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestFetchSellListings_UpstreamError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": "Permission denied"}`))
	})

	_, err := client.FetchSellListings(context.Background())
	require.Error(t, err)
	assert.Equal(t, commonerrors.ErrCodeUpstreamFetchFailed, commonerrors.CodeOf(err))
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "Permission denied")
}

func TestFetchSellListings_SkipsMalformedLeaves(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"user1": {
				"carA": {"carCompany": ["Toyota"]},
				"carBad": "not an object"
			}
		}`))
	})

	records, err := client.FetchSellListings(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "carA", records[0].ID)
}

func TestRecordCandidate_JoinsListFields(t *testing.T) {
	rec := Record{
		ID:     "carA",
		UserID: "user1",
		Fields: map[string]interface{}{
			"carCompany": []interface{}{"טויוטה"},
			"carModel":   []interface{}{"קורולה", "היברידי"},
			"carYear":    []interface{}{"2021"},
			"area":       "Tel Aviv",
		},
	}

	c := rec.Candidate()
	assert.Equal(t, "carA", c.ID)
	assert.Equal(t, "טויוטה", c.Make)
	assert.Equal(t, "קורולה היברידי", c.Model)
	assert.Equal(t, "טויוטה קורולה היברידי 2021 Tel Aviv", c.Description)
}

func TestRecordCandidate_MissingFields(t *testing.T) {
	rec := Record{ID: "carB", UserID: "user1", Fields: map[string]interface{}{}}

	c := rec.Candidate()
	assert.Equal(t, "carB", c.ID)
	assert.Empty(t, c.Make)
	assert.Empty(t, c.Model)
	assert.Empty(t, c.Description)
}

func TestRecordMarshalJSON_FlattensPosition(t *testing.T) {
	rec := Record{
		ID:     "carA",
		UserID: "user1",
		Fields: map[string]interface{}{"carCompany": []interface{}{"Toyota"}},
	}

	data, err := rec.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"id": "carA", "userId": "user1", "carCompany": ["Toyota"]}`, string(data))
}

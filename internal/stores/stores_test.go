package stores

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommendDisabledWithoutBaseURL(t *testing.T) {
	client := NewClient("", "irrelevant")

	_, err := client.Recommend(context.Background(), []string{"oats"}, "Lisbon", nil)
	assert.ErrorIs(t, err, ErrDisabled)
}

func TestRecommendBuildsRequestAndParsesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/recommendations", r.URL.Path)
		assert.Equal(t, "Lisbon", r.URL.Query().Get("city"))
		assert.Equal(t, "oats,salmon", r.URL.Query().Get("ingredients"))
		assert.Equal(t, "supermarket", r.URL.Query().Get("types"))
		assert.Equal(t, "secret", r.Header.Get("X-API-Key"))

		json.NewEncoder(w).Encode(recommendResponse{
			Recommendations: []Recommendation{{
				Ingredient: "oats",
				Stores:     []Store{{Name: "Mercado Central", Type: "supermarket", Address: "Rua A 1"}},
			}},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "secret")
	recs, err := client.Recommend(context.Background(), []string{"oats", "salmon"}, "Lisbon", []string{"supermarket"})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "oats", recs[0].Ingredient)
	require.Len(t, recs[0].Stores, 1)
	assert.Equal(t, "Mercado Central", recs[0].Stores[0].Name)
}

func TestRecommendOmitsEmptyTypesAndKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasTypes := r.URL.Query()["types"]
		assert.False(t, hasTypes)
		assert.Empty(t, r.Header.Get("X-API-Key"))
		json.NewEncoder(w).Encode(recommendResponse{})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	recs, err := client.Recommend(context.Background(), []string{"oats"}, "Lisbon", nil)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestRecommendSurfacesServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	_, err := client.Recommend(context.Background(), []string{"oats"}, "Lisbon", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
}

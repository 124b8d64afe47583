package stores

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrDisabled is returned when no store service is configured.
var ErrDisabled = errors.New("store lookup not configured")

// Store is a single vendor carrying an ingredient.
type Store struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Address string `json:"address"`
}

// Recommendation pairs an ingredient with the stores that carry it.
type Recommendation struct {
	Ingredient string  `json:"ingredient"`
	Stores     []Store `json:"stores"`
}

// Client looks up vendor recommendations for a list of ingredients in a
// city. The planner core never depends on this; it is consumed by the
// presentation layer only.
type Client interface {
	Recommend(ctx context.Context, ingredients []string, city string, storeTypes []string) ([]Recommendation, error)
}

type httpClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates an HTTP-backed store lookup client. An empty baseURL
// yields a client whose lookups fail with ErrDisabled.
func NewClient(baseURL, apiKey string) Client {
	return &httpClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type recommendResponse struct {
	Recommendations []Recommendation `json:"recommendations"`
}

func (c *httpClient) Recommend(ctx context.Context, ingredients []string, city string, storeTypes []string) ([]Recommendation, error) {
	if c.baseURL == "" {
		return nil, ErrDisabled
	}

	q := url.Values{}
	q.Set("city", city)
	q.Set("ingredients", strings.Join(ingredients, ","))
	if len(storeTypes) > 0 {
		q.Set("types", strings.Join(storeTypes, ","))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/v1/recommendations?%s", c.baseURL, q.Encode()), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("store api error: status %d", resp.StatusCode)
	}

	var parsed recommendResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return parsed.Recommendations, nil
}

// Package similar is the HTTP client for the external similarity-search
// service, which scores word stems against the article corpus.
package similar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/ornolfur/spyrja/internal/model"
)

// Term is one stem submitted for similarity scoring
type Term struct {
	Stem string `json:"stem"`
	Cat  string `json:"cat"`
}

// Result is the server's response: one weight per submitted term and a
// ranked list of matching articles.
type Result struct {
	Weights  []float64          `json:"weights"`
	Articles []model.ArticleRef `json:"articles"`
}

// Client calls the similarity server with rate limiting
type Client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
}

// NewClient creates a client for the similarity server at baseURL
func NewClient(cfg model.SimilarConfig) *Client {
	burst := cfg.Burst
	if burst <= 0 {
		burst = 5
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: cfg.URL,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst),
	}
}

type searchRequest struct {
	Terms []Term `json:"terms"`
	Limit int    `json:"limit"`
}

// Search submits the terms and returns the server's weights and article
// list. A reply without weights means the service could not score the
// terms and is reported as an error.
func (c *Client) Search(ctx context.Context, terms []Term, limit int) (*Result, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(searchRequest{Terms: terms, Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/similar", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("similarity server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("similarity server: unexpected status %d", resp.StatusCode)
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if len(result.Weights) == 0 {
		return nil, fmt.Errorf("unable to connect to similarity server")
	}

	return &result, nil
}

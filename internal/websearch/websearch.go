// Package websearch enriches chat turns with current web results. It is
// an independent failure domain: callers swallow every error and proceed
// with zero enrichment.
package websearch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const (
	defaultEndpoint = "https://google.serper.dev/search"

	// Serper is asked for five results; brand filtering may reduce that
	// further, with a three-result unfiltered fallback.
	requestedResults = 5
	fallbackResults  = 3

	cacheTTL = 10 * time.Minute
)

// Result is one usable search hit.
type Result struct {
	Title   string
	Snippet string
	Link    string
}

// Client calls the Serper search API. A nil Client is valid and means
// enrichment is disabled.
type Client struct {
	endpoint string
	apiKey   string
	client   *http.Client
	cache    *gocache.Cache
}

// New returns a client against the given endpoint.
func New(endpoint, apiKey string) *Client {
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: 15 * time.Second},
		cache:    gocache.New(cacheTTL, cacheTTL),
	}
}

// NewFromEnv returns a client when SERPER_API_KEY is set, nil otherwise.
// A missing key is not an error — enrichment is optional.
func NewFromEnv() *Client {
	key := os.Getenv("SERPER_API_KEY")
	if key == "" {
		return nil
	}
	return New(defaultEndpoint, key)
}

// Search runs a brand-focused query for the user's message and returns a
// small, brand-preferential result set. Identical queries within the TTL
// are served from cache without a network call.
func (c *Client) Search(query string) ([]Result, error) {
	if cached, ok := c.cache.Get(query); ok {
		return cached.([]Result), nil
	}

	reqBody, err := json.Marshal(searchRequest{
		Query: fmt.Sprintf("L'Oréal %s beauty routine products 2024 2025", query),
		Num:   requestedResults,
		Geo:   "us",
		Lang:  "en",
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search API returned %d", resp.StatusCode)
	}

	var result searchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	results := selectRelevant(result.Organic)
	c.cache.Set(query, results, gocache.DefaultExpiration)
	return results, nil
}

// selectRelevant prefers brand-relevant hits; when none qualify it falls
// back to the first few unfiltered entries.
func selectRelevant(organic []organicResult) []Result {
	var out []Result
	for _, r := range organic {
		if strings.Contains(r.Link, "loreal.com") ||
			strings.Contains(r.Link, "beauty") ||
			strings.Contains(strings.ToLower(r.Title), "loreal") ||
			strings.Contains(strings.ToLower(r.Snippet), "loreal") {
			out = append(out, Result{Title: r.Title, Snippet: r.Snippet, Link: r.Link})
		}
	}

	if len(out) == 0 {
		for i, r := range organic {
			if i == fallbackResults {
				break
			}
			out = append(out, Result{Title: r.Title, Snippet: r.Snippet, Link: r.Link})
		}
	}

	return out
}

// FormatContext renders results as the prompt block appended to a turn.
// Empty input yields an empty string.
func FormatContext(results []Result) string {
	if len(results) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("\n\nCurrent web information:\n")
	for _, r := range results {
		fmt.Fprintf(&sb, "- %s: %s (Source: %s)\n", r.Title, r.Snippet, r.Link)
	}
	return sb.String()
}

type searchRequest struct {
	Query string `json:"q"`
	Num   int    `json:"num"`
	Geo   string `json:"gl"`
	Lang  string `json:"hl"`
}

type searchResponse struct {
	Organic []organicResult `json:"organic"`
}

type organicResult struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Link    string `json:"link"`
}

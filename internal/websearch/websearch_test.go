package websearch

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestClient(serverURL string) *Client {
	return New(serverURL, "test-key")
}

func TestNewFromEnv_WhenKeyMissing_ShouldReturnNil(t *testing.T) {
	t.Setenv("SERPER_API_KEY", "")
	if c := NewFromEnv(); c != nil {
		t.Fatalf("expected nil client without API key, got %+v", c)
	}
}

func TestNewFromEnv_WhenKeySet_ShouldReturnClient(t *testing.T) {
	t.Setenv("SERPER_API_KEY", "sk-test")
	c := NewFromEnv()
	if c == nil {
		t.Fatal("expected client when SERPER_API_KEY is set")
	}
	if c.apiKey != "sk-test" {
		t.Fatalf("apiKey = %q, want %q", c.apiKey, "sk-test")
	}
}

func TestSearch_ShouldSendBrandQueryAndAPIKey(t *testing.T) {
	var gotKey string
	var gotReq searchRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-API-KEY")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(searchResponse{})
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	if _, err := c.Search("vitamin C serum"); err != nil {
		t.Fatalf("Search: %v", err)
	}

	if gotKey != "test-key" {
		t.Fatalf("X-API-KEY = %q, want %q", gotKey, "test-key")
	}
	if !strings.Contains(gotReq.Query, "vitamin C serum") || !strings.HasPrefix(gotReq.Query, "L'Oréal ") {
		t.Fatalf("query = %q, want brand-scoped query containing the user's terms", gotReq.Query)
	}
	if gotReq.Num != requestedResults {
		t.Fatalf("num = %d, want %d", gotReq.Num, requestedResults)
	}
}

func TestSearch_WhenBrandResultsExist_ShouldKeepOnlyThose(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(searchResponse{Organic: []organicResult{
			{Title: "Random blog", Snippet: "nothing relevant", Link: "https://example.com/post"},
			{Title: "Revitalift review", Snippet: "serum test", Link: "https://www.loreal.com/revitalift"},
			{Title: "Loreal routine guide", Snippet: "steps", Link: "https://example.com/guide"},
		}})
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	results, err := c.Search("serum")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("got %d results, want 2 brand-relevant ones: %+v", len(results), results)
	}
	if results[0].Link != "https://www.loreal.com/revitalift" {
		t.Fatalf("first result = %+v, want the loreal.com hit", results[0])
	}
}

func TestSearch_WhenNoBrandResults_ShouldFallBackToFirstThree(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(searchResponse{Organic: []organicResult{
			{Title: "A", Snippet: "a", Link: "https://example.com/a"},
			{Title: "B", Snippet: "b", Link: "https://example.com/b"},
			{Title: "C", Snippet: "c", Link: "https://example.com/c"},
			{Title: "D", Snippet: "d", Link: "https://example.com/d"},
		}})
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	results, err := c.Search("serum")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if len(results) != fallbackResults {
		t.Fatalf("got %d results, want fallback of %d", len(results), fallbackResults)
	}
	if results[0].Title != "A" || results[2].Title != "C" {
		t.Fatalf("fallback kept wrong entries: %+v", results)
	}
}

func TestSearch_WhenRepeated_ShouldServeSecondCallFromCache(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		json.NewEncoder(w).Encode(searchResponse{Organic: []organicResult{
			{Title: "Loreal hit", Snippet: "s", Link: "https://www.loreal.com/x"},
		}})
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	first, err := c.Search("moisturizer")
	if err != nil {
		t.Fatalf("first Search: %v", err)
	}
	second, err := c.Search("moisturizer")
	if err != nil {
		t.Fatalf("second Search: %v", err)
	}

	if calls != 1 {
		t.Fatalf("server hit %d times, want 1", calls)
	}
	if len(second) != len(first) || second[0] != first[0] {
		t.Fatalf("cached results differ: %+v vs %+v", second, first)
	}
}

func TestSearch_WhenServerErrors_ShouldReturnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	if _, err := c.Search("serum"); err == nil {
		t.Fatal("expected error on non-200 response")
	}
}

func TestFormatContext_WhenEmpty_ShouldReturnEmptyString(t *testing.T) {
	if got := FormatContext(nil); got != "" {
		t.Fatalf("FormatContext(nil) = %q, want empty", got)
	}
}

func TestFormatContext_ShouldRenderHeaderAndSourceLines(t *testing.T) {
	got := FormatContext([]Result{
		{Title: "Revitalift", Snippet: "anti-aging serum", Link: "https://www.loreal.com/r"},
	})

	if !strings.Contains(got, "Current web information:") {
		t.Fatalf("missing header in %q", got)
	}
	if !strings.Contains(got, "- Revitalift: anti-aging serum (Source: https://www.loreal.com/r)") {
		t.Fatalf("missing result line in %q", got)
	}
}

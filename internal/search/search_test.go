package search

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"vidgrab/internal/models"
)

const resultsPage = `<!DOCTYPE html><html><head><title>results</title></head><body>
<script nonce="x">var ytInitialData = {"contents":{"twoColumnSearchResultsRenderer":{"primaryContents":{"sectionListRenderer":{"contents":[{"itemSectionRenderer":{"contents":[
{"videoRenderer":{"videoId":"aaa111","title":{"runs":[{"text":"First "},{"text":"Video"}]},"ownerText":{"runs":[{"text":"Chan A"}]},"lengthText":{"simpleText":"3:32"},"thumbnail":{"thumbnails":[{"url":"https://i.ytimg.com/a-small.jpg"},{"url":"https://i.ytimg.com/a-large.jpg"}]}}},
{"adSlotRenderer":{"id":"ignored"}},
{"videoRenderer":{"videoId":"bbb222","title":{"runs":[{"text":"Second"}]},"longBylineText":{"runs":[{"text":"Chan B"}]},"thumbnail":{"thumbnails":[]}}},
{"videoRenderer":{"videoId":"aaa111","title":{"runs":[{"text":"Duplicate"}]}}},
{"videoRenderer":{"videoId":"ccc333","title":{"simpleText":"Third"},"lengthText":{"simpleText":"1:02:03"}}}
]}}]}}}}};</script>
</body></html>`

func TestExtractInitialData(t *testing.T) {
	t.Parallel()

	raw, err := extractInitialData([]byte(resultsPage))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if raw[0] != '{' || raw[len(raw)-1] != '}' {
		t.Fatalf("extracted data is not a single object: %s", raw[:20])
	}

	if _, err := extractInitialData([]byte("<html>nothing</html>")); err == nil {
		t.Fatal("expected error when the marker is missing")
	}
	if _, err := extractInitialData([]byte("var ytInitialData = {broken")); err == nil {
		t.Fatal("expected error for malformed data")
	}
}

func TestParseVideoRenderers(t *testing.T) {
	t.Parallel()

	raw, err := extractInitialData([]byte(resultsPage))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	results, err := parseVideoRenderers(raw, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []models.SearchResult{
		{
			ID:        "aaa111",
			Title:     "First Video",
			Channel:   "Chan A",
			Duration:  "3:32",
			Thumbnail: "https://i.ytimg.com/a-large.jpg",
			URL:       "https://www.youtube.com/watch?v=aaa111",
		},
		{
			ID:       "bbb222",
			Title:    "Second",
			Channel:  "Chan B",
			Duration: "LIVE",
			URL:      "https://www.youtube.com/watch?v=bbb222",
		},
		{
			ID:       "ccc333",
			Title:    "Third",
			Duration: "1:02:03",
			URL:      "https://www.youtube.com/watch?v=ccc333",
		},
	}

	if len(results) != len(want) {
		t.Fatalf("got %d results, want %d: %+v", len(results), len(want), results)
	}
	for i := range want {
		if results[i] != want[i] {
			t.Errorf("result %d = %+v, want %+v", i, results[i], want[i])
		}
	}
}

func TestParseVideoRenderersLimit(t *testing.T) {
	t.Parallel()

	raw, err := extractInitialData([]byte(resultsPage))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	results, err := parseVideoRenderers(raw, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 || results[0].ID != "aaa111" {
		t.Fatalf("limit not honored: %+v", results)
	}
}

type fakeCookies struct {
	set      *models.CookieSet
	cleanups atomic.Int32
}

func (f *fakeCookies) Acquire(_ context.Context, _ string) (*models.CookieSet, func()) {
	return f.set, func() { f.cleanups.Add(1) }
}

func TestScraperSearch(t *testing.T) {
	t.Parallel()

	var (
		mu                  sync.Mutex
		gotQuery, gotCookie string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		gotQuery = r.URL.Query().Get("search_query")
		if c, err := r.Cookie("SID"); err == nil {
			gotCookie = c.Value
		}
		mu.Unlock()
		fmt.Fprint(w, resultsPage)
	}))
	defer srv.Close()

	fc := &fakeCookies{set: &models.CookieSet{
		Source:  models.CookieSourceFile,
		Cookies: []*http.Cookie{{Name: "SID", Value: "secret", Path: "/"}},
	}}

	s := NewScraper(fc)
	s.resultsURL = srv.URL + "/results"

	results, err := s.Search(context.Background(), "lofi beats", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	mu.Lock()
	defer mu.Unlock()
	if gotQuery != "lofi beats" {
		t.Errorf("server saw query %q", gotQuery)
	}
	if gotCookie != "secret" {
		t.Errorf("server saw cookie %q, want secret", gotCookie)
	}
	if fc.cleanups.Load() != 1 {
		t.Errorf("cookie cleanup ran %d times, want 1", fc.cleanups.Load())
	}
}

func TestScraperSearchHTTPError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	s := NewScraper(nil)
	s.resultsURL = srv.URL

	if _, err := s.Search(context.Background(), "anything", 5); err == nil {
		t.Fatal("expected error for non-2xx response")
	}
}

type countingProvider struct {
	calls   atomic.Int32
	results []models.SearchResult
	err     error
}

func (p *countingProvider) Search(_ context.Context, _ string, _ int) ([]models.SearchResult, error) {
	p.calls.Add(1)
	return p.results, p.err
}

func TestCoalescedSearch(t *testing.T) {
	t.Parallel()

	p := &countingProvider{results: []models.SearchResult{{ID: "x"}}}
	c := NewCoalesced(p)

	results, err := c.Search(context.Background(), "  query  ", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 || results[0].ID != "x" {
		t.Fatalf("unexpected results: %+v", results)
	}

	results[0].ID = "mutated"
	if p.results[0].ID != "x" {
		t.Fatal("caller mutation leaked into provider results")
	}

	if results, err := c.Search(context.Background(), "   ", 5); err != nil || results != nil {
		t.Fatalf("blank query should return nothing, got %v, %v", results, err)
	}
	if p.calls.Load() != 1 {
		t.Fatalf("provider called %d times, want 1", p.calls.Load())
	}
}

func TestCoalescedSearchError(t *testing.T) {
	t.Parallel()

	want := errors.New("provider down")
	c := NewCoalesced(&countingProvider{err: want})

	if _, err := c.Search(context.Background(), "q", 3); !errors.Is(err, want) {
		t.Fatalf("expected provider error, got %v", err)
	}
}

func TestCoalescedSearchCancelled(t *testing.T) {
	t.Parallel()

	block := make(chan struct{})
	defer close(block)

	c := NewCoalesced(blockingProvider(block))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := c.Search(ctx, "q", 3); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

type blockingProvider chan struct{}

func (b blockingProvider) Search(ctx context.Context, _ string, _ int) ([]models.SearchResult, error) {
	<-b
	return nil, nil
}

func TestNew(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"", "ytsearch", "SCRAPE"} {
		if _, err := New(name, nil); err != nil {
			t.Errorf("New(%q) error: %v", name, err)
		}
	}
	if _, err := New("bing", nil); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestParseVideoRenderersObjectKeysSorted(t *testing.T) {
	t.Parallel()

	raw := []byte(`{"zeta":{"videoRenderer":{"videoId":"zzz","title":{"simpleText":"Z"}}},` +
		`"alpha":{"videoRenderer":{"videoId":"aaa","title":{"simpleText":"A"}}},` +
		`"mid":[{"videoRenderer":{"videoId":"m2"}},{"videoRenderer":{"videoId":"m1"}}]}`)

	results, err := parseVideoRenderers(raw, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got []string
	for _, r := range results {
		got = append(got, r.ID)
	}
	want := []string{"aaa", "m2", "m1", "zzz"}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
}

func TestYtSearchCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := (YtSearch{}).Search(ctx, "anything", 5); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

package search

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/Victor6825/Aurora-Finance-Tracking-AI/internal/service/cache"
	xhttp "github.com/Victor6825/Aurora-Finance-Tracking-AI/pkg/http"
)

type countingTransport struct {
	calls int
	body  string
}

func (t *countingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	t.calls++
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(bytes.NewReader([]byte(t.body))),
		Header:     make(http.Header),
	}, nil
}

func newClient(t *countingTransport) *Client {
	hc := xhttp.NewClient(xhttp.WithTransport(t), xhttp.WithTimeout(time.Second))
	sc := cache.NewSearchCache(time.Minute, 10, nil)
	return New("test-key", "https://search.test", 5, hc, sc, nil)
}

func TestSearchBlockedBySafetyFilter(t *testing.T) {
	rt := &countingTransport{body: `{"results":[{"title":"t","url":"u"}]}`}
	c := newClient(rt)

	got, err := c.Search(context.Background(), "what is my card number")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no results, got %v", got)
	}
	if rt.calls != 0 {
		t.Fatalf("unsafe question must never reach the provider, got %d calls", rt.calls)
	}
}

func TestSearchSkippedWithoutTrigger(t *testing.T) {
	rt := &countingTransport{body: `{"results":[]}`}
	c := newClient(rt)

	if _, err := c.Search(context.Background(), "please help me plan my week"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rt.calls != 0 {
		t.Fatalf("non-trigger question should not hit the provider, got %d calls", rt.calls)
	}
}

func TestSearchSkippedWithoutCredential(t *testing.T) {
	rt := &countingTransport{body: `{"results":[{"title":"t","url":"u"}]}`}
	hc := xhttp.NewClient(xhttp.WithTransport(rt))
	c := New("", "https://search.test", 5, hc, cache.NewSearchCache(time.Minute, 10, nil), nil)

	got, err := c.Search(context.Background(), "latest market news")
	if err != nil || len(got) != 0 || rt.calls != 0 {
		t.Fatalf("missing credential must degrade silently: got=%v err=%v calls=%d", got, err, rt.calls)
	}
}

func TestSearchServedFromCacheOnRepeat(t *testing.T) {
	rt := &countingTransport{body: `{"results":[{"title":"CPI report","url":"https://example.com","content":"snippet"}]}`}
	c := newClient(rt)

	first, err := c.Search(context.Background(), "latest inflation news")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first) != 1 || rt.calls != 1 {
		t.Fatalf("expected one network call with one result, got %d calls, %v", rt.calls, first)
	}

	second, err := c.Search(context.Background(), "latest inflation news")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rt.calls != 1 {
		t.Fatalf("repeat within TTL must be served from cache, got %d calls", rt.calls)
	}
	if len(second) != 1 || second[0].Title != "CPI report" {
		t.Fatalf("unexpected cached results %v", second)
	}
}

func TestSearchEmptyResultNotCached(t *testing.T) {
	rt := &countingTransport{body: `{"results":[]}`}
	c := newClient(rt)

	for i := 0; i < 2; i++ {
		if _, err := c.Search(context.Background(), "latest obscure market topic"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if rt.calls != 2 {
		t.Fatalf("empty results must not be cached, got %d calls", rt.calls)
	}
}

func TestSearchCapsResults(t *testing.T) {
	rt := &countingTransport{body: `{"results":[
		{"title":"1","url":"u1"},{"title":"2","url":"u2"},{"title":"3","url":"u3"},
		{"title":"4","url":"u4"},{"title":"5","url":"u5"},{"title":"6","url":"u6"}]}`}
	c := newClient(rt)

	got, err := c.Search(context.Background(), "latest market movers")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("expected 5 results max, got %d", len(got))
	}
}

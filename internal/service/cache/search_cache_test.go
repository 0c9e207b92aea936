package cache

import (
	"testing"
	"time"

	"github.com/Victor6825/Aurora-Finance-Tracking-AI/internal/domain/models"
)

func results(title string) []models.WebSearchResult {
	return []models.WebSearchResult{{Title: title, URL: "https://example.com/" + title}}
}

func TestSearchCacheGetPut(t *testing.T) {
	c := NewSearchCache(time.Minute, 10, nil)

	if _, ok := c.Get("q"); ok {
		t.Fatalf("expected miss on empty cache")
	}
	c.Put("q", results("a"))
	got, ok := c.Get("q")
	if !ok {
		t.Fatalf("expected hit")
	}
	if got[0].Title != "a" {
		t.Fatalf("unexpected result %+v", got)
	}
}

func TestSearchCacheNeverStoresEmpty(t *testing.T) {
	c := NewSearchCache(time.Minute, 10, nil)
	c.Put("q", nil)
	c.Put("q", []models.WebSearchResult{})
	if c.Len() != 0 {
		t.Fatalf("expected empty cache, got %d entries", c.Len())
	}
}

func TestSearchCacheTTLExpiry(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	c := NewSearchCache(5*time.Minute, 10, clock)

	c.Put("q", results("a"))
	now = now.Add(5 * time.Minute)
	if _, ok := c.Get("q"); !ok {
		t.Fatalf("entry at exactly TTL should still be served")
	}
	now = now.Add(time.Second)
	if _, ok := c.Get("q"); ok {
		t.Fatalf("expired entry must be treated as absent")
	}
	if c.Len() != 0 {
		t.Fatalf("expired entry should be removed on lookup")
	}
}

func TestSearchCacheFIFOEviction(t *testing.T) {
	c := NewSearchCache(time.Minute, 3, nil)

	c.Put("q1", results("a"))
	c.Put("q2", results("b"))
	c.Put("q3", results("c"))

	// Access q1 so LRU would keep it; FIFO must still evict it first.
	if _, ok := c.Get("q1"); !ok {
		t.Fatalf("expected q1 present")
	}

	c.Put("q4", results("d"))
	if c.Len() != 3 {
		t.Fatalf("capacity bound violated: %d entries", c.Len())
	}
	if _, ok := c.Get("q1"); ok {
		t.Fatalf("oldest-inserted entry q1 should have been evicted")
	}
	for _, q := range []string{"q2", "q3", "q4"} {
		if _, ok := c.Get(q); !ok {
			t.Fatalf("expected %s present", q)
		}
	}
}

func TestSearchCacheReinsertResetsOrder(t *testing.T) {
	c := NewSearchCache(time.Minute, 2, nil)

	c.Put("q1", results("a"))
	c.Put("q2", results("b"))
	c.Put("q1", results("a2")) // refresh moves q1 to the back
	c.Put("q3", results("c"))  // evicts q2, now the oldest

	if _, ok := c.Get("q2"); ok {
		t.Fatalf("q2 should have been evicted after q1 refresh")
	}
	got, ok := c.Get("q1")
	if !ok || got[0].Title != "a2" {
		t.Fatalf("expected refreshed q1, got %+v ok=%v", got, ok)
	}
}

func TestSearchCacheConcurrentBound(t *testing.T) {
	c := NewSearchCache(time.Minute, 8, nil)
	done := make(chan struct{})
	for g := 0; g < 4; g++ {
		go func(g int) {
			defer func() { done <- struct{}{} }()
			for i := 0; i < 100; i++ {
				q := string(rune('a'+g)) + string(rune('0'+i%10))
				c.Put(q, results(q))
				c.Get(q)
			}
		}(g)
	}
	for g := 0; g < 4; g++ {
		<-done
	}
	if c.Len() > 8 {
		t.Fatalf("capacity bound violated under concurrency: %d", c.Len())
	}
}

package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Victor6825/Aurora-Finance-Tracking-AI/internal/domain/models"
	"github.com/Victor6825/Aurora-Finance-Tracking-AI/internal/domain/repository"
	"github.com/Victor6825/Aurora-Finance-Tracking-AI/pkg/logger"
)

type fakeStore struct {
	profile  models.FinancialProfile
	txs      []models.Transaction
	txErr    error
	gotLimit int
}

func (f *fakeStore) Profile(ctx context.Context, userID string) (models.FinancialProfile, error) {
	return f.profile, nil
}

func (f *fakeStore) RecentTransactions(ctx context.Context, userID string, limit int) ([]models.Transaction, error) {
	f.gotLimit = limit
	if f.txErr != nil {
		return nil, f.txErr
	}
	if limit < len(f.txs) {
		return f.txs[:limit], nil
	}
	return f.txs, nil
}

type fakeRates struct {
	rates map[string]float64
	err   error
}

func (f *fakeRates) Rates(ctx context.Context, base string, symbols []string) (map[string]float64, error) {
	return f.rates, f.err
}

type fakeQuotes struct {
	quotes map[string]models.StockQuote
	seen   []string
}

func (f *fakeQuotes) Quotes(ctx context.Context, symbols []string) (map[string]models.StockQuote, error) {
	f.seen = symbols
	return f.quotes, nil
}

type fakeCrypto struct {
	prices map[string]float64
}

func (f *fakeCrypto) Prices(ctx context.Context, symbols []string, vsCurrency string) (map[string]float64, error) {
	return f.prices, nil
}

type fakeSearch struct {
	results []models.WebSearchResult
	err     error
}

func (f *fakeSearch) Search(ctx context.Context, question string) ([]models.WebSearchResult, error) {
	return f.results, f.err
}

type fakeResponder struct {
	last   *models.AnswerContext
	answer models.Answer
}

func (f *fakeResponder) Answer(ctx context.Context, in *models.AnswerContext) models.Answer {
	f.last = in
	return f.answer
}

type fakePublisher struct {
	events chan models.AnsweredEvent
}

func (f *fakePublisher) PublishAnswered(ctx context.Context, ev models.AnsweredEvent) error {
	f.events <- ev
	return nil
}

func (f *fakePublisher) Close() error { return nil }

type fakeMetrics struct {
	mu         sync.Mutex
	connectors []string
}

func (m *fakeMetrics) RecordRequest(status string)       {}
func (m *fakeMetrics) RecordCacheEvent(cache, ev string) {}
func (m *fakeMetrics) RecordAnswerLatency(mode string, seconds float64) {
}

func (m *fakeMetrics) RecordConnectorError(connector string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connectors = append(m.connectors, connector)
}

func newTestChat(store *fakeStore, rates *fakeRates, quotes *fakeQuotes, crypto *fakeCrypto, search *fakeSearch, resp *fakeResponder, pub *fakePublisher, m *fakeMetrics) *Chat {
	var p repository.Publisher
	if pub != nil {
		p = pub
	}
	return NewChat(store, rates, quotes, crypto, search, resp, p, m, logger.Nop(), Options{
		FXBase:    "USD",
		FXSymbols: []string{"EUR", "GBP", "JPY"},
	})
}

func request(question string) *models.ChatRequest {
	return &models.ChatRequest{
		UserID: "anonymous",
		Messages: []models.ChatMessage{
			{Role: models.RoleUser, Text: question},
		},
	}
}

func TestAnswerAssemblesContextAndLiveData(t *testing.T) {
	store := &fakeStore{
		profile: models.FinancialProfile{UserID: "anonymous", Currency: "USD", MonthlyIncome: 5200},
		txs: []models.Transaction{
			{ID: "t1", Amount: decimal.NewFromInt(-40), Category: "food"},
			{ID: "t2", Amount: decimal.NewFromInt(-12), Category: "transport"},
		},
	}
	rates := &fakeRates{rates: map[string]float64{"EUR": 0.91, "JPY": 147.2}}
	quotes := &fakeQuotes{quotes: map[string]models.StockQuote{"AAPL": {Price: 232.1, Currency: "USD"}}}
	crypto := &fakeCrypto{prices: map[string]float64{"BTC": 64100}}
	search := &fakeSearch{results: []models.WebSearchResult{{Title: "Apple earnings", URL: "https://example.com/a"}}}
	resp := &fakeResponder{answer: models.Answer{Text: "answer", Confidence: 0.92}}
	m := &fakeMetrics{}

	u := newTestChat(store, rates, quotes, crypto, search, resp, nil, m)
	res := u.Answer(context.Background(), request("What is the latest price of Apple stock and BTC?"))

	if resp.last == nil {
		t.Fatal("responder was not invoked")
	}
	if resp.last.Question != "What is the latest price of Apple stock and BTC?" {
		t.Errorf("question = %q", resp.last.Question)
	}
	if len(resp.last.Transactions) != 2 {
		t.Errorf("transactions = %d, want 2", len(resp.last.Transactions))
	}
	if len(resp.last.WebResults) != 1 {
		t.Errorf("web results = %d, want 1", len(resp.last.WebResults))
	}
	if got := quotes.seen; len(got) != 1 || got[0] != "AAPL" {
		t.Errorf("detected stocks = %v, want [AAPL]", got)
	}

	if got := res.Live.FXSymbols; len(got) != 2 || got[0] != "EUR" || got[1] != "JPY" {
		t.Errorf("fx symbols = %v, want [EUR JPY] in request order", got)
	}
	if got := res.Live.Stocks; len(got) != 1 || got[0] != "AAPL" {
		t.Errorf("stocks = %v", got)
	}
	if got := res.Live.Crypto; len(got) != 1 || got[0] != "BTC" {
		t.Errorf("crypto = %v", got)
	}
	if res.Live.TransactionCount != 2 {
		t.Errorf("transaction count = %d, want 2", res.Live.TransactionCount)
	}
	if len(m.connectors) != 0 {
		t.Errorf("unexpected connector errors: %v", m.connectors)
	}
}

func TestAnswerSurvivesConnectorFailures(t *testing.T) {
	store := &fakeStore{
		profile: models.FinancialProfile{UserID: "anonymous", Currency: "USD"},
		txErr:   errors.New("store down"),
	}
	rates := &fakeRates{err: errors.New("fx down")}
	quotes := &fakeQuotes{}
	crypto := &fakeCrypto{}
	search := &fakeSearch{err: errors.New("search down")}
	resp := &fakeResponder{answer: models.Answer{Text: "still answered", Confidence: 0.78}}
	m := &fakeMetrics{}

	u := newTestChat(store, rates, quotes, crypto, search, resp, nil, m)
	res := u.Answer(context.Background(), request("How should I budget?"))

	if res.Answer.Text != "still answered" {
		t.Fatalf("answer = %q", res.Answer.Text)
	}
	if res.Live.TransactionCount != 0 {
		t.Errorf("transaction count = %d, want 0 after failure", res.Live.TransactionCount)
	}
	if len(resp.last.WebResults) != 0 {
		t.Errorf("web results = %d, want 0 after failure", len(resp.last.WebResults))
	}

	m.mu.Lock()
	errored := map[string]bool{}
	for _, c := range m.connectors {
		errored[c] = true
	}
	m.mu.Unlock()
	for _, want := range []string{"transactions", "fx", "search"} {
		if !errored[want] {
			t.Errorf("connector %q error not recorded, got %v", want, m.connectors)
		}
	}
}

func TestAnswerEnforcesSourcesInvariant(t *testing.T) {
	quotes := &fakeQuotes{}
	crypto := &fakeCrypto{}
	m := &fakeMetrics{}

	t.Run("nil sources become empty and unset usedSearch", func(t *testing.T) {
		resp := &fakeResponder{answer: models.Answer{Text: "a", Confidence: 0.78, Sources: nil, UsedSearch: true}}
		u := newTestChat(&fakeStore{}, &fakeRates{}, quotes, crypto, &fakeSearch{}, resp, nil, m)
		res := u.Answer(context.Background(), request("hello"))
		if res.Answer.Sources == nil {
			t.Fatal("sources must never be nil")
		}
		if res.Answer.UsedSearch {
			t.Error("usedSearch must be false when sources are empty")
		}
	})

	t.Run("non-empty sources set usedSearch", func(t *testing.T) {
		resp := &fakeResponder{answer: models.Answer{
			Text:       "a",
			Confidence: 0.92,
			Sources:    []models.WebSearchResult{{Title: "x", URL: "https://x"}},
		}}
		u := newTestChat(&fakeStore{}, &fakeRates{}, quotes, crypto, &fakeSearch{}, resp, nil, m)
		res := u.Answer(context.Background(), request("hello"))
		if !res.Answer.UsedSearch {
			t.Error("usedSearch must be true when sources are present")
		}
	})
}

func TestAnswerUsesConfiguredTransactionLimit(t *testing.T) {
	resp := &fakeResponder{answer: models.Answer{Text: "a", Confidence: 0.78}}
	m := &fakeMetrics{}

	store := &fakeStore{}
	u := NewChat(store, &fakeRates{}, &fakeQuotes{}, &fakeCrypto{}, &fakeSearch{}, resp, nil, m, logger.Nop(), Options{
		TransactionLimit: 5,
	})
	u.Answer(context.Background(), request("hello"))
	if store.gotLimit != 5 {
		t.Errorf("transaction limit = %d, want configured 5", store.gotLimit)
	}

	store = &fakeStore{}
	u = NewChat(store, &fakeRates{}, &fakeQuotes{}, &fakeCrypto{}, &fakeSearch{}, resp, nil, m, logger.Nop(), Options{})
	u.Answer(context.Background(), request("hello"))
	if store.gotLimit != DefaultTransactionLimit {
		t.Errorf("transaction limit = %d, want default %d", store.gotLimit, DefaultTransactionLimit)
	}
}

func TestAnswerPublishesAnsweredEvent(t *testing.T) {
	pub := &fakePublisher{events: make(chan models.AnsweredEvent, 1)}
	resp := &fakeResponder{answer: models.Answer{Text: "a", Confidence: 0.92}}
	u := newTestChat(&fakeStore{}, &fakeRates{}, &fakeQuotes{}, &fakeCrypto{}, &fakeSearch{}, resp, pub, &fakeMetrics{})

	u.Answer(context.Background(), request("How should I budget?"))

	select {
	case ev := <-pub.events:
		if ev.UserID != "anonymous" {
			t.Errorf("event user = %q", ev.UserID)
		}
		if ev.Confidence != 0.92 {
			t.Errorf("event confidence = %v", ev.Confidence)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("answered event not published")
	}
}

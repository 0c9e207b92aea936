// Package usecase coordinates the per-request gathering of user and market
// context and the generation of one answer.
package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/Victor6825/Aurora-Finance-Tracking-AI/internal/domain/models"
	"github.com/Victor6825/Aurora-Finance-Tracking-AI/internal/domain/repository"
	"github.com/Victor6825/Aurora-Finance-Tracking-AI/internal/service/instruments"
	"github.com/Victor6825/Aurora-Finance-Tracking-AI/internal/service/knowledge"
	"github.com/Victor6825/Aurora-Finance-Tracking-AI/pkg/logger"
)

const (
	// DefaultConnectorTimeout bounds each upstream call so one slow
	// provider cannot stall the whole response.
	DefaultConnectorTimeout = 4 * time.Second

	// DefaultTransactionLimit caps the recent-transactions query.
	DefaultTransactionLimit = 25
)

// Options groups the per-deployment knobs of the chat pipeline.
type Options struct {
	FXBase           string
	FXSymbols        []string
	VsCurrency       string
	ConnectorTimeout time.Duration
	TransactionLimit int
}

// Chat fans out to the connectors, assembles the answer context and invokes
// the responder. It holds no per-request state.
type Chat struct {
	store     repository.ProfileStore
	rates     repository.RateSource
	stocks    repository.QuoteSource
	crypto    repository.CryptoSource
	search    repository.SearchSource
	responder repository.Responder
	publisher repository.Publisher // nil when analytics is disabled
	metrics   repository.Metrics
	log       *logger.Logger
	opts      Options
}

func NewChat(
	store repository.ProfileStore,
	rates repository.RateSource,
	stocks repository.QuoteSource,
	crypto repository.CryptoSource,
	search repository.SearchSource,
	responder repository.Responder,
	publisher repository.Publisher,
	metrics repository.Metrics,
	log *logger.Logger,
	opts Options,
) *Chat {
	if opts.ConnectorTimeout <= 0 {
		opts.ConnectorTimeout = DefaultConnectorTimeout
	}
	if opts.FXBase == "" {
		opts.FXBase = "USD"
	}
	if opts.VsCurrency == "" {
		opts.VsCurrency = "usd"
	}
	if opts.TransactionLimit <= 0 {
		opts.TransactionLimit = DefaultTransactionLimit
	}
	return &Chat{
		store:     store,
		rates:     rates,
		stocks:    stocks,
		crypto:    crypto,
		search:    search,
		responder: responder,
		publisher: publisher,
		metrics:   metrics,
		log:       log,
		opts:      opts,
	}
}

// Result is one answered request plus its live-data summary.
type Result struct {
	Answer models.Answer
	Live   models.LiveData
}

// Answer runs the full pipeline for one request. Connector failures degrade
// to documented defaults; this method always returns a usable result.
func (u *Chat) Answer(ctx context.Context, req *models.ChatRequest) Result {
	start := time.Now()
	question := req.Question()
	stockSyms, cryptoSyms := instruments.Detect(question)

	var (
		profile models.FinancialProfile
		txs     []models.Transaction
		fx      map[string]float64
		stockQs map[string]models.StockQuote
		cryptoP map[string]float64
		web     []models.WebSearchResult
	)

	var wg sync.WaitGroup
	wg.Add(6)

	go func() {
		defer wg.Done()
		cctx, cancel := u.connectorCtx(ctx)
		defer cancel()
		p, err := u.store.Profile(cctx, req.UserID)
		if err != nil {
			u.degraded("profile", err)
		}
		profile = p
	}()

	go func() {
		defer wg.Done()
		cctx, cancel := u.connectorCtx(ctx)
		defer cancel()
		rows, err := u.store.RecentTransactions(cctx, req.UserID, u.opts.TransactionLimit)
		if err != nil {
			u.degraded("transactions", err)
			rows = nil
		}
		txs = rows
	}()

	go func() {
		defer wg.Done()
		cctx, cancel := u.connectorCtx(ctx)
		defer cancel()
		m, err := u.rates.Rates(cctx, u.opts.FXBase, u.opts.FXSymbols)
		if err != nil {
			u.degraded("fx", err)
		}
		fx = m
	}()

	go func() {
		defer wg.Done()
		cctx, cancel := u.connectorCtx(ctx)
		defer cancel()
		m, err := u.stocks.Quotes(cctx, stockSyms)
		if err != nil {
			u.degraded("stocks", err)
		}
		stockQs = m
	}()

	go func() {
		defer wg.Done()
		cctx, cancel := u.connectorCtx(ctx)
		defer cancel()
		m, err := u.crypto.Prices(cctx, cryptoSyms, u.opts.VsCurrency)
		if err != nil {
			u.degraded("crypto", err)
		}
		cryptoP = m
	}()

	go func() {
		defer wg.Done()
		cctx, cancel := u.connectorCtx(ctx)
		defer cancel()
		res, err := u.search.Search(cctx, question)
		if err != nil {
			u.degraded("search", err)
			res = nil
		}
		web = res
	}()

	wg.Wait()

	in := &models.AnswerContext{
		Question:     question,
		Conversation: req.Messages,
		Profile:      profile,
		Transactions: txs,
		Market: models.MarketSnapshot{
			FXRates:      nonNilMap(fx),
			StockQuotes:  nonNilQuotes(stockQs),
			CryptoPrices: nonNilMap(cryptoP),
		},
		Snippets:   knowledge.Snippets(question),
		WebResults: web,
	}

	ans := u.responder.Answer(ctx, in)
	if ans.Sources == nil {
		ans.Sources = []models.WebSearchResult{}
	}
	// usedSearch is true exactly when sources are present
	ans.UsedSearch = len(ans.Sources) > 0

	res := Result{
		Answer: ans,
		Live: models.LiveData{
			FXSymbols:        mapKeysOrdered(fx, u.opts.FXSymbols),
			Stocks:           quoteKeysOrdered(stockQs, stockSyms),
			Crypto:           mapKeysOrdered(cryptoP, cryptoSyms),
			TransactionCount: len(txs),
		},
	}
	u.publishAnswered(req.UserID, question, ans, time.Since(start))
	return res
}

func (u *Chat) connectorCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, u.opts.ConnectorTimeout)
}

func (u *Chat) degraded(connector string, err error) {
	u.metrics.RecordConnectorError(connector)
	u.log.Warn("connector degraded to default", logger.String("connector", connector), logger.Error(err))
}

// publishAnswered emits the analytics event without blocking the response.
func (u *Chat) publishAnswered(userID, question string, ans models.Answer, latency time.Duration) {
	if u.publisher == nil {
		return
	}
	ev := models.AnsweredEvent{
		UserID:     userID,
		Question:   question,
		Confidence: ans.Confidence,
		UsedSearch: ans.UsedSearch,
		LatencyMs:  latency.Milliseconds(),
		Timestamp:  time.Now().Unix(),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := u.publisher.PublishAnswered(ctx, ev); err != nil {
			u.log.Warn("answered event publish failed", logger.Error(err))
		}
	}()
}

// mapKeysOrdered returns the requested symbols present in m, preserving
// request order so the envelope is deterministic.
func mapKeysOrdered(m map[string]float64, requested []string) []string {
	out := []string{}
	for _, s := range requested {
		if _, ok := m[s]; ok {
			out = append(out, s)
		}
	}
	return out
}

func quoteKeysOrdered(m map[string]models.StockQuote, requested []string) []string {
	out := []string{}
	for _, s := range requested {
		if _, ok := m[s]; ok {
			out = append(out, s)
		}
	}
	return out
}

func nonNilMap(m map[string]float64) map[string]float64 {
	if m == nil {
		return map[string]float64{}
	}
	return m
}

func nonNilQuotes(m map[string]models.StockQuote) map[string]models.StockQuote {
	if m == nil {
		return map[string]models.StockQuote{}
	}
	return m
}

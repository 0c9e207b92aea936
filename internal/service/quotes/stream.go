package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Victor6825/Aurora-Finance-Tracking-AI/pkg/logger"

	"github.com/gorilla/websocket"
)

const DefaultStreamURL = "wss://ws.finnhub.io"

// Stream subscribes to the Finnhub trade websocket and warms the stock quote
// cache with last-trade prices. Entirely optional: the REST quote path works
// without it.
type Stream struct {
	apiKey         string
	websocketURL   string
	symbols        []string
	reconnectDelay time.Duration
	pingInterval   time.Duration

	stocks *StockClient
	log    *logger.Logger
}

func NewStream(apiKey, websocketURL string, symbols []string, reconnectDelay, pingInterval time.Duration, stocks *StockClient, l *logger.Logger) *Stream {
	if websocketURL == "" {
		websocketURL = DefaultStreamURL
	}
	if reconnectDelay <= 0 {
		reconnectDelay = 5 * time.Second
	}
	if pingInterval <= 0 {
		pingInterval = 30 * time.Second
	}
	return &Stream{
		apiKey:         apiKey,
		websocketURL:   websocketURL,
		symbols:        symbols,
		reconnectDelay: reconnectDelay,
		pingInterval:   pingInterval,
		stocks:         stocks,
		log:            l,
	}
}

// Run connects, subscribes and pumps trades into the quote cache until ctx
// is done, reconnecting after errors.
func (s *Stream) Run(ctx context.Context) {
	for {
		if err := s.connectAndPump(ctx); err != nil {
			s.log.Warn("quote stream interrupted", logger.Error(err))
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(s.reconnectDelay):
		}
	}
}

// connectAndPump owns exactly one connection. The ping loop lives on a
// per-connection context so it dies with the connection, and all writes after
// the subscribe phase go through the ping loop only (gorilla/websocket allows
// a single concurrent writer).
func (s *Stream) connectAndPump(ctx context.Context) error {
	u := fmt.Sprintf("%s?token=%s", s.websocketURL, s.apiKey)
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u, nil)
	if err != nil {
		return fmt.Errorf("stream connect: %w", err)
	}
	connCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer conn.Close()

	for _, sym := range s.symbols {
		msg := map[string]string{"type": "subscribe", "symbol": sym}
		if err := conn.WriteJSON(msg); err != nil {
			return fmt.Errorf("subscribe %s: %w", sym, err)
		}
	}
	s.log.Info("quote stream connected", logger.Strings("symbols", s.symbols))

	go s.pingLoop(connCtx, conn)
	return s.readLoop(connCtx, conn)
}

func (s *Stream) pingLoop(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(s.pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

type streamTrade struct {
	Symbol string  `json:"s"`
	Price  float64 `json:"p"`
}

type streamMessage struct {
	Type string        `json:"type"`
	Data []streamTrade `json:"data"`
}

func (s *Stream) readLoop(ctx context.Context, conn *websocket.Conn) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		_, b, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("stream read: %w", err)
		}
		var m streamMessage
		if err := json.Unmarshal(b, &m); err != nil {
			// ignore non-trade frames
			continue
		}
		if m.Type != "trade" {
			continue
		}
		for _, t := range m.Data {
			if t.Symbol != "" && t.Price > 0 {
				s.stocks.Warm(t.Symbol, t.Price)
			}
		}
	}
}

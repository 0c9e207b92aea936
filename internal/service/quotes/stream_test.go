package quotes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Victor6825/Aurora-Finance-Tracking-AI/pkg/logger"
)

// flappingServer accepts websocket upgrades and drops each connection right
// away, forcing the client through its reconnect path on every cycle.
func flappingServer(t *testing.T) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		conn.Close()
	}))
}

func livePingLoops() int {
	buf := make([]byte, 1<<20)
	n := runtime.Stack(buf, true)
	return strings.Count(string(buf[:n]), "pingLoop")
}

func TestStreamReconnectDoesNotAccumulatePingLoops(t *testing.T) {
	srv := flappingServer(t)
	defer srv.Close()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")

	s := NewStream("key", wsURL, []string{"AAPL"}, 5*time.Millisecond, 10*time.Millisecond, nil, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	// Let the client churn through a few dozen reconnect cycles.
	time.Sleep(300 * time.Millisecond)
	// At most the current connection's loop plus one still winding down.
	if n := livePingLoops(); n > 2 {
		t.Errorf("live ping loops after reconnect churn = %d, want at most 2", n)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("stream did not stop after cancellation")
	}
}

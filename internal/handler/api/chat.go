// Package api exposes the chat endpoint and health probe over HTTP.
package api

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Victor6825/Aurora-Finance-Tracking-AI/internal/domain/models"
	"github.com/Victor6825/Aurora-Finance-Tracking-AI/internal/domain/repository"
	"github.com/Victor6825/Aurora-Finance-Tracking-AI/internal/service/ai"
	"github.com/Victor6825/Aurora-Finance-Tracking-AI/internal/service/ratelimit"
	"github.com/Victor6825/Aurora-Finance-Tracking-AI/internal/usecase"
	pkghttp "github.com/Victor6825/Aurora-Finance-Tracking-AI/pkg/http"
	"github.com/Victor6825/Aurora-Finance-Tracking-AI/pkg/http/middleware"
	"github.com/Victor6825/Aurora-Finance-Tracking-AI/pkg/logger"
)

const errInvalidBody = "Invalid request body: missing messages"

// Answerer runs the chat pipeline for one validated request.
type Answerer interface {
	Answer(ctx context.Context, req *models.ChatRequest) usecase.Result
}

// RateLimit configures the per-client token bucket on the chat route.
type RateLimit struct {
	Capacity     float64
	RefillPerSec float64
}

// Connectors reports which credentialed upstreams are configured. Absent
// credentials mean the matching connector serves its documented default.
type Connectors struct {
	Store  bool `json:"store"`
	Stocks bool `json:"stocks"`
	Search bool `json:"search"`
	Model  bool `json:"model"`
}

// ChatHandler owns the /api/chat route.
type ChatHandler struct {
	log        *logger.Logger
	chat       Answerer
	limiter    *ratelimit.Limiter
	metrics    repository.Metrics
	rl         RateLimit
	connectors Connectors
}

func NewChatHandler(log *logger.Logger, chat Answerer, limiter *ratelimit.Limiter, metrics repository.Metrics, rl RateLimit, connectors Connectors) *ChatHandler {
	if rl.Capacity <= 0 {
		rl.Capacity = 20
	}
	if rl.RefillPerSec <= 0 {
		rl.RefillPerSec = 5
	}
	return &ChatHandler{log: log, chat: chat, limiter: limiter, metrics: metrics, rl: rl, connectors: connectors}
}

var _ pkghttp.Handler = (*ChatHandler)(nil)

// RegisterRoutes binds the chat route on every method so non-POST requests
// get the documented 405 envelope instead of echo's default.
func (h *ChatHandler) RegisterRoutes(e *echo.Echo) {
	e.Any("/api/chat", h.Chat, middleware.Metrics())
	e.GET("/healthz", h.Health)
}

func (h *ChatHandler) Chat(c echo.Context) error {
	if c.Request().Method != http.MethodPost {
		h.metrics.RecordRequest("method_not_allowed")
		c.Response().Header().Set(echo.HeaderAllow, http.MethodPost)
		return c.JSON(http.StatusMethodNotAllowed, models.ErrorResponse{Error: "Method Not Allowed"})
	}

	if h.limiter != nil && !h.limiter.Allow(c.RealIP(), h.rl.Capacity, h.rl.RefillPerSec) {
		h.metrics.RecordRequest("rate_limited")
		return c.JSON(http.StatusTooManyRequests, models.ErrorResponse{Error: "Too Many Requests"})
	}

	req := new(models.ChatRequest)
	if err := pkghttp.ReadAndValidateRequest(c, req); err != nil {
		h.metrics.RecordRequest("bad_request")
		h.log.Debug("rejected chat request", logger.Error(err))
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: errInvalidBody})
	}

	resp := h.answer(c.Request().Context(), req)
	if resp.Fallback {
		h.metrics.RecordRequest("fallback")
	} else {
		h.metrics.RecordRequest("ok")
	}
	return c.JSON(http.StatusOK, resp)
}

// answer runs the pipeline and absorbs any panic into the fallback envelope,
// so a valid request can never surface a 5xx.
func (h *ChatHandler) answer(ctx context.Context, req *models.ChatRequest) (resp models.ChatResponse) {
	defer func() {
		if r := recover(); r != nil {
			h.log.Error("chat pipeline panicked", logger.String("panic", panicString(r)))
			resp = fallbackResponse()
		}
	}()

	res := h.chat.Answer(ctx, req)
	return models.ChatResponse{
		Text:         res.Answer.Text,
		Confidence:   res.Answer.Confidence,
		Sources:      res.Answer.Sources,
		UsedSearch:   res.Answer.UsedSearch,
		UsedLiveData: &res.Live,
	}
}

func (h *ChatHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":     "ok",
		"connectors": h.connectors,
	})
}

func fallbackResponse() models.ChatResponse {
	return models.ChatResponse{
		Text:       ai.HeuristicAnswer("").Text,
		Confidence: ai.FallbackConfidence,
		Fallback:   true,
		Sources:    []models.WebSearchResult{},
		UsedSearch: false,
	}
}

func panicString(r interface{}) string {
	if err, ok := r.(error); ok {
		return err.Error()
	}
	if s, ok := r.(string); ok {
		return s
	}
	return "unknown panic"
}

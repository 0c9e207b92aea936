// Package ai generates the chat answer: a language-model path when a
// credential is configured, and a deterministic heuristic otherwise.
package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Victor6825/Aurora-Finance-Tracking-AI/internal/domain/models"
	"github.com/Victor6825/Aurora-Finance-Tracking-AI/internal/domain/repository"
	"github.com/Victor6825/Aurora-Finance-Tracking-AI/pkg/logger"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
)

// DefaultTemperature favors deterministic output.
const DefaultTemperature = 0.2

// historyLimit bounds how many prior turns feed the prompt.
const historyLimit = 10

// ModelConfig carries the conversational-completion provider settings.
type ModelConfig struct {
	APIKey      string
	BaseURL     string
	Region      string
	Model       string
	Temperature float64
}

// Enabled reports whether a model credential is configured.
func (c ModelConfig) Enabled() bool {
	return c.APIKey != "" && c.Model != ""
}

// Responder implements repository.Responder. With no model configured the
// chain is nil and every answer comes from the heuristic.
type Responder struct {
	chain   compose.Runnable[map[string]any, *schema.Message]
	log     *logger.Logger
	metrics repository.Metrics
}

// NewResponder builds the responder. Model construction failures are not
// fatal: the responder degrades to heuristic-only and reports why.
func NewResponder(ctx context.Context, cfg ModelConfig, l *logger.Logger, m repository.Metrics) *Responder {
	r := &Responder{log: l, metrics: m}
	if !cfg.Enabled() {
		l.Info("language model not configured, heuristic responder only")
		return r
	}

	chain, err := buildChain(ctx, cfg)
	if err != nil {
		l.Warn("language model init failed, heuristic responder only", logger.Error(err))
		return r
	}
	r.chain = chain
	return r
}

func buildChain(ctx context.Context, cfg ModelConfig) (compose.Runnable[map[string]any, *schema.Message], error) {
	temp := float32(cfg.Temperature)
	if temp <= 0 {
		temp = DefaultTemperature
	}
	chatModel, err := ark.NewChatModel(ctx, &ark.ChatModelConfig{
		APIKey:      cfg.APIKey,
		BaseURL:     cfg.BaseURL,
		Region:      cfg.Region,
		Model:       cfg.Model,
		Temperature: &temp,
	})
	if err != nil {
		return nil, fmt.Errorf("create chat model: %w", err)
	}

	template := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.SystemMessage("{context}"),
		schema.MessagesPlaceholder("history", true),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(template)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("compile chat chain: %w", err)
	}
	return runnable, nil
}

// Answer produces exactly one answer. Model failures and empty outputs fall
// back to the heuristic; this method never errors.
func (r *Responder) Answer(ctx context.Context, in *models.AnswerContext) models.Answer {
	if r.chain == nil {
		return r.timed("heuristic", func() models.Answer {
			return HeuristicAnswer(in.Question)
		})
	}

	start := time.Now()
	out, err := r.chain.Invoke(ctx, map[string]any{
		"system":  systemPrompt,
		"context": buildContextBlock(in),
		"history": historyMessages(in.Conversation),
		"query":   in.Question,
	})
	if err != nil || out == nil || strings.TrimSpace(out.Content) == "" {
		if err != nil {
			r.log.Warn("model call failed, falling back to heuristic", logger.Error(err))
		}
		r.record("heuristic", time.Since(start))
		return HeuristicAnswer(in.Question)
	}
	r.record("model", time.Since(start))

	sources := in.WebResults
	if len(sources) > promptWebResultLimit {
		sources = sources[:promptWebResultLimit]
	}
	if sources == nil {
		sources = []models.WebSearchResult{}
	}
	return models.Answer{
		Text:       out.Content,
		Confidence: ModelConfidence,
		Sources:    sources,
		UsedSearch: len(sources) > 0,
	}
}

// historyMessages maps prior turns onto model roles, excluding the latest
// user turn which travels as the query.
func historyMessages(conversation []models.ChatMessage) []*schema.Message {
	if len(conversation) <= 1 {
		return nil
	}
	turns := conversation[:len(conversation)-1]
	start := 0
	if len(turns) > historyLimit {
		start = len(turns) - historyLimit
	}
	history := make([]*schema.Message, 0, len(turns)-start)
	for _, msg := range turns[start:] {
		if msg.Role == models.RoleUser {
			history = append(history, schema.UserMessage(msg.Text))
		} else {
			history = append(history, schema.AssistantMessage(msg.Text, nil))
		}
	}
	return history
}

func (r *Responder) timed(mode string, f func() models.Answer) models.Answer {
	start := time.Now()
	ans := f()
	r.record(mode, time.Since(start))
	return ans
}

func (r *Responder) record(mode string, d time.Duration) {
	if r.metrics != nil {
		r.metrics.RecordAnswerLatency(mode, d.Seconds())
	}
}

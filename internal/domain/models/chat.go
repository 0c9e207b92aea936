package models

// Role values accepted on the wire. The dashboard client labels
// assistant-authored turns "ai".
const (
	RoleUser      = "user"
	RoleAssistant = "ai"
)

// ChatMessage is a single conversation turn. Immutable once created.
type ChatMessage struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// ChatRequest is the POST /api/chat body.
type ChatRequest struct {
	UserID   string        `json:"userId" default:"anonymous"`
	Messages []ChatMessage `json:"messages" validate:"required,min=1"`
}

// Question returns the latest user-authored message text. If no message is
// user-authored it falls back to the last message overall, then to "".
func (r *ChatRequest) Question() string {
	for i := len(r.Messages) - 1; i >= 0; i-- {
		if r.Messages[i].Role == RoleUser {
			return r.Messages[i].Text
		}
	}
	if n := len(r.Messages); n > 0 {
		return r.Messages[n-1].Text
	}
	return ""
}

// Answer is the single output unit produced per request. UsedSearch is true
// only when Sources is non-empty.
type Answer struct {
	Text       string
	Confidence float64
	Sources    []WebSearchResult
	UsedSearch bool
}

// LiveData summarizes which live context fed into the answer.
type LiveData struct {
	FXSymbols        []string `json:"fxSymbols"`
	Stocks           []string `json:"stocks"`
	Crypto           []string `json:"crypto"`
	TransactionCount int      `json:"transactionCount"`
}

// ChatResponse is the success/fallback envelope. Sources always marshals as
// an array, never null.
type ChatResponse struct {
	Text         string            `json:"text"`
	Confidence   float64           `json:"confidence"`
	Fallback     bool              `json:"fallback,omitempty"`
	Sources      []WebSearchResult `json:"sources"`
	UsedSearch   bool              `json:"usedSearch"`
	UsedLiveData *LiveData         `json:"usedLiveData,omitempty"`
}

// ErrorResponse is the body for 4xx rejections.
type ErrorResponse struct {
	Error string `json:"error"`
}

// AnsweredEvent is the analytics record published per answered request.
type AnsweredEvent struct {
	UserID     string  `json:"user_id"`
	Question   string  `json:"question"`
	Confidence float64 `json:"confidence"`
	UsedSearch bool    `json:"used_search"`
	Fallback   bool    `json:"fallback"`
	LatencyMs  int64   `json:"latency_ms"`
	Timestamp  int64   `json:"ts"`
}

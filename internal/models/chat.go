package models

import "time"

// Message roles sent upstream.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// CompletionMessage is a single role-tagged entry of an upstream completion request.
type CompletionMessage struct {
	Role    string `json:"role"` // "system" or "user"
	Content string `json:"content"`
}

// ChatRequest is the payload sent to the chat endpoint.
type ChatRequest struct {
	Message string `json:"message"`
}

// Usage mirrors the token accounting reported by the upstream service.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ChatReply is returned to the widget on success.
type ChatReply struct {
	Reply string `json:"reply"`
	Model string `json:"model,omitempty"`
	Usage *Usage `json:"usage,omitempty"`
}

// Completion is the successful result of one upstream call.
type Completion struct {
	Reply string
	Model string
	Usage *Usage
}

// ErrorResponse is the body of every failed chat request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// Outcome tags carried by ChatEvent.
const (
	OutcomeOK              = "ok"
	OutcomeInvalidRequest  = "invalid_request"
	OutcomeMisconfigured   = "misconfigured"
	OutcomeUpstreamError   = "upstream_error"
	OutcomeUnexpectedError = "unexpected_error"
)

// ChatEvent describes one handled chat request. It never carries message text.
type ChatEvent struct {
	RequestID string    `json:"request_id"`
	Provider  string    `json:"provider"`
	Model     string    `json:"model,omitempty"`
	Status    int       `json:"status"`
	Outcome   string    `json:"outcome"`
	LatencyMs int64     `json:"latency_ms"`
	Usage     *Usage    `json:"usage,omitempty"`
	At        time.Time `json:"at"`
}

package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"net/url"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"shopchat-backend/internal/models"
)

// OpenRouterOptions configures an OpenRouterService.
type OpenRouterOptions struct {
	APIKey   string
	BaseURL  string
	Model    string
	AppURL   string // sent as HTTP-Referer
	AppTitle string // sent as X-Title
	Timeout  time.Duration
}

// OpenRouterService talks to OpenRouter through its OpenAI-compatible API.
type OpenRouterService struct {
	client  *openai.Client
	apiKey  string
	model   string
	timeout time.Duration
}

func NewOpenRouterService(opts OpenRouterOptions) *OpenRouterService {
	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}
	cfg.HTTPClient = &http.Client{
		Timeout: opts.Timeout,
		Transport: &headerTransport{
			base: http.DefaultTransport,
			headers: map[string]string{
				"HTTP-Referer": opts.AppURL,
				"X-Title":      opts.AppTitle,
			},
		},
	}

	return &OpenRouterService{
		client:  openai.NewClientWithConfig(cfg),
		apiKey:  opts.APIKey,
		model:   opts.Model,
		timeout: opts.Timeout,
	}
}

func (s *OpenRouterService) Name() string { return "openrouter" }

// Complete sends the persona and message upstream and returns the first choice.
func (s *OpenRouterService) Complete(ctx context.Context, message string) (*models.Completion, error) {
	if s.apiKey == "" {
		log.Println("✗ OpenRouter API key is missing")
		return nil, &ConfigurationError{Message: "OpenRouter API key is missing"}
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	msgs := buildMessages(message)
	req := openai.ChatCompletionRequest{
		Model:       s.model,
		Messages:    make([]openai.ChatCompletionMessage, 0, len(msgs)),
		MaxTokens:   MaxReplyTokens,
		Temperature: ReplyTemperature,
	}
	for _, m := range msgs {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	resp, err := s.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, s.classify(err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		log.Printf("OpenRouter returned no usable choice (model=%s, choices=%d)", resp.Model, len(resp.Choices))
		return nil, &UpstreamError{Status: http.StatusOK, Reason: ReasonInvalidResponse, Detail: "missing choices[0].message.content"}
	}

	completion := &models.Completion{
		Reply: resp.Choices[0].Message.Content,
		Model: resp.Model,
	}
	if resp.Usage.TotalTokens > 0 {
		completion.Usage = &models.Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		}
	}
	return completion, nil
}

// classify maps a go-openai error onto the service error types.
func (s *OpenRouterService) classify(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		log.Printf("OpenRouter API error: status=%d message=%s", apiErr.HTTPStatusCode, Redact(apiErr.Message, s.apiKey))
		return &UpstreamError{Status: apiErr.HTTPStatusCode, Reason: ReasonStatus}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		log.Printf("OpenRouter API error: status=%d", reqErr.HTTPStatusCode)
		return &UpstreamError{Status: reqErr.HTTPStatusCode, Reason: ReasonStatus}
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		log.Printf("OpenRouter request timed out after %s", s.timeout)
		return &UpstreamError{Status: http.StatusGatewayTimeout, Reason: ReasonTimeout}
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) ||
		errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		log.Printf("Invalid response format from OpenRouter: %s", Redact(err.Error(), s.apiKey))
		return &UpstreamError{Status: http.StatusOK, Reason: ReasonInvalidResponse}
	}

	msg := Redact(err.Error(), s.apiKey)
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		log.Printf("OpenRouter request failed: %s", msg)
	} else {
		log.Printf("OpenRouter call failed: %s", msg)
	}
	return &UnexpectedError{Message: fmt.Sprintf("openrouter: %s", msg), Err: err}
}

// headerTransport adds fixed headers to every outgoing request.
type headerTransport struct {
	base    http.RoundTripper
	headers map[string]string
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	for k, v := range t.headers {
		if v != "" {
			req.Header.Set(k, v)
		}
	}
	return t.base.RoundTrip(req)
}

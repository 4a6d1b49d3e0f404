package widget

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"shopchat-backend/internal/models"
)

// StatusError is a non-success answer from the chat endpoint.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("HTTP error! status: %d", e.Status)
	}
	return fmt.Sprintf("HTTP error! status: %d (%s)", e.Status, e.Message)
}

// HTTPReplier asks the chat proxy over HTTP.
type HTTPReplier struct {
	endpoint string
	client   *http.Client
}

func NewHTTPReplier(endpoint string, timeout time.Duration) *HTTPReplier {
	return &HTTPReplier{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

func (c *HTTPReplier) Ask(ctx context.Context, message string) (string, error) {
	body, err := json.Marshal(models.ChatRequest{Message: message})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errBody models.ErrorResponse
		json.NewDecoder(resp.Body).Decode(&errBody)
		return "", &StatusError{Status: resp.StatusCode, Message: errBody.Error}
	}

	var reply models.ChatReply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return "", fmt.Errorf("decode chat reply: %w", err)
	}
	if reply.Reply == "" {
		return "", errors.New("chat reply is empty")
	}
	return reply.Reply, nil
}

package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"shopchat-backend/internal/middleware"
	"shopchat-backend/internal/models"
	"shopchat-backend/internal/services"
)

const (
	maxBodyBytes   = 64 << 10
	previewRunes   = 50
	allowedMethods = "POST, OPTIONS"
)

type ChatHandler struct {
	completer services.Completer
	events    services.EventPublisher
}

func NewChatHandler(completer services.Completer, events services.EventPublisher) *ChatHandler {
	if events == nil {
		events = services.NoopEventPublisher{}
	}
	return &ChatHandler{
		completer: completer,
		events:    events,
	}
}

// Handle serves every method on the chat route: preflight, submit, or 405.
func (h *ChatHandler) Handle(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusOK)
	case http.MethodPost:
		h.Submit(w, r)
	default:
		log.Printf("Chat request rejected: method %s", r.Method)
		w.Header().Set("Allow", allowedMethods)
		writeJSON(w, http.StatusMethodNotAllowed, errorResp("Method not allowed", ""))
	}
}

// Submit forwards one customer message upstream and relays the reply.
func (h *ChatHandler) Submit(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	evt := models.ChatEvent{
		RequestID: r.Header.Get(middleware.RequestIDHeader),
		Provider:  h.completer.Name(),
	}
	respond := func(status int, outcome string, body interface{}) {
		evt.Status = status
		evt.Outcome = outcome
		writeJSON(w, status, body)
	}

	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("✗ Chat handler panic: %v", rec)
			respond(http.StatusInternalServerError, models.OutcomeUnexpectedError,
				errorResp("Internal server error", "unexpected server fault"))
		}
		evt.LatencyMs = time.Since(start).Milliseconds()
		h.events.Publish(r.Context(), evt)
	}()

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(http.StatusBadRequest, models.OutcomeInvalidRequest, errorResp("Invalid request body", ""))
		return
	}

	if strings.TrimSpace(req.Message) == "" {
		respond(http.StatusBadRequest, models.OutcomeInvalidRequest, errorResp("Message is required", ""))
		return
	}

	log.Printf("Chat %s via %s, message: %q", r.Method, h.completer.Name(), services.Preview(req.Message, previewRunes))

	completion, err := h.completer.Complete(r.Context(), req.Message)
	if err != nil {
		status, outcome, body := completionErrorResponse(err)
		log.Printf("✗ Chat request failed (%s): %s", outcome, err)
		respond(status, outcome, body)
		return
	}

	evt.Model = completion.Model
	evt.Usage = completion.Usage
	respond(http.StatusOK, models.OutcomeOK, models.ChatReply{
		Reply: completion.Reply,
		Model: completion.Model,
		Usage: completion.Usage,
	})
}

// completionErrorResponse maps a Completer error onto the HTTP error shape.
func completionErrorResponse(err error) (int, string, models.ErrorResponse) {
	var cfgErr *services.ConfigurationError
	var upErr *services.UpstreamError
	var unexpected *services.UnexpectedError

	switch {
	case errors.As(err, &cfgErr):
		return http.StatusInternalServerError, models.OutcomeMisconfigured,
			errorResp("Server configuration error - API key missing", "")
	case errors.As(err, &upErr):
		msg := "AI service error"
		if upErr.Reason == services.ReasonInvalidResponse || upErr.Reason == services.ReasonBlocked {
			msg = "Invalid response from AI service"
		}
		return http.StatusInternalServerError, models.OutcomeUpstreamError,
			errorResp(msg, fmt.Sprintf("Status: %d", upErr.Status))
	case errors.As(err, &unexpected):
		return http.StatusInternalServerError, models.OutcomeUnexpectedError,
			errorResp("Internal server error", unexpected.Message)
	default:
		return http.StatusInternalServerError, models.OutcomeUnexpectedError,
			errorResp("Internal server error", "An unexpected error occurred")
	}
}

// Shared helpers

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func errorResp(message, details string) models.ErrorResponse {
	return models.ErrorResponse{
		Error:   message,
		Details: details,
	}
}

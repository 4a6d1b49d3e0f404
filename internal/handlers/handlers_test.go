package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"shopchat-backend/internal/models"
)

// ─── JSON Response Tests ───

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()

	writeJSON(rr, http.StatusOK, models.ChatReply{Reply: "Hi there"})

	if rr.Header().Get("Content-Type") != "application/json" {
		t.Errorf("Expected Content-Type 'application/json', got %q", rr.Header().Get("Content-Type"))
	}

	var result map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if result["reply"] != "Hi there" {
		t.Errorf("Expected reply 'Hi there', got %v", result["reply"])
	}
	if _, ok := result["model"]; ok {
		t.Errorf("Expected empty model to be omitted")
	}
	if _, ok := result["usage"]; ok {
		t.Errorf("Expected nil usage to be omitted")
	}
}

func TestErrorResponse(t *testing.T) {
	rr := httptest.NewRecorder()

	writeJSON(rr, http.StatusBadRequest, errorResp("Message is required", ""))

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rr.Code)
	}
	if got := strings.TrimSpace(rr.Body.String()); got != `{"error":"Message is required"}` {
		t.Errorf("Unexpected body %s", got)
	}
}

func TestErrorResponse_WithDetails(t *testing.T) {
	rr := httptest.NewRecorder()

	writeJSON(rr, http.StatusInternalServerError, errorResp("AI service error", "Status: 401"))

	if got := strings.TrimSpace(rr.Body.String()); got != `{"error":"AI service error","details":"Status: 401"}` {
		t.Errorf("Unexpected body %s", got)
	}
}

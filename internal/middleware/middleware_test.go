package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte(r.Header.Get(RequestIDHeader)))
})

func TestRequestID_Generates(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/chat", nil)
	rr := httptest.NewRecorder()

	RequestID(okHandler).ServeHTTP(rr, req)

	id := rr.Header().Get(RequestIDHeader)
	if id == "" {
		t.Fatal("expected a generated request ID")
	}
	if rr.Body.String() != id {
		t.Errorf("handler should see the same ID, got %q vs %q", rr.Body.String(), id)
	}
}

func TestRequestID_KeepsIncoming(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/chat", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rr := httptest.NewRecorder()

	RequestID(okHandler).ServeHTTP(rr, req)

	if got := rr.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("expected incoming ID to be kept, got %q", got)
	}
}

func TestCORS_SetsHeaders(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/chat", nil)
	rr := httptest.NewRecorder()

	CORS("*", "POST, OPTIONS")(okHandler).ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("expected origin '*', got %q", got)
	}
	if got := rr.Header().Get("Access-Control-Allow-Methods"); got != "POST, OPTIONS" {
		t.Errorf("unexpected methods %q", got)
	}
	if got := rr.Header().Get("Access-Control-Allow-Headers"); got != "Content-Type" {
		t.Errorf("unexpected headers %q", got)
	}
}

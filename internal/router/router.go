package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"shopchat-backend/internal/handlers"
	"shopchat-backend/internal/middleware"
)

func New(chatHandler *handlers.ChatHandler, provider string) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","provider":"` + provider + `"}`))
	})

	// ──── Chat Routes (public, any origin) ────
	r.Group(func(r chi.Router) {
		r.Use(middleware.CORS("*", "POST, OPTIONS"))
		r.HandleFunc("/chat", chatHandler.Handle)
		r.HandleFunc("/api/chat", chatHandler.Handle)
	})

	return r
}

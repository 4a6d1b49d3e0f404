package services

import (
	"context"

	"shopchat-backend/internal/models"
)

// SupportPersona is the system prompt sent ahead of every customer message.
const SupportPersona = "You are a helpful ecommerce customer service assistant. Help users with orders, products, shipping, returns, and general questions."

// Generation parameters shared by every provider.
const (
	MaxReplyTokens   = 500
	ReplyTemperature = 0.7
)

// Completer turns one customer message into one assistant reply.
type Completer interface {
	Complete(ctx context.Context, message string) (*models.Completion, error)
	Name() string
}

// buildMessages returns the two-entry conversation sent upstream.
func buildMessages(message string) []models.CompletionMessage {
	return []models.CompletionMessage{
		{Role: models.RoleSystem, Content: SupportPersona},
		{Role: models.RoleUser, Content: message},
	}
}

// Preview truncates message to n runes for log lines.
func Preview(message string, n int) string {
	runes := []rune(message)
	if len(runes) <= n {
		return message
	}
	return string(runes[:n]) + "..."
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"shopchat-backend/internal/models"
)

// GeminiService answers customer messages with a Gemini model.
type GeminiService struct {
	client    *genai.Client
	model     *genai.GenerativeModel
	modelName string
	apiKey    string
	timeout   time.Duration
}

func NewGeminiService(apiKey, modelName string, timeout time.Duration) (*GeminiService, error) {
	if apiKey == "" {
		return nil, &ConfigurationError{Message: "Gemini API key is missing"}
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(ReplyTemperature)
	model.SetMaxOutputTokens(MaxReplyTokens)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(SupportPersona)},
	}

	return &GeminiService{
		client:    client,
		model:     model,
		modelName: modelName,
		apiKey:    apiKey,
		timeout:   timeout,
	}, nil
}

func (s *GeminiService) Close() {
	s.client.Close()
}

func (s *GeminiService) Name() string { return "gemini" }

func (s *GeminiService) Complete(ctx context.Context, message string) (*models.Completion, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	resp, err := s.model.GenerateContent(ctx, genai.Text(message))
	if err != nil {
		return nil, classifyGeminiError(err, s.apiKey)
	}

	for i, cand := range resp.Candidates {
		if cand.FinishReason != genai.FinishReasonStop {
			log.Printf("WARNING: Gemini candidate %d stopped due to %s", i, cand.FinishReason)
		}
	}

	return completionFromGemini(resp, s.modelName)
}

// completionFromGemini extracts the first candidate's text and usage.
func completionFromGemini(resp *genai.GenerateContentResponse, modelName string) (*models.Completion, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, &UpstreamError{Status: http.StatusOK, Reason: ReasonInvalidResponse, Detail: "no candidates"}
	}

	reply := strings.TrimSpace(extractText(resp.Candidates[0]))
	if reply == "" {
		log.Println("WARNING: Gemini returned empty text")
		return nil, &UpstreamError{Status: http.StatusOK, Reason: ReasonInvalidResponse, Detail: "empty candidate"}
	}

	completion := &models.Completion{Reply: reply, Model: modelName}
	if u := resp.UsageMetadata; u != nil && u.TotalTokenCount > 0 {
		completion.Usage = &models.Usage{
			PromptTokens:     int(u.PromptTokenCount),
			CompletionTokens: int(u.CandidatesTokenCount),
			TotalTokens:      int(u.TotalTokenCount),
		}
	}
	return completion, nil
}

func classifyGeminiError(err error, apiKey string) error {
	var blocked *genai.BlockedError
	if errors.As(err, &blocked) {
		log.Printf("Gemini blocked the request: %v", blocked)
		return &UpstreamError{Status: http.StatusOK, Reason: ReasonBlocked}
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		log.Printf("Gemini API error: status=%d message=%s", apiErr.Code, Redact(apiErr.Message, apiKey))
		return &UpstreamError{Status: apiErr.Code, Reason: ReasonStatus}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		log.Println("Gemini request timed out")
		return &UpstreamError{Status: http.StatusGatewayTimeout, Reason: ReasonTimeout}
	}

	msg := Redact(err.Error(), apiKey)
	log.Printf("Gemini call failed: %s", msg)
	return &UnexpectedError{Message: fmt.Sprintf("gemini: %s", msg), Err: err}
}

func extractText(cand *genai.Candidate) string {
	if cand == nil || cand.Content == nil {
		return ""
	}
	var text strings.Builder
	for _, part := range cand.Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text.WriteString(string(t))
		}
	}
	return text.String()
}

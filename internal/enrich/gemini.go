package enrich

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/genai"

	"go-user-enrichment/internal/model"
	"go-user-enrichment/pkg/utils"
)

// maxNewsLen caps generated news at the length the mobile feed renders
const maxNewsLen = 100

// Provider error conditions surfaced to the pipeline
var (
	ErrQuotaExceeded = errors.New("generation quota exceeded")
	ErrUnavailable   = errors.New("generation service unavailable")
)

// Generator produces a personalized news message for a user
type Generator interface {
	GenerateNews(ctx context.Context, user *model.User) (string, error)
}

// GeminiGenerator generates news text using Google's Gemini API
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator creates a Gemini-backed generator
func NewGeminiGenerator(ctx context.Context, apiKey, modelName string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	if modelName == "" {
		modelName = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiGenerator{client: client, model: modelName}, nil
}

// BuildPrompt assembles the marketing prompt for a user
func BuildPrompt(user *model.User) string {
	nome := user.Nome
	if nome == "" {
		nome = "Cliente"
	}
	return fmt.Sprintf(
		"Você é um especialista em marketing bancário.\n"+
			"Crie uma mensagem para %s sobre a importância dos investimentos "+
			"(máximo de 100 caracteres).", nome)
}

// FallbackNews is the canned copy used when the model returns empty text
func FallbackNews(user *model.User) string {
	nome := user.Nome
	if nome == "" {
		nome = "Cliente"
	}
	return utils.Truncate(fmt.Sprintf("%s, investir com consistência fortalece seu futuro financeiro.", nome), maxNewsLen)
}

// GenerateNews asks Gemini for a personalized message, cleaned and
// capped at 100 characters
func (g *GeminiGenerator) GenerateNews(ctx context.Context, user *model.User) (string, error) {
	prompt := BuildPrompt(user)

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", mapProviderError(err)
	}

	text := utils.CleanText(resp.Text())
	if text == "" {
		return FallbackNews(user), nil
	}
	return utils.Truncate(text, maxNewsLen), nil
}

// Close releases the generator. The Gemini client holds no persistent
// connection for the GenerateContent path, so there is nothing to tear
// down; the method keeps call sites uniform with other closers.
func (g *GeminiGenerator) Close() error {
	return nil
}

// mapProviderError translates provider status codes into the pipeline's
// error conditions
func mapProviderError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == http.StatusTooManyRequests:
			return fmt.Errorf("%w: %s", ErrQuotaExceeded, apiErr.Message)
		case apiErr.Code >= 500:
			return fmt.Errorf("%w: %s", ErrUnavailable, apiErr.Message)
		}
	}
	return fmt.Errorf("generation failed: %w", err)
}

package enrich

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"go-user-enrichment/internal/model"
)

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt(&model.User{Nome: "Maria"})
	assert.Contains(t, prompt, "Maria")
	assert.Contains(t, prompt, "investimentos")
	assert.Contains(t, prompt, "máximo de 100 caracteres")
}

func TestBuildPromptDefaultsName(t *testing.T) {
	prompt := BuildPrompt(&model.User{})
	assert.Contains(t, prompt, "Cliente")
}

func TestFallbackNews(t *testing.T) {
	text := FallbackNews(&model.User{Nome: "João"})
	assert.Contains(t, text, "João")
	assert.LessOrEqual(t, len([]rune(text)), 100)

	text = FallbackNews(&model.User{})
	assert.Contains(t, text, "Cliente")
}

func TestMapProviderError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"quota", genai.APIError{Code: 429, Message: "rate limited"}, ErrQuotaExceeded},
		{"server error", genai.APIError{Code: 503, Message: "overloaded"}, ErrUnavailable},
		{"internal error", genai.APIError{Code: 500, Message: "internal"}, ErrUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapProviderError(tt.err)
			assert.ErrorIs(t, got, tt.want)
		})
	}
}

func TestMapProviderErrorWrapsOthers(t *testing.T) {
	cause := errors.New("connection reset")
	got := mapProviderError(fmt.Errorf("transport: %w", cause))

	require.Error(t, got)
	assert.ErrorIs(t, got, cause)
	assert.NotErrorIs(t, got, ErrQuotaExceeded)
	assert.NotErrorIs(t, got, ErrUnavailable)
}

func TestCloseIsSafe(t *testing.T) {
	g := &GeminiGenerator{model: "gemini-2.5-flash"}
	assert.NoError(t, g.Close())
	assert.NoError(t, g.Close()) // idempotent
}

func TestNewGeminiGeneratorRequiresKey(t *testing.T) {
	_, err := NewGeminiGenerator(t.Context(), "", "gemini-2.5-flash")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}

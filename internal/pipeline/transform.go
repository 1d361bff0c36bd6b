package pipeline

import (
	"context"
	"fmt"

	"go-user-enrichment/internal/enrich"
	"go-user-enrichment/internal/model"
)

// EnrichUser asks the generator for a personalized message and appends
// it to the user's news feed. The user is only mutated on success.
func EnrichUser(ctx context.Context, gen enrich.Generator, user *model.User, iconURL string) (string, error) {
	text, err := gen.GenerateNews(ctx, user)
	if err != nil {
		return "", fmt.Errorf("news generation for %s failed: %w", user.Nome, err)
	}

	user.News = append(user.News, model.News{
		ID:        user.NextNewsID(),
		Icone:     iconURL,
		Descricao: text,
	})
	return text, nil
}

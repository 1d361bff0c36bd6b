package pipeline

import (
	"context"
	"fmt"

	"go-user-enrichment/internal/model"
)

// UserAPI is the slice of the users API the pipeline needs
type UserAPI interface {
	GetUser(ctx context.Context, id int) (*model.User, error)
	UpdateUser(ctx context.Context, user *model.User) error
}

// LoadUser persists the enriched user back to the API
func LoadUser(ctx context.Context, api UserAPI, user *model.User) error {
	if err := api.UpdateUser(ctx, user); err != nil {
		return fmt.Errorf("failed to update user %d: %w", user.ID, err)
	}
	return nil
}

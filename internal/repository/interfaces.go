package repository

import (
	"context"

	"playtube/internal/domain/user"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	GetByID(ctx context.Context, id uuid.UUID) (user.User, error)
	GetByUsernameOrEmail(ctx context.Context, username, email string) (user.User, error)

	// SetRefreshToken and ClearRefreshToken update the refresh_token
	// column only; no other field is touched or re-validated.
	SetRefreshToken(ctx context.Context, id uuid.UUID, token string) error
	ClearRefreshToken(ctx context.Context, id uuid.UUID) error
}

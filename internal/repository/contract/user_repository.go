package contract

import (
	"context"

	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/repository/specification"
)

type UserRepository interface {
	// Create persists a new user; a duplicate email surfaces as a
	// conflict-kind database error.
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail returns (nil, nil) when no user matches.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
}

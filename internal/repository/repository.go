package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/LouisFontaine/ai-cycling-trainer/internal/domain"
)

// Error constants for the repository layer.
var (
	ErrNotFound       = RepositoryError("not found")
	ErrDuplicateEmail = RepositoryError("email already registered")
	ErrUpdateFailed   = RepositoryError("update failed")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
// Callers normalize emails to lowercase before storing or looking up.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)

	// SetProviderLink stores both intervals.icu credential fields together.
	SetProviderLink(ctx context.Context, id primitive.ObjectID, athleteID, apiKey string) error
	// ClearProviderLink removes both fields; clearing an absent link is not
	// an error.
	ClearProviderLink(ctx context.Context, id primitive.ObjectID) error
}

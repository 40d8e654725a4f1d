package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines persistence operations for users
type UserRepository interface {
	// FindByID finds a user by ID, returning shared.ErrNotFound on a miss
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByEmail finds a user by normalized email
	FindByEmail(ctx context.Context, email string) (*User, error)

	// ExistsByEmail reports whether a user with the email exists
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Save creates or updates a user
	Save(ctx context.Context, user *User) error
}

// AccountTokenRepository defines persistence operations for single-use
// verification and password reset tokens.
type AccountTokenRepository interface {
	// Save stores a token
	Save(ctx context.Context, token *AccountToken) error

	// FindByToken finds a token by its opaque value and purpose
	FindByToken(ctx context.Context, token string, purpose TokenPurpose) (*AccountToken, error)

	// DeleteByUser removes all tokens of the given purpose for a user
	DeleteByUser(ctx context.Context, userID uuid.UUID, purpose TokenPurpose) error

	// Delete removes a single token
	Delete(ctx context.Context, id uuid.UUID) error
}

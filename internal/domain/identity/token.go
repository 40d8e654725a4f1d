package identity

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/astris/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Token lifetimes. Verification links are emailed and may sit in an
// inbox for a while; reset links are short-lived on purpose.
const (
	VerificationTokenTTL  = time.Hour
	PasswordResetTokenTTL = 10 * time.Minute
)

// TokenPurpose distinguishes the two kinds of single-use account tokens.
type TokenPurpose string

const (
	TokenPurposeVerifyEmail   TokenPurpose = "verify_email"
	TokenPurposePasswordReset TokenPurpose = "password_reset"
)

// AccountToken is a single-use token mailed to a user, either to verify
// their email address or to reset their password.
type AccountToken struct {
	shared.BaseEntity
	UserID    uuid.UUID
	Token     string
	Purpose   TokenPurpose
	ExpiresAt time.Time
}

// NewVerificationToken creates an email verification token for the user.
func NewVerificationToken(userID uuid.UUID) (*AccountToken, error) {
	return newAccountToken(userID, TokenPurposeVerifyEmail, VerificationTokenTTL)
}

// NewPasswordResetToken creates a password reset token for the user.
func NewPasswordResetToken(userID uuid.UUID) (*AccountToken, error) {
	return newAccountToken(userID, TokenPurposePasswordReset, PasswordResetTokenTTL)
}

func newAccountToken(userID uuid.UUID, purpose TokenPurpose, ttl time.Duration) (*AccountToken, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return nil, err
	}
	return &AccountToken{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		Token:      hex.EncodeToString(raw),
		Purpose:    purpose,
		ExpiresAt:  time.Now().Add(ttl),
	}, nil
}

// IsExpired reports whether the token is past its expiry.
func (t *AccountToken) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}

package identity

import (
	"time"

	"github.com/google/uuid"
)

// RegisterInput contains the input for user registration
type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

// RegisterResult contains the result of a successful registration
type RegisterResult struct {
	UserID uuid.UUID
	Email  string
}

// VerifyEmailInput contains the input for email verification
type VerifyEmailInput struct {
	Token string
}

// LoginInput contains the input for user login
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult contains the result of a successful login
type LoginResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
	User                  UserInfo
}

// UserInfo contains basic user information returned to clients
type UserInfo struct {
	ID            uuid.UUID
	Email         string
	Name          string
	EmailVerified bool
	CreatedAt     time.Time
}

// RefreshTokenInput contains the input for token refresh
type RefreshTokenInput struct {
	RefreshToken string
}

// RefreshTokenResult contains the result of a token refresh
type RefreshTokenResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
}

// RequestPasswordResetInput contains the input for a reset request
type RequestPasswordResetInput struct {
	Email string
}

// ResetPasswordInput contains the input for completing a reset
type ResetPasswordInput struct {
	Token       string
	NewPassword string
}

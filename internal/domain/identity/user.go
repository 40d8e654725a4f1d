package identity

import (
	"regexp"
	"strings"

	"github.com/astris/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// User is the account aggregate. Every forecasting project, row and
// billing profile in the system hangs off a user ID.
type User struct {
	shared.BaseEntity
	Email         string
	PasswordHash  string
	Name          string
	EmailVerified bool
}

// NewUser creates a new unverified user with a hashed password.
func NewUser(email, password, name string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, err
	}

	return &User{
		BaseEntity:    shared.NewBaseEntity(),
		Email:         email,
		PasswordHash:  string(hash),
		Name:          strings.TrimSpace(name),
		EmailVerified: false,
	}, nil
}

// VerifyPassword checks a plaintext password against the stored hash.
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// MarkEmailVerified marks the user's email address as verified.
// Calling it on an already verified user is a no-op.
func (u *User) MarkEmailVerified() {
	u.EmailVerified = true
}

// ChangePassword replaces the stored password hash after validating the
// new password against the password policy.
func (u *User) ChangePassword(newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email is required")
	}
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Email format is invalid")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return shared.NewDomainError("WEAK_PASSWORD", "Password must be at least 8 characters")
	}
	if len(password) > 72 {
		// bcrypt truncates input beyond 72 bytes
		return shared.NewDomainError("WEAK_PASSWORD", "Password must be at most 72 characters")
	}
	return nil
}

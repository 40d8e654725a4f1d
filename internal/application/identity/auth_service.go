package identity

import (
	"context"
	"fmt"

	"github.com/astris/backend/internal/domain/identity"
	"github.com/astris/backend/internal/domain/shared"
	"github.com/astris/backend/internal/infrastructure/auth"
	"github.com/astris/backend/internal/infrastructure/mail"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuthService handles registration, verification and authentication
type AuthService struct {
	userRepo   identity.UserRepository
	tokenRepo  identity.AccountTokenRepository
	jwtService *auth.JWTService
	mailSender mail.Sender
	baseURL    string
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service. baseURL is the
// public frontend URL that password reset links point at.
func NewAuthService(
	userRepo identity.UserRepository,
	tokenRepo identity.AccountTokenRepository,
	jwtService *auth.JWTService,
	mailSender mail.Sender,
	baseURL string,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		jwtService: jwtService,
		mailSender: mailSender,
		baseURL:    baseURL,
		logger:     logger,
	}
}

// Register creates an unverified account and emails a verification link
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*RegisterResult, error) {
	s.logger.Info("Registration attempt", zap.String("email", input.Email))

	user, err := identity.NewUser(input.Email, input.Password, input.Name)
	if err != nil {
		return nil, err
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, user.Email)
	if err != nil {
		s.logger.Error("Failed to check email existence", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to register")
	}
	if exists {
		s.logger.Warn("Registration with taken email", zap.String("email", user.Email))
		return nil, shared.NewDomainError("EMAIL_TAKEN", "An account with this email already exists")
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to save user", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to register")
	}

	token, err := identity.NewVerificationToken(user.ID)
	if err != nil {
		s.logger.Error("Failed to generate verification token", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to register")
	}
	if err := s.tokenRepo.Save(ctx, token); err != nil {
		s.logger.Error("Failed to save verification token", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to register")
	}

	// Without the mail the account is unreachable, so a send failure
	// fails the whole registration.
	if err := s.mailSender.SendVerificationEmail(ctx, user.Email, token.Token); err != nil {
		s.logger.Error("Failed to send verification email",
			zap.String("email", user.Email),
			zap.Error(err))
		return nil, shared.NewDomainError("MAIL_FAILED", "Failed to send verification email")
	}

	s.logger.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	return &RegisterResult{UserID: user.ID, Email: user.Email}, nil
}

// VerifyEmail consumes a verification token and marks the account
// verified. Verifying an already verified account succeeds quietly.
func (s *AuthService) VerifyEmail(ctx context.Context, input VerifyEmailInput) error {
	token, err := s.tokenRepo.FindByToken(ctx, input.Token, identity.TokenPurposeVerifyEmail)
	if err != nil {
		s.logger.Warn("Unknown verification token")
		return shared.NewDomainError("INVALID_TOKEN", "Verification link is invalid")
	}

	if token.IsExpired() {
		if err := s.tokenRepo.Delete(ctx, token.ID); err != nil {
			s.logger.Error("Failed to delete expired token", zap.Error(err))
		}
		return shared.NewDomainError("TOKEN_EXPIRED", "Verification link has expired")
	}

	user, err := s.userRepo.FindByID(ctx, token.UserID)
	if err != nil {
		s.logger.Error("Verification token points at missing user",
			zap.String("user_id", token.UserID.String()))
		return shared.NewDomainError("INVALID_TOKEN", "Verification link is invalid")
	}

	alreadyVerified := user.EmailVerified
	if !alreadyVerified {
		user.MarkEmailVerified()
		if err := s.userRepo.Save(ctx, user); err != nil {
			s.logger.Error("Failed to save verified user", zap.Error(err))
			return shared.NewDomainError("INTERNAL_ERROR", "Failed to verify email")
		}
	}

	if err := s.tokenRepo.Delete(ctx, token.ID); err != nil {
		s.logger.Error("Failed to delete used verification token", zap.Error(err))
	}

	s.logger.Info("Email verified", zap.String("user_id", user.ID.String()))

	if !alreadyVerified {
		// Best effort; the account is usable either way.
		go func(email string) {
			if err := s.mailSender.SendWelcomeEmail(context.Background(), email); err != nil {
				s.logger.Warn("Failed to send welcome email",
					zap.String("email", email),
					zap.Error(err))
			}
		}(user.Email)
	}

	return nil
}

// Login authenticates a verified user and returns a token pair. Missing
// accounts and wrong passwords share one error so the endpoint cannot
// be used to probe for registered emails.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	s.logger.Info("Login attempt", zap.String("email", input.Email))

	user, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		s.logger.Warn("User not found during login", zap.String("email", input.Email))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	if !user.VerifyPassword(input.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("email", input.Email))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	if !user.EmailVerified {
		s.logger.Warn("Login before email verification", zap.String("email", input.Email))
		return nil, shared.NewDomainError("EMAIL_NOT_VERIFIED", "Please verify your email address first")
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID: user.ID,
		Email:  user.Email,
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	s.logger.Info("User logged in",
		zap.String("email", user.Email),
		zap.String("user_id", user.ID.String()))

	return &LoginResult{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
		User:                  userInfo(user),
	}, nil
}

// RefreshToken exchanges a valid refresh token for a fresh pair
func (s *AuthService) RefreshToken(ctx context.Context, input RefreshTokenInput) (*RefreshTokenResult, error) {
	claims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		s.logger.Warn("Refresh token validation failed", zap.Error(err))
		return nil, mapTokenError(err)
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid user ID in token")
	}

	// The user must still exist; deleted accounts keep no session.
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		s.logger.Warn("Token refresh for missing user", zap.String("user_id", userID.String()))
		return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid refresh token")
	}

	tokenPair, err := s.jwtService.RefreshTokenPair(input.RefreshToken)
	if err != nil {
		s.logger.Warn("Token refresh failed", zap.Error(err))
		return nil, mapTokenError(err)
	}

	s.logger.Info("Token refreshed", zap.String("user_id", userID.String()))

	return &RefreshTokenResult{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
	}, nil
}

// GetCurrentUser returns the authenticated user's profile
func (s *AuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, shared.NewDomainError("NOT_FOUND", "User not found")
	}
	info := userInfo(user)
	return &info, nil
}

// RequestPasswordReset issues a reset token and mails a reset link. It
// reports success whether or not the email belongs to an account, so
// the endpoint cannot be used for enumeration.
func (s *AuthService) RequestPasswordReset(ctx context.Context, input RequestPasswordResetInput) error {
	user, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		s.logger.Info("Password reset for unknown email", zap.String("email", input.Email))
		return nil
	}

	// Older reset links die the moment a new one is requested.
	if err := s.tokenRepo.DeleteByUser(ctx, user.ID, identity.TokenPurposePasswordReset); err != nil {
		s.logger.Error("Failed to purge old reset tokens", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to request password reset")
	}

	token, err := identity.NewPasswordResetToken(user.ID)
	if err != nil {
		s.logger.Error("Failed to generate reset token", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to request password reset")
	}
	if err := s.tokenRepo.Save(ctx, token); err != nil {
		s.logger.Error("Failed to save reset token", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to request password reset")
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", s.baseURL, token.Token)
	if err := s.mailSender.SendPasswordResetEmail(ctx, user.Email, resetURL); err != nil {
		s.logger.Error("Failed to send reset email",
			zap.String("email", user.Email),
			zap.Error(err))
	}

	s.logger.Info("Password reset requested", zap.String("user_id", user.ID.String()))
	return nil
}

// ResetPassword consumes a reset token and sets a new password
func (s *AuthService) ResetPassword(ctx context.Context, input ResetPasswordInput) error {
	token, err := s.tokenRepo.FindByToken(ctx, input.Token, identity.TokenPurposePasswordReset)
	if err != nil {
		s.logger.Warn("Unknown password reset token")
		return shared.NewDomainError("INVALID_TOKEN", "Reset link is invalid")
	}

	if token.IsExpired() {
		if err := s.tokenRepo.Delete(ctx, token.ID); err != nil {
			s.logger.Error("Failed to delete expired reset token", zap.Error(err))
		}
		return shared.NewDomainError("TOKEN_EXPIRED", "Reset link has expired")
	}

	user, err := s.userRepo.FindByID(ctx, token.UserID)
	if err != nil {
		s.logger.Error("Reset token points at missing user",
			zap.String("user_id", token.UserID.String()))
		return shared.NewDomainError("INVALID_TOKEN", "Reset link is invalid")
	}

	if err := user.ChangePassword(input.NewPassword); err != nil {
		return err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to save new password", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to reset password")
	}

	if err := s.tokenRepo.DeleteByUser(ctx, user.ID, identity.TokenPurposePasswordReset); err != nil {
		s.logger.Error("Failed to delete used reset tokens", zap.Error(err))
	}

	s.logger.Info("Password reset completed", zap.String("user_id", user.ID.String()))
	return nil
}

func userInfo(user *identity.User) UserInfo {
	return UserInfo{
		ID:            user.ID,
		Email:         user.Email,
		Name:          user.Name,
		EmailVerified: user.EmailVerified,
		CreatedAt:     user.CreatedAt,
	}
}

func mapTokenError(err error) error {
	switch err {
	case auth.ErrExpiredToken:
		return shared.NewDomainError("TOKEN_EXPIRED", "Refresh token has expired")
	case auth.ErrInvalidToken:
		return shared.NewDomainError("TOKEN_INVALID", "Invalid refresh token")
	case auth.ErrMaxRefreshExceeded:
		return shared.NewDomainError("TOKEN_MAX_REFRESH", "Maximum token refresh count exceeded. Please log in again")
	default:
		return shared.NewDomainError("TOKEN_ERROR", "Failed to validate refresh token")
	}
}

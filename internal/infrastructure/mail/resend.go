package mail

import (
	"context"
	"fmt"

	"github.com/astris/backend/internal/infrastructure/config"
	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"
)

// ResendSender delivers mail through the Resend API.
type ResendSender struct {
	client  *resend.Client
	from    string
	baseURL string
	logger  *zap.Logger
}

// NewSender builds the configured Sender. When mail is disabled the
// returned sender only logs, which keeps development and CI free of a
// Resend dependency.
func NewSender(appCfg config.AppConfig, cfg config.MailConfig, logger *zap.Logger) Sender {
	if !cfg.Enabled {
		return &logSender{logger: logger}
	}
	return NewResendSender(appCfg, cfg, logger)
}

// NewResendSender creates a sender backed by the Resend API.
func NewResendSender(appCfg config.AppConfig, cfg config.MailConfig, logger *zap.Logger) *ResendSender {
	return &ResendSender{
		client:  resend.NewClient(cfg.APIKey),
		from:    fmt.Sprintf("%s <%s>", cfg.FromName, cfg.FromAddress),
		baseURL: appCfg.BaseURL,
		logger:  logger,
	}
}

func (s *ResendSender) send(ctx context.Context, to, subject, html string) error {
	_, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	})
	if err != nil {
		return fmt.Errorf("resend: %w", err)
	}
	return nil
}

// SendVerificationEmail sends the account-activation link.
func (s *ResendSender) SendVerificationEmail(ctx context.Context, to, token string) error {
	verifyURL := fmt.Sprintf("%s/verify-email?token=%s", s.baseURL, token)
	html := fmt.Sprintf(`
		<h1>Verify your email</h1>
		<p>Click the link below to activate your Astris account:</p>
		<p><a href="%s">%s</a></p>
		<p>If you did not create this account, you can ignore this message.</p>
	`, verifyURL, verifyURL)

	if err := s.send(ctx, to, "Verify your email", html); err != nil {
		s.logger.Error("Failed to send verification email", zap.Error(err))
		return err
	}
	return nil
}

// SendWelcomeEmail sends the post-verification welcome mail.
func (s *ResendSender) SendWelcomeEmail(ctx context.Context, to string) error {
	html := fmt.Sprintf(`
		<h1>Welcome to Astris</h1>
		<p>Your email has been successfully verified.</p>
		<p>You can now log in and start building your financial forecast models.</p>
		<p><a href="%s/login">Log in to your account</a></p>
	`, s.baseURL)

	if err := s.send(ctx, to, "Welcome to Astris", html); err != nil {
		s.logger.Error("Failed to send welcome email", zap.Error(err))
		return err
	}
	return nil
}

// SendPasswordResetEmail sends the reset link.
func (s *ResendSender) SendPasswordResetEmail(ctx context.Context, to, resetURL string) error {
	html := fmt.Sprintf(`
		<h1>Password Reset Request</h1>
		<p>You requested a password reset. Click the link below to set a new password:</p>
		<p><a href="%s">%s</a></p>
		<p>If you did not request this reset, you can safely ignore this email.</p>
	`, resetURL, resetURL)

	if err := s.send(ctx, to, "Reset your password", html); err != nil {
		s.logger.Error("Failed to send password reset email", zap.Error(err))
		return err
	}
	return nil
}

// logSender records what would have been sent and succeeds. Used when
// mail.enabled is false.
type logSender struct {
	logger *zap.Logger
}

func (s *logSender) SendVerificationEmail(_ context.Context, to, token string) error {
	s.logger.Info("mail disabled, skipping verification email",
		zap.String("to", to), zap.String("token", token))
	return nil
}

func (s *logSender) SendWelcomeEmail(_ context.Context, to string) error {
	s.logger.Info("mail disabled, skipping welcome email", zap.String("to", to))
	return nil
}

func (s *logSender) SendPasswordResetEmail(_ context.Context, to, resetURL string) error {
	s.logger.Info("mail disabled, skipping password reset email",
		zap.String("to", to), zap.String("reset_url", resetURL))
	return nil
}

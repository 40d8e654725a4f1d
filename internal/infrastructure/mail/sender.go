package mail

import "context"

// Sender delivers transactional mail. Implementations must be safe for
// concurrent use.
//
// Callers decide how failures propagate: verification and reset mails
// are critical and their errors bubble up, the welcome mail is
// fire-and-forget.
type Sender interface {
	SendVerificationEmail(ctx context.Context, to, token string) error
	SendWelcomeEmail(ctx context.Context, to string) error
	SendPasswordResetEmail(ctx context.Context, to, resetURL string) error
}

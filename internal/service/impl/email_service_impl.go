package impl

import (
	"context"
	"log/slog"
)

// LogEmailService writes delivery intents to the log instead of an SMTP
// relay. Production deployments swap in a real sender behind the same
// interface.
type LogEmailService struct{}

func NewLogEmailService() *LogEmailService { return &LogEmailService{} }

func (LogEmailService) SendOTP(ctx context.Context, to, code string) error {
	slog.InfoContext(ctx, "verification code issued", "to", to)
	return nil
}

func (LogEmailService) SendPasswordResetOTP(ctx context.Context, to, code string) error {
	slog.InfoContext(ctx, "password reset code issued", "to", to)
	return nil
}

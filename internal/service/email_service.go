package service

import "context"

// EmailService delivers one-time codes to account inboxes. The portal
// treats delivery as fire-and-forget; failures are logged, not fatal.
type EmailService interface {
	SendOTP(ctx context.Context, to, code string) error
	SendPasswordResetOTP(ctx context.Context, to, code string) error
}

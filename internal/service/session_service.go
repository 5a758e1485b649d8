package service

import (
	"context"
	"time"

	"github.com/jotishBolds/district-bi-sub001/internal/domain"
)

// SessionService issues and decodes the signed session token carried by
// clients. Parse performs no I/O so the auth gate can stay a pure
// decision over (path, token).
type SessionService interface {
	Issue(ctx context.Context, user *domain.User, requiresOTP bool) (token string, expiresAt time.Time, err error)
	Parse(token string) (*domain.Session, error)
}

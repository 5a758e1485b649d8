package impl

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/jotishBolds/district-bi-sub001/internal/domain"
)

type SessionConfig struct {
	Issuer     string
	Audience   string
	TTL        time.Duration // short by design: the token snapshot bounds how long a stale role/active flag is trusted
	SigningKey []byte        // HS256 secret
}

// SessionClaims is the signed payload behind every routing decision.
// RequiresOTP marks a session as authenticated but not yet verified.
type SessionClaims struct {
	Email       string `json:"email"`
	FullName    string `json:"fullName,omitempty"`
	Role        string `json:"role"`
	IsActive    bool   `json:"isActive"`
	RequiresOTP bool   `json:"requiresOtp,omitempty"`
	jwt.RegisteredClaims
}

type SessionServiceImpl struct {
	cfg SessionConfig
}

func NewSessionServiceHS256(cfg SessionConfig) *SessionServiceImpl {
	return &SessionServiceImpl{cfg: cfg}
}

func (s *SessionServiceImpl) Issue(_ context.Context, user *domain.User, requiresOTP bool) (string, time.Time, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(s.cfg.TTL)
	claims := SessionClaims{
		Email:       user.Email,
		FullName:    user.FullName,
		Role:        string(user.Role),
		IsActive:    user.IsActive,
		RequiresOTP: requiresOTP,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.cfg.Issuer,
			Subject:   user.ID.String(),
			Audience:  jwt.ClaimStrings{s.cfg.Audience},
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.cfg.SigningKey)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (s *SessionServiceImpl) Parse(token string) (*domain.Session, error) {
	claims := &SessionClaims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.cfg.Issuer),
		jwt.WithAudience(s.cfg.Audience),
	)
	tok, err := parser.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.cfg.SigningKey, nil
	})
	if err != nil || !tok.Valid {
		return nil, domain.ErrUnauthorized
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	role := domain.Role(claims.Role)
	if !role.Valid() {
		return nil, errors.Join(domain.ErrUnauthorized, errors.New("unknown role in token"))
	}
	return &domain.Session{
		UserID:      userID,
		Email:       claims.Email,
		FullName:    claims.FullName,
		Role:        role,
		IsActive:    claims.IsActive,
		RequiresOTP: claims.RequiresOTP,
	}, nil
}

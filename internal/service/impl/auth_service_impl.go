package impl

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jotishBolds/district-bi-sub001/internal/domain"
	"github.com/jotishBolds/district-bi-sub001/internal/dto"
	"github.com/jotishBolds/district-bi-sub001/internal/observability/metrics"
	"github.com/jotishBolds/district-bi-sub001/internal/service"
	"github.com/jotishBolds/district-bi-sub001/internal/store"
)

const (
	otpDigits = 6

	// resetExchangeWindow is how long the opaque reset handle stays
	// valid after the OTP is exchanged.
	resetExchangeWindow = 30 * time.Minute
)

type AuthServiceImpl struct {
	Store     *store.Store
	Passwords service.PasswordService
	Sessions  service.SessionService
	Mailer    service.EmailService

	OTPTTL time.Duration
}

func NewAuthServiceImpl(st *store.Store, passwords service.PasswordService, sessions service.SessionService, mailer service.EmailService, otpTTL time.Duration) *AuthServiceImpl {
	return &AuthServiceImpl{
		Store:     st,
		Passwords: passwords,
		Sessions:  sessions,
		Mailer:    mailer,
		OTPTTL:    otpTTL,
	}
}

func (a *AuthServiceImpl) Register(ctx context.Context, r dto.RegisterRequest) (*dto.RegisterResponse, error) {
	result := "success"
	defer func() { metrics.RegistrationsTotal.WithLabelValues(result).Inc() }()

	email := normalizeEmail(r.Email)
	if email == "" || r.Password == "" {
		result = "failure"
		return nil, fmt.Errorf("%w: email and password are required", domain.ErrValidation)
	}
	if err := a.Passwords.CheckPolicy(r.Password); err != nil {
		result = "failure"
		return nil, err
	}

	hash, err := a.Passwords.Hash(r.Password)
	if err != nil {
		result = "failure"
		return nil, err
	}

	now := time.Now().UTC()
	u := &domain.User{
		ID:           uuid.New(),
		Email:        email,
		FullName:     strings.TrimSpace(r.FullName),
		PasswordHash: hash,
		Role:         domain.RoleUser,
		IsActive:     false, // stays false until the OTP is verified
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = a.Store.WithTx(ctx, func(tx *store.Store) error {
		if _, err := tx.Users().GetByEmail(ctx, email); err == nil {
			return domain.ErrEmailTaken
		} else if !errors.Is(err, store.ErrRecordNotFound) {
			return err
		}
		return tx.Users().Create(ctx, u)
	})
	if err != nil {
		result = "failure"
		return nil, err
	}

	if err := a.issueOTP(ctx, email, domain.PurposeEmailVerification); err != nil {
		result = "failure"
		return nil, err
	}

	slog.InfoContext(ctx, "user registered", "user_id", u.ID, "email", email)
	return &dto.RegisterResponse{
		UserID:                    u.ID.String(),
		RequiresEmailVerification: true,
	}, nil
}

func (a *AuthServiceImpl) Login(ctx context.Context, r dto.LoginRequest) (*dto.LoginResponse, error) {
	result := "success"
	defer func() { metrics.LoginsTotal.WithLabelValues(result).Inc() }()

	email := normalizeEmail(r.Email)
	if email == "" || r.Password == "" {
		result = "failure"
		return nil, fmt.Errorf("%w: email and password are required", domain.ErrValidation)
	}

	user, err := a.Store.Users().GetByEmail(ctx, email)
	if err != nil {
		result = "failure"
		return nil, domain.ErrInvalidCredentials // don't leak account existence
	}
	if !a.Passwords.Verify(r.Password, user.PasswordHash) {
		result = "failure"
		return nil, domain.ErrInvalidCredentials
	}

	// An unverified account gets a step-up session confined to the
	// verification surface, plus a fresh OTP.
	requiresOTP := !user.IsActive
	if requiresOTP {
		if err := a.issueOTP(ctx, email, domain.PurposeEmailVerification); err != nil {
			result = "failure"
			return nil, err
		}
	} else {
		now := time.Now().UTC()
		if err := a.Store.Users().StampLogin(ctx, user.ID, now); err != nil {
			result = "failure"
			return nil, err
		}
		user.LastLoginAt = &now
	}

	token, expiresAt, err := a.Sessions.Issue(ctx, user, requiresOTP)
	if err != nil {
		result = "failure"
		return nil, err
	}

	slog.InfoContext(ctx, "login", "user_id", user.ID, "requires_otp", requiresOTP)
	return &dto.LoginResponse{
		Token:       token,
		ExpiresIn:   int64(time.Until(expiresAt).Seconds()),
		RequiresOTP: requiresOTP,
		User:        summarize(user),
	}, nil
}

// RequestPasswordReset issues a PASSWORD_RESET OTP. Unknown addresses
// are accepted silently so the endpoint cannot be used for enumeration.
func (a *AuthServiceImpl) RequestPasswordReset(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return fmt.Errorf("%w: email is required", domain.ErrValidation)
	}
	if _, err := a.Store.Users().GetByEmail(ctx, email); err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			slog.InfoContext(ctx, "password reset requested for unknown email")
			return nil
		}
		return err
	}
	return a.issueOTP(ctx, email, domain.PurposePasswordReset)
}

func (a *AuthServiceImpl) VerifyOTP(ctx context.Context, r dto.VerifyOTPRequest) (*dto.VerifyOTPResponse, error) {
	email := normalizeEmail(r.Email)
	code := strings.TrimSpace(r.OTP)
	if email == "" || code == "" {
		return nil, fmt.Errorf("%w: email and otp are required", domain.ErrValidation)
	}

	purpose := domain.PurposeEmailVerification
	if r.Type != "" {
		purpose = domain.TokenPurpose(r.Type)
	}

	result := "failure"
	defer func() { metrics.VerificationsTotal.WithLabelValues(string(purpose), result).Inc() }()

	now := time.Now().UTC()
	tok, err := a.Store.Verifications().Lookup(ctx, email, code, purpose, domain.PhaseIssued, now)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, domain.ErrTokenInvalid
		}
		return nil, err
	}

	switch purpose {
	case domain.PurposeEmailVerification:
		// Consume-then-activate in one transaction: the conditional
		// delete decides the winner under concurrent submissions.
		err := a.Store.WithTx(ctx, func(tx *store.Store) error {
			ok, err := tx.Verifications().Consume(ctx, tok.ID, code)
			if err != nil {
				return err
			}
			if !ok {
				return domain.ErrTokenInvalid
			}
			return tx.Users().Activate(ctx, email, now)
		})
		if err != nil {
			return nil, err
		}
		result = "success"
		slog.InfoContext(ctx, "email verified", "email", email)
		return &dto.VerifyOTPResponse{Success: true, Verified: true}, nil

	case domain.PurposePasswordReset:
		handle, err := newResetHandle()
		if err != nil {
			return nil, err
		}
		ok, err := a.Store.Verifications().Exchange(ctx, tok.ID, code, handle, now.Add(resetExchangeWindow))
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.ErrTokenInvalid
		}
		result = "success"
		slog.InfoContext(ctx, "reset otp exchanged", "email", email)
		return &dto.VerifyOTPResponse{Success: true, ResetToken: handle}, nil

	default:
		// No stored token can carry another purpose; kept so an
		// unexpected value degrades to an acknowledgement.
		result = "success"
		return &dto.VerifyOTPResponse{Success: true}, nil
	}
}

func (a *AuthServiceImpl) ResetPassword(ctx context.Context, r dto.ResetPasswordRequest) error {
	result := "failure"
	defer func() { metrics.PasswordResetsTotal.WithLabelValues(result).Inc() }()

	email := normalizeEmail(r.Email)
	if email == "" || r.Token == "" || r.Password == "" {
		return fmt.Errorf("%w: email, token and password are required", domain.ErrValidation)
	}
	if err := a.Passwords.CheckPolicy(r.Password); err != nil {
		return err
	}

	now := time.Now().UTC()
	tok, err := a.Store.Verifications().Lookup(ctx, email, r.Token, domain.PurposePasswordReset, domain.PhaseExchanged, now)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return domain.ErrTokenInvalid
		}
		return err
	}

	hash, err := a.Passwords.Hash(r.Password)
	if err != nil {
		return err
	}

	err = a.Store.WithTx(ctx, func(tx *store.Store) error {
		ok, err := tx.Verifications().Consume(ctx, tok.ID, r.Token)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrTokenInvalid
		}
		return tx.Users().SetPassword(ctx, email, hash)
	})
	if err != nil {
		return err
	}

	result = "success"
	slog.InfoContext(ctx, "password reset completed", "email", email)
	return nil
}

// --- helpers ---

func (a *AuthServiceImpl) issueOTP(ctx context.Context, email string, purpose domain.TokenPurpose) error {
	code, err := newOTP()
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	tok := &domain.VerificationToken{
		ID:         uuid.New(),
		Identifier: email,
		Token:      code,
		Purpose:    purpose,
		Phase:      domain.PhaseIssued,
		ExpiresAt:  now.Add(a.OTPTTL),
		CreatedAt:  now,
	}
	if err := a.Store.Verifications().Issue(ctx, tok); err != nil {
		return err
	}

	var sendErr error
	if purpose == domain.PurposePasswordReset {
		sendErr = a.Mailer.SendPasswordResetOTP(ctx, email, code)
	} else {
		sendErr = a.Mailer.SendOTP(ctx, email, code)
	}
	if sendErr != nil {
		slog.WarnContext(ctx, "otp delivery failed", "email", email, "error", sendErr)
	}
	return nil
}

func newOTP() (string, error) {
	max := big.NewInt(1)
	for i := 0; i < otpDigits; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", otpDigits, n), nil
}

// newResetHandle returns an unguessable token so the short numeric OTP
// is never the final authorization artifact.
func newResetHandle() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func summarize(u *domain.User) *dto.UserSummary {
	return &dto.UserSummary{
		ID:       u.ID.String(),
		Email:    u.Email,
		FullName: u.FullName,
		Role:     string(u.Role),
		IsActive: u.IsActive,
	}
}

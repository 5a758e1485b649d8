package impl

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/jotishBolds/district-bi-sub001/internal/domain"
	"github.com/jotishBolds/district-bi-sub001/internal/dto"
	"github.com/jotishBolds/district-bi-sub001/internal/store"
)

// captureMailer records issued codes instead of sending them.
type captureMailer struct {
	otps   map[string]string
	resets map[string]string
}

func newCaptureMailer() *captureMailer {
	return &captureMailer{otps: map[string]string{}, resets: map[string]string{}}
}

func (m *captureMailer) SendOTP(_ context.Context, to, code string) error {
	m.otps[to] = code
	return nil
}

func (m *captureMailer) SendPasswordResetOTP(_ context.Context, to, code string) error {
	m.resets[to] = code
	return nil
}

func setupStore(t *testing.T) *store.Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// A single connection keeps the in-memory database alive and
	// serializes writes the way a real server's row locks would.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&domain.User{}, &domain.VerificationToken{}, &domain.ServiceCategory{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return store.New(db)
}

func setupAuth(t *testing.T) (*AuthServiceImpl, *store.Store, *captureMailer) {
	t.Helper()
	st := setupStore(t)
	mailer := newCaptureMailer()
	sessions := newSessionService(30 * time.Minute)
	svc := NewAuthServiceImpl(st, NewPasswordServiceArgon2id(), sessions, mailer, 10*time.Minute)
	return svc, st, mailer
}

func TestRegisterVerifyRoundTrip(t *testing.T) {
	svc, st, mailer := setupAuth(t)
	ctx := context.Background()

	res, err := svc.Register(ctx, dto.RegisterRequest{
		Email:    "alice@example.com",
		FullName: "Alice",
		Password: "longenough1",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if !res.RequiresEmailVerification {
		t.Fatal("expected verification to be required")
	}

	user, err := st.Users().GetByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if user.IsActive {
		t.Fatal("user active before verification")
	}

	code := mailer.otps["alice@example.com"]
	if len(code) != 6 {
		t.Fatalf("expected 6-digit otp, got %q", code)
	}

	out, err := svc.VerifyOTP(ctx, dto.VerifyOTPRequest{Email: "alice@example.com", OTP: code})
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !out.Success || !out.Verified {
		t.Fatalf("unexpected response: %+v", out)
	}

	user, err = st.Users().GetByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if !user.IsActive {
		t.Fatal("user not activated")
	}
	if user.LastLoginAt == nil {
		t.Fatal("login time not stamped")
	}

	// The consumed token must be gone: same code again fails.
	if _, err := svc.VerifyOTP(ctx, dto.VerifyOTPRequest{Email: "alice@example.com", OTP: code}); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("second verify = %v, want ErrTokenInvalid", err)
	}
}

func TestVerifyOTPValidation(t *testing.T) {
	svc, _, _ := setupAuth(t)
	ctx := context.Background()

	for _, req := range []dto.VerifyOTPRequest{
		{},
		{Email: "a@example.com"},
		{OTP: "123456"},
	} {
		if _, err := svc.VerifyOTP(ctx, req); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("VerifyOTP(%+v) = %v, want ErrValidation", req, err)
		}
	}
}

func TestVerifyOTPExpired(t *testing.T) {
	svc, st, _ := setupAuth(t)
	ctx := context.Background()

	past := time.Now().UTC().Add(-time.Minute)
	tok := &domain.VerificationToken{
		ID:         uuid.New(),
		Identifier: "stale@example.com",
		Token:      "482913",
		Purpose:    domain.PurposeEmailVerification,
		Phase:      domain.PhaseIssued,
		ExpiresAt:  past,
		CreatedAt:  past.Add(-10 * time.Minute),
	}
	if err := st.DB.Create(tok).Error; err != nil {
		t.Fatalf("seed token: %v", err)
	}

	_, err := svc.VerifyOTP(ctx, dto.VerifyOTPRequest{Email: "stale@example.com", OTP: "482913"})
	if !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expired otp = %v, want ErrTokenInvalid", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := setupAuth(t)
	ctx := context.Background()

	req := dto.RegisterRequest{Email: "dup@example.com", Password: "longenough1"}
	if _, err := svc.Register(ctx, req); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(ctx, req); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("second register = %v, want ErrEmailTaken", err)
	}
}

func TestLoginFlows(t *testing.T) {
	svc, st, mailer := setupAuth(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, dto.RegisterRequest{Email: "bob@example.com", Password: "longenough1"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := svc.Login(ctx, dto.LoginRequest{Email: "bob@example.com", Password: "wrong-pass1"}); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login(ctx, dto.LoginRequest{Email: "nobody@example.com", Password: "longenough1"}); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown email = %v, want ErrInvalidCredentials", err)
	}

	// Unverified login: step-up session plus a fresh OTP.
	res, err := svc.Login(ctx, dto.LoginRequest{Email: "bob@example.com", Password: "longenough1"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if !res.RequiresOTP {
		t.Fatal("unverified login should require otp")
	}
	code := mailer.otps["bob@example.com"]
	if code == "" {
		t.Fatal("no otp issued on unverified login")
	}

	if _, err := svc.VerifyOTP(ctx, dto.VerifyOTPRequest{Email: "bob@example.com", OTP: code}); err != nil {
		t.Fatalf("verify: %v", err)
	}

	res, err = svc.Login(ctx, dto.LoginRequest{Email: "bob@example.com", Password: "longenough1"})
	if err != nil {
		t.Fatalf("verified login: %v", err)
	}
	if res.RequiresOTP {
		t.Fatal("verified login should not require otp")
	}
	user, _ := st.Users().GetByEmail(ctx, "bob@example.com")
	if user.LastLoginAt == nil {
		t.Fatal("last login not stamped")
	}
}

func TestPasswordResetTwoPhase(t *testing.T) {
	svc, st, mailer := setupAuth(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, dto.RegisterRequest{Email: "carol@example.com", Password: "original-pw1"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := st.Users().Activate(ctx, "carol@example.com", time.Now().UTC()); err != nil {
		t.Fatalf("activate: %v", err)
	}

	if err := svc.RequestPasswordReset(ctx, "carol@example.com"); err != nil {
		t.Fatalf("request reset: %v", err)
	}
	code := mailer.resets["carol@example.com"]
	if code == "" {
		t.Fatal("no reset otp issued")
	}

	// Phase 1: exchange the human-enterable OTP for an opaque handle.
	out, err := svc.VerifyOTP(ctx, dto.VerifyOTPRequest{
		Email: "carol@example.com",
		OTP:   code,
		Type:  string(domain.PurposePasswordReset),
	})
	if err != nil {
		t.Fatalf("exchange: %v", err)
	}
	if out.ResetToken == "" || out.ResetToken == code {
		t.Fatalf("reset handle missing or guessable: %q", out.ResetToken)
	}
	if len(out.ResetToken) != 64 {
		t.Fatalf("handle length %d, want 64 hex chars", len(out.ResetToken))
	}

	// The short OTP is no longer replayable once exchanged.
	if _, err := svc.VerifyOTP(ctx, dto.VerifyOTPRequest{
		Email: "carol@example.com", OTP: code, Type: string(domain.PurposePasswordReset),
	}); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("otp replay = %v, want ErrTokenInvalid", err)
	}

	// Phase 2: the handle plus a new password finalizes the change.
	err = svc.ResetPassword(ctx, dto.ResetPasswordRequest{
		Email:    "carol@example.com",
		Token:    out.ResetToken,
		Password: "brand-new-pw2",
	})
	if err != nil {
		t.Fatalf("reset: %v", err)
	}

	if _, err := svc.Login(ctx, dto.LoginRequest{Email: "carol@example.com", Password: "original-pw1"}); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("old password still accepted: %v", err)
	}
	if _, err := svc.Login(ctx, dto.LoginRequest{Email: "carol@example.com", Password: "brand-new-pw2"}); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}

	// The handle is single-use.
	err = svc.ResetPassword(ctx, dto.ResetPasswordRequest{
		Email:    "carol@example.com",
		Token:    out.ResetToken,
		Password: "yet-another-pw3",
	})
	if !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("handle reuse = %v, want ErrTokenInvalid", err)
	}
}

func TestResetPasswordValidationAndPolicy(t *testing.T) {
	svc, _, _ := setupAuth(t)
	ctx := context.Background()

	err := svc.ResetPassword(ctx, dto.ResetPasswordRequest{Email: "x@example.com"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("missing fields = %v, want ErrValidation", err)
	}

	err = svc.ResetPassword(ctx, dto.ResetPasswordRequest{
		Email: "x@example.com", Token: strings.Repeat("a", 64), Password: "weak",
	})
	if !errors.Is(err, domain.ErrWeakPassword) {
		t.Fatalf("weak password = %v, want ErrWeakPassword", err)
	}
}

func TestResetPasswordExpiredHandle(t *testing.T) {
	svc, st, _ := setupAuth(t)
	ctx := context.Background()

	handle := strings.Repeat("ab", 32)
	past := time.Now().UTC().Add(-time.Second)
	tok := &domain.VerificationToken{
		ID:         uuid.New(),
		Identifier: "dave@example.com",
		Token:      handle,
		Purpose:    domain.PurposePasswordReset,
		Phase:      domain.PhaseExchanged,
		ExpiresAt:  past,
		CreatedAt:  past.Add(-time.Hour),
	}
	if err := st.DB.Create(tok).Error; err != nil {
		t.Fatalf("seed token: %v", err)
	}

	err := svc.ResetPassword(ctx, dto.ResetPasswordRequest{
		Email: "dave@example.com", Token: handle, Password: "longenough1",
	})
	if !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expired handle = %v, want ErrTokenInvalid", err)
	}
}

func TestForgotPasswordUnknownEmailIsSilent(t *testing.T) {
	svc, _, mailer := setupAuth(t)
	if err := svc.RequestPasswordReset(context.Background(), "ghost@example.com"); err != nil {
		t.Fatalf("unknown email should not error: %v", err)
	}
	if len(mailer.resets) != 0 {
		t.Fatal("no otp should be issued for unknown email")
	}
}

package domain

import "time"

type TokenPurpose string

const (
	PurposeEmailVerification TokenPurpose = "EMAIL_VERIFICATION"
	PurposePasswordReset     TokenPurpose = "PASSWORD_RESET"
)

// TokenPhase makes the password-reset handshake explicit: an ISSUED
// token holds the short numeric OTP; once exchanged, the row holds the
// opaque reset handle and only that handle can finalize the reset.
type TokenPhase string

const (
	PhaseIssued    TokenPhase = "ISSUED"
	PhaseExchanged TokenPhase = "EXCHANGED"
)

type VerificationToken struct {
	ID         TokenID      `gorm:"type:uuid;primaryKey" db:"id"`
	Identifier string       `gorm:"type:citext;not null;index:ix_verification_tokens_lookup" db:"identifier"`
	Token      string       `gorm:"type:text;not null" db:"token"`
	Purpose    TokenPurpose `gorm:"type:text;not null;index:ix_verification_tokens_lookup" db:"purpose"`
	Phase      TokenPhase   `gorm:"type:text;not null;default:ISSUED" db:"phase"`
	ExpiresAt  time.Time    `gorm:"not null" db:"expires_at"`
	CreatedAt  time.Time    `gorm:"not null" db:"created_at"`
}

func (VerificationToken) TableName() string { return "verification_tokens" }

func (t *VerificationToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

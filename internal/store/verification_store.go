package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jotishBolds/district-bi-sub001/internal/domain"
)

type VerificationStore struct{ db *gorm.DB }

func (s *Store) Verifications() *VerificationStore { return &VerificationStore{db: s.DB} }

// Issue supersedes any prior tokens for (identifier, purpose) and
// creates a fresh row, so at most one row is authoritative per pair.
func (v *VerificationStore) Issue(ctx context.Context, tok *domain.VerificationToken) error {
	if tok.ID == uuid.Nil {
		tok.ID = uuid.New()
	}
	if tok.Phase == "" {
		tok.Phase = domain.PhaseIssued
	}
	if tok.CreatedAt.IsZero() {
		tok.CreatedAt = time.Now().UTC()
	}
	return v.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("identifier = ? AND purpose = ?", tok.Identifier, tok.Purpose).
			Delete(&domain.VerificationToken{}).Error; err != nil {
			return err
		}
		return tx.Create(tok).Error
	})
}

// Lookup returns the newest unexpired row matching the submitted value.
// Ordering by creation time is the tie-break when stale rows linger.
func (v *VerificationStore) Lookup(ctx context.Context, identifier, token string, purpose domain.TokenPurpose, phase domain.TokenPhase, now time.Time) (*domain.VerificationToken, error) {
	var out domain.VerificationToken
	err := v.db.WithContext(ctx).
		Where("identifier = ? AND token = ? AND purpose = ? AND phase = ? AND expires_at > ?",
			identifier, token, purpose, phase, now).
		Order("created_at DESC").
		First(&out).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &out, nil
}

// Consume deletes the row only if it still carries the observed token
// value. Two concurrent submissions of the same code both pass Lookup,
// but exactly one delete matches; the loser sees zero rows affected.
func (v *VerificationStore) Consume(ctx context.Context, id domain.TokenID, token string) (bool, error) {
	tx := v.db.WithContext(ctx).
		Where("id = ? AND token = ?", id, token).
		Delete(&domain.VerificationToken{})
	return tx.RowsAffected > 0, tx.Error
}

// Exchange rotates an ISSUED reset token into its EXCHANGED phase:
// the OTP value is replaced by the opaque handle and the expiry
// extended. The phase guard makes the rotation single-winner under
// concurrent submissions of the same OTP.
func (v *VerificationStore) Exchange(ctx context.Context, id domain.TokenID, oldToken, newToken string, expiresAt time.Time) (bool, error) {
	tx := v.db.WithContext(ctx).Model(&domain.VerificationToken{}).
		Where("id = ? AND token = ? AND phase = ?", id, oldToken, domain.PhaseIssued).
		Updates(map[string]any{
			"token":      newToken,
			"phase":      domain.PhaseExchanged,
			"expires_at": expiresAt,
		})
	return tx.RowsAffected > 0, tx.Error
}

// PurgeExpired removes rows past their deadline. Expiry is enforced at
// read time; this only keeps the table from growing unbounded.
func (v *VerificationStore) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	tx := v.db.WithContext(ctx).
		Where("expires_at <= ?", now).
		Delete(&domain.VerificationToken{})
	return tx.RowsAffected, tx.Error
}

package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jotishBolds/district-bi-sub001/internal/domain"
)

type UserStore struct{ db *gorm.DB }

func (s *Store) Users() *UserStore { return &UserStore{db: s.DB} }

func (u *UserStore) Create(ctx context.Context, usr *domain.User) error {
	if usr.ID == uuid.Nil {
		usr.ID = uuid.New()
	}
	return u.db.WithContext(ctx).Create(usr).Error
}

func (u *UserStore) GetByID(ctx context.Context, id domain.UserID) (*domain.User, error) {
	var user domain.User
	if err := u.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (u *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	if err := u.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &user, nil
}

// SetActive flips the active flag and reports whether a row matched.
func (u *UserStore) SetActive(ctx context.Context, id domain.UserID, active bool) (bool, error) {
	tx := u.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ?", id).
		Updates(map[string]any{"is_active": active, "updated_at": time.Now().UTC()})
	return tx.RowsAffected > 0, tx.Error
}

// Activate marks the user verified and stamps the login time in one write.
func (u *UserStore) Activate(ctx context.Context, email string, at time.Time) error {
	return u.db.WithContext(ctx).Model(&domain.User{}).
		Where("email = ?", email).
		Updates(map[string]any{"is_active": true, "last_login_at": at, "updated_at": at}).Error
}

func (u *UserStore) StampLogin(ctx context.Context, id domain.UserID, at time.Time) error {
	return u.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ?", id).
		Update("last_login_at", at).Error
}

func (u *UserStore) SetPassword(ctx context.Context, email, hash string) error {
	return u.db.WithContext(ctx).Model(&domain.User{}).
		Where("email = ?", email).
		Updates(map[string]any{"password_hash": hash, "updated_at": time.Now().UTC()}).Error
}

// ListOfficers returns active users holding a field-officer role.
func (u *UserStore) ListOfficers(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	err := u.db.WithContext(ctx).
		Where("role IN ? AND is_active = ?", []domain.Role{domain.RoleDC, domain.RoleADC, domain.RoleRO}, true).
		Order("full_name ASC").
		Find(&out).Error
	return out, err
}

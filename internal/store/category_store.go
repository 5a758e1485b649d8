package store

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jotishBolds/district-bi-sub001/internal/domain"
)

type CategoryStore struct{ db *gorm.DB }

func (s *Store) Categories() *CategoryStore { return &CategoryStore{db: s.DB} }

func (c *CategoryStore) Create(ctx context.Context, cat *domain.ServiceCategory) error {
	if cat.ID == uuid.Nil {
		cat.ID = uuid.New()
	}
	return c.db.WithContext(ctx).Create(cat).Error
}

func (c *CategoryStore) ListActive(ctx context.Context) ([]domain.ServiceCategory, error) {
	var out []domain.ServiceCategory
	err := c.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&out).Error
	return out, err
}

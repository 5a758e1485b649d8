package impl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jotishBolds/district-bi-sub001/internal/domain"
	"github.com/jotishBolds/district-bi-sub001/internal/dto"
	"github.com/jotishBolds/district-bi-sub001/internal/observability/metrics"
	"github.com/jotishBolds/district-bi-sub001/internal/store"
)

type AccountServiceImpl struct {
	Store *store.Store
}

func NewAccountServiceImpl(st *store.Store) *AccountServiceImpl {
	return &AccountServiceImpl{Store: st}
}

// ToggleStatus flips a user's active flag. Only admin roles may call
// it, and no caller may deactivate their own account.
func (s *AccountServiceImpl) ToggleStatus(ctx context.Context, caller *domain.Session, target domain.UserID, isActive bool) (*dto.UserSummary, error) {
	result := "failure"
	defer func() { metrics.StatusTogglesTotal.WithLabelValues(result).Inc() }()

	if caller == nil || !caller.Role.CanManageUsers() {
		return nil, domain.ErrForbidden
	}
	if caller.UserID == target && !isActive {
		return nil, domain.ErrSelfDeactivation
	}

	user, err := s.Store.Users().GetByID(ctx, target)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	matched, err := s.Store.Users().SetActive(ctx, target, isActive)
	if err != nil {
		return nil, err
	}
	if !matched {
		return nil, domain.ErrUserNotFound
	}

	result = "success"
	slog.InfoContext(ctx, "user status toggled",
		"caller_id", caller.UserID, "target_id", target, "is_active", isActive)
	return &dto.UserSummary{
		ID:       user.ID.String(),
		Email:    user.Email,
		IsActive: isActive,
	}, nil
}

type DirectoryServiceImpl struct {
	Store *store.Store
}

func NewDirectoryServiceImpl(st *store.Store) *DirectoryServiceImpl {
	return &DirectoryServiceImpl{Store: st}
}

func (s *DirectoryServiceImpl) AvailableOfficers(ctx context.Context) ([]dto.OfficerSummary, error) {
	officers, err := s.Store.Users().ListOfficers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list officers: %w", err)
	}
	out := make([]dto.OfficerSummary, 0, len(officers))
	for _, o := range officers {
		out = append(out, dto.OfficerSummary{
			ID:       o.ID.String(),
			FullName: o.FullName,
			Email:    o.Email,
			Role:     string(o.Role),
		})
	}
	return out, nil
}

func (s *DirectoryServiceImpl) ServiceCategories(ctx context.Context) ([]dto.ServiceCategorySummary, error) {
	cats, err := s.Store.Categories().ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	out := make([]dto.ServiceCategorySummary, 0, len(cats))
	for _, c := range cats {
		out = append(out, dto.ServiceCategorySummary{
			ID:          c.ID.String(),
			Name:        c.Name,
			Description: c.Description,
			CreatedAt:   c.CreatedAt,
		})
	}
	return out, nil
}

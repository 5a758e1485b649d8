package service

import (
	"context"

	"github.com/jotishBolds/district-bi-sub001/internal/domain"
	"github.com/jotishBolds/district-bi-sub001/internal/dto"
)

type AccountService interface {
	ToggleStatus(ctx context.Context, caller *domain.Session, target domain.UserID, isActive bool) (*dto.UserSummary, error)
}

type DirectoryService interface {
	AvailableOfficers(ctx context.Context) ([]dto.OfficerSummary, error)
	ServiceCategories(ctx context.Context) ([]dto.ServiceCategorySummary, error)
}

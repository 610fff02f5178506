package service

import (
	"context"
	"time"

	"ai-tutor-be/internal/dto"
	"ai-tutor-be/internal/pkg/apperror"
	"ai-tutor-be/internal/repository/unitofwork"
	"ai-tutor-be/pkg/admin/dashboard"
	"ai-tutor-be/pkg/admin/mapper"
)

// IAdminService assumes the caller already passed the admin gate.
type IAdminService interface {
	GetStats(ctx context.Context) (*dto.AdminStatsResponse, error)
}

type adminService struct {
	uowFactory          unitofwork.RepositoryFactory
	dashboardAggregator *dashboard.Aggregator
	now                 func() time.Time
}

func NewAdminService(uowFactory unitofwork.RepositoryFactory, dashboardAggregator *dashboard.Aggregator) IAdminService {
	return &adminService{
		uowFactory:          uowFactory,
		dashboardAggregator: dashboardAggregator,
		now:                 time.Now,
	}
}

func (s *adminService) GetStats(ctx context.Context) (*dto.AdminStatsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	stats, err := s.dashboardAggregator.ComputeStats(ctx, uow, s.now())
	if err != nil {
		return nil, apperror.Internal("failed to compute stats", err)
	}
	return mapper.StatsToResponse(stats), nil
}

package service

import (
	"context"

	"github.com/Skotchmaster/storefront/internal/repo"
)

type AnalyticsService struct {
	Repo *repo.GormRepo
}

func (s *AnalyticsService) Dashboard(ctx context.Context) (*repo.DashboardStats, error) {
	return s.Repo.Dashboard(ctx)
}

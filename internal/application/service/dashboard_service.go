package service

import (
	"context"
	"time"

	"github.com/garyjia/expense-companion/internal/application/port"
	"github.com/garyjia/expense-companion/internal/domain/derive"
)

// DashboardService builds the home screen overview
type DashboardService interface {
	Summary(ctx context.Context, user string) (*derive.DashboardSummary, error)
}

type dashboardServiceImpl struct {
	reportRepo port.ReportRepository
	recent     int
	logger     Logger
	now        func() time.Time
}

// NewDashboardService creates a new DashboardService showing up to recent
// reports per list. A nil clock uses time.Now.
func NewDashboardService(reportRepo port.ReportRepository, recent int, logger Logger, clock func() time.Time) DashboardService {
	if clock == nil {
		clock = time.Now
	}
	return &dashboardServiceImpl{
		reportRepo: reportRepo,
		recent:     recent,
		logger:     logger,
		now:        clock,
	}
}

func (s *dashboardServiceImpl) Summary(ctx context.Context, user string) (*derive.DashboardSummary, error) {
	reports, err := s.reportRepo.List(ctx)
	if err != nil {
		s.logger.Error("Failed to load reports for dashboard", "error", err)
		return nil, err
	}
	summary := derive.Dashboard(reports, user, s.now(), s.recent)
	return &summary, nil
}

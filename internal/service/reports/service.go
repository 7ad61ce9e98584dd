package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/reports/models"
)

const defaultPeriodDays = 30

// Service сервис отчётов салона
type Service struct {
	reportRepo   ReportRepository
	access       AccessChecker
	logger       Logger
	timeProvider TimeProvider
}

// NewService создает новый экземпляр сервиса отчётов
func NewService(reportRepo ReportRepository, access AccessChecker, logger Logger) *Service {
	return &Service{
		reportRepo:   reportRepo,
		access:       access,
		logger:       logger,
		timeProvider: RealTimeProvider{},
	}
}

// GetReport сводный отчёт за период; только администратор салона
func (s *Service) GetReport(ctx context.Context, p domain.Principal, req *models.GetReportRequest) (*models.ReportResponse, error) {
	s.logger.Info("GetReport: shop=%d, user=%d", req.ShopID, p.UserID)

	period, err := s.parsePeriod(req)
	if err != nil {
		s.logger.Warn("GetReport: invalid period for shop=%d: %v", req.ShopID, err)
		return nil, err
	}

	if err := s.access.RequireAdmin(ctx, p, req.ShopID); err != nil {
		return nil, err
	}

	report := &domain.ShopReport{ShopID: req.ShopID, Period: period}

	report.Statuses, err = s.reportRepo.GetStatusCounts(ctx, req.ShopID, period)
	if err != nil {
		return nil, s.internal("GetStatusCounts", req.ShopID, err)
	}

	totals, err := s.reportRepo.GetTotals(ctx, req.ShopID, period)
	if err != nil {
		return nil, s.internal("GetTotals", req.ShopID, err)
	}
	report.Totals = *totals

	report.TopServices, err = s.reportRepo.GetTopServices(ctx, req.ShopID, period, domain.TopServicesLimit)
	if err != nil {
		return nil, s.internal("GetTopServices", req.ShopID, err)
	}

	report.Staff, err = s.reportRepo.GetStaffRevenue(ctx, req.ShopID, period)
	if err != nil {
		return nil, s.internal("GetStaffRevenue", req.ShopID, err)
	}

	s.logger.Info("GetReport: shop=%d, %d operations, revenue=%.2f", req.ShopID, report.Totals.Operations, report.Totals.Revenue)
	return models.FromDomainReport(report), nil
}

func (s *Service) parsePeriod(req *models.GetReportRequest) (domain.ReportPeriod, error) {
	now := s.timeProvider.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	period := domain.ReportPeriod{
		From: today.AddDate(0, 0, -(defaultPeriodDays - 1)),
		To:   today,
	}

	if req.From != nil {
		from, err := time.Parse(domain.DateFormat, *req.From)
		if err != nil {
			return period, fmt.Errorf("%w: from must be YYYY-MM-DD", ErrInvalidPeriod)
		}
		period.From = from
	}
	if req.To != nil {
		to, err := time.Parse(domain.DateFormat, *req.To)
		if err != nil {
			return period, fmt.Errorf("%w: to must be YYYY-MM-DD", ErrInvalidPeriod)
		}
		period.To = to
	}

	if period.To.Before(period.From) {
		return period, fmt.Errorf("%w: to is before from", ErrInvalidPeriod)
	}
	if period.Days() > domain.MaxReportPeriodDays {
		return period, fmt.Errorf("%w: period is longer than %d days", ErrInvalidPeriod, domain.MaxReportPeriodDays)
	}
	return period, nil
}

func (s *Service) internal(method string, shopID int64, err error) error {
	s.logger.Error("GetReport: %s failed for shop=%d: %v", method, shopID, err)
	return fmt.Errorf("%w: GetReport - %s: %v", ErrInternal, method, err)
}

package reports

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// ReportRepository интерфейс репозитория отчётов
type ReportRepository interface {
	GetStatusCounts(ctx context.Context, shopID int64, period domain.ReportPeriod) ([]domain.StatusCount, error)
	GetTotals(ctx context.Context, shopID int64, period domain.ReportPeriod) (*domain.RevenueTotals, error)
	GetTopServices(ctx context.Context, shopID int64, period domain.ReportPeriod, limit int) ([]domain.ServiceRevenue, error)
	GetStaffRevenue(ctx context.Context, shopID int64, period domain.ReportPeriod) ([]domain.StaffRevenue, error)
}

// AccessChecker проверка прав в салоне
type AccessChecker interface {
	RequireAdmin(ctx context.Context, p domain.Principal, shopID int64) error
}

// TimeProvider источник текущего времени
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальное время
type RealTimeProvider struct{}

func (RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

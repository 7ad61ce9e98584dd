package staff

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// StaffRepository интерфейс репозитория сотрудников
type StaffRepository interface {
	GetByShopID(ctx context.Context, shopID int64, includeInactive bool) ([]*domain.Staff, error)
	GetByID(ctx context.Context, id int64) (*domain.Staff, error)
	Create(ctx context.Context, s *domain.Staff) (*domain.Staff, error)
	Update(ctx context.Context, s *domain.Staff) error
}

// AccessChecker проверка прав в салоне
type AccessChecker interface {
	RequireAdmin(ctx context.Context, p domain.Principal, shopID int64) error
	RequireStaff(ctx context.Context, p domain.Principal, shopID int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

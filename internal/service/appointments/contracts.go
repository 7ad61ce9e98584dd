package appointments

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/infra/events"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Appointment, error)
	GetByCustomerID(ctx context.Context, customerID int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error)
	GetByShopWithFilter(ctx context.Context, filter domain.ShopAppointmentsFilter) ([]*domain.Appointment, error)
	GetActiveByStaffAndDate(ctx context.Context, staffID int64, date time.Time) ([]*domain.Appointment, error)
	Update(ctx context.Context, a *domain.Appointment) error
	Delete(ctx context.Context, id int64) error
}

// AccessChecker проверка прав в салоне
type AccessChecker interface {
	Shop(ctx context.Context, shopID int64) (*domain.Shop, error)
	Customer(ctx context.Context, customerID int64) (*domain.Customer, error)
	RequireAdmin(ctx context.Context, p domain.Principal, shopID int64) error
	RequireStaff(ctx context.Context, p domain.Principal, shopID int64) error
	RequireCustomer(ctx context.Context, p domain.Principal, customerID int64) error
	RequireCustomerOrStaff(ctx context.Context, p domain.Principal, customerID, shopID int64) error
}

// EventPublisher публикация событий смены статуса
type EventPublisher interface {
	PublishStatusChanged(ctx context.Context, event events.StatusChanged) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics учёт переходов жизненного цикла
type Metrics interface {
	ObserveTransition(action, result string)
}

// TimeProvider источник текущего времени
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider системное время
type RealTimeProvider struct{}

// Now возвращает текущее время
func (RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

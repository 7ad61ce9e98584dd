package complete_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/infra/events"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Appointment, error)
	Update(ctx context.Context, a *domain.Appointment) error
}

// OperationRepository интерфейс репозитория истории операций
type OperationRepository interface {
	Create(ctx context.Context, op *domain.CustomerOperation) (*domain.CustomerOperation, error)
}

// AccessChecker проверка прав в салоне
type AccessChecker interface {
	RequireStaff(ctx context.Context, p domain.Principal, shopID int64) error
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

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

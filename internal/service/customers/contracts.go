package customers

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// CustomerRepository интерфейс репозитория клиентов
type CustomerRepository interface {
	Create(ctx context.Context, c *domain.Customer) (*domain.Customer, error)
	Search(ctx context.Context, shopID int64, q string, limit int) ([]*domain.Customer, error)
	GetStats(ctx context.Context, customerID int64) (*domain.CustomerStats, error)
}

// OperationRepository интерфейс репозитория истории операций
type OperationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.CustomerOperation, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.CustomerOperation, error)
	GetByCustomerID(ctx context.Context, customerID int64) ([]*domain.CustomerOperation, error)
	UpdateNotes(ctx context.Context, id int64, notes *string) error
	CountPhotos(ctx context.Context, operationID int64) (int, error)
	AddPhoto(ctx context.Context, photo *domain.OperationPhoto) (*domain.OperationPhoto, error)
	DeletePhoto(ctx context.Context, operationID int64, photoID string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// AccessChecker проверка прав в салоне
type AccessChecker interface {
	Shop(ctx context.Context, shopID int64) (*domain.Shop, error)
	Customer(ctx context.Context, customerID int64) (*domain.Customer, error)
	RequireStaff(ctx context.Context, p domain.Principal, shopID int64) error
	RequireCustomerOrStaff(ctx context.Context, p domain.Principal, customerID, shopID int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package access

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// ShopRepository интерфейс репозитория салонов
type ShopRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Shop, error)
}

// StaffRepository интерфейс репозитория сотрудников
type StaffRepository interface {
	GetByUserID(ctx context.Context, shopID, userID int64) (*domain.Staff, error)
}

// CustomerRepository интерфейс репозитория клиентов
type CustomerRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

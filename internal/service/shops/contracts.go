package shops

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// ShopRepository интерфейс репозитория салонов
type ShopRepository interface {
	UpdateSettings(ctx context.Context, shop *domain.Shop) error
}

// AccessChecker проверка прав в салоне
type AccessChecker interface {
	Shop(ctx context.Context, shopID int64) (*domain.Shop, error)
	RequireAdmin(ctx context.Context, p domain.Principal, shopID int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package catalog

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// CatalogRepository интерфейс репозитория каталога
type CatalogRepository interface {
	GetCategories(ctx context.Context, shopID int64) ([]*domain.Category, error)
	CategoryExists(ctx context.Context, shopID, categoryID int64) (bool, error)
	GetServices(ctx context.Context, filter domain.ServicesFilter) ([]*domain.Service, error)
	GetServiceByID(ctx context.Context, shopID, serviceID int64) (*domain.Service, error)
	CreateService(ctx context.Context, s *domain.Service) (*domain.Service, error)
	UpdateService(ctx context.Context, s *domain.Service) error
}

// Cache кэш каталога
type Cache interface {
	GetCategories(ctx context.Context, shopID int64) ([]*domain.Category, bool)
	SetCategories(ctx context.Context, shopID int64, categories []*domain.Category)
	GetServices(ctx context.Context, filter domain.ServicesFilter) ([]*domain.Service, bool)
	SetServices(ctx context.Context, filter domain.ServicesFilter, services []*domain.Service)
	Invalidate(ctx context.Context, shopID int64)
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

package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SalonService/internal/service/catalog/models"
)

// Service сервис каталога услуг. Списки читаются через кэш, запись его сбрасывает.
type Service struct {
	catalogRepo CatalogRepository
	cache       Cache
	access      AccessChecker
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(catalogRepo CatalogRepository, cache Cache, access AccessChecker, logger Logger) *Service {
	return &Service{
		catalogRepo: catalogRepo,
		cache:       cache,
		access:      access,
		logger:      logger,
	}
}

// GetCategories дерево категорий салона
func (s *Service) GetCategories(ctx context.Context, shopID int64) (*models.CategoryTreeResponse, error) {
	if categories, ok := s.cache.GetCategories(ctx, shopID); ok {
		return models.BuildCategoryTree(categories), nil
	}

	if _, err := s.access.Shop(ctx, shopID); err != nil {
		return nil, err
	}

	categories, err := s.catalogRepo.GetCategories(ctx, shopID)
	if err != nil {
		s.logger.Error("GetCategories: repository error for shop=%d: %v", shopID, err)
		return nil, fmt.Errorf("%w: GetCategories - repository error: %v", ErrInternal, err)
	}

	s.cache.SetCategories(ctx, shopID, categories)
	return models.BuildCategoryTree(categories), nil
}

// GetServices услуги салона; неактивные только по запросу
func (s *Service) GetServices(ctx context.Context, req *models.GetServicesRequest) (*models.ServiceListResponse, error) {
	filter := domain.ServicesFilter{
		ShopID:          req.ShopID,
		CategoryID:      req.CategoryID,
		IncludeInactive: req.IncludeInactive,
	}

	if services, ok := s.cache.GetServices(ctx, filter); ok {
		return models.FromDomainServiceList(services), nil
	}

	if _, err := s.access.Shop(ctx, req.ShopID); err != nil {
		return nil, err
	}

	services, err := s.catalogRepo.GetServices(ctx, filter)
	if err != nil {
		s.logger.Error("GetServices: repository error for shop=%d: %v", req.ShopID, err)
		return nil, fmt.Errorf("%w: GetServices - repository error: %v", ErrInternal, err)
	}

	s.cache.SetServices(ctx, filter, services)
	return models.FromDomainServiceList(services), nil
}

// CreateService добавляет услугу; только администратор салона
func (s *Service) CreateService(ctx context.Context, p domain.Principal, shopID int64, req *models.ServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("CreateService: shop=%d, user=%d, name=%q", shopID, p.UserID, req.Name)

	if err := s.access.RequireAdmin(ctx, p, shopID); err != nil {
		return nil, err
	}

	service := &domain.Service{ShopID: shopID, IsActive: true}
	if err := s.apply(ctx, service, req); err != nil {
		return nil, err
	}

	created, err := s.catalogRepo.CreateService(ctx, service)
	if err != nil {
		s.logger.Error("CreateService: repository error for shop=%d: %v", shopID, err)
		return nil, fmt.Errorf("%w: CreateService - repository error: %v", ErrInternal, err)
	}

	s.cache.Invalidate(ctx, shopID)
	s.logger.Info("CreateService: created service id=%d in shop=%d", created.ID, shopID)
	return models.FromDomainService(created), nil
}

// UpdateService изменяет услугу; только администратор салона
func (s *Service) UpdateService(ctx context.Context, p domain.Principal, shopID, serviceID int64, req *models.ServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("UpdateService: shop=%d, service=%d, user=%d", shopID, serviceID, p.UserID)

	if err := s.access.RequireAdmin(ctx, p, shopID); err != nil {
		return nil, err
	}

	service, err := s.catalogRepo.GetServiceByID(ctx, shopID, serviceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("UpdateService: service id=%d not found in shop=%d", serviceID, shopID)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("UpdateService: repository error for service id=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: UpdateService - repository error: %v", ErrInternal, err)
	}

	if err := s.apply(ctx, service, req); err != nil {
		return nil, err
	}

	if err := s.catalogRepo.UpdateService(ctx, service); err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		s.logger.Error("UpdateService: repository error for service id=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: UpdateService - repository error: %v", ErrInternal, err)
	}

	s.cache.Invalidate(ctx, shopID)
	s.logger.Info("UpdateService: updated service id=%d", serviceID)
	return models.FromDomainService(service), nil
}

// apply переносит поля запроса в услугу, проверяя категорию салона
func (s *Service) apply(ctx context.Context, service *domain.Service, req *models.ServiceRequest) error {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if req.Price < 0 || req.DurationMinutes <= 0 || req.Points < 0 {
		return fmt.Errorf("%w: price and points must be non-negative, duration positive", ErrInvalidInput)
	}

	if req.CategoryID != nil {
		exists, err := s.catalogRepo.CategoryExists(ctx, service.ShopID, *req.CategoryID)
		if err != nil {
			s.logger.Error("apply: repository error for category id=%d: %v", *req.CategoryID, err)
			return fmt.Errorf("%w: apply - repository error: %v", ErrInternal, err)
		}
		if !exists {
			s.logger.Warn("apply: category id=%d not found in shop=%d", *req.CategoryID, service.ShopID)
			return ErrCategoryNotFound
		}
	}

	service.CategoryID = req.CategoryID
	service.Name = name
	service.Price = req.Price
	service.DurationMinutes = req.DurationMinutes
	service.Points = req.Points
	if req.IsActive != nil {
		service.IsActive = *req.IsActive
	}
	return nil
}

package customers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	customerRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/customer"
	operationRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/operation"
	"github.com/m04kA/SMC-SalonService/internal/service/customers/models"
)

const searchLimit = 50

// Service сервис клиентов салона и их истории операций
type Service struct {
	customerRepo  CustomerRepository
	operationRepo OperationRepository
	access        AccessChecker
	txManager     TransactionManager
	logger        Logger
}

// NewService создает новый экземпляр сервиса клиентов
func NewService(customerRepo CustomerRepository, operationRepo OperationRepository, access AccessChecker, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		customerRepo:  customerRepo,
		operationRepo: operationRepo,
		access:        access,
		txManager:     txManager,
		logger:        logger,
	}
}

// Create создает карточку клиента. Сотрудники заводят карточку любому клиенту,
// клиент может зарегистрироваться в салоне только сам.
func (s *Service) Create(ctx context.Context, p domain.Principal, shopID int64, req *models.CreateCustomerRequest) (*models.CustomerResponse, error) {
	s.logger.Info("Create: shop=%d, user=%d, role=%s", shopID, p.UserID, p.Role)

	if p.IsCustomer() {
		if req.UserID != nil && *req.UserID != p.UserID {
			s.logger.Warn("Create: customer user=%d tried to create card for user=%d", p.UserID, *req.UserID)
			return nil, ErrAccessDenied
		}
		userID := p.UserID
		req.UserID = &userID
		if _, err := s.access.Shop(ctx, shopID); err != nil {
			return nil, err
		}
	} else if err := s.access.RequireStaff(ctx, p, shopID); err != nil {
		return nil, err
	}

	customer := &domain.Customer{
		ShopID:   shopID,
		UserID:   req.UserID,
		FullName: strings.TrimSpace(req.FullName),
		Phone:    strings.TrimSpace(req.Phone),
		Email:    req.Email,
		Notes:    req.Notes,
	}
	if customer.FullName == "" || customer.Phone == "" {
		return nil, fmt.Errorf("%w: fullName and phone are required", ErrInvalidInput)
	}

	created, err := s.customerRepo.Create(ctx, customer)
	if err != nil {
		if errors.Is(err, customerRepo.ErrCustomerExists) {
			s.logger.Warn("Create: customer with phone already exists in shop=%d", shopID)
			return nil, ErrCustomerExists
		}
		s.logger.Error("Create: repository error for shop=%d: %v", shopID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: created customer id=%d in shop=%d", created.ID, shopID)
	return models.FromDomainCustomer(created, &domain.CustomerStats{}), nil
}

// Get карточка клиента с агрегатами по истории
func (s *Service) Get(ctx context.Context, p domain.Principal, customerID int64) (*models.CustomerResponse, error) {
	s.logger.Info("Get: customer=%d, user=%d", customerID, p.UserID)

	customer, err := s.access.Customer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if err := s.access.RequireCustomerOrStaff(ctx, p, customer.ID, customer.ShopID); err != nil {
		return nil, err
	}

	stats, err := s.customerRepo.GetStats(ctx, customerID)
	if err != nil {
		s.logger.Error("Get: failed to get stats for customer=%d: %v", customerID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainCustomer(customer, stats), nil
}

// Search поиск клиентов салона по имени или телефону; только сотрудники
func (s *Service) Search(ctx context.Context, p domain.Principal, shopID int64, q string) (*models.CustomerListResponse, error) {
	s.logger.Info("Search: shop=%d, user=%d, q=%q", shopID, p.UserID, q)

	if err := s.access.RequireStaff(ctx, p, shopID); err != nil {
		return nil, err
	}

	list, err := s.customerRepo.Search(ctx, shopID, q, searchLimit)
	if err != nil {
		s.logger.Error("Search: repository error for shop=%d: %v", shopID, err)
		return nil, fmt.Errorf("%w: Search - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainCustomerList(list), nil
}

// GetOperations история операций клиента с фотографиями
func (s *Service) GetOperations(ctx context.Context, p domain.Principal, customerID int64) (*models.OperationListResponse, error) {
	s.logger.Info("GetOperations: customer=%d, user=%d", customerID, p.UserID)

	customer, err := s.access.Customer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if err := s.access.RequireCustomerOrStaff(ctx, p, customer.ID, customer.ShopID); err != nil {
		return nil, err
	}

	operations, err := s.operationRepo.GetByCustomerID(ctx, customerID)
	if err != nil {
		s.logger.Error("GetOperations: repository error for customer=%d: %v", customerID, err)
		return nil, fmt.Errorf("%w: GetOperations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetOperations: fetched %d operations for customer=%d", len(operations), customerID)
	return models.FromDomainOperationList(operations), nil
}

// UpdateOperation меняет заметки к операции. Статус записи не затрагивается.
func (s *Service) UpdateOperation(ctx context.Context, p domain.Principal, operationID int64, req *models.UpdateOperationRequest) (*models.OperationResponse, error) {
	s.logger.Info("UpdateOperation: operation=%d, user=%d", operationID, p.UserID)

	if req.Notes != nil && len([]rune(*req.Notes)) > domain.MaxNotesLength {
		return nil, fmt.Errorf("%w: notes are longer than %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	op, err := s.operationForStaff(ctx, p, operationID)
	if err != nil {
		return nil, err
	}

	if err := s.operationRepo.UpdateNotes(ctx, operationID, req.Notes); err != nil {
		return nil, s.mapOperationError("UpdateOperation", operationID, err)
	}

	updated, err := s.operationRepo.GetByID(ctx, op.ID)
	if err != nil {
		return nil, s.mapOperationError("UpdateOperation", operationID, err)
	}

	return models.FromDomainOperation(updated), nil
}

// AddPhoto прикрепляет ссылку на фото к операции
func (s *Service) AddPhoto(ctx context.Context, p domain.Principal, operationID int64, req *models.AddPhotoRequest) (*models.PhotoResponse, error) {
	s.logger.Info("AddPhoto: operation=%d, user=%d", operationID, p.UserID)

	key := strings.TrimSpace(req.StorageKey)
	if key == "" {
		return nil, fmt.Errorf("%w: storageKey is required", ErrInvalidInput)
	}

	var photo *domain.OperationPhoto
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// Блокировка строки операции сериализует параллельные добавления фото
		op, err := s.operationRepo.GetByIDForUpdate(txCtx, operationID)
		if err != nil {
			return s.mapOperationError("AddPhoto", operationID, err)
		}
		if err := s.access.RequireStaff(txCtx, p, op.ShopID); err != nil {
			return err
		}

		count, err := s.operationRepo.CountPhotos(txCtx, operationID)
		if err != nil {
			return s.mapOperationError("AddPhoto", operationID, err)
		}
		if count >= domain.MaxPhotosPerOperation {
			s.logger.Warn("AddPhoto: operation=%d already has %d photos", operationID, count)
			return ErrTooManyPhotos
		}

		photo, err = s.operationRepo.AddPhoto(txCtx, &domain.OperationPhoto{
			ID:          uuid.NewString(),
			OperationID: operationID,
			StorageKey:  key,
			Caption:     req.Caption,
		})
		if err != nil {
			return s.mapOperationError("AddPhoto", operationID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("AddPhoto: photo id=%s added to operation=%d", photo.ID, operationID)
	resp := models.FromDomainPhoto(*photo)
	return &resp, nil
}

// RemovePhoto удаляет ссылку на фото
func (s *Service) RemovePhoto(ctx context.Context, p domain.Principal, operationID int64, photoID string) error {
	s.logger.Info("RemovePhoto: operation=%d, photo=%s, user=%d", operationID, photoID, p.UserID)

	if _, err := uuid.Parse(photoID); err != nil {
		return fmt.Errorf("%w: photoId must be a uuid", ErrInvalidInput)
	}

	if _, err := s.operationForStaff(ctx, p, operationID); err != nil {
		return err
	}

	if err := s.operationRepo.DeletePhoto(ctx, operationID, photoID); err != nil {
		return s.mapOperationError("RemovePhoto", operationID, err)
	}

	return nil
}

func (s *Service) operationForStaff(ctx context.Context, p domain.Principal, operationID int64) (*domain.CustomerOperation, error) {
	op, err := s.operationRepo.GetByID(ctx, operationID)
	if err != nil {
		return nil, s.mapOperationError("operationForStaff", operationID, err)
	}
	if err := s.access.RequireStaff(ctx, p, op.ShopID); err != nil {
		return nil, err
	}
	return op, nil
}

func (s *Service) mapOperationError(method string, operationID int64, err error) error {
	switch {
	case errors.Is(err, operationRepo.ErrOperationNotFound):
		s.logger.Warn("%s: operation id=%d not found", method, operationID)
		return ErrOperationNotFound
	case errors.Is(err, operationRepo.ErrPhotoNotFound):
		s.logger.Warn("%s: photo not found for operation id=%d", method, operationID)
		return ErrPhotoNotFound
	default:
		s.logger.Error("%s: repository error for operation id=%d: %v", method, operationID, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}
}

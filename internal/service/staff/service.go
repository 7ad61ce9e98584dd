package staff

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	staffRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/staff"
	"github.com/m04kA/SMC-SalonService/internal/service/staff/models"
)

// Service сервис профилей сотрудников
type Service struct {
	staffRepo StaffRepository
	access    AccessChecker
	logger    Logger
}

// NewService создает новый экземпляр сервиса сотрудников
func NewService(staffRepo StaffRepository, access AccessChecker, logger Logger) *Service {
	return &Service{
		staffRepo: staffRepo,
		access:    access,
		logger:    logger,
	}
}

// List сотрудники салона. Уволенные видны только администратору.
func (s *Service) List(ctx context.Context, p domain.Principal, shopID int64, includeInactive bool) (*models.StaffListResponse, error) {
	s.logger.Info("List: shop=%d, user=%d", shopID, p.UserID)

	if includeInactive {
		if err := s.access.RequireAdmin(ctx, p, shopID); err != nil {
			return nil, err
		}
	} else if err := s.access.RequireStaff(ctx, p, shopID); err != nil {
		return nil, err
	}

	list, err := s.staffRepo.GetByShopID(ctx, shopID, includeInactive)
	if err != nil {
		s.logger.Error("List: repository error for shop=%d: %v", shopID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainStaffList(list), nil
}

// Get профиль сотрудника: свой или любого сотрудника своего салона
func (s *Service) Get(ctx context.Context, p domain.Principal, staffID int64) (*models.StaffResponse, error) {
	s.logger.Info("Get: staff=%d, user=%d", staffID, p.UserID)

	member, err := s.load(ctx, "Get", staffID)
	if err != nil {
		return nil, err
	}

	if member.UserID != p.UserID {
		if member.ShopID == nil {
			return nil, ErrAccessDenied
		}
		if err := s.access.RequireStaff(ctx, p, *member.ShopID); err != nil {
			return nil, err
		}
	}

	return models.FromDomainStaff(member), nil
}

// Create добавляет сотрудника в салон; только администратор
func (s *Service) Create(ctx context.Context, p domain.Principal, shopID int64, req *models.StaffRequest) (*models.StaffResponse, error) {
	s.logger.Info("Create: shop=%d, user=%d", shopID, p.UserID)

	if err := s.access.RequireAdmin(ctx, p, shopID); err != nil {
		return nil, err
	}
	if req.UserID <= 0 {
		return nil, fmt.Errorf("%w: userId must be positive", ErrInvalidInput)
	}

	member := &domain.Staff{ShopID: &shopID, UserID: req.UserID, IsActive: true}
	if err := apply(member, req); err != nil {
		return nil, err
	}

	created, err := s.staffRepo.Create(ctx, member)
	if err != nil {
		if errors.Is(err, staffRepo.ErrStaffExists) {
			s.logger.Warn("Create: user=%d already works in shop=%d", req.UserID, shopID)
			return nil, ErrStaffExists
		}
		s.logger.Error("Create: repository error for shop=%d: %v", shopID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: created staff id=%d in shop=%d", created.ID, shopID)
	return models.FromDomainStaff(created), nil
}

// Update изменяет профиль; только администратор салона сотрудника
func (s *Service) Update(ctx context.Context, p domain.Principal, staffID int64, req *models.StaffRequest) (*models.StaffResponse, error) {
	s.logger.Info("Update: staff=%d, user=%d", staffID, p.UserID)

	member, err := s.load(ctx, "Update", staffID)
	if err != nil {
		return nil, err
	}
	if member.ShopID == nil {
		s.logger.Warn("Update: staff id=%d is not attached to a shop", staffID)
		return nil, ErrAccessDenied
	}
	if err := s.access.RequireAdmin(ctx, p, *member.ShopID); err != nil {
		return nil, err
	}

	if err := apply(member, req); err != nil {
		return nil, err
	}

	if err := s.staffRepo.Update(ctx, member); err != nil {
		switch {
		case errors.Is(err, staffRepo.ErrStaffNotFound):
			return nil, ErrStaffNotFound
		case errors.Is(err, staffRepo.ErrStaffExists):
			return nil, ErrStaffExists
		}
		s.logger.Error("Update: repository error for staff id=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: updated staff id=%d", staffID)
	return models.FromDomainStaff(member), nil
}

func (s *Service) load(ctx context.Context, method string, staffID int64) (*domain.Staff, error) {
	member, err := s.staffRepo.GetByID(ctx, staffID)
	if err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			s.logger.Warn("%s: staff id=%d not found", method, staffID)
			return nil, ErrStaffNotFound
		}
		s.logger.Error("%s: repository error for staff id=%d: %v", method, staffID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}
	return member, nil
}

// apply переносит поля запроса в профиль с проверкой схемы оплаты
func apply(member *domain.Staff, req *models.StaffRequest) error {
	name := strings.TrimSpace(req.FullName)
	if name == "" {
		return fmt.Errorf("%w: fullName is required", ErrInvalidInput)
	}

	payBasis := domain.PayBasis(req.PayBasis)
	if !payBasis.IsValid() {
		return fmt.Errorf("%w: unknown payBasis %q", ErrInvalidInput, req.PayBasis)
	}
	if req.CommissionPercent < 0 || req.CommissionPercent > domain.MaxCommissionPercent {
		return fmt.Errorf("%w: commissionPercent must be in [0, %d]", ErrInvalidInput, domain.MaxCommissionPercent)
	}
	if req.BaseRate < 0 {
		return fmt.Errorf("%w: baseRate must be non-negative", ErrInvalidInput)
	}

	var hiredAt *time.Time
	if req.HiredAt != nil {
		t, err := time.Parse(domain.DateFormat, *req.HiredAt)
		if err != nil {
			return fmt.Errorf("%w: hiredAt must be YYYY-MM-DD", ErrInvalidInput)
		}
		hiredAt = &t
	}

	member.FullName = name
	member.Phone = req.Phone
	member.Position = req.Position
	member.PayBasis = payBasis
	member.BaseRate = req.BaseRate
	member.CommissionPercent = req.CommissionPercent
	member.HiredAt = hiredAt
	if req.IsActive != nil {
		member.IsActive = *req.IsActive
	}
	return nil
}

package shops

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	shopRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/shop"
	"github.com/m04kA/SMC-SalonService/internal/service/shops/models"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

const (
	maxSlotStepMinutes         = 480   // 8 часов
	maxAdvanceBookingDays      = 365
	maxMinBookingNoticeMinutes = 10080 // 7 дней
)

// Service сервис настроек салона: часы работы и правила записи
type Service struct {
	shopRepo ShopRepository
	access   AccessChecker
	logger   Logger
}

// NewService создает новый экземпляр сервиса настроек салона
func NewService(shopRepo ShopRepository, access AccessChecker, logger Logger) *Service {
	return &Service{
		shopRepo: shopRepo,
		access:   access,
		logger:   logger,
	}
}

// GetSettings настройки салона.
// Публичный метод - клиенту нужны часы работы до записи
func (s *Service) GetSettings(ctx context.Context, shopID int64) (*models.SettingsResponse, error) {
	s.logger.Info("GetSettings: shop=%d", shopID)

	shop, err := s.access.Shop(ctx, shopID)
	if err != nil {
		return nil, err
	}

	return models.FromDomainShop(shop), nil
}

// UpdateSettings частично обновляет настройки; только администратор салона
func (s *Service) UpdateSettings(ctx context.Context, p domain.Principal, shopID int64, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("UpdateSettings: shop=%d, user=%d", shopID, p.UserID)

	if err := s.access.RequireAdmin(ctx, p, shopID); err != nil {
		return nil, err
	}

	shop, err := s.access.Shop(ctx, shopID)
	if err != nil {
		return nil, err
	}

	// Изменения применяются к копии, чтобы проверить итоговое состояние целиком
	updated := *shop
	if err := applySettings(&updated, req); err != nil {
		s.logger.Warn("UpdateSettings: validation failed for shop=%d: %v", shopID, err)
		return nil, err
	}

	if err := s.shopRepo.UpdateSettings(ctx, &updated); err != nil {
		if errors.Is(err, shopRepo.ErrShopNotFound) {
			s.logger.Warn("UpdateSettings: shop id=%d not found during update", shopID)
			return nil, ErrShopNotFound
		}
		s.logger.Error("UpdateSettings: repository error for shop=%d: %v", shopID, err)
		return nil, fmt.Errorf("%w: UpdateSettings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateSettings: updated shop=%d", shopID)
	return models.FromDomainShop(&updated), nil
}

func applySettings(shop *domain.Shop, req *models.UpdateSettingsRequest) error {
	if req.OpenTime != nil {
		t, err := types.NewTimeStringFromString(*req.OpenTime)
		if err != nil {
			return fmt.Errorf("%w: openTime must be HH:MM", ErrInvalidInput)
		}
		shop.OpenTime = t
	}
	if req.CloseTime != nil {
		t, err := types.NewTimeStringFromString(*req.CloseTime)
		if err != nil {
			return fmt.Errorf("%w: closeTime must be HH:MM", ErrInvalidInput)
		}
		shop.CloseTime = t
	}
	if req.SlotStepMinutes != nil {
		shop.SlotStepMinutes = *req.SlotStepMinutes
	}
	if req.MinBookingNoticeMinutes != nil {
		shop.MinBookingNoticeMinutes = *req.MinBookingNoticeMinutes
	}
	if req.AdvanceBookingDays != nil {
		shop.AdvanceBookingDays = *req.AdvanceBookingDays
	}

	if !shop.OpenTime.IsBefore(shop.CloseTime) {
		return fmt.Errorf("%w: openTime must be before closeTime", ErrInvalidInput)
	}
	if shop.SlotStepMinutes <= 0 || shop.SlotStepMinutes > maxSlotStepMinutes {
		return fmt.Errorf("%w: slotStepMinutes must be between 1 and %d", ErrInvalidInput, maxSlotStepMinutes)
	}
	if shop.AdvanceBookingDays < 0 || shop.AdvanceBookingDays > maxAdvanceBookingDays {
		return fmt.Errorf("%w: advanceBookingDays must be between 0 and %d", ErrInvalidInput, maxAdvanceBookingDays)
	}
	if shop.MinBookingNoticeMinutes < 0 || shop.MinBookingNoticeMinutes > maxMinBookingNoticeMinutes {
		return fmt.Errorf("%w: minBookingNoticeMinutes must be between 0 and %d", ErrInvalidInput, maxMinBookingNoticeMinutes)
	}

	return nil
}

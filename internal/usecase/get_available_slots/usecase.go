package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/catalog"
	shopRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/shop"
	staffRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/staff"
)

// UseCase use case для получения доступных слотов для записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	shopRepo        ShopRepository
	catalogRepo     CatalogRepository
	staffRepo       StaffRepository
	defaultSlotStep int
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	shopRepo ShopRepository,
	catalogRepo CatalogRepository,
	staffRepo StaffRepository,
	defaultSlotStep int, // шаг сетки для салонов без slot_step_minutes
	logger Logger,
) *UseCase {
	if defaultSlotStep <= 0 {
		defaultSlotStep = domain.DefaultSlotStepMinutes
	}
	return &UseCase{
		appointmentRepo: appointmentRepo,
		shopRepo:        shopRepo,
		catalogRepo:     catalogRepo,
		staffRepo:       staffRepo,
		defaultSlotStep: defaultSlotStep,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: shop=%d, service=%d, date=%s",
		req.ShopID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	now := wallClock(uc.timeProvider.Now())

	// 2. Салон
	shop, err := uc.shopRepo.GetByID(ctx, req.ShopID)
	if err != nil {
		if errors.Is(err, shopRepo.ErrShopNotFound) {
			uc.logger.Warn("GetAvailableSlots: shop id=%d not found", req.ShopID)
			return nil, ErrShopNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get shop id=%d: %v", req.ShopID, err)
		return nil, fmt.Errorf("%w: failed to get shop: %v", ErrInternal, err)
	}

	// 3. Услуга задаёт длительность визита
	service, err := uc.catalogRepo.GetServiceByID(ctx, req.ShopID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.IsActive {
		uc.logger.Warn("GetAvailableSlots: service id=%d is inactive", req.ServiceID)
		return nil, ErrServiceNotFound
	}

	// 4. Валидация даты
	if err := validateDate(req.Date, now, shop.AdvanceBookingDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 5. Мастера, чья занятость учитывается
	staffIDs, err := uc.staffIDs(ctx, req)
	if err != nil {
		return nil, err
	}

	// 6. Генерируем временные слоты
	step := shop.SlotStepMinutes
	if step <= 0 {
		step = uc.defaultSlotStep
	}

	timeSlots := generateTimeSlots(shop, step, service.DurationMinutes, req.Date, now, shop.MinBookingNoticeMinutes)

	// 7. Занятость мастеров на дату
	schedules := make([]staffSchedule, 0, len(staffIDs))
	for _, id := range staffIDs {
		busy, err := uc.appointmentRepo.GetActiveByStaffAndDate(ctx, id, dateOnly(req.Date))
		if err != nil {
			uc.logger.Error("GetAvailableSlots: failed to get appointments of staff=%d: %v", id, err)
			return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}
		schedules = append(schedules, staffSchedule{staffID: id, busy: busy})
	}

	// 8. Вычисляем доступность для каждого слота
	slots := calculateAvailability(timeSlots, service.DurationMinutes, schedules)

	uc.logger.Info("GetAvailableSlots: generated %d slots for shop=%d, service=%d, date=%s",
		len(slots), req.ShopID, req.ServiceID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:      dateOnly(req.Date),
		ShopID:    req.ShopID,
		ServiceID: req.ServiceID,
		StaffID:   req.StaffID,
		Slots:     slots,
	}, nil
}

func (uc *UseCase) staffIDs(ctx context.Context, req *Request) ([]int64, error) {
	if req.StaffID != nil {
		member, err := uc.staffRepo.GetByID(ctx, *req.StaffID)
		if err != nil {
			if errors.Is(err, staffRepo.ErrStaffNotFound) {
				uc.logger.Warn("GetAvailableSlots: staff id=%d not found", *req.StaffID)
				return nil, ErrStaffNotFound
			}
			uc.logger.Error("GetAvailableSlots: failed to get staff id=%d: %v", *req.StaffID, err)
			return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
		}
		if !member.WorksAt(req.ShopID) {
			uc.logger.Warn("GetAvailableSlots: staff id=%d does not work in shop=%d", *req.StaffID, req.ShopID)
			return nil, ErrStaffNotFound
		}
		return []int64{member.ID}, nil
	}

	members, err := uc.staffRepo.GetByShopID(ctx, req.ShopID, false)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get staff of shop=%d: %v", req.ShopID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}

	ids := make([]int64, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.ID)
	}
	return ids, nil
}

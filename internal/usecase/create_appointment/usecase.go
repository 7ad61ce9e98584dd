package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/infra/events"
	catalogRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/catalog"
	customerRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/customer"
	shopRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/shop"
	staffRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/staff"
	"github.com/m04kA/SMC-SalonService/internal/service/appointments/models"
)

const (
	resultOK       = "ok"
	resultRejected = "rejected"
	resultError    = "error"
)

// UseCase use case для создания записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	shopRepo        ShopRepository
	catalogRepo     CatalogRepository
	customerRepo    CustomerRepository
	staffRepo       StaffRepository
	access          AccessChecker
	txManager       TransactionManager
	publisher       EventPublisher
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	shopRepo ShopRepository,
	catalogRepo CatalogRepository,
	customerRepo CustomerRepository,
	staffRepo StaffRepository,
	access AccessChecker,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		shopRepo:        shopRepo,
		catalogRepo:     catalogRepo,
		customerRepo:    customerRepo,
		staffRepo:       staffRepo,
		access:          access,
		txManager:       txManager,
		publisher:       publisher,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания записи.
// Проверка занятости мастера и вставка идут в сериализуемой транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*models.AppointmentResponse, error) {
	result, err := uc.execute(ctx, req)
	switch {
	case err == nil:
		uc.metrics.ObserveTransition(string(domain.ActionCreate), resultOK)
	case errors.Is(err, ErrInternal):
		uc.metrics.ObserveTransition(string(domain.ActionCreate), resultError)
	default:
		uc.metrics.ObserveTransition(string(domain.ActionCreate), resultRejected)
	}
	if err != nil {
		return nil, err
	}

	if err := uc.publisher.PublishStatusChanged(ctx, events.NewStatusChanged(result, domain.ActionCreate, "", result.CreatedAt)); err != nil {
		uc.logger.Error("CreateAppointment: failed to publish event for appointment id=%d: %v", result.ID, err)
	}

	return models.FromDomainAppointment(result), nil
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*domain.Appointment, error) {
	uc.logger.Info("CreateAppointment: user=%d role=%s, shop=%d, service=%d, date=%s, time=%s",
		req.Principal.UserID, req.Principal.Role, req.ShopID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	now := wallClock(uc.timeProvider.Now())

	// 2. Салон
	shop, err := uc.shopRepo.GetByID(ctx, req.ShopID)
	if err != nil {
		if errors.Is(err, shopRepo.ErrShopNotFound) {
			uc.logger.Warn("CreateAppointment: shop id=%d not found", req.ShopID)
			return nil, ErrShopNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get shop id=%d: %v", req.ShopID, err)
		return nil, fmt.Errorf("%w: failed to get shop: %v", ErrInternal, err)
	}

	// 3. Клиент: сам клиент или выбранный сотрудником
	customer, err := uc.resolveCustomer(ctx, req)
	if err != nil {
		return nil, err
	}

	// 4. Услуга
	service, err := uc.catalogRepo.GetServiceByID(ctx, req.ShopID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: service id=%d not found in shop=%d", req.ServiceID, req.ShopID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.IsActive {
		uc.logger.Warn("CreateAppointment: service id=%d is inactive", req.ServiceID)
		return nil, ErrServiceNotFound
	}

	// 5. Мастер
	if req.StaffID != nil {
		if err := uc.checkStaff(ctx, *req.StaffID, req.ShopID); err != nil {
			return nil, err
		}
	}

	// 6. Дата и время
	if err := validateDate(req.Date, now, shop.AdvanceBookingDays); err != nil {
		uc.logger.Warn("CreateAppointment: date validation failed: %v", err)
		return nil, err
	}
	if !shop.IsWithinHours(req.StartTime, service.DurationMinutes) {
		uc.logger.Warn("CreateAppointment: %s +%d min is outside of %s-%s",
			req.StartTime, service.DurationMinutes, shop.OpenTime, shop.CloseTime)
		return nil, ErrOutsideWorkingHours
	}
	if err := validateBookingTime(req.Date, req.StartTime, now, shop.MinBookingNoticeMinutes); err != nil {
		uc.logger.Warn("CreateAppointment: booking time validation failed: %v", err)
		return nil, err
	}

	status := domain.StatusPending
	if req.Principal.IsStaff() {
		status = domain.StatusConfirmed
	}

	appointment := &domain.Appointment{
		ShopID:          req.ShopID,
		CustomerID:      customer.ID,
		StaffID:         req.StaffID,
		ServiceID:       &service.ID,
		ServiceName:     service.Name,
		ServicePrice:    service.Price,
		ServicePoints:   service.Points,
		AppointmentDate: dateOnly(req.Date),
		StartTime:       req.StartTime,
		DurationMinutes: service.DurationMinutes,
		Status:          status,
		Notes:           req.Notes,
	}

	var result *domain.Appointment

	// 7. Проверка занятости мастера и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if appointment.StaffID != nil {
			busy, err := uc.appointmentRepo.GetActiveByStaffAndDate(txCtx, *appointment.StaffID, appointment.AppointmentDate)
			if err != nil {
				uc.logger.Error("CreateAppointment: failed to get staff appointments: %v", err)
				return fmt.Errorf("%w: failed to get staff appointments: %v", ErrInternal, err)
			}

			if other := findOverlap(appointment.StartTime, appointment.DurationMinutes, busy); other != nil {
				uc.logger.Warn("CreateAppointment: staff=%d is busy, overlaps appointment id=%d",
					*appointment.StaffID, other.ID)
				return ErrSlotNotAvailable
			}
		}

		created, err := uc.appointmentRepo.Create(txCtx, appointment)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d, status=%s", result.ID, result.Status)
	return result, nil
}

func (uc *UseCase) resolveCustomer(ctx context.Context, req *Request) (*domain.Customer, error) {
	if req.Principal.IsCustomer() {
		customer, err := uc.customerRepo.GetByUserID(ctx, req.ShopID, req.Principal.UserID)
		if err != nil {
			if errors.Is(err, customerRepo.ErrCustomerNotFound) {
				uc.logger.Warn("CreateAppointment: user=%d is not a customer of shop=%d", req.Principal.UserID, req.ShopID)
				return nil, ErrCustomerNotFound
			}
			uc.logger.Error("CreateAppointment: failed to get customer for user=%d: %v", req.Principal.UserID, err)
			return nil, fmt.Errorf("%w: failed to get customer: %v", ErrInternal, err)
		}
		if req.CustomerID != nil && *req.CustomerID != customer.ID {
			uc.logger.Warn("CreateAppointment: user=%d tried to book for customer id=%d", req.Principal.UserID, *req.CustomerID)
			return nil, ErrAccessDenied
		}
		return customer, nil
	}

	if err := uc.access.RequireStaff(ctx, req.Principal, req.ShopID); err != nil {
		uc.logger.Warn("CreateAppointment: user=%d is not staff of shop=%d", req.Principal.UserID, req.ShopID)
		return nil, err
	}

	customer, err := uc.customerRepo.GetByID(ctx, *req.CustomerID)
	if err != nil {
		if errors.Is(err, customerRepo.ErrCustomerNotFound) {
			uc.logger.Warn("CreateAppointment: customer id=%d not found", *req.CustomerID)
			return nil, ErrCustomerNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get customer id=%d: %v", *req.CustomerID, err)
		return nil, fmt.Errorf("%w: failed to get customer: %v", ErrInternal, err)
	}
	if customer.ShopID != req.ShopID {
		uc.logger.Warn("CreateAppointment: customer id=%d belongs to shop=%d", customer.ID, customer.ShopID)
		return nil, ErrCustomerNotFound
	}
	return customer, nil
}

func (uc *UseCase) checkStaff(ctx context.Context, staffID, shopID int64) error {
	member, err := uc.staffRepo.GetByID(ctx, staffID)
	if err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			uc.logger.Warn("CreateAppointment: staff id=%d not found", staffID)
			return ErrStaffNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get staff id=%d: %v", staffID, err)
		return fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}
	if !member.WorksAt(shopID) {
		uc.logger.Warn("CreateAppointment: staff id=%d does not work in shop=%d", staffID, shopID)
		return ErrStaffNotFound
	}
	return nil
}

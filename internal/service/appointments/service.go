package appointments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/infra/events"
	appointmentRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-SalonService/internal/service/appointments/models"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

const (
	resultOK       = "ok"
	resultNoop     = "noop"
	resultRejected = "rejected"
	resultError    = "error"
)

// Service сервис жизненного цикла записей
type Service struct {
	appointmentRepo AppointmentRepository
	access          AccessChecker
	txManager       TransactionManager
	publisher       EventPublisher
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	access AccessChecker,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		access:          access,
		txManager:       txManager,
		publisher:       publisher,
		metrics:         metrics,
		timeProvider:    RealTimeProvider{},
		logger:          logger,
	}
}

// GetByID получает запись. Клиент видит только свои записи, сотрудники - записи своего салона.
func (s *Service) GetByID(ctx context.Context, p domain.Principal, id int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for user=%d", id, p.UserID)

	a, err := s.load(ctx, "GetByID", id, false)
	if err != nil {
		return nil, err
	}

	if err := s.access.RequireCustomerOrStaff(ctx, p, a.CustomerID, a.ShopID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to appointment id=%d", p.UserID, id)
		return nil, err
	}

	return models.FromDomainAppointment(a), nil
}

// GetCustomerAppointments записи клиента, опционально по статусу
func (s *Service) GetCustomerAppointments(ctx context.Context, p domain.Principal, req *models.GetCustomerAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetCustomerAppointments: customer=%d, user=%d, status=%v", req.CustomerID, p.UserID, req.Status)

	customer, err := s.access.Customer(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}
	if err := s.access.RequireCustomerOrStaff(ctx, p, customer.ID, customer.ShopID); err != nil {
		return nil, err
	}

	var status *domain.AppointmentStatus
	if req.Status != nil {
		st, err := models.ToDomainStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetCustomerAppointments: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		status = &st
	}

	list, err := s.appointmentRepo.GetByCustomerID(ctx, req.CustomerID, status)
	if err != nil {
		s.logger.Error("GetCustomerAppointments: repository error for customer=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: GetCustomerAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCustomerAppointments: fetched %d appointments for customer=%d", len(list), req.CustomerID)
	return models.FromDomainAppointmentList(list), nil
}

// GetShopAppointments записи салона с фильтрацией; только для сотрудников салона
func (s *Service) GetShopAppointments(ctx context.Context, p domain.Principal, req *models.GetShopAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetShopAppointments: shop=%d, user=%d, date=%v, status=%v, staff=%v, includeInactive=%t",
		req.ShopID, p.UserID, req.Date, req.Status, req.StaffID, req.IncludeInactive)

	if err := s.access.RequireStaff(ctx, p, req.ShopID); err != nil {
		return nil, err
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetShopAppointments: invalid filter for shop=%d: %v", req.ShopID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	list, err := s.appointmentRepo.GetByShopWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetShopAppointments: repository error for shop=%d: %v", req.ShopID, err)
		return nil, fmt.Errorf("%w: GetShopAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetShopAppointments: fetched %d appointments for shop=%d", len(list), req.ShopID)
	return models.FromDomainAppointmentList(list), nil
}

// Confirm pending -> confirmed; мастер или администратор салона
func (s *Service) Confirm(ctx context.Context, p domain.Principal, id int64) (*models.AppointmentResponse, error) {
	return s.transition(ctx, p, id, domain.ActionConfirm, s.requireStaff,
		func(_ context.Context, a *domain.Appointment, now time.Time) (bool, error) {
			return true, a.Confirm(now)
		})
}

// Cancel отменяет запись. Повторная отмена - успешный no-op без записи в БД.
func (s *Service) Cancel(ctx context.Context, p domain.Principal, id int64, req *models.CancelRequest) (*models.AppointmentResponse, error) {
	reason := strings.TrimSpace(req.Reason)
	if len([]rune(reason)) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: reason is longer than %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	return s.transition(ctx, p, id, domain.ActionCancel, s.requireCustomerOrStaff,
		func(_ context.Context, a *domain.Appointment, now time.Time) (bool, error) {
			return a.Cancel(reason, now)
		})
}

// UndoCancel canceled -> confirmed с пометкой о восстановлении
func (s *Service) UndoCancel(ctx context.Context, p domain.Principal, id int64) (*models.AppointmentResponse, error) {
	return s.transition(ctx, p, id, domain.ActionUndoCancel, s.requireStaff,
		func(txCtx context.Context, a *domain.Appointment, now time.Time) (bool, error) {
			if err := a.UndoCancel(now); err != nil {
				return false, err
			}
			// Пока запись была отменена, слот мог занять другой клиент
			return true, s.ensureStaffFree(txCtx, a, a.AppointmentDate, a.StartTime)
		})
}

// CounterPropose мастер предлагает клиенту другое время
func (s *Service) CounterPropose(ctx context.Context, p domain.Principal, id int64, req *models.CounterProposeRequest) (*models.AppointmentResponse, error) {
	date, startTime, err := models.ParseSlot(req.Date, req.StartTime)
	if err != nil {
		s.logger.Warn("CounterPropose: invalid slot date=%s time=%s: %v", req.Date, req.StartTime, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return s.transition(ctx, p, id, domain.ActionCounterPropose, s.requireStaff,
		func(txCtx context.Context, a *domain.Appointment, now time.Time) (bool, error) {
			// Сначала статус: для завершённых и отменённых записей ответ - недопустимый переход
			if err := a.CounterPropose(date, startTime, now); err != nil {
				return false, err
			}
			return true, s.validateSlot(txCtx, a, date, startTime, now)
		})
}

// AcceptCounterProposal клиент принимает предложенное время, запись подтверждается
func (s *Service) AcceptCounterProposal(ctx context.Context, p domain.Principal, id int64) (*models.AppointmentResponse, error) {
	return s.transition(ctx, p, id, domain.ActionAcceptProposal, s.requireCustomer,
		func(txCtx context.Context, a *domain.Appointment, now time.Time) (bool, error) {
			if err := a.AcceptCounterProposal(now); err != nil {
				return false, err
			}
			// Предложенное время могло пройти, а часы работы салона - измениться
			if err := s.validateSlot(txCtx, a, a.AppointmentDate, a.StartTime, now); err != nil {
				return false, err
			}
			return true, s.ensureStaffFree(txCtx, a, a.AppointmentDate, a.StartTime)
		})
}

// DeclineCounterProposal клиент отклоняет предложенное время, запись остаётся pending
func (s *Service) DeclineCounterProposal(ctx context.Context, p domain.Principal, id int64) (*models.AppointmentResponse, error) {
	return s.transition(ctx, p, id, domain.ActionDeclineProposal, s.requireCustomer,
		func(_ context.Context, a *domain.Appointment, now time.Time) (bool, error) {
			return true, a.DeclineCounterProposal(now)
		})
}

// Delete физически удаляет запись; только администратор салона
func (s *Service) Delete(ctx context.Context, p domain.Principal, id int64) error {
	s.logger.Info("Delete: deleting appointment id=%d by user=%d", id, p.UserID)

	a, err := s.load(ctx, "Delete", id, false)
	if err != nil {
		return err
	}

	if err := s.access.RequireAdmin(ctx, p, a.ShopID); err != nil {
		s.logger.Warn("Delete: access denied for user=%d to appointment id=%d", p.UserID, id)
		return err
	}

	if err := s.appointmentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return ErrAppointmentNotFound
		}
		s.logger.Error("Delete: repository error for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: appointment id=%d deleted", id)
	return nil
}

type authorizeFunc func(ctx context.Context, p domain.Principal, a *domain.Appointment) error

type applyFunc func(ctx context.Context, a *domain.Appointment, now time.Time) (changed bool, err error)

// transition загружает запись с блокировкой строки, проверяет права, применяет
// переход и сохраняет результат в одной транзакции. Событие публикуется после коммита.
func (s *Service) transition(
	ctx context.Context,
	p domain.Principal,
	id int64,
	action domain.Action,
	authorize authorizeFunc,
	apply applyFunc,
) (*models.AppointmentResponse, error) {
	method := string(action)
	s.logger.Info("%s: appointment id=%d by user=%d role=%s", method, id, p.UserID, p.Role)

	var (
		result  *domain.Appointment
		from    domain.AppointmentStatus
		changed bool
	)
	now := s.timeProvider.Now()

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		a, err := s.load(txCtx, method, id, true)
		if err != nil {
			return err
		}

		if err := authorize(txCtx, p, a); err != nil {
			s.logger.Warn("%s: access denied for user=%d to appointment id=%d", method, p.UserID, id)
			return err
		}

		from = a.Status
		changed, err = apply(txCtx, a, now)
		if err != nil {
			return s.mapTransitionError(method, id, err)
		}

		result = a
		if !changed {
			return nil
		}

		if err := s.appointmentRepo.Update(txCtx, a); err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			s.logger.Error("%s: failed to update appointment id=%d: %v", method, id, err)
			return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
		}
		return nil
	})
	if err != nil {
		s.observe(action, err)
		return nil, err
	}

	if !changed {
		s.metrics.ObserveTransition(method, resultNoop)
		s.logger.Info("%s: appointment id=%d already in status %s, nothing to do", method, id, from)
		return models.FromDomainAppointment(result), nil
	}

	s.metrics.ObserveTransition(method, resultOK)
	s.logger.Info("%s: appointment id=%d %s -> %s", method, id, from, result.Status)

	if result.Status != from {
		s.publish(ctx, events.NewStatusChanged(result, action, from, now))
	}

	return models.FromDomainAppointment(result), nil
}

func (s *Service) load(ctx context.Context, method string, id int64, forUpdate bool) (*domain.Appointment, error) {
	var (
		a   *domain.Appointment
		err error
	)
	if forUpdate {
		a, err = s.appointmentRepo.GetByIDForUpdate(ctx, id)
	} else {
		a, err = s.appointmentRepo.GetByID(ctx, id)
	}
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%d not found", method, id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment id=%d: %v", method, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}
	return a, nil
}

func (s *Service) requireStaff(ctx context.Context, p domain.Principal, a *domain.Appointment) error {
	return s.access.RequireStaff(ctx, p, a.ShopID)
}

func (s *Service) requireCustomer(ctx context.Context, p domain.Principal, a *domain.Appointment) error {
	return s.access.RequireCustomer(ctx, p, a.CustomerID)
}

func (s *Service) requireCustomerOrStaff(ctx context.Context, p domain.Principal, a *domain.Appointment) error {
	return s.access.RequireCustomerOrStaff(ctx, p, a.CustomerID, a.ShopID)
}

// validateSlot проверяет предложенное время: не в прошлом и в часы работы салона
func (s *Service) validateSlot(ctx context.Context, a *domain.Appointment, date time.Time, startTime types.TimeString, now time.Time) error {
	if startTime.On(date).Before(wallClock(now)) {
		return fmt.Errorf("%w: proposed time is in the past", ErrInvalidInput)
	}

	shop, err := s.access.Shop(ctx, a.ShopID)
	if err != nil {
		return err
	}
	if !shop.IsWithinHours(startTime, a.DurationMinutes) {
		return fmt.Errorf("%w: proposed time is outside of shop hours %s-%s", ErrInvalidInput, shop.OpenTime, shop.CloseTime)
	}

	return nil
}

// ensureStaffFree проверяет, что у мастера нет других активных записей на этот интервал
func (s *Service) ensureStaffFree(ctx context.Context, a *domain.Appointment, date time.Time, startTime types.TimeString) error {
	if a.StaffID == nil {
		return nil
	}

	busy, err := s.appointmentRepo.GetActiveByStaffAndDate(ctx, *a.StaffID, date)
	if err != nil {
		s.logger.Error("ensureStaffFree: repository error for staff=%d: %v", *a.StaffID, err)
		return fmt.Errorf("%w: ensureStaffFree - repository error: %v", ErrInternal, err)
	}

	for _, other := range busy {
		if other.ID == a.ID {
			continue
		}
		if other.Overlaps(startTime, a.DurationMinutes) {
			s.logger.Warn("ensureStaffFree: staff=%d is busy at %s %s (appointment id=%d)",
				*a.StaffID, date.Format(domain.DateFormat), startTime, other.ID)
			return ErrSlotNotAvailable
		}
	}

	return nil
}

func (s *Service) mapTransitionError(method string, id int64, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidTransition):
		s.logger.Warn("%s: rejected for appointment id=%d: %v", method, id, err)
		return fmt.Errorf("%w: %v", ErrInvalidTransition, err)
	case errors.Is(err, domain.ErrNoCounterProposal):
		s.logger.Warn("%s: appointment id=%d has no counter proposal", method, id)
		return ErrNoCounterProposal
	default:
		return err
	}
}

func (s *Service) observe(action domain.Action, err error) {
	switch {
	case errors.Is(err, ErrInternal):
		s.metrics.ObserveTransition(string(action), resultError)
	default:
		s.metrics.ObserveTransition(string(action), resultRejected)
	}
}

func (s *Service) publish(ctx context.Context, event events.StatusChanged) {
	if err := s.publisher.PublishStatusChanged(ctx, event); err != nil {
		s.logger.Error("publish: failed to publish status change for appointment id=%d: %v", event.AppointmentID, err)
	}
}

// wallClock переносит текущее время в UTC без сдвига: даты и время записей хранятся без часового пояса
func wallClock(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), now.Minute(), now.Second(), 0, time.UTC)
}

package complete_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/infra/events"
	appointmentRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/appointment"
	operationRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/operation"
	appointmentModels "github.com/m04kA/SMC-SalonService/internal/service/appointments/models"
	customerModels "github.com/m04kA/SMC-SalonService/internal/service/customers/models"
)

const (
	resultOK       = "ok"
	resultRejected = "rejected"
	resultError    = "error"
)

// UseCase use case завершения визита: смена статуса и запись в историю клиента
type UseCase struct {
	appointmentRepo AppointmentRepository
	operationRepo   OperationRepository
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
	operationRepo OperationRepository,
	access AccessChecker,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		operationRepo:   operationRepo,
		access:          access,
		txManager:       txManager,
		publisher:       publisher,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute завершает запись. Статус и операция истории пишутся в одной транзакции,
// строка записи блокируется на время транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CompleteAppointment: appointment id=%d by user=%d role=%s",
		req.AppointmentID, req.Principal.UserID, req.Principal.Role)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CompleteAppointment: validation failed: %v", err)
		uc.metrics.ObserveTransition(string(domain.ActionComplete), resultRejected)
		return nil, err
	}

	now := uc.timeProvider.Now()

	var (
		appointment *domain.Appointment
		operation   *domain.CustomerOperation
		from        domain.AppointmentStatus
	)

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		a, err := uc.appointmentRepo.GetByIDForUpdate(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("CompleteAppointment: appointment id=%d not found", req.AppointmentID)
				return ErrAppointmentNotFound
			}
			uc.logger.Error("CompleteAppointment: failed to get appointment id=%d: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}

		if err := uc.access.RequireStaff(txCtx, req.Principal, a.ShopID); err != nil {
			uc.logger.Warn("CompleteAppointment: access denied for user=%d to appointment id=%d", req.Principal.UserID, a.ID)
			return err
		}

		from = a.Status
		if err := a.Complete(now); err != nil {
			uc.logger.Warn("CompleteAppointment: rejected for appointment id=%d: %v", a.ID, err)
			return fmt.Errorf("%w: %v", ErrInvalidTransition, err)
		}

		if err := uc.appointmentRepo.Update(txCtx, a); err != nil {
			uc.logger.Error("CompleteAppointment: failed to update appointment id=%d: %v", a.ID, err)
			return fmt.Errorf("%w: failed to update appointment: %v", ErrInternal, err)
		}

		op, err := uc.operationRepo.Create(txCtx, domain.NewOperationFromAppointment(a, req.Amount, req.Points, req.Notes, now))
		if err != nil {
			if errors.Is(err, operationRepo.ErrOperationExists) {
				uc.logger.Warn("CompleteAppointment: operation for appointment id=%d already exists", a.ID)
				return ErrAlreadyRecorded
			}
			uc.logger.Error("CompleteAppointment: failed to create operation for appointment id=%d: %v", a.ID, err)
			return fmt.Errorf("%w: failed to create operation: %v", ErrInternal, err)
		}

		appointment = a
		operation = op
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			uc.metrics.ObserveTransition(string(domain.ActionComplete), resultError)
		} else {
			uc.metrics.ObserveTransition(string(domain.ActionComplete), resultRejected)
		}
		return nil, err
	}

	uc.metrics.ObserveTransition(string(domain.ActionComplete), resultOK)
	uc.logger.Info("CompleteAppointment: appointment id=%d %s -> %s, operation id=%d, amount=%.2f",
		appointment.ID, from, appointment.Status, operation.ID, operation.Amount)

	if err := uc.publisher.PublishStatusChanged(ctx, events.NewStatusChanged(appointment, domain.ActionComplete, from, now)); err != nil {
		uc.logger.Error("CompleteAppointment: failed to publish event for appointment id=%d: %v", appointment.ID, err)
	}

	return &Response{
		Appointment: appointmentModels.FromDomainAppointment(appointment),
		Operation:   customerModels.FromDomainOperation(operation),
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.AppointmentID <= 0 {
		return fmt.Errorf("%w: appointmentID must be positive", ErrInvalidInput)
	}
	if req.Amount != nil && *req.Amount < 0 {
		return fmt.Errorf("%w: amount must be non-negative", ErrInvalidInput)
	}
	if req.Points != nil && *req.Points < 0 {
		return fmt.Errorf("%w: points must be non-negative", ErrInvalidInput)
	}
	if req.Notes != nil && len([]rune(*req.Notes)) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes are longer than %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}
	return nil
}

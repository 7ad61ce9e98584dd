package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// AppointmentStatus статус записи клиента
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCanceled  AppointmentStatus = "canceled"
	StatusCompleted AppointmentStatus = "completed"
)

// Action действие над записью, меняющее её состояние
type Action string

const (
	ActionCreate          Action = "create"
	ActionConfirm         Action = "confirm"
	ActionComplete        Action = "complete"
	ActionCancel          Action = "cancel"
	ActionUndoCancel      Action = "undo_cancel"
	ActionCounterPropose  Action = "counter_propose"
	ActionAcceptProposal  Action = "accept_proposal"
	ActionDeclineProposal Action = "decline_proposal"
)

// CounterProposal альтернативное время, предложенное мастером для записи в статусе pending
type CounterProposal struct {
	Date       time.Time
	StartTime  types.TimeString
	ProposedAt time.Time
}

// Appointment запись клиента на услугу
type Appointment struct {
	ID         int64
	ShopID     int64
	CustomerID int64
	StaffID    *int64 // мастер может быть не назначен
	ServiceID  *int64

	// Денормализованные данные услуги на момент записи
	ServiceName   string
	ServicePrice  float64
	ServicePoints int

	AppointmentDate time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          AppointmentStatus
	Notes           *string

	Proposal *CounterProposal

	// Reinstated выставляется при отмене отмены (canceled -> confirmed)
	Reinstated   bool
	ReinstatedAt *time.Time

	CancellationReason *string
	CancelledAt        *time.Time
	CompletedAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive возвращает true, если запись ещё ожидает визита
func (a *Appointment) IsActive() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// IsTerminal возвращает true для завершённых и отменённых записей
func (a *Appointment) IsTerminal() bool {
	return a.Status == StatusCompleted || a.Status == StatusCanceled
}

// HasProposal возвращает true, если есть непринятое встречное предложение
func (a *Appointment) HasProposal() bool {
	return a.Proposal != nil
}

// EndTime время окончания визита
func (a *Appointment) EndTime() (types.TimeString, error) {
	return a.StartTime.AddMinutes(a.DurationMinutes)
}

// Overlaps проверяет пересечение с интервалом [start, start+duration).
// Граничные касания пересечением не считаются.
func (a *Appointment) Overlaps(start types.TimeString, durationMinutes int) bool {
	end, err := start.AddMinutes(durationMinutes)
	if err != nil {
		return false
	}
	ownEnd, err := a.EndTime()
	if err != nil {
		return false
	}
	return a.StartTime.IsBefore(end) && ownEnd.IsAfter(start)
}

// Confirm pending -> confirmed
func (a *Appointment) Confirm(now time.Time) error {
	if a.Status != StatusPending {
		return a.transitionError(ActionConfirm)
	}
	a.Status = StatusConfirmed
	a.UpdatedAt = now
	return nil
}

// Complete confirmed -> completed
func (a *Appointment) Complete(now time.Time) error {
	if a.Status != StatusConfirmed {
		return a.transitionError(ActionComplete)
	}
	a.Status = StatusCompleted
	a.CompletedAt = &now
	a.UpdatedAt = now
	return nil
}

// Cancel pending|confirmed -> canceled. Повторная отмена ничего не меняет
// и возвращает changed=false.
func (a *Appointment) Cancel(reason string, now time.Time) (changed bool, err error) {
	if a.Status == StatusCanceled {
		return false, nil
	}
	if !a.IsActive() {
		return false, a.transitionError(ActionCancel)
	}

	a.Status = StatusCanceled
	a.CancelledAt = &now
	if reason != "" {
		a.CancellationReason = &reason
	} else {
		a.CancellationReason = nil
	}
	a.Proposal = nil
	a.UpdatedAt = now
	return true, nil
}

// UndoCancel canceled -> confirmed с пометкой Reinstated
func (a *Appointment) UndoCancel(now time.Time) error {
	if a.Status != StatusCanceled {
		return a.transitionError(ActionUndoCancel)
	}
	a.Status = StatusConfirmed
	a.Reinstated = true
	a.ReinstatedAt = &now
	a.CancellationReason = nil
	a.CancelledAt = nil
	a.UpdatedAt = now
	return nil
}

// CounterPropose сохраняет альтернативный слот, статус остаётся pending.
// Новое предложение заменяет предыдущее.
func (a *Appointment) CounterPropose(date time.Time, startTime types.TimeString, now time.Time) error {
	if a.Status != StatusPending {
		return a.transitionError(ActionCounterPropose)
	}
	a.Proposal = &CounterProposal{
		Date:       date,
		StartTime:  startTime,
		ProposedAt: now,
	}
	a.UpdatedAt = now
	return nil
}

// AcceptCounterProposal переносит запись на предложенный слот и подтверждает её
func (a *Appointment) AcceptCounterProposal(now time.Time) error {
	if a.Status != StatusPending {
		return a.transitionError(ActionAcceptProposal)
	}
	if a.Proposal == nil {
		return ErrNoCounterProposal
	}
	a.AppointmentDate = a.Proposal.Date
	a.StartTime = a.Proposal.StartTime
	a.Proposal = nil
	a.Status = StatusConfirmed
	a.UpdatedAt = now
	return nil
}

// DeclineCounterProposal отклоняет предложение, запись остаётся pending
func (a *Appointment) DeclineCounterProposal(now time.Time) error {
	if a.Status != StatusPending {
		return a.transitionError(ActionDeclineProposal)
	}
	if a.Proposal == nil {
		return ErrNoCounterProposal
	}
	a.Proposal = nil
	a.UpdatedAt = now
	return nil
}

func (a *Appointment) transitionError(action Action) error {
	return fmt.Errorf("%w: cannot %s appointment in status %s", ErrInvalidTransition, action, a.Status)
}

// ShopAppointmentsFilter фильтр записей салона
type ShopAppointmentsFilter struct {
	ShopID          int64              // Обязательный параметр
	StaffID         *int64             // Фильтр по мастеру (опционально)
	StartDate       *time.Time         // Начало периода (опционально)
	EndDate         *time.Time         // Конец периода (опционально)
	Status          *AppointmentStatus // Фильтр по статусу (опционально)
	IncludeInactive bool               // Включать отменённые и завершённые
}

package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")

	// ErrInvalidDate возвращается при некорректной дате
	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")
)

// Request модели

// CancelRequest запрос на отмену записи
type CancelRequest struct {
	Reason string `json:"reason"`
}

// CounterProposeRequest встречное предложение времени
type CounterProposeRequest struct {
	Date      string `json:"date"`      // "2025-03-02"
	StartTime string `json:"startTime"` // "14:30"
}

// GetCustomerAppointmentsRequest запрос записей клиента
type GetCustomerAppointmentsRequest struct {
	CustomerID int64
	Status     *string
}

// GetShopAppointmentsRequest запрос записей салона
type GetShopAppointmentsRequest struct {
	ShopID          int64
	StaffID         *int64
	Date            *string // одна дата, "2025-03-01"
	Status          *string
	IncludeInactive bool
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetShopAppointmentsRequest) ToDomainFilter() (domain.ShopAppointmentsFilter, error) {
	filter := domain.ShopAppointmentsFilter{
		ShopID:          r.ShopID,
		StaffID:         r.StaffID,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Date != nil {
		date, err := time.Parse(domain.DateFormat, *r.Date)
		if err != nil {
			return filter, ErrInvalidDate
		}
		filter.StartDate = &date
		filter.EndDate = &date
	}

	if r.Status != nil {
		status, err := ToDomainStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// CounterProposalResponse предложенное мастером время
type CounterProposalResponse struct {
	Date       string    `json:"date"`
	StartTime  string    `json:"startTime"`
	ProposedAt time.Time `json:"proposedAt"`
}

// AppointmentResponse запись клиента
type AppointmentResponse struct {
	ID              int64   `json:"id"`
	ShopID          int64   `json:"shopId"`
	CustomerID      int64   `json:"customerId"`
	StaffID         *int64  `json:"staffId,omitempty"`
	ServiceID       *int64  `json:"serviceId,omitempty"`
	ServiceName     string  `json:"serviceName"`
	ServicePrice    float64 `json:"servicePrice"`
	ServicePoints   int     `json:"servicePoints"`
	AppointmentDate string  `json:"appointmentDate"` // "2025-03-01"
	StartTime       string  `json:"startTime"`       // "10:00"
	EndTime         string  `json:"endTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	Notes           *string `json:"notes,omitempty"`

	CounterProposal *CounterProposalResponse `json:"counterProposal,omitempty"`

	Reinstated   bool       `json:"reinstated"`
	ReinstatedAt *time.Time `json:"reinstatedAt,omitempty"`

	CancellationReason *string    `json:"cancellationReason,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`
	CompletedAt        *time.Time `json:"completedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse список записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	resp := &AppointmentResponse{
		ID:                 a.ID,
		ShopID:             a.ShopID,
		CustomerID:         a.CustomerID,
		StaffID:            a.StaffID,
		ServiceID:          a.ServiceID,
		ServiceName:        a.ServiceName,
		ServicePrice:       a.ServicePrice,
		ServicePoints:      a.ServicePoints,
		AppointmentDate:    a.AppointmentDate.Format(domain.DateFormat),
		StartTime:          a.StartTime.String(),
		DurationMinutes:    a.DurationMinutes,
		Status:             string(a.Status),
		Notes:              a.Notes,
		Reinstated:         a.Reinstated,
		ReinstatedAt:       a.ReinstatedAt,
		CancellationReason: a.CancellationReason,
		CancelledAt:        a.CancelledAt,
		CompletedAt:        a.CompletedAt,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}

	if end, err := a.EndTime(); err == nil {
		resp.EndTime = end.String()
	}

	if a.Proposal != nil {
		resp.CounterProposal = &CounterProposalResponse{
			Date:       a.Proposal.Date.Format(domain.DateFormat),
			StartTime:  a.Proposal.StartTime.String(),
			ProposedAt: a.Proposal.ProposedAt,
		}
	}

	return resp
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(appointments)),
	}
	for _, a := range appointments {
		if item := FromDomainAppointment(a); item != nil {
			resp.Appointments = append(resp.Appointments, *item)
		}
	}
	return resp
}

// ToDomainStatus конвертирует строку в domain.AppointmentStatus с валидацией
func ToDomainStatus(status string) (domain.AppointmentStatus, error) {
	s, ok := domain.ParseAppointmentStatus(status)
	if !ok {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// ParseSlot разбирает дату и время предложенного слота
func ParseSlot(date, startTime string) (time.Time, types.TimeString, error) {
	d, err := time.Parse(domain.DateFormat, date)
	if err != nil {
		return time.Time{}, "", ErrInvalidDate
	}
	t, err := types.NewTimeStringFromString(startTime)
	if err != nil {
		return time.Time{}, "", err
	}
	return d, t, nil
}

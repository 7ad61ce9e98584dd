package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	createAppointment "github.com/m04kA/SMC-SalonService/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	ShopID     int64   `json:"shopId" validate:"required,gt=0"`
	CustomerID *int64  `json:"customerId,omitempty" validate:"omitempty,gt=0"`
	ServiceID  int64   `json:"serviceId" validate:"required,gt=0"`
	StaffID    *int64  `json:"staffId,omitempty" validate:"omitempty,gt=0"`
	Date       string  `json:"date" validate:"required,datetime=2006-01-02"` // "2025-03-01"
	StartTime  string  `json:"startTime" validate:"required"`                 // "10:00"
	Notes      *string `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(p domain.Principal) (*createAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		Principal:  p,
		ShopID:     r.ShopID,
		CustomerID: r.CustomerID,
		ServiceID:  r.ServiceID,
		StaffID:    r.StaffID,
		Date:       date,
		StartTime:  startTime,
		Notes:      r.Notes,
	}, nil
}

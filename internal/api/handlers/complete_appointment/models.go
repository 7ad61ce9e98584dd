package complete_appointment

import (
	"github.com/m04kA/SMC-SalonService/internal/domain"
	completeAppointment "github.com/m04kA/SMC-SalonService/internal/usecase/complete_appointment"
)

// CompleteAppointmentRequest HTTP request model. Пустое тело - сумма и баллы из записи.
type CompleteAppointmentRequest struct {
	Amount *float64 `json:"amount,omitempty" validate:"omitempty,gte=0"`
	Points *int     `json:"points,omitempty" validate:"omitempty,gte=0"`
	Notes  *string  `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CompleteAppointmentRequest) ToUseCaseRequest(p domain.Principal, appointmentID int64) *completeAppointment.Request {
	return &completeAppointment.Request{
		Principal:     p,
		AppointmentID: appointmentID,
		Amount:        r.Amount,
		Points:        r.Points,
		Notes:         r.Notes,
	}
}

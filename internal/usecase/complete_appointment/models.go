package complete_appointment

import (
	"github.com/m04kA/SMC-SalonService/internal/domain"
	appointmentModels "github.com/m04kA/SMC-SalonService/internal/service/appointments/models"
	customerModels "github.com/m04kA/SMC-SalonService/internal/service/customers/models"
)

// Request модель запроса на завершение записи
type Request struct {
	Principal     domain.Principal
	AppointmentID int64
	Amount        *float64 // nil - цена услуги на момент записи
	Points        *int     // nil - баллы услуги на момент записи
	Notes         *string  // nil - заметки записи
}

// Response завершённая запись и созданная операция истории
type Response struct {
	Appointment *appointmentModels.AppointmentResponse `json:"appointment"`
	Operation   *customerModels.OperationResponse      `json:"operation"`
}

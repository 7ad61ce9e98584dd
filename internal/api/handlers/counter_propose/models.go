package counter_propose

import (
	"github.com/m04kA/SMC-SalonService/internal/service/appointments/models"
)

// CounterProposalRequest HTTP request model
type CounterProposalRequest struct {
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime string `json:"startTime" validate:"required"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CounterProposalRequest) ToServiceRequest() *models.CounterProposeRequest {
	return &models.CounterProposeRequest{
		Date:      r.Date,
		StartTime: r.StartTime,
	}
}

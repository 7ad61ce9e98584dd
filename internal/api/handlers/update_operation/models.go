package update_operation

import (
	"github.com/m04kA/SMC-SalonService/internal/service/customers/models"
)

// UpdateOperationRequest HTTP request model. notes: null очищает заметки.
type UpdateOperationRequest struct {
	Notes *string `json:"notes"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateOperationRequest) ToServiceRequest() *models.UpdateOperationRequest {
	return &models.UpdateOperationRequest{Notes: r.Notes}
}

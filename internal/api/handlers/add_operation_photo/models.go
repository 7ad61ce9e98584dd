package add_operation_photo

import (
	"github.com/m04kA/SMC-SalonService/internal/service/customers/models"
)

// AddPhotoRequest HTTP request model
type AddPhotoRequest struct {
	StorageKey string  `json:"storageKey" validate:"required,max=512"`
	Caption    *string `json:"caption,omitempty" validate:"omitempty,max=255"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *AddPhotoRequest) ToServiceRequest() *models.AddPhotoRequest {
	return &models.AddPhotoRequest{
		StorageKey: r.StorageKey,
		Caption:    r.Caption,
	}
}

package create_customer

import (
	"github.com/m04kA/SMC-SalonService/internal/service/customers/models"
)

// CreateCustomerRequest HTTP request model
type CreateCustomerRequest struct {
	UserID   *int64  `json:"userId,omitempty" validate:"omitempty,gt=0"`
	FullName string  `json:"fullName" validate:"required,max=255"`
	Phone    string  `json:"phone" validate:"required,max=32"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Notes    *string `json:"notes,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CreateCustomerRequest) ToServiceRequest() *models.CreateCustomerRequest {
	return &models.CreateCustomerRequest{
		UserID:   r.UserID,
		FullName: r.FullName,
		Phone:    r.Phone,
		Email:    r.Email,
		Notes:    r.Notes,
	}
}

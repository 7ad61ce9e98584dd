package update_service

import (
	"github.com/m04kA/SMC-SalonService/internal/service/catalog/models"
)

// ServiceRequest HTTP request model
type ServiceRequest struct {
	CategoryID      *int64  `json:"categoryId,omitempty" validate:"omitempty,gt=0"`
	Name            string  `json:"name" validate:"required,max=255"`
	Price           float64 `json:"price" validate:"gte=0"`
	DurationMinutes int     `json:"durationMinutes" validate:"required,gt=0"`
	Points          int     `json:"points" validate:"gte=0"`
	IsActive        *bool   `json:"isActive,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *ServiceRequest) ToServiceRequest() *models.ServiceRequest {
	return &models.ServiceRequest{
		CategoryID:      r.CategoryID,
		Name:            r.Name,
		Price:           r.Price,
		DurationMinutes: r.DurationMinutes,
		Points:          r.Points,
		IsActive:        r.IsActive,
	}
}

package create_staff

import (
	"github.com/m04kA/SMC-SalonService/internal/service/staff/models"
)

// StaffRequest HTTP request model
type StaffRequest struct {
	UserID            int64   `json:"userId"`
	FullName          string  `json:"fullName" validate:"required,max=255"`
	Phone             *string `json:"phone,omitempty" validate:"omitempty,max=32"`
	Position          *string `json:"position,omitempty" validate:"omitempty,max=128"`
	PayBasis          string  `json:"payBasis" validate:"required,oneof=salary hourly commission"`
	BaseRate          float64 `json:"baseRate" validate:"gte=0"`
	CommissionPercent float64 `json:"commissionPercent" validate:"gte=0,lte=100"`
	IsActive          *bool   `json:"isActive,omitempty"`
	HiredAt           *string `json:"hiredAt,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *StaffRequest) ToServiceRequest() *models.StaffRequest {
	return &models.StaffRequest{
		UserID:            r.UserID,
		FullName:          r.FullName,
		Phone:             r.Phone,
		Position:          r.Position,
		PayBasis:          r.PayBasis,
		BaseRate:          r.BaseRate,
		CommissionPercent: r.CommissionPercent,
		IsActive:          r.IsActive,
		HiredAt:           r.HiredAt,
	}
}

package models

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// StaffRequest создание или изменение профиля сотрудника
type StaffRequest struct {
	UserID            int64   `json:"userId"` // учитывается только при создании
	FullName          string  `json:"fullName"`
	Phone             *string `json:"phone,omitempty"`
	Position          *string `json:"position,omitempty"`
	PayBasis          string  `json:"payBasis"`
	BaseRate          float64 `json:"baseRate"`
	CommissionPercent float64 `json:"commissionPercent"`
	IsActive          *bool   `json:"isActive,omitempty"`
	HiredAt           *string `json:"hiredAt,omitempty"` // YYYY-MM-DD
}

// StaffResponse профиль сотрудника
type StaffResponse struct {
	ID                int64     `json:"id"`
	ShopID            *int64    `json:"shopId,omitempty"`
	UserID            int64     `json:"userId"`
	FullName          string    `json:"fullName"`
	Phone             *string   `json:"phone,omitempty"`
	Position          *string   `json:"position,omitempty"`
	PayBasis          string    `json:"payBasis"`
	BaseRate          float64   `json:"baseRate"`
	CommissionPercent float64   `json:"commissionPercent"`
	IsActive          bool      `json:"isActive"`
	HiredAt           *string   `json:"hiredAt,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// StaffListResponse список сотрудников
type StaffListResponse struct {
	Staff []StaffResponse `json:"staff"`
}

// FromDomainStaff конвертирует domain модель в DTO
func FromDomainStaff(s *domain.Staff) *StaffResponse {
	if s == nil {
		return nil
	}

	resp := &StaffResponse{
		ID:                s.ID,
		ShopID:            s.ShopID,
		UserID:            s.UserID,
		FullName:          s.FullName,
		Phone:             s.Phone,
		Position:          s.Position,
		PayBasis:          string(s.PayBasis),
		BaseRate:          s.BaseRate,
		CommissionPercent: s.CommissionPercent,
		IsActive:          s.IsActive,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
	if s.HiredAt != nil {
		hired := s.HiredAt.Format(domain.DateFormat)
		resp.HiredAt = &hired
	}
	return resp
}

// FromDomainStaffList конвертирует список сотрудников
func FromDomainStaffList(list []*domain.Staff) *StaffListResponse {
	resp := &StaffListResponse{Staff: make([]StaffResponse, 0, len(list))}
	for _, s := range list {
		resp.Staff = append(resp.Staff, *FromDomainStaff(s))
	}
	return resp
}

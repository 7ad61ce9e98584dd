package update_shop_settings

import (
	"github.com/m04kA/SMC-SalonService/internal/service/shops/models"
)

// UpdateSettingsRequest HTTP request model
type UpdateSettingsRequest struct {
	OpenTime                *string `json:"openTime,omitempty" validate:"omitempty,datetime=15:04"`
	CloseTime               *string `json:"closeTime,omitempty" validate:"omitempty,datetime=15:04"`
	SlotStepMinutes         *int    `json:"slotStepMinutes,omitempty" validate:"omitempty,min=1,max=480"`
	MinBookingNoticeMinutes *int    `json:"minBookingNoticeMinutes,omitempty" validate:"omitempty,min=0,max=10080"`
	AdvanceBookingDays      *int    `json:"advanceBookingDays,omitempty" validate:"omitempty,min=0,max=365"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateSettingsRequest) ToServiceRequest() *models.UpdateSettingsRequest {
	return &models.UpdateSettingsRequest{
		OpenTime:                r.OpenTime,
		CloseTime:               r.CloseTime,
		SlotStepMinutes:         r.SlotStepMinutes,
		MinBookingNoticeMinutes: r.MinBookingNoticeMinutes,
		AdvanceBookingDays:      r.AdvanceBookingDays,
	}
}

package models

import (
	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// UpdateSettingsRequest изменение настроек салона.
// Все поля опциональны - обновляются только переданные значения
type UpdateSettingsRequest struct {
	OpenTime                *string `json:"openTime,omitempty"`  // HH:MM
	CloseTime               *string `json:"closeTime,omitempty"` // HH:MM
	SlotStepMinutes         *int    `json:"slotStepMinutes,omitempty"`
	MinBookingNoticeMinutes *int    `json:"minBookingNoticeMinutes,omitempty"`
	AdvanceBookingDays      *int    `json:"advanceBookingDays,omitempty"` // 0 = без ограничений
}

// SettingsResponse часы работы и правила записи салона
type SettingsResponse struct {
	ShopID                  int64  `json:"shopId"`
	Name                    string `json:"name"`
	OpenTime                string `json:"openTime"`
	CloseTime               string `json:"closeTime"`
	SlotStepMinutes         int    `json:"slotStepMinutes"`
	MinBookingNoticeMinutes int    `json:"minBookingNoticeMinutes"`
	AdvanceBookingDays      int    `json:"advanceBookingDays"`
}

// FromDomainShop конвертирует domain модель в DTO
func FromDomainShop(s *domain.Shop) *SettingsResponse {
	if s == nil {
		return nil
	}

	return &SettingsResponse{
		ShopID:                  s.ID,
		Name:                    s.Name,
		OpenTime:                s.OpenTime.String(),
		CloseTime:               s.CloseTime.String(),
		SlotStepMinutes:         s.SlotStepMinutes,
		MinBookingNoticeMinutes: s.MinBookingNoticeMinutes,
		AdvanceBookingDays:      s.AdvanceBookingDays,
	}
}

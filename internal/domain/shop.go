package domain

import "github.com/m04kA/SMC-SalonService/pkg/types"

// Shop салон (арендатор): владеет мастерами, услугами и записями
type Shop struct {
	ID                      int64
	Name                    string
	OwnerUserID             int64
	OpenTime                types.TimeString
	CloseTime               types.TimeString
	SlotStepMinutes         int
	MinBookingNoticeMinutes int
	AdvanceBookingDays      int // 0 = без ограничений
}

// IsOwner проверяет, что пользователь - владелец салона
func (s *Shop) IsOwner(userID int64) bool {
	return s.OwnerUserID == userID
}

// HasAdvanceBookingLimit есть ли ограничение на запись заранее
func (s *Shop) HasAdvanceBookingLimit() bool {
	return s.AdvanceBookingDays > 0
}

// IsWithinHours проверяет, что визит [start, start+duration) укладывается в часы работы
func (s *Shop) IsWithinHours(start types.TimeString, durationMinutes int) bool {
	end, err := start.AddMinutes(durationMinutes)
	if err != nil {
		return false
	}
	return !start.IsBefore(s.OpenTime) && !end.IsAfter(s.CloseTime)
}

package domain

import "time"

// CustomerOperation история оказанной услуги; создаётся ровно один раз при завершении записи
type CustomerOperation struct {
	ID            int64
	AppointmentID int64
	ShopID        int64
	CustomerID    int64
	StaffID       *int64
	ServiceID     *int64
	ServiceName   string
	Amount        float64
	Points        int
	Notes         *string
	PerformedAt   time.Time
	UpdatedAt     time.Time

	Photos []OperationPhoto
}

// OperationPhoto ссылка на фото работы во внешнем хранилище
type OperationPhoto struct {
	ID          string // uuid
	OperationID int64
	StorageKey  string
	Caption     *string
	CreatedAt   time.Time
}

// NewOperationFromAppointment формирует запись истории по завершённой записи.
// amount/points == nil - берутся из денормализованных данных услуги.
func NewOperationFromAppointment(a *Appointment, amount *float64, points *int, notes *string, now time.Time) *CustomerOperation {
	op := &CustomerOperation{
		AppointmentID: a.ID,
		ShopID:        a.ShopID,
		CustomerID:    a.CustomerID,
		StaffID:       a.StaffID,
		ServiceID:     a.ServiceID,
		ServiceName:   a.ServiceName,
		Amount:        a.ServicePrice,
		Points:        a.ServicePoints,
		Notes:         notes,
		PerformedAt:   now,
		UpdatedAt:     now,
	}
	if amount != nil {
		op.Amount = *amount
	}
	if points != nil {
		op.Points = *points
	}
	if op.Notes == nil {
		op.Notes = a.Notes
	}
	return op
}

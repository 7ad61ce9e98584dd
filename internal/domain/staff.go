package domain

import "time"

// PayBasis схема оплаты мастера
type PayBasis string

const (
	PayBasisSalary     PayBasis = "salary"
	PayBasisHourly     PayBasis = "hourly"
	PayBasisCommission PayBasis = "commission"
)

// IsValid проверяет схему оплаты
func (p PayBasis) IsValid() bool {
	return p == PayBasisSalary || p == PayBasisHourly || p == PayBasisCommission
}

// Staff профиль сотрудника салона
type Staff struct {
	ID                int64
	ShopID            *int64 // сотрудник может быть не привязан к салону
	UserID            int64
	FullName          string
	Phone             *string
	Position          *string
	PayBasis          PayBasis
	BaseRate          float64
	CommissionPercent float64
	IsActive          bool
	HiredAt           *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// WorksAt проверяет, что сотрудник активен и работает в салоне
func (s *Staff) WorksAt(shopID int64) bool {
	return s.IsActive && s.ShopID != nil && *s.ShopID == shopID
}

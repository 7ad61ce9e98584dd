package domain

import "time"

// ReportPeriod период отчёта, обе даты включительно
type ReportPeriod struct {
	From time.Time
	To   time.Time
}

// Days количество дней в периоде
func (p ReportPeriod) Days() int {
	return int(p.To.Sub(p.From).Hours()/24) + 1
}

// StatusCount количество записей в статусе
type StatusCount struct {
	Status AppointmentStatus
	Count  int
}

// RevenueTotals выручка и баллы за период
type RevenueTotals struct {
	Operations   int
	Revenue      float64
	PointsIssued int
}

// ServiceRevenue выручка по услуге
type ServiceRevenue struct {
	ServiceID   *int64
	ServiceName string
	Operations  int
	Revenue     float64
}

// StaffRevenue выручка по мастеру
type StaffRevenue struct {
	StaffID           int64
	FullName          string
	CommissionPercent float64
	Operations        int
	Revenue           float64
}

// Commission комиссия мастера с выручки
func (s StaffRevenue) Commission() float64 {
	return s.Revenue * s.CommissionPercent / 100
}

// ShopReport сводный отчёт салона за период
type ShopReport struct {
	ShopID      int64
	Period      ReportPeriod
	Statuses    []StatusCount
	Totals      RevenueTotals
	TopServices []ServiceRevenue
	Staff       []StaffRevenue
}

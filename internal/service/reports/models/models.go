package models

import (
	"math"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// GetReportRequest запрос отчёта; пустые даты - последние 30 дней
type GetReportRequest struct {
	ShopID int64
	From   *string // YYYY-MM-DD
	To     *string // YYYY-MM-DD
}

// StatusCountResponse количество записей в статусе
type StatusCountResponse struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// ServiceRevenueResponse выручка по услуге
type ServiceRevenueResponse struct {
	ServiceID   *int64  `json:"serviceId,omitempty"`
	ServiceName string  `json:"serviceName"`
	Operations  int     `json:"operations"`
	Revenue     float64 `json:"revenue"`
}

// StaffRevenueResponse выручка и комиссия мастера
type StaffRevenueResponse struct {
	StaffID           int64   `json:"staffId"`
	FullName          string  `json:"fullName"`
	Operations        int     `json:"operations"`
	Revenue           float64 `json:"revenue"`
	CommissionPercent float64 `json:"commissionPercent"`
	Commission        float64 `json:"commission"`
}

// ReportResponse сводный отчёт салона
type ReportResponse struct {
	ShopID       int64                    `json:"shopId"`
	From         string                   `json:"from"`
	To           string                   `json:"to"`
	Appointments []StatusCountResponse    `json:"appointments"`
	Operations   int                      `json:"operations"`
	Revenue      float64                  `json:"revenue"`
	PointsIssued int                      `json:"pointsIssued"`
	TopServices  []ServiceRevenueResponse `json:"topServices"`
	Staff        []StaffRevenueResponse   `json:"staff"`
}

// FromDomainReport конвертирует отчёт. Статусы без записей выводятся с нулём.
func FromDomainReport(r *domain.ShopReport) *ReportResponse {
	counts := make(map[domain.AppointmentStatus]int, len(r.Statuses))
	for _, sc := range r.Statuses {
		counts[sc.Status] = sc.Count
	}

	resp := &ReportResponse{
		ShopID:       r.ShopID,
		From:         r.Period.From.Format(domain.DateFormat),
		To:           r.Period.To.Format(domain.DateFormat),
		Appointments: make([]StatusCountResponse, 0, len(domain.AllStatuses)),
		Operations:   r.Totals.Operations,
		Revenue:      round2(r.Totals.Revenue),
		PointsIssued: r.Totals.PointsIssued,
		TopServices:  make([]ServiceRevenueResponse, 0, len(r.TopServices)),
		Staff:        make([]StaffRevenueResponse, 0, len(r.Staff)),
	}

	for _, st := range domain.AllStatuses {
		resp.Appointments = append(resp.Appointments, StatusCountResponse{Status: string(st), Count: counts[st]})
	}
	for _, sv := range r.TopServices {
		resp.TopServices = append(resp.TopServices, ServiceRevenueResponse{
			ServiceID:   sv.ServiceID,
			ServiceName: sv.ServiceName,
			Operations:  sv.Operations,
			Revenue:     round2(sv.Revenue),
		})
	}
	for _, sr := range r.Staff {
		resp.Staff = append(resp.Staff, StaffRevenueResponse{
			StaffID:           sr.StaffID,
			FullName:          sr.FullName,
			Operations:        sr.Operations,
			Revenue:           round2(sr.Revenue),
			CommissionPercent: sr.CommissionPercent,
			Commission:        round2(sr.Commission()),
		})
	}

	return resp
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

package models

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// CreateCustomerRequest новая карточка клиента
type CreateCustomerRequest struct {
	UserID   *int64  `json:"userId,omitempty"`
	FullName string  `json:"fullName"`
	Phone    string  `json:"phone"`
	Email    *string `json:"email,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}

// UpdateOperationRequest изменение заметок к операции
type UpdateOperationRequest struct {
	Notes *string `json:"notes"`
}

// AddPhotoRequest ссылка на фото во внешнем хранилище
type AddPhotoRequest struct {
	StorageKey string  `json:"storageKey"`
	Caption    *string `json:"caption,omitempty"`
}

// StatsResponse агрегаты по истории клиента
type StatsResponse struct {
	Visits      int        `json:"visits"`
	TotalSpent  float64    `json:"totalSpent"`
	TotalPoints int        `json:"totalPoints"`
	LastVisitAt *time.Time `json:"lastVisitAt,omitempty"`
}

// CustomerResponse карточка клиента
type CustomerResponse struct {
	ID        int64          `json:"id"`
	ShopID    int64          `json:"shopId"`
	UserID    *int64         `json:"userId,omitempty"`
	FullName  string         `json:"fullName"`
	Phone     string         `json:"phone"`
	Email     *string        `json:"email,omitempty"`
	Notes     *string        `json:"notes,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	Stats     *StatsResponse `json:"stats,omitempty"`
}

// CustomerListResponse список клиентов
type CustomerListResponse struct {
	Customers []CustomerResponse `json:"customers"`
}

// PhotoResponse фото к операции
type PhotoResponse struct {
	ID         string    `json:"id"`
	StorageKey string    `json:"storageKey"`
	Caption    *string   `json:"caption,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// OperationResponse запись истории клиента
type OperationResponse struct {
	ID            int64           `json:"id"`
	AppointmentID int64           `json:"appointmentId"`
	ShopID        int64           `json:"shopId"`
	CustomerID    int64           `json:"customerId"`
	StaffID       *int64          `json:"staffId,omitempty"`
	ServiceID     *int64          `json:"serviceId,omitempty"`
	ServiceName   string          `json:"serviceName"`
	Amount        float64         `json:"amount"`
	Points        int             `json:"points"`
	Notes         *string         `json:"notes,omitempty"`
	PerformedAt   time.Time       `json:"performedAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
	Photos        []PhotoResponse `json:"photos"`
}

// OperationListResponse история клиента
type OperationListResponse struct {
	Operations []OperationResponse `json:"operations"`
}

// FromDomainCustomer конвертирует domain модель в DTO
func FromDomainCustomer(c *domain.Customer, stats *domain.CustomerStats) *CustomerResponse {
	if c == nil {
		return nil
	}
	resp := &CustomerResponse{
		ID:        c.ID,
		ShopID:    c.ShopID,
		UserID:    c.UserID,
		FullName:  c.FullName,
		Phone:     c.Phone,
		Email:     c.Email,
		Notes:     c.Notes,
		CreatedAt: c.CreatedAt,
	}
	if stats != nil {
		resp.Stats = &StatsResponse{
			Visits:      stats.Visits,
			TotalSpent:  stats.TotalSpent,
			TotalPoints: stats.TotalPoints,
			LastVisitAt: stats.LastVisitAt,
		}
	}
	return resp
}

// FromDomainCustomerList конвертирует список клиентов
func FromDomainCustomerList(customers []*domain.Customer) *CustomerListResponse {
	resp := &CustomerListResponse{Customers: make([]CustomerResponse, 0, len(customers))}
	for _, c := range customers {
		if item := FromDomainCustomer(c, nil); item != nil {
			resp.Customers = append(resp.Customers, *item)
		}
	}
	return resp
}

// FromDomainPhoto конвертирует фото
func FromDomainPhoto(p domain.OperationPhoto) PhotoResponse {
	return PhotoResponse{
		ID:         p.ID,
		StorageKey: p.StorageKey,
		Caption:    p.Caption,
		CreatedAt:  p.CreatedAt,
	}
}

// FromDomainOperation конвертирует операцию
func FromDomainOperation(op *domain.CustomerOperation) *OperationResponse {
	if op == nil {
		return nil
	}
	resp := &OperationResponse{
		ID:            op.ID,
		AppointmentID: op.AppointmentID,
		ShopID:        op.ShopID,
		CustomerID:    op.CustomerID,
		StaffID:       op.StaffID,
		ServiceID:     op.ServiceID,
		ServiceName:   op.ServiceName,
		Amount:        op.Amount,
		Points:        op.Points,
		Notes:         op.Notes,
		PerformedAt:   op.PerformedAt,
		UpdatedAt:     op.UpdatedAt,
		Photos:        make([]PhotoResponse, 0, len(op.Photos)),
	}
	for _, p := range op.Photos {
		resp.Photos = append(resp.Photos, FromDomainPhoto(p))
	}
	return resp
}

// FromDomainOperationList конвертирует историю
func FromDomainOperationList(operations []*domain.CustomerOperation) *OperationListResponse {
	resp := &OperationListResponse{Operations: make([]OperationResponse, 0, len(operations))}
	for _, op := range operations {
		if item := FromDomainOperation(op); item != nil {
			resp.Operations = append(resp.Operations, *item)
		}
	}
	return resp
}

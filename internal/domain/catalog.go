package domain

import "time"

// Category категория услуг; ParentID == nil - корневая
type Category struct {
	ID       int64
	ShopID   int64
	ParentID *int64
	Name     string
}

// Service услуга из каталога салона
type Service struct {
	ID              int64
	ShopID          int64
	CategoryID      *int64
	Name            string
	Price           float64
	DurationMinutes int
	Points          int // баллы лояльности за услугу
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ServicesFilter фильтр услуг салона
type ServicesFilter struct {
	ShopID          int64
	CategoryID      *int64
	IncludeInactive bool
}

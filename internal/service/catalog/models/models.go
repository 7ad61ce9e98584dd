package models

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// ServiceRequest создание или изменение услуги
type ServiceRequest struct {
	CategoryID      *int64  `json:"categoryId,omitempty"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes"`
	Points          int     `json:"points"`
	IsActive        *bool   `json:"isActive,omitempty"` // по умолчанию true
}

// GetServicesRequest запрос списка услуг
type GetServicesRequest struct {
	ShopID          int64
	CategoryID      *int64
	IncludeInactive bool
}

// CategoryResponse категория с подкатегориями
type CategoryResponse struct {
	ID       int64              `json:"id"`
	ParentID *int64             `json:"parentId,omitempty"`
	Name     string             `json:"name"`
	Children []CategoryResponse `json:"children"`
}

// CategoryTreeResponse дерево категорий салона
type CategoryTreeResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// ServiceResponse услуга каталога
type ServiceResponse struct {
	ID              int64     `json:"id"`
	ShopID          int64     `json:"shopId"`
	CategoryID      *int64    `json:"categoryId,omitempty"`
	Name            string    `json:"name"`
	Price           float64   `json:"price"`
	DurationMinutes int       `json:"durationMinutes"`
	Points          int       `json:"points"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ServiceListResponse список услуг
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// FromDomainService конвертирует domain модель в DTO
func FromDomainService(s *domain.Service) *ServiceResponse {
	if s == nil {
		return nil
	}
	return &ServiceResponse{
		ID:              s.ID,
		ShopID:          s.ShopID,
		CategoryID:      s.CategoryID,
		Name:            s.Name,
		Price:           s.Price,
		DurationMinutes: s.DurationMinutes,
		Points:          s.Points,
		IsActive:        s.IsActive,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

// FromDomainServiceList конвертирует список услуг
func FromDomainServiceList(services []*domain.Service) *ServiceListResponse {
	resp := &ServiceListResponse{Services: make([]ServiceResponse, 0, len(services))}
	for _, s := range services {
		if item := FromDomainService(s); item != nil {
			resp.Services = append(resp.Services, *item)
		}
	}
	return resp
}

// BuildCategoryTree строит дерево по parent_id. Категории с неизвестным
// родителем поднимаются в корень.
func BuildCategoryTree(categories []*domain.Category) *CategoryTreeResponse {
	known := make(map[int64]bool, len(categories))
	children := make(map[int64][]*domain.Category, len(categories))
	for _, c := range categories {
		known[c.ID] = true
	}

	roots := make([]*domain.Category, 0)
	for _, c := range categories {
		if c.ParentID == nil || !known[*c.ParentID] || *c.ParentID == c.ID {
			roots = append(roots, c)
			continue
		}
		children[*c.ParentID] = append(children[*c.ParentID], c)
	}

	visited := make(map[int64]bool, len(categories))
	var build func(c *domain.Category) CategoryResponse
	build = func(c *domain.Category) CategoryResponse {
		visited[c.ID] = true
		node := CategoryResponse{
			ID:       c.ID,
			ParentID: c.ParentID,
			Name:     c.Name,
			Children: make([]CategoryResponse, 0),
		}
		for _, child := range children[c.ID] {
			if !visited[child.ID] {
				node.Children = append(node.Children, build(child))
			}
		}
		return node
	}

	resp := &CategoryTreeResponse{Categories: make([]CategoryResponse, 0, len(roots))}
	for _, r := range roots {
		resp.Categories = append(resp.Categories, build(r))
	}
	return resp
}

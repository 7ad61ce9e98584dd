package catalog

import (
	"errors"

	"github.com/m04kA/SMC-SalonService/internal/service/access"
)

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("service not found")

	// ErrCategoryNotFound возвращается, когда категория не принадлежит салону
	ErrCategoryNotFound = errors.New("category not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")

	ErrAccessDenied = access.ErrAccessDenied
	ErrShopNotFound = access.ErrShopNotFound
)

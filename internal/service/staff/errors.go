package staff

import (
	"errors"

	"github.com/m04kA/SMC-SalonService/internal/service/access"
)

var (
	// ErrStaffNotFound возвращается, когда сотрудник не найден
	ErrStaffNotFound = errors.New("staff not found")

	// ErrStaffExists возвращается, когда пользователь уже числится в салоне
	ErrStaffExists = errors.New("staff already exists in shop")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")

	ErrAccessDenied = access.ErrAccessDenied
	ErrShopNotFound = access.ErrShopNotFound
)

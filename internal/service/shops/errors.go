package shops

import (
	"errors"

	"github.com/m04kA/SMC-SalonService/internal/service/access"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")

	ErrShopNotFound = access.ErrShopNotFound
	ErrAccessDenied = access.ErrAccessDenied
)

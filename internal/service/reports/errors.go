package reports

import (
	"errors"

	"github.com/m04kA/SMC-SalonService/internal/service/access"
)

var (
	// ErrInvalidPeriod возвращается при некорректном периоде отчёта
	ErrInvalidPeriod = errors.New("invalid report period")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")

	ErrAccessDenied = access.ErrAccessDenied
	ErrShopNotFound = access.ErrShopNotFound
)

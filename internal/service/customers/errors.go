package customers

import (
	"errors"

	"github.com/m04kA/SMC-SalonService/internal/service/access"
)

var (
	// ErrCustomerExists возвращается, когда клиент с таким телефоном уже есть в салоне
	ErrCustomerExists = errors.New("customer with this phone already exists")

	// ErrOperationNotFound возвращается, когда операция не найдена
	ErrOperationNotFound = errors.New("operation not found")

	// ErrPhotoNotFound возвращается, когда фото не найдено
	ErrPhotoNotFound = errors.New("photo not found")

	// ErrTooManyPhotos возвращается при превышении лимита фото на операцию
	ErrTooManyPhotos = errors.New("too many photos for operation")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")

	ErrAccessDenied     = access.ErrAccessDenied
	ErrShopNotFound     = access.ErrShopNotFound
	ErrCustomerNotFound = access.ErrCustomerNotFound
)

package appointments

import (
	"errors"

	"github.com/m04kA/SMC-SalonService/internal/service/access"
)

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrInvalidTransition возвращается, когда действие недопустимо в текущем статусе
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrNoCounterProposal возвращается, когда у записи нет встречного предложения
	ErrNoCounterProposal = errors.New("appointment has no counter proposal")

	// ErrSlotNotAvailable возвращается, когда у мастера уже есть запись на это время
	ErrSlotNotAvailable = errors.New("slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")

	// Ошибки проверки прав общие для всех сервисов
	ErrAccessDenied     = access.ErrAccessDenied
	ErrShopNotFound     = access.ErrShopNotFound
	ErrCustomerNotFound = access.ErrCustomerNotFound
)

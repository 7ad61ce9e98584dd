package complete_appointment

import (
	"errors"

	"github.com/m04kA/SMC-SalonService/internal/service/access"
)

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("complete_appointment: appointment not found")

	// ErrInvalidTransition возвращается, когда запись нельзя завершить в текущем статусе
	ErrInvalidTransition = errors.New("complete_appointment: invalid status transition")

	// ErrAlreadyRecorded возвращается, когда операция по записи уже есть в истории
	ErrAlreadyRecorded = errors.New("complete_appointment: operation already recorded")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("complete_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("complete_appointment: internal error")

	ErrAccessDenied = access.ErrAccessDenied
)

package create_appointment

import (
	"errors"

	"github.com/m04kA/SMC-SalonService/internal/service/access"
)

var (
	// ErrShopNotFound возвращается, когда салон не найден
	ErrShopNotFound = errors.New("create_appointment: shop not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена или отключена
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrCustomerNotFound возвращается, когда клиент не найден в салоне
	ErrCustomerNotFound = errors.New("create_appointment: customer not found")

	// ErrStaffNotFound возвращается, когда мастер не работает в салоне
	ErrStaffNotFound = errors.New("create_appointment: staff not found")

	// ErrInvalidDate возвращается при некорректной дате записи
	ErrInvalidDate = errors.New("create_appointment: invalid appointment date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("create_appointment: date is too far in the future")

	// ErrOutsideWorkingHours возвращается, когда визит не укладывается в часы работы салона
	ErrOutsideWorkingHours = errors.New("create_appointment: time is outside of working hours")

	// ErrTooLateToBook возвращается, когда нарушено minBookingNoticeMinutes
	ErrTooLateToBook = errors.New("create_appointment: too late to book this slot")

	// ErrSlotNotAvailable возвращается, когда мастер занят в это время
	ErrSlotNotAvailable = errors.New("create_appointment: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")

	ErrAccessDenied = access.ErrAccessDenied
)

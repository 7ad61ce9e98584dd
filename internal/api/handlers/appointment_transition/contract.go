package appointment_transition

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/appointments/models"
)

// TransitionFunc переход записи без тела запроса (confirm, undo-cancel, accept, decline)
type TransitionFunc func(ctx context.Context, p domain.Principal, id int64) (*models.AppointmentResponse, error)

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

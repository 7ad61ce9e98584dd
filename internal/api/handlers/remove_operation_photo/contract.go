package remove_operation_photo

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

type CustomerService interface {
	RemovePhoto(ctx context.Context, p domain.Principal, operationID int64, photoID string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package add_operation_photo

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/customers/models"
)

type CustomerService interface {
	AddPhoto(ctx context.Context, p domain.Principal, operationID int64, req *models.AddPhotoRequest) (*models.PhotoResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

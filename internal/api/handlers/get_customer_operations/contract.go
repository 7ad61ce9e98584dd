package get_customer_operations

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/customers/models"
)

type CustomerService interface {
	GetOperations(ctx context.Context, p domain.Principal, customerID int64) (*models.OperationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

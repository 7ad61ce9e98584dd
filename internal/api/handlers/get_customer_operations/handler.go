package get_customer_operations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/service/customers"
)

const (
	msgInvalidCustomerID = "некорректный ID клиента"
	msgMissingUser       = "отсутствуют данные пользователя"
	msgNotFound          = "клиент не найден"
	msgForbidden         = "доступ запрещен"
)

type Handler struct {
	service CustomerService
	logger  Logger
}

func NewHandler(service CustomerService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/customers/{customerId}/operations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	customerID, err := strconv.ParseInt(mux.Vars(r)["customerId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /customers/{id}/operations - Invalid customer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCustomerID)
		return
	}

	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	result, err := h.service.GetOperations(r.Context(), principal, customerID)
	if err != nil {
		switch {
		case errors.Is(err, customers.ErrCustomerNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, customers.ErrAccessDenied):
			h.logger.Warn("GET /customers/{id}/operations - Access denied: customer_id=%d, user_id=%d",
				customerID, principal.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /customers/{id}/operations - Failed to get operations: customer_id=%d, error=%v",
				customerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /customers/{id}/operations - Operations retrieved: customer_id=%d, count=%d",
		customerID, len(result.Operations))
	handlers.RespondJSON(w, http.StatusOK, result.Operations)
}

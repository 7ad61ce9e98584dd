package update_operation

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
	msgInvalidOperationID = "некорректный ID операции"
	msgMissingUser        = "отсутствуют данные пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "операция не найдена"
	msgForbidden          = "доступ запрещен"
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

// Handle PATCH /api/v1/operations/{operationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	operationID, err := strconv.ParseInt(mux.Vars(r)["operationId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /operations/{id} - Invalid operation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOperationID)
		return
	}

	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	var req UpdateOperationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /operations/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateOperation(r.Context(), principal, operationID, req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, customers.ErrOperationNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, customers.ErrAccessDenied):
			h.logger.Warn("PATCH /operations/{id} - Access denied: operation_id=%d, user_id=%d", operationID, principal.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, customers.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PATCH /operations/{id} - Failed to update operation: operation_id=%d, error=%v", operationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /operations/{id} - Operation updated: operation_id=%d", operationID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

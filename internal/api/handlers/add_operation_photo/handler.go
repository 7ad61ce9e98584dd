package add_operation_photo

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
	msgTooManyPhotos      = "превышено количество фото для операции"
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

// Handle POST /api/v1/operations/{operationId}/photos
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	operationID, err := strconv.ParseInt(mux.Vars(r)["operationId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /operations/{id}/photos - Invalid operation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOperationID)
		return
	}

	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	var req AddPhotoRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /operations/{id}/photos - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.service.AddPhoto(r.Context(), principal, operationID, req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, customers.ErrOperationNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, customers.ErrAccessDenied):
			h.logger.Warn("POST /operations/{id}/photos - Access denied: operation_id=%d, user_id=%d",
				operationID, principal.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, customers.ErrTooManyPhotos):
			h.logger.Warn("POST /operations/{id}/photos - Photo limit reached: operation_id=%d", operationID)
			handlers.RespondConflict(w, msgTooManyPhotos)

		case errors.Is(err, customers.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /operations/{id}/photos - Failed to add photo: operation_id=%d, error=%v", operationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /operations/{id}/photos - Photo added: operation_id=%d, photo_id=%s", operationID, result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

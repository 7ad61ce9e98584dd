package remove_operation_photo

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
	msgInvalidPhotoID     = "некорректный ID фото"
	msgMissingUser        = "отсутствуют данные пользователя"
	msgOperationNotFound  = "операция не найдена"
	msgPhotoNotFound      = "фото не найдено"
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

// Handle DELETE /api/v1/operations/{operationId}/photos/{photoId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	operationID, err := strconv.ParseInt(vars["operationId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /operations/{id}/photos/{photoId} - Invalid operation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOperationID)
		return
	}
	photoID := vars["photoId"]

	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	if err := h.service.RemovePhoto(r.Context(), principal, operationID, photoID); err != nil {
		switch {
		case errors.Is(err, customers.ErrOperationNotFound):
			handlers.RespondNotFound(w, msgOperationNotFound)

		case errors.Is(err, customers.ErrPhotoNotFound):
			handlers.RespondNotFound(w, msgPhotoNotFound)

		case errors.Is(err, customers.ErrAccessDenied):
			h.logger.Warn("DELETE /operations/{id}/photos/{photoId} - Access denied: operation_id=%d, user_id=%d",
				operationID, principal.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, customers.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidPhotoID)

		default:
			h.logger.Error("DELETE /operations/{id}/photos/{photoId} - Failed to remove photo: operation_id=%d, photo_id=%s, error=%v",
				operationID, photoID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /operations/{id}/photos/{photoId} - Photo removed: operation_id=%d, photo_id=%s", operationID, photoID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

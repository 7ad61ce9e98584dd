package create_staff

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/service/staff"
)

const (
	msgInvalidShopID      = "некорректный ID салона"
	msgMissingUser        = "отсутствуют данные пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgShopNotFound       = "салон не найден"
	msgForbidden          = "добавлять сотрудников может только администратор салона"
	msgStaffExists        = "пользователь уже числится в салоне"
)

type Handler struct {
	service StaffService
	logger  Logger
}

func NewHandler(service StaffService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/shops/{shopId}/staff
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	shopID, err := strconv.ParseInt(mux.Vars(r)["shopId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /shops/{id}/staff - Invalid shop ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidShopID)
		return
	}

	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	var req StaffRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /shops/{id}/staff - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.service.Create(r.Context(), principal, shopID, req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, staff.ErrShopNotFound):
			handlers.RespondNotFound(w, msgShopNotFound)

		case errors.Is(err, staff.ErrAccessDenied):
			h.logger.Warn("POST /shops/{id}/staff - Access denied: shop_id=%d, user_id=%d", shopID, principal.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, staff.ErrStaffExists):
			handlers.RespondConflict(w, msgStaffExists)

		case errors.Is(err, staff.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /shops/{id}/staff - Failed to create staff: shop_id=%d, error=%v", shopID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /shops/{id}/staff - Staff created: shop_id=%d, staff_id=%d", shopID, result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

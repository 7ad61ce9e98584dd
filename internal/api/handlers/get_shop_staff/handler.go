package get_shop_staff

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
	msgInvalidShopID = "некорректный ID салона"
	msgMissingUser   = "отсутствуют данные пользователя"
	msgInvalidParams = "некорректные параметры запроса"
	msgShopNotFound  = "салон не найден"
	msgForbidden     = "доступ запрещен"
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

// Handle GET /api/v1/shops/{shopId}/staff
// Query params: includeInactive (опционально, только для администратора)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	shopID, err := strconv.ParseInt(mux.Vars(r)["shopId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /shops/{id}/staff - Invalid shop ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidShopID)
		return
	}

	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	includeInactive := false
	if v := r.URL.Query().Get("includeInactive"); v != "" {
		includeInactive, err = strconv.ParseBool(v)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
	}

	result, err := h.service.List(r.Context(), principal, shopID, includeInactive)
	if err != nil {
		switch {
		case errors.Is(err, staff.ErrShopNotFound):
			handlers.RespondNotFound(w, msgShopNotFound)

		case errors.Is(err, staff.ErrAccessDenied):
			h.logger.Warn("GET /shops/{id}/staff - Access denied: shop_id=%d, user_id=%d", shopID, principal.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /shops/{id}/staff - Failed to list staff: shop_id=%d, error=%v", shopID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result.Staff)
}

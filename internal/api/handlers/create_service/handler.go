package create_service

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/service/catalog"
)

const (
	msgInvalidShopID      = "некорректный ID салона"
	msgMissingUser        = "отсутствуют данные пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgShopNotFound       = "салон не найден"
	msgCategoryNotFound   = "категория не найдена"
	msgForbidden          = "изменять каталог может только администратор салона"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/shops/{shopId}/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	shopID, err := strconv.ParseInt(mux.Vars(r)["shopId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /shops/{id}/services - Invalid shop ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidShopID)
		return
	}

	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	var req ServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /shops/{id}/services - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.service.CreateService(r.Context(), principal, shopID, req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrShopNotFound):
			handlers.RespondNotFound(w, msgShopNotFound)

		case errors.Is(err, catalog.ErrCategoryNotFound):
			handlers.RespondNotFound(w, msgCategoryNotFound)

		case errors.Is(err, catalog.ErrAccessDenied):
			h.logger.Warn("POST /shops/{id}/services - Access denied: shop_id=%d, user_id=%d", shopID, principal.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, catalog.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /shops/{id}/services - Failed to create service: shop_id=%d, error=%v", shopID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /shops/{id}/services - Service created: shop_id=%d, service_id=%d", shopID, result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

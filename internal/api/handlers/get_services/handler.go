package get_services

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/service/catalog"
	"github.com/m04kA/SMC-SalonService/internal/service/catalog/models"
)

const (
	msgInvalidShopID     = "некорректный ID салона"
	msgInvalidCategoryID = "некорректный ID категории"
	msgShopNotFound      = "салон не найден"
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

// Handle GET /api/v1/shops/{shopId}/services
// Query params: categoryId (опционально). Публичный каталог, только активные услуги.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	shopID, err := strconv.ParseInt(mux.Vars(r)["shopId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /shops/{id}/services - Invalid shop ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidShopID)
		return
	}

	req := &models.GetServicesRequest{ShopID: shopID}
	if categoryIDStr := r.URL.Query().Get("categoryId"); categoryIDStr != "" {
		categoryID, err := strconv.ParseInt(categoryIDStr, 10, 64)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidCategoryID)
			return
		}
		req.CategoryID = &categoryID
	}

	result, err := h.service.GetServices(r.Context(), req)
	if err != nil {
		if errors.Is(err, catalog.ErrShopNotFound) {
			handlers.RespondNotFound(w, msgShopNotFound)
			return
		}
		h.logger.Error("GET /shops/{id}/services - Failed to get services: shop_id=%d, error=%v", shopID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result.Services)
}

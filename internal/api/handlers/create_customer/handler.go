package create_customer

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
	msgInvalidShopID      = "некорректный ID салона"
	msgMissingUser        = "отсутствуют данные пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgShopNotFound       = "салон не найден"
	msgForbidden          = "доступ запрещен"
	msgCustomerExists     = "клиент с таким телефоном уже есть в салоне"
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

// Handle POST /api/v1/shops/{shopId}/customers
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	shopID, err := strconv.ParseInt(mux.Vars(r)["shopId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /shops/{id}/customers - Invalid shop ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidShopID)
		return
	}

	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	var req CreateCustomerRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /shops/{id}/customers - Invalid request body: %v", err)
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
		case errors.Is(err, customers.ErrShopNotFound):
			handlers.RespondNotFound(w, msgShopNotFound)

		case errors.Is(err, customers.ErrAccessDenied):
			h.logger.Warn("POST /shops/{id}/customers - Access denied: shop_id=%d, user_id=%d", shopID, principal.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, customers.ErrCustomerExists):
			h.logger.Warn("POST /shops/{id}/customers - Customer exists: shop_id=%d", shopID)
			handlers.RespondConflict(w, msgCustomerExists)

		case errors.Is(err, customers.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /shops/{id}/customers - Failed to create customer: shop_id=%d, error=%v", shopID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /shops/{id}/customers - Customer created: shop_id=%d, customer_id=%d", shopID, result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

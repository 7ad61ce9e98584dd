package get_report

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/service/reports"
	"github.com/m04kA/SMC-SalonService/internal/service/reports/models"
)

const (
	msgInvalidShopID = "некорректный ID салона"
	msgMissingUser   = "отсутствуют данные пользователя"
	msgInvalidPeriod = "некорректный период отчёта"
	msgShopNotFound  = "салон не найден"
	msgForbidden     = "отчёты доступны только администратору салона"
)

type Handler struct {
	service ReportService
	logger  Logger
}

func NewHandler(service ReportService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/shops/{shopId}/reports
// Query params: from, to (YYYY-MM-DD, опционально; по умолчанию последние 30 дней)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	shopID, err := strconv.ParseInt(mux.Vars(r)["shopId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /shops/{id}/reports - Invalid shop ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidShopID)
		return
	}

	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	req := &models.GetReportRequest{ShopID: shopID}
	if from := r.URL.Query().Get("from"); from != "" {
		req.From = &from
	}
	if to := r.URL.Query().Get("to"); to != "" {
		req.To = &to
	}

	result, err := h.service.GetReport(r.Context(), principal, req)
	if err != nil {
		switch {
		case errors.Is(err, reports.ErrInvalidPeriod):
			h.logger.Warn("GET /shops/{id}/reports - Invalid period: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		case errors.Is(err, reports.ErrShopNotFound):
			handlers.RespondNotFound(w, msgShopNotFound)

		case errors.Is(err, reports.ErrAccessDenied):
			h.logger.Warn("GET /shops/{id}/reports - Access denied: shop_id=%d, user_id=%d", shopID, principal.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /shops/{id}/reports - Failed to build report: shop_id=%d, error=%v", shopID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /shops/{id}/reports - Report built: shop_id=%d, from=%s, to=%s", shopID, result.From, result.To)
	handlers.RespondJSON(w, http.StatusOK, result)
}

package appointment_transition

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/service/appointments"
)

const (
	msgMissingUser          = "отсутствуют данные пользователя"
	msgInvalidAppointmentID = "некорректный ID записи"
	msgNotFound             = "запись не найдена"
	msgForbidden            = "доступ запрещен"
	msgInvalidTransition    = "действие недопустимо в текущем статусе записи"
	msgNoCounterProposal    = "у записи нет встречного предложения"
	msgSlotNotAvailable     = "выбранное время уже занято"
)

// Handler общий обработчик переходов статуса, отличающихся только действием
type Handler struct {
	transition TransitionFunc
	route      string
	logger     Logger
}

// NewHandler route используется только в логах, например "PATCH /appointments/{id}/confirm"
func NewHandler(transition TransitionFunc, route string, logger Logger) *Handler {
	return &Handler{
		transition: transition,
		route:      route,
		logger:     logger,
	}
}

// Handle PATCH /api/v1/appointments/{appointmentId}/<action>
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	appointmentID, err := strconv.ParseInt(mux.Vars(r)["appointmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("%s - Invalid appointment ID: %v", h.route, err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	result, err := h.transition(r.Context(), principal, appointmentID)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("%s - Appointment not found: appointment_id=%d", h.route, appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("%s - Access denied: appointment_id=%d, user_id=%d", h.route, appointmentID, principal.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, appointments.ErrInvalidTransition):
			h.logger.Warn("%s - Invalid transition: appointment_id=%d: %v", h.route, appointmentID, err)
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, appointments.ErrNoCounterProposal):
			handlers.RespondConflict(w, msgNoCounterProposal)

		case errors.Is(err, appointments.ErrSlotNotAvailable):
			h.logger.Warn("%s - Slot not available: appointment_id=%d", h.route, appointmentID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		default:
			h.logger.Error("%s - Failed: appointment_id=%d, error=%v", h.route, appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s - Done: appointment_id=%d, status=%s, user_id=%d",
		h.route, appointmentID, result.Status, principal.UserID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

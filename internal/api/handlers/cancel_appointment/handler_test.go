package cancel_appointment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/appointments"
	"github.com/m04kA/SMC-SalonService/internal/service/appointments/models"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Cancel(ctx context.Context, p domain.Principal, id int64, req *models.CancelRequest) (*models.AppointmentResponse, error) {
	args := m.Called(ctx, p, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AppointmentResponse), args.Error(1)
}

var customer = domain.Principal{UserID: 7, Role: domain.RoleCustomer}

func newRequest(body string) *http.Request {
	r := httptest.NewRequest(http.MethodPatch, "/api/v1/appointments/42/cancel", strings.NewReader(body))
	r = mux.SetURLVars(r, map[string]string{"appointmentId": "42"})
	return r.WithContext(middleware.WithPrincipal(r.Context(), customer))
}

func TestHandle_CancelWithReason(t *testing.T) {
	svc := new(mockService)
	svc.On("Cancel", mock.Anything, customer, int64(42), &models.CancelRequest{Reason: "sick"}).
		Return(&models.AppointmentResponse{ID: 42, Status: "canceled"}, nil)

	w := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(w, newRequest(`{"cancellationReason":"sick"}`))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"canceled"`)
	svc.AssertExpectations(t)
}

func TestHandle_CompletedIsConflict(t *testing.T) {
	svc := new(mockService)
	svc.On("Cancel", mock.Anything, customer, int64(42), &models.CancelRequest{}).
		Return(nil, appointments.ErrInvalidTransition)

	w := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(w, newRequest(`{}`))

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestHandle_ForeignAppointment(t *testing.T) {
	svc := new(mockService)
	svc.On("Cancel", mock.Anything, customer, int64(42), mock.Anything).Return(nil, appointments.ErrAccessDenied)

	w := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(w, newRequest(`{}`))

	assert.Equal(t, http.StatusForbidden, w.Code)
}

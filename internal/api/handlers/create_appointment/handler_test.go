package create_appointment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/appointments/models"
	createAppointment "github.com/m04kA/SMC-SalonService/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *createAppointment.Request) (*models.AppointmentResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AppointmentResponse), args.Error(1)
}

var customer = domain.Principal{UserID: 7, Role: domain.RoleCustomer}

func newRequest(body string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(body))
	return r.WithContext(middleware.WithPrincipal(r.Context(), customer))
}

func TestHandle_Created(t *testing.T) {
	uc := new(mockUseCase)
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *createAppointment.Request) bool {
		return req.Principal == customer &&
			req.ShopID == 1 &&
			req.ServiceID == 5 &&
			req.StartTime == types.TimeString("10:00") &&
			req.Date.Equal(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
	})).Return(&models.AppointmentResponse{ID: 42, Status: "pending"}, nil)

	w := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(w,
		newRequest(`{"shopId":1,"serviceId":5,"date":"2025-03-01","startTime":"10:00"}`))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"id":42`)
	uc.AssertExpectations(t)
}

func TestHandle_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"shopId":`},
		{"missing service", `{"shopId":1,"date":"2025-03-01","startTime":"10:00"}`},
		{"bad date", `{"shopId":1,"serviceId":5,"date":"01.03.2025","startTime":"10:00"}`},
		{"bad time", `{"shopId":1,"serviceId":5,"date":"2025-03-01","startTime":"25:99"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(mockUseCase)
			w := httptest.NewRecorder()
			NewHandler(uc, logger.NewNop()).Handle(w, newRequest(tt.body))

			assert.Equal(t, http.StatusBadRequest, w.Code)
			uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
		})
	}
}

func TestHandle_UseCaseErrors(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
	}{
		{createAppointment.ErrSlotNotAvailable, http.StatusConflict},
		{createAppointment.ErrShopNotFound, http.StatusNotFound},
		{createAppointment.ErrServiceNotFound, http.StatusNotFound},
		{createAppointment.ErrCustomerNotFound, http.StatusNotFound},
		{createAppointment.ErrAccessDenied, http.StatusForbidden},
		{createAppointment.ErrOutsideWorkingHours, http.StatusBadRequest},
		{createAppointment.ErrTooLateToBook, http.StatusBadRequest},
		{createAppointment.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			uc := new(mockUseCase)
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			w := httptest.NewRecorder()
			NewHandler(uc, logger.NewNop()).Handle(w,
				newRequest(`{"shopId":1,"serviceId":5,"date":"2025-03-01","startTime":"10:00"}`))

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

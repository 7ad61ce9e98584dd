package get_available_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	getAvailableSlots "github.com/m04kA/SMC-SalonService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*getAvailableSlots.Response), args.Error(1)
}

func newRouter(uc GetAvailableSlotsUseCase) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/shops/{shopId}/available-slots", NewHandler(uc, logger.NewNop()).Handle).Methods(http.MethodGet)
	return r
}

func TestHandle_Success(t *testing.T) {
	date := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	staffID := int64(3)

	uc := new(mockUseCase)
	uc.On("Execute", mock.Anything, &getAvailableSlots.Request{
		ShopID:    1,
		ServiceID: 5,
		StaffID:   &staffID,
		Date:      date,
	}).Return(&getAvailableSlots.Response{
		Date:      date,
		ShopID:    1,
		ServiceID: 5,
		StaffID:   &staffID,
		Slots: []getAvailableSlots.Slot{
			{StartTime: "10:00", EndTime: "10:45", DurationMinutes: 45, AvailableSpots: 1, TotalSpots: 1, StaffIDs: []int64{3}},
		},
	}, nil)

	w := httptest.NewRecorder()
	newRouter(uc).ServeHTTP(w, httptest.NewRequest(http.MethodGet,
		"/shops/1/available-slots?serviceId=5&date=2025-03-01&staffId=3", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "2025-03-01", resp.Date)
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, "10:00", resp.Slots[0].StartTime)
	assert.Equal(t, "10:45", resp.Slots[0].EndTime)
	assert.Equal(t, []int64{3}, resp.Slots[0].StaffIDs)
	uc.AssertExpectations(t)
}

func TestHandle_BadQuery(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"missing service", "/shops/1/available-slots?date=2025-03-01"},
		{"bad service", "/shops/1/available-slots?serviceId=x&date=2025-03-01"},
		{"missing date", "/shops/1/available-slots?serviceId=5"},
		{"bad date", "/shops/1/available-slots?serviceId=5&date=tomorrow"},
		{"bad staff", "/shops/1/available-slots?serviceId=5&date=2025-03-01&staffId=x"},
		{"bad shop", "/shops/x/available-slots?serviceId=5&date=2025-03-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(mockUseCase)
			w := httptest.NewRecorder()
			newRouter(uc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, http.StatusBadRequest, w.Code)
			uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
		})
	}
}

func TestHandle_NotFound(t *testing.T) {
	for _, err := range []error{getAvailableSlots.ErrShopNotFound, getAvailableSlots.ErrServiceNotFound, getAvailableSlots.ErrStaffNotFound} {
		uc := new(mockUseCase)
		uc.On("Execute", mock.Anything, mock.Anything).Return(nil, err)

		w := httptest.NewRecorder()
		newRouter(uc).ServeHTTP(w, httptest.NewRequest(http.MethodGet,
			"/shops/1/available-slots?serviceId=5&date=2025-03-01", nil))

		assert.Equal(t, http.StatusNotFound, w.Code, err.Error())
	}
}

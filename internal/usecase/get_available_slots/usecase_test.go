package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	shopRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/shop"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
	"github.com/m04kA/SMC-SalonService/pkg/ptr"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

type mockAppointmentRepo struct{ mock.Mock }

func (m *mockAppointmentRepo) GetActiveByStaffAndDate(ctx context.Context, staffID int64, date time.Time) ([]*domain.Appointment, error) {
	args := m.Called(ctx, staffID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Appointment), args.Error(1)
}

type mockShopRepo struct{ mock.Mock }

func (m *mockShopRepo) GetByID(ctx context.Context, id int64) (*domain.Shop, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Shop), args.Error(1)
}

type mockCatalogRepo struct{ mock.Mock }

func (m *mockCatalogRepo) GetServiceByID(ctx context.Context, shopID, serviceID int64) (*domain.Service, error) {
	args := m.Called(ctx, shopID, serviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Service), args.Error(1)
}

type mockStaffRepo struct{ mock.Mock }

func (m *mockStaffRepo) GetByID(ctx context.Context, id int64) (*domain.Staff, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Staff), args.Error(1)
}

func (m *mockStaffRepo) GetByShopID(ctx context.Context, shopID int64, includeInactive bool) ([]*domain.Staff, error) {
	args := m.Called(ctx, shopID, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Staff), args.Error(1)
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

var march2 = time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)

func newTestUseCase() (*UseCase, *mockAppointmentRepo, *mockShopRepo, *mockCatalogRepo, *mockStaffRepo) {
	appointments := new(mockAppointmentRepo)
	shops := new(mockShopRepo)
	catalog := new(mockCatalogRepo)
	staff := new(mockStaffRepo)

	uc := NewUseCase(appointments, shops, catalog, staff, domain.DefaultSlotStepMinutes, logger.NewNop())
	uc.timeProvider = fixedTime{t: time.Date(2025, 3, 1, 18, 0, 0, 0, time.UTC)}

	shops.On("GetByID", mock.Anything, int64(1)).Return(&domain.Shop{
		ID: 1, OpenTime: "09:00", CloseTime: "11:00", SlotStepMinutes: 30, MinBookingNoticeMinutes: 60, AdvanceBookingDays: 14,
	}, nil)
	catalog.On("GetServiceByID", mock.Anything, int64(1), int64(5)).Return(&domain.Service{ID: 5, DurationMinutes: 60, IsActive: true}, nil)
	return uc, appointments, shops, catalog, staff
}

func TestUseCase_Execute_SingleStaff(t *testing.T) {
	uc, appointments, _, _, staff := newTestUseCase()
	staff.On("GetByID", mock.Anything, int64(3)).Return(&domain.Staff{ID: 3, ShopID: ptr.Ptr(int64(1)), IsActive: true}, nil)
	appointments.On("GetActiveByStaffAndDate", mock.Anything, int64(3), march2).Return([]*domain.Appointment{
		{ID: 40, StartTime: "09:30", DurationMinutes: 30, Status: domain.StatusConfirmed},
	}, nil)

	resp, err := uc.Execute(context.Background(), &Request{ShopID: 1, ServiceID: 5, StaffID: ptr.Ptr(int64(3)), Date: march2})
	require.NoError(t, err)

	// 09:00 и 09:30 пересекаются с 09:30-10:00, 10:00-11:00 свободно
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, types.TimeString("10:00"), resp.Slots[0].StartTime)
	assert.Equal(t, []int64{3}, resp.Slots[0].StaffIDs)
}

func TestUseCase_Execute_AnyStaff(t *testing.T) {
	uc, appointments, _, _, staff := newTestUseCase()
	staff.On("GetByShopID", mock.Anything, int64(1), false).Return([]*domain.Staff{{ID: 3}, {ID: 4}}, nil)
	appointments.On("GetActiveByStaffAndDate", mock.Anything, int64(3), march2).Return([]*domain.Appointment{
		{ID: 40, StartTime: "09:00", DurationMinutes: 120, Status: domain.StatusConfirmed},
	}, nil)
	appointments.On("GetActiveByStaffAndDate", mock.Anything, int64(4), march2).Return([]*domain.Appointment{}, nil)

	resp, err := uc.Execute(context.Background(), &Request{ShopID: 1, ServiceID: 5, Date: march2})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 3)
	for _, s := range resp.Slots {
		assert.Equal(t, []int64{4}, s.StaffIDs)
		assert.Equal(t, 2, s.TotalSpots)
	}
}

func TestUseCase_Execute_Errors(t *testing.T) {
	uc, _, shops, catalog, staff := newTestUseCase()
	shops.On("GetByID", mock.Anything, int64(2)).Return(nil, shopRepo.ErrShopNotFound)
	catalog.On("GetServiceByID", mock.Anything, int64(1), int64(6)).Return(&domain.Service{ID: 6, DurationMinutes: 30}, nil)
	staff.On("GetByID", mock.Anything, int64(9)).Return(&domain.Staff{ID: 9, ShopID: ptr.Ptr(int64(1)), IsActive: false}, nil)
	staff.On("GetByShopID", mock.Anything, int64(1), false).Return(nil, errors.New("connection reset"))

	cases := []struct {
		name string
		req  *Request
		want error
	}{
		{"unknown shop", &Request{ShopID: 2, ServiceID: 5, Date: march2}, ErrShopNotFound},
		{"inactive service", &Request{ShopID: 1, ServiceID: 6, Date: march2}, ErrServiceNotFound},
		{"past date", &Request{ShopID: 1, ServiceID: 5, Date: march2.AddDate(0, 0, -2)}, ErrInvalidDate},
		{"too far", &Request{ShopID: 1, ServiceID: 5, Date: march2.AddDate(0, 0, 30)}, ErrDateTooFarInFuture},
		{"fired staff", &Request{ShopID: 1, ServiceID: 5, StaffID: ptr.Ptr(int64(9)), Date: march2}, ErrStaffNotFound},
		{"repository failure", &Request{ShopID: 1, ServiceID: 5, Date: march2}, ErrInternal},
		{"no date", &Request{ShopID: 1, ServiceID: 5}, ErrInvalidInput},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tc.req)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

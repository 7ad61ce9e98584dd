package appointments

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/infra/events"
	appointmentRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-SalonService/internal/service/appointments/models"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
	"github.com/m04kA/SMC-SalonService/pkg/ptr"
)

var (
	now      = time.Date(2025, 2, 20, 9, 0, 0, 0, time.UTC)
	staff    = domain.Principal{UserID: 7, Role: domain.RoleStaff}
	customer = domain.Principal{UserID: 55, Role: domain.RoleCustomer}
	admin    = domain.Principal{UserID: 100, Role: domain.RoleAdmin}
)

type testDeps struct {
	repo      *mockAppointmentRepo
	access    *mockAccess
	publisher *mockPublisher
	tx        *fakeTxManager
	metrics   *fakeMetrics
}

func newTestService() (*Service, *testDeps) {
	deps := &testDeps{
		repo:      new(mockAppointmentRepo),
		access:    new(mockAccess),
		publisher: new(mockPublisher),
		tx:        &fakeTxManager{},
		metrics:   &fakeMetrics{},
	}
	s := NewService(deps.repo, deps.access, deps.tx, deps.publisher, deps.metrics, logger.NewNop())
	s.timeProvider = fixedTime{now: now}
	return s, deps
}

func appointment42(status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		ID:              42,
		ShopID:          1,
		CustomerID:      20,
		StaffID:         ptr.Ptr(int64(3)),
		ServiceName:     "Haircut",
		ServicePrice:    35,
		AppointmentDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		StartTime:       "10:00",
		DurationMinutes: 60,
		Status:          status,
	}
}

func TestService_Confirm(t *testing.T) {
	s, deps := newTestService()
	a := appointment42(domain.StatusPending)

	deps.repo.On("GetByIDForUpdate", mock.Anything, int64(42)).Return(a, nil)
	deps.access.On("RequireStaff", mock.Anything, staff, int64(1)).Return(nil)
	deps.repo.On("Update", mock.Anything, mock.MatchedBy(func(a *domain.Appointment) bool {
		return a.Status == domain.StatusConfirmed
	})).Return(nil)
	deps.publisher.On("PublishStatusChanged", mock.Anything, mock.MatchedBy(func(e events.StatusChanged) bool {
		return e.AppointmentID == 42 && e.From == domain.StatusPending && e.To == domain.StatusConfirmed
	})).Return(nil)

	resp, err := s.Confirm(context.Background(), staff, 42)
	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, 1, deps.tx.calls)
	assert.Equal(t, []string{"confirm:ok"}, deps.metrics.transitions)

	deps.repo.AssertExpectations(t)
	deps.publisher.AssertExpectations(t)
}

func TestService_Confirm_RejectedInOtherStatus(t *testing.T) {
	for _, st := range []domain.AppointmentStatus{domain.StatusConfirmed, domain.StatusCanceled, domain.StatusCompleted} {
		t.Run(string(st), func(t *testing.T) {
			s, deps := newTestService()
			deps.repo.On("GetByIDForUpdate", mock.Anything, int64(42)).Return(appointment42(st), nil)
			deps.access.On("RequireStaff", mock.Anything, staff, int64(1)).Return(nil)

			resp, err := s.Confirm(context.Background(), staff, 42)
			assert.Nil(t, resp)
			assert.ErrorIs(t, err, ErrInvalidTransition)

			deps.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
			deps.publisher.AssertNotCalled(t, "PublishStatusChanged", mock.Anything, mock.Anything)
			assert.Equal(t, []string{"confirm:rejected"}, deps.metrics.transitions)
		})
	}
}

func TestService_Confirm_AccessDenied(t *testing.T) {
	s, deps := newTestService()
	deps.repo.On("GetByIDForUpdate", mock.Anything, int64(42)).Return(appointment42(domain.StatusPending), nil)
	deps.access.On("RequireStaff", mock.Anything, customer, int64(1)).Return(ErrAccessDenied)

	_, err := s.Confirm(context.Background(), customer, 42)
	assert.ErrorIs(t, err, ErrAccessDenied)
	deps.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestService_Confirm_NotFound(t *testing.T) {
	s, deps := newTestService()
	deps.repo.On("GetByIDForUpdate", mock.Anything, int64(99)).Return(nil, appointmentRepo.ErrAppointmentNotFound)

	_, err := s.Confirm(context.Background(), staff, 99)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestService_Confirm_UpdateFails(t *testing.T) {
	s, deps := newTestService()
	deps.repo.On("GetByIDForUpdate", mock.Anything, int64(42)).Return(appointment42(domain.StatusPending), nil)
	deps.access.On("RequireStaff", mock.Anything, staff, int64(1)).Return(nil)
	deps.repo.On("Update", mock.Anything, mock.Anything).Return(errors.New("connection reset"))

	_, err := s.Confirm(context.Background(), staff, 42)
	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, []string{"confirm:error"}, deps.metrics.transitions)
	deps.publisher.AssertNotCalled(t, "PublishStatusChanged", mock.Anything, mock.Anything)
}

func TestService_Cancel_ByCustomer(t *testing.T) {
	s, deps := newTestService()
	deps.repo.On("GetByIDForUpdate", mock.Anything, int64(42)).Return(appointment42(domain.StatusConfirmed), nil)
	deps.access.On("RequireCustomerOrStaff", mock.Anything, customer, int64(20), int64(1)).Return(nil)
	deps.repo.On("Update", mock.Anything, mock.Anything).Return(nil)
	deps.publisher.On("PublishStatusChanged", mock.Anything, mock.Anything).Return(nil)

	resp, err := s.Cancel(context.Background(), customer, 42, &models.CancelRequest{Reason: "  sick  "})
	require.NoError(t, err)
	assert.Equal(t, "canceled", resp.Status)
	require.NotNil(t, resp.CancellationReason)
	assert.Equal(t, "sick", *resp.CancellationReason)
}

func TestService_Cancel_AlreadyCanceledIsNoOp(t *testing.T) {
	s, deps := newTestService()
	a := appointment42(domain.StatusCanceled)
	deps.repo.On("GetByIDForUpdate", mock.Anything, int64(42)).Return(a, nil)
	deps.access.On("RequireCustomerOrStaff", mock.Anything, staff, int64(20), int64(1)).Return(nil)

	resp, err := s.Cancel(context.Background(), staff, 42, &models.CancelRequest{})
	require.NoError(t, err)
	assert.Equal(t, "canceled", resp.Status)

	deps.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	deps.publisher.AssertNotCalled(t, "PublishStatusChanged", mock.Anything, mock.Anything)
	assert.Equal(t, []string{"cancel:noop"}, deps.metrics.transitions)
}

func TestService_Cancel_CompletedIsRejected(t *testing.T) {
	s, deps := newTestService()
	deps.repo.On("GetByIDForUpdate", mock.Anything, int64(42)).Return(appointment42(domain.StatusCompleted), nil)
	deps.access.On("RequireCustomerOrStaff", mock.Anything, staff, int64(20), int64(1)).Return(nil)

	_, err := s.Cancel(context.Background(), staff, 42, &models.CancelRequest{})
	assert.ErrorIs(t, err, ErrInvalidTransition)
	deps.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestService_UndoCancel(t *testing.T) {
	s, deps := newTestService()
	a := appointment42(domain.StatusCanceled)
	a.CancelledAt = ptr.Ptr(now.Add(-time.Hour))
	deps.repo.On("GetByIDForUpdate", mock.Anything, int64(42)).Return(a, nil)
	deps.access.On("RequireStaff", mock.Anything, admin, int64(1)).Return(nil)
	deps.repo.On("GetActiveByStaffAndDate", mock.Anything, int64(3), a.AppointmentDate).Return([]*domain.Appointment{}, nil)
	deps.repo.On("Update", mock.Anything, mock.Anything).Return(nil)
	deps.publisher.On("PublishStatusChanged", mock.Anything, mock.Anything).Return(nil)

	resp, err := s.UndoCancel(context.Background(), admin, 42)
	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Status)
	assert.True(t, resp.Reinstated)
	assert.NotNil(t, resp.ReinstatedAt)
	assert.Nil(t, resp.CancelledAt)
}

func TestService_UndoCancel_SlotTaken(t *testing.T) {
	s, deps := newTestService()
	a := appointment42(domain.StatusCanceled)
	other := appointment42(domain.StatusConfirmed)
	other.ID = 43
	other.StartTime = "10:30"

	deps.repo.On("GetByIDForUpdate", mock.Anything, int64(42)).Return(a, nil)
	deps.access.On("RequireStaff", mock.Anything, staff, int64(1)).Return(nil)
	deps.repo.On("GetActiveByStaffAndDate", mock.Anything, int64(3), a.AppointmentDate).Return([]*domain.Appointment{other}, nil)

	_, err := s.UndoCancel(context.Background(), staff, 42)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	deps.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestService_CounterPropose(t *testing.T) {
	s, deps := newTestService()
	deps.repo.On("GetByIDForUpdate", mock.Anything, int64(42)).Return(appointment42(domain.StatusPending), nil)
	deps.access.On("RequireStaff", mock.Anything, staff, int64(1)).Return(nil)
	deps.access.On("Shop", mock.Anything, int64(1)).Return(&domain.Shop{ID: 1, OpenTime: "09:00", CloseTime: "20:00"}, nil)
	deps.repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	resp, err := s.CounterPropose(context.Background(), staff, 42, &models.CounterProposeRequest{Date: "2025-03-02", StartTime: "14:30"})
	require.NoError(t, err)
	assert.Equal(t, "pending", resp.Status)
	require.NotNil(t, resp.CounterProposal)
	assert.Equal(t, "2025-03-02", resp.CounterProposal.Date)
	assert.Equal(t, "14:30", resp.CounterProposal.StartTime)

	// статус не изменился - события нет
	deps.publisher.AssertNotCalled(t, "PublishStatusChanged", mock.Anything, mock.Anything)
}

func TestService_CounterPropose_Validation(t *testing.T) {
	s, deps := newTestService()
	deps.repo.On("GetByIDForUpdate", mock.Anything, int64(42)).Return(appointment42(domain.StatusPending), nil)
	deps.access.On("RequireStaff", mock.Anything, staff, int64(1)).Return(nil)
	deps.access.On("Shop", mock.Anything, int64(1)).Return(&domain.Shop{ID: 1, OpenTime: "09:00", CloseTime: "20:00"}, nil)

	_, err := s.CounterPropose(context.Background(), staff, 42, &models.CounterProposeRequest{Date: "02.03.2025", StartTime: "14:30"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = s.CounterPropose(context.Background(), staff, 42, &models.CounterProposeRequest{Date: "2025-02-19", StartTime: "14:30"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = s.CounterPropose(context.Background(), staff, 42, &models.CounterProposeRequest{Date: "2025-03-02", StartTime: "19:30"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	deps.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestService_CounterPropose_TerminalStatusWithPastSlot(t *testing.T) {
	for _, status := range []domain.AppointmentStatus{domain.StatusCompleted, domain.StatusCanceled} {
		t.Run(string(status), func(t *testing.T) {
			s, deps := newTestService()
			deps.repo.On("GetByIDForUpdate", mock.Anything, int64(42)).Return(appointment42(status), nil)
			deps.access.On("RequireStaff", mock.Anything, staff, int64(1)).Return(nil)
			deps.access.On("Shop", mock.Anything, int64(1)).Return(&domain.Shop{ID: 1, OpenTime: "09:00", CloseTime: "20:00"}, nil)

			_, err := s.CounterPropose(context.Background(), staff, 42, &models.CounterProposeRequest{Date: "2025-02-19", StartTime: "14:30"})
			assert.ErrorIs(t, err, ErrInvalidTransition)
			assert.NotErrorIs(t, err, ErrInvalidInput)
			deps.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		})
	}
}

func TestService_AcceptCounterProposal(t *testing.T) {
	s, deps := newTestService()
	a := appointment42(domain.StatusPending)
	newDate := time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)
	a.Proposal = &domain.CounterProposal{Date: newDate, StartTime: "14:30", ProposedAt: now}

	deps.repo.On("GetByIDForUpdate", mock.Anything, int64(42)).Return(a, nil)
	deps.access.On("RequireCustomer", mock.Anything, customer, int64(20)).Return(nil)
	deps.access.On("Shop", mock.Anything, int64(1)).Return(&domain.Shop{ID: 1, OpenTime: "09:00", CloseTime: "20:00"}, nil)
	deps.repo.On("GetActiveByStaffAndDate", mock.Anything, int64(3), newDate).Return([]*domain.Appointment{}, nil)
	deps.repo.On("Update", mock.Anything, mock.Anything).Return(nil)
	deps.publisher.On("PublishStatusChanged", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	resp, err := s.AcceptCounterProposal(context.Background(), customer, 42)
	require.NoError(t, err, "publish failure must not fail the transition")
	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, "2025-03-02", resp.AppointmentDate)
	assert.Equal(t, "14:30", resp.StartTime)
	assert.Nil(t, resp.CounterProposal)
}

func TestService_AcceptCounterProposal_StaleProposal(t *testing.T) {
	s, deps := newTestService()
	a := appointment42(domain.StatusPending)
	a.Proposal = &domain.CounterProposal{
		Date:       time.Date(2025, 2, 18, 0, 0, 0, 0, time.UTC),
		StartTime:  "10:00",
		ProposedAt: now.Add(-72 * time.Hour),
	}

	deps.repo.On("GetByIDForUpdate", mock.Anything, int64(42)).Return(a, nil)
	deps.access.On("RequireCustomer", mock.Anything, customer, int64(20)).Return(nil)
	deps.access.On("Shop", mock.Anything, int64(1)).Return(&domain.Shop{ID: 1, OpenTime: "09:00", CloseTime: "20:00"}, nil)

	_, err := s.AcceptCounterProposal(context.Background(), customer, 42)
	assert.ErrorIs(t, err, ErrInvalidInput)
	deps.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	deps.publisher.AssertNotCalled(t, "PublishStatusChanged", mock.Anything, mock.Anything)
}

func TestService_AcceptCounterProposal_OutsideShopHours(t *testing.T) {
	s, deps := newTestService()
	a := appointment42(domain.StatusPending)
	a.Proposal = &domain.CounterProposal{Date: time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC), StartTime: "18:30", ProposedAt: now}

	deps.repo.On("GetByIDForUpdate", mock.Anything, int64(42)).Return(a, nil)
	deps.access.On("RequireCustomer", mock.Anything, customer, int64(20)).Return(nil)
	// салон стал закрываться раньше, чем когда мастер предлагал время
	deps.access.On("Shop", mock.Anything, int64(1)).Return(&domain.Shop{ID: 1, OpenTime: "09:00", CloseTime: "19:00"}, nil)

	_, err := s.AcceptCounterProposal(context.Background(), customer, 42)
	assert.ErrorIs(t, err, ErrInvalidInput)
	deps.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestService_AcceptCounterProposal_NoProposal(t *testing.T) {
	s, deps := newTestService()
	deps.repo.On("GetByIDForUpdate", mock.Anything, int64(42)).Return(appointment42(domain.StatusPending), nil)
	deps.access.On("RequireCustomer", mock.Anything, customer, int64(20)).Return(nil)

	_, err := s.AcceptCounterProposal(context.Background(), customer, 42)
	assert.ErrorIs(t, err, ErrNoCounterProposal)
}

func TestService_DeclineCounterProposal(t *testing.T) {
	s, deps := newTestService()
	a := appointment42(domain.StatusPending)
	a.Proposal = &domain.CounterProposal{Date: a.AppointmentDate, StartTime: "12:00", ProposedAt: now}

	deps.repo.On("GetByIDForUpdate", mock.Anything, int64(42)).Return(a, nil)
	deps.access.On("RequireCustomer", mock.Anything, customer, int64(20)).Return(nil)
	deps.repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	resp, err := s.DeclineCounterProposal(context.Background(), customer, 42)
	require.NoError(t, err)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "10:00", resp.StartTime)
	assert.Nil(t, resp.CounterProposal)
}

func TestService_Delete(t *testing.T) {
	s, deps := newTestService()
	deps.repo.On("GetByID", mock.Anything, int64(42)).Return(appointment42(domain.StatusCompleted), nil)
	deps.access.On("RequireAdmin", mock.Anything, admin, int64(1)).Return(nil)
	deps.access.On("RequireAdmin", mock.Anything, staff, int64(1)).Return(ErrAccessDenied)
	deps.repo.On("Delete", mock.Anything, int64(42)).Return(nil)

	assert.ErrorIs(t, s.Delete(context.Background(), staff, 42), ErrAccessDenied)
	assert.NoError(t, s.Delete(context.Background(), admin, 42))
	deps.repo.AssertNumberOfCalls(t, "Delete", 1)
}

func TestService_GetByID(t *testing.T) {
	s, deps := newTestService()
	deps.repo.On("GetByID", mock.Anything, int64(42)).Return(appointment42(domain.StatusPending), nil)
	deps.access.On("RequireCustomerOrStaff", mock.Anything, customer, int64(20), int64(1)).Return(nil)
	deps.access.On("RequireCustomerOrStaff", mock.Anything, domain.Principal{UserID: 56, Role: domain.RoleCustomer}, int64(20), int64(1)).Return(ErrAccessDenied)

	resp, err := s.GetByID(context.Background(), customer, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "11:00", resp.EndTime)

	_, err = s.GetByID(context.Background(), domain.Principal{UserID: 56, Role: domain.RoleCustomer}, 42)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestService_GetShopAppointments(t *testing.T) {
	s, deps := newTestService()
	deps.access.On("RequireStaff", mock.Anything, staff, int64(1)).Return(nil)

	date := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	deps.repo.On("GetByShopWithFilter", mock.Anything, mock.MatchedBy(func(f domain.ShopAppointmentsFilter) bool {
		return f.ShopID == 1 && f.StartDate.Equal(date) && f.EndDate.Equal(date) && *f.Status == domain.StatusPending
	})).Return([]*domain.Appointment{appointment42(domain.StatusPending)}, nil)

	resp, err := s.GetShopAppointments(context.Background(), staff, &models.GetShopAppointmentsRequest{
		ShopID: 1,
		Date:   ptr.Ptr("2025-03-01"),
		Status: ptr.Ptr("pending"),
	})
	require.NoError(t, err)
	assert.Len(t, resp.Appointments, 1)

	_, err = s.GetShopAppointments(context.Background(), staff, &models.GetShopAppointmentsRequest{
		ShopID: 1,
		Status: ptr.Ptr("archived"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_GetCustomerAppointments(t *testing.T) {
	s, deps := newTestService()
	deps.access.On("Customer", mock.Anything, int64(20)).Return(&domain.Customer{ID: 20, ShopID: 1}, nil)
	deps.access.On("RequireCustomerOrStaff", mock.Anything, customer, int64(20), int64(1)).Return(nil)
	deps.repo.On("GetByCustomerID", mock.Anything, int64(20), (*domain.AppointmentStatus)(nil)).
		Return([]*domain.Appointment{appointment42(domain.StatusCompleted)}, nil)

	resp, err := s.GetCustomerAppointments(context.Background(), customer, &models.GetCustomerAppointmentsRequest{CustomerID: 20})
	require.NoError(t, err)
	require.Len(t, resp.Appointments, 1)
	assert.Equal(t, "completed", resp.Appointments[0].Status)
}

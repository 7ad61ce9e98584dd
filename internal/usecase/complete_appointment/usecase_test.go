package complete_appointment

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
	operationRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/operation"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
	"github.com/m04kA/SMC-SalonService/pkg/ptr"
)

type mockAppointmentRepo struct{ mock.Mock }

func (m *mockAppointmentRepo) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Appointment), args.Error(1)
}

func (m *mockAppointmentRepo) Update(ctx context.Context, a *domain.Appointment) error {
	return m.Called(ctx, a).Error(0)
}

type mockOperationRepo struct{ mock.Mock }

func (m *mockOperationRepo) Create(ctx context.Context, op *domain.CustomerOperation) (*domain.CustomerOperation, error) {
	args := m.Called(ctx, op)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CustomerOperation), args.Error(1)
}

type mockAccess struct{ mock.Mock }

func (m *mockAccess) RequireStaff(ctx context.Context, p domain.Principal, shopID int64) error {
	return m.Called(ctx, p, shopID).Error(0)
}

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) PublishStatusChanged(ctx context.Context, event events.StatusChanged) error {
	return m.Called(ctx, event).Error(0)
}

// fakeTxManager выполняет функцию без реальной транзакции
type fakeTxManager struct{}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeMetrics struct{ results []string }

func (f *fakeMetrics) ObserveTransition(action, result string) {
	f.results = append(f.results, action+":"+result)
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

var (
	staffUser = domain.Principal{UserID: 7, Role: domain.RoleStaff}
	now       = time.Date(2025, 3, 1, 11, 0, 0, 0, time.UTC)
)

func appointment42(status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		ID:              42,
		ShopID:          1,
		CustomerID:      20,
		StaffID:         ptr.Ptr(int64(3)),
		ServiceID:       ptr.Ptr(int64(5)),
		ServiceName:     "Haircut",
		ServicePrice:    35,
		ServicePoints:   4,
		AppointmentDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		StartTime:       "10:00",
		DurationMinutes: 45,
		Status:          status,
	}
}

func newTestUseCase() (*UseCase, *mockAppointmentRepo, *mockOperationRepo, *mockAccess, *mockPublisher, *fakeMetrics) {
	appointments := new(mockAppointmentRepo)
	operations := new(mockOperationRepo)
	access := new(mockAccess)
	publisher := new(mockPublisher)
	metrics := &fakeMetrics{}

	uc := NewUseCase(appointments, operations, access, &fakeTxManager{}, publisher, metrics, logger.NewNop())
	uc.timeProvider = fixedTime{t: now}
	return uc, appointments, operations, access, publisher, metrics
}

func TestUseCase_Execute_WritesOneOperation(t *testing.T) {
	uc, appointments, operations, access, publisher, metrics := newTestUseCase()

	appointments.On("GetByIDForUpdate", mock.Anything, int64(42)).Return(appointment42(domain.StatusConfirmed), nil)
	access.On("RequireStaff", mock.Anything, staffUser, int64(1)).Return(nil)
	appointments.On("Update", mock.Anything, mock.MatchedBy(func(a *domain.Appointment) bool {
		return a.Status == domain.StatusCompleted && a.CompletedAt != nil && a.CompletedAt.Equal(now)
	})).Return(nil)
	operations.On("Create", mock.Anything, mock.MatchedBy(func(op *domain.CustomerOperation) bool {
		return op.AppointmentID == 42 && op.ServiceName == "Haircut" && op.Amount == 35 && op.Points == 4
	})).Return(&domain.CustomerOperation{ID: 100, AppointmentID: 42, ServiceName: "Haircut", Amount: 35, Points: 4}, nil)
	publisher.On("PublishStatusChanged", mock.Anything, mock.MatchedBy(func(e events.StatusChanged) bool {
		return e.From == domain.StatusConfirmed && e.To == domain.StatusCompleted
	})).Return(nil)

	resp, err := uc.Execute(context.Background(), &Request{Principal: staffUser, AppointmentID: 42})
	require.NoError(t, err)

	assert.Equal(t, "completed", resp.Appointment.Status)
	assert.Equal(t, int64(100), resp.Operation.ID)
	assert.Equal(t, 35.0, resp.Operation.Amount)
	operations.AssertNumberOfCalls(t, "Create", 1)
	assert.Equal(t, []string{"complete:ok"}, metrics.results)
}

func TestUseCase_Execute_Overrides(t *testing.T) {
	uc, appointments, operations, access, publisher, _ := newTestUseCase()
	notes := "added toning"

	appointments.On("GetByIDForUpdate", mock.Anything, int64(42)).Return(appointment42(domain.StatusConfirmed), nil)
	access.On("RequireStaff", mock.Anything, staffUser, int64(1)).Return(nil)
	appointments.On("Update", mock.Anything, mock.Anything).Return(nil)
	operations.On("Create", mock.Anything, mock.MatchedBy(func(op *domain.CustomerOperation) bool {
		return op.Amount == 50 && op.Points == 6 && op.Notes != nil && *op.Notes == notes
	})).Return(&domain.CustomerOperation{ID: 101, Amount: 50, Points: 6, Notes: &notes}, nil)
	publisher.On("PublishStatusChanged", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	resp, err := uc.Execute(context.Background(), &Request{
		Principal:     staffUser,
		AppointmentID: 42,
		Amount:        ptr.Ptr(50.0),
		Points:        ptr.Ptr(6),
		Notes:         &notes,
	})
	require.NoError(t, err)
	assert.Equal(t, 50.0, resp.Operation.Amount)
}

func TestUseCase_Execute_Rejected(t *testing.T) {
	for _, status := range []domain.AppointmentStatus{domain.StatusPending, domain.StatusCanceled, domain.StatusCompleted} {
		t.Run(string(status), func(t *testing.T) {
			uc, appointments, operations, access, publisher, metrics := newTestUseCase()
			appointments.On("GetByIDForUpdate", mock.Anything, int64(42)).Return(appointment42(status), nil)
			access.On("RequireStaff", mock.Anything, staffUser, int64(1)).Return(nil)

			_, err := uc.Execute(context.Background(), &Request{Principal: staffUser, AppointmentID: 42})
			assert.ErrorIs(t, err, ErrInvalidTransition)
			assert.ErrorIs(t, err, domain.ErrInvalidTransition)

			appointments.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
			operations.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			publisher.AssertNotCalled(t, "PublishStatusChanged", mock.Anything, mock.Anything)
			assert.Equal(t, []string{"complete:rejected"}, metrics.results)
		})
	}
}

func TestUseCase_Execute_OperationAlreadyExists(t *testing.T) {
	uc, appointments, operations, access, publisher, _ := newTestUseCase()
	appointments.On("GetByIDForUpdate", mock.Anything, int64(42)).Return(appointment42(domain.StatusConfirmed), nil)
	access.On("RequireStaff", mock.Anything, staffUser, int64(1)).Return(nil)
	appointments.On("Update", mock.Anything, mock.Anything).Return(nil)
	operations.On("Create", mock.Anything, mock.Anything).Return(nil, operationRepo.ErrOperationExists)

	_, err := uc.Execute(context.Background(), &Request{Principal: staffUser, AppointmentID: 42})
	assert.ErrorIs(t, err, ErrAlreadyRecorded)
	publisher.AssertNotCalled(t, "PublishStatusChanged", mock.Anything, mock.Anything)
}

func TestUseCase_Execute_NotFoundAndDenied(t *testing.T) {
	uc, appointments, _, access, _, _ := newTestUseCase()
	appointments.On("GetByIDForUpdate", mock.Anything, int64(404)).Return(nil, appointmentRepo.ErrAppointmentNotFound)
	appointments.On("GetByIDForUpdate", mock.Anything, int64(42)).Return(appointment42(domain.StatusConfirmed), nil)
	customer := domain.Principal{UserID: 55, Role: domain.RoleCustomer}
	access.On("RequireStaff", mock.Anything, customer, int64(1)).Return(ErrAccessDenied)

	_, err := uc.Execute(context.Background(), &Request{Principal: staffUser, AppointmentID: 404})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)

	_, err = uc.Execute(context.Background(), &Request{Principal: customer, AppointmentID: 42})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUseCase_Execute_UpdateFails(t *testing.T) {
	uc, appointments, operations, access, _, metrics := newTestUseCase()
	appointments.On("GetByIDForUpdate", mock.Anything, int64(42)).Return(appointment42(domain.StatusConfirmed), nil)
	access.On("RequireStaff", mock.Anything, staffUser, int64(1)).Return(nil)
	appointments.On("Update", mock.Anything, mock.Anything).Return(errors.New("connection reset"))

	_, err := uc.Execute(context.Background(), &Request{Principal: staffUser, AppointmentID: 42})
	assert.ErrorIs(t, err, ErrInternal)
	operations.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	assert.Equal(t, []string{"complete:error"}, metrics.results)
}

func TestUseCase_Execute_Validation(t *testing.T) {
	uc, appointments, _, _, _, _ := newTestUseCase()

	_, err := uc.Execute(context.Background(), &Request{Principal: staffUser, AppointmentID: 42, Amount: ptr.Ptr(-1.0)})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = uc.Execute(context.Background(), &Request{Principal: staffUser, AppointmentID: 42, Points: ptr.Ptr(-2)})
	assert.ErrorIs(t, err, ErrInvalidInput)
	appointments.AssertNotCalled(t, "GetByIDForUpdate", mock.Anything, mock.Anything)
}

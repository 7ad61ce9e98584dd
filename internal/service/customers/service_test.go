package customers

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	customerRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/customer"
	operationRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/operation"
	"github.com/m04kA/SMC-SalonService/internal/service/customers/models"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
	"github.com/m04kA/SMC-SalonService/pkg/ptr"
)

type mockCustomerRepo struct{ mock.Mock }

func (m *mockCustomerRepo) Create(ctx context.Context, c *domain.Customer) (*domain.Customer, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *mockCustomerRepo) Search(ctx context.Context, shopID int64, q string, limit int) ([]*domain.Customer, error) {
	args := m.Called(ctx, shopID, q, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Customer), args.Error(1)
}

func (m *mockCustomerRepo) GetStats(ctx context.Context, customerID int64) (*domain.CustomerStats, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CustomerStats), args.Error(1)
}

type mockOperationRepo struct{ mock.Mock }

func (m *mockOperationRepo) GetByID(ctx context.Context, id int64) (*domain.CustomerOperation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CustomerOperation), args.Error(1)
}

func (m *mockOperationRepo) GetByIDForUpdate(ctx context.Context, id int64) (*domain.CustomerOperation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CustomerOperation), args.Error(1)
}

func (m *mockOperationRepo) GetByCustomerID(ctx context.Context, customerID int64) ([]*domain.CustomerOperation, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.CustomerOperation), args.Error(1)
}

func (m *mockOperationRepo) UpdateNotes(ctx context.Context, id int64, notes *string) error {
	return m.Called(ctx, id, notes).Error(0)
}

func (m *mockOperationRepo) CountPhotos(ctx context.Context, operationID int64) (int, error) {
	args := m.Called(ctx, operationID)
	return args.Int(0), args.Error(1)
}

func (m *mockOperationRepo) AddPhoto(ctx context.Context, photo *domain.OperationPhoto) (*domain.OperationPhoto, error) {
	args := m.Called(ctx, photo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OperationPhoto), args.Error(1)
}

func (m *mockOperationRepo) DeletePhoto(ctx context.Context, operationID int64, photoID string) error {
	return m.Called(ctx, operationID, photoID).Error(0)
}

type mockAccess struct{ mock.Mock }

func (m *mockAccess) Shop(ctx context.Context, shopID int64) (*domain.Shop, error) {
	args := m.Called(ctx, shopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Shop), args.Error(1)
}

func (m *mockAccess) Customer(ctx context.Context, customerID int64) (*domain.Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *mockAccess) RequireStaff(ctx context.Context, p domain.Principal, shopID int64) error {
	return m.Called(ctx, p, shopID).Error(0)
}

func (m *mockAccess) RequireCustomerOrStaff(ctx context.Context, p domain.Principal, customerID, shopID int64) error {
	return m.Called(ctx, p, customerID, shopID).Error(0)
}

type txKey struct{}

// fakeTxManager помечает контекст, чтобы проверить, что вызовы идут внутри транзакции
type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(context.WithValue(ctx, txKey{}, true))
}

func inTx() interface{} {
	return mock.MatchedBy(func(ctx context.Context) bool {
		return ctx.Value(txKey{}) != nil
	})
}

var (
	staff    = domain.Principal{UserID: 7, Role: domain.RoleStaff}
	customer = domain.Principal{UserID: 55, Role: domain.RoleCustomer}
)

func newTestService() (*Service, *mockCustomerRepo, *mockOperationRepo, *mockAccess) {
	customers := new(mockCustomerRepo)
	operations := new(mockOperationRepo)
	access := new(mockAccess)
	return NewService(customers, operations, access, &fakeTxManager{}, logger.NewNop()), customers, operations, access
}

func TestService_Create_ByStaff(t *testing.T) {
	s, customers, _, access := newTestService()
	access.On("RequireStaff", mock.Anything, staff, int64(1)).Return(nil)
	customers.On("Create", mock.Anything, mock.MatchedBy(func(c *domain.Customer) bool {
		return c.FullName == "Anna Petrova" && c.UserID == nil
	})).Return(&domain.Customer{ID: 20, ShopID: 1, FullName: "Anna Petrova", Phone: "+100"}, nil)

	resp, err := s.Create(context.Background(), staff, 1, &models.CreateCustomerRequest{FullName: " Anna Petrova ", Phone: "+100"})
	require.NoError(t, err)
	assert.Equal(t, int64(20), resp.ID)
	assert.Equal(t, 0, resp.Stats.Visits)
}

func TestService_Create_SelfRegistration(t *testing.T) {
	s, customers, _, access := newTestService()
	access.On("Shop", mock.Anything, int64(1)).Return(&domain.Shop{ID: 1}, nil)
	customers.On("Create", mock.Anything, mock.MatchedBy(func(c *domain.Customer) bool {
		return c.UserID != nil && *c.UserID == 55
	})).Return(&domain.Customer{ID: 21, ShopID: 1, UserID: ptr.Ptr(int64(55))}, nil)

	_, err := s.Create(context.Background(), customer, 1, &models.CreateCustomerRequest{FullName: "Me", Phone: "+1"})
	require.NoError(t, err)

	_, err = s.Create(context.Background(), customer, 1, &models.CreateCustomerRequest{UserID: ptr.Ptr(int64(99)), FullName: "Other", Phone: "+2"})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestService_Create_Duplicate(t *testing.T) {
	s, customers, _, access := newTestService()
	access.On("RequireStaff", mock.Anything, staff, int64(1)).Return(nil)
	customers.On("Create", mock.Anything, mock.Anything).Return(nil, customerRepo.ErrCustomerExists)

	_, err := s.Create(context.Background(), staff, 1, &models.CreateCustomerRequest{FullName: "A", Phone: "+1"})
	assert.ErrorIs(t, err, ErrCustomerExists)

	_, err = s.Create(context.Background(), staff, 1, &models.CreateCustomerRequest{FullName: "A"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_Get_WithStats(t *testing.T) {
	s, customers, _, access := newTestService()
	last := time.Date(2025, 3, 1, 11, 0, 0, 0, time.UTC)
	access.On("Customer", mock.Anything, int64(20)).Return(&domain.Customer{ID: 20, ShopID: 1, UserID: ptr.Ptr(int64(55))}, nil)
	access.On("RequireCustomerOrStaff", mock.Anything, customer, int64(20), int64(1)).Return(nil)
	customers.On("GetStats", mock.Anything, int64(20)).
		Return(&domain.CustomerStats{Visits: 3, TotalSpent: 120, TotalPoints: 12, LastVisitAt: &last}, nil)

	resp, err := s.Get(context.Background(), customer, 20)
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Stats.Visits)
	assert.Equal(t, 120.0, resp.Stats.TotalSpent)
	assert.Equal(t, &last, resp.Stats.LastVisitAt)
}

func TestService_Search(t *testing.T) {
	s, customers, _, access := newTestService()
	access.On("RequireStaff", mock.Anything, staff, int64(1)).Return(nil)
	customers.On("Search", mock.Anything, int64(1), "ann", searchLimit).
		Return([]*domain.Customer{{ID: 20, FullName: "Anna"}}, nil)

	resp, err := s.Search(context.Background(), staff, 1, "ann")
	require.NoError(t, err)
	assert.Len(t, resp.Customers, 1)
}

func TestService_GetOperations(t *testing.T) {
	s, _, operations, access := newTestService()
	access.On("Customer", mock.Anything, int64(20)).Return(&domain.Customer{ID: 20, ShopID: 1}, nil)
	access.On("RequireCustomerOrStaff", mock.Anything, staff, int64(20), int64(1)).Return(nil)
	operations.On("GetByCustomerID", mock.Anything, int64(20)).Return([]*domain.CustomerOperation{
		{ID: 1, AppointmentID: 42, ServiceName: "Haircut", Amount: 35, Photos: []domain.OperationPhoto{{ID: "p1", StorageKey: "shop1/a.jpg"}}},
		{ID: 2, AppointmentID: 43, ServiceName: "Coloring", Amount: 80},
	}, nil)

	resp, err := s.GetOperations(context.Background(), staff, 20)
	require.NoError(t, err)
	require.Len(t, resp.Operations, 2)
	assert.Len(t, resp.Operations[0].Photos, 1)
	assert.NotNil(t, resp.Operations[1].Photos)
}

func TestService_UpdateOperation(t *testing.T) {
	s, _, operations, access := newTestService()
	notes := "used a lighter shade"
	op := &domain.CustomerOperation{ID: 1, ShopID: 1, AppointmentID: 42}

	operations.On("GetByID", mock.Anything, int64(1)).Return(op, nil).Once()
	operations.On("GetByID", mock.Anything, int64(1)).Return(&domain.CustomerOperation{ID: 1, ShopID: 1, AppointmentID: 42, Notes: &notes}, nil).Once()
	access.On("RequireStaff", mock.Anything, staff, int64(1)).Return(nil)
	operations.On("UpdateNotes", mock.Anything, int64(1), &notes).Return(nil)

	resp, err := s.UpdateOperation(context.Background(), staff, 1, &models.UpdateOperationRequest{Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, &notes, resp.Notes)
}

func TestService_UpdateOperation_NotFound(t *testing.T) {
	s, _, operations, _ := newTestService()
	operations.On("GetByID", mock.Anything, int64(9)).Return(nil, operationRepo.ErrOperationNotFound)

	_, err := s.UpdateOperation(context.Background(), staff, 9, &models.UpdateOperationRequest{})
	assert.ErrorIs(t, err, ErrOperationNotFound)
}

func TestService_AddPhoto(t *testing.T) {
	s, _, operations, access := newTestService()
	operations.On("GetByIDForUpdate", inTx(), int64(1)).Return(&domain.CustomerOperation{ID: 1, ShopID: 1}, nil)
	access.On("RequireStaff", mock.Anything, staff, int64(1)).Return(nil)
	operations.On("CountPhotos", inTx(), int64(1)).Return(0, nil)
	operations.On("AddPhoto", inTx(), mock.MatchedBy(func(p *domain.OperationPhoto) bool {
		_, err := uuid.Parse(p.ID)
		return err == nil && p.StorageKey == "shop1/after.jpg"
	})).Return(&domain.OperationPhoto{ID: "0b0f9a0e-7c1e-4a55-9a49-1b4b0f2d7f10", OperationID: 1, StorageKey: "shop1/after.jpg"}, nil)

	resp, err := s.AddPhoto(context.Background(), staff, 1, &models.AddPhotoRequest{StorageKey: "shop1/after.jpg"})
	require.NoError(t, err)
	assert.Equal(t, "shop1/after.jpg", resp.StorageKey)
	assert.Equal(t, 1, s.txManager.(*fakeTxManager).calls)
	operations.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestService_AddPhoto_Limit(t *testing.T) {
	s, _, operations, access := newTestService()
	operations.On("GetByIDForUpdate", inTx(), int64(1)).Return(&domain.CustomerOperation{ID: 1, ShopID: 1}, nil)
	access.On("RequireStaff", mock.Anything, staff, int64(1)).Return(nil)
	operations.On("CountPhotos", inTx(), int64(1)).Return(domain.MaxPhotosPerOperation, nil)

	_, err := s.AddPhoto(context.Background(), staff, 1, &models.AddPhotoRequest{StorageKey: "k"})
	assert.ErrorIs(t, err, ErrTooManyPhotos)
	operations.AssertNotCalled(t, "AddPhoto", mock.Anything, mock.Anything)
}

// Лимит считается под блокировкой строки операции: подсчёт и вставка
// выполняются в одной транзакции после GetByIDForUpdate.
func TestService_AddPhoto_LimitCheckedUnderLock(t *testing.T) {
	s, _, operations, access := newTestService()
	var order []string
	operations.On("GetByIDForUpdate", inTx(), int64(1)).
		Run(func(mock.Arguments) { order = append(order, "lock") }).
		Return(&domain.CustomerOperation{ID: 1, ShopID: 1}, nil)
	access.On("RequireStaff", mock.Anything, staff, int64(1)).Return(nil)
	operations.On("CountPhotos", inTx(), int64(1)).
		Run(func(mock.Arguments) { order = append(order, "count") }).
		Return(domain.MaxPhotosPerOperation-1, nil).Once()
	operations.On("CountPhotos", inTx(), int64(1)).
		Run(func(mock.Arguments) { order = append(order, "count") }).
		Return(domain.MaxPhotosPerOperation, nil).Once()
	operations.On("AddPhoto", inTx(), mock.Anything).
		Run(func(mock.Arguments) { order = append(order, "insert") }).
		Return(&domain.OperationPhoto{ID: "0b0f9a0e-7c1e-4a55-9a49-1b4b0f2d7f10", OperationID: 1, StorageKey: "k"}, nil).Once()

	_, err := s.AddPhoto(context.Background(), staff, 1, &models.AddPhotoRequest{StorageKey: "k"})
	require.NoError(t, err)
	_, err = s.AddPhoto(context.Background(), staff, 1, &models.AddPhotoRequest{StorageKey: "k"})
	assert.ErrorIs(t, err, ErrTooManyPhotos)

	assert.Equal(t, []string{"lock", "count", "insert", "lock", "count"}, order)
	assert.Equal(t, 2, s.txManager.(*fakeTxManager).calls)
	operations.AssertNumberOfCalls(t, "AddPhoto", 1)
}

func TestService_AddPhoto_OperationNotFound(t *testing.T) {
	s, _, operations, _ := newTestService()
	operations.On("GetByIDForUpdate", inTx(), int64(9)).Return(nil, operationRepo.ErrOperationNotFound)

	_, err := s.AddPhoto(context.Background(), staff, 9, &models.AddPhotoRequest{StorageKey: "k"})
	assert.ErrorIs(t, err, ErrOperationNotFound)
	operations.AssertNotCalled(t, "CountPhotos", mock.Anything, mock.Anything)
}

func TestService_RemovePhoto(t *testing.T) {
	s, _, operations, access := newTestService()
	photoID := "0b0f9a0e-7c1e-4a55-9a49-1b4b0f2d7f10"
	operations.On("GetByID", mock.Anything, int64(1)).Return(&domain.CustomerOperation{ID: 1, ShopID: 1}, nil)
	access.On("RequireStaff", mock.Anything, staff, int64(1)).Return(nil)
	operations.On("DeletePhoto", mock.Anything, int64(1), photoID).Return(operationRepo.ErrPhotoNotFound).Once()
	operations.On("DeletePhoto", mock.Anything, int64(1), photoID).Return(nil).Once()

	assert.ErrorIs(t, s.RemovePhoto(context.Background(), staff, 1, photoID), ErrPhotoNotFound)
	assert.NoError(t, s.RemovePhoto(context.Background(), staff, 1, photoID))
	assert.ErrorIs(t, s.RemovePhoto(context.Background(), staff, 1, "not-a-uuid"), ErrInvalidInput)
}

package staff

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	staffRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/staff"
	"github.com/m04kA/SMC-SalonService/internal/service/staff/models"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
	"github.com/m04kA/SMC-SalonService/pkg/ptr"
)

type mockStaffRepo struct{ mock.Mock }

func (m *mockStaffRepo) GetByShopID(ctx context.Context, shopID int64, includeInactive bool) ([]*domain.Staff, error) {
	args := m.Called(ctx, shopID, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Staff), args.Error(1)
}

func (m *mockStaffRepo) GetByID(ctx context.Context, id int64) (*domain.Staff, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Staff), args.Error(1)
}

func (m *mockStaffRepo) Create(ctx context.Context, s *domain.Staff) (*domain.Staff, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Staff), args.Error(1)
}

func (m *mockStaffRepo) Update(ctx context.Context, s *domain.Staff) error {
	return m.Called(ctx, s).Error(0)
}

type mockAccess struct{ mock.Mock }

func (m *mockAccess) RequireAdmin(ctx context.Context, p domain.Principal, shopID int64) error {
	return m.Called(ctx, p, shopID).Error(0)
}

func (m *mockAccess) RequireStaff(ctx context.Context, p domain.Principal, shopID int64) error {
	return m.Called(ctx, p, shopID).Error(0)
}

var (
	admin  = domain.Principal{UserID: 1, Role: domain.RoleAdmin}
	worker = domain.Principal{UserID: 7, Role: domain.RoleStaff}
)

func newTestService() (*Service, *mockStaffRepo, *mockAccess) {
	repo := new(mockStaffRepo)
	access := new(mockAccess)
	return NewService(repo, access, logger.NewNop()), repo, access
}

func validRequest() *models.StaffRequest {
	return &models.StaffRequest{
		UserID:            7,
		FullName:          "Olga Sokolova",
		PayBasis:          "commission",
		CommissionPercent: 40,
		HiredAt:           ptr.Ptr("2024-09-01"),
	}
}

func TestService_Create(t *testing.T) {
	s, repo, access := newTestService()
	access.On("RequireAdmin", mock.Anything, admin, int64(1)).Return(nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(m *domain.Staff) bool {
		return *m.ShopID == 1 && m.PayBasis == domain.PayBasisCommission && m.IsActive && m.HiredAt != nil
	})).Return(&domain.Staff{ID: 3, ShopID: ptr.Ptr(int64(1)), UserID: 7, FullName: "Olga Sokolova", PayBasis: domain.PayBasisCommission, CommissionPercent: 40, IsActive: true}, nil)

	resp, err := s.Create(context.Background(), admin, 1, validRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.ID)
	assert.Equal(t, "commission", resp.PayBasis)
}

func TestService_Create_Validation(t *testing.T) {
	s, _, access := newTestService()
	access.On("RequireAdmin", mock.Anything, admin, int64(1)).Return(nil)

	cases := map[string]func(r *models.StaffRequest){
		"unknown pay basis":   func(r *models.StaffRequest) { r.PayBasis = "barter" },
		"commission too high": func(r *models.StaffRequest) { r.CommissionPercent = 101 },
		"negative commission": func(r *models.StaffRequest) { r.CommissionPercent = -1 },
		"empty name":          func(r *models.StaffRequest) { r.FullName = "  " },
		"bad hire date":       func(r *models.StaffRequest) { r.HiredAt = ptr.Ptr("01.09.2024") },
		"no user":             func(r *models.StaffRequest) { r.UserID = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := validRequest()
			mutate(req)
			_, err := s.Create(context.Background(), admin, 1, req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestService_Create_Duplicate(t *testing.T) {
	s, repo, access := newTestService()
	access.On("RequireAdmin", mock.Anything, admin, int64(1)).Return(nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil, staffRepo.ErrStaffExists)

	_, err := s.Create(context.Background(), admin, 1, validRequest())
	assert.ErrorIs(t, err, ErrStaffExists)
}

func TestService_Create_NotAdmin(t *testing.T) {
	s, repo, access := newTestService()
	access.On("RequireAdmin", mock.Anything, worker, int64(1)).Return(ErrAccessDenied)

	_, err := s.Create(context.Background(), worker, 1, validRequest())
	assert.ErrorIs(t, err, ErrAccessDenied)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Get(t *testing.T) {
	s, repo, access := newTestService()
	repo.On("GetByID", mock.Anything, int64(3)).Return(&domain.Staff{ID: 3, ShopID: ptr.Ptr(int64(1)), UserID: 7}, nil)
	repo.On("GetByID", mock.Anything, int64(4)).Return(&domain.Staff{ID: 4, UserID: 8}, nil)
	repo.On("GetByID", mock.Anything, int64(5)).Return(nil, staffRepo.ErrStaffNotFound)
	access.On("RequireStaff", mock.Anything, admin, int64(1)).Return(nil)

	_, err := s.Get(context.Background(), worker, 3)
	require.NoError(t, err, "own profile")
	_, err = s.Get(context.Background(), admin, 3)
	require.NoError(t, err)
	_, err = s.Get(context.Background(), worker, 4)
	assert.ErrorIs(t, err, ErrAccessDenied)
	_, err = s.Get(context.Background(), admin, 5)
	assert.ErrorIs(t, err, ErrStaffNotFound)
}

func TestService_List(t *testing.T) {
	s, repo, access := newTestService()
	access.On("RequireStaff", mock.Anything, worker, int64(1)).Return(nil)
	access.On("RequireAdmin", mock.Anything, worker, int64(1)).Return(ErrAccessDenied)
	repo.On("GetByShopID", mock.Anything, int64(1), false).Return([]*domain.Staff{{ID: 3}, {ID: 4}}, nil)

	resp, err := s.List(context.Background(), worker, 1, false)
	require.NoError(t, err)
	assert.Len(t, resp.Staff, 2)

	_, err = s.List(context.Background(), worker, 1, true)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestService_Update(t *testing.T) {
	s, repo, access := newTestService()
	repo.On("GetByID", mock.Anything, int64(3)).Return(&domain.Staff{ID: 3, ShopID: ptr.Ptr(int64(1)), UserID: 7, IsActive: true, PayBasis: domain.PayBasisSalary}, nil)
	access.On("RequireAdmin", mock.Anything, admin, int64(1)).Return(nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(m *domain.Staff) bool {
		return !m.IsActive && m.PayBasis == domain.PayBasisHourly && m.BaseRate == 15
	})).Return(nil)

	req := validRequest()
	req.PayBasis = "hourly"
	req.BaseRate = 15
	req.CommissionPercent = 0
	req.IsActive = ptr.Ptr(false)

	resp, err := s.Update(context.Background(), admin, 3, req)
	require.NoError(t, err)
	assert.False(t, resp.IsActive)
	assert.Equal(t, int64(7), resp.UserID, "user id is not changed by update")
}

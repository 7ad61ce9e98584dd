package reports

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/reports/models"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
	"github.com/m04kA/SMC-SalonService/pkg/ptr"
)

type mockReportRepo struct{ mock.Mock }

func (m *mockReportRepo) GetStatusCounts(ctx context.Context, shopID int64, period domain.ReportPeriod) ([]domain.StatusCount, error) {
	args := m.Called(ctx, shopID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StatusCount), args.Error(1)
}

func (m *mockReportRepo) GetTotals(ctx context.Context, shopID int64, period domain.ReportPeriod) (*domain.RevenueTotals, error) {
	args := m.Called(ctx, shopID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RevenueTotals), args.Error(1)
}

func (m *mockReportRepo) GetTopServices(ctx context.Context, shopID int64, period domain.ReportPeriod, limit int) ([]domain.ServiceRevenue, error) {
	args := m.Called(ctx, shopID, period, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ServiceRevenue), args.Error(1)
}

func (m *mockReportRepo) GetStaffRevenue(ctx context.Context, shopID int64, period domain.ReportPeriod) ([]domain.StaffRevenue, error) {
	args := m.Called(ctx, shopID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StaffRevenue), args.Error(1)
}

type mockAccess struct{ mock.Mock }

func (m *mockAccess) RequireAdmin(ctx context.Context, p domain.Principal, shopID int64) error {
	return m.Called(ctx, p, shopID).Error(0)
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

var admin = domain.Principal{UserID: 1, Role: domain.RoleAdmin}

func newTestService() (*Service, *mockReportRepo, *mockAccess) {
	repo := new(mockReportRepo)
	access := new(mockAccess)
	s := NewService(repo, access, logger.NewNop())
	s.timeProvider = fixedTime{t: time.Date(2025, 3, 31, 15, 0, 0, 0, time.UTC)}
	return s, repo, access
}

func TestService_GetReport(t *testing.T) {
	s, repo, access := newTestService()
	period := domain.ReportPeriod{
		From: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
	}

	access.On("RequireAdmin", mock.Anything, admin, int64(1)).Return(nil)
	repo.On("GetStatusCounts", mock.Anything, int64(1), period).Return([]domain.StatusCount{
		{Status: domain.StatusCompleted, Count: 12},
		{Status: domain.StatusCanceled, Count: 2},
	}, nil)
	repo.On("GetTotals", mock.Anything, int64(1), period).Return(&domain.RevenueTotals{Operations: 12, Revenue: 540, PointsIssued: 54}, nil)
	repo.On("GetTopServices", mock.Anything, int64(1), period, domain.TopServicesLimit).Return([]domain.ServiceRevenue{
		{ServiceID: ptr.Ptr(int64(5)), ServiceName: "Haircut", Operations: 10, Revenue: 350},
	}, nil)
	repo.On("GetStaffRevenue", mock.Anything, int64(1), period).Return([]domain.StaffRevenue{
		{StaffID: 3, FullName: "Olga", CommissionPercent: 40, Operations: 8, Revenue: 333.33},
	}, nil)

	resp, err := s.GetReport(context.Background(), admin, &models.GetReportRequest{
		ShopID: 1,
		From:   ptr.Ptr("2025-03-01"),
		To:     ptr.Ptr("2025-03-31"),
	})
	require.NoError(t, err)

	assert.Equal(t, "2025-03-01", resp.From)
	require.Len(t, resp.Appointments, 4)
	assert.Equal(t, models.StatusCountResponse{Status: "pending", Count: 0}, resp.Appointments[0])
	assert.Equal(t, models.StatusCountResponse{Status: "completed", Count: 12}, resp.Appointments[3])
	assert.Equal(t, 540.0, resp.Revenue)
	assert.Equal(t, 54, resp.PointsIssued)
	require.Len(t, resp.Staff, 1)
	assert.Equal(t, 133.33, resp.Staff[0].Commission)
}

func TestService_GetReport_DefaultPeriod(t *testing.T) {
	s, repo, access := newTestService()
	period := domain.ReportPeriod{
		From: time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
	}

	access.On("RequireAdmin", mock.Anything, admin, int64(1)).Return(nil)
	repo.On("GetStatusCounts", mock.Anything, int64(1), period).Return([]domain.StatusCount{}, nil)
	repo.On("GetTotals", mock.Anything, int64(1), period).Return(&domain.RevenueTotals{}, nil)
	repo.On("GetTopServices", mock.Anything, int64(1), period, domain.TopServicesLimit).Return([]domain.ServiceRevenue{}, nil)
	repo.On("GetStaffRevenue", mock.Anything, int64(1), period).Return([]domain.StaffRevenue{}, nil)

	resp, err := s.GetReport(context.Background(), admin, &models.GetReportRequest{ShopID: 1})
	require.NoError(t, err)
	assert.Equal(t, "2025-03-02", resp.From)
	assert.NotNil(t, resp.TopServices)
}

func TestService_GetReport_InvalidPeriod(t *testing.T) {
	s, _, access := newTestService()

	cases := map[string]*models.GetReportRequest{
		"bad from":  {ShopID: 1, From: ptr.Ptr("03/01/2025")},
		"to < from": {ShopID: 1, From: ptr.Ptr("2025-03-10"), To: ptr.Ptr("2025-03-01")},
		"too long":  {ShopID: 1, From: ptr.Ptr("2023-01-01"), To: ptr.Ptr("2025-01-01")},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := s.GetReport(context.Background(), admin, req)
			assert.ErrorIs(t, err, ErrInvalidPeriod)
		})
	}
	access.AssertNotCalled(t, "RequireAdmin", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_GetReport_RepositoryError(t *testing.T) {
	s, repo, access := newTestService()
	access.On("RequireAdmin", mock.Anything, admin, int64(1)).Return(nil)
	repo.On("GetStatusCounts", mock.Anything, int64(1), mock.Anything).Return(nil, errors.New("connection reset"))

	_, err := s.GetReport(context.Background(), admin, &models.GetReportRequest{ShopID: 1})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestService_GetReport_AccessDenied(t *testing.T) {
	s, repo, access := newTestService()
	staff := domain.Principal{UserID: 7, Role: domain.RoleStaff}
	access.On("RequireAdmin", mock.Anything, staff, int64(1)).Return(ErrAccessDenied)

	_, err := s.GetReport(context.Background(), staff, &models.GetReportRequest{ShopID: 1})
	assert.ErrorIs(t, err, ErrAccessDenied)
	repo.AssertNotCalled(t, "GetTotals", mock.Anything, mock.Anything, mock.Anything)
}

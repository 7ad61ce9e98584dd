package report

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/psqlbuilder"
)

var (
	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("report.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("report.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("report.repository: failed to scan row")
)

// Repository агрегирующие запросы для отчётов салона.
// Записи группируются по appointment_date, операции по дате performed_at.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория отчётов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetStatusCounts количество записей по статусам за период
func (r *Repository) GetStatusCounts(ctx context.Context, shopID int64, period domain.ReportPeriod) ([]domain.StatusCount, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("status", "COUNT(*)").
		From("appointments").
		Where(squirrel.Eq{"shop_id": shopID}).
		Where(squirrel.GtOrEq{"appointment_date": period.From}).
		Where(squirrel.LtOrEq{"appointment_date": period.To}).
		GroupBy("status").
		OrderBy("status ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetStatusCounts - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetStatusCounts - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make([]domain.StatusCount, 0)
	for rows.Next() {
		var c domain.StatusCount
		if err := rows.Scan(&c.Status, &c.Count); err != nil {
			return nil, fmt.Errorf("%w: GetStatusCounts - scan row: %v", ErrScanRow, err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetStatusCounts - rows error: %v", ErrScanRow, err)
	}

	return counts, nil
}

// GetTotals выручка, количество операций и начисленные баллы за период
func (r *Repository) GetTotals(ctx context.Context, shopID int64, period domain.ReportPeriod) (*domain.RevenueTotals, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := operationsInPeriod(
		psqlbuilder.Select("COUNT(*)", "COALESCE(SUM(amount), 0)", "COALESCE(SUM(points), 0)").
			From("customer_operations"),
		"", shopID, period,
	).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetTotals - build select query: %v", ErrBuildQuery, err)
	}

	var totals domain.RevenueTotals
	err = executor.QueryRowContext(ctx, query, args...).Scan(&totals.Operations, &totals.Revenue, &totals.PointsIssued)
	if err != nil {
		return nil, fmt.Errorf("%w: GetTotals - scan totals: %v", ErrScanRow, err)
	}

	return &totals, nil
}

// GetTopServices услуги с наибольшей выручкой за период
func (r *Repository) GetTopServices(ctx context.Context, shopID int64, period domain.ReportPeriod, limit int) ([]domain.ServiceRevenue, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := operationsInPeriod(
		psqlbuilder.Select("service_id", "service_name", "COUNT(*)", "SUM(amount) AS revenue").
			From("customer_operations"),
		"", shopID, period,
	).
		GroupBy("service_id", "service_name").
		OrderBy("revenue DESC", "service_name ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetTopServices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetTopServices - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	services := make([]domain.ServiceRevenue, 0)
	for rows.Next() {
		var s domain.ServiceRevenue
		if err := rows.Scan(&s.ServiceID, &s.ServiceName, &s.Operations, &s.Revenue); err != nil {
			return nil, fmt.Errorf("%w: GetTopServices - scan row: %v", ErrScanRow, err)
		}
		services = append(services, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetTopServices - rows error: %v", ErrScanRow, err)
	}

	return services, nil
}

// GetStaffRevenue выручка по мастерам салона за период с их процентом комиссии
func (r *Repository) GetStaffRevenue(ctx context.Context, shopID int64, period domain.ReportPeriod) ([]domain.StaffRevenue, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := operationsInPeriod(
		psqlbuilder.Select(
			"s.id",
			"s.full_name",
			"s.commission_percent",
			"COUNT(o.id)",
			"COALESCE(SUM(o.amount), 0) AS revenue",
		).
			From("customer_operations o").
			Join("staff s ON s.id = o.staff_id"),
		"o.", shopID, period,
	).
		GroupBy("s.id", "s.full_name", "s.commission_percent").
		OrderBy("revenue DESC", "s.full_name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetStaffRevenue - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetStaffRevenue - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	staff := make([]domain.StaffRevenue, 0)
	for rows.Next() {
		var s domain.StaffRevenue
		if err := rows.Scan(&s.StaffID, &s.FullName, &s.CommissionPercent, &s.Operations, &s.Revenue); err != nil {
			return nil, fmt.Errorf("%w: GetStaffRevenue - scan row: %v", ErrScanRow, err)
		}
		staff = append(staff, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetStaffRevenue - rows error: %v", ErrScanRow, err)
	}

	return staff, nil
}

// operationsInPeriod ограничивает выборку операций салоном и периодом.
// Верхняя граница исключающая: операции последнего дня периода попадают в отчёт.
func operationsInPeriod(b squirrel.SelectBuilder, prefix string, shopID int64, period domain.ReportPeriod) squirrel.SelectBuilder {
	return b.
		Where(squirrel.Eq{prefix + "shop_id": shopID}).
		Where(squirrel.GtOrEq{prefix + "performed_at": period.From}).
		Where(squirrel.Lt{prefix + "performed_at": period.To.AddDate(0, 0, 1)})
}

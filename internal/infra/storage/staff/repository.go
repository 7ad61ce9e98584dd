package staff

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/pgerrors"
	"github.com/m04kA/SMC-SalonService/pkg/psqlbuilder"
)

var columns = []string{
	"id",
	"shop_id",
	"user_id",
	"full_name",
	"phone",
	"position",
	"pay_basis",
	"base_rate",
	"commission_percent",
	"is_active",
	"hired_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий профилей сотрудников
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория сотрудников
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByShopID сотрудники салона; неактивные только при includeInactive
func (r *Repository) GetByShopID(ctx context.Context, shopID int64, includeInactive bool) ([]*domain.Staff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From("staff").
		Where(squirrel.Eq{"shop_id": shopID}).
		OrderBy("full_name ASC")
	if !includeInactive {
		builder = builder.Where(squirrel.Eq{"is_active": true})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByShopID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByShopID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	staff := make([]*domain.Staff, 0)
	for rows.Next() {
		s, err := scanStaff(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByShopID - scan row: %v", ErrScanRow, err)
		}
		staff = append(staff, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByShopID - rows error: %v", ErrScanRow, err)
	}

	return staff, nil
}

// GetByID получает профиль сотрудника
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Staff, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByUserID профиль пользователя в салоне
func (r *Repository) GetByUserID(ctx context.Context, shopID, userID int64) (*domain.Staff, error) {
	return r.getOne(ctx, "GetByUserID", squirrel.Eq{"shop_id": shopID, "user_id": userID})
}

func (r *Repository) getOne(ctx context.Context, method string, where squirrel.Eq) (*domain.Staff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("staff").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, method, err)
	}

	s, err := scanStaff(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStaffNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan staff: %v", ErrScanRow, method, err)
	}

	return s, nil
}

// Create сохраняет профиль сотрудника
func (r *Repository) Create(ctx context.Context, s *domain.Staff) (*domain.Staff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("staff").
		Columns(
			"shop_id",
			"user_id",
			"full_name",
			"phone",
			"position",
			"pay_basis",
			"base_rate",
			"commission_percent",
			"is_active",
			"hired_at",
		).
		Values(
			s.ShopID,
			s.UserID,
			s.FullName,
			s.Phone,
			s.Position,
			s.PayBasis,
			s.BaseRate,
			s.CommissionPercent,
			s.IsActive,
			s.HiredAt,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if pgerrors.IsUniqueViolation(err) {
		return nil, ErrStaffExists
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return s, nil
}

// Update сохраняет изменения профиля
func (r *Repository) Update(ctx context.Context, s *domain.Staff) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("staff").
		Set("shop_id", s.ShopID).
		Set("full_name", s.FullName).
		Set("phone", s.Phone).
		Set("position", s.Position).
		Set("pay_basis", s.PayBasis).
		Set("base_rate", s.BaseRate).
		Set("commission_percent", s.CommissionPercent).
		Set("is_active", s.IsActive).
		Set("hired_at", s.HiredAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": s.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrStaffNotFound
	}
	if pgerrors.IsUniqueViolation(err) {
		return ErrStaffExists
	}
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanStaff(row rowScanner) (*domain.Staff, error) {
	var s domain.Staff
	err := row.Scan(
		&s.ID,
		&s.ShopID,
		&s.UserID,
		&s.FullName,
		&s.Phone,
		&s.Position,
		&s.PayBasis,
		&s.BaseRate,
		&s.CommissionPercent,
		&s.IsActive,
		&s.HiredAt,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

package operation

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
	"appointment_id",
	"shop_id",
	"customer_id",
	"staff_id",
	"service_id",
	"service_name",
	"amount",
	"points",
	"notes",
	"performed_at",
	"updated_at",
}

// Repository репозиторий истории операций клиентов и фотографий к ним
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория операций
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет операцию. Уникальный индекс по appointment_id
// гарантирует не более одной операции на запись.
func (r *Repository) Create(ctx context.Context, op *domain.CustomerOperation) (*domain.CustomerOperation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("customer_operations").
		Columns(
			"appointment_id",
			"shop_id",
			"customer_id",
			"staff_id",
			"service_id",
			"service_name",
			"amount",
			"points",
			"notes",
			"performed_at",
			"updated_at",
		).
		Values(
			op.AppointmentID,
			op.ShopID,
			op.CustomerID,
			op.StaffID,
			op.ServiceID,
			op.ServiceName,
			op.Amount,
			op.Points,
			op.Notes,
			op.PerformedAt,
			op.UpdatedAt,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&op.ID)
	if pgerrors.IsUniqueViolation(err) {
		return nil, ErrOperationExists
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return op, nil
}

// GetByID получает операцию вместе с фотографиями
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.CustomerOperation, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate блокирует строку операции до конца транзакции.
// Вне транзакции работает как GetByID.
func (r *Repository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.CustomerOperation, error) {
	return r.getByID(ctx, id, dbmetrics.IsInTransaction(ctx))
}

func (r *Repository) getByID(ctx context.Context, id int64, lock bool) (*domain.CustomerOperation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectByID(id, lock).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	op, err := scanOperation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOperationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan operation: %v", ErrScanRow, err)
	}

	photos, err := r.getPhotos(ctx, []int64{op.ID})
	if err != nil {
		return nil, err
	}
	op.Photos = photos[op.ID]

	return op, nil
}

// GetByCustomerID история клиента, новые первыми, с фотографиями
func (r *Repository) GetByCustomerID(ctx context.Context, customerID int64) ([]*domain.CustomerOperation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("customer_operations").
		Where(squirrel.Eq{"customer_id": customerID}).
		OrderBy("performed_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	operations := make([]*domain.CustomerOperation, 0)
	ids := make([]int64, 0)
	for rows.Next() {
		op, err := scanOperation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByCustomerID - scan row: %v", ErrScanRow, err)
		}
		operations = append(operations, op)
		ids = append(ids, op.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerID - rows error: %v", ErrScanRow, err)
	}

	if len(ids) == 0 {
		return operations, nil
	}

	photos, err := r.getPhotos(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, op := range operations {
		op.Photos = photos[op.ID]
	}

	return operations, nil
}

// UpdateNotes меняет заметки к операции
func (r *Repository) UpdateNotes(ctx context.Context, id int64, notes *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("customer_operations").
		Set("notes", notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateNotes - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateNotes - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateNotes - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrOperationNotFound
	}

	return nil
}

// CountPhotos количество фото у операции
func (r *Repository) CountPhotos(ctx context.Context, operationID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("operation_photos").
		Where(squirrel.Eq{"operation_id": operationID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountPhotos - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountPhotos - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// AddPhoto сохраняет ссылку на фото; ID генерирует вызывающая сторона
func (r *Repository) AddPhoto(ctx context.Context, photo *domain.OperationPhoto) (*domain.OperationPhoto, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("operation_photos").
		Columns("id", "operation_id", "storage_key", "caption").
		Values(photo.ID, photo.OperationID, photo.StorageKey, photo.Caption).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: AddPhoto - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&photo.CreatedAt)
	if pgerrors.IsForeignKeyViolation(err) {
		return nil, ErrOperationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: AddPhoto - execute insert: %v", ErrExecQuery, err)
	}

	return photo, nil
}

// DeletePhoto удаляет ссылку на фото операции
func (r *Repository) DeletePhoto(ctx context.Context, operationID int64, photoID string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("operation_photos").
		Where(squirrel.Eq{"id": photoID, "operation_id": operationID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeletePhoto - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeletePhoto - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeletePhoto - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrPhotoNotFound
	}

	return nil
}

func (r *Repository) getPhotos(ctx context.Context, operationIDs []int64) (map[int64][]domain.OperationPhoto, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "operation_id", "storage_key", "caption", "created_at").
		From("operation_photos").
		Where(squirrel.Eq{"operation_id": operationIDs}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getPhotos - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getPhotos - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	photos := make(map[int64][]domain.OperationPhoto, len(operationIDs))
	for rows.Next() {
		var p domain.OperationPhoto
		if err := rows.Scan(&p.ID, &p.OperationID, &p.StorageKey, &p.Caption, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: getPhotos - scan row: %v", ErrScanRow, err)
		}
		photos[p.OperationID] = append(photos[p.OperationID], p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getPhotos - rows error: %v", ErrScanRow, err)
	}

	return photos, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func selectByID(id int64, lock bool) squirrel.SelectBuilder {
	builder := psqlbuilder.Select(columns...).
		From("customer_operations").
		Where(squirrel.Eq{"id": id})
	if lock {
		builder = builder.Suffix("FOR UPDATE")
	}
	return builder
}

func scanOperation(row rowScanner) (*domain.CustomerOperation, error) {
	var op domain.CustomerOperation
	err := row.Scan(
		&op.ID,
		&op.AppointmentID,
		&op.ShopID,
		&op.CustomerID,
		&op.StaffID,
		&op.ServiceID,
		&op.ServiceName,
		&op.Amount,
		&op.Points,
		&op.Notes,
		&op.PerformedAt,
		&op.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	op.Photos = make([]domain.OperationPhoto, 0)
	return &op, nil
}

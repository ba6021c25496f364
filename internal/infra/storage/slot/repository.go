package slot

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/m04kA/SMC-TrainingDesk/internal/domain"
	"github.com/m04kA/SMC-TrainingDesk/pkg/dbmetrics"
	"github.com/m04kA/SMC-TrainingDesk/pkg/pgerrors"
	"github.com/m04kA/SMC-TrainingDesk/pkg/psqlbuilder"
)

const table = "training_slots"

var columns = []string{"id", "date", "time", "is_active", "capacity"}

// Repository явно настроенные слоты. Виртуальные слоты здесь не хранятся.
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByDate слоты даты в порядке создания
func (r *Repository) GetByDate(ctx context.Context, date string) ([]*domain.TrainingSlot, error) {
	return r.list(ctx, "GetByDate", squirrel.Eq{"date": date})
}

// GetAll все настроенные слоты
func (r *Repository) GetAll(ctx context.Context) ([]*domain.TrainingSlot, error) {
	return r.list(ctx, "GetAll", nil)
}

func (r *Repository) list(ctx context.Context, op string, where squirrel.Sqlizer) ([]*domain.TrainingSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).From(table)
	if where != nil {
		selectBuilder = selectBuilder.Where(where)
	}

	query, args, err := selectBuilder.OrderBy("date ASC", "created_at ASC", "id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	slots := make([]*domain.TrainingSlot, 0)
	for rows.Next() {
		var slot domain.TrainingSlot
		if err := rows.Scan(&slot.ID, &slot.Date, &slot.Time, &slot.IsActive, &slot.Capacity); err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		slots = append(slots, &slot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return slots, nil
}

// CreateMany вставляет слоты одним запросом
func (r *Repository) CreateMany(ctx context.Context, slots []*domain.TrainingSlot) error {
	if len(slots) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert(table).Columns(columns...)
	for _, slot := range slots {
		insertBuilder = insertBuilder.Values(slot.ID, slot.Date, slot.Time, slot.IsActive, slot.Capacity)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: CreateMany - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		if pgerrors.IsUniqueViolation(err) {
			return ErrSlotExists
		}
		return fmt.Errorf("%w: CreateMany - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// Create вставляет один слот
func (r *Repository) Create(ctx context.Context, slot *domain.TrainingSlot) error {
	return r.CreateMany(ctx, []*domain.TrainingSlot{slot})
}

// Update меняет время, вместимость и активность слота
func (r *Repository) Update(ctx context.Context, slot *domain.TrainingSlot) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("time", slot.Time).
		Set("is_active", slot.IsActive).
		Set("capacity", slot.Capacity).
		Where(squirrel.Eq{"date": slot.Date, "id": slot.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// Delete удаляет слот даты
func (r *Repository) Delete(ctx context.Context, date, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"date": date, "id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// DeleteByDate удаляет все слоты даты (дата возвращается к слотам по умолчанию)
func (r *Repository) DeleteByDate(ctx context.Context, date string) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"date": date}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByDate - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByDate - execute delete: %v", ErrExecQuery, err)
	}

	return result.RowsAffected()
}

package guides

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/DCMS-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/DCMS-ScheduleService/pkg/psqlbuilder"
)

// Repository репозиторий отложенных назначений гидов
// Хранит наборы гидов, назначенные на пустые слоты: они применяются к первому
// бронированию, попавшему в слот, и после этого удаляются
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория отложенных гидов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Upsert сохраняет набор гидов для слота, перезаписывая существующий
func (r *Repository) Upsert(ctx context.Context, locationID, slotKey string, guideIDs []string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("pending_guide_assignments").
		Columns("location_id", "slot_key", "guide_ids").
		Values(locationID, slotKey, pq.Array(guideIDs)).
		Suffix("ON CONFLICT (location_id, slot_key) DO UPDATE SET guide_ids = EXCLUDED.guide_ids, updated_at = NOW()").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// Get возвращает отложенный набор гидов для слота
func (r *Repository) Get(ctx context.Context, locationID, slotKey string) ([]string, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("guide_ids").
		From("pending_guide_assignments").
		Where(squirrel.Eq{"location_id": locationID, "slot_key": slotKey})

	// Внутри транзакции блокируем строку: применение отложенных гидов
	// конкурирует с повторным AssignGuides на тот же слот
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var guideIDs pq.StringArray
	err = executor.QueryRowContext(ctx, query, args...).Scan(&guideIDs)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPendingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan guide_ids: %v", ErrScanRow, err)
	}

	return []string(guideIDs), nil
}

// ListByLocation возвращает все отложенные наборы гидов локации,
// ключ результата - строковая форма идентификатора слота
func (r *Repository) ListByLocation(ctx context.Context, locationID string) (map[string][]string, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("slot_key", "guide_ids").
		From("pending_guide_assignments").
		Where(squirrel.Eq{"location_id": locationID}).
		OrderBy("slot_key ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByLocation - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByLocation - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	pending := make(map[string][]string)
	for rows.Next() {
		var slotKey string
		var guideIDs pq.StringArray
		if err := rows.Scan(&slotKey, &guideIDs); err != nil {
			return nil, fmt.Errorf("%w: ListByLocation - scan row: %v", ErrScanRow, err)
		}
		pending[slotKey] = []string(guideIDs)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByLocation - rows error: %v", ErrScanRow, err)
	}

	return pending, nil
}

// Delete удаляет отложенный набор гидов слота
func (r *Repository) Delete(ctx context.Context, locationID, slotKey string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("pending_guide_assignments").
		Where(squirrel.Eq{"location_id": locationID, "slot_key": slotKey}).
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
		return ErrPendingNotFound
	}

	return nil
}

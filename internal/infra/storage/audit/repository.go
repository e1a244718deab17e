package audit

import (
	"context"
	"fmt"

	"github.com/lib/pq"

	"github.com/m04kA/DCMS-ScheduleService/internal/domain"
	"github.com/m04kA/DCMS-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/DCMS-ScheduleService/pkg/psqlbuilder"
)

// DBExecutor интерфейс для выполнения запросов к БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий журнала операций над расписанием (только запись)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория журнала
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Insert записывает событие журнала
func (r *Repository) Insert(ctx context.Context, event *domain.ScheduleEvent) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("schedule_audit_events").
		Columns("location_id", "operator_id", "operation", "slot_key", "booking_ids", "guide_ids").
		Values(
			event.LocationID,
			event.OperatorID,
			event.Operation,
			event.SlotKey,
			pq.Array(event.BookingIDs),
			pq.Array(event.GuideIDs),
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Insert - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&event.ID, &event.CreatedAt)
	if err != nil {
		return fmt.Errorf("%w: Insert - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

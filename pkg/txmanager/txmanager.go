package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/m04kA/DCMS-ScheduleService/pkg/dbmetrics"
)

// pgSerializationFailure код ошибки PostgreSQL при конфликте сериализуемых транзакций
const pgSerializationFailure = "40001"

// maxRetries количество повторов при serialization failure
const maxRetries = 3

// TxBeginner интерфейс для начала транзакций (реализуется *dbmetrics.DB)
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// TransactionManager выполняет функции внутри сериализуемых транзакций,
// пробрасывая транзакцию в контекст через dbmetrics.WithTx
type TransactionManager struct {
	db TxBeginner
}

// NewTransactionManager создает менеджер транзакций поверх обёрнутой БД
func NewTransactionManager(db TxBeginner) *TransactionManager {
	return &TransactionManager{db: db}
}

// DoSerializable выполняет fn внутри транзакции с уровнем изоляции Serializable
// При serialization failure (40001) транзакция повторяется до maxRetries раз
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	var lastErr error

	for attempt := 0; attempt < maxRetries; attempt++ {
		lastErr = m.runOnce(ctx, fn)
		if lastErr == nil {
			return nil
		}
		if !isSerializationFailure(lastErr) {
			return lastErr
		}
	}

	return fmt.Errorf("txmanager: retries exhausted: %w", lastErr)
}

func (m *TransactionManager) runOnce(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("txmanager: begin transaction: %w", err)
	}

	if err := fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return fmt.Errorf("txmanager: rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("txmanager: commit: %w", err)
	}

	return nil
}

func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgSerializationFailure
	}
	return false
}

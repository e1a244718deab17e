package simpletxmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/m04kA/DCMS-ScheduleService/pkg/dbmetrics"
)

// TransactionManager выполняет функции внутри сериализуемых транзакций
// поверх чистого *sql.DB (без сбора метрик)
type TransactionManager struct {
	db *sql.DB
}

// NewTransactionManager создает менеджер транзакций поверх *sql.DB
func NewTransactionManager(db *sql.DB) *TransactionManager {
	return &TransactionManager{db: db}
}

// DoSerializable выполняет fn внутри транзакции с уровнем изоляции Serializable
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("simpletxmanager: begin transaction: %w", err)
	}

	if err := fn(dbmetrics.WithTx(ctx, plainTx{tx})); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return fmt.Errorf("simpletxmanager: rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("simpletxmanager: commit: %w", err)
	}

	return nil
}

// plainTx адаптирует *sql.Tx к dbmetrics.TxExecutor
type plainTx struct {
	*sql.Tx
}

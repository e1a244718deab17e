package dbmetrics

import (
	"context"
	"database/sql"
	"time"

	"github.com/m04kA/DCMS-ScheduleService/pkg/metrics"
)

// DBExecutor минимальный интерфейс для выполнения запросов
// Реализуется *sql.DB, *sql.Tx, *DB и *Tx
type DBExecutor interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// TxExecutor интерфейс транзакции
type TxExecutor interface {
	DBExecutor
	Commit() error
	Rollback() error
}

// DB обёртка над *sql.DB, собирающая метрики запросов
type DB struct {
	db      *sql.DB
	metrics *metrics.Metrics
	dbName  string
}

// Wrap оборачивает *sql.DB сборщиком метрик
func Wrap(db *sql.DB, m *metrics.Metrics, dbName string) *DB {
	return &DB{db: db, metrics: m, dbName: dbName}
}

// WrapWithDefault оборачивает *sql.DB и запускает периодический сбор
// статистики connection pool (раз в 15 секунд, до закрытия stopCh)
func WrapWithDefault(db *sql.DB, m *metrics.Metrics, dbName string, stopCh <-chan struct{}) *DB {
	wrapped := Wrap(db, m, dbName)

	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				stats := db.Stats()
				m.SetDBPoolStats(dbName, stats.OpenConnections, stats.Idle, stats.InUse)
			case <-stopCh:
				return
			}
		}
	}()

	return wrapped
}

// QueryContext выполняет запрос с измерением длительности
func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := d.db.QueryContext(ctx, query, args...)
	d.metrics.ObserveDBQuery("query", time.Since(start), err)
	return rows, err
}

// QueryRowContext выполняет запрос одной строки с измерением длительности
func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := d.db.QueryRowContext(ctx, query, args...)
	d.metrics.ObserveDBQuery("query_row", time.Since(start), nil)
	return row
}

// ExecContext выполняет запрос без результата с измерением длительности
func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	result, err := d.db.ExecContext(ctx, query, args...)
	d.metrics.ObserveDBQuery("exec", time.Since(start), err)
	return result, err
}

// BeginTx начинает транзакцию, обёрнутую сборщиком метрик
func (d *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error) {
	start := time.Now()
	tx, err := d.db.BeginTx(ctx, opts)
	d.metrics.ObserveDBQuery("begin_tx", time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return &Tx{tx: tx, metrics: d.metrics}, nil
}

// Tx обёртка над *sql.Tx с метриками
type Tx struct {
	tx      *sql.Tx
	metrics *metrics.Metrics
}

func (t *Tx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := t.tx.QueryContext(ctx, query, args...)
	t.metrics.ObserveDBQuery("tx_query", time.Since(start), err)
	return rows, err
}

func (t *Tx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := t.tx.QueryRowContext(ctx, query, args...)
	t.metrics.ObserveDBQuery("tx_query_row", time.Since(start), nil)
	return row
}

func (t *Tx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	result, err := t.tx.ExecContext(ctx, query, args...)
	t.metrics.ObserveDBQuery("tx_exec", time.Since(start), err)
	return result, err
}

func (t *Tx) Commit() error {
	start := time.Now()
	err := t.tx.Commit()
	t.metrics.ObserveDBQuery("commit", time.Since(start), err)
	return err
}

func (t *Tx) Rollback() error {
	return t.tx.Rollback()
}

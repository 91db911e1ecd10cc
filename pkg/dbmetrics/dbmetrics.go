package dbmetrics

import (
	"context"
	"database/sql"
	"time"
)

// DBExecutor общий интерфейс для *DB и транзакции
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// TxExecutor транзакция с возможностью commit/rollback
type TxExecutor interface {
	DBExecutor
	Commit() error
	Rollback() error
}

// Observer получатель метрик запросов (реализуется pkg/metrics.Metrics)
type Observer interface {
	ObserveQuery(operation string, err error, duration time.Duration)
}

// PoolObserver получатель метрик connection pool
type PoolObserver interface {
	Observer
	ObservePool(dbName string, stats sql.DBStats)
}

// DB обёртка над *sql.DB, которая записывает длительность запросов
// Без observer работает как обычный *sql.DB
type DB struct {
	db       *sql.DB
	observer Observer
}

// Wrap оборачивает *sql.DB без сбора метрик
func Wrap(db *sql.DB) *DB {
	return &DB{db: db}
}

// WrapWithDefault оборачивает *sql.DB со сбором метрик запросов и
// периодическим снятием статистики connection pool (каждые 15 секунд до закрытия stopCh)
func WrapWithDefault(db *sql.DB, observer PoolObserver, dbName string, stopCh <-chan struct{}) *DB {
	go collectPoolStats(db, observer, dbName, 15*time.Second, stopCh)
	return &DB{db: db, observer: observer}
}

func collectPoolStats(db *sql.DB, observer PoolObserver, dbName string, interval time.Duration, stopCh <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			observer.ObservePool(dbName, db.Stats())
		}
	}
}

func (d *DB) observe(operation string, started time.Time, err error) {
	if d.observer != nil {
		d.observer.ObserveQuery(operation, err, time.Since(started))
	}
}

func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	started := time.Now()
	res, err := d.db.ExecContext(ctx, query, args...)
	d.observe("exec", started, err)
	return res, err
}

func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	started := time.Now()
	rows, err := d.db.QueryContext(ctx, query, args...)
	d.observe("query", started, err)
	return rows, err
}

func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	started := time.Now()
	row := d.db.QueryRowContext(ctx, query, args...)
	d.observe("query_row", started, row.Err())
	return row
}

// BeginTx начинает транзакцию, запросы внутри которой тоже попадают в метрики
func (d *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error) {
	tx, err := d.db.BeginTx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &Tx{tx: tx, observer: d.observer}, nil
}

// Tx обёртка над *sql.Tx
type Tx struct {
	tx       *sql.Tx
	observer Observer
}

func (t *Tx) observe(operation string, started time.Time, err error) {
	if t.observer != nil {
		t.observer.ObserveQuery("tx_"+operation, err, time.Since(started))
	}
}

func (t *Tx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	started := time.Now()
	res, err := t.tx.ExecContext(ctx, query, args...)
	t.observe("exec", started, err)
	return res, err
}

func (t *Tx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	started := time.Now()
	rows, err := t.tx.QueryContext(ctx, query, args...)
	t.observe("query", started, err)
	return rows, err
}

func (t *Tx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	started := time.Now()
	row := t.tx.QueryRowContext(ctx, query, args...)
	t.observe("query_row", started, row.Err())
	return row
}

func (t *Tx) Commit() error {
	return t.tx.Commit()
}

func (t *Tx) Rollback() error {
	return t.tx.Rollback()
}

type txKey struct{}

// WithTx кладёт активную транзакцию в контекст
func WithTx(ctx context.Context, tx TxExecutor) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// GetExecutor возвращает транзакцию из контекста, если она есть, иначе fallback
func GetExecutor(ctx context.Context, fallback DBExecutor) DBExecutor {
	if tx, ok := ctx.Value(txKey{}).(TxExecutor); ok && tx != nil {
		return tx
	}
	return fallback
}

// IsInTransaction сообщает, выполняется ли код внутри транзакции
func IsInTransaction(ctx context.Context) bool {
	tx, ok := ctx.Value(txKey{}).(TxExecutor)
	return ok && tx != nil
}

// Package statsdb optionally mirrors every batch-run stats row into
// a SQL table, so repeated invocations accumulate queryable history
// instead of producing one disposable CSV per run. The DSN scheme
// picks the driver, blank-imported so database/sql's registry has it
// at init time.
package statsdb

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/golang-sql/civil"
	"github.com/google/uuid"

	_ "github.com/denisenkom/go-mssqldb"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Store is a handle to the runs table, opened from a DSN whose scheme
// selects the driver (sqlite://, postgres://, mysql://, sqlserver://).
type Store struct {
	db     *sql.DB
	driver string
}

const createTable = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	filename TEXT NOT NULL,
	system TEXT NOT NULL,
	strategy TEXT NOT NULL,
	metric TEXT NOT NULL,
	size_before INTEGER NOT NULL,
	size_after INTEGER NOT NULL,
	metric_before INTEGER NOT NULL,
	metric_after INTEGER NOT NULL,
	sqg_before INTEGER NOT NULL,
	sqg_after INTEGER NOT NULL,
	mqg_before INTEGER NOT NULL,
	mqg_after INTEGER NOT NULL,
	run_date TEXT NOT NULL,
	duration_ms INTEGER NOT NULL
)`

// Open dispatches dsn's scheme to a registered driver and ensures
// the runs table exists.
func Open(dsn string) (*Store, error) {
	driver, err := driverFor(dsn)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("statsdb: open %s: %w", driver, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("statsdb: ping %s: %w", driver, err)
	}
	if _, err := db.Exec(createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("statsdb: create runs table: %w", err)
	}

	return &Store{db: db, driver: driver}, nil
}

func driverFor(dsn string) (string, error) {
	switch {
	case strings.HasPrefix(dsn, "sqlite://"):
		return "sqlite", nil
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return "postgres", nil
	case strings.HasPrefix(dsn, "mysql://"):
		return "mysql", nil
	case strings.HasPrefix(dsn, "sqlserver://"):
		return "sqlserver", nil
	default:
		return "", fmt.Errorf("statsdb: unrecognized DSN scheme in %q", dsn)
	}
}

// Row is one run's persisted record.
type Row struct {
	RunID        uuid.UUID
	Filename     string
	System       string
	Strategy     string
	Metric       string
	SizeBefore   int
	SizeAfter    int
	MetricBefore int
	MetricAfter  int
	SQGBefore    int
	SQGAfter     int
	MQGBefore    int
	MQGAfter     int
	RunDate      civil.Date
	Duration     time.Duration
}

// Insert persists one run row.
func (s *Store) Insert(ctx context.Context, row Row) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (
			id, filename, system, strategy, metric,
			size_before, size_after, metric_before, metric_after,
			sqg_before, sqg_after, mqg_before, mqg_after,
			run_date, duration_ms
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		row.RunID.String(), row.Filename, row.System, row.Strategy, row.Metric,
		row.SizeBefore, row.SizeAfter, row.MetricBefore, row.MetricAfter,
		row.SQGBefore, row.SQGAfter, row.MQGBefore, row.MQGAfter,
		row.RunDate.String(), row.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("statsdb: insert run %s: %w", row.RunID, err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error { return s.db.Close() }

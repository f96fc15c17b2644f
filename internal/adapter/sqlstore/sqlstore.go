// Package sqlstore implements the domain repositories on database/sql for
// PostgreSQL (lib/pq or pgx) and SQLite.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	_ "modernc.org/sqlite"

	"filmorate/internal/domain"
)

// DB wraps a *sql.DB and implements domain.Store.
type DB struct {
	sql      *sql.DB
	dialect  dialect
	errCount *prometheus.CounterVec
}

var _ domain.Store = (*DB)(nil)

// Option configures a DB.
type Option func(*DB)

// WithErrorCounter counts failed statements by operation name.
func WithErrorCounter(c *prometheus.CounterVec) Option {
	return func(d *DB) { d.errCount = c }
}

// Open connects using driver ("postgres", "pgx" or "sqlite"), pings, and runs migrations.
func Open(ctx context.Context, driver, dsn string, opts ...Option) (*DB, error) {
	dia, err := dialectFor(driver)
	if err != nil {
		return nil, err
	}
	if dia.name == "sqlite" {
		dsn = withPragma(dsn, "foreign_keys(1)")
	}

	s, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	if dia.name == "sqlite" {
		// One connection: SQLite serialises writers anyway and an in-memory
		// database lives only as long as its connection.
		s.SetMaxOpenConns(1)
		s.SetMaxIdleConns(1)
		s.SetConnMaxLifetime(0)
	} else {
		s.SetMaxOpenConns(10)
		s.SetMaxIdleConns(5)
		s.SetConnMaxLifetime(5 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.PingContext(pingCtx); err != nil {
		_ = s.Close()
		return nil, err
	}

	d := &DB{sql: s, dialect: dia}
	for _, opt := range opts {
		opt(d)
	}
	if err := d.migrate(pingCtx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	return d.sql.Close()
}

// Ping checks that the database is reachable.
func (d *DB) Ping(ctx context.Context) error {
	return d.sql.PingContext(ctx)
}

// Pool exposes the connection pool for stats collection.
func (d *DB) Pool() *sql.DB {
	return d.sql
}

func (d *DB) migrate(ctx context.Context) error {
	for _, stmt := range d.dialect.schema {
		if _, err := d.sql.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// wrap prefixes err with op and counts it, leaving domain kinds untouched.
func (d *DB) wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrConflict) || errors.Is(err, domain.ErrBadArgument) {
		return err
	}
	if d.errCount != nil {
		d.errCount.WithLabelValues(op).Inc()
	}
	return fmt.Errorf("%s: %w", op, err)
}

func withPragma(dsn, pragma string) string {
	if strings.Contains(dsn, "_pragma=foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=" + pragma
}

func notFound(entity string, id int64) error {
	return fmt.Errorf("%s %d: %w", entity, id, domain.ErrNotFound)
}

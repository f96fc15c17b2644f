package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"filmorate/internal/domain"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// conn runs ?-style queries on a querier in the dialect's placeholder style.
type conn struct {
	q   querier
	dia dialect
}

func (c conn) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return c.q.ExecContext(ctx, c.dia.rebind(query), args...)
}

func (c conn) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return c.q.QueryContext(ctx, c.dia.rebind(query), args...)
}

func (c conn) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return c.q.QueryRowContext(ctx, c.dia.rebind(query), args...)
}

// require reports ErrNotFound unless table has a row with id. On PostgreSQL
// the row stays share-locked until the transaction ends, so a referenced row
// cannot be deleted between the check and the insert that points at it.
func (c conn) require(ctx context.Context, entity, table string, id int64) error {
	return c.exists(ctx, entity, table, id, lockShare)
}

// claim is require for the row the transaction is about to change or delete.
func (c conn) claim(ctx context.Context, entity, table string, id int64) error {
	return c.exists(ctx, entity, table, id, lockUpdate)
}

// claimAll locks every row of table for update ahead of a bulk delete.
func (c conn) claimAll(ctx context.Context, table string) error {
	if !c.dia.rowLocks {
		return nil
	}
	_, err := c.exec(ctx, c.dia.locking("SELECT id FROM "+table, lockUpdate))
	return err
}

func (c conn) exists(ctx context.Context, entity, table string, id int64, l rowLock) error {
	var one int
	err := c.queryRow(ctx, c.dia.locking("SELECT 1 FROM "+table+" WHERE id = ?", l), id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return notFound(entity, id)
	}
	return err
}

func (d *DB) reader() conn {
	return conn{q: d.sql, dia: d.dialect}
}

// withTx runs fn in one transaction. It rolls back when fn returns an error
// or panics and commits otherwise. Everything inside fn must go through the
// given conn: SQLite has a single connection and the transaction holds it.
func (d *DB) withTx(ctx context.Context, fn func(c conn) error) (err error) {
	tx, err := d.sql.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				err = fmt.Errorf("%w (rollback also failed: %v)", err, rbErr)
			}
			return
		}
		if commitErr := tx.Commit(); commitErr != nil {
			err = fmt.Errorf("commit transaction: %w", commitErr)
		}
	}()

	err = fn(conn{q: tx, dia: d.dialect})
	return
}

// sqlDate scans DATE columns (time.Time) and SQLite text dates into a UTC
// day-precision time.
type sqlDate struct{ t *time.Time }

func (s sqlDate) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*s.t = domain.DateOf(v)
	case string:
		return s.parse(v)
	case []byte:
		return s.parse(string(v))
	case nil:
		*s.t = time.Time{}
	default:
		return fmt.Errorf("sqlstore: cannot scan %T into date", src)
	}
	return nil
}

func (s sqlDate) parse(v string) error {
	// Tolerate timestamps written by other tools.
	if len(v) > len(domain.DateLayout) {
		v = v[:len(domain.DateLayout)]
	}
	t, err := domain.ParseDate(v)
	if err != nil {
		return err
	}
	*s.t = t
	return nil
}

func dateArg(t time.Time) string {
	return domain.DateOf(t).Format(domain.DateLayout)
}

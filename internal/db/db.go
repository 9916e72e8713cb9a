// Package db opens the per-invocation database connection and runs statements on it.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/canonical/lxd/shared/logger"
	"github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"

	"github.com/querygate/querygate/internal/config"
)

// SQLConnector opens connections through database/sql.
type SQLConnector struct{}

// NewConnector returns a connector for the mysql and sqlite3 drivers.
func NewConnector() *SQLConnector {
	return &SQLConnector{}
}

// Connect opens a handle limited to a single connection, establishes that connection and pins it,
// so connection errors surface here and statements never run on a redialled connection.
func (c *SQLConnector) Connect(ctx context.Context, d Descriptor) (Conn, error) {
	var db *sql.DB
	switch d.Driver {
	case config.DriverMySQL:
		connector, err := mysql.NewConnector(d.MySQLConfig())
		if err != nil {
			return nil, fmt.Errorf("Invalid MySQL connection settings: %w", err)
		}

		db = sql.OpenDB(connector)
	case config.DriverSQLite:
		var err error
		db, err = sql.Open(config.DriverSQLite, d.SQLiteDSN())
		if err != nil {
			return nil, err
		}

	default:
		return nil, fmt.Errorf("Unsupported database driver %q", d.Driver)
	}

	// One invocation, one connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	connectCtx, cancel := context.WithTimeout(ctx, d.ConnectTimeout)
	defer cancel()

	err := db.PingContext(connectCtx)
	if err != nil {
		closeErr := db.Close()
		if closeErr != nil {
			logger.Warn("Failed to close database handle after failed connect", logger.Ctx{"database": d.String(), "err": closeErr})
		}

		return nil, err
	}

	conn, err := db.Conn(connectCtx)
	if err != nil {
		closeErr := db.Close()
		if closeErr != nil {
			logger.Warn("Failed to close database handle after failed connect", logger.Ctx{"database": d.String(), "err": closeErr})
		}

		return nil, err
	}

	return &sqlConn{db: db, conn: conn}, nil
}

// sqlConn runs every statement on the one connection pinned at connect time.
// Unlike *sql.DB, a *sql.Conn never retries on another connection when the driver reports a bad one.
type sqlConn struct {
	db   *sql.DB
	conn *sql.Conn
}

// Exec runs the statement in a transaction and commits it.
func (c *sqlConn) Exec(ctx context.Context, query string) (int64, error) {
	var affected int64
	err := transaction(ctx, c.conn, func(ctx context.Context, tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, query)
		if err != nil {
			return err
		}

		affected, err = result.RowsAffected()
		if err != nil {
			return fmt.Errorf("Failed to fetch affected rows: %w", err)
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return affected, nil
}

// Query fetches all rows of the statement.
func (c *sqlConn) Query(ctx context.Context, query string) (*Result, error) {
	rows, err := c.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}

	defer func() { _ = rows.Close() }()

	result := &Result{}
	result.Columns, err = rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("Failed to fetch column names: %w", err)
	}

	for rows.Next() {
		row := make([]any, len(result.Columns))
		rowPointers := make([]any, len(result.Columns))
		for i := range row {
			rowPointers[i] = &row[i]
		}

		err := rows.Scan(rowPointers...)
		if err != nil {
			return nil, fmt.Errorf("Failed to scan row: %w", err)
		}

		for i, column := range row {
			// Text columns come back as bytes from both drivers.
			data, ok := column.([]byte)
			if ok {
				row[i] = string(data)
			}
		}

		result.Rows = append(result.Rows, row)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("Got a row error: %w", err)
	}

	return result, nil
}

// Close releases the connection and then the handle, returning the first error.
func (c *sqlConn) Close() error {
	connErr := c.conn.Close()
	dbErr := c.db.Close()
	if connErr != nil {
		return connErr
	}

	return dbErr
}

// transaction runs f in a transaction, rolling back if f or the commit fails.
func transaction(ctx context.Context, conn *sql.Conn, f func(context.Context, *sql.Tx) error) error {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("Failed to begin transaction: %w", err)
	}

	err = f(ctx, tx)
	if err != nil {
		rollbackErr := tx.Rollback()
		if rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
			logger.Warn("Failed to rollback transaction", logger.Ctx{"err": rollbackErr})
		}

		return err
	}

	err = tx.Commit()
	if err != nil {
		return fmt.Errorf("Failed to commit transaction: %w", err)
	}

	return nil
}

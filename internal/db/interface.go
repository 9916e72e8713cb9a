package db

import (
	"context"
)

// Connector opens one database connection per invocation.
type Connector interface {
	// Connect establishes a connection described by d, bounded by d.ConnectTimeout.
	Connect(ctx context.Context, d Descriptor) (Conn, error)
}

// Conn is a single open database connection. It must be closed by the caller on every path.
type Conn interface {
	// Exec runs a statement inside a transaction, commits it and returns the affected row count.
	Exec(ctx context.Context, query string) (int64, error)

	// Query runs a statement and fetches every result row.
	Query(ctx context.Context, query string) (*Result, error)

	// Close releases the connection.
	Close() error
}

// Result holds the column names and all the rows returned by a query.
type Result struct {
	Columns []string
	Rows    [][]any
}

// Package db defines the contract for low-level database management.
package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/usnistgov/NED/pkg/config"
)

// Operator manages the PostgreSQL connection lifecycle and the table
// operations that sit below the ORM: existence checks before schema
// creation and wholesale drops when a schema is rebuilt. Higher-level
// components (SchemaManager, repositories) take the pool from Pool()
// and run their own SQL or ORM sessions on top of it.
type Operator interface {
	// Connect establishes a connection pool to the database.
	Connect(context.Context, *config.DatabaseConfig) error

	// Close closes the database connection pool.
	Close() error

	// Pool returns the underlying pgxpool.Pool.
	Pool() *pgxpool.Pool

	// TableExists checks if a table exists in the public schema.
	TableExists(ctx context.Context, tableName string) (bool, error)

	// HasTables checks if the database has any tables in the public
	// schema. Used to warn before schema creation overwrites data.
	HasTables(ctx context.Context) (bool, error)

	// DropAllTables drops all tables in the public schema. Used when
	// a schema rebuild was requested explicitly.
	DropAllTables(ctx context.Context) error
}

// Package ioschema implements the SchemaManager interface for
// database schema management. This is an impure I/O package
// that wraps GORM AutoMigrate functionality.
package ioschema

import (
	"context"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/usnistgov/NED/pkg/db"
	"github.com/usnistgov/NED/pkg/ned"
	"github.com/usnistgov/NED/pkg/schema"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// manager implements the ned.SchemaManager interface using
// GORM AutoMigrate.
type manager struct {
	operator db.Operator
}

// NewManager creates a new SchemaManager.
func NewManager(op db.Operator) ned.SchemaManager {
	return &manager{operator: op}
}

// Create provisions the six catalog tables with GORM AutoMigrate.
// With force set, all existing tables in the public schema are
// dropped first.
func (m *manager) Create(ctx context.Context, force bool) error {
	pool := m.operator.Pool()
	if pool == nil {
		return NotConnectedError()
	}

	if force {
		if err := m.operator.DropAllTables(ctx); err != nil {
			return err
		}
	}

	sqlDB := stdlib.OpenDBFromPool(pool)

	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{Conn: sqlDB}),
		&gorm.Config{},
	)
	if err != nil {
		return GORMConnectionError(err)
	}

	if err := schema.Migrate(gormDB); err != nil {
		return CreateSchemaError(err)
	}

	return nil
}

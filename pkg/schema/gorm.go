package schema

import (
	"gorm.io/gorm"
)

// AllModels returns all schema models for GORM AutoMigrate, in
// dependency order.
func AllModels() []interface{} {
	return []interface{}{
		&Reference{},
		&Component{},
		&FragilityModel{},
		&Experiment{},
		&ExperimentFragilityModelBridge{},
		&FragilityCurve{},
	}
}

// Migrate runs GORM AutoMigrate to create or update the schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}

// Package schema provides the database models for the NED catalog.
// Six entity kinds are stored: Reference, Component, FragilityModel,
// Experiment, ExperimentFragilityModelBridge, and FragilityCurve.
//
// Each entity has a natural key used for matching during
// synchronization. For Reference, FragilityModel, and Experiment the
// natural key doubles as the storage key. Component's storage key is
// the compact form of its dotted taxonomy identifier, and the two
// association tables carry an auto-generated surrogate key alongside a
// composite unique index on their natural key columns.
package schema

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// Reference is a bibliographic source of damage or fragility data.
// CSLData is the source of truth: Title, Author, and Year are derived
// from it on every save and must never be set independently.
type Reference struct {
	// ID is a citation identifier such as "bahmani2016".
	ID string `gorm:"primaryKey;size:255"`

	// Title is derived from CSLData's title field.
	Title string `gorm:"size:255"`

	// Author is the derived display string, e.g. "Johnson and Smith".
	Author string `gorm:"size:255"`

	// Year is derived from CSLData's issued.date-parts.
	Year int

	// StudyType is one of the StudyTypes vocabulary.
	StudyType string `gorm:"size:50;default:Other"`

	// CompType is a free-form component type annotation.
	CompType string `gorm:"size:255"`

	// PdfSaved is true when the source document is archived.
	PdfSaved bool

	// CSLData is the structured CSL-JSON citation payload.
	CSLData map[string]any `gorm:"serializer:json;type:jsonb"`
}

// Component is an entry of the NISTIR 6389 (UNIFORMAT II) component
// taxonomy that damage records anchor to.
type Component struct {
	// ID is the compact storage key, e.g. "B2011.A" for "B.20.1.1.A".
	ID string `gorm:"primaryKey;size:32"`

	// ComponentID is the dotted taxonomy identifier, the natural key.
	ComponentID string `gorm:"uniqueIndex;size:64;not null"`

	// Name is the component type name.
	Name string `gorm:"size:255;not null"`

	// MajorGroup through Subelement are denormalized hierarchy labels
	// of the form "<segment> - <name>", recomputed on every save.
	MajorGroup string `gorm:"size:64"`
	Group      string `gorm:"size:64"`
	Element    string `gorm:"size:255"`
	Subelement string `gorm:"size:255"`
}

// FragilityModel groups fragility curves for one component type.
type FragilityModel struct {
	ID string `gorm:"primaryKey;size:255"`

	// P58Fragility is the FEMA P-58 fragility id, when one exists.
	P58Fragility string `gorm:"size:50"`

	// ComponentID is the storage key of the owning Component.
	ComponentID string `gorm:"size:32;not null;index"`
	Component   *Component

	CompDetail      string `gorm:"size:100"`
	Material        string `gorm:"size:100"`
	SizeClass       string `gorm:"size:100"`
	CompDescription string `gorm:"type:text;not null"`
}

// Experiment is a single observation of component damage from a test
// or a historical event.
type Experiment struct {
	ID string `gorm:"primaryKey;size:255"`

	// ReferenceID points at the source publication.
	ReferenceID string `gorm:"size:255;not null;index"`
	Reference   *Reference

	// ComponentID is the storage key of the tested Component.
	ComponentID string `gorm:"size:32;not null;index"`
	Component   *Component

	Specimen                   string `gorm:"size:255"`
	SpecimenInspectionSequence string `gorm:"size:255"`
	Reviewer                   string `gorm:"size:50"`
	CompDetail                 string `gorm:"size:100"`
	Material                   string `gorm:"size:100"`
	SizeClass                  string `gorm:"size:100"`

	// TestType is one of the TestTypes vocabulary.
	TestType string `gorm:"size:50;not null"`

	LoadingProtocol         string `gorm:"size:255"`
	PeakTestAmplitude       string `gorm:"size:255"`
	Location                string `gorm:"size:255"`
	GoverningDesignStandard string `gorm:"size:255"`
	DesignObjective         string `gorm:"size:255"`
	CompDescription         string `gorm:"type:text"`
	DsDescription           string `gorm:"type:text"`
	PriorDamage             string `gorm:"size:255"`
	PriorDamageRepaired     sql.NullBool

	EdpMetric string              `gorm:"size:50"`
	EdpUnit   string              `gorm:"size:50"`
	EdpValue  decimal.NullDecimal `gorm:"type:numeric(12,6)"`

	AltEdpMetric string              `gorm:"size:50"`
	AltEdpUnit   string              `gorm:"size:50"`
	AltEdpValue  decimal.NullDecimal `gorm:"type:numeric(12,6)"`

	DsRank  sql.NullInt32
	DsClass string `gorm:"size:50"`
	Notes   string `gorm:"type:text"`
}

// ExperimentFragilityModelBridge associates an experiment with a
// fragility model it informed. The pair is the natural key; the
// surrogate key exists only because nothing references this table.
type ExperimentFragilityModelBridge struct {
	ID uint `gorm:"primaryKey"`

	ExperimentID string `gorm:"size:255;not null;uniqueIndex:idx_experiment_fragility"`
	Experiment   *Experiment

	FragilityModelID string `gorm:"size:255;not null;uniqueIndex:idx_experiment_fragility"`
	FragilityModel   *FragilityModel
}

// FragilityCurve is one damage-state curve of a fragility model,
// keyed naturally by (fragility model, damage state rank).
type FragilityCurve struct {
	ID uint `gorm:"primaryKey"`

	FragilityModelID string `gorm:"size:255;not null;uniqueIndex:idx_fragility_curve_ds"`
	FragilityModel   *FragilityModel

	Reviewer string `gorm:"size:255"`
	Source   string `gorm:"size:255"`

	// Basis is one of the CurveBases vocabulary.
	Basis string `gorm:"size:50"`

	NumObservations sql.NullInt32

	// ReferenceID points at the publication the curve was fit from.
	ReferenceID string `gorm:"size:255;not null;index"`
	Reference   *Reference

	EdpMetric string `gorm:"size:50"`
	EdpUnit   string `gorm:"size:50"`

	// DsRank orders damage states within the model.
	DsRank        int    `gorm:"not null;uniqueIndex:idx_fragility_curve_ds"`
	DsDescription string `gorm:"type:text"`

	Median      decimal.NullDecimal `gorm:"type:numeric(9,3)"`
	Beta        decimal.NullDecimal `gorm:"type:numeric(10,3)"`
	Probability decimal.NullDecimal `gorm:"type:numeric(3,2)"`
}

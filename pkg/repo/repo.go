// Package repo defines the persistence contracts of the catalog: one
// repository per entity kind, keyed by natural key. Implementations
// live in internal/iorepo (GORM over PostgreSQL) and internal/memrepo
// (in-memory, used by dry runs and tests).
package repo

import (
	"context"
	"errors"

	"github.com/usnistgov/NED/pkg/schema"
)

// ErrNotFound is returned by the find methods when no row matches the
// given natural key. Callers use it to decide between create and
// update; any other error is a storage failure.
var ErrNotFound = errors.New("record not found")

// References persists Reference rows keyed by citation id.
type References interface {
	ByID(ctx context.Context, id string) (*schema.Reference, error)
	Create(ctx context.Context, ref *schema.Reference) error
	Update(ctx context.Context, ref *schema.Reference) error
	All(ctx context.Context) ([]schema.Reference, error)
}

// Components persists Component rows. The natural key is the dotted
// taxonomy identifier; the storage key is its compact form.
type Components interface {
	// ByComponentID finds a component by its dotted natural key.
	ByComponentID(ctx context.Context, componentID string) (*schema.Component, error)
	Create(ctx context.Context, comp *schema.Component) error
	Update(ctx context.Context, comp *schema.Component) error
	All(ctx context.Context) ([]schema.Component, error)
}

// FragilityModels persists FragilityModel rows keyed by model id.
type FragilityModels interface {
	ByID(ctx context.Context, id string) (*schema.FragilityModel, error)
	Create(ctx context.Context, fm *schema.FragilityModel) error
	Update(ctx context.Context, fm *schema.FragilityModel) error
	All(ctx context.Context) ([]schema.FragilityModel, error)
}

// Experiments persists Experiment rows keyed by experiment id.
type Experiments interface {
	ByID(ctx context.Context, id string) (*schema.Experiment, error)
	Create(ctx context.Context, exp *schema.Experiment) error
	Update(ctx context.Context, exp *schema.Experiment) error
	All(ctx context.Context) ([]schema.Experiment, error)
}

// Bridges persists experiment/fragility-model associations keyed by
// the (experiment, fragility model) pair. The pair carries no other
// data, so there is no Update.
type Bridges interface {
	ByPair(ctx context.Context, experimentID, fragilityModelID string) (*schema.ExperimentFragilityModelBridge, error)
	Create(ctx context.Context, b *schema.ExperimentFragilityModelBridge) error
	All(ctx context.Context) ([]schema.ExperimentFragilityModelBridge, error)
}

// FragilityCurves persists FragilityCurve rows keyed by the
// (fragility model, damage state rank) pair.
type FragilityCurves interface {
	ByKey(ctx context.Context, fragilityModelID string, dsRank int) (*schema.FragilityCurve, error)
	Create(ctx context.Context, c *schema.FragilityCurve) error
	Update(ctx context.Context, c *schema.FragilityCurve) error
	All(ctx context.Context) ([]schema.FragilityCurve, error)
}

// Set bundles the six repositories the pipeline and the exporter work
// against.
type Set struct {
	References      References
	Components      Components
	FragilityModels FragilityModels
	Experiments     Experiments
	Bridges         Bridges
	FragilityCurves FragilityCurves
}

// Package ned defines the high-level contracts of the NED catalog
// synchronizer: schema management, canonical ingestion, and canonical
// export. Implementations live in internal/io* packages.
package ned

import (
	"context"
)

// SchemaManager handles database schema provisioning.
// It uses GORM AutoMigrate, so both initial creation and later
// migrations are idempotent.
type SchemaManager interface {
	// Create creates or updates the schema for all NED tables.
	// If force is true, existing tables are dropped first.
	Create(ctx context.Context, force bool) error
}

// Ingestor synchronizes the database with canonical JSON document
// collections. Each entity kind is processed in dependency order with
// natural-key idempotent create-or-update semantics. Record-level
// failures are isolated: they are reported in the returned Report and
// never abort the run.
type Ingestor interface {
	// Ingest reads canonical collections from the configured data
	// directory and upserts them into the store. The returned Report
	// carries per-kind created/updated/failed counts even when err is
	// nil. A non-nil error means the run was aborted by a fatal
	// condition such as an unavailable taxonomy registry.
	Ingest(ctx context.Context) (*Report, error)
}

// Exporter is the inverse of Ingestor: it emits canonical JSON
// collections from the current stored state, with foreign keys
// rewritten as natural keys and derived fields omitted.
type Exporter interface {
	// Export writes one JSON file per entity kind into outDir.
	Export(ctx context.Context, outDir string) error
}

// Report accumulates per-entity-kind ingestion outcomes.
type Report struct {
	Kinds []KindSummary
}

// KindSummary holds the outcome counts for one entity kind.
type KindSummary struct {
	Kind    string
	Skipped bool
	Created int
	Updated int
	Failed  int

	// Failures lists one entry per failed record.
	Failures []RecordFailure
}

// RecordFailure describes a single record that could not be persisted.
type RecordFailure struct {
	// NaturalKey identifies the offending record in its canonical file.
	NaturalKey string
	// Reason is a human-readable explanation of the failure.
	Reason string
}

// Add appends a kind summary to the report.
func (r *Report) Add(s KindSummary) {
	r.Kinds = append(r.Kinds, s)
}

// TotalFailed returns the number of failed records across all kinds.
func (r *Report) TotalFailed() int {
	var res int
	for _, k := range r.Kinds {
		res += k.Failed
	}
	return res
}

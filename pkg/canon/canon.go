// Package canon defines the canonical interchange format of the NED
// catalog: one JSON document collection per entity kind, each an
// ordered list of field-keyed records.
//
// Canonical records carry only source-of-truth fields. Derived and
// denormalized values (a component's compact storage key and hierarchy
// labels, a reference's display title/author/year) never appear here;
// they are recomputed during ingestion. Foreign references are always
// expressed as natural keys.
package canon

import (
	"github.com/shopspring/decimal"
)

// File names of the canonical document collections, resolved relative
// to the ingest data directory.
const (
	ReferenceFile      = "reference.json"
	ComponentFile      = "component.json"
	FragilityModelFile = "fragility_model.json"
	ExperimentFile     = "experiment.json"
	BridgeFile         = "experiment_fragility_bridge.json"
	FragilityCurveFile = "fragility_curve.json"
)

// Kind names the entity kinds, in the fixed processing order of the
// ingestion pipeline.
type Kind string

const (
	KindReference      Kind = "reference"
	KindComponent      Kind = "component"
	KindFragilityModel Kind = "fragility model"
	KindExperiment     Kind = "experiment"
	KindBridge         Kind = "experiment/fragility bridge"
	KindFragilityCurve Kind = "fragility curve"
)

// Reference is the canonical form of a bibliographic source.
type Reference struct {
	ID        string         `json:"id"`
	StudyType string         `json:"study_type,omitempty"`
	CompType  string         `json:"comp_type,omitempty"`
	PdfSaved  bool           `json:"pdf_saved"`
	CSLData   map[string]any `json:"csl_data"`
}

// Component is the canonical form of a taxonomy component. ComponentID
// is the dotted taxonomy identifier, never the compact storage key.
type Component struct {
	ComponentID string `json:"component_id"`
	Name        string `json:"name"`
}

// FragilityModel is the canonical form of a fragility model.
// Component holds the referenced component's dotted natural key.
type FragilityModel struct {
	ID              string `json:"id"`
	P58Fragility    string `json:"p58_fragility,omitempty"`
	Component       string `json:"component"`
	CompDetail      string `json:"comp_detail,omitempty"`
	Material        string `json:"material,omitempty"`
	SizeClass       string `json:"size_class,omitempty"`
	CompDescription string `json:"comp_description"`
}

// Experiment is the canonical form of a damage observation. Reference
// and Component hold the referenced entities' natural keys.
type Experiment struct {
	ID                         string           `json:"id"`
	Reference                  string           `json:"reference"`
	Component                  string           `json:"component"`
	Specimen                   string           `json:"specimen,omitempty"`
	SpecimenInspectionSequence string           `json:"specimen_inspection_sequence,omitempty"`
	Reviewer                   string           `json:"reviewer,omitempty"`
	CompDetail                 string           `json:"comp_detail,omitempty"`
	Material                   string           `json:"material,omitempty"`
	SizeClass                  string           `json:"size_class,omitempty"`
	TestType                   string           `json:"test_type"`
	LoadingProtocol            string           `json:"loading_protocol,omitempty"`
	PeakTestAmplitude          string           `json:"peak_test_amplitude,omitempty"`
	Location                   string           `json:"location,omitempty"`
	GoverningDesignStandard    string           `json:"governing_design_standard,omitempty"`
	DesignObjective            string           `json:"design_objective,omitempty"`
	CompDescription            string           `json:"comp_description,omitempty"`
	DsDescription              string           `json:"ds_description,omitempty"`
	PriorDamage                string           `json:"prior_damage,omitempty"`
	PriorDamageRepaired        *bool            `json:"prior_damage_repaired,omitempty"`
	EdpMetric                  string           `json:"edp_metric,omitempty"`
	EdpUnit                    string           `json:"edp_unit,omitempty"`
	EdpValue                   *decimal.Decimal `json:"edp_value,omitempty"`
	AltEdpMetric               string           `json:"alt_edp_metric,omitempty"`
	AltEdpUnit                 string           `json:"alt_edp_unit,omitempty"`
	AltEdpValue                *decimal.Decimal `json:"alt_edp_value,omitempty"`
	DsRank                     *int             `json:"ds_rank,omitempty"`
	DsClass                    string           `json:"ds_class,omitempty"`
	Notes                      string           `json:"notes,omitempty"`
}

// Bridge is the canonical form of an experiment/fragility-model
// association. Both fields are natural keys and together form the
// record's own natural key.
type Bridge struct {
	Experiment     string `json:"experiment"`
	FragilityModel string `json:"fragility_model"`
}

// FragilityCurve is the canonical form of a damage-state curve. The
// natural key is the (fragility_model, ds_rank) pair.
type FragilityCurve struct {
	FragilityModel  string           `json:"fragility_model"`
	Reviewer        string           `json:"reviewer,omitempty"`
	Source          string           `json:"source,omitempty"`
	Basis           string           `json:"basis,omitempty"`
	NumObservations *int             `json:"num_observations,omitempty"`
	Reference       string           `json:"reference"`
	EdpMetric       string           `json:"edp_metric,omitempty"`
	EdpUnit         string           `json:"edp_unit,omitempty"`
	DsRank          *int             `json:"ds_rank"`
	DsDescription   string           `json:"ds_description,omitempty"`
	Median          *decimal.Decimal `json:"median,omitempty"`
	Beta            *decimal.Decimal `json:"beta,omitempty"`
	Probability     *decimal.Decimal `json:"probability,omitempty"`
}

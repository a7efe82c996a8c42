package ioingest_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/usnistgov/NED/internal/ioingest"
	"github.com/usnistgov/NED/internal/ioregistry"
	"github.com/usnistgov/NED/internal/memrepo"
	"github.com/usnistgov/NED/pkg/canon"
	"github.com/usnistgov/NED/pkg/config"
	"github.com/usnistgov/NED/pkg/ned"
	"github.com/usnistgov/NED/pkg/nistir"
	"github.com/usnistgov/NED/pkg/repo"
	"github.com/usnistgov/NED/pkg/schema"
)

func writeJSON(t *testing.T, dir, file string, v any) {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	require.NoError(t,
		os.WriteFile(filepath.Join(dir, file), data, 0644))
}

func testRegistry(t *testing.T) *nistir.Registry {
	t.Helper()
	reg, err := ioregistry.Load("")
	require.NoError(t, err)
	return reg
}

func newIngestor(
	t *testing.T, dataDir string, repos *repo.Set,
) ned.Ingestor {
	t.Helper()
	cfg := config.New()
	cfg.Update([]config.Option{config.OptIngestDataDir(dataDir)})
	return ioingest.New(cfg, testRegistry(t), repos)
}

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func intPtr(n int) *int { return &n }

func testCSL(title string, families ...string) map[string]any {
	authors := make([]any, len(families))
	for i, f := range families {
		authors[i] = map[string]any{"family": f}
	}
	return map[string]any{
		"title":  title,
		"author": authors,
		"issued": map[string]any{
			"date-parts": []any{[]any{float64(2014)}},
		},
	}
}

// writeFixture puts one small but complete canonical data set into dir.
func writeFixture(t *testing.T, dir string) {
	t.Helper()

	writeJSON(t, dir, canon.ReferenceFile, []canon.Reference{
		{
			ID:        "soroushian2014",
			StudyType: "Experiment",
			CSLData: testCSL("Seismic Response of Ceiling Systems",
				"Soroushian", "Maragakis", "Jenkins"),
		},
		{
			ID:      "retamales2013",
			CSLData: testCSL("Partition Wall Testing", "Retamales", "Mosqueda"),
		},
	})

	writeJSON(t, dir, canon.ComponentFile, []canon.Component{
		{ComponentID: "D.30.3.2", Name: "Packaged DX Units"},
		{ComponentID: "B.20.1.1.A", Name: "Precast Cladding Panels"},
	})

	writeJSON(t, dir, canon.FragilityModelFile, []canon.FragilityModel{
		{
			ID:              "D3032.011a",
			Component:       "D.30.3.2",
			CompDescription: "Packaged DX unit, unanchored",
		},
	})

	writeJSON(t, dir, canon.ExperimentFile, []canon.Experiment{
		{
			ID:        "soroushian2014-s1-1",
			Reference: "soroushian2014",
			Component: "D.30.3.2",
			TestType:  "Dynamic, uniaxial",
			EdpMetric: "Peak Floor Acceleration, horizontal",
			EdpUnit:   "g",
			EdpValue:  decPtr("0.52"),
			DsRank:    intPtr(1),
			DsClass:   "Consequential",
		},
	})

	writeJSON(t, dir, canon.BridgeFile, []canon.Bridge{
		{Experiment: "soroushian2014-s1-1", FragilityModel: "D3032.011a"},
	})

	writeJSON(t, dir, canon.FragilityCurveFile, []canon.FragilityCurve{
		{
			FragilityModel: "D3032.011a",
			Basis:          "Experiment",
			Reference:      "soroushian2014",
			EdpMetric:      "Peak Floor Acceleration, horizontal",
			EdpUnit:        "g",
			DsRank:         intPtr(1),
			Median:         decPtr("0.75"),
			Beta:           decPtr("0.4"),
		},
	})
}

func kindByName(t *testing.T, rep *ned.Report, kind canon.Kind) ned.KindSummary {
	t.Helper()
	for _, k := range rep.Kinds {
		if k.Kind == string(kind) {
			return k
		}
	}
	t.Fatalf("kind %q not in report", kind)
	return ned.KindSummary{}
}

// TestIngest_FullPipeline verifies a complete data set ingests with
// all records created and derived fields computed.
func TestIngest_FullPipeline(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir)
	repos := memrepo.NewSet()

	rep, err := newIngestor(t, dir, repos).Ingest(context.Background())
	require.NoError(t, err)
	require.Len(t, rep.Kinds, 6)
	assert.Zero(t, rep.TotalFailed())

	assert.Equal(t, 2, kindByName(t, rep, canon.KindReference).Created)
	assert.Equal(t, 2, kindByName(t, rep, canon.KindComponent).Created)
	assert.Equal(t, 1, kindByName(t, rep, canon.KindFragilityModel).Created)
	assert.Equal(t, 1, kindByName(t, rep, canon.KindExperiment).Created)
	assert.Equal(t, 1, kindByName(t, rep, canon.KindBridge).Created)
	assert.Equal(t, 1, kindByName(t, rep, canon.KindFragilityCurve).Created)

	ctx := context.Background()

	// Reference display fields come from the citation payload.
	ref, err := repos.References.ByID(ctx, "soroushian2014")
	require.NoError(t, err)
	assert.Equal(t, "Seismic Response of Ceiling Systems", ref.Title)
	assert.Equal(t, "Soroushian et al.", ref.Author)
	assert.Equal(t, 2014, ref.Year)
	assert.Equal(t, "Experiment", ref.StudyType)

	// Omitted study_type defaults to Other.
	ref, err = repos.References.ByID(ctx, "retamales2013")
	require.NoError(t, err)
	assert.Equal(t, schema.StudyTypeOther, ref.StudyType)
	assert.Equal(t, "Retamales and Mosqueda", ref.Author)

	// Components get a compact storage key and hierarchy labels.
	comp, err := repos.Components.ByComponentID(ctx, "D.30.3.2")
	require.NoError(t, err)
	assert.Equal(t, "D3032", comp.ID)
	assert.Equal(t, "D - Services", comp.MajorGroup)
	assert.Equal(t, "30 - HVAC", comp.Group)

	comp, err = repos.Components.ByComponentID(ctx, "B.20.1.1.A")
	require.NoError(t, err)
	assert.Equal(t, "B2011.A", comp.ID)

	// Foreign keys store the compact component key.
	exp, err := repos.Experiments.ByID(ctx, "soroushian2014-s1-1")
	require.NoError(t, err)
	assert.Equal(t, "D3032", exp.ComponentID)
	assert.Equal(t, "soroushian2014", exp.ReferenceID)
	require.True(t, exp.EdpValue.Valid)
	assert.True(t, exp.EdpValue.Decimal.Equal(decimal.RequireFromString("0.52")))
}

// TestIngest_Idempotent verifies a second run of the same data set
// creates nothing and updates everything in place.
func TestIngest_Idempotent(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir)
	repos := memrepo.NewSet()
	ing := newIngestor(t, dir, repos)

	_, err := ing.Ingest(context.Background())
	require.NoError(t, err)

	rep, err := ing.Ingest(context.Background())
	require.NoError(t, err)
	assert.Zero(t, rep.TotalFailed())

	for _, k := range rep.Kinds {
		assert.Zero(t, k.Created, "kind %q: second run must not create", k.Kind)
		assert.Positive(t, k.Updated, "kind %q: second run updates in place", k.Kind)
	}

	// Still exactly one bridge and one curve.
	brs, err := repos.Bridges.All(context.Background())
	require.NoError(t, err)
	assert.Len(t, brs, 1)
	curves, err := repos.FragilityCurves.All(context.Background())
	require.NoError(t, err)
	assert.Len(t, curves, 1)
}

// TestIngest_UpdateSemantics verifies changed source data lands on the
// existing rows: the component storage key survives, the reference
// display fields follow the citation payload.
func TestIngest_UpdateSemantics(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir)
	repos := memrepo.NewSet()

	_, err := newIngestor(t, dir, repos).Ingest(context.Background())
	require.NoError(t, err)

	writeJSON(t, dir, canon.ComponentFile, []canon.Component{
		{ComponentID: "D.30.3.2", Name: "Packaged DX Units, revised"},
	})
	writeJSON(t, dir, canon.ReferenceFile, []canon.Reference{
		{
			ID:      "soroushian2014",
			CSLData: testCSL("Revised Title", "Soroushian"),
		},
	})

	rep, err := newIngestor(t, dir, repos).Ingest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, kindByName(t, rep, canon.KindComponent).Updated)

	ctx := context.Background()
	comp, err := repos.Components.ByComponentID(ctx, "D.30.3.2")
	require.NoError(t, err)
	assert.Equal(t, "D3032", comp.ID, "storage key is fixed at creation")
	assert.Equal(t, "Packaged DX Units, revised", comp.Name)

	ref, err := repos.References.ByID(ctx, "soroushian2014")
	require.NoError(t, err)
	assert.Equal(t, "Revised Title", ref.Title)
	assert.Equal(t, "Soroushian", ref.Author)
	assert.Equal(t, schema.StudyTypeOther, ref.StudyType,
		"omitting study_type on update falls back to the default")
}

// TestIngest_FailureIsolation verifies a bad record is collected while
// its neighbors are persisted.
func TestIngest_FailureIsolation(t *testing.T) {
	dir := t.TempDir()
	writeJSON(t, dir, canon.ComponentFile, []canon.Component{
		{ComponentID: "D.30.3.2", Name: "Packaged DX Units"},
		{ComponentID: "Z.99.9.9", Name: "Not In Taxonomy"},
		{ComponentID: "A.10.1.1", Name: "Wall Foundations"},
	})
	repos := memrepo.NewSet()

	rep, err := newIngestor(t, dir, repos).Ingest(context.Background())
	require.NoError(t, err, "record failures never abort the run")

	sum := kindByName(t, rep, canon.KindComponent)
	assert.Equal(t, 2, sum.Created)
	assert.Equal(t, 0, sum.Updated)
	assert.Equal(t, 1, sum.Failed)
	require.Len(t, sum.Failures, 1)
	assert.Equal(t, "Z.99.9.9", sum.Failures[0].NaturalKey)
	assert.Contains(t, sum.Failures[0].Reason, "not found in taxonomy")

	_, err = repos.Components.ByComponentID(context.Background(), "Z.99.9.9")
	assert.ErrorIs(t, err, repo.ErrNotFound,
		"rejected identifiers never reach the store")
}

// TestIngest_MissingFiles verifies absent collection files skip their
// kinds without failing the run.
func TestIngest_MissingFiles(t *testing.T) {
	dir := t.TempDir()
	writeJSON(t, dir, canon.ComponentFile, []canon.Component{
		{ComponentID: "D.30.3.2", Name: "Packaged DX Units"},
	})

	rep, err := newIngestor(t, dir, memrepo.NewSet()).
		Ingest(context.Background())
	require.NoError(t, err)
	require.Len(t, rep.Kinds, 6)

	assert.True(t, kindByName(t, rep, canon.KindReference).Skipped)
	assert.False(t, kindByName(t, rep, canon.KindComponent).Skipped)
	assert.Equal(t, 1, kindByName(t, rep, canon.KindComponent).Created)
	assert.True(t, kindByName(t, rep, canon.KindFragilityCurve).Skipped)
}

// TestIngest_UnparseableFile verifies a malformed collection skips its
// kind while later kinds still run.
func TestIngest_UnparseableFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, canon.ReferenceFile), []byte("{oops"), 0644))
	writeJSON(t, dir, canon.ComponentFile, []canon.Component{
		{ComponentID: "D.30.3.2", Name: "Packaged DX Units"},
	})

	rep, err := newIngestor(t, dir, memrepo.NewSet()).
		Ingest(context.Background())
	require.NoError(t, err)

	assert.True(t, kindByName(t, rep, canon.KindReference).Skipped)
	assert.Equal(t, 1, kindByName(t, rep, canon.KindComponent).Created)
}

// TestIngest_UnresolvedReferences verifies dangling natural keys are
// record-level failures.
func TestIngest_UnresolvedReferences(t *testing.T) {
	dir := t.TempDir()
	writeJSON(t, dir, canon.ComponentFile, []canon.Component{
		{ComponentID: "D.30.3.2", Name: "Packaged DX Units"},
	})
	writeJSON(t, dir, canon.ExperimentFile, []canon.Experiment{
		{
			ID:        "exp-1",
			Reference: "no-such-reference",
			Component: "D.30.3.2",
			TestType:  "Dynamic, uniaxial",
		},
	})

	rep, err := newIngestor(t, dir, memrepo.NewSet()).
		Ingest(context.Background())
	require.NoError(t, err)

	sum := kindByName(t, rep, canon.KindExperiment)
	assert.Equal(t, 1, sum.Failed)
	require.Len(t, sum.Failures, 1)
	assert.Contains(t, sum.Failures[0].Reason, "no-such-reference")
}

// TestIngest_VocabularyFailures verifies out-of-vocabulary values are
// record-level failures.
func TestIngest_VocabularyFailures(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir)
	writeJSON(t, dir, canon.ExperimentFile, []canon.Experiment{
		{
			ID:        "exp-bad-test-type",
			Reference: "soroushian2014",
			Component: "D.30.3.2",
			TestType:  "Shake Table",
		},
		{
			ID:        "exp-bad-metric",
			Reference: "soroushian2014",
			Component: "D.30.3.2",
			TestType:  "Dynamic, uniaxial",
			EdpMetric: "Roof Drift",
		},
	})
	writeJSON(t, dir, canon.BridgeFile, []canon.Bridge{})
	writeJSON(t, dir, canon.FragilityCurveFile, []canon.FragilityCurve{})

	rep, err := newIngestor(t, dir, memrepo.NewSet()).
		Ingest(context.Background())
	require.NoError(t, err)

	sum := kindByName(t, rep, canon.KindExperiment)
	assert.Equal(t, 0, sum.Created)
	assert.Equal(t, 2, sum.Failed)
}

// TestIngest_CurveRequiresDsRank verifies a curve without ds_rank is
// rejected at the record level.
func TestIngest_CurveRequiresDsRank(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir)
	writeJSON(t, dir, canon.FragilityCurveFile, []canon.FragilityCurve{
		{
			FragilityModel: "D3032.011a",
			Reference:      "soroushian2014",
			Basis:          "Experiment",
		},
	})

	rep, err := newIngestor(t, dir, memrepo.NewSet()).
		Ingest(context.Background())
	require.NoError(t, err)

	sum := kindByName(t, rep, canon.KindFragilityCurve)
	assert.Equal(t, 1, sum.Failed)
	require.Len(t, sum.Failures, 1)
	assert.Equal(t, "D3032.011a/?", sum.Failures[0].NaturalKey)
	assert.Contains(t, sum.Failures[0].Reason, "ds_rank")
}

// TestIngest_Cancelled verifies a cancelled context aborts the run.
func TestIngest_Cancelled(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newIngestor(t, dir, memrepo.NewSet()).Ingest(ctx)
	assert.Error(t, err)
}

package ioexport_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/usnistgov/NED/internal/ioexport"
	"github.com/usnistgov/NED/internal/ioingest"
	"github.com/usnistgov/NED/internal/ioregistry"
	"github.com/usnistgov/NED/internal/memrepo"
	"github.com/usnistgov/NED/pkg/canon"
	"github.com/usnistgov/NED/pkg/config"
	"github.com/usnistgov/NED/pkg/repo"
)

func writeJSON(t *testing.T, dir, file string, v any) {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	require.NoError(t,
		os.WriteFile(filepath.Join(dir, file), data, 0644))
}

func readJSON(t *testing.T, dir, file string, v any) {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, file))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, v))
}

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func intPtr(n int) *int { return &n }

// seedStore ingests a small canonical data set into fresh in-memory
// repositories.
func seedStore(t *testing.T) *repo.Set {
	t.Helper()
	dir := t.TempDir()

	writeJSON(t, dir, canon.ReferenceFile, []canon.Reference{
		{
			ID:        "soroushian2014",
			StudyType: "Experiment",
			PdfSaved:  true,
			CSLData: map[string]any{
				"title":  "Seismic Response of Ceiling Systems",
				"author": []any{map[string]any{"family": "Soroushian"}},
				"issued": map[string]any{
					"date-parts": []any{[]any{float64(2014)}},
				},
			},
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
			DsRank:         intPtr(1),
			Median:         decPtr("0.75"),
			Beta:           decPtr("0.4"),
		},
	})

	repos := memrepo.NewSet()
	reg, err := ioregistry.Load("")
	require.NoError(t, err)

	cfg := config.New()
	cfg.Update([]config.Option{config.OptIngestDataDir(dir)})

	rep, err := ioingest.New(cfg, reg, repos).Ingest(context.Background())
	require.NoError(t, err)
	require.Zero(t, rep.TotalFailed())

	return repos
}

// TestExport_WritesAllCollections verifies one file per entity kind
// appears in the output directory.
func TestExport_WritesAllCollections(t *testing.T) {
	repos := seedStore(t)
	outDir := filepath.Join(t.TempDir(), "export")

	err := ioexport.New(config.New(), repos).
		Export(context.Background(), outDir)
	require.NoError(t, err)

	files := []string{
		canon.ReferenceFile,
		canon.ComponentFile,
		canon.FragilityModelFile,
		canon.ExperimentFile,
		canon.BridgeFile,
		canon.FragilityCurveFile,
	}
	for _, f := range files {
		assert.FileExists(t, filepath.Join(outDir, f))
	}
}

// TestExport_NaturalKeys verifies exported records carry natural keys,
// never compact storage keys or derived fields.
func TestExport_NaturalKeys(t *testing.T) {
	repos := seedStore(t)
	outDir := t.TempDir()

	err := ioexport.New(config.New(), repos).
		Export(context.Background(), outDir)
	require.NoError(t, err)

	var comps []canon.Component
	readJSON(t, outDir, canon.ComponentFile, &comps)
	require.Len(t, comps, 2)
	assert.Equal(t, "B.20.1.1.A", comps[0].ComponentID)
	assert.Equal(t, "D.30.3.2", comps[1].ComponentID)

	var fms []canon.FragilityModel
	readJSON(t, outDir, canon.FragilityModelFile, &fms)
	require.Len(t, fms, 1)
	assert.Equal(t, "D.30.3.2", fms[0].Component,
		"component references export as dotted natural keys")

	var exps []canon.Experiment
	readJSON(t, outDir, canon.ExperimentFile, &exps)
	require.Len(t, exps, 1)
	assert.Equal(t, "D.30.3.2", exps[0].Component)
	assert.Equal(t, "soroushian2014", exps[0].Reference)

	// Derived reference fields stay out of the canonical form.
	data, err := os.ReadFile(filepath.Join(outDir, canon.ReferenceFile))
	require.NoError(t, err)
	var raw []map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Len(t, raw, 1)
	assert.NotContains(t, raw[0], "title")
	assert.NotContains(t, raw[0], "author")
	assert.NotContains(t, raw[0], "year")
	assert.Contains(t, raw[0], "csl_data")
}

// TestExport_RoundTrip verifies export output re-ingests into an
// equivalent store without failures or creations lost.
func TestExport_RoundTrip(t *testing.T) {
	repos := seedStore(t)
	outDir := t.TempDir()

	err := ioexport.New(config.New(), repos).
		Export(context.Background(), outDir)
	require.NoError(t, err)

	reg, err := ioregistry.Load("")
	require.NoError(t, err)
	cfg := config.New()
	cfg.Update([]config.Option{config.OptIngestDataDir(outDir)})

	fresh := memrepo.NewSet()
	rep, err := ioingest.New(cfg, reg, fresh).Ingest(context.Background())
	require.NoError(t, err)
	assert.Zero(t, rep.TotalFailed(),
		"export output must be valid ingest input")

	ctx := context.Background()
	origRefs, _ := repos.References.All(ctx)
	newRefs, _ := fresh.References.All(ctx)
	assert.Equal(t, origRefs, newRefs)

	origComps, _ := repos.Components.All(ctx)
	newComps, _ := fresh.Components.All(ctx)
	assert.Equal(t, origComps, newComps)

	origExps, _ := repos.Experiments.All(ctx)
	newExps, _ := fresh.Experiments.All(ctx)
	assert.Equal(t, origExps, newExps)

	origCurves, _ := repos.FragilityCurves.All(ctx)
	newCurves, _ := fresh.FragilityCurves.All(ctx)
	assert.Equal(t, origCurves, newCurves)
}

// TestExport_CreatesOutputDir verifies a missing output directory is
// created.
func TestExport_CreatesOutputDir(t *testing.T) {
	repos := memrepo.NewSet()
	outDir := filepath.Join(t.TempDir(), "a", "b", "export")

	err := ioexport.New(config.New(), repos).
		Export(context.Background(), outDir)
	require.NoError(t, err)
	assert.DirExists(t, outDir)
}

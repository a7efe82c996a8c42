// Package ioexport implements the canonical exporter, the inverse of
// the ingestion pipeline. It reads the six entity tables and writes
// one canonical JSON collection per kind: only source-of-truth fields,
// foreign references rewritten as natural keys, records sorted by
// natural key.
package ioexport

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/shopspring/decimal"
	"github.com/usnistgov/NED/pkg/canon"
	"github.com/usnistgov/NED/pkg/config"
	"github.com/usnistgov/NED/pkg/ned"
	"github.com/usnistgov/NED/pkg/repo"
	"github.com/usnistgov/NED/pkg/schema"
)

// exporter implements the ned.Exporter interface.
type exporter struct {
	cfg   *config.Config
	repos *repo.Set
}

// New creates a new Exporter reading from the given repositories.
func New(cfg *config.Config, repos *repo.Set) ned.Exporter {
	return &exporter{cfg: cfg, repos: repos}
}

// Export writes the six canonical collections into outDir.
func (e *exporter) Export(ctx context.Context, outDir string) error {
	startTime := time.Now()
	slog.Info("Starting canonical export", "out_dir", outDir)

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return DirError(outDir, err)
	}

	// Component storage keys never appear in canonical files; build
	// the storage-key to natural-key mapping once.
	comps, err := e.repos.Components.All(ctx)
	if err != nil {
		return err
	}
	compNatural := make(map[string]string, len(comps))
	for _, c := range comps {
		compNatural[c.ID] = c.ComponentID
	}

	gn.Info("(1/6) Exporting references...")
	if err := e.exportReferences(ctx, outDir); err != nil {
		return err
	}

	gn.Info("(2/6) Exporting components...")
	if err := e.exportComponents(outDir, comps); err != nil {
		return err
	}

	gn.Info("(3/6) Exporting fragility models...")
	if err := e.exportFragilityModels(ctx, outDir, compNatural); err != nil {
		return err
	}

	gn.Info("(4/6) Exporting experiments...")
	if err := e.exportExperiments(ctx, outDir, compNatural); err != nil {
		return err
	}

	gn.Info("(5/6) Exporting experiment/fragility bridges...")
	if err := e.exportBridges(ctx, outDir); err != nil {
		return err
	}

	gn.Info("(6/6) Exporting fragility curves...")
	if err := e.exportFragilityCurves(ctx, outDir); err != nil {
		return err
	}

	totalDuration := time.Since(startTime)
	slog.Info("Export complete",
		"out_dir", outDir,
		"duration", gnfmt.TimeString(totalDuration.Seconds()),
	)
	gn.Info("Export complete. Elapsed time: <em>%s</em>",
		gnfmt.TimeString(totalDuration.Seconds()))

	return nil
}

// writeCollection encodes records as pretty JSON into one canonical
// file.
func writeCollection(outDir, file string, v any, count int) error {
	enc := gnfmt.GNjson{Pretty: true}
	data, err := enc.Encode(v)
	if err != nil {
		return EncodeError(file, err)
	}

	path := filepath.Join(outDir, file)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return WriteError(path, err)
	}

	gn.Message("<em>Wrote %s records to %s</em>",
		humanize.Comma(int64(count)), file)
	return nil
}

func (e *exporter) exportReferences(
	ctx context.Context, outDir string,
) error {
	rows, err := e.repos.References.All(ctx)
	if err != nil {
		return err
	}

	recs := make([]canon.Reference, 0, len(rows))
	for _, r := range rows {
		recs = append(recs, canon.Reference{
			ID:        r.ID,
			StudyType: r.StudyType,
			CompType:  r.CompType,
			PdfSaved:  r.PdfSaved,
			CSLData:   r.CSLData,
		})
	}

	return writeCollection(outDir, canon.ReferenceFile, recs, len(recs))
}

func (e *exporter) exportComponents(
	outDir string, rows []schema.Component,
) error {
	recs := make([]canon.Component, 0, len(rows))
	for _, c := range rows {
		recs = append(recs, canon.Component{
			ComponentID: c.ComponentID,
			Name:        c.Name,
		})
	}

	return writeCollection(outDir, canon.ComponentFile, recs, len(recs))
}

func (e *exporter) exportFragilityModels(
	ctx context.Context, outDir string, compNatural map[string]string,
) error {
	rows, err := e.repos.FragilityModels.All(ctx)
	if err != nil {
		return err
	}

	recs := make([]canon.FragilityModel, 0, len(rows))
	for _, fm := range rows {
		recs = append(recs, canon.FragilityModel{
			ID:              fm.ID,
			P58Fragility:    fm.P58Fragility,
			Component:       compNatural[fm.ComponentID],
			CompDetail:      fm.CompDetail,
			Material:        fm.Material,
			SizeClass:       fm.SizeClass,
			CompDescription: fm.CompDescription,
		})
	}

	return writeCollection(
		outDir, canon.FragilityModelFile, recs, len(recs),
	)
}

func (e *exporter) exportExperiments(
	ctx context.Context, outDir string, compNatural map[string]string,
) error {
	rows, err := e.repos.Experiments.All(ctx)
	if err != nil {
		return err
	}

	recs := make([]canon.Experiment, 0, len(rows))
	for _, x := range rows {
		recs = append(recs, canon.Experiment{
			ID:                         x.ID,
			Reference:                  x.ReferenceID,
			Component:                  compNatural[x.ComponentID],
			Specimen:                   x.Specimen,
			SpecimenInspectionSequence: x.SpecimenInspectionSequence,
			Reviewer:                   x.Reviewer,
			CompDetail:                 x.CompDetail,
			Material:                   x.Material,
			SizeClass:                  x.SizeClass,
			TestType:                   x.TestType,
			LoadingProtocol:            x.LoadingProtocol,
			PeakTestAmplitude:          x.PeakTestAmplitude,
			Location:                   x.Location,
			GoverningDesignStandard:    x.GoverningDesignStandard,
			DesignObjective:            x.DesignObjective,
			CompDescription:            x.CompDescription,
			DsDescription:              x.DsDescription,
			PriorDamage:                x.PriorDamage,
			PriorDamageRepaired:        boolPtr(x.PriorDamageRepaired),
			EdpMetric:                  x.EdpMetric,
			EdpUnit:                    x.EdpUnit,
			EdpValue:                   decimalPtr(x.EdpValue),
			AltEdpMetric:               x.AltEdpMetric,
			AltEdpUnit:                 x.AltEdpUnit,
			AltEdpValue:                decimalPtr(x.AltEdpValue),
			DsRank:                     intPtr(x.DsRank),
			DsClass:                    x.DsClass,
			Notes:                      x.Notes,
		})
	}

	return writeCollection(outDir, canon.ExperimentFile, recs, len(recs))
}

func (e *exporter) exportBridges(
	ctx context.Context, outDir string,
) error {
	rows, err := e.repos.Bridges.All(ctx)
	if err != nil {
		return err
	}

	recs := make([]canon.Bridge, 0, len(rows))
	for _, b := range rows {
		recs = append(recs, canon.Bridge{
			Experiment:     b.ExperimentID,
			FragilityModel: b.FragilityModelID,
		})
	}

	return writeCollection(outDir, canon.BridgeFile, recs, len(recs))
}

func (e *exporter) exportFragilityCurves(
	ctx context.Context, outDir string,
) error {
	rows, err := e.repos.FragilityCurves.All(ctx)
	if err != nil {
		return err
	}

	recs := make([]canon.FragilityCurve, 0, len(rows))
	for _, c := range rows {
		dsRank := c.DsRank
		recs = append(recs, canon.FragilityCurve{
			FragilityModel:  c.FragilityModelID,
			Reviewer:        c.Reviewer,
			Source:          c.Source,
			Basis:           c.Basis,
			NumObservations: intPtr(c.NumObservations),
			Reference:       c.ReferenceID,
			EdpMetric:       c.EdpMetric,
			EdpUnit:         c.EdpUnit,
			DsRank:          &dsRank,
			DsDescription:   c.DsDescription,
			Median:          decimalPtr(c.Median),
			Beta:            decimalPtr(c.Beta),
			Probability:     decimalPtr(c.Probability),
		})
	}

	return writeCollection(
		outDir, canon.FragilityCurveFile, recs, len(recs),
	)
}

func decimalPtr(v decimal.NullDecimal) *decimal.Decimal {
	if !v.Valid {
		return nil
	}
	d := v.Decimal
	return &d
}

func boolPtr(v sql.NullBool) *bool {
	if !v.Valid {
		return nil
	}
	b := v.Bool
	return &b
}

func intPtr(v sql.NullInt32) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int32)
	return &n
}

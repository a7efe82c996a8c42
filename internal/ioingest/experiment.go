package ioingest

import (
	"context"
	"database/sql"
	"errors"

	"github.com/cheggaaa/pb/v3"
	"github.com/shopspring/decimal"
	"github.com/usnistgov/NED/pkg/canon"
	"github.com/usnistgov/NED/pkg/ned"
	"github.com/usnistgov/NED/pkg/repo"
	"github.com/usnistgov/NED/pkg/schema"
)

func (p *ingestor) ingestExperiments(ctx context.Context) ned.KindSummary {
	var recs []canon.Experiment
	ok, err := p.loadCollection(canon.ExperimentFile, &recs)
	sum, proceed := beginKind(
		canon.KindExperiment, canon.ExperimentFile, ok, err,
	)
	if !proceed {
		return sum
	}

	bar := pb.Full.Start(len(recs))
	bar.Set("prefix", "Processing experiments: ")
	bar.Set(pb.CleanOnFinish, true)
	defer bar.Finish()

	for i := range recs {
		bar.Increment()
		rec := &recs[i]

		created, err := p.upsertExperiment(ctx, rec)
		if err != nil {
			recordFailure(&sum, canon.KindExperiment, rec.ID, err)
			continue
		}
		if created {
			sum.Created++
		} else {
			sum.Updated++
		}
	}

	return sum
}

func (p *ingestor) upsertExperiment(
	ctx context.Context, rec *canon.Experiment,
) (bool, error) {
	if rec.ID == "" {
		return false, missingFieldError("id")
	}

	ref, err := p.resolveReference(ctx, rec.Reference)
	if err != nil {
		return false, err
	}
	comp, err := p.resolveComponent(ctx, rec.Component)
	if err != nil {
		return false, err
	}

	if !schema.ValidTestType(rec.TestType) {
		return false, vocabularyError("test_type", rec.TestType)
	}
	if !schema.ValidEdpMetric(rec.EdpMetric) {
		return false, vocabularyError("edp_metric", rec.EdpMetric)
	}
	if !schema.ValidEdpUnit(rec.EdpUnit) {
		return false, vocabularyError("edp_unit", rec.EdpUnit)
	}
	if !schema.ValidEdpMetric(rec.AltEdpMetric) {
		return false, vocabularyError("alt_edp_metric", rec.AltEdpMetric)
	}
	if !schema.ValidEdpUnit(rec.AltEdpUnit) {
		return false, vocabularyError("alt_edp_unit", rec.AltEdpUnit)
	}
	if !schema.ValidDsClass(rec.DsClass) {
		return false, vocabularyError("ds_class", rec.DsClass)
	}

	row := &schema.Experiment{
		ID:                         rec.ID,
		ReferenceID:                ref.ID,
		ComponentID:                comp.ID,
		Specimen:                   rec.Specimen,
		SpecimenInspectionSequence: rec.SpecimenInspectionSequence,
		Reviewer:                   rec.Reviewer,
		CompDetail:                 rec.CompDetail,
		Material:                   rec.Material,
		SizeClass:                  rec.SizeClass,
		TestType:                   rec.TestType,
		LoadingProtocol:            rec.LoadingProtocol,
		PeakTestAmplitude:          rec.PeakTestAmplitude,
		Location:                   rec.Location,
		GoverningDesignStandard:    rec.GoverningDesignStandard,
		DesignObjective:            rec.DesignObjective,
		CompDescription:            rec.CompDescription,
		DsDescription:              rec.DsDescription,
		PriorDamage:                rec.PriorDamage,
		PriorDamageRepaired:        nullBool(rec.PriorDamageRepaired),
		EdpMetric:                  rec.EdpMetric,
		EdpUnit:                    rec.EdpUnit,
		EdpValue:                   nullDecimal(rec.EdpValue),
		AltEdpMetric:               rec.AltEdpMetric,
		AltEdpUnit:                 rec.AltEdpUnit,
		AltEdpValue:                nullDecimal(rec.AltEdpValue),
		DsRank:                     nullInt32(rec.DsRank),
		DsClass:                    rec.DsClass,
		Notes:                      rec.Notes,
	}

	_, err = p.repos.Experiments.ByID(ctx, rec.ID)
	if errors.Is(err, repo.ErrNotFound) {
		return true, p.repos.Experiments.Create(ctx, row)
	}
	if err != nil {
		return false, err
	}

	return false, p.repos.Experiments.Update(ctx, row)
}

func nullDecimal(v *decimal.Decimal) decimal.NullDecimal {
	if v == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *v, Valid: true}
}

func nullBool(v *bool) sql.NullBool {
	if v == nil {
		return sql.NullBool{}
	}
	return sql.NullBool{Bool: *v, Valid: true}
}

func nullInt32(v *int) sql.NullInt32 {
	if v == nil {
		return sql.NullInt32{}
	}
	return sql.NullInt32{Int32: int32(*v), Valid: true}
}

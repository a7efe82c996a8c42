package ioingest

import (
	"context"
	"errors"
	"fmt"

	"github.com/cheggaaa/pb/v3"
	"github.com/usnistgov/NED/pkg/canon"
	"github.com/usnistgov/NED/pkg/ned"
	"github.com/usnistgov/NED/pkg/repo"
	"github.com/usnistgov/NED/pkg/schema"
)

func (p *ingestor) ingestFragilityCurves(
	ctx context.Context,
) ned.KindSummary {
	var recs []canon.FragilityCurve
	ok, err := p.loadCollection(canon.FragilityCurveFile, &recs)
	sum, proceed := beginKind(
		canon.KindFragilityCurve, canon.FragilityCurveFile, ok, err,
	)
	if !proceed {
		return sum
	}

	bar := pb.Full.Start(len(recs))
	bar.Set("prefix", "Processing fragility curves: ")
	bar.Set(pb.CleanOnFinish, true)
	defer bar.Finish()

	for i := range recs {
		bar.Increment()
		rec := &recs[i]
		key := curveKey(rec)

		created, err := p.upsertFragilityCurve(ctx, rec)
		if err != nil {
			recordFailure(&sum, canon.KindFragilityCurve, key, err)
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

func curveKey(rec *canon.FragilityCurve) string {
	if rec.DsRank == nil {
		return rec.FragilityModel + "/?"
	}
	return fmt.Sprintf("%s/%d", rec.FragilityModel, *rec.DsRank)
}

func (p *ingestor) upsertFragilityCurve(
	ctx context.Context, rec *canon.FragilityCurve,
) (bool, error) {
	if rec.FragilityModel == "" {
		return false, missingFieldError("fragility_model")
	}
	if rec.DsRank == nil {
		return false, missingFieldError("ds_rank")
	}

	fm, err := p.repos.FragilityModels.ByID(ctx, rec.FragilityModel)
	if errors.Is(err, repo.ErrNotFound) {
		return false, unresolvedRefError(
			"fragility model", rec.FragilityModel,
		)
	}
	if err != nil {
		return false, err
	}

	ref, err := p.resolveReference(ctx, rec.Reference)
	if err != nil {
		return false, err
	}

	if !schema.ValidCurveBasis(rec.Basis) {
		return false, vocabularyError("basis", rec.Basis)
	}
	if !schema.ValidEdpMetric(rec.EdpMetric) {
		return false, vocabularyError("edp_metric", rec.EdpMetric)
	}
	if !schema.ValidEdpUnit(rec.EdpUnit) {
		return false, vocabularyError("edp_unit", rec.EdpUnit)
	}

	row := &schema.FragilityCurve{
		FragilityModelID: fm.ID,
		Reviewer:         rec.Reviewer,
		Source:           rec.Source,
		Basis:            rec.Basis,
		NumObservations:  nullInt32(rec.NumObservations),
		ReferenceID:      ref.ID,
		EdpMetric:        rec.EdpMetric,
		EdpUnit:          rec.EdpUnit,
		DsRank:           *rec.DsRank,
		DsDescription:    rec.DsDescription,
		Median:           nullDecimal(rec.Median),
		Beta:             nullDecimal(rec.Beta),
		Probability:      nullDecimal(rec.Probability),
	}

	existing, err := p.repos.FragilityCurves.ByKey(
		ctx, fm.ID, *rec.DsRank,
	)
	if errors.Is(err, repo.ErrNotFound) {
		return true, p.repos.FragilityCurves.Create(ctx, row)
	}
	if err != nil {
		return false, err
	}

	row.ID = existing.ID
	return false, p.repos.FragilityCurves.Update(ctx, row)
}

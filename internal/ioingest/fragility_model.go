package ioingest

import (
	"context"
	"errors"

	"github.com/cheggaaa/pb/v3"
	"github.com/usnistgov/NED/pkg/canon"
	"github.com/usnistgov/NED/pkg/ned"
	"github.com/usnistgov/NED/pkg/repo"
	"github.com/usnistgov/NED/pkg/schema"
)

func (p *ingestor) ingestFragilityModels(
	ctx context.Context,
) ned.KindSummary {
	var recs []canon.FragilityModel
	ok, err := p.loadCollection(canon.FragilityModelFile, &recs)
	sum, proceed := beginKind(
		canon.KindFragilityModel, canon.FragilityModelFile, ok, err,
	)
	if !proceed {
		return sum
	}

	bar := pb.Full.Start(len(recs))
	bar.Set("prefix", "Processing fragility models: ")
	bar.Set(pb.CleanOnFinish, true)
	defer bar.Finish()

	for i := range recs {
		bar.Increment()
		rec := &recs[i]

		created, err := p.upsertFragilityModel(ctx, rec)
		if err != nil {
			recordFailure(&sum, canon.KindFragilityModel, rec.ID, err)
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

func (p *ingestor) upsertFragilityModel(
	ctx context.Context, rec *canon.FragilityModel,
) (bool, error) {
	if rec.ID == "" {
		return false, missingFieldError("id")
	}
	if rec.CompDescription == "" {
		return false, missingFieldError("comp_description")
	}

	comp, err := p.resolveComponent(ctx, rec.Component)
	if err != nil {
		return false, err
	}

	row := &schema.FragilityModel{
		ID:              rec.ID,
		P58Fragility:    rec.P58Fragility,
		ComponentID:     comp.ID,
		CompDetail:      rec.CompDetail,
		Material:        rec.Material,
		SizeClass:       rec.SizeClass,
		CompDescription: rec.CompDescription,
	}

	_, err = p.repos.FragilityModels.ByID(ctx, rec.ID)
	if errors.Is(err, repo.ErrNotFound) {
		return true, p.repos.FragilityModels.Create(ctx, row)
	}
	if err != nil {
		return false, err
	}

	return false, p.repos.FragilityModels.Update(ctx, row)
}

// resolveComponent maps a dotted component natural key to its stored
// row. An unresolved key is a record-level failure for the caller.
func (p *ingestor) resolveComponent(
	ctx context.Context, componentID string,
) (*schema.Component, error) {
	if componentID == "" {
		return nil, missingFieldError("component")
	}
	comp, err := p.repos.Components.ByComponentID(ctx, componentID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, unresolvedRefError("component", componentID)
	}
	if err != nil {
		return nil, err
	}
	return comp, nil
}

// resolveReference maps a citation id to its stored row.
func (p *ingestor) resolveReference(
	ctx context.Context, referenceID string,
) (*schema.Reference, error) {
	if referenceID == "" {
		return nil, missingFieldError("reference")
	}
	ref, err := p.repos.References.ByID(ctx, referenceID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, unresolvedRefError("reference", referenceID)
	}
	if err != nil {
		return nil, err
	}
	return ref, nil
}

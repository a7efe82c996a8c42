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

func (p *ingestor) ingestBridges(ctx context.Context) ned.KindSummary {
	var recs []canon.Bridge
	ok, err := p.loadCollection(canon.BridgeFile, &recs)
	sum, proceed := beginKind(canon.KindBridge, canon.BridgeFile, ok, err)
	if !proceed {
		return sum
	}

	bar := pb.Full.Start(len(recs))
	bar.Set("prefix", "Processing bridges: ")
	bar.Set(pb.CleanOnFinish, true)
	defer bar.Finish()

	for i := range recs {
		bar.Increment()
		rec := &recs[i]
		key := rec.Experiment + "/" + rec.FragilityModel

		created, err := p.upsertBridge(ctx, rec)
		if err != nil {
			recordFailure(&sum, canon.KindBridge, key, err)
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

// upsertBridge creates a single association row. The pair has no
// non-key fields, so an existing row is left untouched and counted as
// an update.
func (p *ingestor) upsertBridge(
	ctx context.Context, rec *canon.Bridge,
) (bool, error) {
	if rec.Experiment == "" {
		return false, missingFieldError("experiment")
	}
	if rec.FragilityModel == "" {
		return false, missingFieldError("fragility_model")
	}

	_, err := p.repos.Experiments.ByID(ctx, rec.Experiment)
	if errors.Is(err, repo.ErrNotFound) {
		return false, unresolvedRefError("experiment", rec.Experiment)
	}
	if err != nil {
		return false, err
	}

	_, err = p.repos.FragilityModels.ByID(ctx, rec.FragilityModel)
	if errors.Is(err, repo.ErrNotFound) {
		return false, unresolvedRefError(
			"fragility model", rec.FragilityModel,
		)
	}
	if err != nil {
		return false, err
	}

	_, err = p.repos.Bridges.ByPair(ctx, rec.Experiment, rec.FragilityModel)
	if errors.Is(err, repo.ErrNotFound) {
		row := &schema.ExperimentFragilityModelBridge{
			ExperimentID:     rec.Experiment,
			FragilityModelID: rec.FragilityModel,
		}
		return true, p.repos.Bridges.Create(ctx, row)
	}
	if err != nil {
		return false, err
	}

	return false, nil
}

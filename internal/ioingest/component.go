package ioingest

import (
	"context"
	"errors"

	"github.com/cheggaaa/pb/v3"
	"github.com/usnistgov/NED/pkg/canon"
	"github.com/usnistgov/NED/pkg/ned"
	"github.com/usnistgov/NED/pkg/nistir"
	"github.com/usnistgov/NED/pkg/repo"
	"github.com/usnistgov/NED/pkg/schema"
)

func (p *ingestor) ingestComponents(ctx context.Context) ned.KindSummary {
	var recs []canon.Component
	ok, err := p.loadCollection(canon.ComponentFile, &recs)
	sum, proceed := beginKind(canon.KindComponent, canon.ComponentFile, ok, err)
	if !proceed {
		return sum
	}

	bar := pb.Full.Start(len(recs))
	bar.Set("prefix", "Processing components: ")
	bar.Set(pb.CleanOnFinish, true)
	defer bar.Finish()

	for i := range recs {
		bar.Increment()
		rec := &recs[i]

		created, err := p.upsertComponent(ctx, rec)
		if err != nil {
			recordFailure(&sum, canon.KindComponent, rec.ComponentID, err)
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

// upsertComponent creates or updates a single Component. The taxonomy
// check gates existence: an identifier the registry rejects never
// reaches the store. The compact storage key is fixed at creation;
// hierarchy labels are rederived on every save.
func (p *ingestor) upsertComponent(
	ctx context.Context, rec *canon.Component,
) (bool, error) {
	if rec.ComponentID == "" {
		return false, missingFieldError("component_id")
	}
	if rec.Name == "" {
		return false, missingFieldError("name")
	}

	if err := p.reg.Validate(rec.ComponentID); err != nil {
		return false, err
	}
	labels := p.reg.HierarchyLabels(rec.ComponentID)

	row := &schema.Component{
		ComponentID: rec.ComponentID,
		Name:        rec.Name,
		MajorGroup:  labels.MajorGroup,
		Group:       labels.Group,
		Element:     labels.Element,
		Subelement:  labels.Subelement,
	}

	existing, err := p.repos.Components.ByComponentID(ctx, rec.ComponentID)
	if errors.Is(err, repo.ErrNotFound) {
		row.ID = nistir.CompactID(rec.ComponentID)
		return true, p.repos.Components.Create(ctx, row)
	}
	if err != nil {
		return false, err
	}

	row.ID = existing.ID
	return false, p.repos.Components.Update(ctx, row)
}

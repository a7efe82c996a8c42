package ioingest

import (
	"context"
	"errors"

	"github.com/cheggaaa/pb/v3"
	"github.com/usnistgov/NED/pkg/canon"
	"github.com/usnistgov/NED/pkg/citation"
	"github.com/usnistgov/NED/pkg/ned"
	"github.com/usnistgov/NED/pkg/repo"
	"github.com/usnistgov/NED/pkg/schema"
)

func (p *ingestor) ingestReferences(ctx context.Context) ned.KindSummary {
	var recs []canon.Reference
	ok, err := p.loadCollection(canon.ReferenceFile, &recs)
	sum, proceed := beginKind(canon.KindReference, canon.ReferenceFile, ok, err)
	if !proceed {
		return sum
	}

	bar := pb.Full.Start(len(recs))
	bar.Set("prefix", "Processing references: ")
	bar.Set(pb.CleanOnFinish, true)
	defer bar.Finish()

	for i := range recs {
		bar.Increment()
		rec := &recs[i]

		created, err := p.upsertReference(ctx, rec)
		if err != nil {
			recordFailure(&sum, canon.KindReference, rec.ID, err)
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

// upsertReference creates or updates a single Reference. The display
// fields are always recomputed from the citation payload; whatever is
// stored can never disagree with it.
func (p *ingestor) upsertReference(
	ctx context.Context, rec *canon.Reference,
) (bool, error) {
	if rec.ID == "" {
		return false, missingFieldError("id")
	}

	display, err := citation.Derive(rec.CSLData)
	if err != nil {
		return false, err
	}

	studyType := rec.StudyType
	if studyType == "" {
		studyType = schema.StudyTypeOther
	}
	if !schema.ValidStudyType(studyType) {
		return false, vocabularyError("study_type", studyType)
	}

	row := &schema.Reference{
		ID:        rec.ID,
		Title:     display.Title,
		Author:    display.Author,
		Year:      display.Year,
		StudyType: studyType,
		CompType:  rec.CompType,
		PdfSaved:  rec.PdfSaved,
		CSLData:   rec.CSLData,
	}

	_, err = p.repos.References.ByID(ctx, rec.ID)
	if errors.Is(err, repo.ErrNotFound) {
		return true, p.repos.References.Create(ctx, row)
	}
	if err != nil {
		return false, err
	}

	return false, p.repos.References.Update(ctx, row)
}

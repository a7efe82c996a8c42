// Package ioingest implements the canonical ingestion pipeline: six
// entity kinds, processed in dependency order, each synchronized with
// the store by natural-key idempotent create-or-update. This is an
// impure I/O package; the validation and derivation rules it applies
// come from pkg/nistir and pkg/citation.
package ioingest

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/usnistgov/NED/pkg/canon"
	"github.com/usnistgov/NED/pkg/config"
	"github.com/usnistgov/NED/pkg/ned"
	"github.com/usnistgov/NED/pkg/nistir"
	"github.com/usnistgov/NED/pkg/repo"
)

// ingestor implements the ned.Ingestor interface.
type ingestor struct {
	cfg   *config.Config
	reg   *nistir.Registry
	repos *repo.Set
}

// New creates a new Ingestor working against the given repositories.
// The registry must already be loaded; a pipeline cannot run without
// it.
func New(
	cfg *config.Config,
	reg *nistir.Registry,
	repos *repo.Set,
) ned.Ingestor {
	return &ingestor{cfg: cfg, reg: reg, repos: repos}
}

// Ingest synchronizes the store with the canonical collections found
// in the configured data directory. The six entity kinds are explicit
// sequential steps: every later kind may reference rows the earlier
// steps created.
func (p *ingestor) Ingest(ctx context.Context) (*ned.Report, error) {
	startTime := time.Now()
	slog.Info("Starting canonical ingestion",
		"data_dir", p.cfg.Ingest.DataDir,
		"dry_run", p.cfg.Ingest.DryRun,
	)

	res := &ned.Report{}

	if err := ctx.Err(); err != nil {
		return res, CancelledError(err)
	}
	gn.Info("(1/6) Ingesting references...")
	sum := p.ingestReferences(ctx)
	res.Add(sum)
	reportKind(sum)

	if err := ctx.Err(); err != nil {
		return res, CancelledError(err)
	}
	gn.Info("(2/6) Ingesting components...")
	sum = p.ingestComponents(ctx)
	res.Add(sum)
	reportKind(sum)

	if err := ctx.Err(); err != nil {
		return res, CancelledError(err)
	}
	gn.Info("(3/6) Ingesting fragility models...")
	sum = p.ingestFragilityModels(ctx)
	res.Add(sum)
	reportKind(sum)

	if err := ctx.Err(); err != nil {
		return res, CancelledError(err)
	}
	gn.Info("(4/6) Ingesting experiments...")
	sum = p.ingestExperiments(ctx)
	res.Add(sum)
	reportKind(sum)

	if err := ctx.Err(); err != nil {
		return res, CancelledError(err)
	}
	gn.Info("(5/6) Ingesting experiment/fragility bridges...")
	sum = p.ingestBridges(ctx)
	res.Add(sum)
	reportKind(sum)

	if err := ctx.Err(); err != nil {
		return res, CancelledError(err)
	}
	gn.Info("(6/6) Ingesting fragility curves...")
	sum = p.ingestFragilityCurves(ctx)
	res.Add(sum)
	reportKind(sum)

	totalDuration := time.Since(startTime)
	slog.Info("Ingestion complete",
		"failed_records", res.TotalFailed(),
		"duration", gnfmt.TimeString(totalDuration.Seconds()),
	)
	gn.Info(`Ingestion complete
Failed records: %d.
		Elapsed time: <em>%s</em>
`,
		res.TotalFailed(),
		gnfmt.TimeString(totalDuration.Seconds()),
	)

	return res, nil
}

// loadCollection reads and parses one canonical collection file.
// A missing file is not an error; it returns ok == false so the caller
// can skip the kind with a warning.
func (p *ingestor) loadCollection(
	file string, v any,
) (bool, error) {
	path := filepath.Join(p.cfg.Ingest.DataDir, file)

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, FileReadError(path, err)
	}

	enc := gnfmt.GNjson{}
	if err := enc.Decode(data, v); err != nil {
		return false, FileParseError(path, err)
	}

	return true, nil
}

// beginKind handles the collection-file outcomes shared by all six
// steps: absent file (warn, skip kind), unparseable file (error, skip
// kind), present file (proceed).
func beginKind(
	kind canon.Kind, file string, ok bool, err error,
) (ned.KindSummary, bool) {
	sum := ned.KindSummary{Kind: string(kind)}

	if err != nil {
		sum.Skipped = true
		slog.Error("Cannot load collection, skipping kind",
			"kind", kind, "file", file, "error", err)
		gn.PrintErrorMessage(err)
		return sum, false
	}

	if !ok {
		sum.Skipped = true
		slog.Warn("Collection file absent, skipping kind",
			"kind", kind, "file", file)
		gn.Warn("No <em>%s</em> file found, skipping", file)
		return sum, false
	}

	return sum, true
}

// recordFailure registers one failed record and moves on.
func recordFailure(
	sum *ned.KindSummary, kind canon.Kind, key string, err error,
) {
	sum.Failed++
	sum.Failures = append(sum.Failures, ned.RecordFailure{
		NaturalKey: key,
		Reason:     err.Error(),
	})
	slog.Error("Record failed",
		"kind", kind, "natural_key", key, "error", err)
}

// reportKind prints the per-kind summary and one line per failure.
func reportKind(sum ned.KindSummary) {
	if sum.Skipped {
		return
	}

	slog.Info("Collection processed",
		"kind", sum.Kind,
		"created", sum.Created,
		"updated", sum.Updated,
		"failed", sum.Failed,
	)

	msg := fmt.Sprintf(
		"<em>Created %s, updated %s, failed %s records</em>",
		humanize.Comma(int64(sum.Created)),
		humanize.Comma(int64(sum.Updated)),
		humanize.Comma(int64(sum.Failed)),
	)
	gn.Message(msg)

	for _, f := range sum.Failures {
		gn.Warn("  <em>%s</em>: %s", f.NaturalKey, f.Reason)
	}
}

package cmd

import (
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
	"github.com/usnistgov/NED/internal/iodb"
	"github.com/usnistgov/NED/internal/ioingest"
	"github.com/usnistgov/NED/internal/iorepo"
	"github.com/usnistgov/NED/internal/ioregistry"
	"github.com/usnistgov/NED/internal/memrepo"
	"github.com/usnistgov/NED/pkg/config"
	"github.com/usnistgov/NED/pkg/repo"
)

// getIngestCmd represents the ingest command.
func getIngestCmd() *cobra.Command {
	ingestCmd := &cobra.Command{
		Use:   "ingest",
		Short: "Synchronize the database from canonical JSON collections",
		Long: `Reads the canonical JSON collections from the data directory
and synchronizes the database with them: records are created or
updated by natural key, processed in dependency order.

Individual record failures are collected and reported; they never
abort the run. Missing collection files are skipped with a warning.

With --dry-run all persistence goes to an in-memory store, so the
canonical files can be validated without a database.`,
		RunE: runIngest,
	}

	ingestCmd.Flags().StringP("data-dir", "d", "",
		"directory with canonical JSON collections")
	ingestCmd.Flags().String("labels", "",
		"JSON file overriding the embedded NISTIR label map")
	ingestCmd.Flags().Bool("dry-run", false,
		"validate against an in-memory store, do not touch the database")

	return ingestCmd
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if cmd.Flags().Changed("data-dir") {
		dataDir, _ := cmd.Flags().GetString("data-dir")
		cfg.Update([]config.Option{config.OptIngestDataDir(dataDir)})
	}
	if cmd.Flags().Changed("labels") {
		labels, _ := cmd.Flags().GetString("labels")
		cfg.Update([]config.Option{config.OptIngestLabelsFile(labels)})
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	cfg.Update([]config.Option{config.OptIngestDryRun(dryRun)})

	reg, err := ioregistry.Load(cfg.Ingest.LabelsFile)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var repos *repo.Set
	if cfg.Ingest.DryRun {
		gn.Info("Dry run: using an in-memory store, " +
			"the database will not be touched")
		repos = memrepo.NewSet()
	} else {
		op := iodb.NewPgxOperator()
		if err = op.Connect(ctx, &cfg.Database); err != nil {
			gn.PrintErrorMessage(err)
			return err
		}
		defer op.Close()

		gn.Info("Connected to database: <em>%s@%s:%d/%s</em>",
			cfg.Database.User, cfg.Database.Host,
			cfg.Database.Port, cfg.Database.Database,
		)

		hasTables, err := op.HasTables(ctx)
		if err != nil {
			gn.PrintErrorMessage(err)
			return err
		}
		if !hasTables {
			err = EmptyDatabaseError(cfg.Database.Database)
			gn.PrintErrorMessage(err)
			return err
		}

		repos, err = iorepo.NewSet(op.Pool())
		if err != nil {
			gn.PrintErrorMessage(err)
			return err
		}
	}

	ing := ioingest.New(cfg, reg, repos)
	if _, err = ing.Ingest(ctx); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	return nil
}

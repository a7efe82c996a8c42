package cmd

import (
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
	"github.com/usnistgov/NED/internal/iodb"
	"github.com/usnistgov/NED/internal/ioexport"
	"github.com/usnistgov/NED/internal/iorepo"
)

// getExportCmd represents the export command.
func getExportCmd() *cobra.Command {
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write canonical JSON collections from the database",
		Long: `Reads the six catalog tables and writes one canonical JSON
collection per entity kind into the output directory. Only
source-of-truth fields are written; foreign references appear as
natural keys. The result of export is suitable as ingest input.`,
		RunE: runExport,
	}

	exportCmd.Flags().StringP("out", "o", "export",
		"directory for the exported JSON collections")

	return exportCmd
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	outDir, err := cmd.Flags().GetString("out")
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

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

	repos, err := iorepo.NewSet(op.Pool())
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	exp := ioexport.New(cfg, repos)
	if err = exp.Export(ctx, outDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	return nil
}

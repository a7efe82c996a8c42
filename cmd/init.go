package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/spf13/cobra"
	"github.com/usnistgov/NED/internal/iodb"
	"github.com/usnistgov/NED/internal/ioschema"
)

// getInitCmd represents the init command.
func getInitCmd() *cobra.Command {
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create the NED database schema",
		Long: `Creates the six catalog tables in the configured PostgreSQL
database.

If the database already contains tables, the command asks for
confirmation before dropping them. Use --force to skip the prompt.`,
		RunE: runInit,
	}

	initCmd.Flags().BoolP("force", "f", false,
		"drop existing tables without confirmation")

	return initCmd
}

func runInit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	force, err := cmd.Flags().GetBool("force")
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

	if hasTables && !force {
		gn.Warn("Database <em>%s</em> already contains tables.",
			cfg.Database.Database)
		fmt.Print("Drop all tables and recreate the schema? (y/N): ")

		reader := bufio.NewReader(os.Stdin)
		answer, err := reader.ReadString('\n')
		if err != nil {
			gn.PrintErrorMessage(err)
			return err
		}

		answer = strings.ToLower(strings.TrimSpace(answer))
		if answer != "y" && answer != "yes" {
			gn.Info("Cancelled, database was not changed")
			return nil
		}
		force = true
	}

	if force && hasTables {
		gn.Info("Dropping all existing tables...")
	}

	mgr := ioschema.NewManager(op)
	if err = mgr.Create(ctx, force && hasTables); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Message("Database schema created successfully")
	gn.Info(`Next steps:
	Run <em>'ned ingest'</em> to load canonical data
`)

	return nil
}

package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetInitCmd verifies the init command and its force flag.
func TestGetInitCmd(t *testing.T) {
	cmd := getInitCmd()
	require.NotNil(t, cmd)
	assert.Equal(t, "init", cmd.Use)

	flag := cmd.Flags().Lookup("force")
	require.NotNil(t, flag, "init should have a --force flag")
	assert.Equal(t, "f", flag.Shorthand)
	assert.Equal(t, "false", flag.DefValue)
}

// TestGetIngestCmd verifies the ingest command and its flags.
func TestGetIngestCmd(t *testing.T) {
	cmd := getIngestCmd()
	require.NotNil(t, cmd)
	assert.Equal(t, "ingest", cmd.Use)

	flag := cmd.Flags().Lookup("data-dir")
	require.NotNil(t, flag, "ingest should have a --data-dir flag")
	assert.Equal(t, "d", flag.Shorthand)

	require.NotNil(t, cmd.Flags().Lookup("labels"),
		"ingest should have a --labels flag")

	flag = cmd.Flags().Lookup("dry-run")
	require.NotNil(t, flag, "ingest should have a --dry-run flag")
	assert.Equal(t, "false", flag.DefValue)
}

// TestGetExportCmd verifies the export command and its output flag.
func TestGetExportCmd(t *testing.T) {
	cmd := getExportCmd()
	require.NotNil(t, cmd)
	assert.Equal(t, "export", cmd.Use)

	flag := cmd.Flags().Lookup("out")
	require.NotNil(t, flag, "export should have an --out flag")
	assert.Equal(t, "o", flag.Shorthand)
	assert.Equal(t, "export", flag.DefValue)
}

// TestRootCmd_Subcommands verifies all three subcommands are wired.
func TestRootCmd_Subcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	assert.True(t, names["init"])
	assert.True(t, names["ingest"])
	assert.True(t, names["export"])
}

// TestRootCmd_Silencing verifies errors are reported through the
// gn message path, not cobra's default printer.
func TestRootCmd_Silencing(t *testing.T) {
	assert.True(t, rootCmd.SilenceErrors)
	assert.True(t, rootCmd.SilenceUsage)
	assert.NotNil(t, rootCmd.PersistentPreRunE)
}

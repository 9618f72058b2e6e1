// Package cli is the edupath command line: the API server and the
// database maintenance commands.
package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	envRoot := os.Getenv("EDUPATH_ROOT")
	if envRoot == "" {
		envRoot = "."
	}

	var root string
	cmd := &cobra.Command{
		Use:           "edupath",
		Short:         "Career guidance API: aptitude quiz, college directory and chat assistant",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.PersistentFlags().StringVar(&root, "root", envRoot, "project root holding .env, config/ and logs/")
	cmd.AddCommand(NewServeCmd(&root))
	cmd.AddCommand(NewMigrateCmd(&root))
	cmd.AddCommand(NewSeedCollegesCmd(&root))
	return cmd
}

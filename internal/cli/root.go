package cli

import (
	"context"
	"fmt"
	"io"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  string
)

// SetVersion sets what --version prints; main injects it via ldflags.
func SetVersion(v, c string) {
	version = v
	commit = c
}

// Execute runs stackctl with the given args, logging to logOut.
func Execute(ctx context.Context, args []string, logOut io.Writer) error {
	root := NewRootCommand(logOut)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// NewRootCommand builds the command tree. Logs go to logOut; command output
// goes to the command's out writer.
func NewRootCommand(logOut io.Writer) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "stackctl",
		Short:         "stackctl inspects block layouts and structure templates",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(logOut, level)))
		},
	}
	root.SetVersionTemplate(fmt.Sprintf("stackctl %s\ncommit: %s\n", version, commit))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newCatalogCmd())
	root.AddCommand(newParseCmd())
	return root
}

package cli

import (
	"fmt"

	"go-stack-defense/internal/defs"

	"github.com/spf13/cobra"
)

func newCatalogCmd() *cobra.Command {
	var showHeights bool

	cmd := &cobra.Command{
		Use:   "catalog <catalog.yaml>",
		Short: "List the templates of a catalog in match order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			catalog, err := defs.LoadTemplateCatalog(args[0])
			if err != nil {
				return err
			}
			logger.Debug("catalog loaded", "path", args[0], "templates", catalog.Len())

			out := cmd.OutOrStdout()
			printTitle(out, "%d templates", catalog.Len())
			for i, t := range catalog.Templates() {
				fmt.Fprintf(out, "%s %s %s\n",
					styleNumber.Render(fmt.Sprintf("%3d", i+1)),
					styleValue.Render(t.Key()),
					styleDim.Render(fmt.Sprintf("%dx%d", t.Heights.Width(), t.Heights.Height())))
				if showHeights {
					printRows(out, t.Heights.Rows())
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&showHeights, "heights", false, "print each template's height map")
	return cmd
}

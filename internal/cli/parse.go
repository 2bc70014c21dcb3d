package cli

import (
	"fmt"
	"os"
	"strings"

	"go-stack-defense/internal/defs"
	"go-stack-defense/internal/entity"
	"go-stack-defense/internal/grouping"
	"go-stack-defense/internal/structure"
	"go-stack-defense/pkg/gridmap"

	"github.com/spf13/cobra"
)

// groupGlyphs label groups on the printed map; ids past the end wrap.
const groupGlyphs = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

func newParseCmd() *cobra.Command {
	var (
		catalogPath string
		showMap     bool
	)

	cmd := &cobra.Command{
		Use:   "parse <layout.txt>",
		Short: "Group a height-map layout and recognize its structures",
		Long: `parse reads a layout in template file format (width, height, then
height x width stack heights), groups 4-connected stacks and matches every
group against the catalog.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			var catalog *defs.Catalog
			if catalogPath != "" {
				var err error
				if catalog, err = defs.LoadTemplateCatalog(catalogPath); err != nil {
					return err
				}
				logger.Debug("catalog loaded", "path", catalogPath, "templates", catalog.Len())
			}

			grid, err := readLayout(args[0])
			if err != nil {
				return err
			}

			ecs := entity.NewECS()
			engine := grouping.NewEngine(grid, structure.NewRecognizer(catalog, ecs, logger), logger)
			if err := engine.Verify(); err != nil {
				return fmt.Errorf("grouping invariants: %w", err)
			}

			out := cmd.OutOrStdout()
			structures := engine.Structures()
			printTitle(out, "%dx%d grid, %d structures", grid.Width(), grid.Height(), len(structures))
			if showMap {
				printRows(out, groupMap(grid))
			}
			for _, s := range structures {
				typeName := styleUnknown.Render(s.TypeName())
				if s.Recognized() {
					typeName = styleMatched.Render(s.TypeName())
				}
				fmt.Fprintf(out, "%s %s\n", styleNumber.Render(fmt.Sprintf("group %d", s.GroupID)), typeName)
				printKeyValue(out, "cells", fmt.Sprint(len(s.Members)))
				printKeyValue(out, "box", fmt.Sprintf("%dx%d at (%d,%d)", s.Width(), s.Height(), s.MinX, s.MinY))
			}

			recognized := 0
			for _, s := range structures {
				if s.Recognized() {
					recognized++
				}
			}
			printSuccess(out, "%d of %d recognized", recognized, len(structures))
			return nil
		},
	}
	cmd.Flags().StringVarP(&catalogPath, "catalog", "c", "", "template catalog (YAML); no matching when empty")
	cmd.Flags().BoolVar(&showMap, "map", false, "print the grid with one letter per group")
	return cmd
}

func readLayout(path string) (*gridmap.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open layout: %w", err)
	}
	defer f.Close()

	hm, err := defs.ParseHeightMap(f)
	if err != nil {
		return nil, fmt.Errorf("layout %s: %w", path, err)
	}
	grid := gridmap.NewGrid(hm.Width(), hm.Height())
	for y, row := range hm {
		for x, h := range row {
			grid.SetHeight(x, y, h)
		}
	}
	return grid, nil
}

// groupMap renders one line per grid row: "." for empty, a letter per group.
func groupMap(grid *gridmap.Grid) []string {
	rows := make([]string, grid.Height())
	for y := range rows {
		var b strings.Builder
		for x := 0; x < grid.Width(); x++ {
			g := grid.GetGroup(x, y)
			if g < gridmap.FirstGroupID {
				b.WriteByte('.')
				continue
			}
			b.WriteByte(groupGlyphs[(g-gridmap.FirstGroupID)%len(groupGlyphs)])
		}
		rows[y] = b.String()
	}
	return rows
}

package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lumipallolabs/nodesweep/internal/model"
	"github.com/lumipallolabs/nodesweep/internal/ui"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var scanOpts scanFlags

var scanCmd = &cobra.Command{
	Use:   "scan [paths...]",
	Short: "Find node_modules directories",
	Long: `Scan the given folders (default: the current directory), drives or every
mounted drive for node_modules directories.

Use --json to save the result for a later "nodesweep delete --from".`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := scanOpts.apply(cmd); err != nil {
			return err
		}
		roots, err := scanOpts.roots(args)
		if err != nil {
			return err
		}

		ctx, stop := interruptContext(cmd)
		defer stop()

		ctrl := newController(false)
		completed, err := runScan(ctx, ctrl, roots, scanOpts.sizes)
		if err != nil {
			return err
		}

		matches := completed.Matches
		scanOpts.sort(matches)

		if jsonOutput {
			if matches == nil {
				matches = []model.Match{}
			}
			return outputJSON(matches)
		}

		printMatches(matches, scanOpts.sizes)
		printScanSummary(completed.Aborted, matches, scanOpts.sizes, ctrl.State().Scan.Elapsed().String())
		return nil
	},
}

func init() {
	scanOpts.register(scanCmd)
}

// printMatches lists matches as a table of project and size
func printMatches(matches []model.Match, sizes bool) {
	if len(matches) == 0 {
		return
	}

	header := []string{"Project", "node_modules"}
	align := []int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT}
	if sizes {
		header = append(header, "Size")
		align = append(align, tablewriter.ALIGN_RIGHT)
	}

	rows := make([][]string, 0, len(matches))
	for _, m := range matches {
		row := []string{m.ProjectPath, filepath.Base(m.NodeModulesPath)}
		if sizes {
			row = append(row, sizeCell(m))
		}
		rows = append(rows, row)
	}

	var footer []string
	if sizes {
		footer = []string{plural(len(matches), "project"), "", ui.FormatSize(model.TotalSize(matches))}
	}
	renderTable(os.Stdout, header, rows, footer, align)
}

func sizeCell(m model.Match) string {
	if !m.HasSize() {
		return "-"
	}
	return ui.FormatSize(m.SizeBytes())
}

func printScanSummary(aborted bool, matches []model.Match, sizes bool, elapsed string) {
	found := fmt.Sprintf("%d node_modules", len(matches))
	if sizes {
		found += fmt.Sprintf(" (%s)", ui.FormatSize(model.TotalSize(matches)))
	}
	if aborted {
		PrintWarning(fmt.Sprintf("Scan aborted after %s: partial result, %s", elapsed, found))
		return
	}
	PrintSuccess(fmt.Sprintf("Found %s in %s", found, elapsed))
}

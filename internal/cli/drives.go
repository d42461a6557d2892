package cli

import (
	"fmt"
	"os"

	"github.com/lumipallolabs/nodesweep/internal/model"
	"github.com/lumipallolabs/nodesweep/internal/ui"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var drivesCmd = &cobra.Command{
	Use:   "drives",
	Short: "List drives and mount points that can be scanned",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		drives, err := newController(false).ListDrives()
		if err != nil {
			return err
		}

		if jsonOutput {
			if drives == nil {
				drives = []model.DriveInfo{}
			}
			return outputJSON(drives)
		}

		if len(drives) == 0 {
			PrintInfo("No drives found")
			return nil
		}

		rows := make([][]string, 0, len(drives))
		for _, d := range drives {
			rows = append(rows, driveRow(d))
		}
		renderTable(os.Stdout,
			[]string{"Name", "Path", "Size", "Free", "Used"},
			rows, nil,
			[]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT},
		)
		return nil
	},
}

func driveRow(d model.DriveInfo) []string {
	if d.TotalBytes == 0 {
		return []string{d.Name, d.Path, "-", "-", "-"}
	}
	return []string{
		d.Name,
		d.Path,
		ui.FormatSize(d.TotalBytes),
		ui.FormatSize(d.FreeBytes),
		fmt.Sprintf("%.0f%%", d.UsedPercent()),
	}
}

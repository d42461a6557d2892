package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lumipallolabs/nodesweep/internal/model"
	"github.com/lumipallolabs/nodesweep/internal/ui"
	"github.com/spf13/cobra"
)

var (
	cleanOpts   scanFlags
	cleanYes    bool
	cleanStrict bool
)

var cleanCmd = &cobra.Command{
	Use:   "clean [paths...]",
	Short: "Scan, then move every node_modules found to the trash",
	Long: `Scan like "nodesweep scan", list what was found and, after confirmation,
move all of it to the system trash. An aborted scan deletes nothing.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cleanOpts.apply(cmd); err != nil {
			return err
		}
		if jsonOutput && !cleanYes {
			return fmt.Errorf("--json needs --yes because there is no prompt")
		}
		roots, err := cleanOpts.roots(args)
		if err != nil {
			return err
		}

		ctx, stop := interruptContext(cmd)
		defer stop()

		ctrl := newController(cleanStrict)
		completed, err := runScan(ctx, ctrl, roots, cleanOpts.sizes)
		if err != nil {
			return err
		}
		if completed.Aborted {
			PrintWarning("Scan aborted; nothing deleted")
			return nil
		}

		matches := completed.Matches
		cleanOpts.sort(matches)
		if len(matches) == 0 {
			if jsonOutput {
				return outputJSON([]model.DeleteResult{})
			}
			PrintSuccess("No node_modules found")
			return nil
		}

		if !jsonOutput {
			printMatches(matches, cleanOpts.sizes)
		}
		if !cleanYes {
			ok, err := confirm(os.Stdin, promptText(matches, cleanOpts.sizes))
			if err != nil {
				return err
			}
			if !ok {
				PrintInfo("Nothing deleted")
				return nil
			}
		}

		paths := make([]string, 0, len(matches))
		for _, m := range matches {
			paths = append(paths, m.NodeModulesPath)
		}
		results, err := ctrl.Delete(ctx, paths)
		if err != nil {
			return err
		}
		reportErr := reportDeletes(results)

		if !jsonOutput {
			freed := ctrl.State().Freed
			summary := fmt.Sprintf("Moved %d node_modules to the trash", freed.Deleted)
			if cleanOpts.sizes {
				summary += fmt.Sprintf(", %s freed", ui.FormatSize(freed.Session))
			}
			PrintSuccess(summary)
		}
		return reportErr
	},
}

func init() {
	cleanOpts.register(cleanCmd)
	cleanCmd.Flags().BoolVarP(&cleanYes, "yes", "y", false, "Do not ask for confirmation")
	cleanCmd.Flags().BoolVar(&cleanStrict, "strict", false, "Refuse directories that do not look like installed dependencies")
}

func promptText(matches []model.Match, sizes bool) string {
	text := fmt.Sprintf("Move %d node_modules", len(matches))
	if sizes {
		text += fmt.Sprintf(" (%s)", ui.FormatSize(model.TotalSize(matches)))
	}
	return text + " to the trash? [y/N] "
}

// confirm asks a yes/no question; anything but y or yes is a no
func confirm(in io.Reader, prompt string) (bool, error) {
	fmt.Print(prompt)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

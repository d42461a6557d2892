package cli

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lumipallolabs/nodesweep/internal/model"
	"github.com/spf13/cobra"
)

var (
	deleteFrom   string
	deleteStrict bool
)

var deleteCmd = &cobra.Command{
	Use:   "delete [paths...]",
	Short: "Move node_modules directories to the trash",
	Long: `Move the given node_modules directories to the system trash.

Paths can also be read with --from from a file (or - for stdin) holding either
the JSON output of "nodesweep scan --json" or one path per line. Anything not
named node_modules is refused.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		paths := append([]string(nil), args...)
		if deleteFrom != "" {
			fromFile, err := readPathList(deleteFrom)
			if err != nil {
				return err
			}
			paths = append(paths, fromFile...)
		}
		if len(paths) == 0 {
			return fmt.Errorf("no paths given; pass paths or --from FILE")
		}

		ctx, stop := interruptContext(cmd)
		defer stop()

		ctrl := newController(deleteStrict)
		results, err := ctrl.Delete(ctx, paths)
		if err != nil {
			return err
		}
		return reportDeletes(results)
	},
}

func init() {
	deleteCmd.Flags().StringVar(&deleteFrom, "from", "", "Read paths from FILE (- for stdin)")
	deleteCmd.Flags().BoolVar(&deleteStrict, "strict", false, "Refuse directories that do not look like installed dependencies")
}

// reportDeletes prints per-path results and fails when any path failed
func reportDeletes(results []model.DeleteResult) error {
	failed := 0
	for _, r := range results {
		if !r.Success {
			failed++
		}
	}

	if jsonOutput {
		if err := outputJSON(results); err != nil {
			return err
		}
	} else {
		for _, r := range results {
			if r.Success {
				PrintSuccess("Trashed " + r.Path)
			} else {
				PrintError(fmt.Sprintf("%s: %s", r.Path, r.Error))
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d paths could not be deleted", failed, len(results))
	}
	return nil
}

// readPathList reads node_modules paths from a scan JSON file or a plain list
func readPathList(name string) ([]string, error) {
	var (
		content []byte
		err     error
	)
	if name == "-" {
		content, err = io.ReadAll(os.Stdin)
	} else {
		content, err = os.ReadFile(name)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return parsePathList(content)
}

func parsePathList(content []byte) ([]string, error) {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var matches []model.Match
		if err := json.Unmarshal(trimmed, &matches); err == nil {
			paths := make([]string, 0, len(matches))
			for _, m := range matches {
				if m.NodeModulesPath != "" {
					paths = append(paths, m.NodeModulesPath)
				}
			}
			return paths, nil
		}
		var plain []string
		if err := json.Unmarshal(trimmed, &plain); err != nil {
			return nil, fmt.Errorf("parse path list: %w", err)
		}
		return plain, nil
	}

	var paths []string
	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		paths = append(paths, line)
	}
	return paths, scanner.Err()
}

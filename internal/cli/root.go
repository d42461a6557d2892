package cli

import (
	"os"

	"github.com/fatih/color"
	"github.com/lumipallolabs/nodesweep/internal/config"
	"github.com/lumipallolabs/nodesweep/internal/logging"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	jsonOutput bool
	configPath string
	debugLog   bool

	// cfg is loaded before any command runs
	cfg config.Config

	groupTitleColor = color.New(color.FgCyan, color.Bold)
)

// rootCmd is the root command for nodesweep.
var rootCmd = &cobra.Command{
	Use:     "nodesweep",
	Version: "dev",
	Short:   "Find node_modules directories and move them to the trash",
	Long: `nodesweep scans folders or whole drives for node_modules directories,
reports how much space they take, and moves the ones you pick to the system
trash so they can still be restored.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if debugLog {
			logging.Enable(os.Stderr)
		}
		loaded, err := config.LoadOrDefault(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

// SetVersion sets the version reported by --version
func SetVersion(v string) {
	if v == "" {
		return
	}
	rootCmd.Version = v
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/nodesweep/config.json)")
	rootCmd.PersistentFlags().BoolVar(&debugLog, "debug", false, "Write debug logs to stderr")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "sweep",
		Title: groupTitleColor.Sprint("Sweeping:"),
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "system",
		Title: groupTitleColor.Sprint("System:"),
	})

	scanCmd.GroupID = "sweep"
	deleteCmd.GroupID = "sweep"
	cleanCmd.GroupID = "sweep"
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(cleanCmd)

	drivesCmd.GroupID = "system"
	openCmd.GroupID = "system"
	rootCmd.AddCommand(drivesCmd)
	rootCmd.AddCommand(openCmd)

	rootCmd.SetHelpCommandGroupID("system")
}

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

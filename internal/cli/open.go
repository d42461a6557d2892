package cli

import (
	"github.com/spf13/cobra"
)

var openCmd = &cobra.Command{
	Use:   "open PATH",
	Short: "Open a folder in the system file manager",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return newController(false).OpenInFileManager(args[0])
	},
}

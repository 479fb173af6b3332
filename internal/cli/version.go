package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// set at build time with -ldflags "-X github.com/mgpai22/srtcheck/internal/cli.Version=..."
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "srtcheck %s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

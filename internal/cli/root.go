package cli

import (
	"fmt"

	"github.com/mgpai22/srtcheck/internal/config"
	"github.com/mgpai22/srtcheck/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
	logger     *logging.Logger
	appConfig  *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "srtcheck",
	Short: "Find timing overlaps in SRT subtitles",
	Long: `srtcheck parses SubRip (.srt) subtitle files and reports segments whose
end time runs past the start of the next segment.

Run it on a file, pipe a document through stdin, or serve the check over HTTP.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = logging.NewLogger(verbose)

		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		appConfig = cfg

		logger.Debugw("Configuration loaded",
			"max_bytes", cfg.Input.MaxBytes,
			"server", cfg.Address(),
		)
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		StringVar(&configPath, "config", "", "Config file (default ./srtcheck.yaml or ~/.config/srtcheck/srtcheck.yaml)")
}

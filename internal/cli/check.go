package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mgpai22/srtcheck/internal/media"
	"github.com/mgpai22/srtcheck/internal/report"
	"github.com/mgpai22/srtcheck/internal/subtitle"
	"github.com/spf13/cobra"
)

// ErrOverlapsFound is returned with --fail-on-overlap so the process exits non-zero
var ErrOverlapsFound = errors.New("timing overlaps found")

var checkCmd = &cobra.Command{
	Use:   "check [subtitle_file]",
	Short: "Check an SRT file for timing overlaps",
	Long: `Parse an SRT subtitle file and report neighbouring segments that overlap.

Segments are ordered by start time before checking; a segment that ends exactly
when the next one starts is not an overlap. Reads stdin when the file is "-" or
omitted.

With --media, segments that end after the media file's duration are listed too
(requires ffprobe on PATH).

Examples:
  srtcheck check video.srt
  srtcheck check video.srt --json
  cat video.srt | srtcheck check -
  srtcheck check video.srt --media video.mp4 --fail-on-overlap`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().
		Bool("json", false, "Print the analysis as JSON")
	checkCmd.Flags().
		Bool("no-color", false, "Disable colored output")
	checkCmd.Flags().
		StringP("media", "m", "", "Media file to check segment end times against")
	checkCmd.Flags().
		Bool("fail-on-overlap", false, "Exit with a non-zero status when overlaps are found")
	checkCmd.Flags().
		Int64("max-bytes", 0, "Maximum input size in bytes (overrides config, 0 keeps config value)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")
	noColor, _ := cmd.Flags().GetBool("no-color")
	mediaPath, _ := cmd.Flags().GetString("media")
	failOnOverlap, _ := cmd.Flags().GetBool("fail-on-overlap")
	maxBytes, _ := cmd.Flags().GetInt64("max-bytes")

	if maxBytes < 0 {
		return fmt.Errorf("max-bytes cannot be negative, got %d", maxBytes)
	}
	if maxBytes == 0 {
		maxBytes = appConfig.Input.MaxBytes
	}

	source := "-"
	if len(args) == 1 {
		source = args[0]
	}

	content, err := readInput(cmd.InOrStdin(), source, maxBytes)
	if err != nil {
		return err
	}

	logger.Infow("Analyzing subtitles",
		"input", source,
		"bytes", len(content),
	)

	a := subtitle.Analyze(content)

	logger.Infow("Analysis complete",
		"segments", len(a.Segments),
		"overlaps", len(a.Overlaps),
		"errors", len(a.Errors),
	)
	for _, e := range a.Errors {
		logger.Warnw("Skipping unparseable entry",
			"block", e.Block,
			"index_line", e.IndexLine,
			"error", e.Err,
		)
	}

	opts := report.Options{Color: appConfig.Output.Color && !noColor}
	if mediaPath != "" {
		prober := newProber(appConfig.Media.ProbeTimeout)
		mediaEnd, err := probeMedia(cmd.Context(), prober, mediaPath)
		if err != nil {
			return err
		}
		opts.MediaEnd = mediaEnd
		opts.PastEnd = subtitle.SegmentsPastEnd(a.Segments, mediaEnd)
	}

	out := cmd.OutOrStdout()
	if asJSON {
		doc := report.NewDocument(a, opts.PastEnd)
		if err := report.JSON(out, doc); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	} else if err := report.Text(out, a, opts); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if failOnOverlap && a.HasOverlaps() {
		return fmt.Errorf("%w: %d", ErrOverlapsFound, len(a.Overlaps))
	}
	return nil
}

func readInput(stdin io.Reader, source string, maxBytes int64) (string, error) {
	if source == "-" {
		content, err := subtitle.Read(stdin, maxBytes)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return content, nil
	}

	if _, err := os.Stat(source); os.IsNotExist(err) {
		return "", fmt.Errorf("subtitle file not found: %s", source)
	}

	content, err := subtitle.ReadFile(source, maxBytes)
	if err != nil {
		return "", fmt.Errorf("failed to read subtitle file: %w", err)
	}
	return content, nil
}

// replaced in tests to avoid shelling out to ffprobe
var newProber = func(timeout time.Duration) media.Prober {
	return media.NewFFprobe(timeout)
}

func probeMedia(ctx context.Context, prober media.Prober, path string) (time.Duration, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	logger.Infow("Probing media duration", "media", path)

	d, err := prober.Duration(ctx, path)
	if err != nil {
		return 0, fmt.Errorf("failed to probe media: %w", err)
	}

	logger.Infow("Media probed", "duration", d.String())
	return d, nil
}

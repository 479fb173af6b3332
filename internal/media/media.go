package media

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

var ErrFFprobeNotFound = errors.New("ffprobe not found on PATH")

// JSON output from ffprobe
type ffprobeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// Prober reports the playback length of a media file
type Prober interface {
	Duration(ctx context.Context, path string) (time.Duration, error)
}

// FFprobe probes files with the ffprobe binary through ffmpeg-go
type FFprobe struct {
	Timeout time.Duration
}

func NewFFprobe(timeout time.Duration) *FFprobe {
	return &FFprobe{Timeout: timeout}
}

// duration of an audio/video file
func (p *FFprobe) Duration(ctx context.Context, path string) (time.Duration, error) {
	if _, err := os.Stat(path); err != nil {
		return 0, fmt.Errorf("media file not found: %w", err)
	}
	if _, err := exec.LookPath("ffprobe"); err != nil {
		return 0, ErrFFprobeNotFound
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	timeout := p.Timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); timeout <= 0 || remaining < timeout {
			timeout = remaining
		}
	}

	out, err := ffmpeg.ProbeWithTimeout(path, timeout, ffmpeg.KwArgs{"v": "quiet"})
	if err != nil {
		return 0, fmt.Errorf("ffprobe failed: %w", err)
	}

	return parseProbeDuration(out)
}

func parseProbeDuration(out string) (time.Duration, error) {
	var probe ffprobeOutput
	if err := json.Unmarshal([]byte(out), &probe); err != nil {
		return 0, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	raw := strings.TrimSpace(probe.Format.Duration)
	if raw == "" {
		return 0, errors.New("ffprobe output has no duration")
	}

	seconds, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse duration: %w", err)
	}
	if seconds < 0 {
		return 0, fmt.Errorf("negative duration %q", raw)
	}

	return time.Duration(math.Round(seconds * float64(time.Second))), nil
}

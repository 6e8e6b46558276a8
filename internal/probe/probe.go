// Package probe defines the media decoder boundary used to resolve
// durations of imported video and audio files.
package probe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
)

// Prober resolves the duration of a media file. Resolution fires once
// per import; callers do not retry failures.
type Prober interface {
	ResolveDuration(ctx context.Context, path string) (float64, error)
}

// FFProbe shells out to ffprobe for metadata extraction.
type FFProbe struct {
	bin string
}

// NewFFProbe creates a prober using the given ffprobe binary (defaults
// to "ffprobe" on PATH when empty).
func NewFFProbe(bin string) *FFProbe {
	if bin == "" {
		bin = "ffprobe"
	}
	return &FFProbe{bin: bin}
}

// ffprobeOutput captures the format.duration field of ffprobe's JSON output.
type ffprobeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// ResolveDuration runs ffprobe and parses the container duration in seconds.
func (p *FFProbe) ResolveDuration(ctx context.Context, path string) (float64, error) {
	cmd := exec.CommandContext(ctx, p.bin,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		path,
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return 0, fmt.Errorf("probe: ffprobe failed: %w: %s", err, stderr.String())
	}

	var out ffprobeOutput
	if err := json.Unmarshal(stdout.Bytes(), &out); err != nil {
		return 0, fmt.Errorf("probe: parse ffprobe output: %w", err)
	}
	if out.Format.Duration == "" {
		return 0, fmt.Errorf("probe: no duration in ffprobe output for %s", path)
	}

	seconds, err := strconv.ParseFloat(out.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("probe: parse duration %q: %w", out.Format.Duration, err)
	}
	return seconds, nil
}

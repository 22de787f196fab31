package probe

import (
	"bytes"
	"context"
	"fmt"

	"github.com/backmassage/vidsqueeze/internal/proc"
)

// Prober runs ffprobe through a [proc.Runner] so that a canceled batch also
// kills an in-flight probe.
type Prober struct {
	Runner *proc.Runner
	Format Format
}

// NewProber returns a Prober that invokes the given ffprobe binary.
func NewProber(bin string, format Format) *Prober {
	return &Prober{Runner: proc.NewRunner(bin), Format: format}
}

// Args returns the ffprobe argument vector for path: first video stream
// width, height and avg_frame_rate plus container duration and size.
func Args(path string, format Format) []string {
	of := "default=noprint_wrappers=1"
	if format == FormatJSON {
		of = "json"
	}
	return []string{
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=width,height,avg_frame_rate",
		"-show_entries", "format=duration,size",
		"-of", of,
		path,
	}
}

// Probe runs ffprobe against path and returns its parsed metadata.
// A canceled ctx yields an error matching [proc.ErrCanceled]; a non-zero
// exit yields a *ProbeError; a bad report yields a *MissingFieldError.
func (p *Prober) Probe(ctx context.Context, path string) (*Metadata, error) {
	var stdout bytes.Buffer
	out := p.Runner.Run(ctx, proc.Invocation{
		Args:   Args(path, p.Format),
		Stdout: &stdout,
	})

	switch out.Kind {
	case proc.Success:
		// parsed below
	case proc.NonZeroExit:
		return nil, fmt.Errorf("ffprobe %q: %w", path, &ProbeError{ExitCode: out.ExitCode, Stderr: out.Stderr})
	case proc.Canceled, proc.TimedOut, proc.SpawnFailed, proc.KillFailed, proc.Incomplete:
		return nil, fmt.Errorf("ffprobe %q: %w", path, out.Err())
	}

	if p.Format == FormatJSON {
		return ParseJSON(stdout.Bytes())
	}
	return ParseFlat(stdout.Bytes())
}

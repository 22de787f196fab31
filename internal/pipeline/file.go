package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/backmassage/vidsqueeze/internal/ffmpeg"
	"github.com/backmassage/vidsqueeze/internal/naming"
	"github.com/backmassage/vidsqueeze/internal/planner"
	"github.com/backmassage/vidsqueeze/internal/probe"
	"github.com/backmassage/vidsqueeze/internal/proc"
	"github.com/backmassage/vidsqueeze/internal/progress"
)

// FileResult describes one processed input.
type FileResult struct {
	Input       string
	Output      string
	Renamed     bool // Output got a collision suffix.
	DryRun      bool // Planned only; nothing was run or written.
	Meta        *probe.Metadata
	Args        []string
	Elapsed     time.Duration
	InputBytes  uint64
	OutputBytes uint64

	// ReportedBytes is the last total_size from the progress feed.
	ReportedBytes uint64
}

// EncodeFile probes, plans and encodes one input. The encode has no
// timeout; only ctx stops it. On failure any partial output is removed.
func EncodeFile(ctx context.Context, env *Env, path string) (FileResult, error) {
	res, err := prepare(ctx, env, path, naming.ExtVideo)
	if err != nil {
		return res, err
	}

	cfg := env.Cfg
	spec := planner.PlanEncode(res.Meta, cfg.MaxResolution, cfg.MaxFPS, cfg.Codec)
	keyint := planner.KeyframeInterval(spec, cfg.MaxFPS)
	res.Args = ffmpeg.EncodeArgs(cfg, spec, keyint, path, res.Output)
	env.Log.Debug("%s: %s", filepath.Base(path), describeEncode(spec))
	if cfg.DryRun {
		res.DryRun = true
		return res, nil
	}

	mon := progress.New(res.Meta.Duration, progress.Options{
		Writer:      env.Progress,
		Description: filepath.Base(path),
	})
	out := env.FFmpeg.Run(ctx, proc.Invocation{
		Args: res.Args,
		Consumer: func(stderr io.Reader) (uint64, error) {
			r, err := mon.Observe(stderr)
			return r.TotalSize, err
		},
	})
	if out.Kind != proc.Success {
		_ = os.Remove(res.Output)
		return res, &FileError{Stage: StageRun, Path: path, Err: out.Err(), Stderr: out.Stderr}
	}
	res.Elapsed = out.Elapsed
	res.ReportedBytes = out.OutputBytes
	return finish(res)
}

// ThumbnailFile probes one input and extracts a contact-sheet JPEG next to
// it. A run that exceeds the configured timeout is killed and reported as
// [ErrSkipped].
func ThumbnailFile(ctx context.Context, env *Env, path string) (FileResult, error) {
	res, err := prepare(ctx, env, path, naming.ExtThumbnail)
	if err != nil {
		return res, err
	}

	cfg := env.Cfg
	spec := planner.PlanThumbnail(res.Meta, cfg.TileBase, cfg.Grid)
	res.Args = ffmpeg.ThumbnailArgs(spec, path, res.Output)
	env.Log.Debug("%s: %s", filepath.Base(path), describeThumbnail(spec))
	if cfg.DryRun {
		res.DryRun = true
		return res, nil
	}

	out := env.FFmpeg.Run(ctx, proc.Invocation{
		Args:    res.Args,
		Timeout: cfg.ThumbnailTimeout,
	})
	switch out.Kind {
	case proc.Success:
	case proc.TimedOut:
		_ = os.Remove(res.Output)
		return res, &FileError{Stage: StageRun, Path: path,
			Err: fmt.Errorf("%w after %s: %w", ErrSkipped, cfg.ThumbnailTimeout, out.Err())}
	default:
		_ = os.Remove(res.Output)
		return res, &FileError{Stage: StageRun, Path: path, Err: out.Err(), Stderr: out.Stderr}
	}
	res.Elapsed = out.Elapsed
	return finish(res)
}

// prepare runs the stat, probe and naming steps shared by both tasks.
func prepare(ctx context.Context, env *Env, path, ext string) (FileResult, error) {
	res := FileResult{Input: path}
	fi, err := os.Stat(path)
	if err != nil {
		return res, &FileError{Stage: StageStat, Path: path, Err: err}
	}
	if !fi.Mode().IsRegular() {
		return res, &FileError{Stage: StageStat, Path: path, Err: errors.New("not a regular file")}
	}
	res.InputBytes = uint64(fi.Size())

	meta, err := env.Prober.Probe(ctx, path)
	if err != nil {
		return res, &FileError{Stage: StageProbe, Path: path, Err: err}
	}
	res.Meta = meta

	res.Output, res.Renamed = env.Resolver.Resolve(path, naming.OutputPath(path, ext, env.Now()))
	return res, nil
}

// finish records the size of the written output.
func finish(res FileResult) (FileResult, error) {
	fi, err := os.Stat(res.Output)
	if err != nil {
		return res, &FileError{Stage: StageOutput, Path: res.Input, Err: err}
	}
	res.OutputBytes = uint64(fi.Size())
	return res, nil
}

func describeEncode(spec planner.EncodeSpec) string {
	s := fmt.Sprintf("quality %d", spec.Quality)
	if f := ffmpeg.VideoFilter(spec); f != "" {
		s += ", " + f
	}
	return s
}

func describeThumbnail(spec planner.ThumbnailSpec) string {
	s := fmt.Sprintf("%dx%d grid of %dx%d tiles every %.2fs from %.2fs to %.2fs",
		spec.Rows, spec.Cols, spec.TileWidth, spec.TileHeight, spec.Interval, spec.StartCut, spec.EndCut)
	if spec.SkipNonKeyframes {
		s += ", keyframes only"
	}
	return s
}

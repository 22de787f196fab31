package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/backmassage/vidsqueeze/internal/config"
	"github.com/backmassage/vidsqueeze/internal/display"
	"github.com/backmassage/vidsqueeze/internal/ffmpeg"
	"github.com/backmassage/vidsqueeze/internal/logging"
	"github.com/backmassage/vidsqueeze/internal/proc"
)

// stderrLines bounds how much child output is echoed for a failed file.
const stderrLines = 20

// Run is the top-level batch entry point. It processes files sequentially
// with the task selected in cfg and returns aggregate stats.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger, files []string) RunStats {
	return RunWith(ctx, NewEnv(cfg, log), files)
}

// RunWith is [Run] with explicit collaborators. A canceled ctx stops the
// batch before the next file; the in-flight child is killed by the runner.
func RunWith(ctx context.Context, env *Env, files []string) RunStats {
	cfg, log := env.Cfg, env.Log
	stats := RunStats{Total: len(files)}
	start := time.Now()

	logBatchHeader(env, &stats)

	process := EncodeFile
	if cfg.Task == config.TaskThumbnail {
		process = ThumbnailFile
	}

	for i, path := range files {
		if ctx.Err() != nil {
			stats.Canceled = true
			log.Warn("Interrupted")
			break
		}
		stats.Current = i + 1
		name := filepath.Base(path)
		log.Info("[%d/%d] %s", stats.Current, stats.Total, name)

		res, err := process(ctx, env, path)
		switch classify(err) {
		case verdictDone:
			stats.add(res)
			logResult(env, res)
		case verdictCanceled:
			stats.Canceled = true
			log.Warn("Interrupted while processing %s", name)
		case verdictSkipped:
			stats.Skipped++
			log.Warn("Skip %s: %v", name, err)
		default:
			stats.Failed++
			logFailure(log, name, err)
		}
		if stats.Canceled {
			break
		}
	}

	stats.Elapsed = time.Since(start)
	logSummary(env, &stats)
	return stats
}

type verdict int

const (
	verdictDone verdict = iota
	verdictCanceled
	verdictSkipped
	verdictFailed
)

// classify maps a per-file error to how the batch counts it. A failed kill
// is a failure even when a cancel triggered it.
func classify(err error) verdict {
	var ke *proc.KillError
	switch {
	case err == nil:
		return verdictDone
	case errors.As(err, &ke):
		return verdictFailed
	case errors.Is(err, proc.ErrCanceled):
		return verdictCanceled
	case errors.Is(err, ErrSkipped):
		return verdictSkipped
	}
	return verdictFailed
}

func logBatchHeader(env *Env, stats *RunStats) {
	cfg, log := env.Cfg, env.Log
	log.Info("Found %d files (run %s)", stats.Total, log.RunID())
	switch cfg.Task {
	case config.TaskThumbnail:
		grid := "auto"
		if !cfg.Grid.IsZero() {
			grid = cfg.Grid.String()
		}
		log.Info("Task: thumbnail, tile base %dpx, grid %s, timeout %s", cfg.TileBase, grid, cfg.ThumbnailTimeout)
	default:
		log.Info("Task: encode, %s (%s, preset %s), ceiling %s @ %d fps",
			cfg.Codec, cfg.Codec.Encoder(), cfg.EffectivePreset(), cfg.MaxResolution, cfg.MaxFPS)
	}
	if cfg.DryRun {
		log.Info("Dry run: nothing will be written")
	}
}

func logResult(env *Env, res FileResult) {
	log := env.Log
	name := filepath.Base(res.Input)
	if res.Renamed {
		log.Warn("%s: output name already taken in this run, writing %s", name, filepath.Base(res.Output))
	}
	if res.DryRun {
		log.Success("[DRY] %s -> %s", name, filepath.Base(res.Output))
		log.Debug("  %s %s", env.Cfg.FFmpegBin, strings.Join(res.Args, " "))
		return
	}
	if env.Cfg.Task == config.TaskThumbnail {
		log.Success("%s thumbnail saved as %s in %s", name, filepath.Base(res.Output), display.FormatDuration(res.Elapsed))
		return
	}
	log.Success("%s encoded in %s and shrunk to %s (%s of original)",
		name, display.FormatDuration(res.Elapsed), display.FormatBytes(res.OutputBytes),
		display.FormatPercent(res.OutputBytes, res.InputBytes))
	log.Debug("  progress feed reported %s", display.FormatBytes(res.ReportedBytes))
}

func logFailure(log *logging.Logger, name string, err error) {
	log.Error("%s: %v", name, err)

	var fe *FileError
	stderr := ""
	if errors.As(err, &fe) {
		stderr = fe.Stderr
	}
	var ke *proc.KillError
	if errors.As(err, &ke) {
		log.Error("  Child process may still be running (kill after %v failed)", ke.Reason)
	}
	if hint := ffmpeg.Classify(stderr + "\n" + err.Error()); hint != ffmpeg.HintNone {
		log.Error("  Likely cause: %s", hint)
	}
	logStderr(log, stderr)
}

func logStderr(log *logging.Logger, stderr string) {
	stderr = strings.TrimSpace(stderr)
	if stderr == "" {
		return
	}
	log.Error("Last ffmpeg output:")
	lines := strings.Split(stderr, "\n")
	start := max(len(lines)-stderrLines, 0)
	for _, l := range lines[start:] {
		log.Error("  %s", l)
	}
}

func logSummary(env *Env, stats *RunStats) {
	log := env.Log
	log.Info("Done: %d succeeded, %d skipped, %d failed", stats.Succeeded, stats.Skipped, stats.Failed)
	showBytes := !env.Cfg.DryRun && env.Cfg.Task == config.TaskEncode
	if showBytes {
		if saved := stats.SpaceSaved(); saved >= 0 {
			log.Success("Total space saved: %s (input %s -> output %s)",
				display.FormatBytes(uint64(saved)),
				display.FormatBytes(stats.TotalInputBytes),
				display.FormatBytes(stats.TotalOutputBytes))
		} else {
			log.Warn("Total space saved: %s (overall output is larger)", display.FormatBytesWithSign(saved))
		}
	}
	fmt.Fprintln(env.Out, display.Box("Summary", stats.summaryFields(showBytes)))
}

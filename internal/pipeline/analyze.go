package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/backmassage/vidsqueeze/internal/config"
	"github.com/backmassage/vidsqueeze/internal/display"
	"github.com/backmassage/vidsqueeze/internal/ffmpeg"
	"github.com/backmassage/vidsqueeze/internal/planner"
	"github.com/backmassage/vidsqueeze/internal/proc"
	"github.com/backmassage/vidsqueeze/internal/term"
)

var (
	encodeHeaders    = []string{"FILE", "RES", "FPS", "DURATION", "SIZE", "KBPS", "QUALITY", "FILTER"}
	thumbnailHeaders = []string{"FILE", "RES", "DURATION", "GRID", "TILE", "INTERVAL", "RANGE", "KEYFRAMES"}
)

// Analyze probes every file and prints the plan each one would get as a
// table, without running ffmpeg. Unreadable files are counted as failures.
func Analyze(ctx context.Context, env *Env, files []string) RunStats {
	cfg, log := env.Cfg, env.Log
	stats := RunStats{Total: len(files)}
	isTTY := false
	if f, ok := env.Out.(*os.File); ok {
		isTTY = term.IsTerminal(f)
	}

	log.Info("Analyzing %d files", len(files))
	var rows [][]string
	for i, path := range files {
		if ctx.Err() != nil {
			stats.Canceled = true
			break
		}
		stats.Current = i + 1
		name := filepath.Base(path)
		printProgress(env.Out, isTTY, stats.Current, stats.Total, stats.Failed, name)

		meta, err := env.Prober.Probe(ctx, path)
		if err != nil {
			if isTTY {
				clearProgress(env.Out)
			}
			if errors.Is(err, proc.ErrCanceled) {
				stats.Canceled = true
				break
			}
			stats.Failed++
			log.Warn("Skip (probe failed): %s: %v", name, err)
			continue
		}
		stats.Succeeded++

		row := []string{name, meta.Resolution()}
		if cfg.Task == config.TaskThumbnail {
			spec := planner.PlanThumbnail(meta, cfg.TileBase, cfg.Grid)
			keyframes := "no"
			if spec.SkipNonKeyframes {
				keyframes = "yes"
			}
			row = append(row,
				fmt.Sprintf("%.1fs", meta.Duration),
				fmt.Sprintf("%dx%d", spec.Rows, spec.Cols),
				fmt.Sprintf("%dx%d", spec.TileWidth, spec.TileHeight),
				fmt.Sprintf("%.2fs", spec.Interval),
				fmt.Sprintf("%.1f-%.1f", spec.StartCut, spec.EndCut),
				keyframes,
			)
		} else {
			spec := planner.PlanEncode(meta, cfg.MaxResolution, cfg.MaxFPS, cfg.Codec)
			filter := ffmpeg.VideoFilter(spec)
			if filter == "" {
				filter = "-"
			}
			row = append(row,
				fmt.Sprintf("%.2f", meta.FPS),
				fmt.Sprintf("%.1fs", meta.Duration),
				display.FormatBytes(uint64(meta.Size)),
				fmt.Sprint(bitrateKbps(meta.Size, meta.Duration)),
				fmt.Sprint(spec.Quality),
				filter,
			)
		}
		rows = append(rows, row)
	}
	if isTTY {
		clearProgress(env.Out)
	}
	if stats.Canceled {
		log.Warn("Interrupted")
	}

	headers := encodeHeaders
	if cfg.Task == config.TaskThumbnail {
		headers = thumbnailHeaders
	}
	if len(rows) > 0 {
		fmt.Fprintln(env.Out, display.Table(headers, rows))
		fmt.Fprintln(env.Out)
	}
	log.Info("Analyzed %d files: %d planned, %d unreadable", stats.Current, stats.Succeeded, stats.Failed)
	return stats
}

// bitrateKbps estimates the overall bitrate from container size and duration.
func bitrateKbps(size int64, duration float64) int64 {
	if duration <= 0 {
		return 0
	}
	return int64(float64(size) * 8 / duration / 1000)
}

// printProgress shows a live probe counter. On a TTY it writes an
// inline \r-overwritten line; otherwise it is a no-op (the skip warnings
// already provide enough breadcrumbs in piped/logged output).
func printProgress(w io.Writer, isTTY bool, current, total, skipped int, name string) {
	if !isTTY {
		return
	}
	status := fmt.Sprintf("  Probing [%d/%d] %d%% ", current, total, current*100/total)
	if skipped > 0 {
		status += fmt.Sprintf("(%d skipped) ", skipped)
	}
	const maxName = 40
	if r := []rune(name); len(r) > maxName {
		name = string(r[:maxName-1]) + "…"
	}
	status += name
	if len(status) < 80 {
		status += strings.Repeat(" ", 80-len(status))
	}
	fmt.Fprintf(w, "\r%s", status)
}

// clearProgress erases the inline progress line on a TTY.
func clearProgress(w io.Writer) {
	fmt.Fprintf(w, "\r%s\r", strings.Repeat(" ", 80))
}

// Package check provides system diagnostics (--check mode) and pre-pipeline
// dependency validation (CheckDeps) for ffmpeg, ffprobe and the selected
// video encoder.
package check

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/backmassage/vidsqueeze/internal/config"
)

// Sentinel errors returned by CheckDeps when a required tool or encoder is missing.
var (
	ErrFFmpegNotFound  = errors.New("ffmpeg not found")
	ErrFFprobeNotFound = errors.New("ffprobe not found")
	ErrEncodeFailed    = errors.New("test encode failed")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...any)
	Success(string, ...any)
	Warn(string, ...any)
	Error(string, ...any)
}

// RunCheck runs the --check flow: tool versions, the encoders ffmpeg
// offers for the selected codec, and a short test encode. It reports
// whether everything needed for a batch is usable.
func RunCheck(cfg *config.Config, log Logger) bool {
	log.Info("=== System Check ===")

	ok := checkVersion(log, "ffmpeg", cfg.FFmpegBin)
	ok = checkVersion(log, "ffprobe", cfg.FFprobeBin) && ok
	if !ok {
		return false
	}
	listEncoders(log, cfg)

	enc := cfg.Codec.Encoder()
	log.Info("Testing %s (10-bit)...", enc)
	if runSilent(cfg.FFmpegBin, testEncodeArgs(cfg)...) {
		log.Success("%s works", enc)
		return true
	}
	log.Error("%s test encode failed", enc)
	return false
}

// checkVersion verifies bin is runnable and logs its version line.
func checkVersion(log Logger, name, bin string) bool {
	if _, err := exec.LookPath(bin); err != nil {
		log.Error("%s not found (%s)", name, bin)
		return false
	}
	out, err := exec.Command(bin, "-version").Output()
	if err != nil {
		log.Warn("%s found but -version failed: %v", name, err)
		return true
	}
	firstLine, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")
	log.Success("%s: %s", name, firstLine)
	return true
}

// listEncoders logs the encoders ffmpeg reports for the selected codec.
func listEncoders(log Logger, cfg *config.Config) {
	out, err := exec.Command(cfg.FFmpegBin, "-hide_banner", "-encoders").Output()
	if err != nil {
		log.Warn("Could not list encoders: %v", err)
		return
	}
	needle := "hevc"
	if cfg.Codec == config.CodecAV1 {
		needle = "av1"
	}
	log.Info("%s encoders:", strings.ToUpper(needle))
	for _, line := range strings.Split(string(out), "\n") {
		if strings.Contains(strings.ToLower(line), needle) {
			log.Info("  %s", strings.TrimSpace(line))
		}
	}
}

// CheckDeps is the pre-pipeline validation: it verifies that ffmpeg and
// ffprobe resolve and, for encodes, that the chosen encoder produces 10-bit
// output. Returns a sentinel-wrapping error on failure.
func CheckDeps(cfg *config.Config) error {
	if _, err := exec.LookPath(cfg.FFmpegBin); err != nil {
		return fmt.Errorf("%w: %s", ErrFFmpegNotFound, cfg.FFmpegBin)
	}
	if _, err := exec.LookPath(cfg.FFprobeBin); err != nil {
		return fmt.Errorf("%w: %s", ErrFFprobeNotFound, cfg.FFprobeBin)
	}
	if cfg.Task != config.TaskEncode || cfg.DryRun {
		return nil
	}
	if !runSilent(cfg.FFmpegBin, testEncodeArgs(cfg)...) {
		return fmt.Errorf("%w: %s", ErrEncodeFailed, cfg.Codec.Encoder())
	}
	return nil
}

// --- internal helpers ---

// testEncodeArgs returns the ffmpeg arguments for a minimal 10-bit test
// encode with the configured codec. Shared by RunCheck and CheckDeps.
func testEncodeArgs(cfg *config.Config) []string {
	args := []string{
		"-hide_banner", "-nostdin", "-loglevel", "error",
		"-f", "lavfi", "-i", "color=black:s=256x256:d=0.1",
		"-c:v", cfg.Codec.Encoder(),
	}
	if cfg.Codec == config.CodecHEVC {
		args = append(args, "-x265-params", "log-level=error")
	}
	return append(args, "-pix_fmt", cfg.PixFmt, "-f", "null", "-")
}

// runSilent runs a command and returns true if it exits with status 0.
// Both stdout and stderr are discarded.
func runSilent(name string, args ...string) bool {
	cmd := exec.Command(name, args...)
	cmd.Stdout = nil
	cmd.Stderr = nil
	return cmd.Run() == nil
}

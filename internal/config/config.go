// Package config holds runtime configuration: defaults, CLI flag parsing, and
// validation. Defaults: 1080p ceiling, 24 fps, x265 "medium", 200 px thumbnail
// tiles, 180 s thumbnail timeout.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// --- Enum types for validated string fields ---

// Task selects what the batch produces.
type Task string

const (
	TaskEncode    Task = "encode"    // Size-reduced video encodes.
	TaskThumbnail Task = "thumbnail" // Contact-sheet JPEGs.
)

// Codec selects the video encoder.
type Codec string

const (
	CodecHEVC Codec = "hevc" // libx265, 10-bit (default).
	CodecAV1  Codec = "av1"  // libsvtav1, 10-bit.
)

// Encoder returns the ffmpeg encoder name for c.
func (c Codec) Encoder() string {
	if c == CodecAV1 {
		return "libsvtav1"
	}
	return "libx265"
}

// ProbeFormat selects the ffprobe report format.
type ProbeFormat string

const (
	ProbeFlat ProbeFormat = "flat" // key=value lines (default).
	ProbeJSON ProbeFormat = "json" // -of json.
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// x265Presets lists the accepted libx265 presets, fastest first.
var x265Presets = []string{"veryfast", "faster", "fast", "medium", "slow", "slower", "veryslow"}

// SVT-AV1 presets are numeric; lower is slower and better.
const (
	svtPresetMin = 0
	svtPresetMax = 13
)

// Config holds all runtime settings. It is populated by [DefaultConfig] and
// then mutated by [ParseFlags] before being passed (by pointer) to packages
// that need it.
type Config struct {
	// What to do, and to which files (set from positional args).
	Task   Task
	Inputs []string
	Depth  int // Default: 1 (direct children of a directory input).

	// Encode settings.
	Codec         Codec      // Default: "hevc".
	Preset        string     // Default: "" (resolved by EffectivePreset).
	MaxResolution Resolution // Default: 1920x1080.
	MaxFPS        int        // Default: 24.
	PixFmt        string     // Fixed: "yuv420p10le".

	// Thumbnail settings.
	TileBase         int           // Default: 200 px short edge per tile.
	Grid             Grid          // Default: zero (chosen from duration).
	ThumbnailTimeout time.Duration // Default: 180s. Encodes never time out.

	// External tools.
	FFmpegBin   string      // Default: "ffmpeg".
	FFprobeBin  string      // Default: "ffprobe".
	ProbeFormat ProbeFormat // Default: "flat".

	// Behavior flags.
	DryRun    bool // Probe and plan only.
	Analyze   bool // Print a plan table and exit.
	AssumeYes bool // Skip the confirmation prompt.

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode // Default: "auto".
	LogFile   string    // Optional log file path.
	CheckOnly bool      // Run --check diagnostics and exit.
}

// DefaultConfig returns a Config with all defaults. Used as the base before
// [ParseFlags] applies CLI overrides.
func DefaultConfig() Config {
	return Config{
		Task:             TaskEncode,
		Depth:            1,
		Codec:            CodecHEVC,
		MaxResolution:    Resolution{Width: 1920, Height: 1080},
		MaxFPS:           24,
		PixFmt:           "yuv420p10le",
		TileBase:         200,
		ThumbnailTimeout: 180 * time.Second,
		FFmpegBin:        "ffmpeg",
		FFprobeBin:       "ffprobe",
		ProbeFormat:      ProbeFlat,
		ColorMode:        ColorAuto,
	}
}

// EffectivePreset returns the configured preset, or the codec's default
// ("medium" for x265, "6" for SVT-AV1) when none was given.
func (c *Config) EffectivePreset() string {
	if c.Preset != "" {
		return c.Preset
	}
	if c.Codec == CodecAV1 {
		return "6"
	}
	return "medium"
}

// Validate checks enum fields and numeric ranges. When not in CheckOnly
// mode, it also requires at least one input path.
func (c *Config) Validate() error {
	switch c.Task {
	case TaskEncode, TaskThumbnail:
		// valid
	default:
		return errors.New("invalid task (use 'encode' or 'thumbnail')")
	}

	switch c.Codec {
	case CodecHEVC, CodecAV1:
		// valid
	default:
		return errors.New("invalid codec (use 'hevc' or 'av1')")
	}

	switch c.ProbeFormat {
	case ProbeFlat, ProbeJSON:
		// valid
	default:
		return errors.New("invalid probe format (use 'flat' or 'json')")
	}

	if err := validatePreset(c.Codec, c.EffectivePreset()); err != nil {
		return err
	}
	if c.MaxResolution.Width <= 0 || c.MaxResolution.Height <= 0 {
		return errors.New("resolution ceiling must be positive")
	}
	if c.MaxFPS < 1 {
		return errors.New("fps ceiling must be at least 1")
	}
	if c.Depth < 1 {
		return errors.New("depth must be at least 1")
	}
	if c.TileBase < 16 {
		return errors.New("tile size must be at least 16 px")
	}
	if !c.Grid.IsZero() && c.Grid.Cells() < 4 {
		return fmt.Errorf("grid %s has fewer than 4 cells", c.Grid)
	}
	if c.ThumbnailTimeout <= 0 {
		return errors.New("thumbnail timeout must be positive")
	}

	if c.CheckOnly {
		return nil
	}
	if len(c.Inputs) == 0 {
		return errors.New("need at least one input file or directory")
	}
	return nil
}

func validatePreset(codec Codec, preset string) error {
	if codec == CodecAV1 {
		n, err := strconv.Atoi(preset)
		if err != nil || n < svtPresetMin || n > svtPresetMax {
			return fmt.Errorf("invalid SVT-AV1 preset %q (use %d-%d)", preset, svtPresetMin, svtPresetMax)
		}
		return nil
	}
	for _, p := range x265Presets {
		if p == preset {
			return nil
		}
	}
	return fmt.Errorf("invalid x265 preset %q (use veryfast, faster, fast, medium, slow, slower or veryslow)", preset)
}

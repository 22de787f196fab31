package config

import (
	"bytes"
	"errors"
	"flag"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Inputs = []string{"/media/in"}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v, want nil", err)
	}
}

func TestValidate_RequiresInputs(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() with no inputs = nil, want error")
	}
	cfg.CheckOnly = true
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() in check mode = %v, want nil", err)
	}
}

func TestValidate_Fields(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"hevc default preset", func(c *Config) {}, false},
		{"hevc slow", func(c *Config) { c.Preset = "slow" }, false},
		{"hevc unknown preset", func(c *Config) { c.Preset = "placebo2" }, true},
		{"av1 default preset", func(c *Config) { c.Codec = CodecAV1 }, false},
		{"av1 numeric preset", func(c *Config) { c.Codec = CodecAV1; c.Preset = "10" }, false},
		{"av1 out of range", func(c *Config) { c.Codec = CodecAV1; c.Preset = "14" }, true},
		{"av1 x265 name", func(c *Config) { c.Codec = CodecAV1; c.Preset = "slow" }, true},
		{"unknown codec", func(c *Config) { c.Codec = "vp9" }, true},
		{"unknown task", func(c *Config) { c.Task = "remux" }, true},
		{"unknown probe format", func(c *Config) { c.ProbeFormat = "xml" }, true},
		{"zero fps", func(c *Config) { c.MaxFPS = 0 }, true},
		{"zero depth", func(c *Config) { c.Depth = 0 }, true},
		{"tiny tile", func(c *Config) { c.TileBase = 8 }, true},
		{"grid 2x2", func(c *Config) { c.Grid = Grid{2, 2} }, false},
		{"grid 1x3", func(c *Config) { c.Grid = Grid{1, 3} }, true},
		{"zero timeout", func(c *Config) { c.ThumbnailTimeout = 0 }, true},
		{"zero resolution", func(c *Config) { c.MaxResolution = Resolution{} }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Inputs = []string{"in.mkv"}
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEffectivePreset(t *testing.T) {
	tests := []struct {
		codec  Codec
		preset string
		want   string
	}{
		{CodecHEVC, "", "medium"},
		{CodecAV1, "", "6"},
		{CodecHEVC, "slow", "slow"},
		{CodecAV1, "4", "4"},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		cfg.Codec, cfg.Preset = tt.codec, tt.preset
		if got := cfg.EffectivePreset(); got != tt.want {
			t.Errorf("EffectivePreset(%s, %q) = %q, want %q", tt.codec, tt.preset, got, tt.want)
		}
	}
}

func TestCodecEncoder(t *testing.T) {
	if got := CodecHEVC.Encoder(); got != "libx265" {
		t.Errorf("CodecHEVC.Encoder() = %q", got)
	}
	if got := CodecAV1.Encoder(); got != "libsvtav1" {
		t.Errorf("CodecAV1.Encoder() = %q", got)
	}
}

func TestParseResolution(t *testing.T) {
	tests := []struct {
		in      string
		want    Resolution
		wantErr error
	}{
		{"1280x720", Resolution{1280, 720}, nil},
		{"720X1280", Resolution{720, 1280}, nil},
		{"fhd", Resolution{1920, 1080}, nil},
		{"UHD", Resolution{3840, 2160}, nil},
		{"vhd", Resolution{720, 1280}, nil},
		{"1280", Resolution{}, ErrNoDelimiter},
		{"x720", Resolution{}, ErrMissingWidth},
		{"1280x", Resolution{}, ErrMissingHeight},
		{"0x720", Resolution{}, ErrZeroDimension},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseResolution(tt.in)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("ParseResolution(%q) error = %v, want %v", tt.in, err, tt.wantErr)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseResolution(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
			}
		})
	}
	if _, err := ParseResolution("axb"); err == nil {
		t.Error(`ParseResolution("axb") = nil error`)
	}
}

func TestResolutionHelpers(t *testing.T) {
	r := Resolution{720, 1280}
	if r.Pixels() != 921600 {
		t.Errorf("Pixels() = %d", r.Pixels())
	}
	if r.LongEdge() != 1280 {
		t.Errorf("LongEdge() = %d", r.LongEdge())
	}
	if r.String() != "720x1280" {
		t.Errorf("String() = %q", r.String())
	}
}

func TestParseGrid(t *testing.T) {
	tests := []struct {
		in      string
		want    Grid
		wantErr error
	}{
		{"", Grid{}, nil},
		{"auto", Grid{}, nil},
		{"3x2", Grid{3, 2}, nil},
		{"5X5", Grid{5, 5}, nil},
		{"33", Grid{}, ErrNoDelimiter},
		{"x3", Grid{}, ErrMissingRows},
		{"3x", Grid{}, ErrMissingCols},
		{"0x3", Grid{}, ErrZeroDimension},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseGrid(tt.in)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("ParseGrid(%q) error = %v, want %v", tt.in, err, tt.wantErr)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseGrid(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
			}
		})
	}
}

func parseForTest(t *testing.T, args ...string) (Config, error) {
	t.Helper()
	cfg := DefaultConfig()
	var stdout, stderr bytes.Buffer
	err := parseFlags(&cfg, args, "test", &stdout, &stderr)
	return cfg, err
}

func TestParseFlags_Encode(t *testing.T) {
	cfg, err := parseForTest(t, "encode", "-r", "hd", "--fps", "30", "--codec", "av1", "-p", "8", "/in/a.mkv", "/in/dir")
	if err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	if cfg.Task != TaskEncode {
		t.Errorf("Task = %q", cfg.Task)
	}
	if cfg.MaxResolution != (Resolution{1280, 720}) {
		t.Errorf("MaxResolution = %v", cfg.MaxResolution)
	}
	if cfg.MaxFPS != 30 || cfg.Codec != CodecAV1 || cfg.Preset != "8" {
		t.Errorf("MaxFPS=%d Codec=%s Preset=%s", cfg.MaxFPS, cfg.Codec, cfg.Preset)
	}
	if want := []string{"/in/a.mkv", "/in/dir"}; !reflect.DeepEqual(cfg.Inputs, want) {
		t.Errorf("Inputs = %v, want %v", cfg.Inputs, want)
	}
}

func TestParseFlags_ThumbnailInterleaved(t *testing.T) {
	cfg, err := parseForTest(t, "thumb", "a.mkv", "--grid", "4x4", "b.mkv", "--timeout", "30s", "-d", "3", "--", "-odd.mkv")
	if err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	if cfg.Task != TaskThumbnail {
		t.Errorf("Task = %q", cfg.Task)
	}
	if cfg.Grid != (Grid{4, 4}) || cfg.ThumbnailTimeout != 30*time.Second || cfg.Depth != 3 {
		t.Errorf("Grid=%v Timeout=%v Depth=%d", cfg.Grid, cfg.ThumbnailTimeout, cfg.Depth)
	}
	if want := []string{"a.mkv", "b.mkv", "-odd.mkv"}; !reflect.DeepEqual(cfg.Inputs, want) {
		t.Errorf("Inputs = %v, want %v", cfg.Inputs, want)
	}
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown task", []string{"remux", "a.mkv"}},
		{"bad resolution", []string{"encode", "-r", "huge"}},
		{"bad grid", []string{"thumbnail", "--grid", "3-3"}},
		{"bad codec", []string{"encode", "--codec", "vp9"}},
		{"unknown flag", []string{"encode", "--bogus"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseForTest(t, tt.args...); err == nil {
				t.Errorf("ParseFlags(%q) = nil error", tt.args)
			}
		})
	}
}

func TestParseFlags_HelpAndVersion(t *testing.T) {
	cfg := DefaultConfig()
	var stdout, stderr bytes.Buffer
	if err := parseFlags(&cfg, []string{"--help"}, "1.2.3", &stdout, &stderr); !errors.Is(err, flag.ErrHelp) {
		t.Errorf("--help error = %v, want flag.ErrHelp", err)
	}
	if !strings.Contains(stderr.String(), "vidsqueeze v1.2.3") {
		t.Errorf("help output missing version line:\n%s", stderr.String())
	}

	stdout.Reset()
	if err := parseFlags(&cfg, []string{"-V"}, "1.2.3", &stdout, &stderr); !errors.Is(err, ErrVersion) {
		t.Errorf("-V error = %v, want ErrVersion", err)
	}
	if got := strings.TrimSpace(stdout.String()); got != "vidsqueeze v1.2.3" {
		t.Errorf("version output = %q", got)
	}
}

func TestParseFlags_ColorPrecedence(t *testing.T) {
	cfg, err := parseForTest(t, "--color", "--no-color", "--check")
	if err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	if cfg.ColorMode != ColorNever {
		t.Errorf("ColorMode = %q, want never", cfg.ColorMode)
	}
	if !cfg.CheckOnly {
		t.Error("CheckOnly = false")
	}
}

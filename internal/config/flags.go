package config

// This file implements CLI flag parsing and help text.
// The first positional argument selects the task; flags and input paths may
// be interleaved after it.

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrVersion is returned by [ParseFlags] after printing the version, so the
// caller can exit 0. --help returns [flag.ErrHelp] the same way.
var ErrVersion = errors.New("version requested")

// taskAliases maps accepted task words to tasks.
var taskAliases = map[string]Task{
	"encode":                   TaskEncode,
	"encode-video":             TaskEncode,
	"thumbnail":                TaskThumbnail,
	"thumb":                    TaskThumbnail,
	"generate-video-thumbnail": TaskThumbnail,
}

// ParseFlags parses args (without the program name) into cfg. Help and
// version output go to stderr and stdout respectively.
func ParseFlags(cfg *Config, args []string, version string) error {
	return parseFlags(cfg, args, version, os.Stdout, os.Stderr)
}

func parseFlags(cfg *Config, args []string, version string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("vidsqueeze", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { printUsage(stderr, version) }

	// Bools applied after Parse so DefaultConfig values hold unless set.
	var n negatedFlags

	defineEncodeFlags(fs, cfg)
	defineThumbnailFlags(fs, cfg)
	defineToolFlags(fs, cfg)
	defineBehaviorFlags(fs, cfg)
	defineDisplayFlags(fs, cfg, &n)

	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		task, ok := taskAliases[strings.ToLower(args[0])]
		if !ok {
			return fmt.Errorf("unknown task %q (use 'encode' or 'thumbnail')", args[0])
		}
		cfg.Task = task
		args = args[1:]
	}

	inputs, err := parseInterleaved(fs, args)
	if err != nil {
		return err
	}
	applyNegatedFlags(cfg, &n)

	if n.showHelp {
		printUsage(stderr, version)
		return flag.ErrHelp
	}
	if n.showVersion {
		fmt.Fprintln(stdout, "vidsqueeze v"+version)
		return ErrVersion
	}

	cfg.Inputs = append(cfg.Inputs, inputs...)
	return nil
}

// parseInterleaved lets flags follow positional arguments
// ("encode a.mkv -r hd b.mkv"). Everything after "--" is positional.
func parseInterleaved(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		rest := fs.Args()
		if len(rest) == 0 {
			return positional, nil
		}
		if consumed := len(args) - len(rest); consumed > 0 && args[consumed-1] == "--" {
			return append(positional, rest...), nil
		}
		positional = append(positional, rest[0])
		args = rest[1:]
	}
}

// negatedFlags holds boolean flags that are applied after Parse.
type negatedFlags struct {
	forceColor  bool
	noColor     bool
	showVersion bool
	showHelp    bool
}

// defineEncodeFlags registers resolution, fps, codec and preset.
func defineEncodeFlags(fs *flag.FlagSet, cfg *Config) {
	fs.Var(&resolutionValue{&cfg.MaxResolution}, "resolution", "Resolution ceiling: WxH | uhd | qhd | fhd | hd")
	fs.Var(&resolutionValue{&cfg.MaxResolution}, "r", "Same as --resolution")
	fs.IntVar(&cfg.MaxFPS, "fps", cfg.MaxFPS, "Frame-rate ceiling")
	fs.IntVar(&cfg.MaxFPS, "f", cfg.MaxFPS, "Same as --fps")
	fs.Var(&codecValue{&cfg.Codec}, "codec", "Video codec: hevc | av1")
	fs.StringVar(&cfg.Preset, "preset", cfg.Preset, "Encoder preset")
	fs.StringVar(&cfg.Preset, "p", cfg.Preset, "Same as --preset")
}

// defineThumbnailFlags registers tile, grid and timeout.
func defineThumbnailFlags(fs *flag.FlagSet, cfg *Config) {
	fs.IntVar(&cfg.TileBase, "tile", cfg.TileBase, "Thumbnail tile short edge in px")
	fs.Var(&gridValue{&cfg.Grid}, "grid", "Thumbnail grid RxC (default: by duration)")
	fs.DurationVar(&cfg.ThumbnailTimeout, "timeout", cfg.ThumbnailTimeout, "Per-file thumbnail timeout")
}

// defineToolFlags registers tool paths and the probe format.
func defineToolFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.FFmpegBin, "ffmpeg", cfg.FFmpegBin, "ffmpeg binary")
	fs.StringVar(&cfg.FFprobeBin, "ffprobe", cfg.FFprobeBin, "ffprobe binary")
	fs.Var(&probeFormatValue{&cfg.ProbeFormat}, "probe-format", "ffprobe report format: flat | json")
}

// defineBehaviorFlags registers depth, dry-run, analyze and yes.
func defineBehaviorFlags(fs *flag.FlagSet, cfg *Config) {
	fs.IntVar(&cfg.Depth, "depth", cfg.Depth, "Directory recursion depth")
	fs.IntVar(&cfg.Depth, "d", cfg.Depth, "Same as --depth")
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "Probe and plan only")
	fs.BoolVar(&cfg.DryRun, "n", false, "Same as --dry-run")
	fs.BoolVar(&cfg.Analyze, "analyze", false, "Print the per-file plan table and exit")
	fs.BoolVar(&cfg.Analyze, "a", false, "Same as --analyze")
	fs.BoolVar(&cfg.AssumeYes, "yes", false, "Do not ask for confirmation")
	fs.BoolVar(&cfg.AssumeYes, "y", false, "Same as --yes")
}

// defineDisplayFlags registers color, verbose, log, check, version and help.
func defineDisplayFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.BoolVar(&n.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&n.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output")
	fs.BoolVar(&cfg.Verbose, "v", false, "Same as --verbose")
	fs.StringVar(&cfg.LogFile, "log", "", "Append logs to file")
	fs.StringVar(&cfg.LogFile, "l", "", "Same as --log")
	fs.BoolVar(&cfg.CheckOnly, "check", false, "Run dependency diagnostics and exit")
	fs.BoolVar(&cfg.CheckOnly, "c", false, "Same as --check")
	fs.BoolVar(&n.showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&n.showVersion, "V", false, "Same as --version")
	fs.BoolVar(&n.showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&n.showHelp, "h", false, "Same as --help")
}

func applyNegatedFlags(cfg *Config, n *negatedFlags) {
	if n.noColor {
		cfg.ColorMode = ColorNever
	} else if n.forceColor {
		cfg.ColorMode = ColorAlways
	}
}

// printUsage writes the help text. Column-aligned for readability.
func printUsage(w io.Writer, version string) {
	const col1 = 30
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "vidsqueeze v" + version + ": batch video shrinker and contact-sheet maker"},
		{"", ""},
		{"  vidsqueeze encode    [OPTIONS] <file|dir>...", ""},
		{"  vidsqueeze thumbnail [OPTIONS] <file|dir>...", ""},
		{"", ""},
		{"Encode", ""},
		{"  -r, --resolution <WxH|name>", "Resolution ceiling (default: fhd = 1920x1080)"},
		{"  -f, --fps <n>", "Frame-rate ceiling (default: 24)"},
		{"  --codec <hevc|av1>", "Video codec (default: hevc)"},
		{"  -p, --preset <name|n>", "x265 preset (default: medium) or SVT-AV1 0-13 (default: 6)"},
		{"", ""},
		{"Thumbnail", ""},
		{"  --tile <px>", "Tile short edge (default: 200)"},
		{"  --grid <RxC>", "Grid override (default: by duration)"},
		{"  --timeout <dur>", "Per-file timeout (default: 3m0s)"},
		{"", ""},
		{"Input & behavior", ""},
		{"  -d, --depth <n>", "Directory recursion depth (default: 1)"},
		{"  -n, --dry-run", "Probe and plan only"},
		{"  -a, --analyze", "Print the per-file plan table and exit"},
		{"  -y, --yes", "Do not ask for confirmation"},
		{"", ""},
		{"Tools", ""},
		{"  --ffmpeg <path>", "ffmpeg binary (default: ffmpeg)"},
		{"  --ffprobe <path>", "ffprobe binary (default: ffprobe)"},
		{"  --probe-format <flat|json>", "ffprobe report format (default: flat)"},
		{"", ""},
		{"Display", ""},
		{"  --color", "Force colored logs"},
		{"  --no-color", "Disable colored logs"},
		{"  -v, --verbose", "Verbose output"},
		{"", ""},
		{"Utility", ""},
		{"  -l, --log <path>", "Append logs to file"},
		{"  -c, --check", "Dependency diagnostics (ffmpeg, ffprobe, encoder)"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
	}

	for _, l := range lines {
		if l.flags == "" && l.desc == "" {
			fmt.Fprintln(w)
			continue
		}
		if l.desc == "" {
			fmt.Fprintln(w, l.flags)
			continue
		}
		if l.flags == "" {
			fmt.Fprintln(w, l.desc)
			continue
		}
		padding := col1 - len(l.flags)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(w, "%s%*s%s\n", l.flags, padding, "", l.desc)
	}
}

// flag.Value adapters so we can use enum and compound types with flag.Var.

type codecValue struct{ p *Codec }

func (c *codecValue) String() string {
	if c.p == nil {
		return ""
	}
	return string(*c.p)
}

func (c *codecValue) Set(s string) error {
	switch strings.ToLower(s) {
	case "hevc", "h265", "x265":
		*c.p = CodecHEVC
	case "av1", "svtav1":
		*c.p = CodecAV1
	default:
		return fmt.Errorf("invalid codec %q (use 'hevc' or 'av1')", s)
	}
	return nil
}

type probeFormatValue struct{ p *ProbeFormat }

func (v *probeFormatValue) String() string {
	if v.p == nil {
		return ""
	}
	return string(*v.p)
}

func (v *probeFormatValue) Set(s string) error {
	switch strings.ToLower(s) {
	case "flat":
		*v.p = ProbeFlat
	case "json":
		*v.p = ProbeJSON
	default:
		return fmt.Errorf("invalid probe format %q (use 'flat' or 'json')", s)
	}
	return nil
}

type resolutionValue struct{ p *Resolution }

func (v *resolutionValue) String() string {
	if v.p == nil {
		return ""
	}
	return v.p.String()
}

func (v *resolutionValue) Set(s string) error {
	r, err := ParseResolution(s)
	if err != nil {
		return err
	}
	*v.p = r
	return nil
}

type gridValue struct{ p *Grid }

func (v *gridValue) String() string {
	if v.p == nil {
		return ""
	}
	return v.p.String()
}

func (v *gridValue) Set(s string) error {
	g, err := ParseGrid(s)
	if err != nil {
		return err
	}
	*v.p = g
	return nil
}

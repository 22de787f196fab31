package ffmpeg

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/backmassage/vidsqueeze/internal/config"
	"github.com/backmassage/vidsqueeze/internal/planner"
)

// EncodeArgs returns the ffmpeg argument vector (without the binary name)
// for one encode. Progress goes to stderr as key=value lines via
// -progress pipe:2. keyint is only used by the AV1 path.
func EncodeArgs(cfg *config.Config, spec planner.EncodeSpec, keyint int, input, output string) []string {
	args := make([]string, 0, 32)

	// --- Preamble ---
	args = append(args,
		"-hide_banner", "-nostdin",
		"-v", "error",
		"-progress", "pipe:2",
		"-i", input,
	)

	// --- Video codec ---
	crf := strconv.Itoa(spec.Quality)
	switch cfg.Codec {
	case config.CodecAV1:
		args = append(args,
			"-c:v", "libsvtav1",
			"-crf", crf,
			"-preset", cfg.EffectivePreset(),
			"-g", strconv.Itoa(keyint),
			"-svtav1-params", "tune=0",
		)
	default:
		args = append(args,
			"-c:v", "libx265",
			"-x265-params", "log-level=error:output-depth=10:crf="+crf,
			"-preset", cfg.EffectivePreset(),
		)
	}
	args = append(args, "-pix_fmt", cfg.PixFmt)

	// --- Filters (scale then fps) ---
	if vf := VideoFilter(spec); vf != "" {
		args = append(args, "-vf", vf)
	}

	// --- Container and audio passthrough ---
	args = append(args, "-f", "mp4", "-c:a", "copy", "-y", output)
	return args
}

// VideoFilter joins the scale and fps filters for spec, scale first. It
// returns "" when neither applies. The unconstrained dimension is -2 so
// ffmpeg keeps the aspect ratio with an even size.
func VideoFilter(spec planner.EncodeSpec) string {
	var filters []string
	switch {
	case spec.ScaledWidth > 0:
		filters = append(filters, fmt.Sprintf("scale=%d:-2", spec.ScaledWidth))
	case spec.ScaledHeight > 0:
		filters = append(filters, fmt.Sprintf("scale=-2:%d", spec.ScaledHeight))
	}
	if spec.HasFPS() {
		filters = append(filters, fmt.Sprintf("fps=%d", spec.TargetFPS))
	}
	return strings.Join(filters, ",")
}

// ThumbnailArgs returns the ffmpeg argument vector for one contact sheet.
// The time range precedes -i so ffmpeg seeks the input rather than decoding
// up to the start point.
func ThumbnailArgs(spec planner.ThumbnailSpec, input, output string) []string {
	args := make([]string, 0, 32)

	// --- Preamble ---
	args = append(args, "-hide_banner", "-nostdin", "-v", "fatal")
	if spec.SkipNonKeyframes {
		args = append(args, "-skip_frame", "nokey")
	}

	// --- Range and input ---
	args = append(args,
		"-ss", fmt.Sprintf("%.2f", spec.StartCut),
		"-to", fmt.Sprintf("%.2f", spec.EndCut),
		"-i", input,
		"-map", "0:v",
	)

	// --- Single tiled frame ---
	args = append(args,
		"-vf", ThumbnailFilter(spec),
		"-fps_mode", "vfr",
		"-frames:v", "1",
		"-update", "1",
		"-q:v", "2",
		"-y", output,
	)
	return args
}

// ThumbnailFilter returns the sample/scale/tile chain. Keyframe-only specs
// also select I-frames so decoders that ignore -skip_frame still comply.
func ThumbnailFilter(spec planner.ThumbnailSpec) string {
	var b strings.Builder
	if spec.SkipNonKeyframes {
		b.WriteString("select='eq(pict_type,I)',")
	}
	// Shortest exact form; fixed precision would round sub-centisecond
	// intervals to zero.
	fmt.Fprintf(&b, "fps=1/%s,scale=%d:%d,tile=%dx%d",
		strconv.FormatFloat(spec.Interval, 'f', -1, 64),
		spec.TileWidth, spec.TileHeight, spec.Rows, spec.Cols)
	return b.String()
}

package probe

import "fmt"

// Metadata is the snapshot of a source file taken before any encode or
// thumbnail decision. Every field is required; [ParseFlat] and [ParseJSON]
// never return a Metadata with a zero Width, Height, FPS or Duration.
type Metadata struct {
	Width    int
	Height   int
	FPS      float64 // Average frame rate (avg_frame_rate num/den).
	Duration float64 // Seconds.
	Size     int64   // Bytes, from the container.
}

// Pixels returns Width*Height.
func (m *Metadata) Pixels() int {
	return m.Width * m.Height
}

// Landscape reports whether the frame is at least as wide as it is tall.
func (m *Metadata) Landscape() bool {
	return m.Width >= m.Height
}

// Resolution returns "WxH".
func (m *Metadata) Resolution() string {
	return fmt.Sprintf("%dx%d", m.Width, m.Height)
}

// Format selects the ffprobe report format.
type Format string

const (
	FormatFlat Format = "flat" // -of default=noprint_wrappers=1 (default).
	FormatJSON Format = "json" // -of json.
)

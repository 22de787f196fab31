package probe

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// rawFields holds the five report values as text, before validation.
type rawFields struct {
	width, height, frameRate, duration, size string
}

// ParseFlat parses ffprobe "-of default=noprint_wrappers=1" output: one
// key=value pair per line. Unknown keys are ignored; the first occurrence of
// a key wins. Exported for testing without a real ffprobe binary.
func ParseFlat(data []byte) (*Metadata, error) {
	var raw rawFields
	seen := make(map[string]bool, 5)
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		key, value, ok := strings.Cut(strings.TrimSpace(sc.Text()), "=")
		if !ok || seen[key] {
			continue
		}
		seen[key] = true
		switch key {
		case "width":
			raw.width = value
		case "height":
			raw.height = value
		case "avg_frame_rate":
			raw.frameRate = value
		case "duration":
			raw.duration = value
		case "size":
			raw.size = value
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read ffprobe report: %w", err)
	}
	return raw.build()
}

// --- ffprobe JSON wire types ---

type ffprobeOutput struct {
	Streams []ffprobeStream `json:"streams"`
	Format  ffprobeFormat   `json:"format"`
}

type ffprobeStream struct {
	Width        json.Number `json:"width"`
	Height       json.Number `json:"height"`
	AvgFrameRate string      `json:"avg_frame_rate"`
}

type ffprobeFormat struct {
	Duration string `json:"duration"`
	Size     string `json:"size"`
}

// ParseJSON parses ffprobe "-of json" output restricted to the first video
// stream and the format section. Exported for testing.
func ParseJSON(data []byte) (*Metadata, error) {
	var out ffprobeOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parse ffprobe JSON: %w", err)
	}
	raw := rawFields{
		duration: out.Format.Duration,
		size:     out.Format.Size,
	}
	if len(out.Streams) > 0 {
		s := out.Streams[0]
		raw.width = s.Width.String()
		raw.height = s.Height.String()
		raw.frameRate = s.AvgFrameRate
	}
	return raw.build()
}

// build validates the raw values in report order and returns the first
// missing or unparsable field as a *MissingFieldError.
func (r rawFields) build() (*Metadata, error) {
	var m Metadata
	var ok bool

	if m.Width, ok = parsePositiveInt(r.width); !ok {
		return nil, &MissingFieldError{Field: "width"}
	}
	if m.Height, ok = parsePositiveInt(r.height); !ok {
		return nil, &MissingFieldError{Field: "height"}
	}
	if m.FPS, ok = parseFraction(r.frameRate); !ok {
		return nil, &MissingFieldError{Field: "avg_frame_rate"}
	}
	if m.Duration, ok = parsePositiveFloat(r.duration); !ok {
		return nil, &MissingFieldError{Field: "duration"}
	}
	size, err := strconv.ParseInt(strings.TrimSpace(r.size), 10, 64)
	if err != nil || size < 0 {
		return nil, &MissingFieldError{Field: "size"}
	}
	m.Size = size
	return &m, nil
}

// parseFraction parses "num/den" (e.g. "30000/1001"). A zero denominator or
// a zero result is rejected.
func parseFraction(s string) (float64, bool) {
	numStr, denStr, ok := strings.Cut(strings.TrimSpace(s), "/")
	if !ok {
		return 0, false
	}
	num, err := strconv.ParseUint(numStr, 10, 32)
	if err != nil {
		return 0, false
	}
	den, err := strconv.ParseUint(denStr, 10, 32)
	if err != nil || den == 0 || num == 0 {
		return 0, false
	}
	return float64(num) / float64(den), true
}

func parsePositiveInt(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

func parsePositiveFloat(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || f <= 0 || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

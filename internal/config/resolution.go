package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Resolution is a frame size used as the encode ceiling.
type Resolution struct {
	Width  int
	Height int
}

// Named ceilings accepted by --resolution in addition to "WxH". Vertical
// variants swap width and height.
var namedResolutions = map[string]Resolution{
	"uhd":  {3840, 2160},
	"qhd":  {2560, 1440},
	"fhd":  {1920, 1080},
	"hd":   {1280, 720},
	"vuhd": {2160, 3840},
	"vqhd": {1440, 2560},
	"vfhd": {1080, 1920},
	"vhd":  {720, 1280},
}

// Errors returned by [ParseResolution] and [ParseGrid].
var (
	ErrNoDelimiter   = errors.New("missing 'x' delimiter")
	ErrMissingWidth  = errors.New("missing width")
	ErrMissingHeight = errors.New("missing height")
	ErrMissingRows   = errors.New("missing rows")
	ErrMissingCols   = errors.New("missing columns")
	ErrZeroDimension = errors.New("dimensions must be greater than zero")
)

// ParseResolution accepts a named ceiling (uhd, qhd, fhd, hd, and their
// v-prefixed vertical forms) or "WxH".
func ParseResolution(s string) (Resolution, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if r, ok := namedResolutions[s]; ok {
		return r, nil
	}
	w, h, err := parsePair(s, ErrMissingWidth, ErrMissingHeight)
	if err != nil {
		return Resolution{}, fmt.Errorf("invalid resolution %q: %w", s, err)
	}
	return Resolution{Width: w, Height: h}, nil
}

// Pixels returns Width*Height.
func (r Resolution) Pixels() int { return r.Width * r.Height }

// LongEdge returns the larger of Width and Height.
func (r Resolution) LongEdge() int { return max(r.Width, r.Height) }

func (r Resolution) String() string { return fmt.Sprintf("%dx%d", r.Width, r.Height) }

// Grid is a thumbnail contact-sheet layout. The zero Grid means "choose
// from the source duration".
type Grid struct {
	Rows int
	Cols int
}

// ParseGrid parses "RxC". An empty string yields the zero Grid.
func ParseGrid(s string) (Grid, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "auto" {
		return Grid{}, nil
	}
	r, c, err := parsePair(s, ErrMissingRows, ErrMissingCols)
	if err != nil {
		return Grid{}, fmt.Errorf("invalid grid %q: %w", s, err)
	}
	return Grid{Rows: r, Cols: c}, nil
}

// IsZero reports whether no grid override is set.
func (g Grid) IsZero() bool { return g.Rows == 0 && g.Cols == 0 }

// Cells returns Rows*Cols.
func (g Grid) Cells() int { return g.Rows * g.Cols }

func (g Grid) String() string {
	if g.IsZero() {
		return "auto"
	}
	return fmt.Sprintf("%dx%d", g.Rows, g.Cols)
}

// parsePair splits "AxB" into two positive integers.
func parsePair(s string, errFirst, errSecond error) (int, int, error) {
	a, b, ok := strings.Cut(s, "x")
	if !ok {
		return 0, 0, ErrNoDelimiter
	}
	if a == "" {
		return 0, 0, errFirst
	}
	if b == "" {
		return 0, 0, errSecond
	}
	first, err := strconv.Atoi(a)
	if err != nil {
		return 0, 0, err
	}
	second, err := strconv.Atoi(b)
	if err != nil {
		return 0, 0, err
	}
	if first <= 0 || second <= 0 {
		return 0, 0, ErrZeroDimension
	}
	return first, second, nil
}

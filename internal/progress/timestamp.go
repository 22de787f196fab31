package progress

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrBadTimestamp is returned by [ParseTimestamp] for anything that is not
// HH:MM:SS or HH:MM:SS.fraction.
var ErrBadTimestamp = errors.New("malformed timestamp")

// ParseTimestamp converts ffmpeg's out_time ("HH:MM:SS[.ffffff]") to
// seconds. The fractional part is read as a decimal fraction of any length.
func ParseTimestamp(s string) (float64, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrBadTimestamp, s)
	}
	hours, err := strconv.ParseUint(parts[0], 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadTimestamp, s)
	}
	minutes, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadTimestamp, s)
	}
	secStr, fracStr, hasFrac := strings.Cut(parts[2], ".")
	secs, err := strconv.ParseUint(secStr, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadTimestamp, s)
	}

	total := float64(hours)*3600 + float64(minutes)*60 + float64(secs)
	if hasFrac {
		frac, err := strconv.ParseUint(fracStr, 10, 64)
		if err != nil || len(fracStr) > 18 {
			return 0, fmt.Errorf("%w: %q", ErrBadTimestamp, s)
		}
		total += float64(frac) / math.Pow10(len(fracStr))
	}
	return total, nil
}

// FormatTimestamp renders seconds as "HH:MM:SS.ffffff", the inverse of
// [ParseTimestamp] at microsecond precision. Negative input renders as zero.
func FormatTimestamp(secs float64) string {
	if secs < 0 || math.IsNaN(secs) {
		secs = 0
	}
	us := int64(math.Round(secs * 1e6))
	h := us / 3_600_000_000
	us -= h * 3_600_000_000
	m := us / 60_000_000
	us -= m * 60_000_000
	s := us / 1_000_000
	us -= s * 1_000_000
	return fmt.Sprintf("%02d:%02d:%02d.%06d", h, m, s, us)
}

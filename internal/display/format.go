package display

import (
	"fmt"
	"strings"
	"time"
)

var byteUnits = []string{"B", "KB", "MB", "GB", "TB", "PB", "EB"}

// FormatBytes returns a compact binary size with up to two decimals and no
// trailing zeros: 0B, 512B, 1.5KB, 700MB.
func FormatBytes(n uint64) string {
	if n == 0 {
		return "0B"
	}
	size := float64(n)
	unit := 0
	for size >= 1024 && unit < len(byteUnits)-1 {
		size /= 1024
		unit++
	}
	s := fmt.Sprintf("%.2f", size)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	return s + byteUnits[unit]
}

// FormatBytesWithSign prefixes a delta with + or -, e.g. "-1.2GB".
func FormatBytesWithSign(delta int64) string {
	switch {
	case delta > 0:
		return "+" + FormatBytes(uint64(delta))
	case delta < 0:
		return "-" + FormatBytes(uint64(-delta))
	}
	return FormatBytes(0)
}

// FormatDuration renders d in the largest whole unit it reaches, with one
// decimal: 42.0s, 1.5m, 2.0h, 1.2d.
func FormatDuration(d time.Duration) string {
	secs := d.Seconds()
	switch {
	case secs >= 86400:
		return fmt.Sprintf("%.1fd", secs/86400)
	case secs >= 3600:
		return fmt.Sprintf("%.1fh", secs/3600)
	case secs >= 60:
		return fmt.Sprintf("%.1fm", secs/60)
	}
	return fmt.Sprintf("%.1fs", secs)
}

// FormatPercent returns part as a percentage of whole with one decimal, or
// "n/a" when whole is zero.
func FormatPercent(part, whole uint64) string {
	if whole == 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", float64(part)/float64(whole)*100)
}

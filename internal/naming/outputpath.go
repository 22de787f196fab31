package naming

import (
	"path/filepath"
	"strings"
	"time"
)

// TimestampLayout is the suffix appended to output stems (yymmddHHMMSS).
const TimestampLayout = "060102150405"

// Extensions for each output kind, without the dot.
const (
	ExtVideo     = "mp4"
	ExtThumbnail = "jpg"
)

// OutputPath returns <dir>/<stem>-<yymmddHHMMSS>.<ext> for input, where dir
// and stem come from input and the timestamp from now (local time).
//
//	/v/clip.mkv, "mp4", 2025-01-02 03:04:05 → /v/clip-250102030405.mp4
func OutputPath(input, ext string, now time.Time) string {
	dir := filepath.Dir(input)
	base := filepath.Base(input)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		stem = base
	}
	return filepath.Join(dir, stem+"-"+now.Format(TimestampLayout)+"."+ext)
}

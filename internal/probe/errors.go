package probe

import (
	"fmt"
	"strings"
)

// MissingFieldError reports a required field that is absent from the ffprobe
// report or cannot be parsed as its numeric type.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return "ffprobe report has no usable " + e.Field
}

// ProbeError reports a non-zero ffprobe exit. Stderr holds its diagnostics.
type ProbeError struct {
	ExitCode int
	Stderr   string
}

func (e *ProbeError) Error() string {
	if msg := strings.TrimSpace(e.Stderr); msg != "" {
		return msg
	}
	return fmt.Sprintf("ffprobe exited with status %d", e.ExitCode)
}

package pipeline

import (
	"fmt"
	"time"

	"github.com/backmassage/vidsqueeze/internal/display"
)

// RunStats tracks aggregate counters and byte totals across a batch run.
type RunStats struct {
	Total            int
	Current          int
	Succeeded        int
	Skipped          int
	Failed           int
	Canceled         bool
	Elapsed          time.Duration
	TotalInputBytes  uint64
	TotalOutputBytes uint64
}

// SpaceSaved returns the aggregate byte difference between inputs and outputs.
// Positive means outputs are smaller; negative means they grew.
func (s *RunStats) SpaceSaved() int64 {
	return int64(s.TotalInputBytes) - int64(s.TotalOutputBytes)
}

// HasFailure reports whether any file failed.
func (s *RunStats) HasFailure() bool { return s.Failed > 0 }

func (s *RunStats) add(res FileResult) {
	s.Succeeded++
	if res.DryRun {
		return
	}
	s.TotalInputBytes += res.InputBytes
	s.TotalOutputBytes += res.OutputBytes
}

// summaryFields renders the stats for [display.Box].
// Byte totals are included only when showBytes is set.
func (s *RunStats) summaryFields(showBytes bool) []display.Field {
	fields := []display.Field{
		{Label: "Files", Value: fmt.Sprintf("%d of %d processed", s.Current, s.Total)},
		{Label: "Succeeded", Value: fmt.Sprint(s.Succeeded)},
		{Label: "Skipped", Value: fmt.Sprint(s.Skipped)},
		{Label: "Failed", Value: fmt.Sprint(s.Failed)},
		{Label: "Elapsed", Value: display.FormatDuration(s.Elapsed)},
	}
	if !showBytes {
		return fields
	}
	return append(fields,
		display.Field{Label: "Input", Value: display.FormatBytes(s.TotalInputBytes)},
		display.Field{Label: "Output", Value: display.FormatBytes(s.TotalOutputBytes)},
		display.Field{Label: "Space saved", Value: display.FormatBytesWithSign(s.SpaceSaved())},
	)
}

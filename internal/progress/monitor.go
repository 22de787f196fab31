package progress

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
)

// Errors returned by [Monitor.Observe].
var (
	ErrZeroDuration = errors.New("total duration must be greater than zero")
	ErrBadEnd       = errors.New("progress stream ended without progress=end")
)

// maxLineSize bounds a single stderr line; ffmpeg log lines are short.
const maxLineSize = 1 << 20

// Options configures the progress indicator.
type Options struct {
	Writer      io.Writer // Where the bar renders. Default: os.Stderr.
	Description string    // Shown left of the bar, usually the file name.
}

// Result is what a completed progress stream reports.
type Result struct {
	Elapsed   time.Duration // Wall time since the Monitor was created.
	TotalSize uint64        // Last total_size seen, in bytes.
}

// Monitor follows one ffmpeg -progress stream and drives a percentage bar.
// A Monitor is single-use: once it has seen progress=end, further Observe
// calls return the same Result without reading.
type Monitor struct {
	total   float64
	start   time.Time
	bar     *progressbar.ProgressBar
	percent int
	result  Result
	done    bool
}

// New returns a Monitor for a source of total seconds. The elapsed clock
// starts now.
func New(total float64, opts Options) *Monitor {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	bar := progressbar.NewOptions(100,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(opts.Description),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "▐",
			BarEnd:        "▌",
		}),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(w) }),
	)
	return &Monitor{total: total, start: time.Now(), bar: bar}
}

// Percent returns the last published percentage (0-100).
func (m *Monitor) Percent() int { return m.percent }

// Observe reads key=value lines from r until progress=end. It tracks
// total_size (last value wins) and converts out_time into a percentage of
// the total duration; malformed out_time values are skipped. Reaching EOF
// first is [ErrBadEnd].
func (m *Monitor) Observe(r io.Reader) (Result, error) {
	if m.total <= 0 {
		return Result{}, ErrZeroDuration
	}
	if m.done {
		return m.result, nil
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), maxLineSize)
	for sc.Scan() {
		key, value, ok := strings.Cut(strings.TrimSpace(sc.Text()), "=")
		if !ok {
			continue
		}
		switch key {
		case "total_size":
			if value == "N/A" {
				continue
			}
			n, err := strconv.ParseUint(value, 10, 64)
			if err != nil {
				return Result{}, fmt.Errorf("parse total_size %q: %w", value, err)
			}
			m.result.TotalSize = n
		case "out_time":
			secs, err := ParseTimestamp(value)
			if err != nil {
				continue
			}
			m.update(secs)
		case "progress":
			if value == "end" {
				m.finish()
				return m.result, nil
			}
		}
	}
	if err := sc.Err(); err != nil {
		return Result{}, fmt.Errorf("read progress: %w", err)
	}
	return Result{}, ErrBadEnd
}

// update publishes a new percentage when it moved by at least one point.
func (m *Monitor) update(secs float64) {
	pct := int(secs / m.total * 100)
	pct = max(0, min(pct, 100))
	if d := pct - m.percent; d >= 1 || d <= -1 {
		m.percent = pct
		_ = m.bar.Set(pct)
	}
}

func (m *Monitor) finish() {
	m.done = true
	m.percent = 100
	_ = m.bar.Finish()
	m.result.Elapsed = time.Since(m.start)
}

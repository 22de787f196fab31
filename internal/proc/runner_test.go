package proc

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"testing"
	"time"
)

const helperEnv = "VIDSQUEEZE_WANT_HELPER_PROCESS"

// helperRunner returns a Runner that re-executes the test binary as a fake
// tool; see TestHelperProcess for the supported modes.
func helperRunner(t *testing.T) *Runner {
	t.Helper()
	t.Setenv(helperEnv, "1")
	return NewRunner(os.Args[0])
}

func helperArgs(mode string) []string {
	return []string{"-test.run=TestHelperProcess", "--", mode}
}

// TestHelperProcess is not a real test. It is the body of the fake child
// process used by the runner tests.
func TestHelperProcess(t *testing.T) {
	if os.Getenv(helperEnv) != "1" {
		return
	}
	args := os.Args
	for len(args) > 0 && args[0] != "--" {
		args = args[1:]
	}
	if len(args) < 2 {
		os.Exit(2)
	}
	switch args[1] {
	case "ok":
		fmt.Fprintln(os.Stderr, "frame=1")
		os.Exit(0)
	case "stdout":
		fmt.Fprint(os.Stdout, "width=640\nheight=360\n")
		os.Exit(0)
	case "fail":
		fmt.Fprintln(os.Stderr, "line one")
		fmt.Fprintln(os.Stderr, "input.mkv: No such file or directory")
		os.Exit(3)
	case "fail-silent":
		os.Exit(4)
	case "progress":
		fmt.Fprint(os.Stderr, "total_size=4096\nout_time=00:00:01.000000\nprogress=end\n")
		os.Exit(0)
	case "sleep":
		time.Sleep(30 * time.Second)
		os.Exit(0)
	}
	os.Exit(2)
}

func TestRun_Success(t *testing.T) {
	r := helperRunner(t)
	out := r.Run(context.Background(), Invocation{Args: helperArgs("ok")})
	if out.Kind != Success {
		t.Fatalf("Kind = %v, want %v (err %v)", out.Kind, Success, out.Err())
	}
	if out.Err() != nil {
		t.Errorf("Err() = %v, want nil", out.Err())
	}
	if out.Elapsed <= 0 {
		t.Errorf("Elapsed = %v, want > 0", out.Elapsed)
	}
}

func TestRun_CapturesStdout(t *testing.T) {
	r := helperRunner(t)
	var stdout bytes.Buffer
	out := r.Run(context.Background(), Invocation{Args: helperArgs("stdout"), Stdout: &stdout})
	if out.Kind != Success {
		t.Fatalf("Kind = %v, want %v", out.Kind, Success)
	}
	if got := stdout.String(); got != "width=640\nheight=360\n" {
		t.Errorf("stdout = %q", got)
	}
}

func TestRun_NonZeroExit(t *testing.T) {
	r := helperRunner(t)
	out := r.Run(context.Background(), Invocation{Args: helperArgs("fail")})
	if out.Kind != NonZeroExit {
		t.Fatalf("Kind = %v, want %v", out.Kind, NonZeroExit)
	}
	if out.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", out.ExitCode)
	}
	if !strings.Contains(out.Stderr, "No such file or directory") {
		t.Errorf("Stderr = %q, want captured diagnostics", out.Stderr)
	}
	var exitErr *ExitError
	if !errors.As(out.Err(), &exitErr) {
		t.Fatalf("Err() = %T, want *ExitError", out.Err())
	}
	if !strings.Contains(exitErr.Error(), "No such file or directory") {
		t.Errorf("ExitError = %q, want last stderr line", exitErr.Error())
	}
}

func TestRun_NonZeroExitEmptyStderr(t *testing.T) {
	r := helperRunner(t)
	out := r.Run(context.Background(), Invocation{Args: helperArgs("fail-silent")})
	if out.Kind != NonZeroExit {
		t.Fatalf("Kind = %v, want %v", out.Kind, NonZeroExit)
	}
	if got, want := out.Err().Error(), "exited with status 4"; got != want {
		t.Errorf("Err() = %q, want %q", got, want)
	}
}

func TestRun_SpawnFailed(t *testing.T) {
	r := NewRunner("/nonexistent/vidsqueeze-test-binary")
	out := r.Run(context.Background(), Invocation{})
	if out.Kind != SpawnFailed {
		t.Fatalf("Kind = %v, want %v", out.Kind, SpawnFailed)
	}
	var spawnErr *SpawnError
	if !errors.As(out.Err(), &spawnErr) {
		t.Errorf("Err() = %T, want *SpawnError", out.Err())
	}
}

func TestRun_AlreadyCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	// A binary that cannot exist proves nothing was spawned.
	r := NewRunner("/nonexistent/vidsqueeze-test-binary")
	out := r.Run(ctx, Invocation{})
	if out.Kind != Canceled {
		t.Fatalf("Kind = %v, want %v", out.Kind, Canceled)
	}
	if !errors.Is(out.Err(), ErrCanceled) {
		t.Errorf("Err() = %v, want ErrCanceled", out.Err())
	}
}

func TestRun_CancelKillsChild(t *testing.T) {
	r := helperRunner(t)
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(100*time.Millisecond, cancel)

	start := time.Now()
	out := r.Run(ctx, Invocation{Args: helperArgs("sleep")})
	if out.Kind != Canceled {
		t.Fatalf("Kind = %v, want %v", out.Kind, Canceled)
	}
	if time.Since(start) > 10*time.Second {
		t.Errorf("Run took %v after cancel", time.Since(start))
	}
}

func TestRun_Timeout(t *testing.T) {
	r := helperRunner(t)
	out := r.Run(context.Background(), Invocation{
		Args:    helperArgs("sleep"),
		Timeout: 100 * time.Millisecond,
	})
	if out.Kind != TimedOut {
		t.Fatalf("Kind = %v, want %v", out.Kind, TimedOut)
	}
	if !errors.Is(out.Err(), ErrTimedOut) {
		t.Errorf("Err() = %v, want ErrTimedOut", out.Err())
	}
}

func TestRun_TimeoutNotReachedOnFastExit(t *testing.T) {
	r := helperRunner(t)
	out := r.Run(context.Background(), Invocation{
		Args:    helperArgs("ok"),
		Timeout: 30 * time.Second,
	})
	if out.Kind != Success {
		t.Fatalf("Kind = %v, want %v", out.Kind, Success)
	}
}

func TestRun_ConsumerReportsBytes(t *testing.T) {
	r := helperRunner(t)
	consumer := func(stderr io.Reader) (uint64, error) {
		sc := bufio.NewScanner(stderr)
		var size uint64
		for sc.Scan() {
			if v, ok := strings.CutPrefix(sc.Text(), "total_size="); ok {
				fmt.Sscan(v, &size)
			}
			if sc.Text() == "progress=end" {
				return size, nil
			}
		}
		return 0, errors.New("no end")
	}
	out := r.Run(context.Background(), Invocation{Args: helperArgs("progress"), Consumer: consumer})
	if out.Kind != Success {
		t.Fatalf("Kind = %v, want %v (err %v)", out.Kind, Success, out.Err())
	}
	if out.OutputBytes != 4096 {
		t.Errorf("OutputBytes = %d, want 4096", out.OutputBytes)
	}
}

func TestRun_ConsumerErrorIsIncomplete(t *testing.T) {
	r := helperRunner(t)
	errBroken := errors.New("stream ended early")
	consumer := func(stderr io.Reader) (uint64, error) {
		_, _ = io.Copy(io.Discard, stderr)
		return 0, errBroken
	}
	out := r.Run(context.Background(), Invocation{Args: helperArgs("ok"), Consumer: consumer})
	if out.Kind != Incomplete {
		t.Fatalf("Kind = %v, want %v", out.Kind, Incomplete)
	}
	if !errors.Is(out.Err(), errBroken) {
		t.Errorf("Err() = %v, want wrapping %v", out.Err(), errBroken)
	}
}

func TestRun_NonZeroExitBeatsConsumerError(t *testing.T) {
	r := helperRunner(t)
	consumer := func(stderr io.Reader) (uint64, error) {
		return 0, errors.New("no end")
	}
	out := r.Run(context.Background(), Invocation{Args: helperArgs("fail"), Consumer: consumer})
	if out.Kind != NonZeroExit {
		t.Fatalf("Kind = %v, want %v", out.Kind, NonZeroExit)
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{Success, "success"},
		{Canceled, "canceled"},
		{TimedOut, "timed out"},
		{KillFailed, "kill failed"},
		{Kind(99), "kind(99)"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", int(tt.kind), got, tt.want)
		}
	}
}

func TestKillError_Unwrap(t *testing.T) {
	cause := errors.New("operation not permitted")
	err := Outcome{Kind: KillFailed, Cause: &KillError{Reason: ErrCanceled, Err: cause}}.Err()
	if errors.Is(err, ErrCanceled) {
		t.Errorf("errors.Is(%v, ErrCanceled) = true, want a distinct kill failure", err)
	}
	var ke *KillError
	if !errors.As(err, &ke) || ke.Reason != ErrCanceled {
		t.Errorf("errors.As(%v, *KillError) lost the reason", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("errors.Is(%v, cause) = false", err)
	}
}

func TestTailBuffer(t *testing.T) {
	tests := []struct {
		name   string
		max    int
		writes []string
		want   string
	}{
		{"under limit", 10, []string{"abc", "def"}, "abcdef"},
		{"exact limit", 6, []string{"abc", "def"}, "abcdef"},
		{"drops oldest", 5, []string{"abc", "def"}, "bcdef"},
		{"single oversized write", 3, []string{"abcdef"}, "def"},
		{"oversized then small", 4, []string{"abcdef", "gh"}, "efgh"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTailBuffer(tt.max)
			for _, w := range tt.writes {
				if n, err := b.Write([]byte(w)); n != len(w) || err != nil {
					t.Fatalf("Write(%q) = %d, %v", w, n, err)
				}
			}
			if got := b.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

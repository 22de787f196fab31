package proc

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"time"
)

// Consumer reads a child's stderr while it runs. It returns the number of
// output bytes it observed (0 if unknown) and an error if the stream broke
// its contract. The runner drains whatever the consumer leaves unread.
type Consumer func(stderr io.Reader) (outputBytes uint64, err error)

// Invocation describes one child-process run.
type Invocation struct {
	Args     []string
	Timeout  time.Duration // 0 disables the timeout.
	Stdout   io.Writer     // Optional; stdout is discarded when nil.
	Consumer Consumer      // Optional.
}

// Runner starts one external binary per call and maps its lifecycle to an
// [Outcome].
type Runner struct {
	Bin string
}

// NewRunner returns a Runner for the named binary (resolved via PATH).
func NewRunner(bin string) *Runner {
	return &Runner{Bin: bin}
}

type exitResult struct {
	err         error
	consumerErr error
	outputBytes uint64
	stderr      string
}

// Run starts the child and waits for the first of: ctx canceled, timeout
// elapsed, or natural exit. The child is always reaped; after a kill the
// reap happens in the background so Run returns without waiting on it.
func (r *Runner) Run(ctx context.Context, inv Invocation) Outcome {
	if ctx.Err() != nil {
		return Outcome{Kind: Canceled}
	}

	cmd := exec.Command(r.Bin, inv.Args...)
	cmd.Stdout = inv.Stdout
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return Outcome{Kind: SpawnFailed, Cause: err}
	}

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return Outcome{Kind: SpawnFailed, Cause: err}
	}

	done := make(chan exitResult, 1)
	go func() {
		// Wait closes the pipe, so all reads must finish first.
		tail := newTailBuffer(stderrTailSize)
		tee := io.TeeReader(stderr, tail)
		var res exitResult
		if inv.Consumer != nil {
			res.outputBytes, res.consumerErr = inv.Consumer(tee)
		}
		_, _ = io.Copy(io.Discard, tee)
		res.stderr = tail.String()
		res.err = cmd.Wait()
		done <- res
	}()

	var timeout <-chan time.Time
	if inv.Timeout > 0 {
		t := time.NewTimer(inv.Timeout)
		defer t.Stop()
		timeout = t.C
	}

	select {
	case <-ctx.Done():
		return kill(cmd, done, Canceled, ErrCanceled)
	case <-timeout:
		return kill(cmd, done, TimedOut, ErrTimedOut)
	case res := <-done:
		return classify(res, time.Since(start))
	}
}

func kill(cmd *exec.Cmd, done <-chan exitResult, kind Kind, reason error) Outcome {
	if err := cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		go func() { <-done }()
		return Outcome{Kind: KillFailed, Cause: &KillError{Reason: reason, Err: err}}
	}
	go func() { <-done }()
	return Outcome{Kind: kind}
}

func classify(res exitResult, elapsed time.Duration) Outcome {
	if res.err != nil {
		var exitErr *exec.ExitError
		if errors.As(res.err, &exitErr) {
			return Outcome{Kind: NonZeroExit, ExitCode: exitErr.ExitCode(), Stderr: res.stderr}
		}
		return Outcome{Kind: SpawnFailed, Cause: res.err, Stderr: res.stderr}
	}
	if res.consumerErr != nil {
		return Outcome{Kind: Incomplete, Cause: res.consumerErr, Stderr: res.stderr}
	}
	return Outcome{Kind: Success, Elapsed: elapsed, OutputBytes: res.outputBytes}
}

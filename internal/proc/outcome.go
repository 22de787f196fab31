package proc

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Kind identifies the terminal state of one child-process invocation.
type Kind int

const (
	Success     Kind = iota // Exited 0 and the stderr consumer (if any) completed.
	Canceled                // Context canceled; child killed or never started.
	TimedOut                // Invocation timeout elapsed; child killed.
	SpawnFailed             // Start failed, or Wait failed for a reason other than exit status.
	NonZeroExit             // Exited with a non-zero status.
	KillFailed              // Cancel or timeout fired but the kill itself failed.
	Incomplete              // Exited 0 but the stderr consumer reported a broken stream.
)

var kindNames = [...]string{
	Success:     "success",
	Canceled:    "canceled",
	TimedOut:    "timed out",
	SpawnFailed: "spawn failed",
	NonZeroExit: "non-zero exit",
	KillFailed:  "kill failed",
	Incomplete:  "incomplete",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Outcome is the result of [Runner.Run]. Exactly one Kind is set; the other
// fields are populated only for the kinds documented next to them.
type Outcome struct {
	Kind Kind

	Elapsed     time.Duration // Success.
	OutputBytes uint64        // Success, when the consumer reports a size.

	ExitCode int    // NonZeroExit.
	Stderr   string // NonZeroExit, Incomplete, SpawnFailed after start: bounded stderr tail.
	Cause    error  // SpawnFailed, KillFailed, Incomplete.
}

// Sentinel errors for outcomes that carry no further detail.
var (
	ErrCanceled = errors.New("canceled")
	ErrTimedOut = errors.New("timed out")
)

// ExitError reports a child that exited with a non-zero status.
type ExitError struct {
	Code   int
	Stderr string
}

func (e *ExitError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" {
		return fmt.Sprintf("exited with status %d", e.Code)
	}
	if i := strings.LastIndexByte(msg, '\n'); i >= 0 {
		msg = msg[i+1:]
	}
	return fmt.Sprintf("exited with status %d: %s", e.Code, msg)
}

// SpawnError reports a failure to start or wait on the child.
type SpawnError struct{ Err error }

func (e *SpawnError) Error() string { return "spawn: " + e.Err.Error() }
func (e *SpawnError) Unwrap() error { return e.Err }

// KillError reports a failure to kill the child after cancel or timeout.
// Reason is ErrCanceled or ErrTimedOut. It unwraps to Err only: a failed
// kill is its own outcome, not a cancel or timeout.
type KillError struct {
	Reason error
	Err    error
}

func (e *KillError) Error() string {
	return fmt.Sprintf("kill after %v: %v", e.Reason, e.Err)
}

func (e *KillError) Unwrap() error { return e.Err }

// IncompleteError reports a clean exit whose stderr stream did not satisfy
// the consumer (e.g. no completion marker).
type IncompleteError struct{ Err error }

func (e *IncompleteError) Error() string { return "incomplete: " + e.Err.Error() }
func (e *IncompleteError) Unwrap() error { return e.Err }

// Err converts a non-success outcome into an error. It returns nil for Success.
func (o Outcome) Err() error {
	switch o.Kind {
	case Success:
		return nil
	case Canceled:
		return ErrCanceled
	case TimedOut:
		return ErrTimedOut
	case SpawnFailed:
		return &SpawnError{Err: o.Cause}
	case NonZeroExit:
		return &ExitError{Code: o.ExitCode, Stderr: o.Stderr}
	case KillFailed:
		return o.Cause
	case Incomplete:
		return &IncompleteError{Err: o.Cause}
	default:
		return fmt.Errorf("unknown outcome %v", o.Kind)
	}
}

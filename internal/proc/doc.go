// Package proc runs external tools (ffmpeg, ffprobe) as child processes and
// maps each run to a typed [Outcome].
//
// A run races three events: the caller's context being canceled, an optional
// per-invocation timeout, and the child exiting on its own. Cancel and
// timeout kill the child; a failed kill is reported as [KillFailed]. On a
// natural exit stderr is drained before Wait, and a bounded tail of it is
// kept for diagnostics.
//
// A [Consumer] can be attached to stderr while the child runs. The progress
// monitor uses this to parse ffmpeg's -progress feed; if the consumer
// reports a broken stream on an otherwise clean exit the outcome is
// [Incomplete].
package proc

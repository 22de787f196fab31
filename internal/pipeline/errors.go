package pipeline

import (
	"errors"
	"fmt"
)

// Stage names the step of the per-file pipeline that failed.
type Stage string

const (
	StageStat   Stage = "stat"
	StageProbe  Stage = "probe"
	StageRun    Stage = "run"
	StageOutput Stage = "output"
)

// ErrSkipped marks a file that was given up on without counting as a
// failure (a thumbnail extraction that ran past its timeout).
var ErrSkipped = errors.New("skipped")

// FileError is the error returned by [EncodeFile] and [ThumbnailFile].
// Stderr holds the bounded tail of the child's diagnostics when the run
// stage failed.
type FileError struct {
	Stage  Stage
	Path   string
	Err    error
	Stderr string
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Stage, e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

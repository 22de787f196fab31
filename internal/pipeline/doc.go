// Package pipeline composes probing, planning, command building and process
// execution for one file, and folds a batch of files into [RunStats].
//
// Files are processed one at a time. A failure is logged and the batch moves
// on; cancellation stops it before the next file. The per-file functions
// return a *[FileError] naming the stage that failed.
package pipeline

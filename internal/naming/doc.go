// Package naming builds output paths: the input stem plus a timestamp suffix
// and the task's extension, in the input's directory. A per-run [Resolver]
// keeps two inputs from claiming the same output.
package naming

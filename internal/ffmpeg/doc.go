// Package ffmpeg builds ffmpeg argument vectors and classifies ffmpeg
// diagnostics.
//
// Arguments are always returned as discrete tokens for exec; nothing is
// ever joined into a shell command line. The encode vector carries
// -progress pipe:2 so the progress monitor can follow the run on stderr.
// The thumbnail vector renders one tiled JPEG from evenly spaced samples.
//
// Running the vectors is the job of the proc package.
package ffmpeg

// Package progress parses ffmpeg's -progress feed.
//
// The feed is a sequence of key=value lines. total_size carries the bytes
// written so far, out_time the position in the output, and progress=end
// marks completion. A stream that ends without that marker is treated as a
// failed encode even when ffmpeg exits 0.
package progress

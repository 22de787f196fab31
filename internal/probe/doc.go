// Package probe retrieves the source metadata that every encode and
// thumbnail decision starts from: video width, height and average frame
// rate, plus container duration and size.
//
// ffprobe is asked for exactly those five fields, either as flat key=value
// lines or as JSON. Both parsers share one validation step: a field that is
// absent, non-numeric, zero, or (for the frame rate) has a zero denominator
// is reported as a *MissingFieldError naming it.
package probe

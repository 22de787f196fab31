package planner

// EncodeSpec is the per-file encode decision. Zero values mean "not set":
// TargetFPS == 0 emits no fps filter, and at most one of ScaledWidth and
// ScaledHeight is non-zero.
type EncodeSpec struct {
	Quality      int // CRF for the selected codec.
	TargetFPS    int
	ScaledWidth  int
	ScaledHeight int
}

// HasScale reports whether a scale filter is needed.
func (s EncodeSpec) HasScale() bool {
	return s.ScaledWidth > 0 || s.ScaledHeight > 0
}

// HasFPS reports whether an fps filter is needed.
func (s EncodeSpec) HasFPS() bool {
	return s.TargetFPS > 0
}

// ThumbnailSpec is the per-file contact-sheet decision. Rows*Cols >= 4 and
// Interval > 0 for every spec returned by [PlanThumbnail].
type ThumbnailSpec struct {
	TileWidth        int
	TileHeight       int
	Rows             int
	Cols             int
	Interval         float64 // Seconds between samples.
	SkipNonKeyframes bool
	StartCut         float64 // Seconds.
	EndCut           float64 // Seconds.
}

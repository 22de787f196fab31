package planner

import (
	"math"

	"github.com/backmassage/vidsqueeze/internal/config"
	"github.com/backmassage/vidsqueeze/internal/probe"
)

// gridTier is one row of the duration step table. Longer sources get more
// cells and a smaller edge trim; only the shortest tier samples every frame.
type gridTier struct {
	maxDuration float64 // Inclusive upper bound in seconds; +Inf for the last row.
	rows, cols  int
	trim        float64 // Fraction cut from each end.
	keyframes   bool    // Sample keyframes only.
}

var gridTiers = []gridTier{
	{240, 2, 2, 0, false},
	{600, 3, 2, 0.05, true},
	{1800, 3, 3, 0.04, true},
	{3600, 4, 3, 0.03, true},
	{7200, 4, 4, 0.02, true},
	{14400, 5, 4, 0.01, true},
	{math.Inf(1), 5, 5, 0.005, true},
}

// tierFor returns the grid tier for a duration in seconds.
func tierFor(duration float64) gridTier {
	for _, t := range gridTiers {
		if duration <= t.maxDuration {
			return t
		}
	}
	return gridTiers[len(gridTiers)-1]
}

// PlanThumbnail derives the contact-sheet spec for one source. base is the
// short edge of one tile in pixels; a non-zero grid overrides the tier's
// rows and columns but keeps its trim and sampling mode.
func PlanThumbnail(meta *probe.Metadata, base int, grid config.Grid) ThumbnailSpec {
	tier := tierFor(meta.Duration)
	spec := ThumbnailSpec{
		Rows:             tier.rows,
		Cols:             tier.cols,
		SkipNonKeyframes: tier.keyframes,
	}
	if !grid.IsZero() {
		spec.Rows, spec.Cols = grid.Rows, grid.Cols
	}

	// Tile keeps the source aspect; base is always the short edge and the
	// long edge is truncated.
	if meta.Landscape() {
		spec.TileWidth = base * meta.Width / meta.Height
		spec.TileHeight = base
	} else {
		spec.TileWidth = base
		spec.TileHeight = base * meta.Height / meta.Width
	}

	spec.StartCut = meta.Duration * tier.trim
	spec.EndCut = meta.Duration - spec.StartCut
	spec.Interval = (spec.EndCut - spec.StartCut) / float64(spec.Rows*spec.Cols)
	return spec
}

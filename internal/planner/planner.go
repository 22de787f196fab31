package planner

import (
	"github.com/backmassage/vidsqueeze/internal/config"
	"github.com/backmassage/vidsqueeze/internal/probe"
)

// PlanEncode derives the encode spec for one source. It is pure and total
// for any metadata accepted by the probe package.
//
// Flow:
//  1. Compare source pixels against the ceiling; at or above it, scale the
//     long edge (width for landscape, height for portrait) down to the
//     ceiling's long edge and let ffmpeg keep the aspect ratio.
//  2. Pick the CRF from the ceiling's tier when scaling, else from the
//     source's own tier.
//  3. Cap the frame rate when the source exceeds the fps ceiling.
func PlanEncode(meta *probe.Metadata, ceiling config.Resolution, fpsCeiling int, codec config.Codec) EncodeSpec {
	var spec EncodeSpec

	// --- 1. Scale ---
	tierPixels := meta.Pixels()
	if meta.Pixels() >= ceiling.Pixels() {
		tierPixels = ceiling.Pixels()
		if meta.Landscape() {
			spec.ScaledWidth = ceiling.LongEdge()
		} else {
			spec.ScaledHeight = ceiling.LongEdge()
		}
	}

	// --- 2. Quality ---
	spec.Quality = qualityFor(codec, tierPixels)

	// --- 3. Frame rate ---
	if meta.FPS > float64(fpsCeiling) {
		spec.TargetFPS = fpsCeiling
	}
	return spec
}

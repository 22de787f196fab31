package planner

import "github.com/backmassage/vidsqueeze/internal/config"

// qualityTier maps a minimum pixel count to a CRF. Tables are ordered from
// the largest tier down; the last row (minPixels 0) catches everything.
type qualityTier struct {
	minPixels int
	crf       int
}

// x265 CRF by resolution tier: >=1440p, >=1080p, >=720p, below.
var hevcQuality = []qualityTier{
	{2560 * 1440, 22},
	{1920 * 1080, 20},
	{1280 * 720, 19},
	{0, 18},
}

// SVT-AV1 uses a 0-63 scale; same tiers.
var av1Quality = []qualityTier{
	{2560 * 1440, 32},
	{1920 * 1080, 30},
	{1280 * 720, 28},
	{0, 26},
}

// qualityFor returns the CRF for a frame of the given pixel count.
func qualityFor(codec config.Codec, pixels int) int {
	table := hevcQuality
	if codec == config.CodecAV1 {
		table = av1Quality
	}
	for _, t := range table {
		if pixels >= t.minPixels {
			return t.crf
		}
	}
	return table[len(table)-1].crf
}

// GOP defaults.
const (
	defaultKeyint = 240 // 10 s at a nominal 24 fps.
	maxKeyint     = 300
)

// KeyframeInterval returns the AV1 GOP length: ten seconds at the fps
// ceiling (capped at 300 frames) when the encode caps fps, else 240.
func KeyframeInterval(spec EncodeSpec, fpsCeiling int) int {
	if !spec.HasFPS() {
		return defaultKeyint
	}
	return min(fpsCeiling*10, maxKeyint)
}

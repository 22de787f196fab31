package ffmpeg

import "regexp"

// Hint is a short, user-facing cause for a failed ffmpeg or ffprobe run,
// derived from its stderr.
type Hint string

const (
	HintNone           Hint = ""
	HintInputMissing   Hint = "input file missing"
	HintPermission     Hint = "permission denied"
	HintUnknownEncoder Hint = "encoder not available in this ffmpeg build"
	HintInvalidData    Hint = "input is corrupt or not a video"
	HintDiskFull       Hint = "no space left on device"
	HintNoVideo        Hint = "input has no video stream"
)

// Pre-compiled regexes checked in order by [Classify]; the first match wins.
var classifiers = []struct {
	re   *regexp.Regexp
	hint Hint
}{
	{regexp.MustCompile(`No such file or directory`), HintInputMissing},
	{regexp.MustCompile(`(?i)Permission denied`), HintPermission},
	{regexp.MustCompile(`Unknown encoder|Encoder not found|Unrecognized option 'svtav1-params'|Unrecognized option 'x265-params'`), HintUnknownEncoder},
	{regexp.MustCompile(`No space left on device`), HintDiskFull},
	{regexp.MustCompile(`Stream map '0:v' matches no streams|Output file #0 does not contain any stream|matches no streams`), HintNoVideo},
	{regexp.MustCompile(`Invalid data found when processing input|moov atom not found|EBML header parsing failed|Invalid argument`), HintInvalidData},
}

// Classify maps ffmpeg stderr to a [Hint]. It returns HintNone when no
// known pattern matches.
func Classify(stderr string) Hint {
	for _, c := range classifiers {
		if c.re.MatchString(stderr) {
			return c.hint
		}
	}
	return HintNone
}

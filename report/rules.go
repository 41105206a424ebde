package report

import "strings"

// Pitch-type keyword tables for the directionality rules. Matching is
// case-insensitive substring matching, so free-form tags like
// "Four-Seam Fastball" or "ChangeUp" classify correctly. A pitch type that
// matches no keyword falls back to "higher is better", never an error.
var (
	// Change-of-pace pitches: slower is better (more separation from the
	// fastball).
	changeOfPaceKeywords = []string{"changeup", "change-up", "change up", "splitter", "split-finger", "knuckleball"}

	// Lower spin is better only for these.
	lowSpinKeywords = []string{"splitter", "split-finger", "knuckleball"}

	// Negative IVB (more drop) is preferred. Sinker and two-seam belong
	// here; earlier rule revisions disagreed and this follows the later one.
	dropKeywords = []string{"curveball", "curve", "changeup", "change-up", "change up", "splitter", "split-finger", "knuckleball", "sinker", "two-seam", "twoseam", "2-seam"}

	// Breaking balls for the handedness-dependent horizontal-break table.
	// Cutters break glove-side like sliders and are grouped with them.
	breakingBallKeywords = []string{"curveball", "curve", "slider", "sweeper", "slurve", "cutter"}

	// Fastball/offspeed side of the horizontal-break table.
	fastballOffspeedKeywords = []string{"fastball", "four-seam", "4-seam", "sinker", "two-seam", "twoseam", "2-seam", "changeup", "change-up", "change up", "splitter", "split-finger", "knuckleball"}
)

// matchesAny reports whether the pitch type contains any keyword,
// case-insensitively.
func matchesAny(pitchType string, keywords []string) bool {
	lower := strings.ToLower(pitchType)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// IsImprovement reports whether a signed pitcher-minus-benchmark difference
// is an improvement for the given metric and pitch type. Handedness matters
// only for horizontal break. A zero difference is never an improvement.
func IsImprovement(metric Metric, pitchType string, diff float64, handedness string) bool {
	switch metric {
	case MetricVelocity, MetricMaxVelocity:
		if matchesAny(pitchType, changeOfPaceKeywords) {
			return diff < 0
		}
		return diff > 0

	case MetricIVB:
		if matchesAny(pitchType, dropKeywords) {
			return diff < 0
		}
		return diff > 0

	case MetricHB:
		return isHorzBreakImprovement(pitchType, diff, handedness)

	case MetricSpinRate:
		if matchesAny(pitchType, lowSpinKeywords) {
			return diff < 0
		}
		return diff > 0

	default:
		// Release side/height, extension: higher is better by rule.
		return diff > 0
	}
}

// isHorzBreakImprovement applies the four-way break-direction table:
// RHP breaking ball and LHP fastball/offspeed prefer more-negative break;
// RHP fastball/offspeed and LHP breaking ball prefer more-positive break.
func isHorzBreakImprovement(pitchType string, diff float64, handedness string) bool {
	breaking := matchesAny(pitchType, breakingBallKeywords)
	if !breaking && !matchesAny(pitchType, fastballOffspeedKeywords) {
		return diff > 0
	}

	lefty := strings.EqualFold(handedness, LeftHanded)
	if breaking != lefty {
		return diff < 0
	}
	return diff > 0
}

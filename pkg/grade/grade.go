// Package grade holds the sub-score curves shared by the scoring strategies.
package grade

import "math"

// Clamp limits v to [0, 100]. NaN maps to 0.
func Clamp(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// Location scores a centroid offset: 100 up to fullRadius, then a linear
// decay reaching 0 at maxDist.
func Location(dist, fullRadius, maxDist float64) float64 {
	if math.IsNaN(dist) {
		return 0
	}
	if dist <= fullRadius {
		return 100
	}
	if maxDist <= fullRadius {
		return 0
	}
	return Clamp((1 - (dist-fullRadius)/(maxDist-fullRadius)) * 100)
}

// Size scores a painted/reference pixel ratio. Ratios inside [lower, upper]
// get 100. Below lower the score rises linearly from 0; above upper it falls
// by the relative excess over upper.
func Size(ratio, lower, upper float64) float64 {
	switch {
	case math.IsNaN(ratio) || ratio <= 0:
		return 0
	case ratio < lower:
		if lower <= 0 {
			return 100
		}
		return Clamp(ratio / lower * 100)
	case ratio > upper:
		if upper <= 0 {
			return 0
		}
		excess := (ratio - upper) / upper
		return Clamp((1 - excess) * 100)
	default:
		return 100
	}
}

// Ratio returns num/den, or 0 when den is zero.
func Ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

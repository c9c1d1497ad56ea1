// Package cloud implements greedy point-cloud matching in the style of the
// $P recogniser. Clouds are compared in a shared coordinate frame: no
// centring, scaling or rotation is applied, so position matters.
package cloud

import (
	"math"

	"github.com/Maskquerade/Maskquerade/agent/go-service/pkg/points"
)

const (
	// DefaultMaxDistance is the distance at which the score reaches 0.
	DefaultMaxDistance = 1.5
	// MaxDistance is returned when either cloud is empty.
	MaxDistance = math.MaxFloat64

	scoreExponent = 0.7
	stepExponent  = 0.5
)

// Distance returns the greedy cloud distance between a and b: the smallest
// weighted matching cost over every start offset, in both directions.
func Distance(a, b []points.Point) float64 {
	if len(a) == 0 || len(b) == 0 {
		return MaxDistance
	}
	n := len(a)
	step := int(math.Floor(math.Pow(float64(n), 1-stepExponent)))
	if step < 1 {
		step = 1
	}

	best := math.Inf(1)
	for i := 0; i < n; i += step {
		d1 := greedy(a, b, i)
		d2 := greedy(b, a, i%len(b))
		best = math.Min(best, math.Min(d1, d2))
	}
	if math.IsInf(best, 1) || math.IsNaN(best) {
		return MaxDistance
	}
	return best
}

// greedy walks src cyclically from start and matches each point to the
// nearest unmatched point of dst. Points matched later weigh less.
func greedy(src, dst []points.Point, start int) float64 {
	n := len(src)
	limit := min(n, len(dst))
	matched := make([]bool, len(dst))

	sum := 0.0
	i := start
	for k := 0; k < limit; k++ {
		idx := -1
		minD := math.Inf(1)
		for j, q := range dst {
			if matched[j] {
				continue
			}
			d := points.SqDist(src[i], q)
			if d < minD {
				minD = d
				idx = j
			}
		}
		if idx < 0 {
			// Every remaining distance is NaN or overflowed.
			return math.Inf(1)
		}
		matched[idx] = true
		weight := 1 - float64((i-start+n)%n)/float64(n)
		sum += weight * minD
		i = (i + 1) % n
	}
	return sum
}

// Score converts a cloud distance into a 0..100 similarity. The sub-linear
// exponent keeps the curve flat near zero.
func Score(distance, maxDistance float64) float64 {
	if maxDistance <= 0 || math.IsNaN(distance) || distance >= maxDistance {
		return 0
	}
	if distance <= 0 {
		return 100
	}
	s := (1 - math.Pow(distance/maxDistance, scoreExponent)) * 100
	return math.Max(0, math.Min(100, s))
}

// Normalize maps pixel coordinates into the unit square of a width x height
// canvas. Both clouds must be normalised against the same canvas.
func Normalize(pts []points.Point, width, height int) []points.Point {
	out := make([]points.Point, len(pts))
	w := float64(max(width, 1))
	h := float64(max(height, 1))
	for i, p := range pts {
		out[i] = points.Point{X: p.X / w, Y: p.Y / h, StrokeID: p.StrokeID}
	}
	return out
}

// Package moments computes Hu moment invariants of point sets.
package moments

import (
	"errors"
	"math"

	"github.com/Maskquerade/Maskquerade/agent/go-service/pkg/points"
)

// ErrDegenerate is returned for point sets whose moments are undefined.
var ErrDegenerate = errors.New("degenerate point set")

// Hu holds the seven log-scaled Hu invariants.
type Hu [7]float64

// Compute returns the log-scaled Hu invariants of pts, each point being a
// unit mass. Sets with fewer than two distinct points are rejected.
func Compute(pts []points.Point) (Hu, error) {
	if !hasTwoDistinct(pts) {
		return Hu{}, ErrDegenerate
	}

	var m00, m10, m01 float64
	for _, p := range pts {
		m00++
		m10 += p.X
		m01 += p.Y
	}
	if m00 == 0 {
		return Hu{}, ErrDegenerate
	}
	cx := m10 / m00
	cy := m01 / m00

	// Central moments, accumulated from centred coordinates.
	mu00 := m00
	var mu20, mu02, mu11, mu30, mu03, mu21, mu12 float64
	for _, p := range pts {
		dx := p.X - cx
		dy := p.Y - cy
		mu20 += dx * dx
		mu02 += dy * dy
		mu11 += dx * dy
		mu30 += dx * dx * dx
		mu03 += dy * dy * dy
		mu21 += dx * dx * dy
		mu12 += dx * dy * dy
	}

	nu := func(mu float64, order int) float64 {
		return mu / math.Pow(mu00, 1+float64(order)/2)
	}
	n20, n02, n11 := nu(mu20, 2), nu(mu02, 2), nu(mu11, 2)
	n30, n03, n21, n12 := nu(mu30, 3), nu(mu03, 3), nu(mu21, 3), nu(mu12, 3)

	a := n30 + n12
	b := n21 + n03
	c := n30 - 3*n12
	d := 3*n21 - n03

	var h Hu
	h[0] = n20 + n02
	h[1] = (n20-n02)*(n20-n02) + 4*n11*n11
	h[2] = c*c + d*d
	h[3] = a*a + b*b
	h[4] = c*a*(a*a-3*b*b) + d*b*(3*a*a-b*b)
	h[5] = (n20-n02)*(a*a-b*b) + 4*n11*a*b
	h[6] = d*a*(a*a-3*b*b) - c*b*(3*a*a-b*b)

	for i := range h {
		h[i] = logScale(h[i])
	}
	return h, nil
}

// logScale maps h to -sign(h)*log10(|h|), with 0 mapped to 0.
func logScale(h float64) float64 {
	if h == 0 || math.IsNaN(h) || math.IsInf(h, 0) {
		return 0
	}
	sign := 1.0
	if h < 0 {
		sign = -1
	}
	return -sign * math.Log10(math.Abs(h))
}

func hasTwoDistinct(pts []points.Point) bool {
	if len(pts) < 2 {
		return false
	}
	first := pts[0]
	for _, p := range pts[1:] {
		if p.X != first.X || p.Y != first.Y {
			return true
		}
	}
	return false
}

// Similarity returns exp(-0.5 * sum|a_i - b_i|), in (0, 1].
func Similarity(a, b Hu) float64 {
	sum := 0.0
	for i := range a {
		sum += math.Abs(a[i] - b[i])
	}
	if math.IsNaN(sum) {
		return 0
	}
	return math.Exp(-0.5 * sum)
}

// Score returns Similarity as a percentage.
func Score(a, b Hu) float64 {
	return Similarity(a, b) * 100
}

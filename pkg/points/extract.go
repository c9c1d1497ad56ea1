package points

import (
	"errors"

	"github.com/Maskquerade/Maskquerade/agent/go-service/pkg/raster"
)

const (
	// DefaultSampleCount is the point budget gestures are resampled to.
	DefaultSampleCount = 128
	// MinPoints is the least number of points that counts as a drawing.
	MinPoints = 10
	// AnyClass selects every classified pixel regardless of class.
	AnyClass = -1
)

// ErrTooFewPoints means nothing usable was drawn.
var ErrTooFewPoints = errors.New("too few points")

// Extract scans r row-major and returns the coordinates of pixels classified
// into class (or into any class for AnyClass).
func Extract(r *raster.Raster, p raster.Palette, class int, minAlpha float64) []Point {
	var pts []Point
	r.Each(func(x, y int, c raster.Color) {
		if p.Matches(c, class, minAlpha) {
			pts = append(pts, Point{X: float64(x), Y: float64(y)})
		}
	})
	return pts
}

// Sample subsamples pts to target points with a uniform stride. Slices at or
// below target are returned unchanged.
func Sample(pts []Point, target int) []Point {
	if target <= 0 || len(pts) <= target {
		return pts
	}
	out := make([]Point, target)
	step := float64(len(pts)) / float64(target)
	last := len(pts) - 1
	for i := range out {
		idx := int(float64(i) * step)
		if idx > last {
			idx = last
		}
		out[i] = pts[idx]
	}
	return out
}

// Gather builds a gesture from live stroke points, falling back to a raster
// scan when the live capture holds fewer than MinPoints. The result is
// resampled to target. ErrTooFewPoints is returned when even the raster has
// fewer than MinPoints matching pixels.
func Gather(name string, live []Point, r *raster.Raster, p raster.Palette, class int, minAlpha float64, target int) (PointSet, error) {
	pts := live
	if len(pts) < MinPoints && r != nil {
		pts = Extract(r, p, class, minAlpha)
	}
	if len(pts) < MinPoints {
		return PointSet{Name: name}, ErrTooFewPoints
	}
	return PointSet{Name: name, Points: Sample(pts, target)}, nil
}

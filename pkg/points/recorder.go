package points

import "math"

// DefaultJumpDistance is the gap between consecutive samples that is taken
// as a pen lift.
const DefaultJumpDistance = 50

const maxRecordedPoints = 8192

// Recorder collects live brush positions and splits them into strokes.
type Recorder struct {
	jump   float64
	pts    []Point
	stroke int
	lifted bool
}

// NewRecorder returns a recorder using jump as the pen-lift distance. A
// non-positive jump selects DefaultJumpDistance.
func NewRecorder(jump float64) *Recorder {
	if jump <= 0 {
		jump = DefaultJumpDistance
	}
	return &Recorder{jump: jump}
}

// Add appends a position. A new stroke starts when the position is farther
// than the jump distance from the previous one, or after Lift. Non-finite
// positions are dropped.
func (r *Recorder) Add(x, y float64) {
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
		return
	}
	p := Point{X: x, Y: y, StrokeID: r.stroke}
	if n := len(r.pts); n > 0 {
		if r.lifted || Dist(r.pts[n-1], p) > r.jump {
			r.stroke++
			p.StrokeID = r.stroke
		}
	}
	r.lifted = false

	r.pts = append(r.pts, p)
	if len(r.pts) > maxRecordedPoints {
		r.pts = r.pts[len(r.pts)-maxRecordedPoints:]
	}
}

// Lift marks an explicit pen-up; the next point opens a new stroke.
func (r *Recorder) Lift() {
	r.lifted = true
}

// Points returns a copy of the recorded points.
func (r *Recorder) Points() []Point {
	out := make([]Point, len(r.pts))
	copy(out, r.pts)
	return out
}

// Len returns the number of recorded points.
func (r *Recorder) Len() int { return len(r.pts) }

// Strokes returns the number of distinct strokes recorded.
func (r *Recorder) Strokes() int {
	if len(r.pts) == 0 {
		return 0
	}
	return r.pts[len(r.pts)-1].StrokeID - r.pts[0].StrokeID + 1
}

// Reset discards every recorded point.
func (r *Recorder) Reset() {
	r.pts = nil
	r.stroke = 0
	r.lifted = false
}

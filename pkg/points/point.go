package points

import "math"

// Point is a 2D sample. StrokeID groups points drawn in one pen-down run;
// points scanned from a raster all carry StrokeID 0.
type Point struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	StrokeID int     `json:"stroke_id"`
}

// PointSet is a named, ordered gesture.
type PointSet struct {
	Name   string  `json:"name"`
	Points []Point `json:"points"`
}

// Len returns the number of points.
func (s PointSet) Len() int { return len(s.Points) }

// Centroid returns the mean position. An empty slice yields the origin.
func Centroid(pts []Point) Point {
	if len(pts) == 0 {
		return Point{}
	}
	var x, y float64
	for _, p := range pts {
		x += p.X
		y += p.Y
	}
	n := float64(len(pts))
	return Point{X: x / n, Y: y / n}
}

// Box is an axis-aligned bounding box.
type Box struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width returns MaxX - MinX.
func (b Box) Width() float64 { return b.MaxX - b.MinX }

// Height returns MaxY - MinY.
func (b Box) Height() float64 { return b.MaxY - b.MinY }

// Diagonal returns the length of the box diagonal.
func (b Box) Diagonal() float64 { return math.Hypot(b.Width(), b.Height()) }

// BoundingBox returns the box around pts, zero for an empty slice.
func BoundingBox(pts []Point) Box {
	if len(pts) == 0 {
		return Box{}
	}
	b := Box{MinX: pts[0].X, MinY: pts[0].Y, MaxX: pts[0].X, MaxY: pts[0].Y}
	for _, p := range pts[1:] {
		b.MinX = math.Min(b.MinX, p.X)
		b.MinY = math.Min(b.MinY, p.Y)
		b.MaxX = math.Max(b.MaxX, p.X)
		b.MaxY = math.Max(b.MaxY, p.Y)
	}
	return b
}

// Dist returns the Euclidean distance between a and b.
func Dist(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// SqDist returns the squared Euclidean distance between a and b.
func SqDist(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}

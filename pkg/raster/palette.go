package raster

import "math"

// DefaultColorTolerance is the per-channel tolerance of DefaultPalette.
const DefaultColorTolerance = 0.3

// ColorClass is a palette bucket identified by its reference RGB value.
type ColorClass struct {
	Name string  `json:"name"`
	R    float64 `json:"r"`
	G    float64 `json:"g"`
	B    float64 `json:"b"`
}

// Palette is an ordered list of colour classes sharing one tolerance.
// Declaration order is significant: it breaks every tie.
type Palette struct {
	Classes   []ColorClass
	Tolerance float64
}

// DefaultPalette returns the red/yellow/blue paint set.
func DefaultPalette() Palette {
	return Palette{
		Classes: []ColorClass{
			{Name: "red", R: 1, G: 0, B: 0},
			{Name: "yellow", R: 1, G: 1, B: 0},
			{Name: "blue", R: 0, G: 0, B: 1},
		},
		Tolerance: DefaultColorTolerance,
	}
}

// Color returns the opaque reference colour of the class.
func (cc ColorClass) Color() Color {
	return RGB(cc.R, cc.G, cc.B)
}

// distance returns the summed channel difference and whether every channel
// is within tol.
func (cc ColorClass) distance(c Color, tol float64) (float64, bool) {
	dr := math.Abs(c.R - cc.R)
	dg := math.Abs(c.G - cc.G)
	db := math.Abs(c.B - cc.B)
	if dr >= tol || dg >= tol || db >= tol {
		return 0, false
	}
	return dr + dg + db, true
}

// Classify returns the index of the class c belongs to. When several classes
// accept the pixel the nearest one wins, equal distances go to the class
// declared first.
func (p Palette) Classify(c Color, minAlpha float64) (int, bool) {
	if c.A <= minAlpha {
		return -1, false
	}
	best := -1
	bestDist := math.Inf(1)
	for i, cc := range p.Classes {
		d, ok := cc.distance(c, p.Tolerance)
		if ok && d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best, best >= 0
}

// Matches reports whether c classifies into class. A negative class accepts
// any palette colour.
func (p Palette) Matches(c Color, class int, minAlpha float64) bool {
	idx, ok := p.Classify(c, minAlpha)
	if !ok {
		return false
	}
	return class < 0 || idx == class
}

// CountClassified counts pixels of r that fall into any class.
func CountClassified(r *Raster, p Palette, minAlpha float64) int {
	n := 0
	for _, c := range r.pix {
		if _, ok := p.Classify(c, minAlpha); ok {
			n++
		}
	}
	return n
}

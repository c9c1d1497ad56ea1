package raster

// Mask is a boolean raster.
type Mask struct {
	width, height int
	bits          []bool
}

// NewMask returns an all-false mask.
func NewMask(width, height int) *Mask {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Mask{width: width, height: height, bits: make([]bool, width*height)}
}

// Width returns the mask width.
func (m *Mask) Width() int { return m.width }

// Height returns the mask height.
func (m *Mask) Height() int { return m.height }

// Get returns false outside the mask.
func (m *Mask) Get(x, y int) bool {
	if m == nil || x < 0 || y < 0 || x >= m.width || y >= m.height {
		return false
	}
	return m.bits[y*m.width+x]
}

// Set ignores writes outside the mask.
func (m *Mask) Set(x, y int, v bool) {
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return
	}
	m.bits[y*m.width+x] = v
}

// Count returns the number of set pixels.
func (m *Mask) Count() int {
	if m == nil {
		return 0
	}
	n := 0
	for _, b := range m.bits {
		if b {
			n++
		}
	}
	return n
}

// TransparentMask marks every pixel of base whose alpha is below alpha.
// Painting honours it so holes in the base image never receive paint.
func TransparentMask(base *Raster, alpha float64) *Mask {
	m := NewMask(base.width, base.height)
	for i, c := range base.pix {
		m.bits[i] = c.A < alpha
	}
	return m
}

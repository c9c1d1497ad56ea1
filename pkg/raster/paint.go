package raster

import "math"

// FillDisc stamps a filled disc of colour c centred at (cx, cy). Pixels are
// painted when their centre lies within radius. Pixels set in protect are left
// untouched. It returns the number of pixels written.
func (r *Raster) FillDisc(cx, cy, radius float64, c Color, protect *Mask) int {
	if radius <= 0 || math.IsNaN(cx) || math.IsNaN(cy) || math.IsNaN(radius) ||
		math.IsInf(cx, 0) || math.IsInf(cy, 0) || math.IsInf(radius, 0) {
		return 0
	}
	// Reject discs entirely off the raster before converting to int.
	if cx+radius < 0 || cy+radius < 0 || cx-radius > float64(r.width) || cy-radius > float64(r.height) {
		return 0
	}
	minX := int(math.Floor(cx - radius))
	maxX := int(math.Ceil(cx + radius))
	minY := int(math.Floor(cy - radius))
	maxY := int(math.Ceil(cy + radius))
	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX > r.width-1 {
		maxX = r.width - 1
	}
	if maxY > r.height-1 {
		maxY = r.height - 1
	}

	r2 := radius * radius
	written := 0
	for y := minY; y <= maxY; y++ {
		dy := float64(y) - cy
		for x := minX; x <= maxX; x++ {
			dx := float64(x) - cx
			if dx*dx+dy*dy > r2 {
				continue
			}
			if protect.Get(x, y) {
				continue
			}
			r.pix[y*r.width+x] = c
			written++
		}
	}
	return written
}

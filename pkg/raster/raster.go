package raster

import "image"

// Raster is a width x height grid of colours stored row-major.
type Raster struct {
	width, height int
	pix           []Color
}

// New returns a transparent raster. Non-positive sizes yield an empty raster.
func New(width, height int) *Raster {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Raster{
		width:  width,
		height: height,
		pix:    make([]Color, width*height),
	}
}

// FromImage copies img into a new raster whose origin is img.Bounds().Min.
func FromImage(img image.Image) *Raster {
	b := img.Bounds()
	r := New(b.Dx(), b.Dy())
	if nrgba, ok := img.(*image.NRGBA); ok {
		for y := 0; y < r.height; y++ {
			for x := 0; x < r.width; x++ {
				i := nrgba.PixOffset(b.Min.X+x, b.Min.Y+y)
				r.pix[y*r.width+x] = Color{
					R: float64(nrgba.Pix[i]) / 255,
					G: float64(nrgba.Pix[i+1]) / 255,
					B: float64(nrgba.Pix[i+2]) / 255,
					A: float64(nrgba.Pix[i+3]) / 255,
				}
			}
		}
		return r
	}
	for y := 0; y < r.height; y++ {
		for x := 0; x < r.width; x++ {
			r.pix[y*r.width+x] = FromColor(img.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return r
}

// Width returns the raster width in pixels.
func (r *Raster) Width() int { return r.width }

// Height returns the raster height in pixels.
func (r *Raster) Height() int { return r.height }

// Bounds returns the raster rectangle anchored at the origin.
func (r *Raster) Bounds() image.Rectangle {
	return image.Rect(0, 0, r.width, r.height)
}

// In reports whether (x, y) lies inside the raster.
func (r *Raster) In(x, y int) bool {
	return x >= 0 && y >= 0 && x < r.width && y < r.height
}

// At returns the pixel at (x, y), or Transparent outside the raster.
func (r *Raster) At(x, y int) Color {
	if !r.In(x, y) {
		return Transparent
	}
	return r.pix[y*r.width+x]
}

// Set writes a pixel. Writes outside the raster are ignored.
func (r *Raster) Set(x, y int, c Color) {
	if !r.In(x, y) {
		return
	}
	r.pix[y*r.width+x] = c
}

// Clone returns an independent copy.
func (r *Raster) Clone() *Raster {
	out := &Raster{width: r.width, height: r.height, pix: make([]Color, len(r.pix))}
	copy(out.pix, r.pix)
	return out
}

// CopyFrom overwrites r with src. Both rasters must share dimensions.
func (r *Raster) CopyFrom(src *Raster) bool {
	if src.width != r.width || src.height != r.height {
		return false
	}
	copy(r.pix, src.pix)
	return true
}

// Crop returns a copy of the pixels inside rect, clipped to the raster.
func (r *Raster) Crop(rect image.Rectangle) *Raster {
	rect = rect.Intersect(r.Bounds())
	out := New(rect.Dx(), rect.Dy())
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			out.pix[(y-rect.Min.Y)*out.width+(x-rect.Min.X)] = r.pix[y*r.width+x]
		}
	}
	return out
}

// FillRect paints every pixel of rect with c.
func (r *Raster) FillRect(rect image.Rectangle, c Color) {
	rect = rect.Intersect(r.Bounds())
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		row := r.pix[y*r.width : (y+1)*r.width]
		for x := rect.Min.X; x < rect.Max.X; x++ {
			row[x] = c
		}
	}
}

// Each calls fn for every pixel in row-major order.
func (r *Raster) Each(fn func(x, y int, c Color)) {
	for y := 0; y < r.height; y++ {
		for x := 0; x < r.width; x++ {
			fn(x, y, r.pix[y*r.width+x])
		}
	}
}

package scoring

import (
	"math"

	"github.com/Maskquerade/Maskquerade/agent/go-service/pkg/points"
	"github.com/Maskquerade/Maskquerade/agent/go-service/pkg/raster"
)

// Canvas is the player's paint buffer over an immutable base image.
type Canvas struct {
	base    *raster.Raster
	paint   *raster.Raster
	protect *raster.Mask
	rec     *points.Recorder
}

// NewCanvas copies base into a fresh paint buffer. When protect is set,
// pixels transparent in base never receive paint.
func NewCanvas(base *raster.Raster, protect bool, jump float64) *Canvas {
	c := &Canvas{
		base:  base.Clone(),
		paint: base.Clone(),
		rec:   points.NewRecorder(jump),
	}
	if protect {
		c.protect = raster.TransparentMask(base, raster.EmptyAlpha)
	}
	return c
}

// PaintAt stamps a disc and returns the number of pixels written. The centre
// is recorded as a stroke point only when the dab wrote something.
func (c *Canvas) PaintAt(x, y, radius float64, col raster.Color) int {
	if !finite(x) || !finite(y) || !finite(radius) {
		return 0
	}
	n := c.paint.FillDisc(x, y, radius, col, c.protect)
	if n > 0 {
		c.rec.Add(x, y)
	}
	return n
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// LiftPen ends the current stroke.
func (c *Canvas) LiftPen() { c.rec.Lift() }

// Reset restores the unpainted base and forgets recorded strokes.
func (c *Canvas) Reset() {
	c.paint.CopyFrom(c.base)
	c.rec.Reset()
}

// Raster returns the paint buffer. Callers must not modify it.
func (c *Canvas) Raster() *raster.Raster { return c.paint }

// Points returns a copy of the recorded stroke points.
func (c *Canvas) Points() []points.Point { return c.rec.Points() }

// Strokes returns the number of recorded strokes.
func (c *Canvas) Strokes() int { return c.rec.Strokes() }

package scoring

import (
	"math"

	"github.com/Maskquerade/Maskquerade/agent/go-service/pkg/grade"
	"github.com/Maskquerade/Maskquerade/agent/go-service/pkg/moments"
	"github.com/Maskquerade/Maskquerade/agent/go-service/pkg/points"
	"github.com/Maskquerade/Maskquerade/agent/go-service/pkg/raster"
)

// HuMomentStrategy scores shape with Hu invariants and adds separate
// location and size grades, since the invariants ignore both.
type HuMomentStrategy struct {
	cfg      Config
	hu       moments.Hu
	centroid points.Point
	pixels   int
	diagonal float64
	hasBase  bool
}

func (s *HuMomentStrategy) Variant() Variant { return VariantHuMoment }

func (s *HuMomentStrategy) SetReference(ref *Reference) error {
	hu, err := moments.Compute(ref.Points.Points)
	if err != nil {
		return configError(err, "reference moments")
	}
	s.hu = hu
	s.centroid = points.Centroid(ref.Points.Points)
	s.pixels = raster.CountClassified(ref.Raster, s.cfg.Palette, raster.ReferenceAlpha)
	s.diagonal = math.Hypot(float64(ref.Raster.Width()), float64(ref.Raster.Height()))
	s.hasBase = true
	return nil
}

func (s *HuMomentStrategy) Score(sub *Submission) (Breakdown, error) {
	if !s.hasBase {
		return Breakdown{}, ErrNoReference
	}
	var b Breakdown
	// A degenerate drawing, e.g. a single repeated pixel, has no moments.
	if hu, err := moments.Compute(sub.Points.Points); err == nil {
		b.Shape = moments.Score(s.hu, hu)
	}

	c := points.Centroid(sub.Points.Points)
	b.Location = grade.Location(points.Dist(c, s.centroid), s.cfg.LocationFullRadius, s.diagonal)

	painted := raster.CountClassified(sub.Raster, s.cfg.Palette, raster.PlayerAlpha)
	ratio := grade.Ratio(float64(painted), float64(s.pixels))
	b.Size = grade.Size(ratio, s.cfg.SizeLower, s.cfg.SizeUpper)
	return b, nil
}

package zone

import (
	"math"

	"github.com/Maskquerade/Maskquerade/agent/go-service/pkg/grade"
	"github.com/Maskquerade/Maskquerade/agent/go-service/pkg/points"
	"github.com/Maskquerade/Maskquerade/agent/go-service/pkg/raster"
)

// Tier is the shape grading band.
type Tier string

const (
	TierFull    Tier = "full"
	TierPartial Tier = "partial"
	TierFloor   Tier = "floor"
)

const (
	partialCap = 50.0
	floorScale = 20.0
)

// Score is the per-zone result. All grades are in [0, 100].
type Score struct {
	Zone            string  `json:"zone"`
	Coverage        float64 `json:"coverage"`
	Precision       float64 `json:"precision"`
	Overflow        float64 `json:"overflow"`
	OverflowPenalty float64 `json:"overflow_penalty"`
	Tier            Tier    `json:"tier"`
	Shape           float64 `json:"shape"`
	Location        float64 `json:"location"`
	Position        float64 `json:"position"`
	Size            float64 `json:"size"`
	Total           float64 `json:"total"`
	PlayerPixels    int     `json:"player_pixels"`
}

// ScoreZone grades the player raster against one zone. expanded is the
// tolerance mask built by ExpandMask over the whole reference.
func ScoreZone(player *raster.Raster, z Zone, expanded *raster.Mask, p raster.Palette, opts Options) Score {
	s := Score{Zone: z.Name, Tier: TierFloor}

	var (
		matched, inside, anyCount int
		mx, my, ax, ay            float64
	)
	for y := z.Bounds.Min.Y; y < z.Bounds.Max.Y; y++ {
		for x := z.Bounds.Min.X; x < z.Bounds.Max.X; x++ {
			c := player.At(x, y)
			class, ok := p.Classify(c, raster.PlayerAlpha)
			if !ok {
				continue
			}
			anyCount++
			ax += float64(x)
			ay += float64(y)
			if class != z.Class {
				continue
			}
			matched++
			mx += float64(x)
			my += float64(y)
			if expanded.Get(x, y) {
				inside++
			}
		}
	}

	maxDist := math.Hypot(float64(z.Bounds.Dx()), float64(z.Bounds.Dy()))
	if anyCount > 0 {
		c := points.Point{X: ax / float64(anyCount), Y: ay / float64(anyCount)}
		s.Position = grade.Location(points.Dist(c, z.Centroid), opts.LocationFullRadius, maxDist)
	}

	s.PlayerPixels = matched
	if matched == 0 {
		return s
	}

	covered := 0
	for _, pt := range z.Pixels {
		if p.Matches(player.At(pt.X, pt.Y), z.Class, raster.PlayerAlpha) {
			covered++
		}
	}
	s.Coverage = grade.Ratio(float64(covered), float64(z.PixelCount))
	s.Precision = grade.Ratio(float64(inside), float64(matched))
	s.Overflow = 1 - s.Precision
	s.OverflowPenalty = math.Min(s.Overflow*opts.OverflowMultiplier, opts.MaxOverflowPenalty)
	s.Tier, s.Shape = shape(s.Coverage, s.Precision, s.OverflowPenalty, opts)

	c := points.Point{X: mx / float64(matched), Y: my / float64(matched)}
	s.Location = grade.Location(points.Dist(c, z.Centroid), opts.LocationFullRadius, maxDist)
	s.Size = grade.Size(grade.Ratio(float64(matched), float64(z.PixelCount)), opts.SizeLower, opts.SizeUpper)
	s.Total = grade.Clamp(opts.ShapeWeight*s.Shape + opts.LocationWeight*s.Location + opts.SizeWeight*s.Size)
	return s
}

// shape applies the tiered shape grade. Crossing a tier threshold is a
// deliberate jump in score.
func shape(coverage, precision, penalty float64, opts Options) (Tier, float64) {
	base := (coverage*0.5 + precision*0.5) * 100
	switch {
	case coverage >= opts.MinCoverage && precision >= opts.MinPrecision:
		return TierFull, grade.Clamp(base * (1 - penalty))
	case coverage >= opts.MinCoverage/2 || precision >= opts.MinPrecision/2:
		return TierPartial, grade.Clamp(math.Min(base, partialCap) * (1 - penalty))
	default:
		return TierFloor, grade.Clamp((coverage*0.5 + precision*0.5) * floorScale)
	}
}

// Average returns the mean of the zone totals, or zero when there are none.
func Average(scores []Score) float64 {
	if len(scores) == 0 {
		return 0
	}
	var sum float64
	for _, s := range scores {
		sum += s.Total
	}
	return grade.Clamp(sum / float64(len(scores)))
}

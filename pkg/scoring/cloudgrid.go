package scoring

import (
	"github.com/Maskquerade/Maskquerade/agent/go-service/pkg/cloud"
	"github.com/Maskquerade/Maskquerade/agent/go-service/pkg/points"
	"github.com/Maskquerade/Maskquerade/agent/go-service/pkg/quadrant"
	"github.com/Maskquerade/Maskquerade/agent/go-service/pkg/raster"
)

// CloudGridStrategy scores shape with point-cloud matching and placement with
// the quadrant histogram.
type CloudGridStrategy struct {
	cfg     Config
	cloud   []points.Point
	grid    *quadrant.Grid
	hasBase bool
}

func (s *CloudGridStrategy) Variant() Variant { return VariantCloudGrid }

func (s *CloudGridStrategy) SetReference(ref *Reference) error {
	grid, err := quadrant.Build(ref.Raster, s.cfg.Palette, s.cfg.GridDivisions, raster.ReferenceAlpha)
	if err != nil {
		return configError(err, "building reference grid")
	}
	s.cloud = cloud.Normalize(ref.Points.Points, ref.Raster.Width(), ref.Raster.Height())
	s.grid = grid
	s.hasBase = true
	return nil
}

func (s *CloudGridStrategy) Score(sub *Submission) (Breakdown, error) {
	if !s.hasBase {
		return Breakdown{}, ErrNoReference
	}
	grid, err := quadrant.Build(sub.Raster, s.cfg.Palette, s.cfg.GridDivisions, raster.PlayerAlpha)
	if err != nil {
		return Breakdown{}, configError(err, "building player grid")
	}
	player := cloud.Normalize(sub.Points.Points, sub.Raster.Width(), sub.Raster.Height())
	dist := cloud.Distance(s.cloud, player)
	res := quadrant.Compare(s.grid, grid, s.cfg.Quadrant)

	return Breakdown{
		Shape:    cloud.Score(dist, s.cfg.MaxCloudDistance),
		Quadrant: res.Score,
		Grid:     &res,
		Distance: dist,
	}, nil
}

package scoring

import (
	"github.com/Maskquerade/Maskquerade/agent/go-service/pkg/raster"
	"github.com/Maskquerade/Maskquerade/agent/go-service/pkg/zone"
)

// ZoneStrategy segments the reference into colour zones and averages the
// per-zone scores.
type ZoneStrategy struct {
	cfg      Config
	zones    []zone.Zone
	expanded *raster.Mask
}

func (s *ZoneStrategy) Variant() Variant { return VariantZones }

func (s *ZoneStrategy) SetReference(ref *Reference) error {
	zones := zone.Segment(ref.Raster, s.cfg.Palette, s.cfg.Zone)
	if len(zones) == 0 {
		return configError(nil, "reference has no zone of at least %d pixels", s.cfg.Zone.MinShapePixels)
	}
	s.zones = zones
	s.expanded = zone.ExpandMask(ref.Raster, s.cfg.Palette, s.cfg.Zone.ToleranceRadius)
	return nil
}

func (s *ZoneStrategy) Score(sub *Submission) (Breakdown, error) {
	if len(s.zones) == 0 {
		return Breakdown{}, ErrNoReference
	}
	scores := make([]zone.Score, len(s.zones))
	var b Breakdown
	for i, z := range s.zones {
		scores[i] = zone.ScoreZone(sub.Raster, z, s.expanded, s.cfg.Palette, s.cfg.Zone)
		b.Shape += scores[i].Shape
		b.Location += scores[i].Location
		b.Size += scores[i].Size
	}
	n := float64(len(scores))
	b.Shape /= n
	b.Location /= n
	b.Size /= n
	b.Zone = zone.Average(scores)
	b.Zones = scores
	return b, nil
}

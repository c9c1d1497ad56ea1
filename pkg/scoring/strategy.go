package scoring

import (
	"github.com/Maskquerade/Maskquerade/agent/go-service/pkg/points"
	"github.com/Maskquerade/Maskquerade/agent/go-service/pkg/raster"
)

// Reference is the pattern the player has to reproduce.
type Reference struct {
	Raster *raster.Raster
	Points points.PointSet
}

// Submission is the player's side of one scoring call.
type Submission struct {
	Raster *raster.Raster
	Points points.PointSet
}

// Strategy is one self-contained way of comparing a submission with the
// reference. SetReference fully replaces any previous reference.
type Strategy interface {
	Variant() Variant
	SetReference(ref *Reference) error
	Score(sub *Submission) (Breakdown, error)
}

// NewStrategy builds the strategy for v.
func NewStrategy(v Variant, cfg Config) (Strategy, error) {
	switch v {
	case VariantCloudGrid:
		return &CloudGridStrategy{cfg: cfg}, nil
	case VariantHuMoment:
		return &HuMomentStrategy{cfg: cfg}, nil
	case VariantZones:
		return &ZoneStrategy{cfg: cfg}, nil
	default:
		return nil, configError(nil, "unknown variant %q", v)
	}
}

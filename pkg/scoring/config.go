package scoring

import (
	"fmt"
	"strings"

	"github.com/Maskquerade/Maskquerade/agent/go-service/pkg/cloud"
	"github.com/Maskquerade/Maskquerade/agent/go-service/pkg/points"
	"github.com/Maskquerade/Maskquerade/agent/go-service/pkg/quadrant"
	"github.com/Maskquerade/Maskquerade/agent/go-service/pkg/raster"
	"github.com/Maskquerade/Maskquerade/agent/go-service/pkg/zone"
)

// Variant selects one scoring strategy.
type Variant string

const (
	VariantCloudGrid Variant = "cloud_grid"
	VariantHuMoment  Variant = "hu_moment"
	VariantZones     Variant = "zones"
)

const (
	// DefaultPassingScore is the pass threshold.
	DefaultPassingScore = 60.0
	// MaxToleranceRadius bounds the zone tolerance mask radius in pixels.
	MaxToleranceRadius = 64
)

// ParseVariant maps a name to a Variant. An empty name selects zones.
func ParseVariant(s string) (Variant, error) {
	switch v := Variant(strings.ToLower(strings.TrimSpace(s))); v {
	case "":
		return VariantZones, nil
	case VariantCloudGrid, VariantHuMoment, VariantZones:
		return v, nil
	default:
		return "", configError(nil, "unknown variant %q", s)
	}
}

// Weights scale each sub-score into the final score. They conventionally sum
// to 1 but need not.
type Weights struct {
	Shape    float64 `json:"shape"`
	Location float64 `json:"location"`
	Size     float64 `json:"size"`
	Quadrant float64 `json:"quadrant"`
	Zone     float64 `json:"zone"`
}

// DefaultWeights returns the weights used by a variant out of the box.
func DefaultWeights(v Variant) Weights {
	switch v {
	case VariantCloudGrid:
		return Weights{Shape: 0.5, Quadrant: 0.5}
	case VariantHuMoment:
		return Weights{Shape: 0.5, Location: 0.25, Size: 0.25}
	default:
		return Weights{Zone: 1}
	}
}

// Config holds every tunable of the engine. Fields are plain values so the
// host can override any of them before building an engine.
type Config struct {
	Palette raster.Palette

	// BrushRadius is used by PaintAt when the caller passes no radius.
	BrushRadius float64
	// ProtectTransparent keeps paint off pixels transparent in the base.
	ProtectTransparent bool

	SampleCount  int
	JumpDistance float64

	MaxCloudDistance float64
	GridDivisions    int
	Quadrant         quadrant.Options

	Zone zone.Options

	// Hu-moment variant location and size grading.
	LocationFullRadius float64
	SizeLower          float64
	SizeUpper          float64

	Weights      map[Variant]Weights
	PassingScore float64
}

// DefaultConfig returns the tuned defaults.
func DefaultConfig() Config {
	zo := zone.DefaultOptions()
	return Config{
		Palette:            raster.DefaultPalette(),
		BrushRadius:        8,
		SampleCount:        points.DefaultSampleCount,
		JumpDistance:       points.DefaultJumpDistance,
		MaxCloudDistance:   cloud.DefaultMaxDistance,
		GridDivisions:      4,
		Quadrant:           quadrant.DefaultOptions(),
		Zone:               zo,
		LocationFullRadius: zo.LocationFullRadius,
		SizeLower:          zo.SizeLower,
		SizeUpper:          zo.SizeUpper,
		Weights: map[Variant]Weights{
			VariantCloudGrid: DefaultWeights(VariantCloudGrid),
			VariantHuMoment:  DefaultWeights(VariantHuMoment),
			VariantZones:     DefaultWeights(VariantZones),
		},
		PassingScore: DefaultPassingScore,
	}
}

// WeightsFor returns the configured weights of v, or its defaults.
func (c Config) WeightsFor(v Variant) Weights {
	if w, ok := c.Weights[v]; ok {
		return w
	}
	return DefaultWeights(v)
}

func unit(v float64) bool { return v >= 0 && v <= 1 }

// Validate reports every invalid field in a single *ConfigError.
func (c Config) Validate() error {
	var problems []string
	if len(c.Palette.Classes) == 0 {
		problems = append(problems, "palette has no colour classes")
	}
	if c.Palette.Tolerance <= 0 {
		problems = append(problems, fmt.Sprintf("colour tolerance %v must be positive", c.Palette.Tolerance))
	}
	if c.SampleCount < points.MinPoints {
		problems = append(problems, fmt.Sprintf("sample count %d below %d", c.SampleCount, points.MinPoints))
	}
	if c.GridDivisions <= 0 {
		problems = append(problems, fmt.Sprintf("grid divisions %d must be positive", c.GridDivisions))
	}
	if c.MaxCloudDistance <= 0 {
		problems = append(problems, "max cloud distance must be positive")
	}
	if c.BrushRadius < 0 {
		problems = append(problems, "brush radius must not be negative")
	}
	if c.Zone.Padding < 0 {
		problems = append(problems, "zone padding must not be negative")
	}
	if c.SizeLower > c.SizeUpper || c.Zone.SizeLower > c.Zone.SizeUpper {
		problems = append(problems, "size tolerance lower bound exceeds upper bound")
	}
	if r := c.Zone.ToleranceRadius; r < 0 || r > MaxToleranceRadius {
		problems = append(problems, fmt.Sprintf("zone tolerance radius %v outside [0, %d]", r, MaxToleranceRadius))
	}
	if !unit(c.Zone.MinCoverage) || !unit(c.Zone.MinPrecision) {
		problems = append(problems, "zone minimum coverage and precision must lie in [0, 1]")
	}
	if !unit(c.Zone.MaxOverflowPenalty) || c.Zone.OverflowMultiplier < 0 {
		problems = append(problems, "zone overflow penalty must lie in [0, 1] with a non-negative multiplier")
	}
	if c.Zone.ShapeWeight < 0 || c.Zone.LocationWeight < 0 || c.Zone.SizeWeight < 0 {
		problems = append(problems, "zone weights must not be negative")
	}
	for _, v := range []Variant{VariantCloudGrid, VariantHuMoment, VariantZones} {
		w := c.WeightsFor(v)
		if w.Shape < 0 || w.Location < 0 || w.Size < 0 || w.Quadrant < 0 || w.Zone < 0 {
			problems = append(problems, fmt.Sprintf("%s weights must not be negative", v))
		}
	}
	if c.Quadrant.EmptyPenalty < 0 {
		problems = append(problems, "empty quadrant penalty must not be negative")
	}
	if c.PassingScore < 0 || c.PassingScore > 100 {
		problems = append(problems, fmt.Sprintf("passing score %v outside [0, 100]", c.PassingScore))
	}
	if len(problems) > 0 {
		return configError(nil, "%s", strings.Join(problems, "; "))
	}
	return nil
}

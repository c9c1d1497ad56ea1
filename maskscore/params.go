package maskscore

import (
	"errors"

	"github.com/bytedance/sonic"

	"github.com/Maskquerade/Maskquerade/agent/go-service/pkg/raster"
	"github.com/Maskquerade/Maskquerade/agent/go-service/pkg/scoring"
)

// scoreParams is the CustomRecognitionParam of MaskScore, e.g.
//
//	{
//	  "reference": "patterns/sun.png",
//	  "variant": "zones",
//	  "passing_score": 70
//	}
//
// Optional numeric fields are pointers so an explicit zero is kept and
// rejected by validation instead of silently replaced by a default.
type scoreParams struct {
	Reference            string              `json:"reference"`
	Base                 string              `json:"base,omitempty"`
	Variant              string              `json:"variant,omitempty"`
	PassingScore         *float64            `json:"passing_score,omitempty"`
	ColorTolerance       *float64            `json:"color_tolerance,omitempty"`
	GridDivisions        *int                `json:"grid_divisions,omitempty"`
	EmptyQuadrantPenalty *float64            `json:"empty_quadrant_penalty,omitempty"`
	ZonePadding          *int                `json:"zone_padding,omitempty"`
	MinShapePixels       *int                `json:"min_shape_pixels,omitempty"`
	Palette              []raster.ColorClass `json:"palette,omitempty"`
}

var errNoReference = errors.New("maskscore: reference is required")

func parseParams(raw string) (scoreParams, error) {
	var p scoreParams
	if raw == "" {
		return p, errNoReference
	}
	if err := sonic.UnmarshalString(raw, &p); err != nil {
		return p, err
	}
	if p.Reference == "" {
		return p, errNoReference
	}
	return p, nil
}

// config applies the overrides to the engine defaults.
func (p scoreParams) config() (scoring.Config, scoring.Variant, error) {
	variant, err := scoring.ParseVariant(p.Variant)
	if err != nil {
		return scoring.Config{}, "", err
	}

	cfg := scoring.DefaultConfig()
	if len(p.Palette) > 0 {
		cfg.Palette.Classes = p.Palette
	}
	if p.ColorTolerance != nil {
		cfg.Palette.Tolerance = *p.ColorTolerance
	}
	if p.PassingScore != nil {
		cfg.PassingScore = *p.PassingScore
	}
	if p.GridDivisions != nil {
		cfg.GridDivisions = *p.GridDivisions
	}
	if p.EmptyQuadrantPenalty != nil {
		cfg.Quadrant.EmptyPenalty = *p.EmptyQuadrantPenalty
	}
	if p.ZonePadding != nil {
		cfg.Zone.Padding = *p.ZonePadding
	}
	if p.MinShapePixels != nil {
		cfg.Zone.MinShapePixels = *p.MinShapePixels
	}
	if err := cfg.Validate(); err != nil {
		return scoring.Config{}, "", err
	}
	return cfg, variant, nil
}

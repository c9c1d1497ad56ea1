package scoring

import (
	"errors"

	"github.com/Maskquerade/Maskquerade/agent/go-service/pkg/points"
	"github.com/Maskquerade/Maskquerade/agent/go-service/pkg/raster"
)

// Engine owns one strategy, its reference and the player's canvas. It is not
// safe for concurrent use.
type Engine struct {
	cfg      Config
	variant  Variant
	strategy Strategy
	canvas   *Canvas
	ref      *Reference
}

// NewEngine validates cfg and prepares a canvas over base.
func NewEngine(cfg Config, variant Variant, base *raster.Raster) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if base == nil || base.Width() == 0 || base.Height() == 0 {
		return nil, configError(nil, "empty base image")
	}
	strategy, err := NewStrategy(variant, cfg)
	if err != nil {
		return nil, err
	}
	return &Engine{
		cfg:      cfg,
		variant:  variant,
		strategy: strategy,
		canvas:   NewCanvas(base, cfg.ProtectTransparent, cfg.JumpDistance),
	}, nil
}

// Variant returns the strategy in use.
func (e *Engine) Variant() Variant { return e.variant }

// Canvas returns the player's canvas.
func (e *Engine) Canvas() *Canvas { return e.canvas }

// SetReference replaces the reference pattern. live may carry stroke points
// of a recorded reference; when it holds too few the raster is scanned
// instead. The reference must match the base image size.
func (e *Engine) SetReference(ref *raster.Raster, live []points.Point) error {
	if ref == nil {
		return configError(nil, "nil reference")
	}
	base := e.canvas.Raster()
	if ref.Width() != base.Width() || ref.Height() != base.Height() {
		return configError(nil, "reference is %dx%d, canvas is %dx%d",
			ref.Width(), ref.Height(), base.Width(), base.Height())
	}
	set, err := points.Gather("reference", live, ref, e.cfg.Palette, points.AnyClass, raster.ReferenceAlpha, e.cfg.SampleCount)
	if err != nil {
		return configError(err, "reference has fewer than %d classified pixels", points.MinPoints)
	}

	r := &Reference{Raster: ref.Clone(), Points: set}
	if err := e.strategy.SetReference(r); err != nil {
		scoreLog.Warn().Err(err).Str("variant", string(e.variant)).Msg("reference rejected")
		return err
	}
	e.ref = r
	scoreLog.Debug().
		Str("variant", string(e.variant)).
		Int("points", set.Len()).
		Int("width", ref.Width()).
		Int("height", ref.Height()).
		Msg("reference set")
	return nil
}

// PaintAt stamps a disc of col on the canvas. A non-positive radius uses the
// configured brush radius.
func (e *Engine) PaintAt(x, y, radius float64, col raster.Color) int {
	if radius <= 0 {
		radius = e.cfg.BrushRadius
	}
	return e.canvas.PaintAt(x, y, radius, col)
}

// LiftPen ends the current stroke.
func (e *Engine) LiftPen() { e.canvas.LiftPen() }

// Reset clears the canvas back to the base image.
func (e *Engine) Reset() { e.canvas.Reset() }

// ComputeScore scores the canvas against the reference.
func (e *Engine) ComputeScore() (Breakdown, error) {
	return e.score(e.canvas.Raster(), e.canvas.Points())
}

// ScoreRaster scores an externally supplied player raster, leaving the
// canvas untouched.
func (e *Engine) ScoreRaster(player *raster.Raster) (Breakdown, error) {
	if player == nil {
		return Breakdown{}, errors.New("scoring: nil player raster")
	}
	return e.score(player, nil)
}

func (e *Engine) score(player *raster.Raster, live []points.Point) (Breakdown, error) {
	if e.ref == nil {
		return Breakdown{}, ErrNoReference
	}
	// Live stroke points only shape the gesture; the paint itself decides
	// whether anything scoreable was drawn.
	painted := raster.CountClassified(player, e.cfg.Palette, raster.PlayerAlpha)
	set, err := points.Gather("player", live, player, e.cfg.Palette, points.AnyClass, raster.PlayerAlpha, e.cfg.SampleCount)
	if painted < points.MinPoints || errors.Is(err, points.ErrTooFewPoints) {
		scoreLog.Debug().
			Str("variant", string(e.variant)).
			Int("painted", painted).
			Int("live", len(live)).
			Msg("not enough drawing to score")
		return Breakdown{Variant: e.variant, Reason: ReasonInsufficientInput}, nil
	}

	b, err := e.strategy.Score(&Submission{Raster: player, Points: set})
	if err != nil {
		return Breakdown{}, err
	}
	b.Variant = e.variant
	b.Final = Combine(e.cfg.WeightsFor(e.variant), b)
	b.Passed = Passed(b.Final, e.cfg.PassingScore)
	b.Reason = ReasonOK

	scoreLog.Debug().
		Str("variant", string(e.variant)).
		Float64("final", b.Final).
		Bool("passed", b.Passed).
		Msg("scored")
	return b, nil
}

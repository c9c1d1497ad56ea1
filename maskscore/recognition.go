package maskscore

import (
	"errors"
	"fmt"
	"image"

	"github.com/MaaXYZ/maa-framework-go/v4"
	"github.com/bytedance/sonic"

	"github.com/Maskquerade/Maskquerade/agent/go-service/pkg/raster"
	"github.com/Maskquerade/Maskquerade/agent/go-service/pkg/scoring"
)

// MaskScoreRecognition scores the painted mask inside the ROI against a
// reference pattern. It hits when the painting passes.
type MaskScoreRecognition struct{}

// Run implements maa.CustomRecognitionRunner.
func (r *MaskScoreRecognition) Run(ctx *maa.Context, arg *maa.CustomRecognitionArg) (*maa.CustomRecognitionResult, bool) {
	msLog.Info().
		Str("recognition", arg.CustomRecognitionName).
		Msg("starting MaskScore recognition")

	if arg.Img == nil {
		msLog.Error().Msg("pipeline screenshot is nil")
		return &maa.CustomRecognitionResult{Box: arg.Roi, Detail: `{}`}, false
	}

	roi := roiRect(arg.Roi.X(), arg.Roi.Y(), arg.Roi.Width(), arg.Roi.Height(), arg.Img.Bounds())
	report, err := scoreImage(arg.CustomRecognitionParam, arg.Img, roi)
	if err != nil {
		ev := msLog.Error()
		if errors.Is(err, scoring.ErrConfiguration) {
			ev = msLog.Warn()
		}
		ev.Err(err).Str("param", arg.CustomRecognitionParam).Msg("mask scoring failed")
		return &maa.CustomRecognitionResult{Box: arg.Roi, Detail: `{}`}, false
	}

	detail, err := sonic.MarshalString(report)
	if err != nil {
		msLog.Error().Err(err).Str("id", report.ID).Msg("failed to marshal report")
		return &maa.CustomRecognitionResult{Box: arg.Roi, Detail: `{}`}, false
	}

	msLog.Info().
		Str("id", report.ID).
		Str("variant", string(report.Variant)).
		Float64("score", report.Score).
		Bool("passed", report.Passed).
		Str("reason", string(report.Reason)).
		Msg("finished MaskScore recognition")

	return &maa.CustomRecognitionResult{
		Box:    arg.Roi,
		Detail: detail,
	}, report.Passed
}

// scoreImage runs one scoring pass of the roi of img and stores the report.
func scoreImage(raw string, img image.Image, roi image.Rectangle) (Report, error) {
	p, err := parseParams(raw)
	if err != nil {
		return Report{}, err
	}
	cfg, variant, err := p.config()
	if err != nil {
		return Report{}, err
	}
	if roi.Empty() {
		return Report{}, fmt.Errorf("maskscore: empty roi %v", roi)
	}

	player := raster.FromImage(cropROI(img, roi))
	w, h := player.Width(), player.Height()
	key := fmt.Sprintf("%s|%dx%d", raw, w, h)

	entry, err := engineFor(key, func() (*scoring.Engine, error) {
		return buildEngine(p, cfg, variant, w, h)
	})
	if err != nil {
		return Report{}, err
	}

	entry.mu.Lock()
	b, err := entry.engine.ScoreRaster(player)
	entry.mu.Unlock()
	if err != nil {
		return Report{}, err
	}

	report := newReport(p.Reference, b)
	setLastReport(report)
	return report, nil
}

func buildEngine(p scoreParams, cfg scoring.Config, variant scoring.Variant, w, h int) (*scoring.Engine, error) {
	ref, err := loadRaster(p.Reference, w, h)
	if err != nil {
		return nil, fmt.Errorf("load reference: %w", err)
	}
	base := raster.New(w, h)
	if p.Base != "" {
		if base, err = loadRaster(p.Base, w, h); err != nil {
			return nil, fmt.Errorf("load base: %w", err)
		}
	}

	engine, err := scoring.NewEngine(cfg, variant, base)
	if err != nil {
		return nil, err
	}
	if err := engine.SetReference(ref, nil); err != nil {
		return nil, fmt.Errorf("reference %s: %w", p.Reference, err)
	}
	msLog.Debug().
		Str("reference", p.Reference).
		Str("variant", string(variant)).
		Int("width", w).
		Int("height", h).
		Msg("engine built")
	return engine, nil
}

func loadRaster(name string, w, h int) (*raster.Raster, error) {
	img, err := loadImage(name)
	if err != nil {
		return nil, err
	}
	return raster.FromImage(scaleTo(img, w, h)), nil
}

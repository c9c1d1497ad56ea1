package scoring

import (
	"errors"
	"image"
	"math"
	"testing"

	"github.com/Maskquerade/Maskquerade/agent/go-service/pkg/points"
	"github.com/Maskquerade/Maskquerade/agent/go-service/pkg/raster"
)

var (
	red  = raster.RGB(1, 0, 0)
	blue = raster.RGB(0, 0, 1)
)

func squareRef() *raster.Raster {
	r := raster.New(100, 100)
	r.FillRect(image.Rect(40, 40, 60, 60), red)
	return r
}

func newEngine(t *testing.T, v Variant) *Engine {
	t.Helper()
	e, err := NewEngine(DefaultConfig(), v, raster.New(100, 100))
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	if err := e.SetReference(squareRef(), nil); err != nil {
		t.Fatalf("SetReference: %v", err)
	}
	return e
}

var variants = []Variant{VariantCloudGrid, VariantHuMoment, VariantZones}

func TestEngine_SelfSimilarity(t *testing.T) {
	for _, v := range variants {
		t.Run(string(v), func(t *testing.T) {
			b, err := newEngine(t, v).ScoreRaster(squareRef())
			if err != nil {
				t.Fatalf("ScoreRaster: %v", err)
			}
			if b.Reason != ReasonOK || b.Variant != v {
				t.Errorf("reason/variant = %s/%s", b.Reason, b.Variant)
			}
			if math.Abs(b.Final-100) > 1e-6 || !b.Passed {
				t.Errorf("final = %v passed = %v, want 100/true", b.Final, b.Passed)
			}
		})
	}
}

func TestEngine_ExactSquareZoneScore(t *testing.T) {
	b, err := newEngine(t, VariantZones).ScoreRaster(squareRef())
	if err != nil {
		t.Fatalf("ScoreRaster: %v", err)
	}
	if len(b.Zones) != 1 {
		t.Fatalf("zones = %d", len(b.Zones))
	}
	z := b.Zones[0]
	if z.Coverage != 1 || z.Precision != 1 || z.Shape != 100 || z.Total != 100 {
		t.Errorf("zone = %+v", z)
	}
}

func TestEngine_NothingDrawn(t *testing.T) {
	for _, v := range variants {
		e := newEngine(t, v)
		b, err := e.ComputeScore()
		if err != nil {
			t.Fatalf("%s: ComputeScore: %v", v, err)
		}
		if b.Final != 0 || b.Passed || b.Reason != ReasonInsufficientInput {
			t.Errorf("%s: breakdown = %+v", v, b)
		}
	}
}

func TestEngine_WrongColorRightPlace(t *testing.T) {
	player := raster.New(100, 100)
	player.FillRect(image.Rect(40, 40, 60, 60), blue)

	b, err := newEngine(t, VariantZones).ScoreRaster(player)
	if err != nil {
		t.Fatalf("ScoreRaster: %v", err)
	}
	z := b.Zones[0]
	if z.Coverage != 0 || z.Precision != 0 || z.Shape != 0 {
		t.Errorf("coverage/precision/shape = %v/%v/%v", z.Coverage, z.Precision, z.Shape)
	}
	if z.Position != 100 {
		t.Errorf("position = %v, want 100", z.Position)
	}
	if b.Passed {
		t.Error("wrong colour should not pass")
	}
}

func TestEngine_Idempotent(t *testing.T) {
	for _, v := range variants {
		e := newEngine(t, v)
		for x := 42.0; x < 60; x += 4 {
			e.PaintAt(x, 50, 6, red)
		}
		first, err := e.ComputeScore()
		if err != nil {
			t.Fatalf("%s: %v", v, err)
		}
		second, _ := e.ComputeScore()
		if first.Final != second.Final || first.Shape != second.Shape || first.Zone != second.Zone {
			t.Errorf("%s: %+v != %+v", v, first, second)
		}
	}
}

func TestEngine_ResetClearsPaint(t *testing.T) {
	e := newEngine(t, VariantZones)
	e.PaintAt(50, 50, 10, red)
	if e.Canvas().Strokes() != 1 {
		t.Errorf("strokes = %d", e.Canvas().Strokes())
	}
	e.Reset()

	b, err := e.ComputeScore()
	if err != nil {
		t.Fatalf("ComputeScore: %v", err)
	}
	if b.Reason != ReasonInsufficientInput {
		t.Errorf("reason after reset = %s", b.Reason)
	}
	if len(e.Canvas().Points()) != 0 {
		t.Error("reset should forget stroke points")
	}
}

func TestEngine_DefaultBrushRadius(t *testing.T) {
	e := newEngine(t, VariantZones)
	if n := e.PaintAt(50, 50, 0, red); n == 0 {
		t.Error("zero radius should fall back to the configured brush")
	}
}

func TestEngine_ProtectsTransparentBase(t *testing.T) {
	base := raster.New(100, 100)
	base.FillRect(base.Bounds(), raster.RGB(1, 1, 1))
	base.FillRect(image.Rect(45, 45, 55, 55), raster.Transparent)

	cfg := DefaultConfig()
	cfg.ProtectTransparent = true
	e, err := NewEngine(cfg, VariantZones, base)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	e.PaintAt(50, 50, 20, red)
	if got := e.Canvas().Raster().At(50, 50); got != raster.Transparent {
		t.Errorf("hole received paint: %+v", got)
	}
	if got := e.Canvas().Raster().At(40, 50); got != red {
		t.Errorf("opaque pixel not painted: %+v", got)
	}
}

func TestEngine_NoReference(t *testing.T) {
	e, err := NewEngine(DefaultConfig(), VariantZones, raster.New(10, 10))
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	if _, err := e.ComputeScore(); !errors.Is(err, ErrNoReference) {
		t.Errorf("err = %v, want ErrNoReference", err)
	}
}

func TestEngine_ReferenceRejected(t *testing.T) {
	sparse := raster.New(100, 100)
	sparse.FillRect(image.Rect(0, 0, 3, 3), red)

	tiny := raster.New(100, 100)
	tiny.FillRect(image.Rect(0, 0, 4, 4), red) // enough points, too small for a zone

	cases := []struct {
		name    string
		variant Variant
		ref     *raster.Raster
	}{
		{"too few pixels", VariantCloudGrid, sparse},
		{"no zones", VariantZones, tiny},
		{"size mismatch", VariantZones, raster.New(50, 50)},
		{"nil", VariantHuMoment, nil},
	}
	for _, tc := range cases {
		e, err := NewEngine(DefaultConfig(), tc.variant, raster.New(100, 100))
		if err != nil {
			t.Fatalf("%s: NewEngine: %v", tc.name, err)
		}
		err = e.SetReference(tc.ref, nil)
		if !errors.Is(err, ErrConfiguration) {
			t.Errorf("%s: err = %v, want configuration error", tc.name, err)
		}
		var ce *ConfigError
		if !errors.As(err, &ce) {
			t.Errorf("%s: err is not a *ConfigError", tc.name)
		}
	}
}

func TestEngine_LiveReferencePoints(t *testing.T) {
	e, err := NewEngine(DefaultConfig(), VariantCloudGrid, raster.New(100, 100))
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	var live []points.Point
	for i := 0; i < 20; i++ {
		live = append(live, points.Point{X: float64(40 + i), Y: 50})
	}
	if err := e.SetReference(squareRef(), live); err != nil {
		t.Fatalf("SetReference: %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	cases := map[string]func(*Config){
		"grid divisions":  func(c *Config) { c.GridDivisions = 0 },
		"huge radius":     func(c *Config) { c.Zone.ToleranceRadius = 1e6 },
		"min coverage":    func(c *Config) { c.Zone.MinCoverage = 1.5 },
		"min precision":   func(c *Config) { c.Zone.MinPrecision = -0.1 },
		"zone weight":     func(c *Config) { c.Zone.SizeWeight = -1 },
		"variant weight":  func(c *Config) { c.Weights[VariantCloudGrid] = Weights{Shape: -0.5, Quadrant: 1} },
		"empty penalty":   func(c *Config) { c.Quadrant.EmptyPenalty = -10 },
		"tolerance":       func(c *Config) { c.Palette.Tolerance = 0 },
		"empty palette":   func(c *Config) { c.Palette.Classes = nil },
		"sample count":    func(c *Config) { c.SampleCount = 3 },
		"passing score":   func(c *Config) { c.PassingScore = 120 },
		"size tolerances": func(c *Config) { c.SizeLower = 2 },
	}
	for name, mutate := range cases {
		cfg := DefaultConfig()
		mutate(&cfg)
		if err := cfg.Validate(); !errors.Is(err, ErrConfiguration) {
			t.Errorf("%s: err = %v", name, err)
		}
		if _, err := NewEngine(cfg, VariantZones, raster.New(10, 10)); err == nil {
			t.Errorf("%s: NewEngine accepted invalid config", name)
		}
	}
}

func TestParseVariant(t *testing.T) {
	cases := map[string]Variant{
		"":           VariantZones,
		"zones":      VariantZones,
		"CLOUD_GRID": VariantCloudGrid,
		" hu_moment": VariantHuMoment,
	}
	for in, want := range cases {
		got, err := ParseVariant(in)
		if err != nil || got != want {
			t.Errorf("ParseVariant(%q) = %s, %v", in, got, err)
		}
	}
	if _, err := ParseVariant("dollar_p"); !errors.Is(err, ErrConfiguration) {
		t.Errorf("unknown variant err = %v", err)
	}
}

func TestCombine(t *testing.T) {
	b := Breakdown{Shape: 80, Quadrant: 40, Location: 100}
	if got := Combine(DefaultWeights(VariantCloudGrid), b); got != 60 {
		t.Errorf("cloud_grid combine = %v, want 60", got)
	}
	if got := Combine(Weights{Shape: 1, Location: 1}, b); got != 100 {
		t.Errorf("combine should clamp, got %v", got)
	}
	if !Passed(60, 60) || Passed(59.99, 60) {
		t.Error("passing threshold is inclusive")
	}
}

// paintSquare covers the 40..59 reference square with 36 dabs, enough for
// the live stroke buffer to stand in for a raster scan.
func paintSquare(e *Engine, col raster.Color) {
	for y := 42.0; y <= 57; y += 3 {
		for x := 42.0; x <= 57; x += 3 {
			e.PaintAt(x, y, 2.5, col)
		}
	}
}

func TestEngine_LiveStrokesWithoutPalettePaint(t *testing.T) {
	green := raster.RGB(0, 1, 0)
	for _, v := range variants {
		e := newEngine(t, v)
		paintSquare(e, green)
		if n := len(e.Canvas().Points()); n < points.MinPoints {
			t.Fatalf("%s: recorded %d live points", v, n)
		}

		b, err := e.ComputeScore()
		if err != nil {
			t.Fatalf("%s: ComputeScore: %v", v, err)
		}
		if b.Reason != ReasonInsufficientInput || b.Final != 0 || b.Passed {
			t.Errorf("%s: unclassified paint was scored: %+v", v, b)
		}
		if !errors.Is(b.Err(), ErrInsufficientInput) {
			t.Errorf("%s: Err() = %v", v, b.Err())
		}
	}
}

func TestEngine_LiveStrokesMatchingReference(t *testing.T) {
	for _, v := range variants {
		e := newEngine(t, v)
		paintSquare(e, red)

		b, err := e.ComputeScore()
		if err != nil {
			t.Fatalf("%s: ComputeScore: %v", v, err)
		}
		if b.Reason != ReasonOK || b.Err() != nil {
			t.Fatalf("%s: reason = %s", v, b.Reason)
		}
		switch v {
		case VariantHuMoment:
			if b.Location != 100 || b.Size != 100 {
				t.Errorf("%s: location/size = %v/%v", v, b.Location, b.Size)
			}
		default:
			if !b.Passed || b.Final < 80 {
				t.Errorf("%s: final = %v passed = %v", v, b.Final, b.Passed)
			}
		}
	}
}

func TestEngine_IgnoresDabsThatPaintNothing(t *testing.T) {
	e := newEngine(t, VariantCloudGrid)
	e.PaintAt(500, 500, 4, red)
	e.PaintAt(-50, 20, 4, red)
	e.PaintAt(math.NaN(), 50, 4, red)
	e.PaintAt(50, math.Inf(1), 4, red)
	if n := len(e.Canvas().Points()); n != 0 {
		t.Errorf("recorded %d points for dabs that wrote no pixels", n)
	}

	base := raster.New(100, 100)
	cfg := DefaultConfig()
	cfg.ProtectTransparent = true
	protected, err := NewEngine(cfg, VariantZones, base)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	if n := protected.PaintAt(50, 50, 10, red); n != 0 || len(protected.Canvas().Points()) != 0 {
		t.Errorf("fully protected canvas wrote %d pixels", n)
	}
}

func TestEngine_ExtremeStrokePositions(t *testing.T) {
	for _, v := range variants {
		e := newEngine(t, v)
		for x := 42.0; x <= 60; x += 2 {
			e.PaintAt(x, 50, 4, red)
		}
		e.PaintAt(math.NaN(), 50, 4, red)
		for i := 0; i < 12; i++ {
			e.PaintAt(1e200, 1e200, 4, red)
		}

		b, err := e.ComputeScore()
		if err != nil {
			t.Fatalf("%s: ComputeScore: %v", v, err)
		}
		if math.IsNaN(b.Final) || b.Final < 0 || b.Final > 100 {
			t.Errorf("%s: final = %v", v, b.Final)
		}
	}
}

package maskscore

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Maskquerade/Maskquerade/agent/go-service/pkg/raster"
	"github.com/Maskquerade/Maskquerade/agent/go-service/pkg/scoring"
)

var (
	opaqueRed   = color.NRGBA{R: 255, A: 255}
	opaqueWhite = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

func fill(img *image.NRGBA, rect image.Rectangle, c color.NRGBA) {
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
}

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
}

// referencePNG writes a 50x50 pattern with a 20x20 red square.
func referencePNG(t *testing.T) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 50, 50))
	fill(img, image.Rect(15, 15, 35, 35), opaqueRed)
	path := filepath.Join(t.TempDir(), "square.png")
	writePNG(t, path, img)
	return path
}

// screenshot returns a white 200x200 frame; when painted, the ROI at
// (100, 100) holds the reference square.
func screenshot(painted bool) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 200, 200))
	fill(img, img.Bounds(), opaqueWhite)
	if painted {
		fill(img, image.Rect(115, 115, 135, 135), opaqueRed)
	}
	return img
}

func TestParseParams(t *testing.T) {
	if _, err := parseParams(""); !errors.Is(err, errNoReference) {
		t.Errorf("empty param err = %v", err)
	}
	if _, err := parseParams(`{"variant":"zones"}`); !errors.Is(err, errNoReference) {
		t.Errorf("missing reference err = %v", err)
	}
	if _, err := parseParams(`{"reference":`); err == nil {
		t.Error("malformed json should fail")
	}

	p, err := parseParams(`{"reference":"a.png","grid_divisions":3,"color_tolerance":0.2,"passing_score":75}`)
	if err != nil {
		t.Fatalf("parseParams: %v", err)
	}
	cfg, variant, err := p.config()
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if variant != scoring.VariantZones {
		t.Errorf("variant = %s", variant)
	}
	if cfg.GridDivisions != 3 || cfg.Palette.Tolerance != 0.2 || cfg.PassingScore != 75 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
}

func TestScoreParams_ConfigRejects(t *testing.T) {
	for _, raw := range []string{
		`{"reference":"a.png","grid_divisions":0}`,
		`{"reference":"a.png","variant":"bogus"}`,
		`{"reference":"a.png","color_tolerance":0}`,
	} {
		p, err := parseParams(raw)
		if err != nil {
			t.Fatalf("%s: parseParams: %v", raw, err)
		}
		if _, _, err := p.config(); !errors.Is(err, scoring.ErrConfiguration) {
			t.Errorf("%s: err = %v", raw, err)
		}
	}
}

func TestScaleTo_NearestKeepsColours(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	src.SetNRGBA(0, 0, opaqueRed)
	src.SetNRGBA(1, 1, opaqueWhite)

	dst := scaleTo(src, 4, 4)
	if dst.Bounds().Dx() != 4 || dst.Bounds().Dy() != 4 {
		t.Fatalf("bounds = %v", dst.Bounds())
	}
	if got := dst.NRGBAAt(1, 1); got != opaqueRed {
		t.Errorf("top-left = %v", got)
	}
	if got := dst.NRGBAAt(3, 3); got != opaqueWhite {
		t.Errorf("bottom-right = %v", got)
	}
}

func TestRoiRectAndCrop(t *testing.T) {
	bounds := image.Rect(0, 0, 200, 200)
	if got := roiRect(0, 0, 0, 0, bounds); got != bounds {
		t.Errorf("empty roi = %v", got)
	}
	if got := roiRect(150, 150, 100, 100, bounds); got != image.Rect(150, 150, 200, 200) {
		t.Errorf("clipped roi = %v", got)
	}

	crop := raster.FromImage(cropROI(screenshot(true), image.Rect(100, 100, 150, 150)))
	if crop.Width() != 50 || crop.Height() != 50 {
		t.Fatalf("crop = %dx%d", crop.Width(), crop.Height())
	}
	if crop.At(20, 20) != raster.RGB(1, 0, 0) {
		t.Errorf("crop origin not shifted: %+v", crop.At(20, 20))
	}

	uniform := cropROI(image.NewUniform(opaqueRed), image.Rect(0, 0, 8, 6))
	if uniform.Bounds().Dx() != 8 || uniform.Bounds().Dy() != 6 {
		t.Errorf("fallback crop bounds = %v", uniform.Bounds())
	}
}

func TestResolveDataDir_InstallRoot(t *testing.T) {
	root := t.TempDir()
	want := filepath.Join(root, defaultDataDir)
	writePNG(t, filepath.Join(want, "mask.png"), image.NewNRGBA(image.Rect(0, 0, 1, 1)))
	t.Setenv("MAA_INSTALL_ROOT", root)

	if got := resolveDataDir("mask.png"); got != want {
		t.Errorf("resolveDataDir = %s, want %s", got, want)
	}
}

func TestScoreImage_MatchingPainting(t *testing.T) {
	t.Cleanup(resetState)
	raw := fmt.Sprintf(`{"reference":%q}`, referencePNG(t))

	report, err := scoreImage(raw, screenshot(true), image.Rect(100, 100, 150, 150))
	if err != nil {
		t.Fatalf("scoreImage: %v", err)
	}
	if !report.Passed || report.Score < 99.999 {
		t.Errorf("score = %v passed = %v", report.Score, report.Passed)
	}
	if report.ID == "" || report.Variant != scoring.VariantZones {
		t.Errorf("report = %+v", report)
	}

	last, ok := getLastReport()
	if !ok || last.ID != report.ID {
		t.Errorf("last report = %+v, %v", last, ok)
	}
	if !strings.Contains(report.Message(), "pass") {
		t.Errorf("message = %q", report.Message())
	}

	again, err := scoreImage(raw, screenshot(true), image.Rect(100, 100, 150, 150))
	if err != nil {
		t.Fatalf("second scoreImage: %v", err)
	}
	if again.Score != report.Score || again.ID == report.ID {
		t.Errorf("cached engine changed the result: %v vs %v", again.Score, report.Score)
	}
}

func TestScoreImage_BlankCanvas(t *testing.T) {
	t.Cleanup(resetState)
	raw := fmt.Sprintf(`{"reference":%q,"variant":"cloud_grid"}`, referencePNG(t))

	report, err := scoreImage(raw, screenshot(false), image.Rect(100, 100, 150, 150))
	if err != nil {
		t.Fatalf("scoreImage: %v", err)
	}
	if report.Passed || report.Score != 0 || report.Reason != scoring.ReasonInsufficientInput {
		t.Errorf("report = %+v", report)
	}
	if !strings.Contains(report.Message(), "not enough") {
		t.Errorf("message = %q", report.Message())
	}
}

func TestScoreImage_MissingReference(t *testing.T) {
	t.Cleanup(resetState)
	raw := fmt.Sprintf(`{"reference":%q}`, filepath.Join(t.TempDir(), "missing.png"))
	if _, err := scoreImage(raw, screenshot(true), image.Rect(0, 0, 50, 50)); err == nil {
		t.Error("missing reference should fail")
	}
}

func TestResetState(t *testing.T) {
	setLastReport(Report{ID: "x"})
	resetState()
	if _, ok := getLastReport(); ok {
		t.Error("reset should drop the last report")
	}
}

func TestBranchParams_Next(t *testing.T) {
	p := branchParams{NextOnPass: "Pay", NextOnFail: "Retry", NextOnInsufficient: "Prompt"}
	cases := []struct {
		name   string
		report Report
		ok     bool
		want   string
	}{
		{"passed", Report{Passed: true, Reason: scoring.ReasonOK}, true, "Pay"},
		{"failed", Report{Reason: scoring.ReasonOK}, true, "Retry"},
		{"insufficient", Report{Reason: scoring.ReasonInsufficientInput}, true, "Prompt"},
		{"no report", Report{}, false, "Prompt"},
	}
	for _, tc := range cases {
		if got := p.next(tc.report, tc.ok); got != tc.want {
			t.Errorf("%s: next = %q, want %q", tc.name, got, tc.want)
		}
	}

	fallback := branchParams{NextOnFail: "Retry"}
	if got := fallback.next(Report{}, false); got != "Retry" {
		t.Errorf("insufficient without target should fall back to fail, got %q", got)
	}
}

func TestEngineFor_BuildsOutsideStateLock(t *testing.T) {
	resetState()
	t.Cleanup(resetState)

	newZones := func() (*scoring.Engine, error) {
		return scoring.NewEngine(scoring.DefaultConfig(), scoring.VariantZones, raster.New(10, 10))
	}

	var inner *engineEntry
	outer, err := engineFor("k", func() (*scoring.Engine, error) {
		// Report access must not block while an engine is being built.
		setLastReport(Report{})
		if _, ok := getLastReport(); !ok {
			t.Error("report not stored during build")
		}
		var err error
		inner, err = engineFor("k", newZones)
		if err != nil {
			return nil, err
		}
		return newZones()
	})
	if err != nil {
		t.Fatalf("engineFor: %v", err)
	}
	if outer != inner {
		t.Error("racing build replaced the engine stored first")
	}

	again, err := engineFor("k", func() (*scoring.Engine, error) {
		t.Error("cached key rebuilt")
		return newZones()
	})
	if err != nil || again != outer {
		t.Errorf("second lookup = %p, %v; want %p", again, err, outer)
	}
}

package maskscore

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"sync"

	xdraw "golang.org/x/image/draw"
)

// defaultDataDir holds reference and base images, relative to the install root.
const defaultDataDir = "resource/data/maskquerade"

var (
	imageMu    sync.Mutex
	imageCache = map[string]image.Image{}
)

// loadImage decodes a PNG from the data directory, caching by resolved path.
// Absolute names are used as-is.
func loadImage(name string) (image.Image, error) {
	path := name
	if !filepath.IsAbs(name) {
		path = filepath.Join(resolveDataDir(name), name)
	}

	imageMu.Lock()
	defer imageMu.Unlock()
	if img, ok := imageCache[path]; ok {
		return img, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := decodePNG(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	imageCache[path] = img
	msLog.Info().
		Str("path", path).
		Int("width", img.Bounds().Dx()).
		Int("height", img.Bounds().Dy()).
		Msg("image loaded")
	return img, nil
}

func decodePNG(r io.Reader) (image.Image, error) {
	return png.Decode(r)
}

func clearImageCache() {
	imageMu.Lock()
	defer imageMu.Unlock()
	imageCache = map[string]image.Image{}
}

// resolveDataDir prefers MAA_INSTALL_ROOT, then walks up from the executable,
// and falls back to the working directory. The first directory holding name
// wins.
func resolveDataDir(name string) string {
	if base := os.Getenv("MAA_INSTALL_ROOT"); base != "" {
		dir := filepath.Join(base, defaultDataDir)
		if fileExists(filepath.Join(dir, name)) {
			return dir
		}
	}

	if exe, err := os.Executable(); err == nil && exe != "" {
		exeDir := filepath.Dir(exe)
		for i := 0; i < 4; i++ {
			dir := filepath.Join(exeDir, defaultDataDir)
			if fileExists(filepath.Join(dir, name)) {
				return dir
			}
			parent := filepath.Dir(exeDir)
			if parent == exeDir {
				break
			}
			exeDir = parent
		}
	}

	cwd, err := os.Getwd()
	if err != nil {
		return defaultDataDir
	}
	dir := filepath.Join(cwd, defaultDataDir)
	if fileExists(filepath.Join(dir, name)) {
		return dir
	}
	assets := filepath.Join(cwd, "assets", defaultDataDir)
	if fileExists(filepath.Join(assets, name)) {
		return assets
	}
	return dir
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// scaleTo resizes img to w x h with nearest-neighbour sampling, which keeps
// palette colours exact instead of blending them at shape edges.
func scaleTo(img image.Image, w, h int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return dst
}

// roiRect converts an x, y, w, h box to a rectangle clipped to bounds. An
// empty box selects the whole image.
func roiRect(x, y, w, h int, bounds image.Rectangle) image.Rectangle {
	if w <= 0 || h <= 0 {
		return bounds
	}
	return image.Rect(x, y, x+w, y+h).Intersect(bounds)
}

// cropROI extracts a sub-image for the given rectangle.
func cropROI(img image.Image, roi image.Rectangle) image.Image {
	type subImager interface {
		SubImage(r image.Rectangle) image.Image
	}
	if si, ok := img.(subImager); ok {
		return si.SubImage(roi)
	}
	dst := image.NewNRGBA(image.Rect(0, 0, roi.Dx(), roi.Dy()))
	xdraw.Draw(dst, dst.Bounds(), img, roi.Min, xdraw.Src)
	return dst
}

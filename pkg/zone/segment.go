package zone

import (
	"fmt"
	"image"

	"github.com/Maskquerade/Maskquerade/agent/go-service/pkg/points"
	"github.com/Maskquerade/Maskquerade/agent/go-service/pkg/raster"
)

// Zone is an 8-connected blob of one colour class in the reference.
type Zone struct {
	Name       string
	Class      int
	Core       image.Rectangle // tight bounding box
	Bounds     image.Rectangle // Core padded and clipped to the raster
	Centroid   points.Point
	PixelCount int
	Pixels     []image.Point
	Image      *raster.Raster // reference pixels cropped to Core
}

var neighbours = [8]image.Point{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// Segment flood-fills ref into zones. Blobs smaller than MinShapePixels are
// dropped. Zones are returned in row-major order of their first pixel.
func Segment(ref *raster.Raster, p raster.Palette, opts Options) []Zone {
	w, h := ref.Width(), ref.Height()
	classes := make([]int, w*h)
	ref.Each(func(x, y int, c raster.Color) {
		class, ok := p.Classify(c, raster.ReferenceAlpha)
		if !ok {
			class = -1
		}
		classes[y*w+x] = class
	})

	visited := make([]bool, w*h)
	perClass := make([]int, len(p.Classes))
	var zones []Zone
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			if visited[idx] {
				continue
			}
			visited[idx] = true
			class := classes[idx]
			if class < 0 {
				continue
			}

			blob := fill(classes, visited, w, h, x, y, class)
			if len(blob) < max(opts.MinShapePixels, 1) {
				continue
			}
			perClass[class]++
			name := fmt.Sprintf("%s_%d", p.Classes[class].Name, perClass[class])
			zones = append(zones, newZone(ref, name, class, blob, opts.Padding))
		}
	}
	return zones
}

// fill collects the blob containing (sx, sy). Neighbours are marked visited
// when queued, so every pixel enters the queue at most once.
func fill(classes []int, visited []bool, w, h, sx, sy, class int) []image.Point {
	queue := []image.Point{{X: sx, Y: sy}}
	var blob []image.Point
	for len(queue) > 0 {
		pt := queue[0]
		queue = queue[1:]
		blob = append(blob, pt)

		for _, d := range neighbours {
			nx, ny := pt.X+d.X, pt.Y+d.Y
			if nx < 0 || ny < 0 || nx >= w || ny >= h {
				continue
			}
			ni := ny*w + nx
			if visited[ni] || classes[ni] != class {
				continue
			}
			visited[ni] = true
			queue = append(queue, image.Point{X: nx, Y: ny})
		}
	}
	return blob
}

func newZone(ref *raster.Raster, name string, class int, blob []image.Point, padding int) Zone {
	core := image.Rect(blob[0].X, blob[0].Y, blob[0].X+1, blob[0].Y+1)
	var sx, sy float64
	for _, pt := range blob {
		core = core.Union(image.Rect(pt.X, pt.Y, pt.X+1, pt.Y+1))
		sx += float64(pt.X)
		sy += float64(pt.Y)
	}
	n := float64(len(blob))
	return Zone{
		Name:       name,
		Class:      class,
		Core:       core,
		Bounds:     core.Inset(-padding).Intersect(ref.Bounds()),
		Centroid:   points.Point{X: sx / n, Y: sy / n},
		PixelCount: len(blob),
		Pixels:     blob,
		Image:      ref.Crop(core),
	}
}

// ExpandMask marks every pixel within radius of a classified reference pixel.
func ExpandMask(ref *raster.Raster, p raster.Palette, radius float64) *raster.Mask {
	m := raster.NewMask(ref.Width(), ref.Height())
	r := int(radius)
	if radius < 0 {
		r = 0
	}
	r2 := radius * radius
	var offsets []image.Point
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if float64(dx*dx+dy*dy) <= r2 || (dx == 0 && dy == 0) {
				offsets = append(offsets, image.Point{X: dx, Y: dy})
			}
		}
	}

	ref.Each(func(x, y int, c raster.Color) {
		if _, ok := p.Classify(c, raster.ReferenceAlpha); !ok {
			return
		}
		for _, o := range offsets {
			m.Set(x+o.X, y+o.Y, true)
		}
	})
	return m
}

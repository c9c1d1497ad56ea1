// Package quadrant compares rasters through per-cell paint histograms.
package quadrant

import (
	"errors"

	"github.com/Maskquerade/Maskquerade/agent/go-service/pkg/raster"
)

// ErrDivisions is returned for a non-positive grid size.
var ErrDivisions = errors.New("grid divisions must be positive")

// NoColor marks a cell without classified paint.
const NoColor = -1

// Grid holds per-cell pixel counts of a raster split into Divisions x
// Divisions cells. The last row and column absorb the remainder.
type Grid struct {
	Divisions   int
	Width       int
	Height      int
	Counts      []int   // classified pixels per cell
	ClassCounts [][]int // per cell, per palette class
	Dominant    []int   // class index with the highest count, NoColor when empty
}

// Build counts the classified pixels of r into a grid.
func Build(r *raster.Raster, p raster.Palette, divisions int, minAlpha float64) (*Grid, error) {
	if divisions <= 0 {
		return nil, ErrDivisions
	}
	cells := divisions * divisions
	g := &Grid{
		Divisions:   divisions,
		Width:       r.Width(),
		Height:      r.Height(),
		Counts:      make([]int, cells),
		ClassCounts: make([][]int, cells),
		Dominant:    make([]int, cells),
	}
	for i := range g.ClassCounts {
		g.ClassCounts[i] = make([]int, len(p.Classes))
	}

	cellW := max(1, r.Width()/divisions)
	cellH := max(1, r.Height()/divisions)
	r.Each(func(x, y int, c raster.Color) {
		class, ok := p.Classify(c, minAlpha)
		if !ok {
			return
		}
		cx := min(x/cellW, divisions-1)
		cy := min(y/cellH, divisions-1)
		idx := cy*divisions + cx
		g.Counts[idx]++
		g.ClassCounts[idx][class]++
	})

	for i, counts := range g.ClassCounts {
		g.Dominant[i] = dominant(counts)
	}
	return g, nil
}

// dominant walks classes in declaration order so the first declared class
// wins ties.
func dominant(counts []int) int {
	best := NoColor
	bestCount := 0
	for class, n := range counts {
		if n > bestCount {
			best = class
			bestCount = n
		}
	}
	return best
}

// Cell returns the count of cell (cx, cy).
func (g *Grid) Cell(cx, cy int) int {
	if cx < 0 || cy < 0 || cx >= g.Divisions || cy >= g.Divisions {
		return 0
	}
	return g.Counts[cy*g.Divisions+cx]
}

// Total returns the number of classified pixels in the grid.
func (g *Grid) Total() int {
	n := 0
	for _, c := range g.Counts {
		n += c
	}
	return n
}

// MaxCount returns the largest cell count.
func (g *Grid) MaxCount() int {
	m := 0
	for _, c := range g.Counts {
		m = max(m, c)
	}
	return m
}

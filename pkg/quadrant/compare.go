package quadrant

import (
	"math"

	"github.com/Maskquerade/Maskquerade/agent/go-service/pkg/grade"
)

// Options tunes Compare.
type Options struct {
	// EmptyThreshold is the reference count below which a cell is empty.
	EmptyThreshold int
	// SignificantThreshold is the player count above which paint in an empty
	// cell is a violation.
	SignificantThreshold int
	// EmptyPenalty is the percentage of penalty a full-strength violation costs.
	EmptyPenalty float64
	// ColorAware scales the score by how many cells carry the right colour.
	ColorAware bool
}

// DefaultOptions returns the stock thresholds.
func DefaultOptions() Options {
	return Options{
		EmptyThreshold:       10,
		SignificantThreshold: 50,
		EmptyPenalty:         50,
		ColorAware:           true,
	}
}

const (
	activeCellWeight = 1.0
	quietCellWeight  = 0.3
	activeCellNorm   = 0.1
)

// Violation records paint in a cell the reference leaves empty.
type Violation struct {
	Cell        int `json:"cell"`
	PlayerCount int `json:"player_count"`
}

// Result is the outcome of Compare. All scores are percentages.
type Result struct {
	Location          float64     `json:"location"`
	ColorAccuracy     float64     `json:"color_accuracy"`
	ColorMultiplier   float64     `json:"color_multiplier"`
	PenaltyMultiplier float64     `json:"penalty_multiplier"`
	Violations        []Violation `json:"violations,omitempty"`
	Score             float64     `json:"score"`
}

// Compare scores player against ref cell by cell. Both grids must share the
// same number of divisions.
func Compare(ref, player *Grid, opts Options) Result {
	res := Result{ColorMultiplier: 1, PenaltyMultiplier: 1, ColorAccuracy: 1}
	if ref == nil || player == nil || ref.Divisions != player.Divisions {
		return Result{}
	}

	maxRef := float64(ref.MaxCount())
	maxPlayer := float64(player.MaxCount())

	var weighted, weights, penalty float64
	for i := range ref.Counts {
		rc := ref.Counts[i]
		pc := player.Counts[i]

		if rc < opts.EmptyThreshold && pc > opts.SignificantThreshold {
			res.Violations = append(res.Violations, Violation{Cell: i, PlayerCount: pc})
			penalty += grade.Ratio(float64(pc), maxPlayer) * (opts.EmptyPenalty / 100)
			continue
		}

		refNorm := grade.Ratio(float64(rc), maxRef)
		playerNorm := grade.Ratio(float64(pc), maxPlayer)
		cellScore := 1 - math.Min(math.Abs(refNorm-playerNorm), 1)
		w := quietCellWeight
		if refNorm > activeCellNorm {
			w = activeCellWeight
		}
		weighted += cellScore * w
		weights += w
	}

	res.Location = grade.Ratio(weighted, weights) * 100
	res.PenaltyMultiplier = 1 - math.Min(math.Max(penalty, 0), 1)

	if opts.ColorAware {
		painted, correct := 0, 0
		for i := range ref.Counts {
			if ref.Counts[i] == 0 {
				continue
			}
			painted++
			if player.Dominant[i] == ref.Dominant[i] {
				correct++
			}
		}
		if painted > 0 {
			res.ColorAccuracy = float64(correct) / float64(painted)
		}
		res.ColorMultiplier = 0.5 + 0.5*res.ColorAccuracy
	}

	res.Score = grade.Clamp(res.Location * res.ColorMultiplier * res.PenaltyMultiplier)
	return res
}

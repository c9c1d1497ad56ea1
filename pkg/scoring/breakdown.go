package scoring

import (
	"github.com/Maskquerade/Maskquerade/agent/go-service/pkg/grade"
	"github.com/Maskquerade/Maskquerade/agent/go-service/pkg/quadrant"
	"github.com/Maskquerade/Maskquerade/agent/go-service/pkg/zone"
)

// Reason explains a breakdown.
type Reason string

const (
	ReasonOK                Reason = "ok"
	ReasonInsufficientInput Reason = "insufficient_input"
)

// Breakdown is the result of one scoring call. Sub-scores a variant does not
// produce stay at zero.
type Breakdown struct {
	Variant  Variant `json:"variant"`
	Shape    float64 `json:"shape"`
	Location float64 `json:"location"`
	Size     float64 `json:"size"`
	Quadrant float64 `json:"quadrant"`
	Zone     float64 `json:"zone"`
	Final    float64 `json:"final"`
	Passed   bool    `json:"passed"`
	Reason   Reason  `json:"reason"`

	Zones    []zone.Score     `json:"zones,omitempty"`
	Grid     *quadrant.Result `json:"grid,omitempty"`
	Distance float64          `json:"distance,omitempty"`
}

// Err returns ErrInsufficientInput for a breakdown that could not be scored
// for lack of drawing, and nil otherwise.
func (b Breakdown) Err() error {
	if b.Reason == ReasonInsufficientInput {
		return ErrInsufficientInput
	}
	return nil
}

// Combine returns the weighted sum of the sub-scores of b, clamped to [0, 100].
func Combine(w Weights, b Breakdown) float64 {
	return grade.Clamp(w.Shape*b.Shape +
		w.Location*b.Location +
		w.Size*b.Size +
		w.Quadrant*b.Quadrant +
		w.Zone*b.Zone)
}

// Passed reports whether final reaches threshold.
func Passed(final, threshold float64) bool {
	return final >= threshold
}

package maskscore

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Maskquerade/Maskquerade/agent/go-service/pkg/scoring"
)

// Report is the Detail of a MaskScore hit and what MaskScoreReport shows.
type Report struct {
	ID        string            `json:"id"`
	Reference string            `json:"reference"`
	Variant   scoring.Variant   `json:"variant"`
	Score     float64           `json:"score"`
	Passed    bool              `json:"passed"`
	Reason    scoring.Reason    `json:"reason"`
	Breakdown scoring.Breakdown `json:"breakdown"`
	CreatedAt time.Time         `json:"created_at"`
}

func newReport(reference string, b scoring.Breakdown) Report {
	return Report{
		ID:        uuid.NewString(),
		Reference: reference,
		Variant:   b.Variant,
		Score:     b.Final,
		Passed:    b.Passed,
		Reason:    b.Reason,
		Breakdown: b,
		CreatedAt: time.Now(),
	}
}

// Message renders the report for the UI focus panel.
func (r Report) Message() string {
	if errors.Is(r.Breakdown.Err(), scoring.ErrInsufficientInput) {
		return fmt.Sprintf("Mask %s: not enough paint to score", r.Reference)
	}
	verdict := "fail"
	if r.Passed {
		verdict = "pass"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Mask %s: %.1f (%s)", r.Reference, r.Score, verdict)
	b := r.Breakdown
	switch r.Variant {
	case scoring.VariantCloudGrid:
		fmt.Fprintf(&sb, "\nshape %.1f, quadrant %.1f", b.Shape, b.Quadrant)
	case scoring.VariantHuMoment:
		fmt.Fprintf(&sb, "\nshape %.1f, location %.1f, size %.1f", b.Shape, b.Location, b.Size)
	default:
		for _, z := range b.Zones {
			fmt.Fprintf(&sb, "\n%s: %.1f (%s)", z.Zone, z.Total, z.Tier)
		}
	}
	return sb.String()
}

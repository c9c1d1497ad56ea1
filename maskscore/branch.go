package maskscore

import (
	"strings"

	"github.com/MaaXYZ/maa-framework-go/v4"
	"github.com/bytedance/sonic"

	"github.com/Maskquerade/Maskquerade/agent/go-service/pkg/scoring"
)

type branchParams struct {
	NextOnPass         string `json:"next_on_pass"`
	NextOnFail         string `json:"next_on_fail"`
	NextOnInsufficient string `json:"next_on_insufficient"`
}

// MaskScoreBranchAction routes the pipeline on the verdict of the latest
// report. Empty targets keep the node's own next list.
type MaskScoreBranchAction struct{}

// Run implements maa.CustomActionRunner.
func (a *MaskScoreBranchAction) Run(ctx *maa.Context, arg *maa.CustomActionArg) bool {
	var params branchParams
	if raw := strings.TrimSpace(arg.CustomActionParam); raw != "" {
		if err := sonic.UnmarshalString(raw, &params); err != nil {
			msLog.Error().Err(err).Str("raw_param", raw).Msg("failed to parse branch params")
			return false
		}
	}

	report, ok := getLastReport()
	next := params.next(report, ok)
	if next == "" {
		msLog.Debug().Bool("has_report", ok).Msg("no branch target, keeping default next")
		return true
	}

	if err := ctx.OverrideNext(arg.CurrentTaskName, []maa.NextItem{{Name: next}}); err != nil {
		msLog.Error().
			Err(err).
			Str("task", arg.CurrentTaskName).
			Str("next", next).
			Msg("failed to override next node")
		return false
	}
	msLog.Info().
		Str("id", report.ID).
		Str("next", next).
		Msg("mask score branch")
	return true
}

// next picks the target node. A missing report counts as insufficient paint.
func (p branchParams) next(report Report, ok bool) string {
	switch {
	case !ok || report.Reason == scoring.ReasonInsufficientInput:
		if p.NextOnInsufficient != "" {
			return p.NextOnInsufficient
		}
		return p.NextOnFail
	case report.Passed:
		return p.NextOnPass
	default:
		return p.NextOnFail
	}
}

package maskscore

import (
	"github.com/MaaXYZ/maa-framework-go/v4"

	"github.com/Maskquerade/Maskquerade/agent/go-service/pkg/maafocus"
)

// MaskScoreReportAction shows the latest MaskScore report in the UI.
type MaskScoreReportAction struct{}

// Run implements maa.CustomActionRunner.
func (a *MaskScoreReportAction) Run(ctx *maa.Context, arg *maa.CustomActionArg) bool {
	report, ok := getLastReport()
	if !ok {
		msLog.Warn().Str("task", arg.CurrentTaskName).Msg("no mask score to report")
		return true
	}
	if err := maafocus.NodeActionStarting(ctx, report.Message()); err != nil {
		msLog.Warn().Err(err).Str("id", report.ID).Msg("failed to show report")
	}
	msLog.Info().
		Str("id", report.ID).
		Float64("score", report.Score).
		Msg("mask score reported")
	return true
}

// MaskScoreResetAction drops cached engines, images and the last report so
// the next recognition reloads everything.
type MaskScoreResetAction struct{}

// Run implements maa.CustomActionRunner.
func (a *MaskScoreResetAction) Run(ctx *maa.Context, arg *maa.CustomActionArg) bool {
	resetState()
	msLog.Info().Str("task", arg.CurrentTaskName).Msg("mask score state reset")
	return true
}

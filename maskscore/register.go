package maskscore

import "github.com/MaaXYZ/maa-framework-go/v4"

var (
	_ maa.CustomRecognitionRunner = &MaskScoreRecognition{}
	_ maa.CustomActionRunner      = &MaskScoreReportAction{}
	_ maa.CustomActionRunner      = &MaskScoreResetAction{}
	_ maa.CustomActionRunner      = &MaskScoreBranchAction{}
	_ maa.TaskerEventSink         = &SessionSink{}
)

// Register registers the mask scoring recognition, its actions and the
// session sink.
func Register() {
	maa.AgentServerRegisterCustomRecognition("MaskScore", &MaskScoreRecognition{})
	maa.AgentServerRegisterCustomAction("MaskScoreReport", &MaskScoreReportAction{})
	maa.AgentServerRegisterCustomAction("MaskScoreReset", &MaskScoreResetAction{})
	maa.AgentServerRegisterCustomAction("MaskScoreBranch", &MaskScoreBranchAction{})
	maa.AgentServerAddTaskerSink(&SessionSink{})
}

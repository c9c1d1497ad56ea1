package maskscore

import "github.com/MaaXYZ/maa-framework-go/v4"

// SessionSink forgets the previous report whenever a task starts, so a
// report never leaks from one painting session into the next.
type SessionSink struct{}

// OnTaskerTask handles tasker task events.
func (s *SessionSink) OnTaskerTask(tasker *maa.Tasker, event maa.EventStatus, detail maa.TaskerTaskDetail) {
	if event != maa.EventStatusStarting {
		return
	}
	clearLastReport()
	msLog.Debug().
		Uint64("task_id", detail.TaskID).
		Str("entry", detail.Entry).
		Msg("task starting, last mask score cleared")
}

// Package maafocus pushes text to the MaaFramework UI focus panel.
package maafocus

import (
	"errors"

	"github.com/MaaXYZ/maa-framework-go/v4"
)

const nodeName = "_MASKQUERADE_FOCUS_"

var (
	// ErrNilContext indicates the provided context is nil.
	ErrNilContext = errors.New("context is nil")
	// ErrStopping indicates the tasker is stopping and nothing was shown.
	ErrStopping = errors.New("tasker is stopping")
)

// NodeActionStarting shows content on the UI when the focus node starts.
func NodeActionStarting(ctx *maa.Context, content string) error {
	if ctx == nil {
		return ErrNilContext
	}
	if Stopping(ctx) {
		return ErrStopping
	}

	pp := maa.NewPipeline()
	pp.AddNode(maa.NewNode(nodeName,
		maa.WithFocus(map[string]any{
			maa.EventNodeAction.Starting(): content,
		}),
		maa.WithPreDelay(0),
		maa.WithPostDelay(0),
	))
	_, err := ctx.RunTask(nodeName, pp)
	return err
}

// Stopping reports whether the tasker behind ctx is stopping or gone.
func Stopping(ctx *maa.Context) bool {
	if ctx == nil {
		return true
	}
	t := ctx.GetTasker()
	if t == nil {
		return true
	}
	return t.Stopping() || !t.Running()
}

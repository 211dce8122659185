package datarecording

import (
	"time"

	"github.com/speedkit/minishsplit/splitter"
)

// Table names used by the split recorder.
const (
	runTable   = "runs"
	splitTable = "splits"
)

// RunEntry is one detected run start.
type RunEntry struct {
	RunID     string
	StartedAt int64
}

// SplitEntry is one fired split.
type SplitEntry struct {
	RunID       string
	Label       string
	Frame       int64
	GameTimeSec float64
	RecordedAt  int64
}

// A SplitRecorder is a hook that persists run starts and fired splits
// through a DataRecorder.
type SplitRecorder struct {
	recorder DataRecorder
}

// NewSplitRecorder creates a SplitRecorder and its tables.
func NewSplitRecorder(recorder DataRecorder) *SplitRecorder {
	recorder.CreateTable(runTable, RunEntry{})
	recorder.CreateTable(splitTable, SplitEntry{})

	return &SplitRecorder{recorder: recorder}
}

// Func records run starts and splits. Splits are flushed immediately so a
// crash cannot lose a finished run's rows.
func (r *SplitRecorder) Func(ctx splitter.HookCtx) {
	switch ctx.Pos {
	case splitter.HookPosRunStart:
		info, ok := ctx.Item.(splitter.SplitInfo)
		if !ok {
			return
		}

		r.recorder.InsertData(runTable, RunEntry{
			RunID:     info.RunID,
			StartedAt: time.Now().Unix(),
		})
		r.recorder.Flush()
	case splitter.HookPosSplit:
		info, ok := ctx.Item.(splitter.SplitInfo)
		if !ok {
			return
		}

		r.recorder.InsertData(splitTable, SplitEntry{
			RunID:       info.RunID,
			Label:       info.Label,
			Frame:       info.Frame,
			GameTimeSec: info.GameTime.Seconds(),
			RecordedAt:  time.Now().Unix(),
		})
		r.recorder.Flush()
	}
}

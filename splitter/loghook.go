package splitter

import "log"

// LogHookBase provides the common logic for all hooks that write to a
// logger.
type LogHookBase struct {
	*log.Logger
}

// A SplitLogger is a hook that writes run starts and fired splits to a
// logger for diagnostics.
type SplitLogger struct {
	LogHookBase
}

// NewSplitLogger returns a SplitLogger that writes to the given logger.
func NewSplitLogger(logger *log.Logger) *SplitLogger {
	h := new(SplitLogger)
	h.Logger = logger

	return h
}

// Func writes the hook information into the logger.
func (h *SplitLogger) Func(ctx HookCtx) {
	switch ctx.Pos {
	case HookPosRunStart:
		info, ok := ctx.Item.(SplitInfo)
		if !ok {
			return
		}

		h.Printf("run %s started", info.RunID)
	case HookPosSplitArmed:
		info, ok := ctx.Item.(SplitInfo)
		if !ok {
			return
		}

		h.Printf("run %s armed %q for frame %d",
			info.RunID, info.Label, info.Frame)
	case HookPosSplit:
		info, ok := ctx.Item.(SplitInfo)
		if !ok {
			return
		}

		h.Printf("run %s split %q at frame %d (%s)",
			info.RunID, info.Label, info.Frame, info.GameTime)
	}
}

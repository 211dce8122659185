package splitter

import "time"

// TimerState is the state of the external timer.
type TimerState int

// The states an external timer can be in.
const (
	TimerNotRunning TimerState = iota
	TimerRunning
	TimerPaused
	TimerEnded
)

// String returns a human-readable name for the state.
func (s TimerState) String() string {
	switch s {
	case TimerNotRunning:
		return "NotRunning"
	case TimerRunning:
		return "Running"
	case TimerPaused:
		return "Paused"
	case TimerEnded:
		return "Ended"
	default:
		return "Unknown"
	}
}

// A Timer is the external timing application the splitter reports to. The
// splitter drives game time explicitly and never reads it back.
type Timer interface {
	// State returns the current timer state.
	State() TimerState

	// Start starts the timer for a new run.
	Start()

	// PauseGameTime tells the timer that game time is driven explicitly
	// through SetGameTime rather than by the wall clock.
	PauseGameTime()

	// SetGameTime sets the elapsed in-game time.
	SetGameTime(t time.Duration)

	// Split signals that the current milestone boundary has been reached.
	Split()

	// SetVariable sets an informational display variable.
	SetVariable(name, value string)

	// SetVariableInt sets an informational display variable from an integer.
	SetVariableInt(name string, value int)
}

package splitter

// A DelayedSplit is an optional pending (label, due-frame) pair for
// milestones whose visible signal must lag the triggering memory event by a
// fixed number of frames. At most one split can be pending at a time; arming
// a new one replaces the old one.
type DelayedSplit struct {
	label    string
	dueFrame int64
	pending  bool
}

// Arm schedules label to fire once the frame count reaches dueFrame.
func (d *DelayedSplit) Arm(label string, dueFrame int64) {
	d.label = label
	d.dueFrame = dueFrame
	d.pending = true
}

// Pending reports whether a split is waiting to fire.
func (d *DelayedSplit) Pending() bool {
	return d.pending
}

// ConsumeDue returns the pending label and clears it if the given frame
// count has reached the due frame. A pending split is consumed exactly once.
func (d *DelayedSplit) ConsumeDue(frame int64) (string, bool) {
	if !d.pending || frame < d.dueFrame {
		return "", false
	}

	d.pending = false

	return d.label, true
}

// Clear discards any pending split. Called on run reset.
func (d *DelayedSplit) Clear() {
	d.pending = false
}

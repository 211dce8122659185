package splitter

import "time"

// FramesPerSecond is the fixed rate the game advances its frame counter at.
const FramesPerSecond = 60

// A FrameClock converts a 16-bit wrapping frame counter into a monotonic
// 64-bit frame count. The narrow counter increases while the game is
// unpaused and wraps at 65536; the clock assumes at most one wrap between
// two observations.
type FrameClock struct {
	accumulated int64
}

// Observe folds one tick's counter pair into the accumulator. The counter
// never decreases on its own, so current < old can only mean a wrap.
func (c *FrameClock) Observe(frames Pair[uint16]) {
	if frames.Current < frames.Old {
		c.accumulated += int64(frames.Old) + 1
	}
}

// Count returns the logical frame count given the current narrow counter
// value.
func (c *FrameClock) Count(current uint16) int64 {
	return c.accumulated + int64(current)
}

// SyncToZero rebases the accumulator so that Count(current) is exactly zero.
// Called at the instant a new run is detected.
func (c *FrameClock) SyncToZero(current uint16) {
	c.accumulated = -int64(current)
}

// GameTime converts a logical frame count to a duration at the fixed
// 60-frames-per-second rate.
func GameTime(frames int64) time.Duration {
	return time.Duration(frames) * time.Second / FramesPerSecond
}

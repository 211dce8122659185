package splitter

import "time"

// HookPos defines the enum of possible hooking positions
type HookPos struct {
	Name string
}

// HookPosTick is a hook position that triggers at the end of every tick that
// had complete data.
var HookPosTick = &HookPos{Name: "Tick"}

// HookPosRunStart is a hook position that triggers when a new run is
// detected.
var HookPosRunStart = &HookPos{Name: "RunStart"}

// HookPosSplit is a hook position that triggers when a split fires.
var HookPosSplit = &HookPos{Name: "Split"}

// HookPosSplitArmed is a hook position that triggers when a delayed split is
// armed.
var HookPosSplitArmed = &HookPos{Name: "SplitArmed"}

// HookCtx is the context that holds all the information about the site that a
// hook is triggered
type HookCtx struct {
	Domain Hookable
	Pos    *HookPos
	Item   interface{}
}

// Hookable defines an object that accept Hooks
type Hookable interface {
	// AcceptHook registers a hook
	AcceptHook(hook Hook)
}

// Hook is a short piece of program that can be invoked by a hookable object.
type Hook interface {
	// Func determines what to do if hook is invoked.
	Func(ctx HookCtx)
}

// A HookableBase provides some utility function for other type that implement
// the Hookable interface.
type HookableBase struct {
	Hooks []Hook
}

// AcceptHook register a hook
func (h *HookableBase) AcceptHook(hook Hook) {
	h.Hooks = append(h.Hooks, hook)
}

// InvokeHook triggers the registered Hooks
func (h *HookableBase) InvokeHook(ctx HookCtx) {
	for _, hook := range h.Hooks {
		hook.Func(ctx)
	}
}

// SplitInfo describes one fired split. It is the Item of HookPosSplit and,
// with the due frame in Frame, of HookPosSplitArmed.
type SplitInfo struct {
	RunID    string
	Label    string
	Frame    int64
	GameTime time.Duration
}

// Status is a snapshot of the session at the end of a tick. It is the Item
// of HookPosTick.
type Status struct {
	RunID      string
	TimerState TimerState
	Frame      int64
	GameTime   time.Duration
	Variables  map[string]string
}

package tmc

import (
	"strconv"
	"strings"

	"github.com/rs/xid"
	"github.com/speedkit/minishsplit/gba"
	"github.com/speedkit/minishsplit/splitter"
)

// A Game is one attached splitter session. It owns every watcher, the frame
// clock, and the per-run progress state, and is driven by one Update call
// per host poll. The host never calls Update reentrantly.
type Game struct {
	splitter.HookableBase

	id       string
	emulator gba.Emulator
	settings Settings

	pauseMenu        *splitter.Watcher[PauseMenu]
	scene            *splitter.Watcher[Scene]
	dhcBigKey        *splitter.Watcher[int32]
	vaati3Phases     *splitter.Watcher[int32]
	sprite           *splitter.Watcher[Sprite]
	frameCounter     *splitter.Watcher[uint16]
	uiCursorX        *splitter.Watcher[int32]
	uiCursorY        *splitter.Watcher[int32]
	linkPositionY    *splitter.Watcher[uint16]
	visualRupees     *splitter.Watcher[uint16]
	visualHearts     *splitter.Watcher[uint8]
	visualKeys       *splitter.Watcher[uint8]
	tigerScrolls     *splitter.Watcher[uint8]
	mysteriousShells *splitter.Watcher[uint16]
	bombs            *splitter.Watcher[uint8]

	clock    splitter.FrameClock
	delayed  splitter.DelayedSplit
	progress runProgress
}

// runProgress holds the one-shot guards for enter-once milestones. All
// guards reset to false the tick a new run is detected and never reset
// otherwise, so re-entering an area within a run cannot re-split.
type runProgress struct {
	smithsSword         bool
	deepwoodShrine      bool
	deepwoodShrineBoss  bool
	mtCrenel            bool
	caveOfFlames        bool
	caveOfFlamesBoss    bool
	fortressOfWinds     bool
	fortressOfWindsBoss bool
	templeOfDroplets    bool
	palaceOfWinds       bool
}

// NewGame creates a session over an attached emulator.
func NewGame(emulator gba.Emulator, settings Settings) *Game {
	newScene := func(b []byte) Scene { return Scene(b[0]) }
	newSprite := func(b []byte) Sprite {
		return Sprite(uint16(b[0]) | uint16(b[1])<<8)
	}

	return &Game{
		id:       xid.New().String(),
		emulator: emulator,
		settings: settings,

		pauseMenu: splitter.NewWatcher(
			addrPauseMenu, pauseMenuSize, decodePauseMenu),
		scene:            splitter.NewWatcher(addrScene, 1, newScene),
		dhcBigKey:        splitter.NewI32Watcher(addrDHCBigKey),
		vaati3Phases:     splitter.NewI32Watcher(addrVaati3Phases),
		sprite:           splitter.NewWatcher(addrSprite, 2, newSprite),
		frameCounter:     splitter.NewU16Watcher(addrFrameCounter),
		uiCursorX:        splitter.NewI32Watcher(addrUICursorX),
		uiCursorY:        splitter.NewI32Watcher(addrUICursorY),
		linkPositionY:    splitter.NewU16Watcher(addrLinkPositionY),
		visualRupees:     splitter.NewU16Watcher(addrVisualRupees),
		visualHearts:     splitter.NewU8Watcher(addrVisualHearts),
		visualKeys:       splitter.NewU8Watcher(addrVisualKeys),
		tigerScrolls:     splitter.NewU8Watcher(addrTigerScrolls),
		mysteriousShells: splitter.NewU16Watcher(addrMysteriousShells),
		bombs:            splitter.NewU8Watcher(addrBombs),
	}
}

// ID returns the id of the current run.
func (g *Game) ID() string {
	return g.id
}

// Settings returns the milestone toggles the session was created with.
func (g *Game) Settings() Settings {
	return g.settings
}

// Attached reports whether the emulator process is still alive.
func (g *Game) Attached() bool {
	return g.emulator.IsOpen()
}

// Close releases the emulator handle.
func (g *Game) Close() error {
	return g.emulator.Close()
}

// vars is the complete set of observations for one tick. Rules may reference
// several fields at once, so a tick with partial data is as unusable as one
// with none.
type vars struct {
	pauseMenu        splitter.Pair[PauseMenu]
	scene            splitter.Pair[Scene]
	dhcBigKey        splitter.Pair[int32]
	vaati3Phases     splitter.Pair[int32]
	sprite           splitter.Pair[Sprite]
	frameCounter     splitter.Pair[uint16]
	uiCursorX        splitter.Pair[int32]
	uiCursorY        splitter.Pair[int32]
	linkPositionY    splitter.Pair[uint16]
	visualRupees     splitter.Pair[uint16]
	visualHearts     splitter.Pair[uint8]
	visualKeys       splitter.Pair[uint8]
	tigerScrolls     splitter.Pair[uint8]
	mysteriousShells splitter.Pair[uint16]
	bombs            splitter.Pair[uint8]
}

func (g *Game) updateVars() (*vars, bool) {
	v := &vars{}

	// Every watcher updates even when another one's read fails; only the
	// evaluation of the tick is skipped on incomplete data.
	updates := []func() bool{
		func() bool { return copyPair(&v.pauseMenu, g.pauseMenu.Update(g.emulator)) },
		func() bool { return copyPair(&v.scene, g.scene.Update(g.emulator)) },
		func() bool { return copyPair(&v.dhcBigKey, g.dhcBigKey.Update(g.emulator)) },
		func() bool { return copyPair(&v.vaati3Phases, g.vaati3Phases.Update(g.emulator)) },
		func() bool { return copyPair(&v.sprite, g.sprite.Update(g.emulator)) },
		func() bool { return copyPair(&v.frameCounter, g.frameCounter.Update(g.emulator)) },
		func() bool { return copyPair(&v.uiCursorX, g.uiCursorX.Update(g.emulator)) },
		func() bool { return copyPair(&v.uiCursorY, g.uiCursorY.Update(g.emulator)) },
		func() bool { return copyPair(&v.linkPositionY, g.linkPositionY.Update(g.emulator)) },
		func() bool { return copyPair(&v.visualRupees, g.visualRupees.Update(g.emulator)) },
		func() bool { return copyPair(&v.visualHearts, g.visualHearts.Update(g.emulator)) },
		func() bool { return copyPair(&v.visualKeys, g.visualKeys.Update(g.emulator)) },
		func() bool { return copyPair(&v.tigerScrolls, g.tigerScrolls.Update(g.emulator)) },
		func() bool { return copyPair(&v.mysteriousShells, g.mysteriousShells.Update(g.emulator)) },
		func() bool { return copyPair(&v.bombs, g.bombs.Update(g.emulator)) },
	}

	complete := true
	for _, update := range updates {
		if !update() {
			complete = false
		}
	}

	return v, complete
}

func copyPair[T any](dst *splitter.Pair[T], src *splitter.Pair[T]) bool {
	if src == nil {
		return false
	}

	*dst = *src

	return true
}

// Update runs one tick: read all tracked addresses, push the informational
// display variables, detect run start while the timer is idle, advance the
// frame clock and evaluate the split rules while it runs. At most one split
// is reported per tick.
func (g *Game) Update(timer splitter.Timer) {
	v, ok := g.updateVars()
	if !ok {
		return
	}

	variables := g.reportVariables(timer, v)

	switch timer.State() {
	case splitter.TimerNotRunning:
		if g.newGameConfirmed(v) {
			g.startRun(timer, v)
		}
	case splitter.TimerRunning, splitter.TimerPaused:
		g.clock.Observe(v.frameCounter)

		timer.SetGameTime(splitter.GameTime(g.frameCount(v)))

		if label, ok := g.shouldSplit(v); ok {
			info := splitter.SplitInfo{
				RunID:    g.id,
				Label:    label,
				Frame:    g.frameCount(v),
				GameTime: splitter.GameTime(g.frameCount(v)),
			}
			g.InvokeHook(splitter.HookCtx{
				Domain: g,
				Pos:    splitter.HookPosSplit,
				Item:   info,
			})

			timer.Split()
		}
	}

	g.InvokeHook(splitter.HookCtx{
		Domain: g,
		Pos:    splitter.HookPosTick,
		Item: splitter.Status{
			RunID:      g.id,
			TimerState: timer.State(),
			Frame:      g.frameCount(v),
			GameTime:   splitter.GameTime(g.frameCount(v)),
			Variables:  variables,
		},
	})
}

// frameCount returns the logical frame count for this tick.
func (g *Game) frameCount(v *vars) int64 {
	return g.clock.Count(v.frameCounter.Current)
}

// newGameConfirmed detects the file-select cursor gesture that stands in for
// "new game confirmed": cursor X at the fixed column, cursor Y resting last
// tick and below the resting row now.
func (g *Game) newGameConfirmed(v *vars) bool {
	return v.uiCursorX.Current == fileSelectCursorX &&
		v.uiCursorY.Old == fileSelectRestingY &&
		v.uiCursorY.Current > fileSelectRestingY
}

// startRun resets all per-run state transactionally and starts the external
// timer. The clock is rebased so the logical frame count is 0 on this tick,
// and game time is driven explicitly from then on.
func (g *Game) startRun(timer splitter.Timer, v *vars) {
	g.id = xid.New().String()
	g.clock.SyncToZero(v.frameCounter.Current)
	g.progress = runProgress{}
	g.delayed.Clear()

	timer.Start()
	timer.PauseGameTime()

	g.InvokeHook(splitter.HookCtx{
		Domain: g,
		Pos:    splitter.HookPosRunStart,
		Item:   splitter.SplitInfo{RunID: g.id},
	})
}

// reportVariables pushes the informational display fields. They are decoded
// every tick but take no part in the split logic.
func (g *Game) reportVariables(
	timer splitter.Timer,
	v *vars,
) map[string]string {
	hearts := formatHearts(v.visualHearts.Current)

	variables := map[string]string{
		"Hearts":            hearts,
		"Rupees":            strconv.Itoa(int(v.visualRupees.Current)),
		"Keys":              strconv.Itoa(int(v.visualKeys.Current)),
		"Tiger Scrolls":     strconv.Itoa(int(v.tigerScrolls.Current)),
		"Mysterious Shells": strconv.Itoa(int(v.mysteriousShells.Current)),
		"Bombs":             strconv.Itoa(int(v.bombs.Current)),
	}

	timer.SetVariable("Hearts", hearts)
	timer.SetVariableInt("Rupees", int(v.visualRupees.Current))
	timer.SetVariableInt("Keys", int(v.visualKeys.Current))
	timer.SetVariableInt("Tiger Scrolls", int(v.tigerScrolls.Current))
	timer.SetVariableInt("Mysterious Shells", int(v.mysteriousShells.Current))
	timer.SetVariableInt("Bombs", int(v.bombs.Current))

	return variables
}

// formatHearts renders a quarter-heart count the way the HUD shows it. The
// whole number is suppressed for a bare fraction below one heart.
func formatHearts(quarterHearts uint8) string {
	b := strings.Builder{}

	if quarterHearts < 1 || quarterHearts > 3 {
		b.WriteString(strconv.Itoa(int(quarterHearts / 4)))
	}

	switch quarterHearts % 4 {
	case 1:
		b.WriteString("¼")
	case 2:
		b.WriteString("½")
	case 3:
		b.WriteString("¾")
	}

	return b.String()
}

package tmc

import (
	"encoding/binary"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/speedkit/minishsplit/splitter"
)

// fakeEmulator serves reads from a zero-initialized sparse address space.
type fakeEmulator struct {
	data    map[uint32]byte
	open    bool
	failing bool
}

func newFakeEmulator() *fakeEmulator {
	return &fakeEmulator{data: make(map[uint32]byte), open: true}
}

func (e *fakeEmulator) ReadAt(address uint32, p []byte) error {
	if e.failing {
		return errors.New("memory temporarily unreadable")
	}

	for i := range p {
		p[i] = e.data[address+uint32(i)]
	}

	return nil
}

func (e *fakeEmulator) IsOpen() bool { return e.open }

func (e *fakeEmulator) Close() error {
	e.open = false
	return nil
}

func (e *fakeEmulator) setU8(address uint32, v uint8) {
	e.data[address] = v
}

func (e *fakeEmulator) setU16(address uint32, v uint16) {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, v)
	e.data[address] = b[0]
	e.data[address+1] = b[1]
}

func (e *fakeEmulator) setI32(address uint32, v int32) {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, uint32(v))
	for i, x := range b {
		e.data[address+uint32(i)] = x
	}
}

// collectorHook gathers everything the session reports through its hooks.
type collectorHook struct {
	splits   []splitter.SplitInfo
	armed    []splitter.SplitInfo
	statuses []splitter.Status
	starts   int
}

func (h *collectorHook) Func(ctx splitter.HookCtx) {
	switch ctx.Pos {
	case splitter.HookPosSplit:
		h.splits = append(h.splits, ctx.Item.(splitter.SplitInfo))
	case splitter.HookPosSplitArmed:
		h.armed = append(h.armed, ctx.Item.(splitter.SplitInfo))
	case splitter.HookPosTick:
		h.statuses = append(h.statuses, ctx.Item.(splitter.Status))
	case splitter.HookPosRunStart:
		h.starts++
	}
}

func (h *collectorHook) labels() []string {
	labels := make([]string, 0, len(h.splits))
	for _, s := range h.splits {
		labels = append(labels, s.Label)
	}

	return labels
}

var _ = Describe("Game", func() {
	var (
		mockCtrl   *gomock.Controller
		timer      *MockTimer
		timerState splitter.TimerState
		splitCalls int
		mem        *fakeEmulator
		game       *Game
		collector  *collectorHook
		frame      uint16
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		timer = NewMockTimer(mockCtrl)
		timerState = splitter.TimerNotRunning
		splitCalls = 0

		timer.EXPECT().State().
			DoAndReturn(func() splitter.TimerState { return timerState }).
			AnyTimes()
		timer.EXPECT().Start().
			Do(func() { timerState = splitter.TimerRunning }).
			AnyTimes()
		timer.EXPECT().PauseGameTime().AnyTimes()
		timer.EXPECT().SetGameTime(gomock.Any()).AnyTimes()
		timer.EXPECT().SetVariable(gomock.Any(), gomock.Any()).AnyTimes()
		timer.EXPECT().SetVariableInt(gomock.Any(), gomock.Any()).AnyTimes()
		timer.EXPECT().Split().
			Do(func() { splitCalls++ }).
			AnyTimes()

		mem = newFakeEmulator()
		frame = 1000
		mem.setU16(addrFrameCounter, frame)

		collector = &collectorHook{}
		game = NewGame(mem, DefaultSettings())
		game.AcceptHook(collector)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	// step advances the in-game frame counter by one and runs one tick.
	step := func() {
		frame++
		mem.setU16(addrFrameCounter, frame)
		game.Update(timer)
	}

	// confirmNewGame performs the file-select cursor gesture.
	confirmNewGame := func() {
		mem.setI32(addrUICursorX, fileSelectCursorX)
		mem.setI32(addrUICursorY, fileSelectRestingY)
		step()
		mem.setI32(addrUICursorY, fileSelectRestingY+16)
		step()
	}

	// resetRun pretends the user reset the external timer and starts a new
	// run.
	resetRun := func() {
		timerState = splitter.TimerNotRunning
		mem.setI32(addrUICursorY, fileSelectRestingY)
		step()
		mem.setI32(addrUICursorY, fileSelectRestingY+16)
		step()
	}

	Describe("run start", func() {
		It("should start the timer on the cursor gesture", func() {
			confirmNewGame()

			Expect(timerState).To(Equal(splitter.TimerRunning))
			Expect(collector.starts).To(Equal(1))
		})

		It("should rebase the frame count to zero", func() {
			confirmNewGame()

			last := collector.statuses[len(collector.statuses)-1]
			Expect(last.Frame).To(Equal(int64(0)))
		})

		It("should not start while the cursor rests", func() {
			mem.setI32(addrUICursorX, fileSelectCursorX)
			mem.setI32(addrUICursorY, fileSelectRestingY)
			step()
			step()
			step()

			Expect(timerState).To(Equal(splitter.TimerNotRunning))
		})

		It("should not start when the cursor is in another column", func() {
			mem.setI32(addrUICursorX, 48)
			mem.setI32(addrUICursorY, fileSelectRestingY)
			step()
			mem.setI32(addrUICursorY, fileSelectRestingY+16)
			step()

			Expect(timerState).To(Equal(splitter.TimerNotRunning))
		})
	})

	Describe("item milestones", func() {
		It("should split once when the sword flag appears", func() {
			confirmNewGame()
			step()

			mem.setU8(addrPauseMenu, 1<<2)
			step()
			Expect(collector.labels()).To(Equal([]string{"Get Smith's Sword"}))

			step()
			Expect(collector.splits).To(HaveLen(1), "flag still set, no refire")
			Expect(splitCalls).To(Equal(1))
		})

		It("should suppress the sword split when a save is loaded", func() {
			confirmNewGame()
			mem.setU8(addrPauseMenu, 1<<2)
			step()
			Expect(collector.splits).To(HaveLen(1))

			// Back to the title screen and into the same save: the flag
			// edge repeats, the guard does not.
			mem.setU8(addrPauseMenu, 0)
			step()
			mem.setU8(addrPauseMenu, 1<<2)
			step()

			Expect(collector.splits).To(HaveLen(1))
		})

		It("should not confuse items sharing a bit position", func() {
			confirmNewGame()

			// Bit 2 of slot 4 is the Gust Jar, not the sword.
			mem.setU8(addrPauseMenu+4, 1<<2)
			step()

			Expect(collector.labels()).To(Equal([]string{"Get Gust Jar"}))
		})

		It("should split on element pickups", func() {
			confirmNewGame()

			mem.setU8(addrPauseMenu+16, ElementEarth)
			step()

			Expect(collector.labels()).To(Equal([]string{"Get Earth Element"}))
		})
	})

	Describe("area milestones", func() {
		It("should split exactly once on dungeon entry", func() {
			confirmNewGame()

			mem.setU8(addrScene, uint8(SceneOverworld))
			step()
			step()
			Expect(collector.splits).To(BeEmpty())

			mem.setU8(addrScene, uint8(SceneDeepwoodShrine))
			step()
			Expect(collector.labels()).To(
				Equal([]string{"Enter Deepwood Shrine"}))

			step()
			Expect(collector.splits).To(HaveLen(1))
		})

		It("should not re-split when the area is re-entered", func() {
			confirmNewGame()
			mem.setU8(addrScene, uint8(SceneDeepwoodShrine))
			step()
			Expect(collector.splits).To(HaveLen(1))

			mem.setU8(addrScene, uint8(SceneOverworld))
			step()
			mem.setU8(addrScene, uint8(SceneDeepwoodShrine))
			step()

			Expect(collector.splits).To(HaveLen(1))
		})

		It("should split again after a run reset", func() {
			confirmNewGame()
			mem.setU8(addrScene, uint8(SceneDeepwoodShrine))
			step()
			Expect(collector.splits).To(HaveLen(1))

			mem.setU8(addrScene, uint8(SceneOverworld))
			resetRun()
			Expect(timerState).To(Equal(splitter.TimerRunning))

			mem.setU8(addrScene, uint8(SceneDeepwoodShrine))
			step()

			Expect(collector.splits).To(HaveLen(2))
		})

		It("should gate the fortress boss room on position", func() {
			confirmNewGame()

			mem.setU8(addrScene, uint8(SceneFortressOfWindsGreen))
			mem.setU16(addrLinkPositionY, 1020)
			step()
			Expect(collector.splits).To(BeEmpty())

			mem.setU16(addrLinkPositionY, 1010)
			step()
			Expect(collector.labels()).To(
				Equal([]string{"Enter Fortress of Winds Boss Room"}))

			step()
			Expect(collector.splits).To(HaveLen(1))
		})
	})

	Describe("rule ordering", func() {
		It("should fire at most one split per tick, first match wins", func() {
			confirmNewGame()

			// Item pickup and boss room entry become true on the same tick.
			mem.setU8(addrPauseMenu+4, 1<<2)
			mem.setU8(addrScene, uint8(SceneDeepwoodShrineBoss))
			step()
			Expect(collector.labels()).To(Equal([]string{"Get Gust Jar"}))

			step()
			Expect(collector.labels()).To(Equal([]string{
				"Get Gust Jar",
				"Enter Deepwood Shrine Boss Room",
			}))
		})

		It("should let later rules fire when an earlier one is disabled", func() {
			settings := DefaultSettings()
			settings.GetGustJar = false
			game = NewGame(mem, settings)
			collector = &collectorHook{}
			game.AcceptHook(collector)

			confirmNewGame()

			mem.setU8(addrPauseMenu+4, 1<<2)
			mem.setU8(addrPauseMenu+16, ElementEarth)
			step()
			Expect(collector.labels()).To(Equal([]string{"Get Earth Element"}))

			// The disabled milestone's edge is gone for good.
			step()
			step()
			Expect(collector.splits).To(HaveLen(1))
		})
	})

	Describe("delayed splits", func() {
		It("should delay the Minish Cap split by 20 frames", func() {
			confirmNewGame()

			// Scene 0 is Minish Woods; the cutscene sprite appears briefly.
			mem.setU16(addrSprite, uint16(SpriteReceiveMinishCap))
			step()
			Expect(collector.armed).To(HaveLen(1))
			Expect(collector.splits).To(BeEmpty())

			mem.setU16(addrSprite, 0)
			for i := 0; i < 19; i++ {
				step()
			}
			Expect(collector.splits).To(BeEmpty())

			step()
			Expect(collector.labels()).To(Equal([]string{"Receive Minish Cap"}))
		})

		It("should require the Minish Woods scene for the cap split", func() {
			confirmNewGame()

			mem.setU8(addrScene, uint8(SceneOverworld))
			mem.setU16(addrSprite, uint16(SpriteReceiveMinishCap))
			step()

			Expect(collector.armed).To(BeEmpty())
		})

		It("should discard a pending split on run reset", func() {
			confirmNewGame()

			mem.setU16(addrSprite, uint16(SpriteReceiveMinishCap))
			step()
			Expect(collector.armed).To(HaveLen(1))

			mem.setU16(addrSprite, 0)
			resetRun()

			for i := 0; i < 40; i++ {
				step()
			}
			Expect(collector.splits).To(BeEmpty())
		})

		It("should delay the Four Sword split by 244 frames", func() {
			confirmNewGame()

			mem.setU8(addrPauseMenu+1, 1<<4)
			step()
			Expect(collector.armed).To(HaveLen(1))
			Expect(collector.splits).To(BeEmpty())

			for i := 0; i < 243; i++ {
				step()
			}
			Expect(collector.splits).To(BeEmpty())

			step()
			Expect(collector.labels()).To(Equal([]string{"Get Four Sword"}))
		})
	})

	Describe("boss kill", func() {
		It("should split on the exact 1 to 0 phase edge", func() {
			confirmNewGame()

			mem.setU8(addrScene, uint8(SceneVaati3))
			mem.setI32(addrVaati3Phases, 3)
			step()
			mem.setI32(addrVaati3Phases, 2)
			step()
			mem.setI32(addrVaati3Phases, 1)
			step()
			Expect(collector.splits).To(BeEmpty())

			mem.setI32(addrVaati3Phases, 0)
			step()
			Expect(collector.labels()).To(Equal([]string{"Defeat Vaati"}))

			step()
			Expect(collector.splits).To(HaveLen(1))
		})

		It("should ignore other falling edges of the phase counter", func() {
			confirmNewGame()

			mem.setU8(addrScene, uint8(SceneVaati3))
			mem.setI32(addrVaati3Phases, 2)
			step()
			mem.setI32(addrVaati3Phases, 0)
			step()

			Expect(collector.splits).To(BeEmpty())
		})

		It("should ignore the edge outside the boss scene", func() {
			confirmNewGame()

			mem.setU8(addrScene, uint8(SceneDarkHyruleCastle))
			mem.setI32(addrVaati3Phases, 1)
			step()
			mem.setI32(addrVaati3Phases, 0)
			step()

			Expect(collector.splits).To(BeEmpty())
		})

		It("should split on the big key flag bit", func() {
			confirmNewGame()

			mem.setI32(addrDHCBigKey, 4)
			step()

			Expect(collector.labels()).To(Equal([]string{"Get DHC Big Key"}))
		})
	})

	Describe("frame clock", func() {
		It("should keep counting across the counter wrap", func() {
			confirmNewGame()

			frames := []uint16{65534, 65535, 0, 1}
			var counts []int64
			for _, f := range frames {
				mem.setU16(addrFrameCounter, f)
				game.Update(timer)
				counts = append(counts,
					collector.statuses[len(collector.statuses)-1].Frame)
			}

			for i := 1; i < len(counts); i++ {
				Expect(counts[i]).To(Equal(counts[i-1]+1),
					"frame count must advance by 1 across the wrap")
			}
		})
	})

	Describe("incomplete data", func() {
		It("should skip the whole tick while memory is unreadable", func() {
			confirmNewGame()

			mem.setU8(addrPauseMenu, 1<<2)
			mem.failing = true
			step()
			step()
			Expect(collector.splits).To(BeEmpty())

			// The edge is detected against the value from before the
			// outage, not invented during it.
			mem.failing = false
			step()
			Expect(collector.labels()).To(Equal([]string{"Get Smith's Sword"}))
		})
	})

	Describe("informational variables", func() {
		It("should report the HUD values every tick", func() {
			mem.setU8(addrVisualHearts, 13)
			mem.setU16(addrVisualRupees, 100)
			mem.setU8(addrVisualKeys, 2)
			step()

			last := collector.statuses[len(collector.statuses)-1]
			Expect(last.Variables["Hearts"]).To(Equal("3¼"))
			Expect(last.Variables["Rupees"]).To(Equal("100"))
			Expect(last.Variables["Keys"]).To(Equal("2"))
		})
	})
})

package tmc

import "github.com/speedkit/minishsplit/splitter"

// Cosmetic delays. The milestone is detected when the triggering memory
// event happens, but the visible split lags so it lines up with the cutscene
// on screen.
const (
	receiveMinishCapDelayFrames = 20
	fourSwordDelayFrames        = 244
)

// bossRoomEntryMaxY disambiguates the two visually identical transitions
// into the Fortress of Winds green floor; only the one with the player at or
// below this coordinate is the boss room entry. Opaque calibration constant.
const bossRoomEntryMaxY = 1015

// dhcBigKeyMask is the flag bit for the Dark Hyrule Castle big key within
// its 32-bit flags word.
const dhcBigKeyMask = 4

type ruleResult int

const (
	// ruleNoMatch continues evaluation with the next rule.
	ruleNoMatch ruleResult = iota
	// ruleSplit emits the rule's label and ends evaluation.
	ruleSplit
	// ruleSuppress ends evaluation without a split.
	ruleSuppress
)

// A splitRule is one entry in the ordered milestone table.
type splitRule struct {
	label string
	eval  func(g *Game, v *vars) ruleResult
}

// shouldSplit evaluates the milestone rules for one tick and returns at most
// one split label. A due delayed split always wins, before any rule runs, so
// it cannot be starved by earlier-ordered rules matching on later ticks.
func (g *Game) shouldSplit(v *vars) (string, bool) {
	if label, ok := g.delayed.ConsumeDue(g.frameCount(v)); ok {
		return label, true
	}

	for i := range splitRules {
		rule := &splitRules[i]

		switch rule.eval(g, v) {
		case ruleSplit:
			return rule.label, true
		case ruleSuppress:
			return "", false
		}
	}

	return "", false
}

// itemRule fires on the edge where an item flag appears in the pause menu.
// The flag never clears in-game, so the edge itself prevents a refire within
// a run.
func itemRule(
	label string,
	enabled func(*Settings) bool,
	pred func(PauseMenu) bool,
) splitRule {
	return splitRule{
		label: label,
		eval: func(g *Game, v *vars) ruleResult {
			if g.pauseMenu.Check(pred) && enabled(&g.settings) {
				return ruleSplit
			}

			return ruleNoMatch
		},
	}
}

// areaRule fires once per run when the given scene becomes current. The
// guard exists because backtracking or a death warp re-enters the scene.
func areaRule(
	label string,
	enabled func(*Settings) bool,
	guard func(*runProgress) *bool,
	scene Scene,
) splitRule {
	return splitRule{
		label: label,
		eval: func(g *Game, v *vars) ruleResult {
			flag := guard(&g.progress)
			if !*flag && v.scene.Current == scene && enabled(&g.settings) {
				*flag = true
				return ruleSplit
			}

			return ruleNoMatch
		},
	}
}

// delayedRule arms a delayed split instead of firing immediately; the label
// is emitted by shouldSplit's due check on a later tick.
func delayedRule(
	label string,
	delay int64,
	enabled func(*Settings) bool,
	pred func(g *Game, v *vars) bool,
) splitRule {
	return splitRule{
		label: label,
		eval: func(g *Game, v *vars) ruleResult {
			if !pred(g, v) || !enabled(&g.settings) {
				return ruleNoMatch
			}

			due := g.frameCount(v) + delay
			g.delayed.Arm(label, due)
			g.InvokeHook(splitter.HookCtx{
				Domain: g,
				Pos:    splitter.HookPosSplitArmed,
				Item: splitter.SplitInfo{
					RunID: g.id,
					Label: label,
					Frame: due,
				},
			})

			return ruleSuppress
		},
	}
}

// splitRules is evaluated top to bottom; the first matching enabled rule
// wins and short-circuits the rest of the tick. The order encodes the
// progression graph of the game and is part of the contract.
var splitRules = []splitRule{
	{
		label: "Get Smith's Sword",
		eval: func(g *Game, v *vars) ruleResult {
			hasSword := func(m PauseMenu) bool {
				return m.HasItem(ItemSmithsSword)
			}
			if !g.pauseMenu.Check(hasSword) {
				return ruleNoMatch
			}

			// Loading a save file re-creates this edge because the watcher
			// starts from scratch. A guard that is already set means a
			// resumed save, not a new game.
			if g.progress.smithsSword {
				return ruleSuppress
			}

			g.progress.smithsSword = true

			if g.settings.GetSmithsSword {
				return ruleSplit
			}

			return ruleSuppress
		},
	},
	delayedRule("Receive Minish Cap", receiveMinishCapDelayFrames,
		func(s *Settings) bool { return s.ReceiveMinishCap },
		func(g *Game, v *vars) bool {
			isCapCutscene := func(s Sprite) bool {
				return s == SpriteReceiveMinishCap
			}
			return g.sprite.Check(isCapCutscene) &&
				v.scene.Current == SceneMinishWoods
		}),
	areaRule("Enter Deepwood Shrine",
		func(s *Settings) bool { return s.EnterDeepwoodShrine },
		func(p *runProgress) *bool { return &p.deepwoodShrine },
		SceneDeepwoodShrine),
	itemRule("Get Gust Jar",
		func(s *Settings) bool { return s.GetGustJar },
		func(m PauseMenu) bool { return m.HasItem(ItemGustJar) }),
	areaRule("Enter Deepwood Shrine Boss Room",
		func(s *Settings) bool { return s.EnterDeepwoodShrineBossRoom },
		func(p *runProgress) *bool { return &p.deepwoodShrineBoss },
		SceneDeepwoodShrineBoss),
	itemRule("Get Earth Element",
		func(s *Settings) bool { return s.GetEarthElement },
		func(m PauseMenu) bool { return m.HasElement(ElementEarth) }),
	areaRule("Enter Mt. Crenel",
		func(s *Settings) bool { return s.EnterMtCrenel },
		func(p *runProgress) *bool { return &p.mtCrenel },
		SceneMtCrenel),
	itemRule("Get Grip Ring",
		func(s *Settings) bool { return s.GetGripRing },
		func(m PauseMenu) bool { return m.HasEquipment(EquipGripRing) }),
	areaRule("Enter Cave of Flames",
		func(s *Settings) bool { return s.EnterCaveOfFlames },
		func(p *runProgress) *bool { return &p.caveOfFlames },
		SceneCaveOfFlames),
	itemRule("Get Cane of Pacci",
		func(s *Settings) bool { return s.GetCaneOfPacci },
		func(m PauseMenu) bool { return m.HasItem(ItemCaneOfPacci) }),
	areaRule("Enter Cave of Flames Boss Room",
		func(s *Settings) bool { return s.EnterCaveOfFlamesBossRoom },
		func(p *runProgress) *bool { return &p.caveOfFlamesBoss },
		SceneCaveOfFlamesBoss),
	itemRule("Get Fire Element",
		func(s *Settings) bool { return s.GetFireElement },
		func(m PauseMenu) bool { return m.HasElement(ElementFire) }),
	itemRule("Get Pegasus Boots",
		func(s *Settings) bool { return s.GetPegasusBoots },
		func(m PauseMenu) bool { return m.HasItem(ItemPegasusBoots) }),
	itemRule("Get Bow",
		func(s *Settings) bool { return s.GetBow },
		func(m PauseMenu) bool { return m.HasItem(ItemBow) }),
	areaRule("Enter Fortress of Winds",
		func(s *Settings) bool { return s.EnterFortressOfWinds },
		func(p *runProgress) *bool { return &p.fortressOfWinds },
		SceneFortressOfWinds),
	itemRule("Get Mole Mitts",
		func(s *Settings) bool { return s.GetMoleMitts },
		func(m PauseMenu) bool { return m.HasItem(ItemMoleMitts) }),
	{
		label: "Enter Fortress of Winds Boss Room",
		eval: func(g *Game, v *vars) ruleResult {
			if !g.progress.fortressOfWindsBoss &&
				v.scene.Current == SceneFortressOfWindsGreen &&
				v.linkPositionY.Current <= bossRoomEntryMaxY &&
				g.settings.EnterFortressOfWindsBossRoom {
				g.progress.fortressOfWindsBoss = true
				return ruleSplit
			}

			return ruleNoMatch
		},
	},
	itemRule("Get Ocarina",
		func(s *Settings) bool { return s.GetOcarina },
		func(m PauseMenu) bool { return m.HasItem(ItemOcarina) }),
	itemRule("Get Magical Boomerang",
		func(s *Settings) bool { return s.GetMagicalBoomerang },
		func(m PauseMenu) bool { return m.HasItem(ItemMagicalBoomerang) }),
	itemRule("Get Power Bracelets",
		func(s *Settings) bool { return s.GetPowerBracelets },
		func(m PauseMenu) bool { return m.HasEquipment(EquipPowerBracelets) }),
	itemRule("Get Flippers",
		func(s *Settings) bool { return s.GetFlippers },
		func(m PauseMenu) bool { return m.HasEquipment(EquipFlippers) }),
	areaRule("Enter Temple of Droplets",
		func(s *Settings) bool { return s.EnterTempleOfDroplets },
		func(p *runProgress) *bool { return &p.templeOfDroplets },
		SceneTempleOfDroplets),
	itemRule("Get Flame Lantern",
		func(s *Settings) bool { return s.GetFlameLantern },
		func(m PauseMenu) bool { return m.HasItem(ItemFlameLantern) }),
	itemRule("Get Water Element",
		func(s *Settings) bool { return s.GetWaterElement },
		func(m PauseMenu) bool { return m.HasElement(ElementWater) }),
	areaRule("Enter Palace of Winds",
		func(s *Settings) bool { return s.EnterPalaceOfWinds },
		func(p *runProgress) *bool { return &p.palaceOfWinds },
		ScenePalaceOfWinds),
	itemRule("Get Roc's Cape",
		func(s *Settings) bool { return s.GetRocsCape },
		func(m PauseMenu) bool { return m.HasItem(ItemRocsCape) }),
	itemRule("Get Wind Element",
		func(s *Settings) bool { return s.GetWindElement },
		func(m PauseMenu) bool { return m.HasElement(ElementWind) }),
	delayedRule("Get Four Sword", fourSwordDelayFrames,
		func(s *Settings) bool { return s.GetFourSword },
		func(g *Game, v *vars) bool {
			hasFourSword := func(m PauseMenu) bool {
				return m.HasItem(ItemFourSword)
			}
			return g.pauseMenu.Check(hasFourSword)
		}),
	{
		label: "Get DHC Big Key",
		eval: func(g *Game, v *vars) ruleResult {
			hasKey := func(flags int32) bool {
				return flags&dhcBigKeyMask != 0
			}
			if g.dhcBigKey.Check(hasKey) && g.settings.GetDHCBigKey {
				return ruleSplit
			}

			return ruleNoMatch
		},
	},
	{
		// The phase counter passes through other values during the fight;
		// only the exact 1 to 0 falling edge is the kill.
		label: "Defeat Vaati",
		eval: func(g *Game, v *vars) ruleResult {
			if v.scene.Current == SceneVaati3 &&
				v.vaati3Phases.Old == 1 &&
				v.vaati3Phases.Current == 0 &&
				g.settings.DefeatVaati {
				return ruleSplit
			}

			return ruleNoMatch
		},
	},
}

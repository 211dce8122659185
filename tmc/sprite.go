package tmc

// A Sprite identifies an active on-screen actor or cutscene trigger. Sprites
// are transient; they appear for only a few ticks.
type Sprite uint16

// SpriteReceiveMinishCap is the cutscene actor for Ezlo landing on Link's
// head in Minish Woods.
const SpriteReceiveMinishCap Sprite = 0x31C

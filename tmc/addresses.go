// Package tmc implements the milestone state machine for The Legend of
// Zelda: The Minish Cap. All addresses target the NTSC-J build; there is no
// relocation logic for other builds.
package tmc

// Watched GBA bus addresses, NTSC-J.
const (
	addrPauseMenu        = 0x2002B32
	addrScene            = 0x3000BF4
	addrDHCBigKey        = 0x2002EB2
	addrVaati3Phases     = 0x30017BC
	addrSprite           = 0x300116C
	addrFrameCounter     = 0x300100C
	addrUICursorX        = 0x3001E4E
	addrUICursorY        = 0x300187A
	addrLinkPositionY    = 0x30010BE
	addrVisualRupees     = 0x200AF0E
	addrVisualHearts     = 0x200AF03
	addrVisualKeys       = 0x200AF12
	addrTigerScrolls     = 0x2002B44
	addrMysteriousShells = 0x2002B02
	addrBombs            = 0x2002AEC
)

// New-game gesture on the file select screen: the cursor sits at X 24 and
// moves down past its resting Y of 144 when the player confirms.
const (
	fileSelectCursorX  = 24
	fileSelectRestingY = 144
)

package tmc

import "log"

// pauseMenuSize covers the six inventory slot bytes, ten bytes the splitter
// does not interpret, the elements byte, and the permanent equipment byte.
const pauseMenuSize = 18

// PauseMenu is the decoded pause menu block. Each inventory slot byte packs
// four unrelated item flags at bit positions 0, 2, 4 and 6; which item a bit
// means depends entirely on the slot, so lookups go through Item values that
// carry both the slot index and the mask.
type PauseMenu struct {
	Inventory          [6]byte
	Elements           byte
	PermanentEquipment byte
}

// decodePauseMenu decodes the raw pause menu block. The slice length is a
// programming contract, not input validation; any byte pattern decodes.
func decodePauseMenu(b []byte) PauseMenu {
	if len(b) != pauseMenuSize {
		log.Panicf("pause menu block must be %d bytes, got %d",
			pauseMenuSize, len(b))
	}

	m := PauseMenu{
		Elements:           b[16],
		PermanentEquipment: b[17],
	}
	copy(m.Inventory[:], b[:6])

	return m
}

// An Item names one inventory flag: the slot byte it lives in and the bit
// mask within that byte.
type Item struct {
	Slot int
	Mask byte
}

// Inventory items the split rules watch. Items sharing a mask live in
// different slots.
var (
	ItemSmithsSword      = Item{Slot: 0, Mask: 1 << 2}
	ItemFourSword        = Item{Slot: 1, Mask: 1 << 4}
	ItemBow              = Item{Slot: 2, Mask: 1 << 2}
	ItemMagicalBoomerang = Item{Slot: 3, Mask: 1 << 0}
	ItemFlameLantern     = Item{Slot: 3, Mask: 1 << 6}
	ItemGustJar          = Item{Slot: 4, Mask: 1 << 2}
	ItemCaneOfPacci      = Item{Slot: 4, Mask: 1 << 4}
	ItemMoleMitts        = Item{Slot: 4, Mask: 1 << 6}
	ItemRocsCape         = Item{Slot: 5, Mask: 1 << 0}
	ItemPegasusBoots     = Item{Slot: 5, Mask: 1 << 2}
	ItemOcarina          = Item{Slot: 5, Mask: 1 << 6}
)

// Elemental medallion flags.
const (
	ElementEarth byte = 1 << 0
	ElementFire  byte = 1 << 2
	ElementWater byte = 1 << 4
	ElementWind  byte = 1 << 6
)

// Permanent equipment flags.
const (
	EquipGripRing       byte = 1 << 0
	EquipPowerBracelets byte = 1 << 2
	EquipFlippers       byte = 1 << 4
)

// HasItem reports whether the given inventory flag is set.
func (m PauseMenu) HasItem(item Item) bool {
	return m.Inventory[item.Slot]&item.Mask != 0
}

// HasElement reports whether the given elemental medallion flag is set.
func (m PauseMenu) HasElement(element byte) bool {
	return m.Elements&element != 0
}

// HasEquipment reports whether the given permanent equipment flag is set.
func (m PauseMenu) HasEquipment(equipment byte) bool {
	return m.PermanentEquipment&equipment != 0
}

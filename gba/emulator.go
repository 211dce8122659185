// Package gba attaches to a Game Boy Advance emulator process and reads the
// emulated console's work RAM. Addresses are GBA bus addresses; the package
// translates them to host addresses inside the emulator process.
package gba

import "errors"

// GBA bus layout for the two on-board work RAM regions.
const (
	ewramBusBase = 0x02000000
	ewramSize    = 0x40000

	iwramBusBase = 0x03000000
	iwramSize    = 0x8000
)

// ErrUnmappedAddress reports a read from a bus address outside the work RAM
// regions this package maps.
var ErrUnmappedAddress = errors.New("gba: address outside mapped work RAM")

// An Emulator is an attached emulator process. Reads may fail transiently;
// the caller retries on a later tick. Once IsOpen reports false the handle
// is dead and a new one must be attached.
type Emulator interface {
	// IsOpen reports whether the emulator process is still alive.
	IsOpen() bool

	// ReadAt fills p with len(p) bytes at the given GBA bus address.
	ReadAt(address uint32, p []byte) error

	// Close releases the handle to the process.
	Close() error
}

// Config controls process discovery.
type Config struct {
	// ProcessNames overrides the default list of emulator process names to
	// search for.
	ProcessNames []string

	// EWRAMBase and IWRAMBase pin the host addresses of the emulated RAM
	// regions. When zero, the regions are located by scanning the process's
	// memory mappings.
	EWRAMBase uint64
	IWRAMBase uint64
}

// defaultProcessNames are the emulators the splitter knows how to find.
var defaultProcessNames = []string{
	"mgba",
	"mgba-qt",
	"mgba-sdl",
	"vbam",
	"visualboyadvance-m",
	"retroarch",
}

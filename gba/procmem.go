package gba

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/process"
)

// processEmulator reads emulated RAM through /proc/<pid>/mem.
type processEmulator struct {
	pid int32
	mem *os.File

	ewramBase uint64
	iwramBase uint64
}

// Attach searches the process table for a known emulator and maps its
// emulated work RAM. It returns false when no emulator is found or its
// memory cannot be opened; the caller simply tries again on a later tick.
func Attach(cfg Config) (Emulator, bool) {
	names := cfg.ProcessNames
	if len(names) == 0 {
		names = defaultProcessNames
	}

	pid, ok := findEmulatorProcess(names)
	if !ok {
		return nil, false
	}

	mem, err := os.Open(fmt.Sprintf("/proc/%d/mem", pid))
	if err != nil {
		return nil, false
	}

	e := &processEmulator{
		pid:       pid,
		mem:       mem,
		ewramBase: cfg.EWRAMBase,
		iwramBase: cfg.IWRAMBase,
	}

	if e.ewramBase == 0 {
		if !e.locateWorkRAM() {
			mem.Close()
			return nil, false
		}
	} else if e.iwramBase == 0 {
		e.iwramBase = e.ewramBase + ewramSize
	}

	return e, true
}

func findEmulatorProcess(names []string) (int32, bool) {
	procs, err := process.Processes()
	if err != nil {
		return 0, false
	}

	for _, p := range procs {
		name, err := p.Name()
		if err != nil {
			continue
		}

		if matchesEmulator(name, names) {
			return p.Pid, true
		}
	}

	return 0, false
}

func matchesEmulator(processName string, names []string) bool {
	processName = strings.ToLower(processName)

	for _, n := range names {
		if strings.HasPrefix(processName, strings.ToLower(n)) {
			return true
		}
	}

	return false
}

// locateWorkRAM picks the first private anonymous read-write mapping large
// enough to hold both RAM regions. Emulators allocate the emulated memory as
// one arena with EWRAM at the bottom and IWRAM right above it.
func (e *processEmulator) locateWorkRAM() bool {
	f, err := os.Open(fmt.Sprintf("/proc/%d/maps", e.pid))
	if err != nil {
		return false
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		m, ok := parseMapsLine(scanner.Text())
		if !ok {
			continue
		}

		if m.end-m.start >= ewramSize+iwramSize {
			e.ewramBase = m.start
			e.iwramBase = m.start + ewramSize

			return true
		}
	}

	return false
}

type mapping struct {
	start uint64
	end   uint64
}

// parseMapsLine extracts a candidate arena from one /proc/<pid>/maps line.
// Only private anonymous rw mappings qualify.
func parseMapsLine(line string) (mapping, bool) {
	fields := strings.Fields(line)
	if len(fields) < 5 {
		return mapping{}, false
	}

	perms := fields[1]
	if !strings.HasPrefix(perms, "rw") || !strings.HasSuffix(perms, "p") {
		return mapping{}, false
	}

	// A sixth field names a backing file; anonymous mappings have none.
	if len(fields) >= 6 && strings.HasPrefix(fields[5], "/") {
		return mapping{}, false
	}

	bounds := strings.SplitN(fields[0], "-", 2)
	if len(bounds) != 2 {
		return mapping{}, false
	}

	start, err := strconv.ParseUint(bounds[0], 16, 64)
	if err != nil {
		return mapping{}, false
	}

	end, err := strconv.ParseUint(bounds[1], 16, 64)
	if err != nil {
		return mapping{}, false
	}

	return mapping{start: start, end: end}, true
}

// hostAddress translates a GBA bus address to an address in the emulator
// process.
func (e *processEmulator) hostAddress(address uint32, size int) (uint64, error) {
	switch {
	case address >= ewramBusBase && address+uint32(size) <= ewramBusBase+ewramSize:
		return e.ewramBase + uint64(address-ewramBusBase), nil
	case address >= iwramBusBase && address+uint32(size) <= iwramBusBase+iwramSize:
		return e.iwramBase + uint64(address-iwramBusBase), nil
	default:
		return 0, ErrUnmappedAddress
	}
}

func (e *processEmulator) IsOpen() bool {
	alive, err := process.PidExists(e.pid)

	return err == nil && alive
}

func (e *processEmulator) ReadAt(address uint32, p []byte) error {
	host, err := e.hostAddress(address, len(p))
	if err != nil {
		return err
	}

	_, err = e.mem.ReadAt(p, int64(host))

	return err
}

func (e *processEmulator) Close() error {
	return e.mem.Close()
}

package splitter

import (
	"encoding/binary"
	"log"
)

// Memory is the read capability of an attached game process. Reads are
// synchronous and may fail transiently; a failed read is not fatal.
type Memory interface {
	ReadAt(address uint32, p []byte) error
}

// A Pair holds the two most recent decoded values of a watched memory
// location. Old equals Current until the second successful read.
type Pair[T any] struct {
	Old     T
	Current T
}

// A Watcher reads one fixed-size memory location every tick and keeps the
// previous and current decoded value.
type Watcher[T any] struct {
	address uint32
	buf     []byte
	decode  func([]byte) T

	pair Pair[T]
	seen bool
}

// NewWatcher creates a watcher for a fixed-size location at the given
// address. The decode function receives a slice of exactly size bytes.
func NewWatcher[T any](address uint32, size int, decode func([]byte) T) *Watcher[T] {
	if size <= 0 {
		log.Panicf("watcher at %#x must read at least one byte", address)
	}

	return &Watcher[T]{
		address: address,
		buf:     make([]byte, size),
		decode:  decode,
	}
}

// NewU8Watcher creates a watcher over a single byte.
func NewU8Watcher(address uint32) *Watcher[uint8] {
	return NewWatcher(address, 1, func(b []byte) uint8 {
		return b[0]
	})
}

// NewU16Watcher creates a watcher over a little-endian 16-bit value.
func NewU16Watcher(address uint32) *Watcher[uint16] {
	return NewWatcher(address, 2, binary.LittleEndian.Uint16)
}

// NewI32Watcher creates a watcher over a little-endian 32-bit value.
func NewI32Watcher(address uint32) *Watcher[int32] {
	return NewWatcher(address, 4, func(b []byte) int32 {
		return int32(binary.LittleEndian.Uint32(b))
	})
}

// Update reads the watched location once. On success it shifts the current
// value into the old one, decodes the fresh bytes, and returns the pair. On
// failure it returns nil and keeps both values pinned at their last good
// state, so no transition is invented when reads resume.
func (w *Watcher[T]) Update(mem Memory) *Pair[T] {
	if err := mem.ReadAt(w.address, w.buf); err != nil {
		return nil
	}

	value := w.decode(w.buf)

	if !w.seen {
		w.pair = Pair[T]{Old: value, Current: value}
		w.seen = true
	} else {
		w.pair.Old = w.pair.Current
		w.pair.Current = value
	}

	return &w.pair
}

// Check reports whether the watched value just transitioned into the region
// where pred holds. It is edge-triggered: it returns true only on the update
// where pred became true, not while it stays true.
func (w *Watcher[T]) Check(pred func(T) bool) bool {
	return w.seen && pred(w.pair.Current) && !pred(w.pair.Old)
}

// Pair returns the last observed pair, or nil before the first successful
// read.
func (w *Watcher[T]) Pair() *Pair[T] {
	if !w.seen {
		return nil
	}

	return &w.pair
}

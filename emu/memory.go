package emu

import (
	"math"

	"github.com/sarchlab/riscv5sim/timing/cache"
)

// DefaultWriteLatency is the number of cycles RAM reports as pending after
// any write32, regardless of whether the write hit or missed in the owned
// cache.
const DefaultWriteLatency = 2

// RAM is a byte-addressed memory with 32-bit word and float accessors. It
// owns a data cache that write32 consults for timing purposes only; no
// access is ever served from the cache's own storage, since the cache
// holds no data (see the cache package).
type RAM struct {
	bytes        []byte
	waitCycles   uint64
	writeLatency uint64
	dataCache    *cache.Cache
}

// NewRAM allocates a RAM of the given byte size with the default write
// latency.
func NewRAM(size int) *RAM {
	return &RAM{
		bytes:        make([]byte, size),
		writeLatency: DefaultWriteLatency,
		dataCache:    cache.New(),
	}
}

// SetWriteLatency overrides the number of cycles a write assigns to
// wait_cycles. Exposed so the CLI driver's timing config can parameterize
// it (see the latency package).
func (r *RAM) SetWriteLatency(cycles uint64) {
	r.writeLatency = cycles
}

// Size returns the number of addressable bytes.
func (r *RAM) Size() int {
	return len(r.bytes)
}

// Write32 stores value little-endian at addr. Out-of-range accesses are
// silently dropped. A cache miss adds writeLatency to wait_cycles, but the
// assignment that follows the byte copy always overwrites wait_cycles to
// exactly writeLatency — the add has no lasting effect. This is the
// source's behavior and is preserved exactly, not corrected.
func (r *RAM) Write32(addr uint32, value uint32) {
	if uint64(addr)+3 >= uint64(len(r.bytes)) {
		return
	}

	hit := r.dataCache.Access(addr, true)
	if !hit {
		r.waitCycles += r.writeLatency
	}

	r.bytes[addr] = byte(value)
	r.bytes[addr+1] = byte(value >> 8)
	r.bytes[addr+2] = byte(value >> 16)
	r.bytes[addr+3] = byte(value >> 24)

	r.waitCycles = r.writeLatency
}

// Read32 returns the little-endian 32-bit value at addr, or zero if the
// access falls outside bounds. The read path does not consult the cache.
func (r *RAM) Read32(addr uint32) uint32 {
	if uint64(addr)+3 >= uint64(len(r.bytes)) {
		return 0
	}

	return uint32(r.bytes[addr]) |
		uint32(r.bytes[addr+1])<<8 |
		uint32(r.bytes[addr+2])<<16 |
		uint32(r.bytes[addr+3])<<24
}

// WriteFloat reinterprets value's IEEE-754 bit pattern and stores it via
// Write32.
func (r *RAM) WriteFloat(addr uint32, value float32) {
	r.Write32(addr, math.Float32bits(value))
}

// ReadFloat reinterprets the 32-bit word at addr as a single-precision
// float.
func (r *RAM) ReadFloat(addr uint32) float32 {
	return math.Float32frombits(r.Read32(addr))
}

// CacheMisses returns the cumulative number of misses the owned data cache
// has observed.
func (r *RAM) CacheMisses() uint64 {
	return r.dataCache.Misses()
}

// IsWaiting reports whether a prior write still has pending latency.
func (r *RAM) IsWaiting() bool {
	return r.waitCycles > 0
}

// Tick decrements wait_cycles by one if positive. Called once per pipeline
// cycle, after all stage logic for that cycle has run.
func (r *RAM) Tick() {
	if r.waitCycles > 0 {
		r.waitCycles--
	}
}

// Package cache provides the timing-only data cache the RAM model consults
// on every write, built on Akita's cache directory and LRU victim finder.
package cache

import (
	akitacache "github.com/sarchlab/akita/v4/mem/cache"
)

// Fixed geometry: 1024 bytes total, 32-byte blocks, 4 ways, 8 derived sets.
const (
	totalSize     = 1024
	blockSize     = 32
	associativity = 4
	numSets       = totalSize / (blockSize * associativity)
)

// Cache is a 4-way set-associative cache with LRU replacement. It tracks
// tags and recency only; no data block is stored here (see RAM, which holds
// the ground-truth bytes).
type Cache struct {
	directory *akitacache.DirectoryImpl

	accesses uint64
	misses   uint64
}

// New creates a cache at the fixed geometry.
func New() *Cache {
	return &Cache{
		directory: akitacache.NewDirectory(
			numSets,
			associativity,
			blockSize,
			akitacache.NewLRUVictimFinder(),
		),
	}
}

// Access looks up address in the cache, updating LRU state on a hit and
// allocating a victim way on a miss. isWrite does not affect placement; the
// cache does not model a writeback/dirty policy (see Non-goals).
func (c *Cache) Access(address uint32, isWrite bool) bool {
	c.accesses++

	blockAddr := uint64(address) &^ (blockSize - 1)

	block := c.directory.Lookup(0, blockAddr)
	if block != nil && block.IsValid {
		c.directory.Visit(block)
		return true
	}

	c.misses++

	victim := c.directory.FindVictim(blockAddr)
	if victim == nil {
		return false
	}

	victim.Tag = blockAddr
	victim.IsValid = true
	c.directory.Visit(victim)

	return false
}

// Accesses returns the total number of Access calls.
func (c *Cache) Accesses() uint64 {
	return c.accesses
}

// Misses returns the total number of misses observed.
func (c *Cache) Misses() uint64 {
	return c.misses
}

// Reset invalidates all lines and clears the access/miss counters.
func (c *Cache) Reset() {
	c.directory.Reset()
	c.accesses = 0
	c.misses = 0
}

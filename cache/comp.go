// Package cache models a set-associative cache driven by a trace of memory
// accesses. It classifies each access as a hit or a miss, allocates and
// evicts blocks according to the configured policies, and accumulates a
// cycle cost for every access.
package cache

import (
	"fmt"

	"github.com/sarchlab/cachesim/cache/internal/tagging"
	"github.com/sarchlab/cachesim/hooking"
)

// An Op discriminates the two kinds of memory accesses.
type Op int

// The two access operations.
const (
	OpLoad Op = iota
	OpStore
)

func (o Op) String() string {
	switch o {
	case OpLoad:
		return "load"
	case OpStore:
		return "store"
	default:
		return fmt.Sprintf("Op(%d)", int(o))
	}
}

// Stats holds the cumulative counters of a cache.
type Stats struct {
	TotalLoads  uint64
	TotalStores uint64
	LoadHits    uint64
	LoadMisses  uint64
	StoreHits   uint64
	StoreMisses uint64
	Evictions   uint64
	Writebacks  uint64
	TotalCycles uint64
}

// The cycle cost model. Every access costs one base cycle. Moving a block
// between the cache and memory costs 100 cycles per 4-byte word, and a
// write that goes straight to memory costs 100 cycles.
const (
	baseAccessCycles = 1
	memWordCycles    = 100
	wordSize         = 4
)

// A Comp models one level of set-associative cache. It is not safe for
// concurrent use; a trace is replayed through it one access at a time.
type Comp struct {
	hooking.HookableBase

	name string

	blockSize    int
	writeThrough bool

	tags         tagging.Tags
	victimFinder tagging.VictimFinder
	write        writeStrategy

	seq         uint64
	accessCount uint64
	stats       Stats
}

// Name returns the name of the cache.
func (c *Comp) Name() string {
	return c.name
}

// Stats returns a copy of the counters accumulated so far.
func (c *Comp) Stats() Stats {
	return c.stats
}

// Access runs one memory access through the cache, updating block state,
// counters, and the cycle total.
func (c *Comp) Access(op Op, addr uint32) {
	before := c.stats
	c.accessCount++

	switch op {
	case OpLoad:
		c.load(addr)
	case OpStore:
		c.write.store(addr)
	default:
		panic(fmt.Sprintf("unknown operation: %d", int(op)))
	}

	c.traceAccess(op, addr, before)
}

// nextStamp returns the next value of the recency sequence.
func (c *Comp) nextStamp() uint64 {
	c.seq++
	return c.seq
}

func (c *Comp) blockTransferCycles() uint64 {
	return memWordCycles * uint64(c.blockSize/wordSize)
}

// allocate brings the line of addr into its set. A free slot is used if one
// exists. Otherwise a victim is selected and, if the victim is dirty under
// write-back, its write-back cost is charged before the slot is reused.
func (c *Comp) allocate(addr uint32) *tagging.Block {
	tag, setID := c.tags.Decode(addr)
	set := c.tags.Set(setID)

	victim := c.victimFinder.FindVictim(set)
	if victim.IsValid {
		c.stats.Evictions++

		if victim.IsDirty && !c.writeThrough {
			c.stats.Writebacks++
			c.stats.TotalCycles += c.blockTransferCycles()
		}
	}

	stamp := c.nextStamp()
	victim.IsValid = true
	victim.IsDirty = false
	victim.Tag = tag
	victim.LastUse = stamp
	victim.InsertedAt = stamp

	return victim
}

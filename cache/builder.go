package cache

import (
	"github.com/sarchlab/cachesim/cache/internal/tagging"
)

// Builder can build caches.
type Builder struct {
	numSets          int
	wayAssociativity int
	blockSize        int
	writeAllocate    bool
	writeThrough     bool
	replaceStrategy  string
}

// MakeBuilder creates a builder with the default parameters: a 256-set,
// 4-way cache with 64-byte blocks, write-allocate, write-back, and lru
// eviction.
func MakeBuilder() Builder {
	return Builder{
		numSets:          256,
		wayAssociativity: 4,
		blockSize:        64,
		writeAllocate:    true,
		writeThrough:     false,
		replaceStrategy:  "lru",
	}
}

// WithNumSets sets the number of sets of the cache to build.
func (b Builder) WithNumSets(numSets int) Builder {
	b.numSets = numSets
	return b
}

// WithWayAssociativity sets the number of blocks in each set of the cache
// to build.
func (b Builder) WithWayAssociativity(wayAssociativity int) Builder {
	b.wayAssociativity = wayAssociativity
	return b
}

// WithBlockSize sets the number of bytes in each block of the cache to
// build.
func (b Builder) WithBlockSize(blockSize int) Builder {
	b.blockSize = blockSize
	return b
}

// WithWriteAllocate determines whether a store miss brings the line into
// the cache before writing.
func (b Builder) WithWriteAllocate(writeAllocate bool) Builder {
	b.writeAllocate = writeAllocate
	return b
}

// WithWriteThrough determines whether stores propagate to memory
// immediately, as opposed to being deferred with dirty blocks.
func (b Builder) WithWriteThrough(writeThrough bool) Builder {
	b.writeThrough = writeThrough
	return b
}

// WithReplaceStrategy sets the eviction policy of the cache to build,
// either "lru" or "fifo".
func (b Builder) WithReplaceStrategy(replaceStrategy string) Builder {
	b.replaceStrategy = replaceStrategy
	return b
}

// Build builds a cache. It panics if the geometry is not power-of-2 sized,
// if the block size is smaller than one word, or if no-write-allocate is
// combined with write-back.
func (b Builder) Build(name string) *Comp {
	b.mustBeValid()

	comp := &Comp{
		name:         name,
		blockSize:    b.blockSize,
		writeThrough: b.writeThrough,
		tags: tagging.NewTags(
			b.numSets,
			b.wayAssociativity,
			b.blockSize,
		),
		victimFinder: b.createVictimFinder(),
	}
	comp.write = b.createWriteStrategy(comp)

	return comp
}

func (b Builder) mustBeValid() {
	mustBePowerOfTwo("number of sets", b.numSets)
	mustBePowerOfTwo("way associativity", b.wayAssociativity)
	mustBePowerOfTwo("block size", b.blockSize)

	if b.blockSize < wordSize {
		panic("block size must be at least 4 bytes")
	}

	if !b.writeAllocate && !b.writeThrough {
		panic("no-write-allocate cannot be combined with write-back")
	}
}

func mustBePowerOfTwo(what string, n int) {
	if n <= 0 || n&(n-1) != 0 {
		panic(what + " must be a power of 2")
	}
}

func (b Builder) createVictimFinder() tagging.VictimFinder {
	switch b.replaceStrategy {
	case "lru":
		return tagging.NewLRUVictimFinder()
	case "fifo":
		return tagging.NewFIFOVictimFinder()
	default:
		panic("unknown replace strategy: " + b.replaceStrategy)
	}
}

func (b Builder) createWriteStrategy(comp *Comp) writeStrategy {
	switch {
	case b.writeAllocate && b.writeThrough:
		return &writeThroughStrategy{Comp: comp}
	case b.writeAllocate:
		return &writeBackStrategy{Comp: comp}
	default:
		return &writeAroundStrategy{Comp: comp}
	}
}

// Package tagging tracks which memory lines reside in which cache blocks.
package tagging

import (
	"math/bits"
)

// A Block of a cache is the information that is associated with a cache line
// slot. An invalid block holds no line; its tag is meaningless and it is
// never dirty.
type Block struct {
	Tag        uint32
	SetID      int
	WayID      int
	IsValid    bool
	IsDirty    bool
	LastUse    uint64
	InsertedAt uint64
}

// A Set is a list of blocks where a certain memory line can be stored at.
type Set struct {
	Blocks []Block
}

// Tags is the tag array of a cache. It decomposes addresses and locates the
// resident block of a line, if any.
type Tags interface {
	Decode(addr uint32) (tag uint32, setID int)
	Set(setID int) *Set
	Lookup(addr uint32) (*Block, bool)
	Visit(block *Block, stamp uint64)
	TotalSize() uint64
	Reset()
}

// NewTags creates a tag array with numSets sets of numWays blocks each,
// holding lines of blockSize bytes. All three geometry parameters must be
// powers of two.
func NewTags(numSets, numWays, blockSize int) Tags {
	t := &tagsImpl{
		numSets:   numSets,
		numWays:   numWays,
		blockSize: blockSize,
		setBits:   mustLog2("number of sets", numSets),
		blockBits: mustLog2("block size", blockSize),
	}

	t.Reset()

	return t
}

func mustLog2(what string, n int) uint {
	if n <= 0 || n&(n-1) != 0 {
		panic(what + " must be a power of 2")
	}

	return uint(bits.TrailingZeros64(uint64(n)))
}

type tagsImpl struct {
	numSets   int
	numWays   int
	blockSize int
	setBits   uint
	blockBits uint
	sets      []Set
}

// TotalSize returns the maximum number of bytes can be stored in the cache.
func (t *tagsImpl) TotalSize() uint64 {
	return uint64(t.numSets) * uint64(t.numWays) * uint64(t.blockSize)
}

// Decode splits an address into the tag and the index of the set that the
// line can live in.
func (t *tagsImpl) Decode(addr uint32) (tag uint32, setID int) {
	setID = int((addr >> t.blockBits) & uint32(t.numSets-1))
	tag = addr >> (t.setBits + t.blockBits)

	return tag, setID
}

// Set returns the set with the given index.
func (t *tagsImpl) Set(setID int) *Set {
	return &t.sets[setID]
}

// Lookup finds the block that holds the line of addr. If the line is not
// resident, the second return value is false.
func (t *tagsImpl) Lookup(addr uint32) (*Block, bool) {
	tag, setID := t.Decode(addr)
	set := &t.sets[setID]

	for i := range set.Blocks {
		block := &set.Blocks[i]
		if block.IsValid && block.Tag == tag {
			return block, true
		}
	}

	return nil, false
}

// Visit stamps the block with a new recency value.
func (t *tagsImpl) Visit(block *Block, stamp uint64) {
	block.LastUse = stamp
}

// Reset marks all the blocks in the tag array invalid.
func (t *tagsImpl) Reset() {
	t.sets = make([]Set, t.numSets)
	for i := 0; i < t.numSets; i++ {
		t.sets[i].Blocks = make([]Block, t.numWays)
		for j := 0; j < t.numWays; j++ {
			t.sets[i].Blocks[j].SetID = i
			t.sets[i].Blocks[j].WayID = j
		}
	}
}

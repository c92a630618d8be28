package tagging

// A VictimFinder decides which block should be evicted to make room for a
// new line. A set always has at least one block, so a victim always exists.
type VictimFinder interface {
	FindVictim(set *Set) *Block
}

// LRUVictimFinder evicts the least recently used block in a set.
type LRUVictimFinder struct {
}

// NewLRUVictimFinder returns a newly constructed lru evictor.
func NewLRUVictimFinder() *LRUVictimFinder {
	return &LRUVictimFinder{}
}

// FindVictim returns the first empty block if there is one, or the block
// with the smallest recency stamp.
func (e *LRUVictimFinder) FindVictim(set *Set) *Block {
	if block := firstEmptyBlock(set); block != nil {
		return block
	}

	victim := &set.Blocks[0]
	for i := range set.Blocks {
		if set.Blocks[i].LastUse < victim.LastUse {
			victim = &set.Blocks[i]
		}
	}

	return victim
}

// FIFOVictimFinder evicts blocks in the order they were inserted. Unlike
// LRU, hitting a block does not move it back in the eviction order.
type FIFOVictimFinder struct {
}

// NewFIFOVictimFinder returns a newly constructed fifo evictor.
func NewFIFOVictimFinder() *FIFOVictimFinder {
	return &FIFOVictimFinder{}
}

// FindVictim returns the first empty block if there is one, or the block
// with the smallest insertion stamp.
func (e *FIFOVictimFinder) FindVictim(set *Set) *Block {
	if block := firstEmptyBlock(set); block != nil {
		return block
	}

	victim := &set.Blocks[0]
	for i := range set.Blocks {
		if set.Blocks[i].InsertedAt < victim.InsertedAt {
			victim = &set.Blocks[i]
		}
	}

	return victim
}

func firstEmptyBlock(set *Set) *Block {
	for i := range set.Blocks {
		if !set.Blocks[i].IsValid {
			return &set.Blocks[i]
		}
	}

	return nil
}

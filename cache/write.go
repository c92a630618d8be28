package cache

// A writeStrategy runs the store path of one write policy.
type writeStrategy interface {
	store(addr uint32)
}

// writeThroughStrategy allocates on a store miss and propagates every store
// to memory immediately, so blocks never become dirty.
type writeThroughStrategy struct {
	*Comp
}

func (s *writeThroughStrategy) store(addr uint32) {
	s.stats.TotalStores++
	s.stats.TotalCycles += baseAccessCycles

	if block, ok := s.tags.Lookup(addr); ok {
		s.stats.StoreHits++
		s.tags.Visit(block, s.nextStamp())
		s.stats.TotalCycles += memWordCycles

		return
	}

	s.stats.StoreMisses++
	s.stats.TotalCycles += s.blockTransferCycles()
	s.allocate(addr)
	s.stats.TotalCycles += memWordCycles
}

// writeBackStrategy allocates on a store miss and defers the memory update
// by marking the block dirty. The deferred cost is charged when a dirty
// block is evicted.
type writeBackStrategy struct {
	*Comp
}

func (s *writeBackStrategy) store(addr uint32) {
	s.stats.TotalStores++
	s.stats.TotalCycles += baseAccessCycles

	if block, ok := s.tags.Lookup(addr); ok {
		s.stats.StoreHits++
		s.tags.Visit(block, s.nextStamp())
		block.IsDirty = true

		return
	}

	s.stats.StoreMisses++
	s.stats.TotalCycles += s.blockTransferCycles()
	block := s.allocate(addr)
	block.IsDirty = true
}

// writeAroundStrategy never allocates on a store miss. A missing store is
// written around the cache, straight to memory.
type writeAroundStrategy struct {
	*Comp
}

func (s *writeAroundStrategy) store(addr uint32) {
	s.stats.TotalStores++
	s.stats.TotalCycles += baseAccessCycles

	if block, ok := s.tags.Lookup(addr); ok {
		s.stats.StoreHits++
		s.tags.Visit(block, s.nextStamp())
		s.stats.TotalCycles += memWordCycles

		return
	}

	s.stats.StoreMisses++
	s.stats.TotalCycles += memWordCycles
}

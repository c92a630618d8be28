package cache

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// directMapped builds a 4-set, 1-way cache with 4-byte blocks, the smallest
// geometry that exercises both the set index and the tag bits.
func directMapped(writeAllocate, writeThrough bool) *Comp {
	return MakeBuilder().
		WithNumSets(4).
		WithWayAssociativity(1).
		WithBlockSize(4).
		WithWriteAllocate(writeAllocate).
		WithWriteThrough(writeThrough).
		Build("L1")
}

var _ = Describe("Comp", func() {
	Context("loads on a direct-mapped write-through cache", func() {
		var c *Comp

		BeforeEach(func() {
			c = directMapped(true, true)
		})

		It("should miss cold and hit on the repeat access", func() {
			c.Access(OpLoad, 0x0)
			c.Access(OpLoad, 0x0)

			stats := c.Stats()
			Expect(stats.TotalLoads).To(Equal(uint64(2)))
			Expect(stats.LoadMisses).To(Equal(uint64(1)))
			Expect(stats.LoadHits).To(Equal(uint64(1)))
			Expect(stats.TotalCycles).To(Equal(uint64(102)))
		})

		It("should keep hitting with no intervening eviction", func() {
			for i := 0; i < 10; i++ {
				c.Access(OpLoad, 0x8)
			}

			stats := c.Stats()
			Expect(stats.LoadMisses).To(Equal(uint64(1)))
			Expect(stats.LoadHits).To(Equal(uint64(9)))
		})

		It("should scale the miss cost with the block size", func() {
			big := MakeBuilder().
				WithNumSets(4).
				WithWayAssociativity(1).
				WithBlockSize(16).
				WithWriteAllocate(true).
				WithWriteThrough(true).
				Build("L1")

			big.Access(OpLoad, 0x0)

			// 1 base cycle plus 100 cycles per 4-byte word.
			Expect(big.Stats().TotalCycles).To(Equal(uint64(401)))
		})
	})

	Context("stores on a write-back cache", func() {
		var c *Comp

		BeforeEach(func() {
			c = directMapped(true, false)
		})

		It("should mark the block dirty on a store hit", func() {
			c.Access(OpLoad, 0x0)
			c.Access(OpStore, 0x0)

			block, ok := c.tags.Lookup(0x0)
			Expect(ok).To(BeTrue())
			Expect(block.IsDirty).To(BeTrue())

			// The deferred write costs nothing at store time.
			Expect(c.Stats().TotalCycles).To(Equal(uint64(102)))
		})

		It("should charge the write-back cost when evicting a dirty block", func() {
			// Store miss: 1 base + 100 transfer, block becomes dirty.
			c.Access(OpStore, 0x0)
			// Same set, different tag: 1 base + 100 transfer + 100
			// write-back of the dirty victim.
			c.Access(OpLoad, 0x10)

			stats := c.Stats()
			Expect(stats.StoreMisses).To(Equal(uint64(1)))
			Expect(stats.LoadMisses).To(Equal(uint64(1)))
			Expect(stats.Evictions).To(Equal(uint64(1)))
			Expect(stats.Writebacks).To(Equal(uint64(1)))
			Expect(stats.TotalCycles).To(Equal(uint64(302)))
		})

		It("should not charge a write-back for a clean victim", func() {
			c.Access(OpLoad, 0x0)
			c.Access(OpLoad, 0x10)

			stats := c.Stats()
			Expect(stats.Evictions).To(Equal(uint64(1)))
			Expect(stats.Writebacks).To(Equal(uint64(0)))
			Expect(stats.TotalCycles).To(Equal(uint64(202)))
		})
	})

	Context("stores on a write-through cache", func() {
		It("should charge the immediate write cost on a store hit", func() {
			c := directMapped(true, true)

			c.Access(OpLoad, 0x0)
			c.Access(OpStore, 0x0)

			stats := c.Stats()
			Expect(stats.StoreHits).To(Equal(uint64(1)))
			Expect(stats.TotalCycles).To(Equal(uint64(101 + 101)))
		})

		It("should never mark a block dirty", func() {
			c := directMapped(true, true)

			for i := 0; i < 16; i++ {
				c.Access(OpStore, uint32(i*4))
			}

			for setID := 0; setID < 4; setID++ {
				for _, block := range c.tags.Set(setID).Blocks {
					Expect(block.IsDirty).To(BeFalse())
				}
			}
			Expect(c.Stats().Writebacks).To(Equal(uint64(0)))
		})
	})

	Context("stores on a no-write-allocate cache", func() {
		var c *Comp

		BeforeEach(func() {
			c = directMapped(false, true)
		})

		It("should write around the cache on a store miss", func() {
			c.Access(OpStore, 0x0)

			stats := c.Stats()
			Expect(stats.StoreMisses).To(Equal(uint64(1)))
			// Base cycle plus the write-around cost. No transfer cost.
			Expect(stats.TotalCycles).To(Equal(uint64(101)))

			_, ok := c.tags.Lookup(0x0)
			Expect(ok).To(BeFalse())
		})

		It("should still hit lines brought in by loads", func() {
			c.Access(OpLoad, 0x0)
			c.Access(OpStore, 0x0)

			stats := c.Stats()
			Expect(stats.StoreHits).To(Equal(uint64(1)))
			Expect(stats.TotalCycles).To(Equal(uint64(101 + 101)))
		})
	})

	Context("eviction policies", func() {
		buildTwoWay := func(strategy string) *Comp {
			return MakeBuilder().
				WithNumSets(1).
				WithWayAssociativity(2).
				WithBlockSize(4).
				WithWriteAllocate(true).
				WithWriteThrough(true).
				WithReplaceStrategy(strategy).
				Build("L1")
		}

		It("should evict the least recently used block under lru", func() {
			c := buildTwoWay("lru")

			c.Access(OpLoad, 0x0) // A
			c.Access(OpLoad, 0x4) // B
			c.Access(OpLoad, 0x0) // touch A
			c.Access(OpLoad, 0x8) // C evicts B

			c.Access(OpLoad, 0x0)
			Expect(c.Stats().LoadHits).To(Equal(uint64(2)))

			c.Access(OpLoad, 0x4)
			Expect(c.Stats().LoadMisses).To(Equal(uint64(4)))
		})

		It("should evict the oldest block under fifo even if it was just used", func() {
			// Same trace as the lru case, but fifo ignores the touch on A
			// and evicts A instead of B.
			c := buildTwoWay("fifo")

			c.Access(OpLoad, 0x0) // A
			c.Access(OpLoad, 0x4) // B
			c.Access(OpLoad, 0x0) // touch A
			c.Access(OpLoad, 0x8) // C evicts A

			c.Access(OpLoad, 0x4)
			Expect(c.Stats().LoadHits).To(Equal(uint64(2)))

			c.Access(OpLoad, 0x0)
			Expect(c.Stats().LoadMisses).To(Equal(uint64(4)))
		})
	})

	Context("counter identities", func() {
		run := func(c *Comp, seed int64) {
			r := rand.New(rand.NewSource(seed))
			for i := 0; i < 10000; i++ {
				op := OpLoad
				if r.Intn(2) == 1 {
					op = OpStore
				}
				c.Access(op, r.Uint32()%0x4000)
			}
		}

		build := func() *Comp {
			return MakeBuilder().
				WithNumSets(16).
				WithWayAssociativity(2).
				WithBlockSize(16).
				WithWriteAllocate(true).
				WithWriteThrough(false).
				Build("L1")
		}

		It("should partition accesses into hits and misses", func() {
			c := build()
			run(c, 1)

			stats := c.Stats()
			Expect(stats.LoadHits + stats.LoadMisses).
				To(Equal(stats.TotalLoads))
			Expect(stats.StoreHits + stats.StoreMisses).
				To(Equal(stats.TotalStores))
			Expect(stats.TotalLoads + stats.TotalStores).
				To(Equal(uint64(10000)))
		})

		It("should never hold two blocks with the same tag in a set", func() {
			c := build()
			run(c, 2)

			for setID := 0; setID < 16; setID++ {
				seen := make(map[uint32]bool)
				for _, block := range c.tags.Set(setID).Blocks {
					if !block.IsValid {
						continue
					}
					Expect(seen[block.Tag]).To(BeFalse())
					seen[block.Tag] = true
				}
			}
		})

		It("should produce the same cycle count for the same trace", func() {
			c1 := build()
			c2 := build()
			run(c1, 3)
			run(c2, 3)

			Expect(c1.Stats()).To(Equal(c2.Stats()))
		})
	})
})

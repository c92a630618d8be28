package cache

// load runs the load path. A hit only refreshes the recency of the block. A
// miss pays the block transfer cost and brings the line in.
func (c *Comp) load(addr uint32) {
	c.stats.TotalLoads++
	c.stats.TotalCycles += baseAccessCycles

	if block, ok := c.tags.Lookup(addr); ok {
		c.stats.LoadHits++
		c.tags.Visit(block, c.nextStamp())

		return
	}

	c.stats.LoadMisses++
	c.stats.TotalCycles += c.blockTransferCycles()
	c.allocate(addr)
}

package cache

import (
	"github.com/sarchlab/cachesim/hooking"
)

// HookPosAccess is the hook position triggered after each completed access.
var HookPosAccess = &hooking.HookPos{Name: "Access"}

// AccessInfo describes one completed access. It is the hook item delivered
// at HookPosAccess.
type AccessInfo struct {
	Seq       uint64
	Op        Op
	Address   uint32
	SetID     int
	Hit       bool
	Eviction  bool
	Writeback bool
	Cycles    uint64
}

func (c *Comp) traceAccess(op Op, addr uint32, before Stats) {
	if c.NumHooks() == 0 {
		return
	}

	after := c.stats
	_, setID := c.tags.Decode(addr)

	info := AccessInfo{
		Seq:       c.accessCount,
		Op:        op,
		Address:   addr,
		SetID:     setID,
		Hit:       after.LoadHits+after.StoreHits > before.LoadHits+before.StoreHits,
		Eviction:  after.Evictions > before.Evictions,
		Writeback: after.Writebacks > before.Writebacks,
		Cycles:    after.TotalCycles - before.TotalCycles,
	}

	c.InvokeHook(hooking.HookCtx{
		Domain: c,
		Pos:    HookPosAccess,
		Item:   info,
	})
}

package trace

import (
	"log"

	"github.com/rs/xid"

	"github.com/sarchlab/cachesim/cache"
	"github.com/sarchlab/cachesim/datarecording"
	"github.com/sarchlab/cachesim/hooking"
)

// A LogTracer is a hook that writes one line per access to a logger.
type LogTracer struct {
	logger *log.Logger
}

// NewLogTracer creates a LogTracer that writes to the given logger.
func NewLogTracer(logger *log.Logger) *LogTracer {
	return &LogTracer{logger: logger}
}

// Func writes one line describing the access.
func (t *LogTracer) Func(ctx hooking.HookCtx) {
	if ctx.Pos != cache.HookPosAccess {
		return
	}

	info := ctx.Item.(cache.AccessInfo)

	outcome := "miss"
	if info.Hit {
		outcome = "hit"
	}

	t.logger.Printf("%d, %s, 0x%08x, set %d, %s, %d cycles",
		info.Seq, info.Op, info.Address, info.SetID, outcome, info.Cycles)
}

// accessEntry represents one access in the database.
type accessEntry struct {
	ID        string
	Seq       uint64
	Op        string
	Address   uint64
	SetID     int
	Hit       bool
	Eviction  bool
	Writeback bool
	Cycles    uint64
}

const accessTableName = "trace_accesses"

// A DBTracer is a hook that records accesses through a DataRecorder.
type DBTracer struct {
	recorder datarecording.DataRecorder
}

// NewDBTracer creates a DBTracer that records into recorder.
func NewDBTracer(recorder datarecording.DataRecorder) *DBTracer {
	recorder.CreateTable(accessTableName, accessEntry{})

	return &DBTracer{recorder: recorder}
}

// Func records the access.
func (t *DBTracer) Func(ctx hooking.HookCtx) {
	if ctx.Pos != cache.HookPosAccess {
		return
	}

	info := ctx.Item.(cache.AccessInfo)

	t.recorder.InsertData(accessTableName, accessEntry{
		ID:        xid.New().String(),
		Seq:       info.Seq,
		Op:        info.Op.String(),
		Address:   uint64(info.Address),
		SetID:     info.SetID,
		Hit:       info.Hit,
		Eviction:  info.Eviction,
		Writeback: info.Writeback,
		Cycles:    info.Cycles,
	})
}

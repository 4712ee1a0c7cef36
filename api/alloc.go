package api

import "time"
import "unsafe"

// Allocator interface for pools of fixed size objects. A pool hands
// out slots of one object size, either carved from chunks or obtained
// straight from the OS allocator. Implementations are not thread
// safe, callers co-ordinate access.
type Allocator interface {
	// Label name of this pool, as displayed in stats.
	Label() string

	// Objectsize size of slots handed out by this pool, after
	// rounding up to pointer alignment.
	Objectsize() int64

	// Inusecount number of slots currently handed out.
	Inusecount() int64

	// Chunked whether this pool is backed by chunks.
	Chunked() bool

	// Alloc one slot from the pool. Returns nil when the OS refuses
	// memory for a new chunk.
	Alloc() unsafe.Pointer

	// Free a slot obtained from this pool's Alloc. The slot becomes
	// invalid for the caller and may be handed out again.
	Free(ptr unsafe.Pointer)

	// Zeroonalloc if set, slots returned by Alloc are zeroed,
	// otherwise their content is unspecified.
	Zeroonalloc(zero bool)

	// Setchunksize recompute the slot capacity for chunks created
	// hereafter, existing chunks keep their capacity.
	Setchunksize(chunksize int64)

	// Getmeter accounting meter for this pool.
	Getmeter() *PoolMeter

	// Getstats fill stats with a snapshot of this pool and return
	// the number of slots in use. Does not mutate the pool.
	Getstats(stats *PoolStats) int64

	// Idletrigger true when the pool's idle memory exceeds the
	// footprint of one chunk shifted left by `shift`, used to decide
	// whether the pool is worth cleaning at all.
	Idletrigger(shift uint) bool

	// Clean reconcile the pool cache back into chunks and release
	// chunks that have been totally idle for maxage. With maxage
	// zero every totally idle chunk is released.
	Clean(maxage time.Duration)

	// Flushmeters fold call counters into the history meters.
	Flushmeters()

	// Flushmetersfull Flushmeters plus byte totals on the histories.
	Flushmetersfull()

	// Release the pool's memory back to the OS, no slot shall be in
	// use.
	Release()
}

// Functions and methods are not thread safe.

package mempool

import "fmt"
import "time"
import "unsafe"

import "github.com/bkwzwz/mempools/api"

// Malloced pool, every slot is a direct OS allocation and every free
// goes straight back to the OS. No chunks, no cache. Meters are still
// maintained so that accounting composes across pool variants.
type Malloced struct {
	pool
}

func newmalloced(pid int64, label string, size int64, zero bool) *Malloced {
	return &Malloced{
		pool: pool{
			label:     label,
			logprefix: fmt.Sprintf("[mempool-%v]", label),
			objsize:   Roundedsize(size),
			pid:       pid,
			zero:      zero,
		},
	}
}

//---- operations

// Alloc implement api.Allocator{} interface.
func (mpool *Malloced) Alloc() unsafe.Pointer {
	ptr := osmalloc(mpool.objsize)
	if ptr == nil {
		errorf("%v cannot allocate %v bytes: %v\n",
			mpool.logprefix, mpool.objsize, ErrorOutofMemory)
		return nil
	}
	mpool.alloccalls++
	mpool.meter.Alloc.Inc(mpool.objsize)
	mpool.meter.Inuse.Inc(mpool.objsize)
	if mpool.zero {
		zeroblock(ptr, mpool.objsize)
	}
	return ptr
}

// Free implement api.Allocator{} interface.
func (mpool *Malloced) Free(ptr unsafe.Pointer) {
	if ptr == nil {
		panic("mempool.free(): nil pointer")
	}
	mpool.freecalls++
	mpool.meter.Inuse.Dec(mpool.objsize)
	mpool.meter.Alloc.Dec(mpool.objsize)
	osfree(ptr)
}

// Chunked implement api.Allocator{} interface.
func (mpool *Malloced) Chunked() bool {
	return false
}

// Setchunksize implement api.Allocator{} interface. No chunks to
// size.
func (mpool *Malloced) Setchunksize(chunksize int64) {
}

// Idletrigger implement api.Allocator{} interface. Nothing idles
// here.
func (mpool *Malloced) Idletrigger(shift uint) bool {
	return false
}

// Clean implement api.Allocator{} interface. Nothing is cached,
// nothing to reconcile.
func (mpool *Malloced) Clean(maxage time.Duration) {
}

//---- statistics and maintenance

// Getstats implement api.Allocator{} interface.
func (mpool *Malloced) Getstats(stats *api.PoolStats) int64 {
	*stats = api.PoolStats{
		Label:      mpool.label,
		Pid:        mpool.pid,
		Objectsize: mpool.objsize,
		Itemsalloc: mpool.meter.Alloc.Level / mpool.objsize,
		Itemsinuse: mpool.meter.Inuse.Level / mpool.objsize,
		Overhead:   int64(unsafe.Sizeof(*mpool)),
	}
	return stats.Itemsinuse
}

// Release implement api.Allocator{} interface. Slots are owned by
// their callers, the pool holds nothing back.
func (mpool *Malloced) Release() {
	if inuse := mpool.Inusecount(); inuse != 0 {
		panicerr("release %q: %v objects in use", mpool.label, inuse)
	}
}

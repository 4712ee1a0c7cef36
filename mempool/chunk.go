// Functions and methods are not thread safe.

package mempool

import "time"
import "unsafe"

// memchunk one contiguous slab of fixed size slots owned by a pool.
// Free slots chain through their first word, terminated by nil, so
// the slab needs no side table of its own free slots.
type memchunk struct {
	base     unsafe.Pointer // slab start
	objsize  int64          // slot size in bytes
	capacity int64          // number of slots in the slab
	inuse    int64          // slots handed out, truthful only after a clean
	freehead unsafe.Pointer // intra chunk free list
	lastref  time.Time      // stamped on every alloc or free touching this chunk
}

// slab allocated from the OS, nil when the OS refuses memory.
func newmemchunk(objsize, capacity int64) *memchunk {
	base := osmalloc(objsize * capacity)
	if base == nil {
		return nil
	}
	chunk := &memchunk{
		base:     base,
		objsize:  objsize,
		capacity: capacity,
		lastref:  time.Now(),
	}
	for i := capacity - 1; i >= 0; i-- {
		slot := unsafe.Pointer(uintptr(base) + uintptr(i*objsize))
		setnextof(slot, chunk.freehead)
		chunk.freehead = slot
	}
	return chunk
}

// O(1)
func (chunk *memchunk) allocslot() (unsafe.Pointer, bool) {
	if chunk.freehead == nil {
		return nil, false
	}
	slot := chunk.freehead
	chunk.freehead = nextof(slot)
	chunk.inuse++
	chunk.lastref = time.Now()
	return slot, true
}

// O(1), ptr shall lie within the slab on a slot boundary.
func (chunk *memchunk) releaseslot(ptr unsafe.Pointer) {
	diffptr := uint64(uintptr(ptr) - uintptr(chunk.base))
	if (diffptr % uint64(chunk.objsize)) != 0 {
		fmsg := "releaseslot(): unaligned pointer: %x,%v"
		panicerr(fmsg, diffptr, chunk.objsize)
	}
	setnextof(ptr, chunk.freehead)
	chunk.freehead = ptr
	chunk.inuse--
	chunk.lastref = time.Now()
}

func (chunk *memchunk) contains(ptr uintptr) bool {
	base := uintptr(chunk.base)
	return ptr >= base && ptr < base+uintptr(chunk.capacity*chunk.objsize)
}

func (chunk *memchunk) empty() bool {
	return chunk.inuse == 0
}

func (chunk *memchunk) full() bool {
	return chunk.inuse == chunk.capacity
}

// slab footprint in bytes.
func (chunk *memchunk) size() int64 {
	return chunk.capacity * chunk.objsize
}

func (chunk *memchunk) release() {
	osfree(chunk.base)
	chunk.base, chunk.freehead = nil, nil
	chunk.capacity, chunk.inuse = 0, 0
}

// Functions and methods are not thread safe.

package mempool

import "fmt"
import "sort"
import "time"
import "unsafe"

import "github.com/bkwzwz/mempools/api"

// Chunked pool, slots are carved out of chunks and recently freed
// slots ride a pool level cache until the next Clean. Alloc prefers
// partially filled chunks so that live slots concentrate and idle
// chunks become releasable.
type Chunked struct {
	pool

	chunksize int64 // footprint, in bytes, for chunks created hereafter
	chunkcap  int64 // slots per chunk, for chunks created hereafter

	chunks     []*memchunk // ordered by base address, for lookup
	freechunks []*memchunk // chunks with free slots, in allocation order

	cache   unsafe.Pointer // freed slots not yet reconciled, LIFO
	ncached int64
}

func newchunked(pid int64, label string, size int64, chunksize int64, zero bool) *Chunked {
	objsize := Roundedsize(size)
	chunksize = roundpage(chunksize)
	if chunksize > Maxchunksize {
		chunksize = Maxchunksize
	}
	chpool := &Chunked{
		pool: pool{
			label:     label,
			logprefix: fmt.Sprintf("[mempool-%v]", label),
			objsize:   objsize,
			pid:       pid,
			zero:      zero,
		},
		chunksize: chunksize,
		chunkcap:  chunkcapacity(chunksize, objsize),
	}
	return chpool
}

//---- operations

// Alloc implement api.Allocator{} interface. Served from the pool
// cache when possible, else from the first chunk with a free slot.
func (chpool *Chunked) Alloc() unsafe.Pointer {
	if ptr := chpool.cache; ptr != nil {
		chpool.cache = nextof(ptr)
		chpool.ncached--
		chpool.savedcalls++
		chpool.meter.Idle.Dec(chpool.objsize)
		chpool.meter.Inuse.Inc(chpool.objsize)
		if chpool.zero {
			zeroblock(ptr, chpool.objsize)
		}
		return ptr
	}

	var ptr unsafe.Pointer
	for len(chpool.freechunks) > 0 {
		if p, ok := chpool.freechunks[0].allocslot(); ok {
			ptr = p
			break
		}
		chpool.freechunks = chpool.freechunks[1:]
	}
	if ptr == nil {
		chunk := chpool.createchunk()
		if chunk == nil {
			return nil
		}
		ptr, _ = chunk.allocslot()
	}
	chpool.alloccalls++
	chpool.meter.Idle.Dec(chpool.objsize)
	chpool.meter.Inuse.Inc(chpool.objsize)
	if chpool.zero {
		zeroblock(ptr, chpool.objsize)
	}
	return ptr
}

// Free implement api.Allocator{} interface. O(1), the slot rides the
// pool cache until the next Clean, the owning chunk is not touched.
func (chpool *Chunked) Free(ptr unsafe.Pointer) {
	if ptr == nil {
		panic("mempool.free(): nil pointer")
	}
	checkfree(chpool, ptr)
	poisonblock(ptr, chpool.objsize)
	setnextof(ptr, chpool.cache)
	chpool.cache = ptr
	chpool.ncached++
	chpool.freecalls++
	chpool.meter.Inuse.Dec(chpool.objsize)
	chpool.meter.Idle.Inc(chpool.objsize)
}

// Chunked implement api.Allocator{} interface.
func (chpool *Chunked) Chunked() bool {
	return true
}

// Setchunksize implement api.Allocator{} interface. Applies only to
// chunks created hereafter, existing chunks keep their capacity.
func (chpool *Chunked) Setchunksize(chunksize int64) {
	chunksize = roundpage(chunksize)
	if chunksize > Maxchunksize {
		chunksize = Maxchunksize
	}
	chpool.chunksize = chunksize
	chpool.chunkcap = chunkcapacity(chunksize, chpool.objsize)
}

// Idletrigger implement api.Allocator{} interface.
func (chpool *Chunked) Idletrigger(shift uint) bool {
	return chpool.meter.Idle.Level > (chpool.chunkcap*chpool.objsize)<<shift
}

//---- cleanup

// Clean implement api.Allocator{} interface. Three phases: drain the
// pool cache back into chunks, re-sort chunks so that nearly full
// chunks are preferred by Alloc, then release totally idle chunks
// that pass the age check. With maxage zero the age check always
// passes.
func (chpool *Chunked) Clean(maxage time.Duration) {
	if len(chpool.chunks) == 0 {
		return
	}

	// phase A: every cached slot goes home to its owning chunk,
	// after this chunk occupancies are truthful.
	for ptr := chpool.cache; ptr != nil; {
		next := nextof(ptr)
		chunk := chpool.findchunk(uintptr(ptr))
		if chunk == nil {
			panicerr("clean(): %p not from pool %q", ptr, chpool.label)
		}
		chunk.releaseslot(ptr)
		ptr = next
	}
	chpool.cache, chpool.ncached = nil, 0

	// phase B: nearly full chunks first, empty chunks sink to the
	// tail, ties broken by address.
	sorted := make([]*memchunk, len(chpool.chunks))
	copy(sorted, chpool.chunks)
	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if x, y := a.empty(), b.empty(); x != y {
			return y
		}
		if a.inuse != b.inuse {
			return a.inuse > b.inuse
		}
		return uintptr(a.base) < uintptr(b.base)
	})

	// phase C: release totally idle chunks, tail order.
	now := time.Now()
	live := sorted[:0]
	for _, chunk := range sorted {
		if chunk.empty() && (maxage == 0 || now.Sub(chunk.lastref) >= maxage) {
			chpool.meter.Alloc.Dec(chunk.size())
			chpool.meter.Idle.Dec(chunk.size())
			debugf("%v released chunk %p, %v slots\n",
				chpool.logprefix, chunk.base, chunk.capacity)
			chunk.release()
			continue
		}
		live = append(live, chunk)
	}

	chpool.chunks = chpool.chunks[:0]
	chpool.freechunks = chpool.freechunks[:0]
	for _, chunk := range live {
		chpool.chunks = append(chpool.chunks, chunk)
		if !chunk.full() {
			chpool.freechunks = append(chpool.freechunks, chunk)
		}
	}
	sort.Slice(chpool.chunks, func(i, j int) bool {
		return uintptr(chpool.chunks[i].base) < uintptr(chpool.chunks[j].base)
	})
}

//---- statistics and maintenance

// Getstats implement api.Allocator{} interface. Chunk occupancies are
// approximate between cleans, freed slots park on the pool cache.
func (chpool *Chunked) Getstats(stats *api.PoolStats) int64 {
	*stats = api.PoolStats{
		Label:         chpool.label,
		Pid:           chpool.pid,
		Objectsize:    chpool.objsize,
		Chunkcapacity: chpool.chunkcap,
		Chunksize:     chpool.chunkcap * chpool.objsize,
		Chunksalloc:   int64(len(chpool.chunks)),
	}
	for _, chunk := range chpool.chunks {
		switch {
		case chunk.empty():
			stats.Chunksfree++
		case chunk.full():
			stats.Chunksinuse++
		default:
			stats.Chunkspartial++
		}
	}
	stats.Itemsalloc = chpool.meter.Alloc.Level / chpool.objsize
	stats.Itemsinuse = chpool.meter.Inuse.Level / chpool.objsize
	stats.Itemsidle = chpool.meter.Idle.Level / chpool.objsize
	stats.Overhead = chpool.overhead()
	return stats.Itemsinuse
}

// Release implement api.Allocator{} interface.
func (chpool *Chunked) Release() {
	if inuse := chpool.Inusecount(); inuse != 0 {
		panicerr("release %q: %v objects in use", chpool.label, inuse)
	}
	for _, chunk := range chpool.chunks {
		chpool.meter.Alloc.Dec(chunk.size())
		chpool.meter.Idle.Dec(chunk.size())
		chunk.release()
	}
	chpool.chunks, chpool.freechunks = nil, nil
	chpool.cache, chpool.ncached = nil, 0
}

//---- local functions

func (chpool *Chunked) createchunk() *memchunk {
	chunk := newmemchunk(chpool.objsize, chpool.chunkcap)
	if chunk == nil {
		errorf("%v cannot grow by %v bytes: %v\n",
			chpool.logprefix, chpool.objsize*chpool.chunkcap, ErrorOutofMemory)
		return nil
	}
	off := sort.Search(len(chpool.chunks), func(i int) bool {
		return uintptr(chpool.chunks[i].base) > uintptr(chunk.base)
	})
	chpool.chunks = append(chpool.chunks, nil)
	copy(chpool.chunks[off+1:], chpool.chunks[off:])
	chpool.chunks[off] = chunk
	chpool.freechunks = append(chpool.freechunks, chunk)
	chpool.meter.Alloc.Inc(chunk.size())
	chpool.meter.Idle.Inc(chunk.size())
	debugf("%v new chunk %p, %v slots of %v bytes\n",
		chpool.logprefix, chunk.base, chunk.capacity, chunk.objsize)
	return chunk
}

// O(log C) address range lookup over chunks ordered by base.
func (chpool *Chunked) findchunk(ptr uintptr) *memchunk {
	off := sort.Search(len(chpool.chunks), func(i int) bool {
		return uintptr(chpool.chunks[i].base) > ptr
	})
	if off == 0 {
		return nil
	}
	if chunk := chpool.chunks[off-1]; chunk.contains(ptr) {
		return chunk
	}
	return nil
}

func (chpool *Chunked) overhead() int64 {
	self := int64(unsafe.Sizeof(*chpool))
	chunks := int64(len(chpool.chunks)) * int64(unsafe.Sizeof(memchunk{}))
	slices := int64(cap(chpool.chunks)+cap(chpool.freechunks)) *
		int64(unsafe.Sizeof((*memchunk)(nil)))
	return self + chunks + slices
}

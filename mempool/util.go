package mempool

//#include <stdlib.h>
import "C"

import "errors"
import "fmt"
import "unsafe"

// ErrorOutofMemory the OS refused to grow a pool.
var ErrorOutofMemory = errors.New("mempool.outofmemory")

// Roundedsize object size after rounding up to Alignment. Never
// smaller than a pointer, a free slot stores the freelist link in
// place.
func Roundedsize(size int64) int64 {
	if size < Alignment {
		return Alignment
	}
	if mod := size % Alignment; mod != 0 {
		size += Alignment - mod
	}
	return size
}

// slots per chunk for a chunksize footprint, at most Maxfree and
// within Maxchunksize bytes. At least Minfree, unless that would
// exceed Maxchunksize, then as many as fit, never fewer than one.
func chunkcapacity(chunksize, size int64) int64 {
	capacity := chunksize / size
	if capacity < Minfree {
		capacity = Minfree
	}
	if capacity*size > Maxchunksize {
		capacity = Maxchunksize / size
	}
	if capacity > Maxfree {
		capacity = Maxfree
	}
	if capacity < 1 {
		capacity = 1
	}
	return capacity
}

func roundpage(bytes int64) int64 {
	return ((bytes + Pagesize - 1) / Pagesize) * Pagesize
}

func osmalloc(size int64) unsafe.Pointer {
	return C.malloc(C.size_t(size))
}

func osfree(ptr unsafe.Pointer) {
	C.free(ptr)
}

// free slots chain through their first word.
func nextof(ptr unsafe.Pointer) unsafe.Pointer {
	return *(*unsafe.Pointer)(ptr)
}

func setnextof(ptr, next unsafe.Pointer) {
	*(*unsafe.Pointer)(ptr) = next
}

var zeroblkinit = make([]byte, 1024)

func zeroblock(ptr unsafe.Pointer, size int64) {
	block := unsafe.Slice((*byte)(ptr), size)
	for n := copy(block, zeroblkinit); int64(n) < size; {
		n += copy(block[n:], zeroblkinit)
	}
}

func panicerr(fmsg string, args ...interface{}) {
	panic(fmt.Errorf(fmsg, args...))
}

//go:build debug
// +build debug

package mempool

import "unsafe"

var poolblkinit = make([]byte, 1024)

func init() {
	for i := 0; i < len(poolblkinit); i++ {
		poolblkinit[i] = 0xff
	}
}

// scribble over freed slots so that use after free surfaces quickly.
func poisonblock(ptr unsafe.Pointer, size int64) {
	block := unsafe.Slice((*byte)(ptr), size)
	for n := copy(block, poolblkinit); int64(n) < size; {
		n += copy(block[n:], poolblkinit)
	}
}

// a pointer freed into a chunked pool must belong to one of its
// chunks.
func checkfree(pool *Chunked, ptr unsafe.Pointer) {
	if pool.findchunk(uintptr(ptr)) == nil {
		panicerr("mempool.free(): %p not from pool %q", ptr, pool.label)
	}
}

package mempool

import "unsafe"

import "github.com/bkwzwz/mempools/api"

// AllocatorProxy late binds a pool for object types that cannot name
// their pool at construction time. The first Alloc or Free creates
// the pool through the process wide registry, the proxy itself owns
// no memory. Typically one proxy per object type, labelled after it.
type AllocatorProxy struct {
	label string
	size  int64
	mpool api.Allocator
}

// NewAllocatorProxy label and object size are captured now, the pool
// is created on first use.
func NewAllocatorProxy(label string, size int64) *AllocatorProxy {
	return &AllocatorProxy{label: label, size: size}
}

func (proxy *AllocatorProxy) getallocator() api.Allocator {
	if proxy.mpool == nil {
		proxy.mpool = GetInstance().Create(proxy.label, proxy.size)
	}
	return proxy.mpool
}

// Alloc one object from the proxied pool.
func (proxy *AllocatorProxy) Alloc() unsafe.Pointer {
	return proxy.getallocator().Alloc()
}

// Free an object obtained from this proxy's Alloc.
func (proxy *AllocatorProxy) Free(ptr unsafe.Pointer) {
	proxy.getallocator().Free(ptr)
}

// Label of the proxied pool.
func (proxy *AllocatorProxy) Label() string {
	return proxy.label
}

// Objectsize of the proxied pool, after rounding.
func (proxy *AllocatorProxy) Objectsize() int64 {
	return proxy.getallocator().Objectsize()
}

// Inusecount of the proxied pool.
func (proxy *AllocatorProxy) Inusecount() int64 {
	return proxy.getallocator().Inusecount()
}

// Getmeter of the proxied pool.
func (proxy *AllocatorProxy) Getmeter() *api.PoolMeter {
	return proxy.getallocator().Getmeter()
}

// Getstats of the proxied pool.
func (proxy *AllocatorProxy) Getstats(stats *api.PoolStats) int64 {
	return proxy.getallocator().Getstats(stats)
}

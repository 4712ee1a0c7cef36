package mempool

import "testing"
import "time"
import "unsafe"

import s "github.com/bnclabs/gosettings"
import "github.com/stretchr/testify/require"

import "github.com/bkwzwz/mempools/api"

func TestRegistryCreate(t *testing.T) {
	reg := NewRegistry(nil)
	a := reg.Create("A", 16)
	b := reg.Create("B", 16)
	require.NotSame(t, a, b)
	require.Equal(t, int64(2), reg.Poolcount())
	require.True(t, a.Chunked())
	require.Equal(t, "A", a.Label())

	// each pool has its own chunks and meters, the global meter is
	// the sum.
	pa, pb := a.Alloc(), b.Alloc()
	require.NotEqual(t, pa, pb)
	reg.Flushmeters()
	meter := reg.Getmeter()
	sum := a.Getmeter().Alloc.Level + b.Getmeter().Alloc.Level
	require.Equal(t, sum, meter.Alloc.Level)
	require.Equal(t, meter.Inuse.Level+meter.Idle.Level, meter.Alloc.Level)

	a.Free(pa)
	b.Free(pb)
	reg.Release()
}

func TestRegistryCreateReject(t *testing.T) {
	reg := NewRegistry(nil)
	require.Panics(t, func() { reg.Create("zero", 0) })
	require.Panics(t, func() { reg.Create("negative", -10) })
	require.Panics(t, func() { reg.Create("Huge", 500000) })
	require.NotPanics(t, func() { reg.Create("edge", Maxchunksize) })
	reg.Release()
}

func TestRegistryIdleAge(t *testing.T) {
	reg := NewRegistry(nil)
	mpool := reg.Create("idleage", 32)
	chpool := mpool.(*Chunked)

	ptrs := make([]unsafe.Pointer, 0, 1000)
	for i := 0; i < 1000; i++ {
		ptrs = append(ptrs, mpool.Alloc())
	}
	for _, ptr := range ptrs {
		mpool.Free(ptr)
	}

	// under the default idle limit young chunks survive an aged
	// clean.
	reg.Clean(3600 * time.Second)
	require.Equal(t, 2, len(chpool.chunks))
	require.Equal(t, int64(2*512*32), mpool.Getmeter().Idle.Level)

	// an aggressive clean releases everything
	reg.Clean(0)
	require.Equal(t, 0, len(chpool.chunks))
	require.Equal(t, int64(0), mpool.Getmeter().Alloc.Level)
	reg.Release()
}

func TestRegistryIdleLimit(t *testing.T) {
	reg := NewRegistry(nil)
	reg.Setidlelimit(0)
	require.Equal(t, int64(0), reg.Idlelimit())

	mpool := reg.Create("idlelimit", 64)
	ptrs := make([]unsafe.Pointer, 0, 100)
	for i := 0; i < 100; i++ {
		ptrs = append(ptrs, mpool.Alloc())
	}
	for _, ptr := range ptrs {
		mpool.Free(ptr)
	}

	// the limit is exceeded, empty chunks go regardless of age
	reg.Clean(1000000 * time.Second)
	require.Equal(t, int64(0), mpool.Getmeter().Alloc.Level)
	reg.Release()
}

func TestRegistryFlushmeters(t *testing.T) {
	reg := NewRegistry(nil)
	mpool := reg.Create("flush", 40)
	chpool := mpool.(*Chunked)

	ptrs := make([]unsafe.Pointer, 0, 10)
	for i := 0; i < 10; i++ {
		ptrs = append(ptrs, mpool.Alloc())
	}
	for _, ptr := range ptrs[:4] {
		mpool.Free(ptr)
	}
	reg.Flushmeters()

	m := mpool.Getmeter()
	require.Equal(t, int64(10), m.Gballocated.Count)
	require.Equal(t, int64(10*40), m.Gballocated.Bytes)
	require.Equal(t, int64(10), m.Gboallocated.Count)
	require.Equal(t, int64(4), m.Gbfreed.Count)
	require.Equal(t, int64(4*40), m.Gbfreed.Bytes)
	require.Equal(t, int64(0), chpool.alloccalls)
	require.Equal(t, int64(0), chpool.freecalls)
	require.Equal(t, int64(10), reg.Getmeter().Gballocated.Count)

	// flushing again adds nothing
	reg.Flushmeters()
	require.Equal(t, int64(10), mpool.Getmeter().Gballocated.Count)

	for _, ptr := range ptrs[4:] {
		mpool.Free(ptr)
	}
	reg.Release()
}

func TestRegistryGlobalstats(t *testing.T) {
	reg := NewRegistry(nil)
	reg.Setidlelimit(1024 * 1024)
	a := reg.Create("gs.a", 32)
	b := reg.Create("gs.b", 64)

	ptrs := make([]unsafe.Pointer, 0, 100)
	for i := 0; i < 100; i++ {
		ptrs = append(ptrs, a.Alloc())
	}

	gs := &api.GlobalStats{}
	dirty := reg.Globalstats(gs)
	require.Equal(t, int64(1), dirty)
	require.Equal(t, int64(1), gs.Poolsinuse)
	require.Equal(t, int64(2), gs.Poolsalloc)
	require.Equal(t, int64(1), gs.Chunksalloc)
	require.Equal(t, int64(100), gs.Itemsinuse)
	require.Equal(t, int64(512), gs.Itemsalloc)
	require.Equal(t, int64(1024*1024), gs.Idlelimit)
	require.Equal(t, gs.Meter.Inuse.Level+gs.Meter.Idle.Level,
		gs.Meter.Alloc.Level)

	// snapshots are idempotent
	second := &api.GlobalStats{}
	reg.Globalstats(second)
	require.Equal(t, gs, second)

	for _, ptr := range ptrs {
		a.Free(ptr)
	}
	_ = b
	reg.Release()
}

func TestRegistryIterate(t *testing.T) {
	reg := NewRegistry(nil)
	labels := []string{"it.a", "it.b", "it.c"}
	for _, label := range labels {
		reg.Create(label, 32)
	}

	iter, got := reg.Iterate(), []string{}
	for mpool := iter.Next(); mpool != nil; mpool = iter.Next() {
		got = append(got, mpool.Label())
	}
	iter.Done()
	require.Equal(t, labels, got)
	require.Nil(t, iter.Next())
	reg.Release()
}

func TestRegistryChunking(t *testing.T) {
	reg := NewRegistry(nil)
	reg.Setdefaultpoolchunking(false)
	plain := reg.Create("plain", 64)
	require.False(t, plain.Chunked())

	// per pool opt-in overrides the default
	chunked := reg.Createwith("chunked", 64, s.Settings{"chunked": true})
	require.True(t, chunked.Chunked())

	reg.Setdefaultpoolchunking(true)
	require.True(t, reg.Create("default", 64).Chunked())
	reg.Release()
}

func TestRegistryInstance(t *testing.T) {
	reg := Init(nil)
	require.Same(t, reg, GetInstance())
	require.Same(t, GetInstance(), GetInstance())
	reg.Release()

	// a released instance is replaced on next use
	require.NotNil(t, GetInstance())
	GetInstance().Release()
}

func TestRegistryTotalallocated(t *testing.T) {
	reg := NewRegistry(nil)
	mpool := reg.Create("total", 32)
	ptr := mpool.Alloc()
	require.Equal(t, int64(512*32), reg.Totalallocated())
	mpool.Free(ptr)
	reg.Release()
}

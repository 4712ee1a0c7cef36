package mempool

import "testing"

import "github.com/stretchr/testify/require"

import "github.com/bkwzwz/mempools/api"

func TestProxyLateBinding(t *testing.T) {
	reg := Init(nil)
	proxy := NewAllocatorProxy("proxy.object", 48)

	// no pool exists until the first allocation
	require.Equal(t, int64(0), reg.Poolcount())
	ptr := proxy.Alloc()
	require.NotNil(t, ptr)
	require.Equal(t, int64(1), reg.Poolcount())
	require.Equal(t, int64(48), proxy.Objectsize())
	require.Equal(t, int64(1), proxy.Inusecount())

	// subsequent calls forward to the memoized pool
	other := proxy.Alloc()
	require.Equal(t, int64(1), reg.Poolcount())
	require.Equal(t, int64(2), proxy.Inusecount())

	stats := &api.PoolStats{}
	inuse := proxy.Getstats(stats)
	require.Equal(t, int64(2), inuse)
	require.Equal(t, "proxy.object", stats.Label)
	require.Equal(t, proxy.Getmeter().Inuse.Level, int64(2*48))

	proxy.Free(ptr)
	proxy.Free(other)
	require.Equal(t, int64(0), proxy.Inusecount())
	reg.Release()
}

func TestProxyLabel(t *testing.T) {
	proxy := NewAllocatorProxy("proxy.label", 16)
	require.Equal(t, "proxy.label", proxy.Label())
}

// Functions and methods are not thread safe.

package mempool

import "time"
import "unsafe"

import s "github.com/bnclabs/gosettings"

import "github.com/bkwzwz/mempools/api"

// Registry process wide list of pools, the idle memory hint, the
// default chunking policy and the global meter. Pools are created
// through the registry and live until process exit.
type Registry struct {
	pools     []api.Allocator
	idlelimit int64
	themeter  api.PoolMeter
	setts     s.Settings // holds the default chunking for new pools
	npids     int64
}

var instance *Registry

// GetInstance the process wide registry, initialized with
// Defaultsettings on first use.
func GetInstance() *Registry {
	if instance == nil {
		instance = NewRegistry(Defaultsettings())
	}
	return instance
}

// Init the process wide registry with application settings, to be
// called before the first Create. Refer Defaultsettings for the
// settings understood.
func Init(setts s.Settings) *Registry {
	instance = NewRegistry(setts)
	return instance
}

// NewRegistry a free standing registry, applications normally use
// the process wide instance via GetInstance or Init.
func NewRegistry(setts s.Settings) *Registry {
	setts = (s.Settings{}).Mixin(Defaultsettings(), setts)
	reg := &Registry{
		pools:     make([]api.Allocator, 0, 64),
		idlelimit: setts.Int64("idlelimit"),
		setts:     setts,
	}
	return reg
}

//---- pool management

// Create a new pool of fixed size objects, chunk backed or malloc
// backed per the registry's default chunking. The object size is
// rounded up to pointer alignment, sizes of zero or beyond
// Maxchunksize are rejected.
func (reg *Registry) Create(label string, size int64) api.Allocator {
	return reg.Createwith(label, size, nil)
}

// Createwith a new pool overriding registry defaults, understands
// the "chunked", "chunksize" and "zero" settings.
func (reg *Registry) Createwith(label string, size int64, setts s.Settings) api.Allocator {
	if size <= 0 {
		panicerr("create %q: invalid object size %v", label, size)
	} else if size > Maxchunksize {
		panicerr("create %q: object size %v exceeds %v", label, size, Maxchunksize)
	}
	setts = (s.Settings{}).Mixin(reg.setts, setts)

	reg.npids++
	var mpool api.Allocator
	if setts.Bool("chunked") {
		mpool = newchunked(
			reg.npids, label, size, setts.Int64("chunksize"), setts.Bool("zero"))
	} else {
		mpool = newmalloced(reg.npids, label, size, setts.Bool("zero"))
	}
	reg.pools = append(reg.pools, mpool)
	debugf("[mempools] created pool %q (pid %v), objsize %v, chunked %v\n",
		label, reg.npids, mpool.Objectsize(), mpool.Chunked())
	return mpool
}

// Setdefaultpoolchunking whether pools created hereafter are chunk
// backed.
func (reg *Registry) Setdefaultpoolchunking(chunked bool) {
	reg.setts["chunked"] = chunked
}

// Defaultpoolchunking current default for new pools.
func (reg *Registry) Defaultpoolchunking() bool {
	return reg.setts.Bool("chunked")
}

// Setidlelimit upper limit, in bytes, to the idle memory kept across
// pools. Not a strict limit but a hint, when pools are over this
// limit totally idle chunks are released immediately by Clean,
// otherwise only chunks unreferenced for long enough are released.
func (reg *Registry) Setidlelimit(bytes int64) {
	reg.idlelimit = bytes
}

// Idlelimit current idle memory hint, in bytes.
func (reg *Registry) Idlelimit() int64 {
	return reg.idlelimit
}

// Poolcount number of pools created since init.
func (reg *Registry) Poolcount() int64 {
	return int64(len(reg.pools))
}

//---- cleanup

// Clean main cleanup handler, to be called periodically, some tens
// of seconds to minutes apart. Reconciles pool caches back into
// their chunks and releases chunks that have been totally idle for
// maxage. When pools hold more idle memory than the idle limit every
// totally idle chunk is released regardless of age. Otherwise, for a
// non-zero maxage, only pools whose Idletrigger(1) holds are visited,
// the rest keep their caches and chunks until a later Clean.
func (reg *Registry) Clean(maxage time.Duration) {
	reg.Flushmeters()
	shift := uint(1)
	if reg.themeter.Idle.Level > reg.idlelimit {
		maxage, shift = 0, 0
	}
	for _, mpool := range reg.pools {
		if maxage == 0 || mpool.Idletrigger(shift) {
			mpool.Clean(maxage)
		}
	}
}

//---- statistics and maintenance

// Flushmeters fold per pool call counters into their history meters
// and recompute the global meter.
func (reg *Registry) Flushmeters() {
	reg.themeter = api.PoolMeter{}
	for _, mpool := range reg.pools {
		mpool.Flushmetersfull()
		reg.themeter.Accumulate(mpool.Getmeter())
	}
}

// Getmeter the global meter, valid as of the last Flushmeters or
// Clean.
func (reg *Registry) Getmeter() *api.PoolMeter {
	return &reg.themeter
}

// Totalallocated bytes currently owned by pools across the registry.
func (reg *Registry) Totalallocated() int64 {
	total := int64(0)
	for _, mpool := range reg.pools {
		total += mpool.Getmeter().Alloc.Level
	}
	return total
}

// Globalstats fill stats with aggregates across every pool and
// return the number of dirty pools, pools with at least one object
// in use.
func (reg *Registry) Globalstats(stats *api.GlobalStats) int64 {
	*stats = api.GlobalStats{Idlelimit: reg.idlelimit, Poolsalloc: reg.npids}
	meter, ps := &api.PoolMeter{}, &api.PoolStats{}
	for _, mpool := range reg.pools {
		if inuse := mpool.Getstats(ps); inuse > 0 {
			stats.Poolsinuse++
		}
		stats.Chunksalloc += ps.Chunksalloc
		stats.Chunksinuse += ps.Chunksinuse
		stats.Chunkspartial += ps.Chunkspartial
		stats.Chunksfree += ps.Chunksfree
		stats.Itemsalloc += ps.Itemsalloc
		stats.Itemsinuse += ps.Itemsinuse
		stats.Itemsidle += ps.Itemsidle
		stats.Overhead += ps.Overhead
		meter.Accumulate(mpool.Getmeter())
	}
	stats.Overhead += int64(unsafe.Sizeof(*reg))
	stats.Meter = meter
	return stats.Poolsinuse
}

// Release every pool's memory back to the OS and forget the pools.
// Meant for tests and tools, servers let process exit do this.
func (reg *Registry) Release() {
	for _, mpool := range reg.pools {
		mpool.Clean(0)
		mpool.Release()
	}
	reg.pools = reg.pools[:0]
	reg.themeter = api.PoolMeter{}
	if instance == reg {
		instance = nil
	}
}

//---- iteration

// PoolIterator yields each pool once. Callers shall not create pools
// while an iteration is in flight.
type PoolIterator struct {
	pools []api.Allocator
	off   int
}

// Iterate over pools in creation order.
func (reg *Registry) Iterate() *PoolIterator {
	return &PoolIterator{pools: reg.pools}
}

// Next pool, nil after the last one.
func (iter *PoolIterator) Next() api.Allocator {
	if iter.off >= len(iter.pools) {
		return nil
	}
	mpool := iter.pools[iter.off]
	iter.off++
	return mpool
}

// Done with this iterator.
func (iter *PoolIterator) Done() {
	iter.pools, iter.off = nil, 0
}

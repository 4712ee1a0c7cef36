package api

// PoolStats statistical snapshot of a single pool, filled by the
// pool's Getstats.
type PoolStats struct {
	Label         string
	Pid           int64 // creation sequence within the registry
	Objectsize    int64
	Chunkcapacity int64 // slots per chunk
	Chunksize     int64 // chunk footprint in bytes

	Chunksalloc   int64 // chunks owned by the pool
	Chunksinuse   int64 // chunks with every slot handed out
	Chunkspartial int64 // chunks partially handed out
	Chunksfree    int64 // chunks with no slot handed out

	Itemsalloc int64 // slots owned by the pool
	Itemsinuse int64 // slots handed out
	Itemsidle  int64 // slots owned but not handed out

	Overhead int64 // book-keeping bytes outside the slabs
}

// GlobalStats aggregate of PoolStats across every pool in the
// registry, filled by Globalstats.
type GlobalStats struct {
	Meter *PoolMeter // accumulated across pools

	Poolsalloc int64 // pools created since init
	Poolsinuse int64 // pools with at least one slot handed out

	Chunksalloc   int64
	Chunksinuse   int64
	Chunkspartial int64
	Chunksfree    int64

	Itemsalloc int64
	Itemsinuse int64
	Itemsidle  int64

	Overhead  int64
	Idlelimit int64
}

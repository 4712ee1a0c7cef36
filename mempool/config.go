package mempool

import s "github.com/bnclabs/gosettings"
import "github.com/cloudfoundry/gosigar"

// Alignment object sizes and slot addresses are multiples of
// Alignment. Free slots store the freelist link in place, so a slot
// is never smaller than a pointer.
const Alignment = int64(8)

// Pagesize chunk footprints are rounded up to multiples of Pagesize.
const Pagesize = int64(4096)

// Chunksize default chunk footprint in bytes. Can be tuned per pool
// with Setchunksize.
const Chunksize = Pagesize * 4

// Maxchunksize chunk footprints are capped at this many bytes, and
// objects bigger than this cannot be pooled.
const Maxchunksize = int64(256 * 1024)

// Minfree minimum number of slots in a chunk, for objects small
// enough that Minfree slots fit within Maxchunksize.
const Minfree = int64(32)

// Maxfree maximum number of slots in a chunk, the largest count a
// 16-bit quantity can hold.
const Maxfree = int64(65535)

// Idlelimit default upper limit, in bytes, on idle memory kept
// across pools. Large enough to behave as unlimited.
const Idlelimit = int64(2 * 1024 * 1024 * 1024)

// Defaultsettings for the registry and for pools created through it.
//
// "chunked" (bool, default: true)
//
//	Newly created pools shall be chunk backed. Pools can opt out
//	through Createwith.
//
// "chunksize" (int64, default: <Chunksize>)
//
//	Chunk footprint in bytes, rounded up to Pagesize and capped
//	at Maxchunksize.
//
// "zero" (bool, default: true)
//
//	Zero initialize slots handed out by Alloc.
//
// "idlelimit" (int64, default: <Idlelimit>)
//
//	Hint, in bytes, how much idle memory pools may keep between
//	cleanups, capped at the free RAM on this system.
func Defaultsettings() s.Settings {
	mem := sigar.Mem{}
	mem.Get()
	idlelimit := Idlelimit
	if mem.Free > 0 && int64(mem.Free) < idlelimit {
		idlelimit = int64(mem.Free)
	}
	return s.Settings{
		"chunked":   true,
		"chunksize": Chunksize,
		"zero":      true,
		"idlelimit": idlelimit,
	}
}

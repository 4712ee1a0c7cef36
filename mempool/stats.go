package mempool

import "fmt"
import "strings"

import humanize "github.com/dustin/go-humanize"

import "github.com/bkwzwz/mempools/api"

// Logstats render every pool and the global meter through the
// logger, byte counts humanized. Enable with LogComponents.
func (reg *Registry) Logstats() {
	ps := &api.PoolStats{}
	outs := []string{}
	for _, mpool := range reg.pools {
		mpool.Getstats(ps)
		fmsg := "  %-24q objsize %4v: %6v inuse, %6v idle, " +
			"%4v chunks (%v free)"
		outs = append(outs, fmt.Sprintf(
			fmsg, ps.Label, ps.Objectsize, ps.Itemsinuse, ps.Itemsidle,
			ps.Chunksalloc, ps.Chunksfree))
	}

	gs := &api.GlobalStats{}
	dirty := reg.Globalstats(gs)
	infof("[mempools] %v pools, %v dirty:\n%v\n",
		len(reg.pools), dirty, strings.Join(outs, "\n"))
	fmsg := "[mempools] %v allocated, %v inuse, %v idle, " +
		"%v overhead, idle limit %v\n"
	infof(fmsg,
		humanize.IBytes(uint64(gs.Meter.Alloc.Level)),
		humanize.IBytes(uint64(gs.Meter.Inuse.Level)),
		humanize.IBytes(uint64(gs.Meter.Idle.Level)),
		humanize.IBytes(uint64(gs.Overhead)),
		humanize.IBytes(uint64(gs.Idlelimit)))
}

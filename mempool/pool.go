package mempool

import "github.com/bkwzwz/mempools/api"

// pool book-keeping common to both pool variants. The variants form
// a closed set, Chunked and Malloced, dispatched through the
// api.Allocator contract.
type pool struct {
	label     string
	logprefix string
	objsize   int64 // post rounding
	pid       int64 // creation sequence within the registry
	zero      bool  // zero initialize slots handed out by Alloc

	meter      api.PoolMeter
	alloccalls int64
	freecalls  int64
	savedcalls int64
}

// Label implement api.Allocator{} interface.
func (p *pool) Label() string {
	return p.label
}

// Objectsize implement api.Allocator{} interface.
func (p *pool) Objectsize() int64 {
	return p.objsize
}

// Inusecount implement api.Allocator{} interface.
func (p *pool) Inusecount() int64 {
	return p.meter.Inuse.Level / p.objsize
}

// Zeroonalloc implement api.Allocator{} interface.
func (p *pool) Zeroonalloc(zero bool) {
	p.zero = zero
}

// Getmeter implement api.Allocator{} interface.
func (p *pool) Getmeter() *api.PoolMeter {
	return &p.meter
}

// Flushmeters implement api.Allocator{} interface.
func (p *pool) Flushmeters() {
	if calls := p.freecalls; calls > 0 {
		p.meter.Gbfreed.Count += calls
		p.freecalls = 0
	}
	if calls := p.alloccalls; calls > 0 {
		p.meter.Gballocated.Count += calls
		p.meter.Gboallocated.Count += calls
		p.alloccalls = 0
	}
	if calls := p.savedcalls; calls > 0 {
		p.meter.Gbsaved.Count += calls
		p.savedcalls = 0
	}
}

// Flushmetersfull implement api.Allocator{} interface.
func (p *pool) Flushmetersfull() {
	p.Flushmeters()
	p.meter.Gballocated.Bytes = p.meter.Gballocated.Count * p.objsize
	p.meter.Gboallocated.Bytes = p.meter.Gboallocated.Count * p.objsize
	p.meter.Gbsaved.Bytes = p.meter.Gbsaved.Count * p.objsize
	p.meter.Gbfreed.Bytes = p.meter.Gbfreed.Count * p.objsize
}

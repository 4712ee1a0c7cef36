package api

// Meter tracks a scalar level along with its high-water mark and the
// monotonic total of everything ever accounted into it.
type Meter struct {
	Level  int64 // current level
	Hwater int64 // peak level since reset
	Count  int64 // monotonic total
}

// Inc account n units into the meter.
func (m *Meter) Inc(n int64) {
	m.Level += n
	m.Count += n
	if m.Level > m.Hwater {
		m.Hwater = m.Level
	}
}

// Dec account n units out of the meter. Underflowing the level is a
// logic error, refer decrlevel() for build specific behaviour.
func (m *Meter) Dec(n int64) {
	m.Level = decrlevel(m.Level, n)
}

// Gbcount cumulative history of calls and bytes, folded in by
// Flushmeters and never decremented.
type Gbcount struct {
	Count int64
	Bytes int64
}

// PoolMeter tracks memory usage of a single pool, at all times
// alloc = inuse + idle.
type PoolMeter struct {
	Alloc Meter
	Inuse Meter
	Idle  Meter

	// history of allocations
	Gballocated  Gbcount
	Gboallocated Gbcount // lifetime history, survives meter resets

	// history of allocations served from the pool cache
	Gbsaved Gbcount

	// history of free calls
	Gbfreed Gbcount
}

// Accumulate fold pool meter `other` into this meter. Global meter is
// the accumulation of every pool's meter.
func (pm *PoolMeter) Accumulate(other *PoolMeter) {
	accmeter(&pm.Alloc, &other.Alloc)
	accmeter(&pm.Inuse, &other.Inuse)
	accmeter(&pm.Idle, &other.Idle)
	accgb(&pm.Gballocated, &other.Gballocated)
	accgb(&pm.Gboallocated, &other.Gboallocated)
	accgb(&pm.Gbsaved, &other.Gbsaved)
	accgb(&pm.Gbfreed, &other.Gbfreed)
}

func accmeter(dst, src *Meter) {
	dst.Level += src.Level
	dst.Count += src.Count
	if dst.Level > dst.Hwater {
		dst.Hwater = dst.Level
	}
}

func accgb(dst, src *Gbcount) {
	dst.Count += src.Count
	dst.Bytes += src.Bytes
}

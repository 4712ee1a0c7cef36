package api

import "testing"

func TestMeterIncDec(t *testing.T) {
	m := &Meter{}
	m.Inc(100)
	if m.Level != 100 {
		t.Errorf("expected %v, got %v", 100, m.Level)
	} else if m.Hwater != 100 {
		t.Errorf("expected %v, got %v", 100, m.Hwater)
	} else if m.Count != 100 {
		t.Errorf("expected %v, got %v", 100, m.Count)
	}
	m.Dec(40)
	if m.Level != 60 {
		t.Errorf("expected %v, got %v", 60, m.Level)
	} else if m.Hwater != 100 {
		t.Errorf("expected %v, got %v", 100, m.Hwater)
	}
	m.Inc(50)
	if m.Level != 110 {
		t.Errorf("expected %v, got %v", 110, m.Level)
	} else if m.Hwater != 110 {
		t.Errorf("expected %v, got %v", 110, m.Hwater)
	} else if m.Count != 150 {
		t.Errorf("expected %v, got %v", 150, m.Count)
	}
}

func TestMeterUnderflow(t *testing.T) {
	m := &Meter{}
	m.Inc(10)
	m.Dec(20) // saturates in production builds
	if m.Level != 0 {
		t.Errorf("expected %v, got %v", 0, m.Level)
	}
}

func TestPoolMeterAccumulate(t *testing.T) {
	a, b := &PoolMeter{}, &PoolMeter{}
	a.Alloc.Inc(100)
	a.Inuse.Inc(60)
	a.Idle.Inc(40)
	b.Alloc.Inc(200)
	b.Inuse.Inc(50)
	b.Idle.Inc(150)
	b.Gballocated.Count, b.Gballocated.Bytes = 5, 500

	global := &PoolMeter{}
	global.Accumulate(a)
	global.Accumulate(b)
	if global.Alloc.Level != 300 {
		t.Errorf("expected %v, got %v", 300, global.Alloc.Level)
	} else if global.Inuse.Level != 110 {
		t.Errorf("expected %v, got %v", 110, global.Inuse.Level)
	} else if global.Idle.Level != 190 {
		t.Errorf("expected %v, got %v", 190, global.Idle.Level)
	} else if global.Alloc.Level != global.Inuse.Level+global.Idle.Level {
		t.Errorf("alloc != inuse+idle")
	} else if global.Gballocated.Count != 5 {
		t.Errorf("expected %v, got %v", 5, global.Gballocated.Count)
	} else if global.Gballocated.Bytes != 500 {
		t.Errorf("expected %v, got %v", 500, global.Gballocated.Bytes)
	}
}

func BenchmarkMeterInc(b *testing.B) {
	m := &Meter{}
	for i := 0; i < b.N; i++ {
		m.Inc(64)
	}
}

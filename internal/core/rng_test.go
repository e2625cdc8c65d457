package core

import "testing"

func TestSimpleRNGDeterminism(t *testing.T) {
	a := NewSimpleRNG(12345)
	b := NewSimpleRNG(12345)

	for i := 0; i < 100; i++ {
		if x, y := a.Intn(1000), b.Intn(1000); x != y {
			t.Fatalf("draw %d differs: %d vs %d", i, x, y)
		}
	}
}

func TestSimpleRNGRange(t *testing.T) {
	r := NewSimpleRNG(7)
	seen := make(map[int]bool)

	for i := 0; i < 1000; i++ {
		v := r.Intn(6)
		if v < 0 || v >= 6 {
			t.Fatalf("Intn(6) returned %d", v)
		}
		seen[v] = true

		f := r.Float64()
		if f < 0 || f >= 1 {
			t.Fatalf("Float64() returned %v", f)
		}
	}

	if len(seen) != 6 {
		t.Errorf("expected all 6 values to appear, saw %d", len(seen))
	}

	if r.Intn(0) != 0 || r.Intn(-3) != 0 {
		t.Error("Intn with non-positive n should return 0")
	}
}

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	if !f.Empty() {
		t.Error("new frame should be empty")
	}

	f.UseSlot(2)
	if !f.Has(ActionUseCard) || f.Slot != 2 {
		t.Errorf("UseSlot(2) gave Has=%v Slot=%d", f.Has(ActionUseCard), f.Slot)
	}

	clone := f.Clone()
	f.Clear()
	if !f.Empty() || f.Slot != 0 {
		t.Error("Clear should reset actions and slot")
	}
	if !clone.Has(ActionUseCard) || clone.Slot != 2 {
		t.Error("clone should be unaffected by Clear")
	}
}

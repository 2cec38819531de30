package evergreen

import (
	"math"
	"testing"
)

func TestFireworkEmitTruncatesAtCapacity(t *testing.T) {
	p := NewFireworkPool(100, testRand())
	if n := p.Emit(Vec3{}, burstRed, 80); n != 80 {
		t.Fatalf("first Emit = %d, want 80", n)
	}
	if n := p.Emit(Vec3{}, burstRed, 80); n != 20 {
		t.Errorf("second Emit = %d, want 20", n)
	}
	if p.AliveCount() != 100 {
		t.Errorf("AliveCount = %d, want 100", p.AliveCount())
	}
	if n := p.Emit(Vec3{}, burstRed, 10); n != 0 {
		t.Errorf("Emit into full pool = %d, want 0", n)
	}
}

func TestFireworkSparksDieAfterLifetime(t *testing.T) {
	p := NewFireworkPool(50, testRand())
	p.Emit(Vec3{0, 0, 80}, burstGold, 50)
	for range 50 {
		p.Update(1.0 / 60)
	}
	if p.AliveCount() != 50 {
		t.Fatalf("AliveCount after 50 frames = %d, want 50", p.AliveCount())
	}
	p.Update(0.2)
	if p.AliveCount() != 0 {
		t.Errorf("AliveCount after lifetime = %d, want 0", p.AliveCount())
	}
}

func TestFireworkCompactionKeepsOrder(t *testing.T) {
	p := NewFireworkPool(10, testRand())
	p.Emit(Vec3{}, burstGold, 4)
	p.Update(0.5) // older sparks now have 0.75 of life left
	p.Emit(Vec3{}, burstGold, 4)

	_, sizes, _ := p.Buffers(nil, nil, nil)
	newest := sizes[4:]

	// The first batch dies, the second survives and slides to the front.
	p.Update(0.55)
	if p.AliveCount() != 4 {
		t.Fatalf("AliveCount = %d, want 4", p.AliveCount())
	}
	_, got, _ := p.Buffers(nil, nil, nil)
	for i := range got {
		if want := newest[i] * math.Pow(sparkShrink, 0.55*60); !approxEqual(got[i], want, 1e-9) {
			t.Errorf("spark %d size = %v, want %v; order was not kept", i, got[i], want)
		}
	}
	if n := p.Emit(Vec3{}, burstGold, 10); n != 6 {
		t.Errorf("Emit after compaction = %d, want 6", n)
	}
}

func TestFireworkShrinkIndependentOfFrameRate(t *testing.T) {
	slow := NewFireworkPool(20, testRand())
	fast := NewFireworkPool(20, testRand())
	slow.Emit(Vec3{}, burstGold, 20)
	fast.Emit(Vec3{}, burstGold, 20)

	slow.Update(1.0 / 30)
	fast.Update(1.0 / 60)
	fast.Update(1.0 / 60)

	_, a, _ := slow.Buffers(nil, nil, nil)
	_, b, _ := fast.Buffers(nil, nil, nil)
	if len(a) != 20 || len(b) != 20 {
		t.Fatalf("alive = %d/%d, want 20", len(a), len(b))
	}
	for i := range a {
		if !approxEqual(a[i], b[i], 1e-9) {
			t.Errorf("spark %d size at 30 Hz = %v, at 60 Hz = %v", i, a[i], b[i])
		}
	}
}

func TestFireworkBuffersClampColors(t *testing.T) {
	p := NewFireworkPool(20, testRand())
	p.Emit(Vec3{}, Color{R: 3, G: 3, B: 3, A: 1}, 20)
	_, sizes, colors := p.Buffers(nil, nil, nil)
	if len(sizes) != 20 || len(colors) != 20 {
		t.Fatalf("buffer lengths = %d/%d, want 20", len(sizes), len(colors))
	}
	for i, c := range colors {
		if c.R > 1 || c.G > 1 || c.B > 1 {
			t.Fatalf("color %d = %+v not clamped", i, c)
		}
		if sizes[i] < sparkSize.Min || sizes[i] >= sparkSize.Max {
			t.Fatalf("size %d = %v outside %v", i, sizes[i], sparkSize)
		}
	}
}

func TestFireworkReset(t *testing.T) {
	p := NewFireworkPool(0, testRand())
	if p.Cap() != 500 {
		t.Errorf("default Cap = %d, want 500", p.Cap())
	}
	p.Emit(Vec3{}, burstGold, 30)
	p.Reset()
	if p.AliveCount() != 0 {
		t.Errorf("AliveCount after Reset = %d", p.AliveCount())
	}
}

package fluid

import "testing"

func TestScalarGridAtSet(t *testing.T) {
	g := NewScalarGrid(8, 4)

	g.Set(3, 2, 1.5)
	if got := g.At(3, 2); got != 1.5 {
		t.Errorf("expected 1.5 at (3,2), got %f", got)
	}
	if got := g.Data[2*8+3]; got != 1.5 {
		t.Errorf("expected row-major layout, got %f at index 19", got)
	}

	g.Clear()
	if got := g.At(3, 2); got != 0 {
		t.Errorf("expected 0 after Clear, got %f", got)
	}
}

func TestVectorGridAtSet(t *testing.T) {
	g := NewVectorGrid(8, 4)

	g.Set(1, 3, 0.25, -0.5)
	vx, vy := g.At(1, 3)
	if vx != 0.25 || vy != -0.5 {
		t.Errorf("expected (0.25,-0.5), got (%f,%f)", vx, vy)
	}
}

func TestScalarPairSwapParity(t *testing.T) {
	for _, swaps := range []int{0, 1, 2, 10} {
		p := NewScalarPair(4, 4)
		for i := 0; i < swaps; i++ {
			p.Swap()
		}
		wantFront := swaps%2 == 0
		if p.CurrentIsFront() != wantFront {
			t.Errorf("after %d swaps: CurrentIsFront=%v, want %v",
				swaps, p.CurrentIsFront(), wantFront)
		}
	}
}

func TestScalarPairBuffersDistinct(t *testing.T) {
	p := NewScalarPair(4, 4)

	if p.Current() == p.Other() {
		t.Fatal("Current and Other must be distinct buffers")
	}

	p.Current().Set(0, 0, 1)
	if p.Other().At(0, 0) != 0 {
		t.Error("writing the current buffer must not touch the other")
	}

	cur := p.Current()
	p.Swap()
	if p.Other() != cur {
		t.Error("after Swap the old current buffer must be the new other")
	}
}

func TestScalarPairReset(t *testing.T) {
	p := NewScalarPair(4, 4)
	front := p.Current()

	p.Swap()
	if p.Current() == front {
		t.Fatal("Swap did not flip the pair")
	}

	p.Reset()
	if p.Current() != front {
		t.Error("Reset must make the front buffer current")
	}
	if !p.CurrentIsFront() {
		t.Error("CurrentIsFront must be true after Reset")
	}
}

func TestVectorPairSwapAndReset(t *testing.T) {
	p := NewVectorPair(4, 4)
	front := p.Current()

	p.Swap()
	p.Swap()
	p.Swap()
	if p.CurrentIsFront() {
		t.Error("expected back buffer current after 3 swaps")
	}

	p.Reset()
	if p.Current() != front {
		t.Error("Reset must make the front buffer current")
	}
}

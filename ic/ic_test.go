package ic

import (
	"math/rand"
	"testing"

	"github.com/ibarrond/funshade/internal/ring"
)

const numTrials = 100

// TestICCorrectRandom is property P3.
func TestICCorrectRandom(t *testing.T) {
	for trial := 0; trial < numTrials; trial++ {
		p := ring.Elem(rand.Uint32() >> 1)
		width := ring.Elem(rand.Uint32() % (1 << 20))
		q := p + width

		rIn := ring.Elem(rand.Uint32())
		rOut := ring.Elem(rand.Uint32())
		x := ring.Elem(rand.Uint32() >> 1)

		k0, k1, err := Gen(rIn, rOut, p, q)
		if err != nil {
			t.Fatalf("trial %d: Gen error: %v", trial, err)
		}

		xHat := x + rIn
		o0, err := Eval(0, p, q, k0, xHat)
		if err != nil {
			t.Fatal(err)
		}
		o1, err := Eval(1, p, q, k1, xHat)
		if err != nil {
			t.Fatal(err)
		}

		expected := ring.BoolElem(!ring.Greater(p, x) && !ring.Greater(x, q)) + rOut
		if got := o0 + o1; got != expected {
			t.Fatalf("trial %d: p=%d q=%d x=%d: got %d, want %d", trial, p, q, x, got, expected)
		}
	}
}

// TestScenarioS4 is spec.md §8 scenario S4.
func TestScenarioS4(t *testing.T) {
	p := ring.Elem(0)
	q := ring.Elem(1<<31 - 1)
	rIn := ring.Elem(-0x21524111) // 0xdeadbeef
	rOut := ring.Elem(0)
	x := ring.Elem(5)

	k0, k1, err := Gen(rIn, rOut, p, q)
	if err != nil {
		t.Fatal(err)
	}
	xHat := x + rIn
	o0, _ := Eval(0, p, q, k0, xHat)
	o1, _ := Eval(1, p, q, k1, xHat)
	if got := o0 + o1; got != 1 {
		t.Fatalf("S4: got %d, want 1", got)
	}
}

// TestScenarioS5 is spec.md §8 scenario S5.
func TestScenarioS5(t *testing.T) {
	p := ring.Elem(0)
	q := ring.Elem(1<<31 - 1)
	rIn := ring.Elem(-0x21524111) // 0xdeadbeef
	rOut := ring.Elem(0)
	x := ring.Elem(-1)

	k0, k1, err := Gen(rIn, rOut, p, q)
	if err != nil {
		t.Fatal(err)
	}
	xHat := x + rIn
	o0, _ := Eval(0, p, q, k0, xHat)
	o1, _ := Eval(1, p, q, k1, xHat)
	if got := o0 + o1; got != 0 {
		t.Fatalf("S5: got %d, want 0", got)
	}
}

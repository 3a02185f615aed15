package funshade

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ibarrond/funshade/internal/ring"
)

// reconstruct sums two additive shares elementwise, simulating the exchange
// of masked vectors between the two parties (spec.md §4.5's "Share" step).
func reconstruct(a, b []ring.Elem) []ring.Elem {
	out := make([]ring.Elem, len(a))
	for i := range out {
		out[i] = a[i] + b[i]
	}
	return out
}

// runInstance wires setup -> share -> distance -> sign end to end for one
// pair of secret vectors and threshold, returning the reconstructed output
// bit. x and y are each additively split trivially (party 0 holds the full
// vector, party 1 holds the zero vector) since Share/Distance only require a
// valid additive split, not a particular one.
func runInstance(t *testing.T, x, y []ring.Elem, theta ring.Elem) ring.Elem {
	t.Helper()
	l := len(x)
	zero := make([]ring.Elem, l)

	c0, c1, err := Setup(l, theta)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	p0, err := NewParty(0, c0)
	if err != nil {
		t.Fatal(err)
	}
	p1, err := NewParty(1, c1)
	if err != nil {
		t.Fatal(err)
	}

	dx0, dy0, err := p0.Share(x, y)
	if err != nil {
		t.Fatal(err)
	}
	dx1, dy1, err := p1.Share(zero, zero)
	if err != nil {
		t.Fatal(err)
	}

	Dx := reconstruct(dx0, dx1)
	Dy := reconstruct(dy0, dy1)

	z0, err := p0.Distance(Dx, Dy)
	if err != nil {
		t.Fatal(err)
	}
	z1, err := p1.Distance(Dx, Dy)
	if err != nil {
		t.Fatal(err)
	}
	zHat := z0 + z1

	o0, err := p0.Sign(zHat)
	if err != nil {
		t.Fatal(err)
	}
	o1, err := p1.Sign(zHat)
	if err != nil {
		t.Fatal(err)
	}
	return o0 + o1
}

// TestScenarioS6 is spec.md §8 scenario S6: dot([1,2,3,4],[4,3,2,1]) = 20.
func TestScenarioS6(t *testing.T) {
	is := assert.New(t)

	x := []ring.Elem{1, 2, 3, 4}
	y := []ring.Elem{4, 3, 2, 1}

	is.Equal(ring.Elem(1), runInstance(t, x, y, 19), "dot=20 >= theta=19")
	is.Equal(ring.Elem(0), runInstance(t, x, y, 21), "dot=20 < theta=21")
}

// TestCorrectRandom is property P5: for random x,y bounded so <x,y> doesn't
// wrap, and random theta, o0+o1 == [<x,y> >= theta].
func TestCorrectRandom(t *testing.T) {
	is := assert.New(t)

	for trial := 0; trial < 50; trial++ {
		l := 1 + rand.Intn(6)
		x := make([]ring.Elem, l)
		y := make([]ring.Elem, l)
		var dot int64
		for i := 0; i < l; i++ {
			x[i] = ring.Elem(rand.Intn(1000) - 500)
			y[i] = ring.Elem(rand.Intn(1000) - 500)
			dot += int64(x[i]) * int64(y[i])
		}
		theta := ring.Elem(rand.Intn(2000) - 1000)

		got := runInstance(t, x, y, theta)
		want := ring.Elem(0)
		if dot >= int64(theta) {
			want = 1
		}
		is.Equal(want, got, "trial %d: dot=%d theta=%d", trial, dot, theta)
	}
}

// TestBatchMatchesSingle checks SetupBatch/BatchParty against the
// single-instance path and exercises the collapse-sum variant.
func TestBatchMatchesSingle(t *testing.T) {
	is := assert.New(t)

	const l, k = 4, 5
	theta := ring.Elem(10)

	c0, c1, err := SetupBatch(l, k, theta)
	if err != nil {
		t.Fatal(err)
	}
	bp0, err := NewBatchParty(0, c0)
	if err != nil {
		t.Fatal(err)
	}
	bp1, err := NewBatchParty(1, c1)
	if err != nil {
		t.Fatal(err)
	}

	x := make([]ring.Elem, k*l)
	y := make([]ring.Elem, k*l)
	zero := make([]ring.Elem, k*l)
	for i := range x {
		x[i] = ring.Elem(i + 1)
		y[i] = ring.Elem(k*l - i)
	}

	dx0, dy0, err := bp0.ShareBatch(x, y)
	if err != nil {
		t.Fatal(err)
	}
	dx1, dy1, err := bp1.ShareBatch(zero, zero)
	if err != nil {
		t.Fatal(err)
	}

	Dx := reconstruct(dx0, dx1)
	Dy := reconstruct(dy0, dy1)

	z0, err := bp0.DistanceBatch(Dx, Dy)
	if err != nil {
		t.Fatal(err)
	}
	z1, err := bp1.DistanceBatch(Dx, Dy)
	if err != nil {
		t.Fatal(err)
	}
	is.Len(z0, k)

	zHat := make([]ring.Elem, k)
	for i := range zHat {
		zHat[i] = z0[i] + z1[i]
	}

	o0, err := bp0.SignBatch(zHat)
	if err != nil {
		t.Fatal(err)
	}
	o1, err := bp1.SignBatch(zHat)
	if err != nil {
		t.Fatal(err)
	}

	var wantCollapse ring.Elem
	for i := 0; i < k; i++ {
		got := o0[i] + o1[i]
		is.Contains([]ring.Elem{0, 1}, got)
		is.Equal(runInstance(t, x[i*l:(i+1)*l], y[i*l:(i+1)*l], theta), got, "instance %d", i)
		wantCollapse += got
	}

	collapse0, err := bp0.SignBatchCollapse(zHat)
	if err != nil {
		t.Fatal(err)
	}
	collapse1, err := bp1.SignBatchCollapse(zHat)
	if err != nil {
		t.Fatal(err)
	}
	is.Equal(wantCollapse, collapse0+collapse1)
}

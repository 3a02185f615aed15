// Batch Funshade: K independent reference-vector instances amortized over
// one call, parallelized across the k dimension with golang.org/x/sync/errgroup
// (a direct dependency of _examples/luxfi-threshold/go.mod) since each
// iteration touches only its own slice of the flat row-major correlation
// arrays, an embarrassingly-parallel fan-out per spec.md §5.
package funshade

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/ibarrond/funshade/ic"
	"github.com/ibarrond/funshade/internal/ferrors"
	"github.com/ibarrond/funshade/internal/ring"
)

// BatchCorrelation is one party's offline setup for K independent Sign
// instances over vectors of length L, laid out flat row-major: idx = k*L+i
// (spec.md §4.5's "Batch mode").
type BatchCorrelation struct {
	L, K     int
	Dx, Dy   []ring.Elem // length K*L
	Dxy      []ring.Elem // length K*L
	RIn      []ring.Elem // length K
	SignKeys []ic.Key    // length K
}

// SetupBatch runs the dealer's offline phase for K independent Sign
// instances, each over vectors of length l, sharing one public threshold
// theta. SetupBatch is a top-level entry point: an allocation panic anywhere
// below it (e.g. an oversized l*k) is recovered and surfaced as
// ferrors.ErrOutOfMemory (spec.md §7), rather than crashing the caller.
func SetupBatch(l, k int, theta ring.Elem) (c0, c1 BatchCorrelation, err error) {
	defer func() {
		if r := recover(); r != nil {
			c0, c1, err = BatchCorrelation{}, BatchCorrelation{}, ferrors.ErrOutOfMemory
		}
	}()

	if l <= 0 || k <= 0 {
		return BatchCorrelation{}, BatchCorrelation{}, ferrors.ErrInvalidArgument
	}

	c0 = BatchCorrelation{L: l, K: k, Dx: make([]ring.Elem, k*l), Dy: make([]ring.Elem, k*l), Dxy: make([]ring.Elem, k*l), RIn: make([]ring.Elem, k), SignKeys: make([]ic.Key, k)}
	c1 = BatchCorrelation{L: l, K: k, Dx: make([]ring.Elem, k*l), Dy: make([]ring.Elem, k*l), Dxy: make([]ring.Elem, k*l), RIn: make([]ring.Elem, k), SignKeys: make([]ic.Key, k)}

	for ki := 0; ki < k; ki++ {
		single0, single1, err := Setup(l, theta)
		if err != nil {
			return BatchCorrelation{}, BatchCorrelation{}, err
		}
		copy(c0.Dx[ki*l:(ki+1)*l], single0.Dx)
		copy(c0.Dy[ki*l:(ki+1)*l], single0.Dy)
		copy(c0.Dxy[ki*l:(ki+1)*l], single0.Dxy)
		c0.RIn[ki] = single0.RIn
		c0.SignKeys[ki] = single0.SignKey

		copy(c1.Dx[ki*l:(ki+1)*l], single1.Dx)
		copy(c1.Dy[ki*l:(ki+1)*l], single1.Dy)
		copy(c1.Dxy[ki*l:(ki+1)*l], single1.Dxy)
		c1.RIn[ki] = single1.RIn
		c1.SignKeys[ki] = single1.SignKey
	}
	return c0, c1, nil
}

// BatchParty is one party's online state across K independent batch
// instances.
type BatchParty struct {
	Index uint8
	Corr  BatchCorrelation
}

// NewBatchParty binds a party index to its batch correlation share.
func NewBatchParty(index uint8, corr BatchCorrelation) (*BatchParty, error) {
	if index > 1 {
		return nil, ferrors.ErrInvalidArgument
	}
	return &BatchParty{Index: index, Corr: corr}, nil
}

func (p *BatchParty) instance(k int) Correlation {
	l := p.Corr.L
	return Correlation{
		L:       l,
		Dx:      p.Corr.Dx[k*l : (k+1)*l],
		Dy:      p.Corr.Dy[k*l : (k+1)*l],
		Dxy:     p.Corr.Dxy[k*l : (k+1)*l],
		RIn:     p.Corr.RIn[k],
		SignKey: p.Corr.SignKeys[k],
	}
}

// ShareBatch masks K reference vectors' worth of x,y at once, flat row-major
// (idx = k*L+i), mirroring Party.Share.
func (p *BatchParty) ShareBatch(x, y []ring.Elem) (Dx, Dy []ring.Elem, err error) {
	l, k := p.Corr.L, p.Corr.K
	if len(x) != k*l || len(y) != k*l {
		return nil, nil, ferrors.ErrInvalidArgument
	}
	Dx = make([]ring.Elem, k*l)
	Dy = make([]ring.Elem, k*l)
	for ki := 0; ki < k; ki++ {
		party := Party{Index: p.Index, Corr: p.instance(ki)}
		dx, dy, err := party.Share(x[ki*l:(ki+1)*l], y[ki*l:(ki+1)*l])
		if err != nil {
			return nil, nil, err
		}
		copy(Dx[ki*l:(ki+1)*l], dx)
		copy(Dy[ki*l:(ki+1)*l], dy)
	}
	return Dx, Dy, nil
}

// DistanceBatch computes each instance's masked-sum share in parallel across
// k, since each iteration reads only its own row of Dx/Dy and its own
// correlation slice (spec.md §5's embarrassingly-parallel batch fan-out).
func (p *BatchParty) DistanceBatch(Dx, Dy []ring.Elem) ([]ring.Elem, error) {
	l, k := p.Corr.L, p.Corr.K
	if len(Dx) != k*l || len(Dy) != k*l {
		return nil, ferrors.ErrInvalidArgument
	}
	out := make([]ring.Elem, k)
	g, _ := errgroup.WithContext(context.Background())
	for ki := 0; ki < k; ki++ {
		ki := ki
		g.Go(func() error {
			party := Party{Index: p.Index, Corr: p.instance(ki)}
			z, err := party.Distance(Dx[ki*l:(ki+1)*l], Dy[ki*l:(ki+1)*l])
			if err != nil {
				return err
			}
			out[ki] = z
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// SignBatch evaluates each instance's Sign share in parallel across k.
func (p *BatchParty) SignBatch(zHat []ring.Elem) ([]ring.Elem, error) {
	k := p.Corr.K
	if len(zHat) != k {
		return nil, ferrors.ErrInvalidArgument
	}
	out := make([]ring.Elem, k)
	g, _ := errgroup.WithContext(context.Background())
	for ki := 0; ki < k; ki++ {
		ki := ki
		g.Go(func() error {
			o, err := ic.SignEval(p.Index, p.Corr.SignKeys[ki], zHat[ki])
			if err != nil {
				return err
			}
			out[ki] = o
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// SignBatchCollapse evaluates SignBatch and sums the K outputs, counting
// matches across the reference set (spec.md §4.5's "collapse variant").
func (p *BatchParty) SignBatchCollapse(zHat []ring.Elem) (ring.Elem, error) {
	outs, err := p.SignBatch(zHat)
	if err != nil {
		return 0, err
	}
	var sum ring.Elem
	for _, o := range outs {
		sum += o
	}
	return sum, nil
}

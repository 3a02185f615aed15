// Package funshade implements the end-to-end Funshade protocol (spec.md
// §4.5): privacy-preserving threshold-gated scalar products composed from a
// Sign gate (package ic) and a vectorwise Beaver-triple correlation.
//
// Grounded structurally on
// _examples/mvmcconnell-pir/query.go's newQueryShares, a single dealer-style
// function that draws one piece of shared randomness and splits it into
// per-party shares — here replacing PIR query-share generation with
// Beaver-triple correlation generation for the offline setup phase.
package funshade

import (
	"github.com/ibarrond/funshade/ic"
	"github.com/ibarrond/funshade/internal/entropy"
	"github.com/ibarrond/funshade/internal/ferrors"
	"github.com/ibarrond/funshade/internal/ring"
)

// Correlation is one party's share of the offline setup for a single Sign
// instance operating on vectors of length L: a Beaver-style multiplication
// triple per coordinate, a Sign input mask share, and a Sign key share
// (spec.md §4.5's "Setup (dealer, offline)").
type Correlation struct {
	L       int
	Dx, Dy  []ring.Elem
	Dxy     []ring.Elem
	RIn     ring.Elem
	SignKey ic.Key
}

// Setup runs the dealer's offline phase for one Sign instance over vectors of
// length l with public threshold theta, returning party 0 and party 1's
// correlations. Setup is a top-level entry point: an allocation panic
// anywhere below it (e.g. an oversized l) is recovered and surfaced as
// ferrors.ErrOutOfMemory (spec.md §7), rather than crashing the caller.
func Setup(l int, theta ring.Elem) (c0, c1 Correlation, err error) {
	defer func() {
		if r := recover(); r != nil {
			c0, c1, err = Correlation{}, Correlation{}, ferrors.ErrOutOfMemory
		}
	}()

	if l <= 0 {
		return Correlation{}, Correlation{}, ferrors.ErrInvalidArgument
	}

	c0 = Correlation{L: l, Dx: make([]ring.Elem, l), Dy: make([]ring.Elem, l), Dxy: make([]ring.Elem, l)}
	c1 = Correlation{L: l, Dx: make([]ring.Elem, l), Dy: make([]ring.Elem, l), Dxy: make([]ring.Elem, l)}

	for i := 0; i < l; i++ {
		dx0, err := entropy.RandomRing()
		if err != nil {
			return Correlation{}, Correlation{}, err
		}
		dx1, err := entropy.RandomRing()
		if err != nil {
			return Correlation{}, Correlation{}, err
		}
		dy0, err := entropy.RandomRing()
		if err != nil {
			return Correlation{}, Correlation{}, err
		}
		dy1, err := entropy.RandomRing()
		if err != nil {
			return Correlation{}, Correlation{}, err
		}
		dxy0, err := entropy.RandomRing()
		if err != nil {
			return Correlation{}, Correlation{}, err
		}
		dxy1 := (dx0+dx1)*(dy0+dy1) - dxy0

		c0.Dx[i], c0.Dy[i], c0.Dxy[i] = dx0, dy0, dxy0
		c1.Dx[i], c1.Dy[i], c1.Dxy[i] = dx1, dy1, dxy1
	}

	rIn0, err := entropy.RandomRing()
	if err != nil {
		return Correlation{}, Correlation{}, err
	}
	rIn1, err := entropy.RandomRing()
	if err != nil {
		return Correlation{}, Correlation{}, err
	}

	k0, k1, err := ic.SignGen(rIn0+rIn1, 0)
	if err != nil {
		return Correlation{}, Correlation{}, err
	}
	rIn1 -= theta

	c0.RIn, c0.SignKey = rIn0, k0
	c1.RIn, c1.SignKey = rIn1, k1
	return c0, c1, nil
}

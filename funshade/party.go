package funshade

import (
	"github.com/ibarrond/funshade/ic"
	"github.com/ibarrond/funshade/internal/ferrors"
	"github.com/ibarrond/funshade/internal/ring"
)

// Party is one of the two non-colluding parties' online state for a single
// Funshade instance: its share of the offline correlation plus its party
// index (0 or 1).
type Party struct {
	Index uint8
	Corr  Correlation
}

// NewParty binds a party index to its correlation share.
func NewParty(index uint8, corr Correlation) (*Party, error) {
	if index > 1 {
		return nil, ferrors.ErrInvalidArgument
	}
	return &Party{Index: index, Corr: corr}, nil
}

// Share masks the party's input vectors for exchange: D_v[i] = v[i] + d_v[i]
// for v in {x,y} (spec.md §4.5's "Share (party, online, once per input)").
func (p *Party) Share(x, y []ring.Elem) (Dx, Dy []ring.Elem, err error) {
	if len(x) != p.Corr.L || len(y) != p.Corr.L {
		return nil, nil, ferrors.ErrInvalidArgument
	}
	Dx = make([]ring.Elem, p.Corr.L)
	Dy = make([]ring.Elem, p.Corr.L)
	for i := 0; i < p.Corr.L; i++ {
		Dx[i] = x[i] + p.Corr.Dx[i]
		Dy[i] = y[i] + p.Corr.Dy[i]
	}
	return Dx, Dy, nil
}

// Distance computes this party's share of the masked inner product:
//
//	ẑ_j = r_in[j] + Σᵢ ( j·D_x[i]·D_y[i] − D_x[i]·d_{y,j}[i] − D_y[i]·d_{x,j}[i] + d_{xy,j}[i] )
//
// (spec.md §4.5's "Distance evaluation"). The sum is sequential, keeping
// wraparound order deterministic per spec.md §5; it is associative under
// two's-complement addition, so BatchParty parallelizes it across the k
// dimension rather than within one instance.
func (p *Party) Distance(Dx, Dy []ring.Elem) (ring.Elem, error) {
	if len(Dx) != p.Corr.L || len(Dy) != p.Corr.L {
		return 0, ferrors.ErrInvalidArgument
	}
	j := ring.Elem(p.Index)
	zHat := p.Corr.RIn
	for i := 0; i < p.Corr.L; i++ {
		zHat += j*Dx[i]*Dy[i] - Dx[i]*p.Corr.Dy[i] - Dy[i]*p.Corr.Dx[i] + p.Corr.Dxy[i]
	}
	return zHat, nil
}

// Sign evaluates this party's share of [<x,y> >= theta] from the
// reconstructed masked sum zHat = zHat_0 + zHat_1 (spec.md §4.5's "Sign
// (party j)").
func (p *Party) Sign(zHat ring.Elem) (ring.Elem, error) {
	return ic.SignEval(p.Index, p.Corr.SignKey, zHat)
}

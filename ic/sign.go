package ic

import (
	"github.com/ibarrond/funshade/dcf"
	"github.com/ibarrond/funshade/internal/ring"
)

// signQ is the IC upper bound 2^(N-1)-1 that captures "non-negative under
// signed interpretation" (spec.md §4.4).
const signQ ring.Elem = (1 << (ring.Width - 1)) - 1

// SignGen generates a Sign key pair: Sign(r_in, r_out) = IC(r_in, r_out, 0, 2^(N-1)-1).
func SignGen(rIn, rOut ring.Elem) (k0, k1 Key, err error) {
	return Gen(rIn, rOut, 0, signQ)
}

// SignGenSeeded deterministically generates a Sign key pair (property P6).
func SignGenSeeded(rIn, rOut ring.Elem, s0, s1 [dcf.SLen]byte, z0 ring.Elem) (k0, k1 Key) {
	return GenSeeded(rIn, rOut, 0, signQ, s0, s1, z0)
}

// SignEval evaluates party-b's share of [x>=0] at masked input xHat = x+r_in.
// For random r_in, x: SignEval(0,k0,x+r_in) + SignEval(1,k1,x+r_in) == [x>=0]
// under signed interpretation (spec.md §4.4, property P4).
func SignEval(party uint8, k Key, xHat ring.Elem) (ring.Elem, error) {
	return Eval(party, 0, signQ, k, xHat)
}

package dcf

import (
	"github.com/ibarrond/funshade/internal/ferrors"
	"github.com/ibarrond/funshade/internal/prg"
	"github.com/ibarrond/funshade/internal/ring"
)

// Eval evaluates party-b's share of f(xHat) = Beta * [xHat < alpha] from its
// key share k. party must be 0 or 1. For all alpha, xHat:
// Eval(0,k0,xHat) + Eval(1,k1,xHat) == Beta * [xHat < alpha] (mod 2^N),
// treating alpha and xHat as unsigned (spec.md §4.3's correctness contract).
func Eval(party uint8, k Key, xHat ring.Elem) (ring.Elem, error) {
	if party > 1 {
		return 0, ferrors.ErrInvalidArgument
	}
	if len(k.Chain) != ChainLen {
		return 0, ferrors.ErrInvalidArgument
	}

	s := k.Seed
	var v ring.Elem
	t := party

	partySign := ring.Sign(party == 1)

	for i := 0; i < N; i++ {
		exp := prg.Expand(s)
		dir := ring.Bit(xHat, i)
		level := getCW(k.Chain, i)

		var vDir ring.Elem
		var sDir [SLen]byte
		var tDir uint8
		if dir == 1 {
			vDir, sDir, tDir = exp.VR, exp.SR, exp.TR
		} else {
			vDir, sDir, tDir = exp.VL, exp.SL, exp.TL
		}

		v = v + partySign*(vDir+ring.Elem(t)*level.V)

		var sCW [SLen]byte
		for j := range sCW {
			sCW[j] = sDir[j] ^ (t * level.S[j])
		}
		s = sCW

		tCW := level.TL
		if dir == 1 {
			tCW = level.TR
		}
		t = tDir ^ (t * tCW)
	}

	tail := getTail(k.Chain)
	out := v + partySign*(ring.StateToElem(s[:])+ring.Elem(t)*tail)
	return out, nil
}

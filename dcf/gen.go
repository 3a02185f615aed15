package dcf

import (
	"github.com/ibarrond/funshade/internal/aescore"
	"github.com/ibarrond/funshade/internal/entropy"
	"github.com/ibarrond/funshade/internal/ferrors"
	"github.com/ibarrond/funshade/internal/prg"
	"github.com/ibarrond/funshade/internal/ring"
)

// Beta is β, the DCF's non-zero output value (spec.md §3).
const Beta ring.Elem = 1

// Gen generates a DCF key pair for f(x) = Beta * [x < alpha], drawing fresh
// random seeds from the package entropy source. Seeds are ephemeral and are
// not retained beyond this call (spec.md §3's lifecycle note). Gen is a
// top-level entry point: an allocation panic anywhere below it is recovered
// and surfaced as ferrors.ErrOutOfMemory (spec.md §7), rather than crashing
// the caller's process.
func Gen(alpha ring.Elem) (k0, k1 Key, err error) {
	defer func() {
		if r := recover(); r != nil {
			k0, k1, err = Key{}, Key{}, ferrors.ErrOutOfMemory
		}
	}()

	var s0, s1 [SLen]byte
	if err := entropy.RandomBytes(s0[:]); err != nil {
		return Key{}, Key{}, err
	}
	if err := entropy.RandomBytes(s1[:]); err != nil {
		return Key{}, Key{}, err
	}
	k0, k1 = genWithSeeds(alpha, s0, s1)
	return k0, k1, nil
}

// GenSeeded deterministically generates a DCF key pair from caller-supplied
// seeds, required for reproducible tests (property P6).
func GenSeeded(alpha ring.Elem, s0, s1 [SLen]byte) (k0, k1 Key) {
	return genWithSeeds(alpha, s0, s1)
}

// genWithSeeds implements spec.md §4.3's generator algorithm, building both
// parties' keys together since they share one CW_chain by value.
func genWithSeeds(alpha ring.Elem, s0Init, s1Init [SLen]byte) (Key, Key) {
	chain := newChain()

	s0, s1 := s0Init, s1Init
	var vAlpha ring.Elem
	t0, t1 := uint8(0), uint8(1)

	for i := 0; i < N; i++ {
		aBit := ring.Bit(alpha, i)
		keepRight := aBit == 1

		exp0 := prg.Expand(s0)
		exp1 := prg.Expand(s1)

		sKeep0, sLose0 := branch(exp0.SL, exp0.SR, keepRight)
		vKeep0, vLose0 := branchElem(exp0.VL, exp0.VR, keepRight)
		tKeep0, _ := branchBit(exp0.TL, exp0.TR, keepRight)

		sKeep1, sLose1 := branch(exp1.SL, exp1.SR, keepRight)
		vKeep1, vLose1 := branchElem(exp1.VL, exp1.VR, keepRight)
		tKeep1, _ := branchBit(exp1.TL, exp1.TR, keepRight)

		var sCW [SLen]byte
		for j := range sCW {
			sCW[j] = sLose0[j] ^ sLose1[j]
		}

		sign := ring.Sign(t1 == 1)
		vCW := sign * (vLose1 - vLose0 - vAlpha)
		if aBit == 1 {
			vCW += sign * Beta
		}
		vAlpha = vAlpha + (vKeep0 - vKeep1) + sign*vCW

		tCWL := exp0.TL ^ exp1.TL ^ aBit ^ 1
		tCWR := exp0.TR ^ exp1.TR ^ aBit
		putCW(chain, i, cw{S: sCW, V: vCW, TL: tCWL, TR: tCWR})

		tCWKeep, _ := branchBit(tCWL, tCWR, keepRight)

		for j := range s0 {
			s0[j] = sKeep0[j] ^ (t0 * sCW[j])
			s1[j] = sKeep1[j] ^ (t1 * sCW[j])
		}
		t0 = tKeep0 ^ (t0 * tCWKeep)
		t1 = tKeep1 ^ (t1 * tCWKeep)
	}

	sign := ring.Sign(t1 == 1)
	tail := sign * (ring.StateToElem(s1[:]) - ring.StateToElem(s0[:]) - vAlpha)
	putTail(chain, tail)

	return Key{Seed: s0Init, Chain: chain}, Key{Seed: s1Init, Chain: chain}
}

func branch(l, r [aescore.BlockSize]byte, keepRight bool) (keep, lose [aescore.BlockSize]byte) {
	if keepRight {
		return r, l
	}
	return l, r
}

func branchElem(l, r ring.Elem, keepRight bool) (keep, lose ring.Elem) {
	if keepRight {
		return r, l
	}
	return l, r
}

func branchBit(l, r uint8, keepRight bool) (keep, lose uint8) {
	if keepRight {
		return r, l
	}
	return l, r
}

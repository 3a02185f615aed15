// Package ic implements the Interval Containment gate and its Sign
// specialization (spec.md §4.4), composing two dcf.Key instances at shifted
// inputs. Grounded structurally on
// _examples/mvmcconnell-pir/keyword.go's PrivateSqrtST, which builds a
// higher-level gate (a two-layer search structure) by composing a lower-level
// primitive (a PIR database query) twice over derived inputs — here, IC
// composes a single DCF gate twice over shifted inputs instead.
package ic

import (
	"github.com/ibarrond/funshade/dcf"
	"github.com/ibarrond/funshade/internal/entropy"
	"github.com/ibarrond/funshade/internal/ferrors"
	"github.com/ibarrond/funshade/internal/ring"
)

// Key is one party's IC/Sign key: a DCF key plus an output mask z
// (spec.md §3's "IC/Sign key" layout).
type Key struct {
	DCF dcf.Key
	Z   ring.Elem
}

// KeySize is the wire size of an IC/Sign key: dcf.KeySize + ring.Bytes. For
// N=32 this is 728 bytes, matching spec.md §6's worked example.
const KeySize = dcf.KeySize + ring.Bytes

// MarshalBinary encodes the key as a DCF key followed by z, little-endian
// (spec.md §6).
func (k *Key) MarshalBinary() ([]byte, error) {
	dcfBytes, err := k.DCF.MarshalBinary()
	if err != nil {
		return nil, err
	}
	out := make([]byte, KeySize)
	copy(out, dcfBytes)
	ring.PutBytesLE(out[dcf.KeySize:], k.Z)
	return out, nil
}

// UnmarshalBinary decodes a key from its wire format.
func (k *Key) UnmarshalBinary(data []byte) error {
	if len(data) != KeySize {
		return ferrors.ErrInvalidArgument
	}
	if err := k.DCF.UnmarshalBinary(data[:dcf.KeySize]); err != nil {
		return err
	}
	k.Z = ring.FromBytesLE(data[dcf.KeySize:])
	return nil
}

// u and indicator read like spec.md §4.4's U(...) notation.
func u(x ring.Elem) uint32 { return uint32(x) }

func indicator(cond bool) ring.Elem { return ring.BoolElem(cond) }

// Gen generates an IC key pair for f(x) = [p <= x <= q] over a masked input
// x_hat = x + r_in, with output additively masked by r_out (spec.md §4.4).
// Gen is a top-level entry point: an allocation panic anywhere below it is
// recovered and surfaced as ferrors.ErrOutOfMemory (spec.md §7), rather than
// crashing the caller.
func Gen(rIn, rOut, p, q ring.Elem) (k0, k1 Key, err error) {
	defer func() {
		if r := recover(); r != nil {
			k0, k1, err = Key{}, Key{}, ferrors.ErrOutOfMemory
		}
	}()

	alpha := rIn - 1
	dcf0, dcf1, err := dcf.Gen(alpha)
	if err != nil {
		return Key{}, Key{}, err
	}
	z0, err := entropy.RandomRing()
	if err != nil {
		return Key{}, Key{}, err
	}
	z1 := correctionZ(z0, rIn, rOut, p, q)
	return Key{DCF: dcf0, Z: z0}, Key{DCF: dcf1, Z: z1}, nil
}

// GenSeeded deterministically generates an IC key pair (property P6).
func GenSeeded(rIn, rOut, p, q ring.Elem, s0, s1 [dcf.SLen]byte, z0 ring.Elem) (k0, k1 Key) {
	alpha := rIn - 1
	dcf0, dcf1 := dcf.GenSeeded(alpha, s0, s1)
	z1 := correctionZ(z0, rIn, rOut, p, q)
	return Key{DCF: dcf0, Z: z0}, Key{DCF: dcf1, Z: z1}
}

// correctionZ computes z1 per spec.md §4.4:
//
//	z1 = -z0 + r_out
//	     + [U(p+r_in) > U(q+r_in)] - [U(p+r_in) > U(p)]
//	     + [U(q+r_in+1) > U(q+1)] + [U(q+r_in+1) = 0]
func correctionZ(z0, rIn, rOut, p, q ring.Elem) ring.Elem {
	pRIn := p + rIn
	qRIn := q + rIn
	qRIn1 := q + rIn + 1

	z1 := -z0 + rOut
	z1 += indicator(ring.Greater(pRIn, qRIn))
	z1 -= indicator(ring.Greater(pRIn, p))
	z1 += indicator(ring.Greater(qRIn1, q+1))
	z1 += indicator(u(qRIn1) == 0)
	return z1
}

// Eval evaluates party-b's share of [p<=x<=q]+r_out at masked input xHat.
// For all p<=q, r_in, r_out, x:
// Eval(0,p,q,k0,x+r_in) + Eval(1,p,q,k1,x+r_in) == [p<=x<=q] + r_out (mod 2^N)
// (spec.md §4.4's correctness contract, property P3).
func Eval(party uint8, p, q ring.Elem, k Key, xHat ring.Elem) (ring.Elem, error) {
	if party > 1 {
		return 0, ferrors.ErrInvalidArgument
	}
	b := ring.Elem(party)

	gtP := indicator(ring.Greater(xHat, p))
	gtQ1 := indicator(ring.Greater(xHat, q+1))

	left, err := dcf.Eval(party, k.DCF, xHat-p-1)
	if err != nil {
		return 0, err
	}
	right, err := dcf.Eval(party, k.DCF, xHat-q-2)
	if err != nil {
		return 0, err
	}

	out := b*(gtP-gtQ1) - left + right + k.Z
	return out, nil
}

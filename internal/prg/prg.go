// Package prg implements G, the fixed-key Miyaguchi-Preneel / Merkle-Damgård
// PRG that the DCF gate uses to expand one GGM-tree level into the next
// (spec.md §4.1).
package prg

import (
	"github.com/ibarrond/funshade/internal/aescore"
	"github.com/ibarrond/funshade/internal/ferrors"
	"github.com/ibarrond/funshade/internal/ring"
)

// IV is the fixed 16-byte Miyaguchi-Preneel chaining constant (spec.md §4.1,
// §6 — "MUST NOT be changed without bumping a format version").
var IV = [aescore.BlockSize]byte{
	0x2b, 0x7e, 0x15, 0x16, 0x28, 0xae, 0xd2, 0xa6,
	0xab, 0xf7, 0x15, 0x88, 0x09, 0xcf, 0x4f, 0x3c,
}

// OutLen is G_OUT_LEN: the smallest multiple of 16 bytes at least
// ceil((2*lambda + 2*N + 2)/8) for lambda=128, N=ring.Width=32.
const OutLen = requiredBlocks * aescore.BlockSize

const requiredBlocks = (2*128 + 2*ring.Width + 2 + 8*aescore.BlockSize - 1) / (8 * aescore.BlockSize)

// mp computes the Miyaguchi-Preneel compression MP(k, m) = AES128_ENC(k, m)
// XOR k XOR m over one 16-byte block, under the given AES backend.
func mp(backend aescore.Backend, k, m [aescore.BlockSize]byte) [aescore.BlockSize]byte {
	var out [aescore.BlockSize]byte
	backend.Encrypt(out[:], m[:], k[:])
	for i := range out {
		out[i] ^= k[i] ^ m[i]
	}
	return out
}

// GWithBackend is G (see below), run under an explicitly chosen AES backend
// rather than the host's capability-detected aescore.Selected. It exists so
// property P1 ("hardware and portable G produce byte-identical output") can
// be tested on a single host regardless of which backend that host's
// aescore.Selected would otherwise pick.
func GWithBackend(backend aescore.Backend, in [aescore.BlockSize]byte) [OutLen]byte {
	var out [OutLen]byte
	chain := IV
	for i := 0; i < requiredBlocks; i++ {
		block := mp(backend, chain, in)
		copy(out[i*aescore.BlockSize:(i+1)*aescore.BlockSize], block[:])
		chain = block
	}
	return out
}

// G expands a 16-byte seed deterministically into OutLen bytes by chaining MP
// blocks Merkle-Damgård style: block 0 is MP(IV, in); block i>=1 is
// MP(out[i-1], in). It always runs under aescore.Selected, the host's
// capability-detected backend.
func G(in [aescore.BlockSize]byte) [OutLen]byte {
	return GWithBackend(aescore.Selected, in)
}

// GSlice is the byte-slice-oriented form of G, validating input length per
// spec.md §4.1's "in MUST be exactly 16 bytes" contract.
func GSlice(in []byte) ([]byte, error) {
	if len(in) != aescore.BlockSize {
		return nil, ferrors.ErrInvalidArgument
	}
	var fixed [aescore.BlockSize]byte
	copy(fixed[:], in)
	out := G(fixed)
	return out[:], nil
}

// Expansion is the parsed output of G, split left/right per spec.md §4.1:
// (s_L, s_R, v_L, v_R, t_L, t_R), with t_L/t_R each the low bit of their byte.
type Expansion struct {
	SL, SR [aescore.BlockSize]byte
	VL, VR ring.Elem
	TL, TR uint8
}

// Expand runs G on seed and parses the result into an Expansion at the fixed
// offsets spec.md §3 documents: s_L, s_R (16 bytes each), v_L, v_R
// (ring.Bytes each), then t_L, t_R as single bits.
func Expand(seed [aescore.BlockSize]byte) Expansion {
	out := G(seed)
	var e Expansion
	off := 0
	copy(e.SL[:], out[off:off+aescore.BlockSize])
	off += aescore.BlockSize
	copy(e.SR[:], out[off:off+aescore.BlockSize])
	off += aescore.BlockSize
	e.VL = ring.FromBytesLE(out[off : off+ring.Bytes])
	off += ring.Bytes
	e.VR = ring.FromBytesLE(out[off : off+ring.Bytes])
	off += ring.Bytes
	e.TL = out[off] & 1
	off++
	e.TR = out[off] & 1
	return e
}

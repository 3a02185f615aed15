// Package dcf implements the Distributed Comparison Function gate: the
// algorithmic heart of spec.md (~40% of the core), generalizing the two-party
// point-function construction in
// _examples/mvmcconnell-pir/dpf/{client,server}.go (same walking-seed-pair,
// same keep/lose-per-level structure) into a full comparison gate by adding
// the per-level value correction word V_cw the teacher's point function
// doesn't need.
package dcf

import (
	"github.com/ibarrond/funshade/internal/aescore"
	"github.com/ibarrond/funshade/internal/ferrors"
	"github.com/ibarrond/funshade/internal/ring"
)

const (
	// SLen is S_LEN: the seed/state width in bytes.
	SLen = aescore.BlockSize
	// VLen is V_LEN: the ring-element width in bytes.
	VLen = ring.Bytes
	// N is the ring width in bits, and the number of GGM-tree levels.
	N = ring.Width
	// CWLen is CW_LEN: one correction word's byte width.
	CWLen = SLen + VLen + 2
	// ChainLen is CW_CHAIN_LEN: the full correction-word chain plus the
	// trailing ring element.
	ChainLen = N*CWLen + VLen
	// KeySize is the wire size of one DCF key: SLen + ChainLen. For N=32,
	// VLen=4 this is 724 bytes, matching spec.md §6's worked example.
	KeySize = SLen + ChainLen
)

// Key is a structured view of one party's DCF key: a leading seed unique to
// the party, and a correction-word chain shared byte-for-byte between both
// parties' keys (spec.md §3's DCF key invariant). It serializes to the
// documented byte layout via MarshalBinary/UnmarshalBinary while avoiding the
// offset-arithmetic bugs of treating keys as opaque buffers throughout
// (spec.md §9's "typed view" design note).
type Key struct {
	Seed  [SLen]byte
	Chain []byte // length ChainLen
}

// cw is one level's correction word: (s_cw, V_cw, t_cw_L, t_cw_R).
type cw struct {
	S      [SLen]byte
	V      ring.Elem
	TL, TR uint8
}

func newChain() []byte {
	return make([]byte, ChainLen)
}

func sCWOffset(level int) int { return level * CWLen }
func vCWOffset(level int) int { return sCWOffset(level) + SLen }
func tCWLOffset(level int) int { return vCWOffset(level) + VLen }
func tCWROffset(level int) int { return tCWLOffset(level) + 1 }
func tailOffset() int          { return N * CWLen }

func putCW(chain []byte, level int, c cw) {
	copy(chain[sCWOffset(level):sCWOffset(level)+SLen], c.S[:])
	ring.PutBytesLE(chain[vCWOffset(level):vCWOffset(level)+VLen], c.V)
	chain[tCWLOffset(level)] = c.TL
	chain[tCWROffset(level)] = c.TR
}

func getCW(chain []byte, level int) cw {
	var c cw
	copy(c.S[:], chain[sCWOffset(level):sCWOffset(level)+SLen])
	c.V = ring.FromBytesLE(chain[vCWOffset(level) : vCWOffset(level)+VLen])
	c.TL = chain[tCWLOffset(level)]
	c.TR = chain[tCWROffset(level)]
	return c
}

func putTail(chain []byte, v ring.Elem) {
	ring.PutBytesLE(chain[tailOffset():tailOffset()+VLen], v)
}

func getTail(chain []byte) ring.Elem {
	return ring.FromBytesLE(chain[tailOffset() : tailOffset()+VLen])
}

// MarshalBinary encodes the key into its stable wire format (spec.md §6):
// seed[16] || CW_chain[ChainLen].
func (k *Key) MarshalBinary() ([]byte, error) {
	if k == nil || len(k.Chain) != ChainLen {
		return nil, ferrors.ErrInvalidArgument
	}
	out := make([]byte, KeySize)
	copy(out[:SLen], k.Seed[:])
	copy(out[SLen:], k.Chain)
	return out, nil
}

// UnmarshalBinary decodes a key from its wire format, failing on any length
// mismatch (a programmer-error contract violation per spec.md §7).
func (k *Key) UnmarshalBinary(data []byte) error {
	if len(data) != KeySize {
		return ferrors.ErrInvalidArgument
	}
	copy(k.Seed[:], data[:SLen])
	k.Chain = make([]byte, ChainLen)
	copy(k.Chain, data[SLen:])
	return nil
}

// Package entropy is the randomness source of spec.md §4.2: uniform bytes and
// ring elements, seedable for test determinism, backed by a CSPRNG when
// available.
//
// The unseeded path wraps github.com/sixafter/aes-ctr-drbg, a pool-backed
// NIST SP 800-90A AES-CTR-DRBG io.Reader (grounded on
// _examples/sixafter-nanoid/x/crypto/ctrdrbg). The seeded deterministic path
// cannot reuse that package (it has no from-seed constructor, by design — see
// SPEC_FULL.md §4.2) and is instead built directly on crypto/aes +
// crypto/cipher.NewCTR, a stdlib construction used here only because no
// retrieved library exposes seed-determinism.
package entropy

import (
	"crypto/cipher"
	"crypto/sha256"
	"io"
	"sync"

	ctrdrbg "github.com/sixafter/aes-ctr-drbg"

	"github.com/ibarrond/funshade/internal/aescore"
	"github.com/ibarrond/funshade/internal/ferrors"
	"github.com/ibarrond/funshade/internal/ring"
)

// SeedLen is the required length of a deterministic seed (spec.md §6).
const SeedLen = 32

var (
	initOnce   sync.Once
	initErr    error
	csprngRead io.Reader
)

// initCSPRNG lazily constructs the package-level CSPRNG reader, following the
// idempotent-one-shot-initializer requirement of spec.md §4.2/§5 ("If the
// CSPRNG requires one-time initialization, that initialization MUST be
// idempotent and safe to call from any thread").
func initCSPRNG() {
	initOnce.Do(func() {
		r, err := ctrdrbg.NewReader()
		if err != nil {
			initErr = err
			return
		}
		csprngRead = r
	})
}

// RandomBytes fills buf with uniform random bytes from the CSPRNG.
func RandomBytes(buf []byte) error {
	initCSPRNG()
	if initErr != nil {
		return ferrors.ErrCsprngUnavailable
	}
	if _, err := io.ReadFull(csprngRead, buf); err != nil {
		return ferrors.ErrCsprngUnavailable
	}
	return nil
}

// RandomBytesSeeded deterministically fills buf from a 32-byte seed: the same
// seed always produces the same bytes, required for reproducible tests
// (property P6) and for DCF_gen_seeded.
func RandomBytesSeeded(buf []byte, seed [SeedLen]byte) error {
	if len(buf) == 0 {
		return nil
	}
	stream := seededStream(seed)
	stream.XORKeyStream(buf, make([]byte, len(buf)))
	return nil
}

// seededStream derives an AES-CTR keystream from seed via SHA-256 domain
// separation: SHA-256("funshade-entropy-key" || seed) becomes the AES-128
// key, SHA-256("funshade-entropy-iv" || seed) becomes the CTR initial
// counter block.
func seededStream(seed [SeedLen]byte) cipher.Stream {
	h := sha256.New()
	h.Write([]byte("funshade-entropy-key"))
	h.Write(seed[:])
	keyDigest := h.Sum(nil)

	h2 := sha256.New()
	h2.Write([]byte("funshade-entropy-iv"))
	h2.Write(seed[:])
	ivDigest := h2.Sum(nil)

	return aescore.NewCTRStream(keyDigest[:aescore.BlockSize], ivDigest[:aescore.BlockSize])
}

// RandomRing draws a uniform random ring.Elem from the CSPRNG.
func RandomRing() (ring.Elem, error) {
	var buf [ring.Bytes]byte
	if err := RandomBytes(buf[:]); err != nil {
		return 0, err
	}
	return ring.FromBytesLE(buf[:]), nil
}

// RandomRingSeeded deterministically draws a ring.Elem from a 32-byte seed.
func RandomRingSeeded(seed [SeedLen]byte) ring.Elem {
	var buf [ring.Bytes]byte
	_ = RandomBytesSeeded(buf[:], seed)
	return ring.FromBytesLE(buf[:])
}

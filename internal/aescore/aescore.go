// Package aescore is the AES-128 collaborator specified by spec.md §6:
// aes128_ecb_encrypt_block(key[16], plaintext[16]) -> ciphertext[16].
//
// It ships two implementations that MUST produce bit-identical ciphertext for
// every input (spec.md §4.1, property P1): a hardware-accelerated backend
// backed by crypto/aes (which Go itself dispatches to AES-NI / ARMv8 crypto
// extensions when the host advertises them), and a portable table-based
// AES-128 implementation used when the host lacks those instructions or when
// FUNSHADE_FORCE_SOFTWARE_AES is set to "1" (for exercising P1 in CI on any host).
//
// Grounded on _examples/mvmcconnell-pir/dpf/{client,server}.go's use of
// crypto/aes + crypto/cipher for keyed block expansion, generalized: see
// internal/prg for the Miyaguchi-Preneel construction, which keys its first
// block with a fixed public IV and every later block with the previous
// (seed-derived) output block.
package aescore

import (
	"crypto/aes"
	"crypto/cipher"
	"os"

	"golang.org/x/sys/cpu"
)

// BlockSize is the AES block size in bytes.
const BlockSize = 16

// Backend encrypts one 16-byte block under a 16-byte key.
type Backend interface {
	// Encrypt writes AES128_ENC(key, src) into dst. dst and src must each be
	// exactly BlockSize bytes; src may alias dst.
	Encrypt(dst, src, key []byte)
}

// Selected is the capability-detected backend used by internal/prg's G. It is a
// build-time/init-time choice (spec.md §4.1: "selector is build-time
// capability detection"), not a per-call branch, so the inner PRG loop stays
// inlinable (see spec.md §9's dispatch-choice design note).
var Selected Backend = selectBackend()

// Hardware and Software expose both concrete backends directly, regardless
// of what Selected resolves to on the running host. internal/prg's parity
// test (property P1: "hardware and portable G produce byte-identical
// output") needs both sides available simultaneously, which Selected alone
// cannot provide on any single host.
var (
	Hardware Backend = hardwareBackend{}
	Software Backend = softwareBackend{}
)

func selectBackend() Backend {
	if os.Getenv("FUNSHADE_FORCE_SOFTWARE_AES") == "1" {
		return softwareBackend{}
	}
	if hasHardwareAES() {
		return hardwareBackend{}
	}
	return softwareBackend{}
}

// hasHardwareAES reports whether the host advertises the AES instructions
// crypto/aes itself would use, via golang.org/x/sys/cpu (the same capability
// package crypto/aes consults internally, and a direct dependency of both
// _examples/luxfi-threshold/go.mod and _examples/wyf-ACCEPT-eth2030/pkg/go.mod).
func hasHardwareAES() bool {
	return cpu.X86.HasAES || cpu.ARM64.HasAES
}

// hardwareBackend delegates to crypto/aes, which performs its own runtime
// dispatch to AES-NI / ARMv8 crypto instructions.
type hardwareBackend struct{}

func (hardwareBackend) Encrypt(dst, src, key []byte) {
	block, err := aes.NewCipher(key)
	if err != nil {
		// key is always exactly 16 bytes by construction of internal/prg;
		// a NewCipher failure here is a programmer-error invariant break.
		panic("aescore: invalid AES-128 key: " + err.Error())
	}
	block.Encrypt(dst, src)
}

// softwareBackend is the portable fallback: a from-scratch table-based
// AES-128 (Nb=4, Nk=4, Nr=10) block function.
type softwareBackend struct{}

func (softwareBackend) Encrypt(dst, src, key []byte) {
	var rk [11][4]uint32
	expandKey128(key, &rk)
	encryptBlockPortable(dst, src, &rk)
}

// NewCTRStream constructs a keystream cipher.Stream for the deterministic
// seeded entropy path (internal/entropy); it always uses the hardware path
// since CTR-mode keystream generation has no secrecy requirement on control
// flow (only DCF_gen's branching on alpha is in scope for spec.md §5's
// control-flow-secrecy note).
func NewCTRStream(key, iv []byte) cipher.Stream {
	block, err := aes.NewCipher(key)
	if err != nil {
		panic("aescore: invalid AES-128 key: " + err.Error())
	}
	return cipher.NewCTR(block, iv)
}

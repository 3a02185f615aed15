// Package ferrors defines the sentinel errors shared across the funshade
// packages, so callers can errors.Is against a stable set of failure modes
// instead of matching error strings.
package ferrors

import "errors"

// ErrInvalidArgument marks a programmer-error contract violation: a nil key,
// a wrong-length buffer, or mismatched lengths between setup and eval.
var ErrInvalidArgument = errors.New("funshade: invalid argument")

// ErrCsprngUnavailable marks a failure to obtain a secure entropy source.
// It is fatal: the library cannot provide its security contract without one.
var ErrCsprngUnavailable = errors.New("funshade: csprng unavailable")

// ErrOutOfMemory marks an allocation failure recovered at a top-level entry
// point (Go allocation failures panic; funshade recovers only to attach this
// sentinel, not to continue execution).
var ErrOutOfMemory = errors.New("funshade: out of memory")

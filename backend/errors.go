package backend

import "errors"

// Error taxonomy for the proving backend (spec §7). Tree-level errors
// (shape, input-commitment mismatch) live in package tree; these are the
// ones that originate inside circuit compilation, witness filling, and
// proving.
var (
	// ErrVerifierDigestUnset is returned when a circuit/witness fill is
	// attempted before CompileAndBuild has produced a verifier digest.
	ErrVerifierDigestUnset = errors.New("backend: verifier digest requested before compile-and-build")

	// ErrArityMismatch is returned when a proof's public-input count does
	// not match the arity a circuit was compiled to expect.
	ErrArityMismatch = errors.New("backend: proof public-input arity does not match circuit's reserved arity")

	// ErrSiblingDigestMismatch is returned when two sibling proofs being
	// folded by a node circuit were produced by circuits with different
	// verifier digests.
	ErrSiblingDigestMismatch = errors.New("backend: sibling proofs were produced by different circuits")

	// ErrBackendError wraps opaque failures surfaced by gnark's compile,
	// setup, prove, or verify calls.
	ErrBackendError = errors.New("backend: proving backend error")
)

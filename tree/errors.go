package tree

import (
	"errors"

	"github.com/vocdoni/zktree/backend"
)

// Error taxonomy for the tree driver and root verifier (spec §7). Errors
// that originate inside circuit compilation, witness filling, or proving
// are defined in package backend and re-exported here so callers only
// need to import one package to errors.Is against the full taxonomy.
var (
	// ErrShape is returned when a user-proof batch is not a power of two
	// greater than one.
	ErrShape = errors.New("tree: batch size must be a power of two greater than one")

	// ErrInputCommitmentMismatch is returned when the root proof's
	// input_hash disagrees with the independently computed Merkle cap
	// over the user proofs' inputs.
	ErrInputCommitmentMismatch = errors.New("tree: merkle cap does not match root input hash")

	// ErrUntrustedCircuit is returned by VerifyTrusted when the root
	// proof's circuit_verifier_digest does not match the caller's known
	// node-circuit digest.
	ErrUntrustedCircuit = errors.New("tree: root circuit_verifier_digest does not match trusted digest")

	ErrVerifierDigestUnset   = backend.ErrVerifierDigestUnset
	ErrArityMismatch         = backend.ErrArityMismatch
	ErrSiblingDigestMismatch = backend.ErrSiblingDigestMismatch
	ErrBackendError          = backend.ErrBackendError
)

// Package proof is the Proof Abstraction (spec §3, §4.2): a single
// capability interface implemented by UserProof, LeafProof and NodeProof,
// used uniformly by the leaf/node circuit packages and the tree driver.
package proof

import (
	"math/big"

	"github.com/vocdoni/zktree/backend"
)

// Provable is the capability every proof kind in the tree exposes. A leaf
// or node circuit only ever reads a child through this interface, never
// by inspecting its concrete type.
type Provable interface {
	// InputHash is H(flatten(inputs)) for a user proof, or
	// H(left.InputHash, right.InputHash) for a node proof.
	InputHash() *big.Int

	// CircuitHash identifies the shape of the subtree rooted at this
	// proof: H(verifier_digest, user_circuit_hash) for a leaf,
	// H(left.CircuitHash, verifier_digest, right.CircuitHash) for a node.
	CircuitHash() *big.Int

	// CircuitVerifierDigest is the verifier_digest of the circuit that
	// produced this proof (spec invariant 3's homogeneity key).
	CircuitVerifierDigest() *big.Int

	// ProofData is the underlying backend proof, usable by a parent
	// circuit's recursive verifier.
	ProofData() *backend.ProofData

	// UserPublicInputs returns the raw nested input sequence for a user
	// proof, or nil for a leaf/node proof (those only expose the two
	// folded digests above).
	UserPublicInputs() [][]*big.Int
}

func flatten(inputs [][]*big.Int) []*big.Int {
	n := 0
	for _, row := range inputs {
		n += len(row)
	}
	out := make([]*big.Int, 0, n)
	for _, row := range inputs {
		out = append(out, row...)
	}
	return out
}

package proof

import (
	"math/big"

	"github.com/vocdoni/zktree/backend"
)

// UserProof wraps an opaque, already-produced proof from some user's own
// circuit, together with the nested public inputs it claims and a
// declared identity for that circuit (spec §3).
type UserProof struct {
	inputs          [][]*big.Int
	userCircuitHash *big.Int
	proofData       *backend.ProofData
}

// NewUserProof constructs a UserProof. userCircuitHash is the identity the
// user declares for their own circuit (opaque to the tree, used only to
// fold into the leaf's circuit_hash).
func NewUserProof(inputs [][]*big.Int, userCircuitHash *big.Int, proofData *backend.ProofData) *UserProof {
	return &UserProof{inputs: inputs, userCircuitHash: userCircuitHash, proofData: proofData}
}

// FlatInputs returns the flattened public inputs, in order.
func (u *UserProof) FlatInputs() []*big.Int {
	return flatten(u.inputs)
}

// Arity is the number of flattened public inputs this user proof declares.
func (u *UserProof) Arity() int {
	return len(u.FlatInputs())
}

// UserCircuitHash is the user's declared circuit identity.
func (u *UserProof) UserCircuitHash() *big.Int {
	return u.userCircuitHash
}

// InputHash implements Provable.
func (u *UserProof) InputHash() *big.Int {
	return backend.HashOrNoop(u.FlatInputs()...)
}

// CircuitHash implements Provable. Not consumed by any node circuit (user
// proofs are only ever folded by a leaf circuit, never directly by a node
// circuit), kept for interface completeness.
func (u *UserProof) CircuitHash() *big.Int {
	return u.userCircuitHash
}

// CircuitVerifierDigest implements Provable.
func (u *UserProof) CircuitVerifierDigest() *big.Int {
	return u.userCircuitHash
}

// ProofData implements Provable.
func (u *UserProof) ProofData() *backend.ProofData {
	return u.proofData
}

// UserPublicInputs implements Provable.
func (u *UserProof) UserPublicInputs() [][]*big.Int {
	return u.inputs
}

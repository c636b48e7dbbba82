package proof

import (
	"math/big"

	"github.com/vocdoni/zktree/backend"
)

// LeafProof is the output of the leaf circuit: one verified user proof,
// rebound into the tree's two-field wire contract (spec §4.3, §6).
type LeafProof struct {
	inputHash      *big.Int
	circuitHash    *big.Int
	verifierDigest *big.Int
	proofData      *backend.ProofData
}

// NewLeafProof constructs a LeafProof from its folded digests and backend
// proof.
func NewLeafProof(inputHash, circuitHash, verifierDigest *big.Int, proofData *backend.ProofData) *LeafProof {
	return &LeafProof{
		inputHash:      inputHash,
		circuitHash:    circuitHash,
		verifierDigest: verifierDigest,
		proofData:      proofData,
	}
}

// InputHash implements Provable.
func (l *LeafProof) InputHash() *big.Int { return l.inputHash }

// CircuitHash implements Provable.
func (l *LeafProof) CircuitHash() *big.Int { return l.circuitHash }

// CircuitVerifierDigest implements Provable.
func (l *LeafProof) CircuitVerifierDigest() *big.Int { return l.verifierDigest }

// ProofData implements Provable.
func (l *LeafProof) ProofData() *backend.ProofData { return l.proofData }

// UserPublicInputs implements Provable: leaf proofs only expose the two
// folded digests, not the user's raw inputs.
func (l *LeafProof) UserPublicInputs() [][]*big.Int { return nil }

package proof

import (
	"math/big"

	"github.com/vocdoni/zktree/backend"
)

// NodeProof is the output of a node circuit: two homogeneous sibling
// proofs folded into one (spec §4.4).
type NodeProof struct {
	inputHash      *big.Int
	circuitHash    *big.Int
	verifierDigest *big.Int
	proofData      *backend.ProofData
}

// NewNodeProof constructs a NodeProof from its folded digests and backend
// proof.
func NewNodeProof(inputHash, circuitHash, verifierDigest *big.Int, proofData *backend.ProofData) *NodeProof {
	return &NodeProof{
		inputHash:      inputHash,
		circuitHash:    circuitHash,
		verifierDigest: verifierDigest,
		proofData:      proofData,
	}
}

// InputHash implements Provable.
func (n *NodeProof) InputHash() *big.Int { return n.inputHash }

// CircuitHash implements Provable.
func (n *NodeProof) CircuitHash() *big.Int { return n.circuitHash }

// CircuitVerifierDigest implements Provable.
func (n *NodeProof) CircuitVerifierDigest() *big.Int { return n.verifierDigest }

// ProofData implements Provable.
func (n *NodeProof) ProofData() *backend.ProofData { return n.proofData }

// UserPublicInputs implements Provable: node proofs never expose raw user
// inputs, only the two folded digests.
func (n *NodeProof) UserPublicInputs() [][]*big.Int { return nil }

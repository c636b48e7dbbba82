package node

import (
	"fmt"
	"math/big"

	"github.com/vocdoni/zktree/backend"
	"github.com/vocdoni/zktree/log"
	"github.com/vocdoni/zktree/proof"
)

// NewPlaceholder sizes an empty node Circuit from the shape of a
// representative sibling pair. Both siblings must come from circuits with
// the same CCS shape (spec invariant 3, checked again off-circuit in
// NewAssignment for a friendlier error before any witness is built).
func NewPlaceholder(left, right proof.Provable) *Circuit {
	ccs := left.ProofData().Circuit.CCS
	return &Circuit{
		LeftProof:         backend.PlaceholderProof(ccs),
		LeftVerifyingKey:  backend.PlaceholderVerifyingKey(ccs),
		LeftWitness:       backend.PlaceholderWitness(ccs),
		RightProof:        backend.PlaceholderProof(ccs),
		RightVerifyingKey: backend.PlaceholderVerifyingKey(ccs),
		RightWitness:      backend.PlaceholderWitness(ccs),
	}
}

// NewAssignment fills a node Circuit's witness for one sibling pair.
func NewAssignment(left, right proof.Provable, selfDigest *big.Int) (*Circuit, error) {
	if selfDigest == nil {
		return nil, backend.ErrVerifierDigestUnset
	}
	if left.CircuitVerifierDigest().Cmp(right.CircuitVerifierDigest()) != 0 {
		return nil, fmt.Errorf("%w: left digest %s, right digest %s",
			backend.ErrSiblingDigestMismatch,
			left.CircuitVerifierDigest().String(), right.CircuitVerifierDigest().String())
	}

	leftProofVal, err := backend.ValueOfProof(left.ProofData().Proof)
	if err != nil {
		return nil, fmt.Errorf("%w: lift left proof: %v", backend.ErrBackendError, err)
	}
	leftVKVal, err := backend.ValueOfVerifyingKey(left.ProofData().Circuit.VerifyingKey)
	if err != nil {
		return nil, fmt.Errorf("%w: lift left verifying key: %v", backend.ErrBackendError, err)
	}
	leftWitVal, err := backend.ValueOfWitness(left.ProofData().PublicWitness)
	if err != nil {
		return nil, fmt.Errorf("%w: lift left witness: %v", backend.ErrBackendError, err)
	}

	rightProofVal, err := backend.ValueOfProof(right.ProofData().Proof)
	if err != nil {
		return nil, fmt.Errorf("%w: lift right proof: %v", backend.ErrBackendError, err)
	}
	rightVKVal, err := backend.ValueOfVerifyingKey(right.ProofData().Circuit.VerifyingKey)
	if err != nil {
		return nil, fmt.Errorf("%w: lift right verifying key: %v", backend.ErrBackendError, err)
	}
	rightWitVal, err := backend.ValueOfWitness(right.ProofData().PublicWitness)
	if err != nil {
		return nil, fmt.Errorf("%w: lift right witness: %v", backend.ErrBackendError, err)
	}

	return &Circuit{
		InputHash:         backend.HashOrNoop(left.InputHash(), right.InputHash()),
		CircuitHash:       backend.HashOrNoop(left.CircuitHash(), selfDigest, right.CircuitHash()),
		LeftInputHash:     left.InputHash(),
		RightInputHash:    right.InputHash(),
		LeftCircuitHash:   left.CircuitHash(),
		RightCircuitHash:  right.CircuitHash(),
		SelfDigest:        selfDigest,
		LeftProof:         leftProofVal,
		LeftVerifyingKey:  leftVKVal,
		LeftWitness:       leftWitVal,
		RightProof:        rightProofVal,
		RightVerifyingKey: rightVKVal,
		RightWitness:      rightWitVal,
	}, nil
}

// Prove folds left and right into one NodeProof.
func Prove(circuit *backend.CircuitData, left, right proof.Provable) (*proof.NodeProof, error) {
	assignment, err := NewAssignment(left, right, circuit.VerifierDigest)
	if err != nil {
		return nil, err
	}
	pd, err := circuit.Prove(assignment)
	if err != nil {
		return nil, err
	}
	inputHash := backend.HashOrNoop(left.InputHash(), right.InputHash())
	circuitHash := backend.HashOrNoop(left.CircuitHash(), circuit.VerifierDigest, right.CircuitHash())
	log.Debugw("node proof built", "input_hash", inputHash.String(), "circuit_hash", circuitHash.String())
	return proof.NewNodeProof(inputHash, circuitHash, circuit.VerifierDigest, pd), nil
}

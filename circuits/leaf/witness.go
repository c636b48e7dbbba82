package leaf

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark/frontend"

	"github.com/vocdoni/zktree/backend"
	"github.com/vocdoni/zktree/log"
	"github.com/vocdoni/zktree/proof"
)

// NewPlaceholder sizes an empty leaf Circuit from the shape of a
// representative user proof (spec §4.3 step 1): every user proof this
// circuit will later verify must share user's arity and circuit shape.
func NewPlaceholder(user *proof.UserProof) *Circuit {
	ccs := user.ProofData().Circuit.CCS
	return &Circuit{
		FlatInputs:       make([]frontend.Variable, user.Arity()),
		UserProof:        backend.PlaceholderProof(ccs),
		UserVerifyingKey: backend.PlaceholderVerifyingKey(ccs),
		UserWitness:      backend.PlaceholderWitness(ccs),
	}
}

// NewAssignment fills a leaf Circuit's witness for one user proof. It is
// the Fill half of the original's EvaluateFillCircuit split (SPEC_FULL.md).
func NewAssignment(user *proof.UserProof, selfDigest *big.Int) (*Circuit, error) {
	if selfDigest == nil {
		return nil, backend.ErrVerifierDigestUnset
	}

	flat := user.FlatInputs()
	arity, err := user.ProofData().Arity()
	if err != nil {
		return nil, err
	}
	if arity != len(flat) {
		return nil, fmt.Errorf("%w: user proof declares %d public inputs, but %d flattened inputs",
			backend.ErrArityMismatch, arity, len(flat))
	}

	userProofVal, err := backend.ValueOfProof(user.ProofData().Proof)
	if err != nil {
		return nil, fmt.Errorf("%w: lift user proof: %v", backend.ErrBackendError, err)
	}
	userVKVal, err := backend.ValueOfVerifyingKey(user.ProofData().Circuit.VerifyingKey)
	if err != nil {
		return nil, fmt.Errorf("%w: lift user verifying key: %v", backend.ErrBackendError, err)
	}
	userWitVal, err := backend.ValueOfWitness(user.ProofData().PublicWitness)
	if err != nil {
		return nil, fmt.Errorf("%w: lift user witness: %v", backend.ErrBackendError, err)
	}

	vars := make([]frontend.Variable, len(flat))
	for i, f := range flat {
		vars[i] = f
	}

	return &Circuit{
		InputHash:        backend.HashOrNoop(flat...),
		CircuitHash:      backend.HashOrNoop(selfDigest, user.UserCircuitHash()),
		FlatInputs:       vars,
		UserCircuitHash:  user.UserCircuitHash(),
		SelfDigest:       selfDigest,
		UserProof:        userProofVal,
		UserVerifyingKey: userVKVal,
		UserWitness:      userWitVal,
	}, nil
}

// Prove compiles the witness for user against circuit and returns the
// resulting LeafProof.
func Prove(circuit *backend.CircuitData, user *proof.UserProof) (*proof.LeafProof, error) {
	assignment, err := NewAssignment(user, circuit.VerifierDigest)
	if err != nil {
		return nil, err
	}
	pd, err := circuit.Prove(assignment)
	if err != nil {
		return nil, err
	}
	inputHash := backend.HashOrNoop(user.FlatInputs()...)
	circuitHash := backend.HashOrNoop(circuit.VerifierDigest, user.UserCircuitHash())
	log.Debugw("leaf proof built", "input_hash", inputHash.String(), "circuit_hash", circuitHash.String())
	return proof.NewLeafProof(inputHash, circuitHash, circuit.VerifierDigest, pd), nil
}

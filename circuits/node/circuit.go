// Package node implements the Node Circuit (spec §4.4): it recursively
// verifies two homogeneous sibling proofs (both leaves, or both nodes from
// the level below) and folds their digests into one.
package node

import (
	"fmt"

	"github.com/consensys/gnark/frontend"

	"github.com/vocdoni/zktree/backend"
)

// Circuit is the arithmetized node verifier. The witness tuple ordering
// (l_in, r_in, l_circ, r_circ, v_N) is taken from the ancestor
// implementation's NodeCircuit::evaluate and preserved here as the order
// the private witness fields are declared in.
type Circuit struct {
	InputHash   frontend.Variable `gnark:",public"`
	CircuitHash frontend.Variable `gnark:",public"`

	LeftInputHash    frontend.Variable
	RightInputHash   frontend.Variable
	LeftCircuitHash  frontend.Variable
	RightCircuitHash frontend.Variable

	// SelfDigest (v_N) is this node circuit's own verifier_digest,
	// supplied as a witness from a prior compile-and-build.
	SelfDigest frontend.Variable

	LeftProof        backend.Proof
	LeftVerifyingKey backend.VerifyingKey
	LeftWitness      backend.Witness

	RightProof        backend.Proof
	RightVerifyingKey backend.VerifyingKey
	RightWitness      backend.Witness
}

// Define implements frontend.Circuit.
func (c *Circuit) Define(api frontend.API) error {
	hIn, err := backend.HashOrNoopGadget(api, c.LeftInputHash, c.RightInputHash)
	if err != nil {
		return fmt.Errorf("hash input digests: %w", err)
	}
	api.AssertIsEqual(c.InputHash, hIn)

	hCirc, err := backend.HashOrNoopGadget(api, c.LeftCircuitHash, c.SelfDigest, c.RightCircuitHash)
	if err != nil {
		return fmt.Errorf("hash circuit digests: %w", err)
	}
	api.AssertIsEqual(c.CircuitHash, hCirc)

	if err := backend.AssertVerifyingKeysEqual(api, c.LeftVerifyingKey, c.RightVerifyingKey); err != nil {
		return err
	}

	if len(c.LeftWitness.Public) != 2 {
		return fmt.Errorf("%w: left child exposes %d public inputs, want 2",
			backend.ErrArityMismatch, len(c.LeftWitness.Public))
	}
	if len(c.RightWitness.Public) != 2 {
		return fmt.Errorf("%w: right child exposes %d public inputs, want 2",
			backend.ErrArityMismatch, len(c.RightWitness.Public))
	}

	verifier, err := backend.NewVerifier(api)
	if err != nil {
		return err
	}
	if err := verifier.AssertProof(c.LeftVerifyingKey, c.LeftProof, c.LeftWitness); err != nil {
		return fmt.Errorf("assert left proof: %w", err)
	}
	if err := verifier.AssertProof(c.RightVerifyingKey, c.RightProof, c.RightWitness); err != nil {
		return fmt.Errorf("assert right proof: %w", err)
	}

	leftIn, err := backend.PackScalar(api, &c.LeftWitness.Public[0])
	if err != nil {
		return err
	}
	api.AssertIsEqual(leftIn, c.LeftInputHash)

	leftCirc, err := backend.PackScalar(api, &c.LeftWitness.Public[1])
	if err != nil {
		return err
	}
	api.AssertIsEqual(leftCirc, c.LeftCircuitHash)

	rightIn, err := backend.PackScalar(api, &c.RightWitness.Public[0])
	if err != nil {
		return err
	}
	api.AssertIsEqual(rightIn, c.RightInputHash)

	rightCirc, err := backend.PackScalar(api, &c.RightWitness.Public[1])
	if err != nil {
		return err
	}
	api.AssertIsEqual(rightCirc, c.RightCircuitHash)

	return nil
}

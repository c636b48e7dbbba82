// Package leaf implements the Leaf Circuit (spec §4.3): it recursively
// verifies one user proof and rebinds its declared inputs and circuit
// identity into the tree's two-field wire contract.
package leaf

import (
	"fmt"

	"github.com/consensys/gnark/frontend"

	"github.com/vocdoni/zktree/backend"
)

// Circuit is the arithmetized leaf verifier.
type Circuit struct {
	// Public outputs, in order (spec §6's wire contract; 2 elements here
	// rather than plonky2's 8 because Digest is a single field element).
	InputHash   frontend.Variable `gnark:",public"`
	CircuitHash frontend.Variable `gnark:",public"`

	// FlatInputs mirrors the nested `inputs` shape of the user proof,
	// flattened. Its length is fixed at compile time (spec §4.3 step 1):
	// every user proof folded by a given leaf circuit must share this
	// arity.
	FlatInputs []frontend.Variable

	// UserCircuitHash (v_U) is the user's declared circuit identity.
	UserCircuitHash frontend.Variable

	// SelfDigest (v_L) is this leaf circuit's own verifier_digest,
	// supplied as a witness from the cached value of a prior
	// compile-and-build (spec §4.3/§9's two-phase build).
	SelfDigest frontend.Variable

	// UserProof/UserVerifyingKey/UserWitness are the recursively verified
	// user proof's targets. The verifying key is witnessed, not fixed,
	// because user circuits are heterogeneous.
	UserProof        backend.Proof
	UserVerifyingKey backend.VerifyingKey
	UserWitness      backend.Witness
}

// Define implements frontend.Circuit.
func (c *Circuit) Define(api frontend.API) error {
	h, err := backend.HashOrNoopGadget(api, c.FlatInputs...)
	if err != nil {
		return fmt.Errorf("hash flat inputs: %w", err)
	}
	api.AssertIsEqual(c.InputHash, h)

	hc, err := backend.HashOrNoopGadget(api, c.SelfDigest, c.UserCircuitHash)
	if err != nil {
		return fmt.Errorf("hash circuit identity: %w", err)
	}
	api.AssertIsEqual(c.CircuitHash, hc)

	if len(c.UserWitness.Public) != len(c.FlatInputs) {
		return fmt.Errorf("%w: user proof exposes %d public inputs, leaf circuit reserved %d",
			backend.ErrArityMismatch, len(c.UserWitness.Public), len(c.FlatInputs))
	}

	verifier, err := backend.NewVerifier(api)
	if err != nil {
		return err
	}
	if err := verifier.AssertProof(c.UserVerifyingKey, c.UserProof, c.UserWitness); err != nil {
		return fmt.Errorf("assert user proof: %w", err)
	}

	for i := range c.FlatInputs {
		packed, err := backend.PackScalar(api, &c.UserWitness.Public[i])
		if err != nil {
			return err
		}
		api.AssertIsEqual(packed, c.FlatInputs[i])
	}
	return nil
}

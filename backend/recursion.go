package backend

import (
	"fmt"
	"math/big"

	nativegroth16 "github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/backend/witness"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/algebra/emulated/sw_bn254"
	"github.com/consensys/gnark/std/math/emulated"
	"github.com/consensys/gnark/std/recursion/groth16"
)

// Proof, VerifyingKey and Witness are the in-circuit recursive-verifier
// types used by both circuits/leaf and circuits/node: self-recursion via
// emulation, verifying a BN254 Groth16 proof inside a circuit that is
// itself compiled for BN254 (see SPEC_FULL.md's Backend choice section),
// grounded in circuits/aggregator/aggregator.go and
// circuits/statetransition/circuit.go's use of the same generic
// groth16.NewVerifier[...] gadget for a different (fixed) curve pair.
type (
	Proof        = groth16.Proof[sw_bn254.G1Affine, sw_bn254.G2Affine]
	VerifyingKey = groth16.VerifyingKey[sw_bn254.G1Affine, sw_bn254.G2Affine, sw_bn254.GT]
	Witness      = groth16.Witness[sw_bn254.ScalarField]
)

// Verifier is the recursive verifier gadget type, parameterized once here
// so every circuit constructs it the same way.
type Verifier = groth16.Verifier[sw_bn254.ScalarField, sw_bn254.G1Affine, sw_bn254.G2Affine, sw_bn254.GT]

// NewVerifier builds the recursive verifier gadget inside api.
func NewVerifier(api frontend.API) (*Verifier, error) {
	v, err := groth16.NewVerifier[sw_bn254.ScalarField, sw_bn254.G1Affine, sw_bn254.G2Affine, sw_bn254.GT](api)
	if err != nil {
		return nil, fmt.Errorf("%w: new recursive verifier: %v", ErrBackendError, err)
	}
	return v, nil
}

// ValueOfProof lifts a native Groth16 proof into its in-circuit assignment.
func ValueOfProof(proof nativegroth16.Proof) (Proof, error) {
	return groth16.ValueOfProof[sw_bn254.G1Affine, sw_bn254.G2Affine](proof)
}

// ValueOfVerifyingKey lifts a native verifying key into its in-circuit,
// witnessed (not fixed) assignment: every circuit verified recursively by
// this module has a verifying key that varies per proof (the user's
// circuit, or a sibling's), never a compile-time constant one.
func ValueOfVerifyingKey(vk nativegroth16.VerifyingKey) (VerifyingKey, error) {
	return groth16.ValueOfVerifyingKey[sw_bn254.G1Affine, sw_bn254.G2Affine, sw_bn254.GT](vk)
}

// ValueOfWitness lifts a native public witness into its in-circuit
// assignment.
func ValueOfWitness(w witness.Witness) (Witness, error) {
	return groth16.ValueOfWitness[sw_bn254.ScalarField](w)
}

// PlaceholderProof sizes an empty in-circuit proof target to match ccs.
func PlaceholderProof(ccs constraint.ConstraintSystem) Proof {
	return groth16.PlaceholderProof[sw_bn254.G1Affine, sw_bn254.G2Affine](ccs)
}

// PlaceholderVerifyingKey sizes an empty in-circuit verifying-key target
// to match ccs.
func PlaceholderVerifyingKey(ccs constraint.ConstraintSystem) VerifyingKey {
	return groth16.PlaceholderVerifyingKey[sw_bn254.G1Affine, sw_bn254.G2Affine, sw_bn254.GT](ccs)
}

// PlaceholderWitness sizes an empty in-circuit public-witness target to
// match ccs.
func PlaceholderWitness(ccs constraint.ConstraintSystem) Witness {
	return groth16.PlaceholderWitness[sw_bn254.ScalarField](ccs)
}

// AssertVerifyingKeysEqual enforces that two witnessed verifying keys are
// identical, field by field: the precomputed pairing E, the G1.K public-input
// basis, the negated G2 generators, and any Pedersen commitment keys. Field
// names follow gnark's own groth16.VerifyingKey layout (see
// circuits/aggregator/vk.go's VerfiyingAndDummyKey.Switch, the pack's only
// other code that reaches into a witnessed VK's fields). This is how sibling
// homogeneity (invariant 3) is checked in-circuit: rather than re-deriving a
// digest of each VK inside the circuit (which would require bridging the
// nonnative, limb-encoded VK representation back into a native field
// element), the node circuit compares the witnessed VKs directly, which is
// strictly stronger and avoids inventing a second hash gadget for opaque
// proof-system metadata.
func AssertVerifyingKeysEqual(api frontend.API, a, b VerifyingKey) error {
	if len(a.G1.K) != len(b.G1.K) {
		return fmt.Errorf("%w: verifying keys have different public-input sizes (%d vs %d)",
			ErrSiblingDigestMismatch, len(a.G1.K), len(b.G1.K))
	}
	if len(a.CommitmentKeys) != len(b.CommitmentKeys) {
		return fmt.Errorf("%w: verifying keys have different commitment-key counts (%d vs %d)",
			ErrSiblingDigestMismatch, len(a.CommitmentKeys), len(b.CommitmentKeys))
	}
	a.E.AssertIsEqual(api, b.E)
	for i := range a.G1.K {
		a.G1.K[i].AssertIsEqual(api, b.G1.K[i])
	}
	a.G2.GammaNeg.AssertIsEqual(api, b.G2.GammaNeg)
	a.G2.DeltaNeg.AssertIsEqual(api, b.G2.DeltaNeg)
	for i := range a.CommitmentKeys {
		a.CommitmentKeys[i].G.AssertIsEqual(api, b.CommitmentKeys[i].G)
		a.CommitmentKeys[i].GSigmaNeg.AssertIsEqual(api, b.CommitmentKeys[i].GSigmaNeg)
	}
	return nil
}

// PackScalar collapses a nonnative field element's limbs into a single
// native circuit variable via Horner's method, so it can be compared
// against a native frontend.Variable (our flattened Digest type). The
// technique mirrors the limb-packing used throughout the pack's recursive
// circuits, just inlined locally rather than imported, since the
// dedicated helper package (vocdoni/gnark-crypto-primitives) is a
// dropped, voting-specific dependency (see DESIGN.md).
func PackScalar(api frontend.API, e *emulated.Element[sw_bn254.ScalarField]) (frontend.Variable, error) {
	field, err := emulated.NewField[sw_bn254.ScalarField](api)
	if err != nil {
		return nil, fmt.Errorf("%w: new emulated field: %v", ErrBackendError, err)
	}
	reduced := field.Reduce(e)
	var params sw_bn254.ScalarField
	bitsPerLimb := params.BitsPerLimb()

	shift := new(big.Int).Lsh(big.NewInt(1), uint(bitsPerLimb))
	var result frontend.Variable = 0
	var mul frontend.Variable = 1
	for _, limb := range reduced.Limbs {
		result = api.Add(result, api.Mul(limb, mul))
		mul = api.Mul(mul, shift)
	}
	return result, nil
}

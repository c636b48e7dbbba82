package backend

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/backend/witness"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	stdgroth16 "github.com/consensys/gnark/std/recursion/groth16"

	gnarkfr "github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// CircuitData is the output of compiling and setting up a circuit: the
// constraint system, proving/verifying keys, and the circuit's own
// verifier_digest, fixed once (spec §9's two-phase build). Immutable after
// construction.
type CircuitData struct {
	CCS            constraint.ConstraintSystem
	ProvingKey     groth16.ProvingKey
	VerifyingKey   groth16.VerifyingKey
	VerifierDigest *big.Int
}

// CompileAndBuild compiles placeholder into an R1CS over ScalarField, runs
// Groth16 setup, and computes the circuit's verifier_digest by hashing its
// verifying key. Must run exactly once per circuit kind (leaf, node), and
// the resulting CircuitData reused for every proof at that level: Groth16
// setup draws its toxic waste from crypto/rand, so two independent calls
// for the same circuit produce two different, equally valid verifying
// keys and therefore two different verifier_digests (see SPEC_FULL.md's
// P7 deviation note). There is no rebuild-and-compare path here, by
// design: a second CompileAndBuild is a second trusted setup, not a
// consistency check on the first.
func CompileAndBuild(placeholder frontend.Circuit) (*CircuitData, error) {
	ccs, err := frontend.Compile(ScalarField(), r1cs.NewBuilder, placeholder)
	if err != nil {
		return nil, fmt.Errorf("%w: compile circuit: %v", ErrBackendError, err)
	}
	pk, vk, err := groth16.Setup(ccs)
	if err != nil {
		return nil, fmt.Errorf("%w: groth16 setup: %v", ErrBackendError, err)
	}
	digest, err := VerifyingKeyDigest(vk)
	if err != nil {
		return nil, fmt.Errorf("%w: hash verifying key: %v", ErrBackendError, err)
	}
	return &CircuitData{CCS: ccs, ProvingKey: pk, VerifyingKey: vk, VerifierDigest: digest}, nil
}

// VerifyingKeyDigest hashes a verifying key's raw serialized form into a
// single field element. It never needs an in-circuit counterpart: sibling
// homogeneity (invariant 3) is instead enforced by asserting the two
// witnessed verifying keys are themselves equal in-circuit (see
// AssertVerifyingKeysEqual), which is strictly stronger than comparing a
// hash of them and sidesteps bridging gnark's nonnative VK representation
// back to a native digest. This digest exists purely for off-circuit
// bookkeeping: caching, logging, and the Root Verifier's optional trusted-
// circuit check (spec §4.6, §9).
func VerifyingKeyDigest(vk groth16.VerifyingKey) (*big.Int, error) {
	buf, err := marshalVerifyingKey(vk)
	if err != nil {
		return nil, err
	}
	chunkSize := 31 // strictly below the 32-byte BN254 Fr modulus
	chunks := make([]*big.Int, 0, len(buf)/chunkSize+1)
	for i := 0; i < len(buf); i += chunkSize {
		end := i + chunkSize
		if end > len(buf) {
			end = len(buf)
		}
		chunks = append(chunks, new(big.Int).SetBytes(buf[i:end]))
	}
	if len(chunks) == 0 {
		chunks = append(chunks, big.NewInt(0))
	}
	return HashOrNoop(chunks...), nil
}

func marshalVerifyingKey(vk groth16.VerifyingKey) ([]byte, error) {
	var buf byteSink
	if _, err := vk.WriteRawTo(&buf); err != nil {
		return nil, fmt.Errorf("write verifying key: %w", err)
	}
	return buf.bytes, nil
}

// byteSink is a minimal io.Writer; gnark's WriteRawTo wants one and we
// only need the resulting bytes, not a file.
type byteSink struct {
	bytes []byte
}

func (w *byteSink) Write(p []byte) (int, error) {
	w.bytes = append(w.bytes, p...)
	return len(p), nil
}

// ProofData bundles a native Groth16 proof and its public witness with the
// CircuitData of the circuit that produced it (spec §3's ProofData).
type ProofData struct {
	Proof         groth16.Proof
	PublicWitness witness.Witness
	Circuit       *CircuitData
}

// Verify checks the proof against its own circuit's verifying key, using
// the same native verifier options every proof in this system was produced
// with (every proof here is eventually recursively verified by a parent
// leaf/node circuit compiled over the same field, per backend.Curve).
func (p *ProofData) Verify() error {
	opts := stdgroth16.GetNativeVerifierOptions(ScalarField(), ScalarField())
	if err := groth16.Verify(p.Proof, p.Circuit.VerifyingKey, p.PublicWitness, opts); err != nil {
		return fmt.Errorf("%w: %v", ErrBackendError, err)
	}
	return nil
}

// PublicInputs extracts the proof's public witness as a slice of *big.Int,
// in declaration order.
func (p *ProofData) PublicInputs() ([]*big.Int, error) {
	vec, ok := p.PublicWitness.Vector().(gnarkfr.Vector)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected public witness vector type", ErrBackendError)
	}
	out := make([]*big.Int, len(vec))
	for i := range vec {
		out[i] = new(big.Int)
		vec[i].BigInt(out[i])
	}
	return out, nil
}

// Arity returns the number of public inputs in the proof's witness.
func (p *ProofData) Arity() (int, error) {
	inputs, err := p.PublicInputs()
	if err != nil {
		return 0, err
	}
	return len(inputs), nil
}

// Prove runs Groth16 proving for assignment against the compiled circuit
// and returns the bundled ProofData. Every proof produced here may later be
// folded into a parent leaf/node circuit's recursive verifier (self-
// recursion over the same field, see recursion.go), so proving uses the
// matching native prover options throughout (grounded in
// circuits/aggregator/dummy_helpers.go's
// groth16.Prove(ccs, pk, witness, stdgroth16.GetNativeProverOptions(outer, field))
// call shape).
func (c *CircuitData) Prove(assignment frontend.Circuit) (*ProofData, error) {
	full, err := frontend.NewWitness(assignment, ScalarField())
	if err != nil {
		return nil, fmt.Errorf("%w: build witness: %v", ErrBackendError, err)
	}
	opts := stdgroth16.GetNativeProverOptions(ScalarField(), ScalarField())
	proof, err := groth16.Prove(c.CCS, c.ProvingKey, full, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: prove: %v", ErrBackendError, err)
	}
	pub, err := full.Public()
	if err != nil {
		return nil, fmt.Errorf("%w: extract public witness: %v", ErrBackendError, err)
	}
	return &ProofData{Proof: proof, PublicWitness: pub, Circuit: c}, nil
}

// Package toyuser provides small, self-contained user circuits (the kind
// of arbitrary, heterogeneous circuit a real user of this system would
// supply) used by the demo binary and by tests to build UserProof values
// without depending on any real external circuit.
package toyuser

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark/frontend"

	"github.com/vocdoni/zktree/backend"
	"github.com/vocdoni/zktree/proof"
)

// Op identifies which toy relation a Circuit checks. Every Op exposes
// exactly three public inputs (A, B, C) so that circuits built from
// different Ops can still sit as siblings in the same tree (spec §4.5
// requires all leaves to share one arity).
type Op int

const (
	// OpAdd checks A + B == C.
	OpAdd Op = iota
	// OpMul checks A * B == C.
	OpMul
	// OpSquareSum checks A*A + B*B == C.
	OpSquareSum
)

func (o Op) String() string {
	switch o {
	case OpAdd:
		return "add"
	case OpMul:
		return "mul"
	case OpSquareSum:
		return "square_sum"
	default:
		return fmt.Sprintf("op(%d)", int(o))
	}
}

// Circuit is the arithmetized toy relation.
type Circuit struct {
	A frontend.Variable `gnark:",public"`
	B frontend.Variable `gnark:",public"`
	C frontend.Variable `gnark:",public"`

	Op Op `gnark:"-"`
}

// Define implements frontend.Circuit.
func (c *Circuit) Define(api frontend.API) error {
	switch c.Op {
	case OpAdd:
		api.AssertIsEqual(c.C, api.Add(c.A, c.B))
	case OpMul:
		api.AssertIsEqual(c.C, api.Mul(c.A, c.B))
	case OpSquareSum:
		aa := api.Mul(c.A, c.A)
		bb := api.Mul(c.B, c.B)
		api.AssertIsEqual(c.C, api.Add(aa, bb))
	default:
		return fmt.Errorf("toyuser: unknown op %d", c.Op)
	}
	return nil
}

func evaluate(op Op, a, b int64) (int64, error) {
	switch op {
	case OpAdd:
		return a + b, nil
	case OpMul:
		return a * b, nil
	case OpSquareSum:
		return a*a + b*b, nil
	default:
		return 0, fmt.Errorf("toyuser: unknown op %d", op)
	}
}

// circuitHash identifies an Op-and-arity combination; stands in for
// whatever identity scheme a real user's circuit registry would use.
func circuitHash(op Op) *big.Int {
	return backend.HashOrNoop(big.NewInt(int64(op)), big.NewInt(3))
}

// Build compiles (or reuses circuit if non-nil), proves, and wraps a toy
// circuit instance into a proof.UserProof. Passing a shared CircuitData
// for circuits with the same op lets callers avoid repeating Groth16
// setup for every user.
func Build(circuit *backend.CircuitData, op Op, a, b int64) (*proof.UserProof, *backend.CircuitData, error) {
	c, err := evaluate(op, a, b)
	if err != nil {
		return nil, nil, err
	}

	if circuit == nil {
		placeholder := &Circuit{Op: op}
		circuit, err = backend.CompileAndBuild(placeholder)
		if err != nil {
			return nil, nil, fmt.Errorf("compile toy user circuit: %w", err)
		}
	}

	assignment := &Circuit{A: a, B: b, C: c, Op: op}
	pd, err := circuit.Prove(assignment)
	if err != nil {
		return nil, nil, fmt.Errorf("prove toy user circuit: %w", err)
	}

	inputs := [][]*big.Int{
		{big.NewInt(a)},
		{big.NewInt(b)},
		{big.NewInt(c)},
	}
	return proof.NewUserProof(inputs, circuitHash(op), pd), circuit, nil
}

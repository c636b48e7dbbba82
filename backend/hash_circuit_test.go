package backend_test

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/test"

	"github.com/vocdoni/zktree/backend"
)

// hashOrNoopCircuit exercises HashOrNoopGadget against the same inputs
// HashOrNoop is given natively, asserting the two agree (the property
// every leaf/node circuit's public-input binding depends on).
type hashOrNoopCircuit struct {
	A, B, Expected frontend.Variable
}

func (c *hashOrNoopCircuit) Define(api frontend.API) error {
	got, err := backend.HashOrNoopGadget(api, c.A, c.B)
	if err != nil {
		return err
	}
	api.AssertIsEqual(c.Expected, got)
	return nil
}

func TestHashOrNoopGadgetMatchesNative(t *testing.T) {
	a, b := big.NewInt(3), big.NewInt(5)
	expected := backend.HashOrNoop(a, b)

	assignment := &hashOrNoopCircuit{A: a, B: b, Expected: expected}
	assert := test.NewAssert(t)
	assert.SolvingSucceeded(&hashOrNoopCircuit{}, assignment, test.WithCurves(ecc.BN254))
}

func TestHashOrNoopGadgetRejectsWrongDigest(t *testing.T) {
	a, b := big.NewInt(3), big.NewInt(5)
	wrong := big.NewInt(999)

	assignment := &hashOrNoopCircuit{A: a, B: b, Expected: wrong}
	assert := test.NewAssert(t)
	assert.SolvingFailed(&hashOrNoopCircuit{}, assignment, test.WithCurves(ecc.BN254))
}

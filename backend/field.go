// Package backend is the Proof Backend Adapter (spec §4.1): it exposes
// opaque proof/circuit types and the handful of operations (compile, setup,
// prove, verify, hash, recursively-verify) the rest of the module is built
// against, so that circuits/leaf, circuits/node and tree never reach past
// it into gnark directly.
package backend

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
)

// Curve is the single curve every circuit in this system is compiled over.
// Leaf and node circuits verify BN254 Groth16 proofs recursively via
// emulation (see recursion.go) rather than stepping down a pairing-friendly
// chain, so one curve suffices end to end.
const Curve = ecc.BN254

// ScalarField returns the field every circuit in this system is compiled
// over.
func ScalarField() *big.Int {
	return Curve.ScalarField()
}

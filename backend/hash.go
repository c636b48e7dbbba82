package backend

import (
	"math/big"

	gnarkfr "github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/poseidon2"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/hash"
	stdposeidon2 "github.com/consensys/gnark/std/permutation/poseidon2"

	"github.com/vocdoni/zktree/config"
)

// HashOrNoop is the algebraic hash H used throughout the tree (spec §4.1):
// the identity when a single field element is given (a digest already fits
// in one element, unlike plonky2's four-limb HashOut), a Poseidon2 sponge
// otherwise. Grounded in MuriData-muri-zkproof's native Poseidon2 use.
func HashOrNoop(inputs ...*big.Int) *big.Int {
	if len(inputs) == 1 {
		return new(big.Int).Set(inputs[0])
	}
	h := poseidon2.NewMerkleDamgardHasher()
	for _, in := range inputs {
		var e gnarkfr.Element
		e.SetBigInt(in)
		b := e.Bytes()
		h.Write(b[:])
	}
	sum := h.Sum(nil)
	return new(big.Int).SetBytes(sum)
}

// HashOrNoopGadget is the in-circuit counterpart of HashOrNoop. It must
// stay bit-for-bit consistent with it for every input length, since every
// circuit in this module derives its public input_hash/circuit_hash this
// way.
func HashOrNoopGadget(api frontend.API, inputs ...frontend.Variable) (frontend.Variable, error) {
	if len(inputs) == 1 {
		return inputs[0], nil
	}
	perm, err := stdposeidon2.NewPoseidon2FromParameters(
		api, config.Poseidon2Width, config.Poseidon2FullRounds, config.Poseidon2PartialRounds,
	)
	if err != nil {
		return nil, err
	}
	h := hash.NewMerkleDamgardHasher(api, perm, 0)
	h.Write(inputs...)
	return h.Sum(), nil
}

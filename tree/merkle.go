package tree

import (
	"fmt"
	"math/big"

	"github.com/vocdoni/zktree/backend"
	"github.com/vocdoni/zktree/config"
	"github.com/vocdoni/zktree/proof"
)

// MerkleCap computes the root verifier's independent input commitment
// (spec §4.6): a dense binary Merkle tree over flatten(user.inputs) per
// leaf, hash_or_noop at each internal node, folded down to
// config.MerkleCapHeight's cap size. Grounded in MuriData-muri-zkproof's
// pkg/merkle.GenerateMerkleTree/HashNodes pattern; no padding logic is
// needed here since the tree driver already enforces a power-of-two batch
// size before any proof is built.
//
// MerkleCap returns a single digest, so the only cap size this module's
// wire contract (§6, one input_hash field) can ever support is 1 — this
// panics rather than silently mis-shaping the commitment if
// config.MerkleCapHeight is ever changed away from 0.
func MerkleCap(userProofs []*proof.UserProof) *big.Int {
	if config.MerkleCapHeight != 0 {
		panic(fmt.Sprintf("tree: MerkleCap only supports cap_height = 0, got %d", config.MerkleCapHeight))
	}
	capSize := 1 << config.MerkleCapHeight

	level := make([]*big.Int, len(userProofs))
	for i, u := range userProofs {
		level[i] = backend.HashOrNoop(u.FlatInputs()...)
	}
	for len(level) > capSize {
		next := make([]*big.Int, len(level)/2)
		for i := range next {
			next[i] = backend.HashOrNoop(level[2*i], level[2*i+1])
		}
		level = next
	}
	return level[0]
}

package node_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vocdoni/zktree/backend"
	"github.com/vocdoni/zktree/circuits/leaf"
	"github.com/vocdoni/zktree/circuits/node"
	"github.com/vocdoni/zktree/internal/toyuser"
	"github.com/vocdoni/zktree/proof"
)

func buildLeafPair(t *testing.T) (*proof.LeafProof, *proof.LeafProof, *backend.CircuitData) {
	t.Helper()

	userA, userCircuit, err := toyuser.Build(nil, toyuser.OpAdd, 1, 2)
	require.NoError(t, err)
	userB, _, err := toyuser.Build(userCircuit, toyuser.OpAdd, 3, 4)
	require.NoError(t, err)

	leafCircuit, err := backend.CompileAndBuild(leaf.NewPlaceholder(userA))
	require.NoError(t, err)

	lpA, err := leaf.Prove(leafCircuit, userA)
	require.NoError(t, err)
	lpB, err := leaf.Prove(leafCircuit, userB)
	require.NoError(t, err)

	return lpA, lpB, leafCircuit
}

func TestNodeProveAndVerify(t *testing.T) {
	left, right, _ := buildLeafPair(t)

	placeholder := node.NewPlaceholder(left, right)
	nodeCircuit, err := backend.CompileAndBuild(placeholder)
	require.NoError(t, err)

	np, err := node.Prove(nodeCircuit, left, right)
	require.NoError(t, err)
	require.NoError(t, np.ProofData().Verify())

	wantInputHash := backend.HashOrNoop(left.InputHash(), right.InputHash())
	require.Equal(t, 0, wantInputHash.Cmp(np.InputHash()))

	wantCircuitHash := backend.HashOrNoop(left.CircuitHash(), nodeCircuit.VerifierDigest, right.CircuitHash())
	require.Equal(t, 0, wantCircuitHash.Cmp(np.CircuitHash()))
}

// TestNodeProofPublicInputsMatchWireContract exercises spec §8's P1 at the
// node level: a folded proof's own public witness is exactly
// input_hash ‖ circuit_hash, in that order, as field elements.
func TestNodeProofPublicInputsMatchWireContract(t *testing.T) {
	left, right, _ := buildLeafPair(t)

	placeholder := node.NewPlaceholder(left, right)
	nodeCircuit, err := backend.CompileAndBuild(placeholder)
	require.NoError(t, err)

	np, err := node.Prove(nodeCircuit, left, right)
	require.NoError(t, err)

	pub, err := np.ProofData().PublicInputs()
	require.NoError(t, err)
	require.Len(t, pub, 2)
	require.Equal(t, 0, pub[0].Cmp(np.InputHash()))
	require.Equal(t, 0, pub[1].Cmp(np.CircuitHash()))
}

func TestNodeAssignmentRejectsHeterogeneousSiblings(t *testing.T) {
	left, _, _ := buildLeafPair(t)

	otherUser, otherCircuit, err := toyuser.Build(nil, toyuser.OpMul, 6, 7)
	require.NoError(t, err)
	otherLeafCircuit, err := backend.CompileAndBuild(leaf.NewPlaceholder(otherUser))
	require.NoError(t, err)
	_ = otherCircuit
	otherLeaf, err := leaf.Prove(otherLeafCircuit, otherUser)
	require.NoError(t, err)

	_, err = node.NewAssignment(left, otherLeaf, big.NewInt(1))
	require.ErrorIs(t, err, backend.ErrSiblingDigestMismatch)
}

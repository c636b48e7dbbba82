package proof_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vocdoni/zktree/backend"
	"github.com/vocdoni/zktree/proof"
)

func TestUserProofInputHash(t *testing.T) {
	inputs := [][]*big.Int{{big.NewInt(1), big.NewInt(2)}, {big.NewInt(3)}}
	u := proof.NewUserProof(inputs, big.NewInt(99), nil)

	require.Equal(t, 3, u.Arity())
	require.Equal(t, []*big.Int{big.NewInt(1), big.NewInt(2), big.NewInt(3)}, u.FlatInputs())

	want := backend.HashOrNoop(big.NewInt(1), big.NewInt(2), big.NewInt(3))
	require.Equal(t, 0, want.Cmp(u.InputHash()))
}

func TestLeafProofImplementsProvable(t *testing.T) {
	var _ proof.Provable = (*proof.LeafProof)(nil)
	var _ proof.Provable = (*proof.NodeProof)(nil)
	var _ proof.Provable = (*proof.UserProof)(nil)
}

func TestLeafProofFields(t *testing.T) {
	l := proof.NewLeafProof(big.NewInt(1), big.NewInt(2), big.NewInt(3), nil)
	require.Equal(t, 0, big.NewInt(1).Cmp(l.InputHash()))
	require.Equal(t, 0, big.NewInt(2).Cmp(l.CircuitHash()))
	require.Equal(t, 0, big.NewInt(3).Cmp(l.CircuitVerifierDigest()))
	require.Nil(t, l.UserPublicInputs())
}

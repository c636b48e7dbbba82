package backend_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vocdoni/zktree/backend"
)

func TestHashOrNoopIdentity(t *testing.T) {
	v := big.NewInt(42)
	h := backend.HashOrNoop(v)
	require.Equal(t, 0, v.Cmp(h), "a single input must pass through unchanged")
}

func TestHashOrNoopIsDeterministic(t *testing.T) {
	a, b := big.NewInt(7), big.NewInt(11)
	h1 := backend.HashOrNoop(a, b)
	h2 := backend.HashOrNoop(a, b)
	require.Equal(t, 0, h1.Cmp(h2))
}

func TestHashOrNoopOrderMatters(t *testing.T) {
	a, b := big.NewInt(7), big.NewInt(11)
	h1 := backend.HashOrNoop(a, b)
	h2 := backend.HashOrNoop(b, a)
	require.NotEqual(t, 0, h1.Cmp(h2), "a||b must differ from b||a")
}

func TestHashOrNoopDiffersFromIdentity(t *testing.T) {
	a, b := big.NewInt(1), big.NewInt(2)
	h := backend.HashOrNoop(a, b)
	require.NotEqual(t, 0, h.Cmp(a))
	require.NotEqual(t, 0, h.Cmp(b))
}

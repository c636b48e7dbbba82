// Package config centralizes the compile-time constants the zktree
// backend is built against. The teacher's config package holds remote
// circuit-artifact URLs and hashes (this system persists nothing, so that
// shape doesn't apply); what survives is the pattern of a single file of
// named constants consumed by the rest of the module.
package config

// Poseidon2 parameterization of the in-circuit hash gadget
// (backend.HashOrNoopGadget). Width 2, 6 full rounds, 50 partial rounds,
// matching the parameterization used across MuriData-muri-zkproof's
// circuits. The native backend.HashOrNoop does not read these constants; it
// uses gnark-crypto's default BN254 Poseidon2 hasher.
const (
	Poseidon2Width         = 2
	Poseidon2FullRounds    = 6
	Poseidon2PartialRounds = 50
)

// MinBatchSize is the smallest user-proof batch a ZkTree will build: one
// leaf pair is the smallest non-trivial tree (spec: batch size must be a
// power of two greater than one).
const MinBatchSize = 2

// MerkleCapHeight is the cap_height used for the root input commitment
// (spec §4.6): 0 means a single root digest, no partial cap rows.
const MerkleCapHeight = 0

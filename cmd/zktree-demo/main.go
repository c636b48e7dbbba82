// Command zktree-demo builds a small batch of toy user proofs, aggregates
// them into a ZkTree, and verifies the result, mirroring the shape of the
// teacher's cmd/e2etest binary: a linear script with timed phases logged
// through the repo's own log package rather than printed directly.
package main

import (
	"context"
	"flag"
	"time"

	"github.com/vocdoni/zktree/backend"
	"github.com/vocdoni/zktree/internal/toyuser"
	"github.com/vocdoni/zktree/log"
	"github.com/vocdoni/zktree/proof"
	"github.com/vocdoni/zktree/tree"
	"github.com/vocdoni/zktree/util"
)

func main() {
	batchSize := flag.Int("n", 8, "number of user proofs (must be a power of two)")
	logLevel := flag.String("loglevel", "info", "log level")
	flag.Parse()

	log.Init(*logLevel, "stdout", nil)

	start := time.Now()
	userProofs := buildUserProofs(*batchSize)
	log.Infof("built %d user proofs in %s", len(userProofs), time.Since(start))

	start = time.Now()
	zt, err := tree.New(context.Background(), userProofs)
	if err != nil {
		log.Errorf("build tree: %v", err)
		return
	}
	log.Infof("built zktree (build_id=%s) in %s", zt.BuildID(), time.Since(start))
	log.Infof("root circuit_verifier_digest=%s input_hash=%s",
		util.PrettyHex(zt.Root().CircuitVerifierDigest()), util.PrettyHex(zt.Root().InputHash()))

	start = time.Now()
	if err := zt.Verify(); err != nil {
		log.Errorf("verify root: %v", err)
		return
	}
	log.Infof("verified root in %s", time.Since(start))
}

// buildUserProofs builds n toy "A + B = C" user proofs with randomized
// operands, compiling the toy circuit's Groth16 setup once and reusing it
// for every user.
func buildUserProofs(n int) []*proof.UserProof {
	userProofs := make([]*proof.UserProof, n)
	var circuit *backend.CircuitData
	for i := 0; i < n; i++ {
		a, b := util.RandomInt(0, 1000), util.RandomInt(0, 1000)
		up, built, err := toyuser.Build(circuit, toyuser.OpAdd, int64(a), int64(b))
		if err != nil {
			log.Errorf("build user proof %d: %v", i, err)
			continue
		}
		circuit = built
		userProofs[i] = up
	}
	return userProofs
}

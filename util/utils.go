package util

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"reflect"

	"github.com/consensys/gnark/frontend"
)

// RandomInt generates a random integer in [min, max), used by the demo
// binary to vary toy user operands between runs.
func RandomInt(min, max int) int {
	num, err := rand.Int(rand.Reader, big.NewInt(int64(max-min)))
	if err != nil {
		panic(err)
	}
	return int(num.Int64()) + min
}

// PrettyHex renders a digest or circuit variable for logs, the way the
// teacher's own PrettyHex truncates census-tree hashes: a *big.Int or
// []byte becomes the hex of at most its first four bytes, an int is printed
// in full as decimal, and any other type is printed in full with its type.
func PrettyHex(v frontend.Variable) string {
	switch v := v.(type) {
	case *big.Int:
		b := v.Bytes()
		if len(b) > 4 {
			b = b[:4]
		}
		return fmt.Sprintf("%x", b)
	case int:
		return fmt.Sprintf("%d", v)
	case []byte:
		n := len(v)
		if n > 4 {
			n = 4
		}
		return fmt.Sprintf("%x", v[:n])
	default:
		return fmt.Sprintf("(%v)=%+v", reflect.TypeOf(v), v)
	}
}

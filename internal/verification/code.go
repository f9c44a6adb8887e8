// Package verification generates and stores pending OTP login challenges.
package verification

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const codeSpace = 1_000_000

// GenerateCode returns a 6-digit numeric OTP string drawn uniformly from
// [000000, 999999], leading zeros preserved. Uses crypto/rand; a failure here
// means the process has no usable entropy source and the call must not be
// silently retried with weaker randomness.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeSpace))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

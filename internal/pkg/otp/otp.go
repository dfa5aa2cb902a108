package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Length is the number of digits in a generated code.
const Length = 6

var ceiling = big.NewInt(1000000)

// Generate returns a zero-padded numeric one-time code drawn from
// crypto/rand. Codes are not tracked for uniqueness; the expiry window and
// the at-most-one-live-code-per-email invariant make collisions harmless.
func Generate() (string, error) {
	n, err := rand.Int(rand.Reader, ceiling)
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

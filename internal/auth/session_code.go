package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const sessionCodeMax = 900000

// NewSessionCode returns a random 6-digit numeric credential. The first digit
// is never zero so the code survives clients that strip leading zeroes.
func NewSessionCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(sessionCodeMax))
	if err != nil {
		return "", fmt.Errorf("generate session code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

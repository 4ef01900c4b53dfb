package uiutil

import (
	"crypto/rand"
	"math/big"
)

// DefaultRandomLength is used when RandomString is asked for a
// non-positive length.
const DefaultRandomLength = 16

const alphanumeric = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// RandomString returns an alphanumeric string of length n.
func RandomString(n int) string {
	if n <= 0 {
		n = DefaultRandomLength
	}
	limit := big.NewInt(int64(len(alphanumeric)))
	out := make([]byte, n)
	for i := range out {
		idx, err := rand.Int(rand.Reader, limit)
		if err != nil {
			// crypto/rand does not fail on supported platforms.
			panic(err)
		}
		out[i] = alphanumeric[idx.Int64()]
	}
	return string(out)
}

package common

import (
	"crypto/rand"
	"math/big"
)

// ShortIDAlphabet is the 62-symbol alphabet short link identifiers are
// drawn from. Changing it would invalidate previously issued links.
const ShortIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// ShortIDLength is the length of generated link identifiers.
const ShortIDLength = 8

// NewShortID generates a random identifier of the given length over
// ShortIDAlphabet. Identifiers are independently drawn per call; uniqueness
// is probabilistic (62^8 possible values), collisions are not reconciled.
func NewShortID(length int) string {
	max := big.NewInt(int64(len(ShortIDAlphabet)))
	b := make([]byte, length)
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand failure means the process has no usable
			// entropy source; nothing sensible to return.
			panic(err)
		}
		b[i] = ShortIDAlphabet[n.Int64()]
	}
	return string(b)
}

// GenerateRandByteArray returns size cryptographically random bytes.
func GenerateRandByteArray(size int) []byte {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return b
}

package common

import (
	"crypto/rand"
	"encoding/hex"
)

// MakeRandHexString generates a random hexadecimal string from size random
// bytes. The resulting string length is twice the size, since each byte
// expands to two hex characters.
func MakeRandHexString(size int) (string, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// Token returns a short random token (12 hex chars) used for document ids
// and access codes. Document ids concatenate three of these, keeping the
// collision probability negligible without a central id authority.
func Token() (string, error) {
	return MakeRandHexString(6)
}

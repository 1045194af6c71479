package auth

import (
	"crypto/rand"
	"crypto/subtle"

	"golang.org/x/crypto/argon2"
)

const saltSize = 16

func deriveHash(password, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, 32)
}

// HashPassword derives an argon2id hash under a fresh random salt.
func HashPassword(password string) (salt, hash []byte, err error) {
	salt = make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, nil, err
	}
	return salt, deriveHash([]byte(password), salt), nil
}

// VerifyPassword compares the candidate against the stored hash in
// constant time.
func VerifyPassword(password string, salt, hash []byte) bool {
	candidate := deriveHash([]byte(password), salt)
	return subtle.ConstantTimeCompare(candidate, hash) == 1
}

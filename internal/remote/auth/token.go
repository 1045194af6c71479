package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/eshmelev/dropspace/internal/common"
)

// Session tokens are HS256 JWTs carrying the identity id. The signature
// proves the token was minted here; revocation is enforced by the sessions
// table, not by the token itself.
type sessionClaims struct {
	jwt.RegisteredClaims
	IdentityID string `json:"identity_id"`
}

// GenerateToken mints a signed session token for the identity, expiring
// after validity.
func GenerateToken(identityID string, secret []byte, validity time.Duration) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
		},
		IdentityID: identityID,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// IdentityIDFromToken verifies the signature and expiry and returns the
// identity id the token was minted for. Any parse or validation failure
// surfaces as common.ErrInvalidToken.
func IdentityIDFromToken(tokenString string, secret []byte) (string, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return "", common.ErrInvalidToken
	}
	return claims.IdentityID, nil
}

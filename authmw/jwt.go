// Package authmw verifies bearer tokens and attaches an author
// identity to incoming requests, grounded on the teacher's
// auth-service/backend/internal/authservice/jwt.go. It is purely a
// host concern: the engine never sees a token, only the AuthorID a
// host chooses to tag a Source with.
package authmw

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the author identity the reference host attaches to
// every edit it forwards to a document.Controller.
type Claims struct {
	AuthorID string `json:"sub"`
	Name     string `json:"name"`
	jwt.RegisteredClaims
}

// Signer issues and verifies HS256 access tokens against a single
// shared secret, mirroring the teacher's package-level
// SignAccessToken/ParseToken pair.
type Signer struct {
	secret []byte
}

// NewSigner returns a Signer over secret.
func NewSigner(secret string) *Signer {
	return &Signer{secret: []byte(secret)}
}

// Sign issues a token for authorID/name valid for ttl.
func (s *Signer) Sign(authorID, name string, ttl time.Duration) (string, time.Time, error) {
	expiresAt := time.Now().Add(ttl)
	claims := &Claims{
		AuthorID: authorID,
		Name:     name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// Parse verifies tokenString and returns its Claims.
func (s *Signer) Parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// Package token mints and verifies the signed bearer tokens that
// bridge an auth-server session to a gateway connection. Tokens are
// stateless: the issuer keeps no record, and the verifier needs only
// the shared secret.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/JoelCodes/w6d4-lecture-auth/internal/users"
)

// ErrInvalidToken covers every verification failure: malformed input,
// bad signature, wrong algorithm, expired claims. Callers get no finer
// distinction than this.
var ErrInvalidToken = errors.New("token: invalid token")

// Claims are the identity assertions embedded in a token.
type Claims struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Issuer signs identity claims with the shared secret.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

// NewIssuer creates an issuer. ttl = 0 issues non-expiring tokens;
// any positive ttl sets an exp claim the verifier enforces.
func NewIssuer(secret []byte, ttl time.Duration) *Issuer {
	return &Issuer{secret: secret, ttl: ttl}
}

// Issue mints a token asserting the user's identity.
func (i *Issuer) Issue(user *users.User) (string, error) {
	now := time.Now()

	claims := Claims{
		ID:    user.ID,
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if i.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(i.ttl))
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(i.secret)
}

// Verifier validates tokens against the shared secret. It is a pure
// function of its inputs and safe for concurrent use.
type Verifier struct {
	secret []byte
}

func NewVerifier(secret []byte) *Verifier {
	return &Verifier{secret: secret}
}

// Verify parses and validates a token string and returns its claims.
// Any failure, of any kind, comes back as ErrInvalidToken.
func (v *Verifier) Verify(tokenString string) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)

	tok, err := parser.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid || claims.ID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

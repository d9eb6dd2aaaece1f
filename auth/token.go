package auth

import (
	"fmt"
	"strings"
	"time"

	"group-chat/errors"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the identity carried by a bearer token. The subject is the user ID.
type Claims struct {
	Name string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// TokenVerifier validates HS256 tokens signed with the shared secret.
// Tokens are issued by the identity provider; Issue exists for tooling and tests.
type TokenVerifier struct {
	secret []byte
	issuer string
}

func NewTokenVerifier(secret, issuer string) *TokenVerifier {
	return &TokenVerifier{secret: []byte(secret), issuer: issuer}
}

// Issue signs a token for userID valid for ttl.
func (v *TokenVerifier) Issue(userID, name string, ttl time.Duration, now time.Time) (string, error) {
	claims := &Claims{
		Name: name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    v.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}

// Verify parses the token, checks signature, expiry and issuer, and returns
// its claims. Any failure is reported as ErrUnauthenticated.
func (v *TokenVerifier) Verify(token string) (*Claims, error) {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		options = append(options, jwt.WithIssuer(v.issuer))
	}
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(*jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, options...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrUnauthenticated, err)
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.ErrUnauthenticated
	}
	if claims.Subject == "" || len(claims.Subject) > 128 || strings.Contains(claims.Subject, ":") {
		return nil, fmt.Errorf("%w: invalid subject", errors.ErrUnauthenticated)
	}
	return claims, nil
}

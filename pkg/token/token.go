// Package token issues and validates the signed bearer tokens that carry a
// user's identity between login and every subsequent request.
package token

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// ErrInvalid is returned for any token that cannot be trusted: bad signature,
// wrong signing method, malformed structure, expired, or an unparsable
// subject. Callers get no finer detail on purpose.
var ErrInvalid = errors.New("invalid token")

// DefaultTTL bounds token lifetime when configuration does not override it.
// Tokens are never issued without an expiry.
const DefaultTTL = 24 * time.Hour

// Issuer signs and verifies HS256 JWTs whose subject is the user id.
type Issuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer builds an Issuer. The secret must be non-empty; enforcing that at
// startup is the caller's job (config refuses to load without one).
func NewIssuer(secret, issuer string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Issuer{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue produces a signed token for the given user id.
func (i *Issuer) Issue(userID int64) (string, error) {
	now := i.now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		Issuer:    i.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// Validate verifies the signature and expiry and returns the user id from the
// subject claim.
func (i *Issuer) Validate(raw string) (int64, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)

	var claims jwt.RegisteredClaims
	token, err := parser.ParseWithClaims(raw, &claims, func(*jwt.Token) (interface{}, error) {
		return i.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, ErrInvalid
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return 0, ErrInvalid
	}
	return userID, nil
}

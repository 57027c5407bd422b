// Package auth issues and verifies the signed admin tokens that protect the
// log query endpoints.
//
// Tokens are stateless HS256 JWTs. There is no server-side revocation list:
// logging out only asks the client to discard its token, so a leaked token
// stays valid until it expires (24 hours by default).
package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	apperrors "resumeapi/internal/errors"
)

const (
	// Issuer is stamped on every admin token and required on verification.
	Issuer = "resume-api"
	// RoleAdmin is the only role the service issues.
	RoleAdmin = "admin"
	// DefaultTokenTTL is the validity window of an admin token.
	DefaultTokenTTL = 24 * time.Hour
)

// Claims represents the claims in an admin JWT.
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Credentials are the configured admin credentials.
//
// Password is compared as plaintext, exactly as configured. When
// PasswordHash holds a bcrypt hash it is used instead and Password is ignored.
type Credentials struct {
	Username     string
	Password     string
	PasswordHash string
}

// Guard checks admin credentials and tokens.
type Guard struct {
	secret []byte
	creds  Credentials
	ttl    time.Duration
	now    func() time.Time
}

// NewGuard creates a Guard signing with secret. A non-positive ttl selects DefaultTokenTTL.
func NewGuard(secret string, creds Credentials, ttl time.Duration) *Guard {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Guard{
		secret: []byte(secret),
		creds:  creds,
		ttl:    ttl,
		now:    time.Now,
	}
}

// WithClock returns a copy of g that reads time from now.
func (g *Guard) WithClock(now func() time.Time) *Guard {
	clone := *g
	clone.now = now
	return &clone
}

// IssueToken checks the submitted credentials and, on a match, returns a
// signed admin token. A mismatch is reported through ok=false, not an error;
// err is reserved for signing failures.
func (g *Guard) IssueToken(username, password string) (token string, ok bool, err error) {
	if !g.credentialsMatch(username, password) {
		return "", false, nil
	}

	now := g.now()
	claims := &Claims{
		Username: g.creds.Username,
		Role:     RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(g.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    Issuer,
			Subject:   g.creds.Username,
		},
	}

	token, err = g.Sign(claims)
	if err != nil {
		return "", false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return token, true, nil
}

// Sign signs arbitrary claims with the guard's secret.
func (g *Guard) Sign(claims *Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.secret)
}

// Authenticate verifies token and returns its claims. Errors are
// ErrAuthMissing, ErrAuthExpired or ErrAuthInvalid.
func (g *Guard) Authenticate(token string) (*Claims, error) {
	if token == "" {
		return nil, apperrors.ErrAuthMissing
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return g.secret, nil
	},
		jwt.WithIssuer(Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(g.now),
	)

	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, apperrors.Wrap(apperrors.ErrAuthExpired, err)
	case err != nil:
		return nil, apperrors.Wrap(apperrors.ErrAuthInvalid, err)
	case !parsed.Valid:
		return nil, apperrors.ErrAuthInvalid
	case claims.Role != RoleAdmin:
		return nil, apperrors.Wrap(apperrors.ErrAuthInvalid, fmt.Errorf("unexpected role %q", claims.Role))
	}

	return claims, nil
}

func (g *Guard) credentialsMatch(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(g.creds.Username)) == 1

	var passOK bool
	if g.creds.PasswordHash != "" {
		passOK = bcrypt.CompareHashAndPassword([]byte(g.creds.PasswordHash), []byte(password)) == nil
	} else {
		passOK = subtle.ConstantTimeCompare([]byte(password), []byte(g.creds.Password)) == 1
	}

	return userOK && passOK && g.creds.Username != ""
}

// Package auth issues and verifies the signed bearer tokens that guard
// every request. Tokens are stateless: identity, role and username are
// reconstructed from the signature alone, and expiry is the only
// termination mechanism.
package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rosterhq-dev/employee-manager/backend/internal/domain"
)

var (
	// ErrTokenExpired means the token was well-formed and correctly signed
	// but its expiry has passed. Callers surface a distinct message for it.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid covers malformed payloads and bad signatures.
	ErrTokenInvalid = errors.New("token invalid")
)

type Claims struct {
	Role     string `json:"role"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// AccountID parses the subject claim back into the account identity.
func (c *Claims) AccountID() (int64, error) {
	return strconv.ParseInt(c.Subject, 10, 64)
}

type TokenManager struct {
	secret     []byte
	expiration time.Duration
}

func NewTokenManager(secret string, expiration time.Duration) *TokenManager {
	return &TokenManager{
		secret:     []byte(secret),
		expiration: expiration,
	}
}

func (tm *TokenManager) Issue(accountID int64, role domain.Role, username string) (string, error) {
	now := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Role:     string(role),
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Subject:   strconv.FormatInt(accountID, 10),
		},
	})

	return token.SignedString(tm.secret)
}

// Verify checks the signature and expiry against the wall clock and returns
// the embedded claims. Expired and invalid tokens fail with distinguishable
// errors.
func (tm *TokenManager) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return tm.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	return claims, nil
}

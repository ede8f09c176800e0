package auth

import (
	"crypto/subtle"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/supportflow/opsdash/internal/config"
)

// tokenIssuedAt is pinned so the signed token is one fixed opaque
// string per signing secret, which is what the dashboard client stores.
var tokenIssuedAt = time.Unix(1690000000, 0)

// StaticCredentials implements the placeholder dashboard login: a
// single hard-coded username/password pair that always yields the same
// signed token. This is not a session system.
type StaticCredentials struct {
	username string
	password string
	token    string
}

// NewStaticCredentials signs the login token once and keeps it for the
// lifetime of the process.
func NewStaticCredentials(cfg config.AuthConfig) (*StaticCredentials, error) {
	claims := jwt.RegisteredClaims{
		Subject:  cfg.AdminUsername,
		IssuedAt: jwt.NewNumericDate(tokenIssuedAt),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.JWTSecret))
	if err != nil {
		return nil, err
	}
	return &StaticCredentials{
		username: cfg.AdminUsername,
		password: cfg.AdminPassword,
		token:    token,
	}, nil
}

// Authenticate checks the submitted pair and returns the fixed token on
// a match.
func (s *StaticCredentials) Authenticate(username, password string) (string, bool) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) == 1
	if !userOK || !passOK {
		return "", false
	}
	return s.token, true
}

// Token returns the fixed login token.
func (s *StaticCredentials) Token() string {
	return s.token
}

package auth

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// LocalAuthenticator validates HS256 tokens signed with a shared secret. It is meant for
// single-node installs and the CLI.
type LocalAuthenticator struct {
	secret []byte
}

func NewLocalAuthenticator(secret string) (*LocalAuthenticator, error) {
	if secret == "" {
		return nil, errors.New("local authentication requires a secret")
	}
	return &LocalAuthenticator{secret: []byte(secret)}, nil
}

// IssueToken signs a token for username valid for ttl.
func (l *LocalAuthenticator) IssueToken(username, email string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":                username,
		"preferred_username": username,
		"email":              email,
		"iat":                now.Unix(),
		"exp":                now.Add(ttl).Unix(),
	})
	return token.SignedString(l.secret)
}

func (l *LocalAuthenticator) Authenticate(token string) (User, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}), jwt.WithIssuedAt(), jwt.WithExpirationRequired())
	t, err := parser.Parse(token, func(*jwt.Token) (any, error) { return l.secret, nil })
	if err != nil {
		return User{}, fmt.Errorf("failed to authenticate token: %w", err)
	}
	return userFromClaims(t)
}

func (l *LocalAuthenticator) Authenticator(next http.Handler) http.Handler {
	return tokenMiddleware(l.Authenticate, next)
}

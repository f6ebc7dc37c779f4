package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	keyfunc "github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// SSOAuthenticator validates RS256 tokens issued by an external identity provider.
type SSOAuthenticator struct {
	keyFn func(t *jwt.Token) (any, error)
}

func NewSSOAuthenticatorWithKeyFn(keyFn func(t *jwt.Token) (any, error)) (*SSOAuthenticator, error) {
	return &SSOAuthenticator{keyFn: keyFn}, nil
}

func NewSSOAuthenticator(ctx context.Context, jwkCertUrl string) (*SSOAuthenticator, error) {
	if jwkCertUrl == "" {
		return nil, errors.New("sso authentication requires a JWK url")
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	k, err := keyfunc.NewDefaultCtx(ctx, []string{jwkCertUrl})
	if err != nil {
		return nil, fmt.Errorf("failed to get sso public keys: %w", err)
	}

	return &SSOAuthenticator{keyFn: k.Keyfunc}, nil
}

func (s *SSOAuthenticator) Authenticate(token string) (User, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Name}), jwt.WithIssuedAt(), jwt.WithExpirationRequired())
	t, err := parser.Parse(token, s.keyFn)
	if err != nil {
		zap.S().Named("auth").Debugw("failed to parse or the token is invalid", "error", err)
		return User{}, fmt.Errorf("failed to authenticate token: %w", err)
	}

	if !t.Valid {
		return User{}, fmt.Errorf("failed to parse or validate token")
	}

	return userFromClaims(t)
}

func (s *SSOAuthenticator) Authenticator(next http.Handler) http.Handler {
	return tokenMiddleware(s.Authenticate, next)
}

// userFromClaims reads preferred_username, falling back to sub, and email.
func userFromClaims(t *jwt.Token) (User, error) {
	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return User{}, errors.New("failed to parse jwt token claims")
	}

	username, _ := claims["preferred_username"].(string)
	if username == "" {
		username, _ = claims["sub"].(string)
	}
	if username == "" {
		return User{}, errors.New("token has no username")
	}
	email, _ := claims["email"].(string)

	return User{
		Username: username,
		Email:    email,
		Token:    t,
	}, nil
}

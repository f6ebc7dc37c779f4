package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/render"
	"github.com/peeringlatam/network-planner/internal/config"
	"go.uber.org/zap"
)

type Authenticator interface {
	Authenticator(next http.Handler) http.Handler
}

const (
	SSOAuthentication   string = "sso"
	LocalAuthentication string = "local"
	NoneAuthentication  string = "none"
)

func NewAuthenticator(authConfig config.Auth) (Authenticator, error) {
	zap.S().Named("auth").Infof("authentication: '%s'", authConfig.AuthenticationType)

	switch authConfig.AuthenticationType {
	case SSOAuthentication:
		return NewSSOAuthenticator(context.Background(), authConfig.JwkCertURL)
	case LocalAuthentication:
		return NewLocalAuthenticator(authConfig.LocalSecret)
	case NoneAuthentication, "":
		return NewNoneAuthenticator()
	default:
		return nil, fmt.Errorf("unknown authentication type %q", authConfig.AuthenticationType)
	}
}

// RequireUser rejects requests that reached it without an authenticated user.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, found := UserFromContext(r.Context()); !found {
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, map[string]string{"message": "authentication required"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// bearerToken extracts the token of an "Authorization: Bearer" header. ok is false when the
// header is absent; a malformed header yields ok with an empty token.
func bearerToken(r *http.Request) (token string, ok bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", true
	}
	return strings.TrimSpace(token), true
}

// tokenMiddleware lets anonymous requests through and rejects invalid tokens.
func tokenMiddleware(authenticate func(string) (User, error), next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, present := bearerToken(r)
		if !present {
			next.ServeHTTP(w, r)
			return
		}

		user, err := authenticate(token)
		if err != nil {
			zap.S().Named("auth").Debugw("authentication failed", "error", err)
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, map[string]string{"message": "authentication failed"})
			return
		}

		next.ServeHTTP(w, r.WithContext(NewTokenContext(r.Context(), user)))
	})
}

package auth

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

type tokenKeyType struct{}

var (
	tokenKey tokenKeyType
)

func UserFromContext(ctx context.Context) (User, bool) {
	val, ok := ctx.Value(tokenKey).(User)
	return val, ok
}

func MustHaveUser(ctx context.Context) User {
	user, found := UserFromContext(ctx)
	if !found {
		zap.S().Named("auth").Panic("failed to find user in context")
	}
	return user
}

func NewTokenContext(ctx context.Context, u User) context.Context {
	return context.WithValue(ctx, tokenKey, u)
}

type User struct {
	Username string
	Email    string
	Token    *jwt.Token
}

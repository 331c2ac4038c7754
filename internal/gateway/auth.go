package gateway

import (
	"context"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lshigami/edugress/internal/domain"
	"github.com/lshigami/edugress/internal/dto"
)

func (c *Client) Login(ctx context.Context, username, password string) (domain.Session, error) {
	const op = "login"
	var out dto.LoginResponse
	err := c.do(ctx, request{
		op:     op,
		method: http.MethodPost,
		path:   "/login/",
		body:   dto.LoginRequest{Username: username, Password: password},
		out:    &out,
	})
	if err != nil {
		return domain.Session{}, err
	}
	if out.Key == "" {
		return domain.Session{}, malformed(op, "missing key")
	}
	return domain.Session{Token: out.Key, User: out.User}, nil
}

func (c *Client) GetUser(ctx context.Context, token string) (domain.User, error) {
	var out domain.User
	err := c.do(ctx, request{
		op:     "get user",
		method: http.MethodGet,
		path:   "/user/",
		token:  token,
		out:    &out,
	})
	return out, err
}

// TokenExpiry reads the exp claim of a JWT session key without verifying it.
// Opaque keys report ok=false.
func TokenExpiry(token string) (exp time.Time, ok bool) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

package utils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

var ErrMissingToken = errors.New("missing bearer token")

type TokenData struct {
	Sub string
}

// ParseBearer validates an "Authorization: Bearer <jwt>" header value signed
// with HS256 and returns its subject.
func ParseBearer(header, secret string) (*TokenData, error) {
	raw, ok := strings.CutPrefix(strings.TrimSpace(header), "Bearer ")
	if !ok || strings.TrimSpace(raw) == "" {
		return nil, ErrMissingToken
	}

	token, err := jwt.ParseWithClaims(strings.TrimSpace(raw), &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return nil, errors.New("token has no subject")
	}
	return &TokenData{Sub: sub}, nil
}

// ParseTokenDataCtx reads the bearer token of an echo request.
func ParseTokenDataCtx(c echo.Context, secret string) (*TokenData, error) {
	return ParseBearer(c.Request().Header.Get(echo.HeaderAuthorization), secret)
}

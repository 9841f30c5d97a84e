// Package session issues and validates the signed tokens that carry a
// Discord access token through the browser session cookie.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TTL is how long a session stays valid.
const TTL = 7 * 24 * time.Hour

// Issue wraps a Discord access token in an HS256 JWT signed with the
// server's secret key.
func Issue(secret, accessToken string) (string, error) {
	claims := jwt.MapClaims{
		"tok": accessToken,
		"exp": time.Now().Add(TTL).Unix(),
		"iat": time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// AccessToken validates a session token and returns the wrapped Discord
// access token.
func AccessToken(secret, sessionToken string) (string, error) {
	token, err := jwt.Parse(sessionToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid session token")
	}
	tok, ok := claims["tok"].(string)
	if !ok || tok == "" {
		return "", errors.New("session token carries no access token")
	}
	return tok, nil
}

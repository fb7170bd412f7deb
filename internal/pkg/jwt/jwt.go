package jwt

import (
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

const (
	defaultAccessSecret  = "inkwell-access-secret-change-me"
	defaultRefreshSecret = "inkwell-refresh-secret-change-me"

	// AccessTTL is the lifetime of an access token.
	AccessTTL = time.Hour
	// RefreshTTL is the lifetime of a refresh token.
	RefreshTTL = 7 * 24 * time.Hour
)

var (
	accessSecret  = []byte(defaultAccessSecret)
	refreshSecret = []byte(defaultRefreshSecret)
)

// SetSecrets configures the signing secrets (call on startup).
func SetSecrets(access, refresh string) {
	if access != "" {
		accessSecret = []byte(access)
	}
	if refresh != "" {
		refreshSecret = []byte(refresh)
	}
}

// Claims is the token payload. The subject is always this fixed struct,
// never a loose map.
type Claims struct {
	UserID string `json:"uid"`
	Email  string `json:"email"`
	jwtlib.RegisteredClaims
}

// SignAccess creates a short-lived access token for the given user.
func SignAccess(userID, email string) (string, error) {
	return sign(userID, email, AccessTTL, accessSecret)
}

// SignRefresh creates a long-lived refresh token for the given user.
func SignRefresh(userID, email string) (string, error) {
	return sign(userID, email, RefreshTTL, refreshSecret)
}

func sign(userID, email string, ttl time.Duration, secret []byte) (string, error) {
	claims := Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwtlib.NewNumericDate(time.Now()),
		},
	}
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ParseAccess validates an access token and returns the claims.
func ParseAccess(tokenStr string) (*Claims, error) {
	return parse(tokenStr, accessSecret)
}

// ParseRefresh validates a refresh token and returns the claims.
func ParseRefresh(tokenStr string) (*Claims, error) {
	return parse(tokenStr, refreshSecret)
}

func parse(tokenStr string, secret []byte) (*Claims, error) {
	token, err := jwtlib.ParseWithClaims(tokenStr, &Claims{}, func(t *jwtlib.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenClaims are the JWT claims carried by an operator access token.
// The role claim lets the transport layer enforce role guards without a
// database round trip per request.
type AccessTokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateJWT generates a new signed access token with the given parameters.
func GenerateJWT(userID string, role string, secret string, expiryDuration time.Duration, issuer string) (string, error) {
	claims := AccessTokenClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiryDuration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseAndValidateJWT parses a token string and validates its signature and
// standard claims. It returns the claims if the token is valid.
func ParseAndValidateJWT(tokenString string, secretKey string) (*AccessTokenClaims, error) {
	claims := &AccessTokenClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secretKey), nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}

	return claims, nil
}

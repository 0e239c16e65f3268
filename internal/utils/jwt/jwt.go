package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "ott-server"

var (
	ErrInvalidToken = errors.New("invalid or malformed token")
	ErrExpiredToken = errors.New("token has expired")
)

type Claims struct {
	UserID  uuid.UUID `json:"id"`
	Purpose string    `json:"purpose,omitempty"`
	jwt.RegisteredClaims
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

func sign(userID uuid.UUID, purpose string, secret string, expiry time.Duration) (string, error) {
	claims := Claims{
		UserID:  userID,
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// GenerateAccessToken creates a short-lived JWT for API access.
func GenerateAccessToken(userID uuid.UUID, secret string, expiry time.Duration) (string, error) {
	return sign(userID, "", secret, expiry)
}

// GenerateRefreshToken creates a long-lived JWT for token rotation. The
// refresh secret differs from the access secret so the two are never
// interchangeable.
func GenerateRefreshToken(userID uuid.UUID, secret string, expiry time.Duration) (string, error) {
	return sign(userID, "", secret, expiry)
}

// GeneratePurposeToken creates a token bound to one use, e.g. password reset.
func GeneratePurposeToken(userID uuid.UUID, purpose string, secret string, expiry time.Duration) (string, error) {
	return sign(userID, purpose, secret, expiry)
}

// VerifyToken validates a JWT and extracts claims.
func VerifyToken(tokenString string, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// DecodeWithoutVerify decodes a JWT without validating the signature. Logout
// uses it to accept tokens that have already expired.
func DecodeWithoutVerify(tokenString string) (*Claims, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, &Claims{})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

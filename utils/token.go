package utils

import (
	"log"
	"os"
	"time"

	"github.com/golang-jwt/jwt"
)

const (
	accessTokenLifetime  = 60 * time.Minute
	refreshTokenLifetime = 7 * 24 * time.Hour
)

var JwtSecret = loadJwtSecret()

func loadJwtSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Println("JWT_SECRET is not set; using an insecure development secret")
		secret = "insecure-dev-secret"
	}
	return []byte(secret)
}

// GenerateAccessToken creates a new JWT access token for the user
func GenerateAccessToken(userID uint) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"type":    "access",
		"exp":     time.Now().Add(accessTokenLifetime).Unix(),
	})

	return token.SignedString(JwtSecret)
}

// GenerateRefreshToken creates a new JWT refresh token for the user
func GenerateRefreshToken(userID uint) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"type":    "refresh",
		"exp":     time.Now().Add(refreshTokenLifetime).Unix(),
	})

	return token.SignedString(JwtSecret)
}

// GenerateTokenPair issues the access/refresh pair returned by every
// successful authentication flow.
func GenerateTokenPair(userID uint) (access string, refresh string, err error) {
	access, err = GenerateAccessToken(userID)
	if err != nil {
		return "", "", err
	}
	refresh, err = GenerateRefreshToken(userID)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// ParseRefreshToken validates a refresh token and returns the user ID it
// was issued for.
func ParseRefreshToken(tokenString string) (uint, error) {
	return parseTokenClaims(tokenString, "refresh")
}

package utils

import (
	"errors"
	"strings"

	"github.com/golang-jwt/jwt"
)

// parseTokenClaims validates a signed token and returns the user ID it
// carries. Tokens issued for a different use (wrong "type" claim) are
// rejected.
func parseTokenClaims(tokenString string, wantType string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return JwtSecret, nil
	})
	if err != nil || !token.Valid {
		return 0, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errors.New("invalid token claims")
	}

	if tokenType, _ := claims["type"].(string); tokenType != wantType {
		return 0, errors.New("unexpected token type")
	}

	userIDFloat, ok := claims["user_id"].(float64) // JWT numeric values are float64
	if !ok {
		return 0, errors.New("invalid user ID in token")
	}

	return uint(userIDFloat), nil
}

// ExtractUserIDFromToken parses a "Bearer <token>" Authorization header
// and returns the user ID carried in the access token claims.
func ExtractUserIDFromToken(authHeader string) (uint, error) {
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return 0, errors.New("invalid authorization header format")
	}

	return parseTokenClaims(parts[1], "access")
}

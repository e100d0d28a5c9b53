package utils

import (
	"errors"
	"time"

	"groomify/config"

	"github.com/golang-jwt/jwt"
)

func secretKey() []byte {
	secret := config.AppConfig.JWTSecret
	if secret == "" {
		secret = "groomify-dev"
	}
	return []byte(secret)
}

// GenerateToken creates a signed JWT for the given subject scoped to a tenant.
// The tenant id claim is what the auth middleware threads into every request.
func GenerateToken(subject, tenantID string, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":       subject,
		"tenant_id": tenantID,
		"iat":       time.Now().Unix(),
		"exp":       time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
}

// ExtractTenantFromToken extracts the subject and tenant id claims from a
// valid JWT token string.
func ExtractTenantFromToken(tokenString string) (subject, tenantID string, err error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return "", "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", "", errors.New("invalid token")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", "", errors.New("token does not contain a valid 'sub' claim")
	}
	tenant, ok := claims["tenant_id"].(string)
	if !ok || tenant == "" {
		return "", "", errors.New("token does not contain a valid 'tenant_id' claim")
	}

	return sub, tenant, nil
}

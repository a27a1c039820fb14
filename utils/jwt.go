package utils

import (
	"errors"
	"time"

	"bookly/config"
	"bookly/models"

	"github.com/golang-jwt/jwt"
)

// devSecret signs tokens outside production when JWT_SECRET is unset.
const devSecret = "bookly-dev-secret"

func secretKey() ([]byte, error) {
	secret := config.AppConfig.JWTSecret
	if secret == "" {
		if config.IsProduction() {
			return nil, errors.New("JWT_SECRET is not configured")
		}
		secret = devSecret
	}
	return []byte(secret), nil
}

// GenerateToken creates a signed JWT for subject acting in role. The token
// expires after duration.
func GenerateToken(subject string, role models.Role, duration time.Duration) (string, error) {
	if subject == "" || !role.Valid() {
		return "", errors.New("token requires a subject and a known role")
	}
	key, err := secretKey()
	if err != nil {
		return "", err
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": string(role),
		"iat":  now.Unix(),
		"exp":  now.Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(key)
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	key, err := secretKey()
	if err != nil {
		return nil, err
	}
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return key, nil
	})
}

// ParseActor validates a token and returns the caller it identifies.
func ParseActor(tokenString string) (models.Actor, error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return models.Actor{}, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return models.Actor{}, errors.New("invalid token")
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return models.Actor{}, errors.New("token does not contain a valid 'sub' claim")
	}
	role, _ := claims["role"].(string)
	actor := models.Actor{ID: sub, Role: models.Role(role)}
	if !actor.Role.Valid() {
		return models.Actor{}, errors.New("token does not contain a valid 'role' claim")
	}
	return actor, nil
}

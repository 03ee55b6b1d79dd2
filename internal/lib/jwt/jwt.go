package jwt

import (
	"errors"
	"fmt"
	"time"

	"storefront/internal/domain/models"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// NewToken выпускает HS256-токен админской сессии
func NewToken(username string, secret []byte, duration time.Duration) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["sub"] = username
	claims["admin"] = true
	claims["exp"] = time.Now().Add(duration).Unix()

	tokenString, err := token.SignedString(secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseSession проверяет подпись и срок токена и возвращает типизированную сессию
func ParseSession(tokenString string, secret []byte) (models.Session, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return models.Session{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return models.Session{}, ErrInvalidToken
	}

	isAdmin, _ := claims["admin"].(bool)
	locale, _ := claims["locale"].(string)

	return models.Session{IsAdmin: isAdmin, Locale: locale}, nil
}

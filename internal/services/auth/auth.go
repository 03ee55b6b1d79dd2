package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"storefront/internal/config"
	"storefront/internal/domain/models"
	"storefront/internal/lib/jwt"
	"storefront/internal/lib/logger/sl"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
)

// Auth — админский гейт. Учетка и подписной секрет приходят из конфига при
// старте процесса; никаких глобальных изменяемых состояний.
type Auth struct {
	log      *slog.Logger
	admin    config.AdminConfig
	secret   []byte
	tokenTTL time.Duration
}

func New(log *slog.Logger, admin config.AdminConfig, session config.SessionConfig) *Auth {
	return &Auth{
		log:      log,
		admin:    admin,
		secret:   []byte(session.Secret),
		tokenTTL: session.TokenTTL,
	}
}

// Login сверяет логин и пароль с преднастроенной учеткой и выпускает токен
// сессии. Любое расхождение — ErrInvalidCredentials, без уточнений.
func (a *Auth) Login(ctx context.Context, username, password string) (string, error) {
	const op = "auth.Login"

	log := a.log.With(
		slog.String("op", op),
		slog.String("username", username),
	)

	log.Info("attempting to login admin")

	if subtle.ConstantTimeCompare([]byte(username), []byte(a.admin.Username)) != 1 {
		log.Warn("unknown admin username")

		return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(a.admin.PasswordHash), []byte(password)); err != nil {
		log.Info("invalid credentials", sl.Err(err))

		return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	token, err := jwt.NewToken(username, a.secret, a.tokenTTL)
	if err != nil {
		log.Error("failed to generate token", sl.Err(err))

		return "", fmt.Errorf("%s: %w", op, err)
	}

	log.Info("admin logged in successfully")

	return token, nil
}

// Authorize — предикат над токеном сессии: валидный админский токен дает
// типизированную сессию, все остальное — ErrUnauthorized
func (a *Auth) Authorize(token string) (models.Session, error) {
	const op = "auth.Authorize"

	if token == "" {
		return models.Session{}, fmt.Errorf("%s: %w", op, ErrUnauthorized)
	}

	sess, err := jwt.ParseSession(token, a.secret)
	if err != nil || !sess.IsAdmin {
		return models.Session{}, fmt.Errorf("%s: %w", op, ErrUnauthorized)
	}

	return sess, nil
}

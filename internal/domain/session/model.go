package session

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session - сохранённая личность пользователя.
type Session struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	AccessToken string `json:"access_token,omitempty"`
}

// ExpiresAt читает exp из access token без проверки подписи.
func (s Session) ExpiresAt() (time.Time, bool) {
	if s.AccessToken == "" {
		return time.Time{}, false
	}

	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(s.AccessToken, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}

	return claims.ExpiresAt.Time, true
}

// Identity - ответ провайдера аутентификации.
type Identity struct {
	UID          string
	Email        string
	AccessToken  string
	RefreshToken string
}

func (i Identity) Session() Session {
	return Session{UID: i.UID, Email: i.Email, AccessToken: i.AccessToken}
}

// Provider - удалённый провайдер аутентификации.
type Provider interface {
	SignIn(ctx context.Context, email, password string) (Identity, error)
	SignUp(ctx context.Context, email, password string) (Identity, error)
	SignOut(ctx context.Context, accessToken string) error
}

// KV - локальное хранилище ключ-значение для сессии.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

package client

import (
	"context"
	"errors"

	"golang.org/x/exp/slog"

	"artargets/internal/domain/session"
	"artargets/internal/domain/user"
)

// Auth - экраны входа и регистрации.
type Auth struct {
	sessions  Sessions
	validator user.Validator
	nav       Navigator
	notify    Notifier
	log       *slog.Logger
}

func NewAuth(sessions Sessions, validator user.Validator, ui UI, log *slog.Logger) *Auth {
	return &Auth{
		sessions:  sessions,
		validator: validator,
		nav:       ui,
		notify:    ui,
		log:       log.With("component", "auth"),
	}
}

// Register проверяет форму до обращения к провайдеру.
func (a *Auth) Register(ctx context.Context, email, password string) (*session.Session, error) {
	if err := a.validator.ValidateCredentials(email, password); err != nil {
		a.notify.Error(formMessage(err), err)
		return nil, err
	}

	s, err := a.sessions.Register(ctx, email, password)
	if err != nil {
		a.notify.Error(providerMessage(err, "Ошибка регистрации"), err)
		return nil, err
	}

	a.notify.Success("Регистрация прошла успешно")
	a.nav.ToHome()
	return s, nil
}

func (a *Auth) Login(ctx context.Context, email, password string) (*session.Session, error) {
	if err := a.validator.ValidateEmail(email); err != nil {
		a.notify.Error(formMessage(err), err)
		return nil, err
	}
	if password == "" {
		err := &user.ValidationError{Field: "password", Err: user.ErrPasswordRequired, Message: "Введите пароль"}
		a.notify.Error(err.Message, err)
		return nil, err
	}

	s, err := a.sessions.Login(ctx, email, password)
	if err != nil {
		a.notify.Error(providerMessage(err, "Ошибка входа"), err)
		return nil, err
	}

	a.notify.Success("Вход выполнен")
	a.nav.ToHome()
	return s, nil
}

func formMessage(err error) string {
	var verr *user.ValidationError
	if errors.As(err, &verr) && verr.Message != "" {
		return verr.Message
	}
	return err.Error()
}

// providerMessage отдаёт текст провайдера, если он есть.
func providerMessage(err error, fallback string) string {
	var authErr *session.AuthError
	if errors.As(err, &authErr) && authErr.Message != "" {
		return authErr.Message
	}
	return fallback
}

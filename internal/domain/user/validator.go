package user

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"
)

const MinPasswordLen = 6

// Validator - интерфейс для валидации формы входа и регистрации
type Validator interface {
	ValidateCredentials(email, password string) error
	ValidateEmail(email string) error
	ValidatePassword(password string) error
}

type CredentialsValidator struct {
	minPasswordLen int
}

// NewCredentialsValidator создает новый валидатор
func NewCredentialsValidator() *CredentialsValidator {
	return &CredentialsValidator{minPasswordLen: MinPasswordLen}
}

// ValidateCredentials валидирует email и пароль
func (v *CredentialsValidator) ValidateCredentials(email, password string) error {
	if err := v.ValidateEmail(email); err != nil {
		return err
	}

	return v.ValidatePassword(password)
}

// ValidateEmail проверяет, что строка - один адрес без отображаемого имени
func (v *CredentialsValidator) ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return &ValidationError{Field: "email", Err: ErrEmailRequired, Message: "Введите email"}
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || !strings.Contains(addr.Address[strings.LastIndex(addr.Address, "@")+1:], ".") {
		return &ValidationError{Field: "email", Err: ErrEmailInvalid, Message: "Некорректный email"}
	}

	return nil
}

// ValidatePassword валидирует пароль
func (v *CredentialsValidator) ValidatePassword(password string) error {
	if password == "" {
		return &ValidationError{Field: "password", Err: ErrPasswordRequired, Message: "Введите пароль"}
	}

	if utf8.RuneCountInString(password) < v.minPasswordLen {
		return &ValidationError{
			Field:   "password",
			Err:     ErrPasswordTooShort,
			Message: fmt.Sprintf("Пароль должен содержать не менее %d символов", v.minPasswordLen),
		}
	}

	return nil
}

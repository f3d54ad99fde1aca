package client

import (
	"context"
	"errors"

	"artargets/internal/domain/asset"
	"artargets/internal/domain/session"
	"artargets/internal/domain/target"
)

var (
	ErrNotLoggedIn    = errors.New("not logged in")
	ErrNoFileSelected = errors.New("no file selected")
	ErrCancelled      = errors.New("cancelled by user")
)

// Navigator переключает экраны приложения.
type Navigator interface {
	ToLogin()
	ToHome()
}

// Notifier показывает пользователю результат операции.
type Notifier interface {
	Success(msg string)
	Error(msg string, err error)
}

// Confirmer спрашивает подтверждение деструктивного действия.
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// EditForm - поля, доступные для редактирования.
type EditForm struct {
	Name string
	Type target.Type
}

// Editor показывает форму, заполненную текущими значениями. ok=false - отмена.
type Editor interface {
	Edit(current EditForm) (EditForm, bool, error)
}

// UI объединяет всё, что нужно контроллерам от интерфейса.
type UI interface {
	Navigator
	Notifier
	Confirmer
	Editor
}

type Sessions interface {
	Current() *session.Session
	Login(ctx context.Context, email, password string) (*session.Session, error)
	Register(ctx context.Context, email, password string) (*session.Session, error)
	Logout(ctx context.Context) error
}

type Assets interface {
	UploadImage(ctx context.Context, userID string, f asset.File) (string, error)
	UploadFile(ctx context.Context, userID string, f asset.File) (string, error)
	DeleteImage(ctx context.Context, publicURL string) error
}

// PresetEditor применяет заранее заданные значения вместо интерактивной формы.
type PresetEditor struct {
	Name *string
	Type *target.Type
}

func (e PresetEditor) Edit(current EditForm) (EditForm, bool, error) {
	if e.Name != nil {
		current.Name = *e.Name
	}
	if e.Type != nil {
		current.Type = *e.Type
	}
	return current, true, nil
}

package client

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/exp/slog"

	"artargets/internal/domain/asset"
	"artargets/internal/domain/target"
)

// Home - главный экран: список таргетов, загрузка, правка и удаление.
type Home struct {
	sessions Sessions
	targets  target.Servicer
	assets   Assets
	nav      Navigator
	notify   Notifier
	confirm  Confirmer
	editor   Editor
	log      *slog.Logger

	mu       sync.RWMutex
	list     []target.Target
	loading  bool
	selected *asset.File
}

func NewHome(sessions Sessions, targets target.Servicer, assets Assets, ui UI, log *slog.Logger) *Home {
	return &Home{
		sessions: sessions,
		targets:  targets,
		assets:   assets,
		nav:      ui,
		notify:   ui,
		confirm:  ui,
		editor:   ui,
		log:      log.With("component", "home"),
		list:     []target.Target{},
	}
}

// WithEditor подменяет форму редактирования (например, значениями из флагов).
func (h *Home) WithEditor(e Editor) *Home {
	h.editor = e
	return h
}

// Enter открывает экран. Без сессии список очищается и показывается вход.
func (h *Home) Enter(ctx context.Context) error {
	h.setLoading(true)
	defer h.setLoading(false)

	s := h.sessions.Current()
	if s == nil {
		h.setList(nil)
		h.nav.ToLogin()
		return ErrNotLoggedIn
	}

	h.refresh(ctx, s.UID)
	return nil
}

// SelectFile запоминает первый из выбранных файлов.
func (h *Home) SelectFile(files ...asset.File) {
	if len(files) == 0 {
		return
	}
	f := files[0]

	h.mu.Lock()
	h.selected = &f
	h.mu.Unlock()
}

func (h *Home) Selected() *asset.File {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.selected
}

// Upload загружает выбранный файл и создаёт по нему таргет.
func (h *Home) Upload(ctx context.Context) (target.Target, error) {
	f := h.Selected()
	if f == nil {
		return target.Target{}, ErrNoFileSelected
	}

	s := h.sessions.Current()
	if s == nil {
		h.nav.ToLogin()
		return target.Target{}, ErrNotLoggedIn
	}

	h.setLoading(true)
	defer h.setLoading(false)

	var (
		url string
		typ target.Type
		err error
	)
	if f.IsImage() {
		url, err = h.assets.UploadImage(ctx, s.UID, *f)
		typ = target.TypeImage
	} else {
		url, err = h.assets.UploadFile(ctx, s.UID, *f)
		typ = target.TypeMarker
	}
	if err != nil {
		h.notify.Error("Не удалось загрузить файл", err)
		return target.Target{}, err
	}

	saved, err := h.targets.AddTarget(ctx, target.Target{
		UserID:     s.UID,
		Name:       f.Name,
		Type:       typ,
		ContentURL: url,
	})
	if err != nil {
		h.log.Warn("uploaded object has no target record", "url", url, "error", err)
		h.notify.Error("Не удалось сохранить таргет", err)
		return target.Target{}, err
	}

	h.refresh(ctx, s.UID)
	h.notify.Success(fmt.Sprintf("Таргет «%s» добавлен", saved.Name))

	h.mu.Lock()
	h.selected = nil
	h.mu.Unlock()

	return saved, nil
}

// Delete удаляет файл (без гарантий) и затем запись. ifVersion делает удаление условным.
func (h *Home) Delete(ctx context.Context, t target.Target, ifVersion *int) error {
	s := h.sessions.Current()
	if s == nil {
		h.nav.ToLogin()
		return ErrNotLoggedIn
	}

	ok, err := h.confirm.Confirm(fmt.Sprintf("Удалить таргет «%s»?", t.Name))
	if err != nil {
		return err
	}
	if !ok {
		return ErrCancelled
	}

	h.setLoading(true)
	defer h.setLoading(false)

	if t.ContentURL != "" {
		if err := h.assets.DeleteImage(ctx, t.ContentURL); err != nil {
			h.log.Warn("binary cleanup failed", "id", t.ID, "url", t.ContentURL, "error", err)
		}
	}

	if ifVersion != nil {
		err = h.targets.DeleteTargetIfVersion(ctx, t.ID, *ifVersion)
	} else {
		err = h.targets.DeleteTarget(ctx, t.ID)
	}
	if err != nil {
		h.notify.Error("Не удалось удалить таргет", err)
		return err
	}

	h.refresh(ctx, s.UID)
	h.notify.Success(fmt.Sprintf("Таргет «%s» удалён", t.Name))
	return nil
}

// Edit меняет только имя и тип.
func (h *Home) Edit(ctx context.Context, t target.Target, ifVersion *int) (target.Target, error) {
	s := h.sessions.Current()
	if s == nil {
		h.nav.ToLogin()
		return target.Target{}, ErrNotLoggedIn
	}

	form, ok, err := h.editor.Edit(EditForm{Name: t.Name, Type: t.Type})
	if err != nil {
		return target.Target{}, err
	}
	if !ok {
		return target.Target{}, ErrCancelled
	}

	h.setLoading(true)
	defer h.setLoading(false)

	updated, err := h.targets.UpdateTarget(ctx, t.ID, target.Patch{
		Name:            &form.Name,
		Type:            &form.Type,
		ExpectedVersion: ifVersion,
	})
	if err != nil {
		h.notify.Error("Не удалось обновить таргет", err)
		return target.Target{}, err
	}

	h.refresh(ctx, s.UID)
	h.notify.Success(fmt.Sprintf("Таргет «%s» обновлён", updated.Name))
	return updated, nil
}

// Logout очищает список сразу и показывает вход независимо от результата.
func (h *Home) Logout(ctx context.Context) error {
	h.setList(nil)

	err := h.sessions.Logout(ctx)
	if err != nil {
		h.notify.Error("Не удалось выйти", err)
	}

	h.nav.ToLogin()
	return err
}

// Find ищет таргет в последнем загруженном списке.
func (h *Home) Find(id string) (target.Target, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, t := range h.list {
		if t.ID == id {
			return t, true
		}
	}
	return target.Target{}, false
}

func (h *Home) Targets() []target.Target {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]target.Target, len(h.list))
	copy(out, h.list)
	return out
}

func (h *Home) Loading() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.loading
}

// refresh перечитывает список. Ошибка даёт пустой список.
func (h *Home) refresh(ctx context.Context, userID string) {
	list, err := h.targets.GetTargets(ctx, userID)
	if err != nil {
		h.log.Error("failed to load targets", "user_id", userID, "error", err)
		list = nil
	}
	h.setList(list)
}

func (h *Home) setList(list []target.Target) {
	if list == nil {
		list = []target.Target{}
	}
	h.mu.Lock()
	h.list = list
	h.mu.Unlock()
}

func (h *Home) setLoading(v bool) {
	h.mu.Lock()
	h.loading = v
	h.mu.Unlock()
}

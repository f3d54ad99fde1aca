package session

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/exp/slog"
)

const DefaultKey = "usuario"

// Manager хранит текущую сессию и проксирует вход/выход к провайдеру.
type Manager struct {
	provider Provider
	kv       KV
	key      string
	log      *slog.Logger
}

func NewManager(provider Provider, kv KV, key string, log *slog.Logger) *Manager {
	if key == "" {
		key = DefaultKey
	}
	return &Manager{
		provider: provider,
		kv:       kv,
		key:      key,
		log:      log.With("component", "session_manager"),
	}
}

func (m *Manager) Login(ctx context.Context, email, password string) (*Session, error) {
	id, err := m.provider.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}

	s := id.Session()
	if err := m.Save(s); err != nil {
		return nil, err
	}

	m.log.Info("logged in", "uid", s.UID)
	return &s, nil
}

func (m *Manager) Register(ctx context.Context, email, password string) (*Session, error) {
	id, err := m.provider.SignUp(ctx, email, password)
	if err != nil {
		return nil, err
	}

	s := id.Session()
	if err := m.Save(s); err != nil {
		return nil, err
	}

	m.log.Info("registered", "uid", s.UID)
	return &s, nil
}

// Logout сначала завершает удалённую сессию. При ошибке локальная сессия остаётся.
func (m *Manager) Logout(ctx context.Context) error {
	s := m.Current()
	if s == nil {
		return m.Clear()
	}

	if s.AccessToken != "" {
		if err := m.provider.SignOut(ctx, s.AccessToken); err != nil {
			m.log.Error("remote sign out failed", "uid", s.UID, "error", err)
			return err
		}
	}

	return m.Clear()
}

// Current возвращает сессию или nil. Повреждённая запись считается отсутствующей.
func (m *Manager) Current() *Session {
	s, err := m.Load()
	if err != nil {
		m.log.Debug("session unavailable", "error", err)
		return nil
	}
	return s
}

func (m *Manager) IsLoggedIn() bool {
	return m.Current() != nil
}

// AccessToken - токен текущей сессии или пустая строка.
func (m *Manager) AccessToken() string {
	if s := m.Current(); s != nil {
		return s.AccessToken
	}
	return ""
}

// Load читает сессию. Отсутствие записи - (nil, nil).
func (m *Manager) Load() (*Session, error) {
	raw, ok, err := m.kv.Get(m.key)
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	if !ok || raw == "" {
		return nil, nil
	}

	var s Session
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSession, err)
	}
	if s.UID == "" {
		return nil, fmt.Errorf("%w: empty uid", ErrMalformedSession)
	}

	return &s, nil
}

func (m *Manager) Save(s Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := m.kv.Set(m.key, string(data)); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

func (m *Manager) Clear() error {
	if err := m.kv.Delete(m.key); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

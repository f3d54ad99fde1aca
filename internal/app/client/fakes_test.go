package client

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"artargets/internal/domain/asset"
	"artargets/internal/domain/session"
	"artargets/internal/domain/target"
)

type fakeSessions struct {
	mu        sync.Mutex
	current   *session.Session
	logoutErr error
	loginErr  error
}

func (f *fakeSessions) Current() *session.Session {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current
}

func (f *fakeSessions) Login(_ context.Context, email, _ string) (*session.Session, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.current = &session.Session{UID: "u-" + email, Email: email}
	return f.current, nil
}

func (f *fakeSessions) Register(ctx context.Context, email, password string) (*session.Session, error) {
	return f.Login(ctx, email, password)
}

func (f *fakeSessions) Logout(_ context.Context) error {
	if f.logoutErr != nil {
		return f.logoutErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.current = nil
	return nil
}

// recordingUI запоминает все вызовы интерфейса.
type recordingUI struct {
	toLogin   int
	toHome    int
	successes []string
	errors    []string

	confirm    bool
	confirmErr error
	prompts    []string

	editResult EditForm
	editOK     bool
	editErr    error
	edited     []EditForm
}

func (u *recordingUI) ToLogin()                  { u.toLogin++ }
func (u *recordingUI) ToHome()                   { u.toHome++ }
func (u *recordingUI) Success(msg string)        { u.successes = append(u.successes, msg) }
func (u *recordingUI) Error(msg string, _ error) { u.errors = append(u.errors, msg) }

func (u *recordingUI) Confirm(prompt string) (bool, error) {
	u.prompts = append(u.prompts, prompt)
	return u.confirm, u.confirmErr
}

func (u *recordingUI) Edit(current EditForm) (EditForm, bool, error) {
	u.edited = append(u.edited, current)
	return u.editResult, u.editOK, u.editErr
}

type MockTargets struct {
	mock.Mock
}

func (m *MockTargets) GetTargets(ctx context.Context, userID string) ([]target.Target, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]target.Target), args.Error(1)
}

func (m *MockTargets) AddTarget(ctx context.Context, t target.Target) (target.Target, error) {
	args := m.Called(ctx, t)
	return args.Get(0).(target.Target), args.Error(1)
}

func (m *MockTargets) UpdateTarget(ctx context.Context, id string, patch target.Patch) (target.Target, error) {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(target.Target), args.Error(1)
}

func (m *MockTargets) DeleteTarget(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTargets) DeleteTargetIfVersion(ctx context.Context, id string, version int) error {
	args := m.Called(ctx, id, version)
	return args.Error(0)
}

type MockAssets struct {
	mock.Mock
}

func (m *MockAssets) UploadImage(ctx context.Context, userID string, f asset.File) (string, error) {
	args := m.Called(ctx, userID, f)
	return args.String(0), args.Error(1)
}

func (m *MockAssets) UploadFile(ctx context.Context, userID string, f asset.File) (string, error) {
	args := m.Called(ctx, userID, f)
	return args.String(0), args.Error(1)
}

func (m *MockAssets) DeleteImage(ctx context.Context, publicURL string) error {
	args := m.Called(ctx, publicURL)
	return args.Error(0)
}

package targets

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	sessionMW "artargets/internal/app/viewer/api/http/middleware/session"
	"artargets/internal/domain/session"
	"artargets/internal/domain/target"
)

type MockViewer struct {
	mock.Mock
}

func (m *MockViewer) Init(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockViewer) Session() *session.Session {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*session.Session)
}

func (m *MockViewer) Targets() []target.Target {
	args := m.Called()
	return args.Get(0).([]target.Target)
}

type fakeSessions struct {
	mu sync.Mutex
	s  *session.Session
}

func (f *fakeSessions) Current() *session.Session {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.s
}

func (f *fakeSessions) set(s *session.Session) {
	f.mu.Lock()
	f.s = s
	f.mu.Unlock()
}

// storeViewer повторяет client.Viewer: Init берёт текущую сессию и её таргеты.
type storeViewer struct {
	sessions *fakeSessions
	byOwner  map[string][]target.Target
	inits    int

	current *session.Session
	list    []target.Target
}

func (v *storeViewer) Init(context.Context) error {
	v.inits++
	v.current = v.sessions.Current()
	v.list = []target.Target{}
	if v.current != nil {
		v.list = v.byOwner[v.current.UID]
	}
	return nil
}

func (v *storeViewer) Session() *session.Session { return v.current }

func (v *storeViewer) Targets() []target.Target { return v.list }

func setup(t *testing.T, v Viewer, current *session.Session) humatest.TestAPI {
	t.Helper()
	return setupWith(t, v, &fakeSessions{s: current})
}

func setupWith(t *testing.T, v Viewer, sessions *fakeSessions) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	protected := huma.Middlewares{sessionMW.New(sessions, slog.Default()).Middleware()}
	NewHandler(v, sessions, slog.Default(), huma.Middlewares{}, protected).SetupRoutes(api)
	return api
}

var sample = []target.Target{
	{ID: "1", UserID: "u1", Name: "photo.png", Type: target.TypeImage, ContentURL: "https://x/1", Version: 1},
	{ID: "2", UserID: "u1", Name: "hiro", Type: target.TypeMarker, MarkerPreset: "hiro"},
}

func TestHandler_list(t *testing.T) {
	v := new(MockViewer)
	v.On("Init", mock.Anything).Return(nil).Once()
	current := &session.Session{UID: "u1", Email: "ana@example.com"}
	v.On("Session").Return(current)
	v.On("Targets").Return(sample)

	api := setup(t, v, current)

	resp := api.Get("/api/v1/targets")
	require.Equal(t, http.StatusOK, resp.Code)

	var body listResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.NotNil(t, body.User)
	assert.Equal(t, "u1", body.User.UID)
	require.Len(t, body.Targets, 2)
	assert.Equal(t, "image", body.Targets[0].Type)
	assert.Equal(t, "Изображение", body.Targets[0].TypeName)
	assert.Equal(t, "hiro", body.Targets[1].MarkerPreset)

	// второй запрос без refresh не перечитывает
	resp = api.Get("/api/v1/targets")
	assert.Equal(t, http.StatusOK, resp.Code)
	v.AssertNumberOfCalls(t, "Init", 1)
}

func TestHandler_list_Refresh(t *testing.T) {
	v := new(MockViewer)
	v.On("Init", mock.Anything).Return(nil)
	current := &session.Session{UID: "u1"}
	v.On("Session").Return(current)
	v.On("Targets").Return(sample)

	api := setup(t, v, current)

	api.Get("/api/v1/targets")
	resp := api.Get("/api/v1/targets?refresh=true")

	assert.Equal(t, http.StatusOK, resp.Code)
	v.AssertNumberOfCalls(t, "Init", 2)
}

func TestHandler_list_NoSession(t *testing.T) {
	v := new(MockViewer)
	v.On("Init", mock.Anything).Return(nil)
	v.On("Session").Return(nil)
	v.On("Targets").Return([]target.Target{})

	api := setup(t, v, nil)

	resp := api.Get("/api/v1/targets")
	require.Equal(t, http.StatusOK, resp.Code)

	var body listResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Nil(t, body.User)
	assert.NotNil(t, body.Targets)
	assert.Empty(t, body.Targets)
}

func TestHandler_list_LoadError(t *testing.T) {
	v := new(MockViewer)
	v.On("Init", mock.Anything).Return(errors.New("store down"))

	api := setup(t, v, nil)

	resp := api.Get("/api/v1/targets")
	assert.Equal(t, http.StatusBadGateway, resp.Code)
	v.AssertNotCalled(t, "Targets")
}

func TestHandler_find(t *testing.T) {
	tests := []struct {
		name       string
		session    *session.Session
		id         string
		wantStatus int
	}{
		{name: "found", session: &session.Session{UID: "u1"}, id: "2", wantStatus: http.StatusOK},
		{name: "missing", session: &session.Session{UID: "u1"}, id: "42", wantStatus: http.StatusNotFound},
		{name: "other owner", session: &session.Session{UID: "u2"}, id: "1", wantStatus: http.StatusNotFound},
		{name: "no session", session: nil, id: "1", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := new(MockViewer)
			v.On("Init", mock.Anything).Return(nil)
			v.On("Session").Return(tt.session)
			v.On("Targets").Return(sample)

			api := setup(t, v, tt.session)

			resp := api.Get("/api/v1/targets/" + tt.id)
			assert.Equal(t, tt.wantStatus, resp.Code)

			if tt.wantStatus == http.StatusOK {
				var body targetResponse
				require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
				assert.Equal(t, tt.id, body.ID)
			}
		})
	}
}

func TestHandler_list_FollowsSessionChange(t *testing.T) {
	sessions := &fakeSessions{s: &session.Session{UID: "u1", Email: "ana@example.com"}}
	v := &storeViewer{
		sessions: sessions,
		byOwner: map[string][]target.Target{
			"u1": {{ID: "1", UserID: "u1", Name: "secret", Type: target.TypeImage}},
			"u2": {{ID: "7", UserID: "u2", Name: "poster", Type: target.TypeNFT}},
		},
	}
	api := setupWith(t, v, sessions)

	var body listResponse
	resp := api.Get("/api/v1/targets")
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.NotNil(t, body.User)
	require.Len(t, body.Targets, 1)

	// выход между запросами
	sessions.set(nil)

	body = listResponse{}
	resp = api.Get("/api/v1/targets")
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Nil(t, body.User)
	assert.Empty(t, body.Targets)
	assert.NotContains(t, resp.Body.String(), "secret")

	// вход другим пользователем: find видит его таргеты без refresh
	sessions.set(&session.Session{UID: "u2"})

	resp = api.Get("/api/v1/targets/7")
	require.Equal(t, http.StatusOK, resp.Code)
	resp = api.Get("/api/v1/targets/1")
	assert.Equal(t, http.StatusNotFound, resp.Code)

	assert.Equal(t, 3, v.inits)
}

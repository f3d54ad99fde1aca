package viewer

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"artargets/internal/app/client"
	"artargets/internal/domain/asset"
	"artargets/internal/domain/session"
	"artargets/internal/domain/target"
	"artargets/internal/infrastructure/storage/memory"
)

type staticSessions struct {
	s *session.Session
}

func (f staticSessions) Current() *session.Session { return f.s }

func (f staticSessions) Login(context.Context, string, string) (*session.Session, error) {
	return f.s, nil
}

func (f staticSessions) Register(context.Context, string, string) (*session.Session, error) {
	return f.s, nil
}

func (f staticSessions) Logout(context.Context) error { return nil }

func TestServer_ServesTargetsAndShutsDown(t *testing.T) {
	records := memory.NewRecordStore()
	adapter := asset.NewAdapter(records, memory.NewObjectStore(), asset.NewURLBuilder("https://demo.supabase.co"), "ar-assets", slog.Default())
	service := target.NewService(adapter, slog.Default())

	ctx := context.Background()
	_, err := service.AddTarget(ctx, target.Target{UserID: "u1", Name: "hiro", Type: target.TypeMarker, MarkerPreset: "hiro"})
	require.NoError(t, err)

	sessions := staticSessions{s: &session.Session{UID: "u1", Email: "ana@example.com"}}
	v := client.NewViewer(sessions, service, slog.Default())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := NewServer(ln.Addr().String(), v, sessions, slog.Default())

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() { done <- srv.Serve(runCtx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/api/v1/targets")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Targets []struct {
			Name string `json:"name"`
			Type string `json:"type"`
		} `json:"targets"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Targets, 1)
	assert.Equal(t, "hiro", body.Targets[0].Name)
	assert.Equal(t, "marker", body.Targets[0].Type)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not stop")
	}
}

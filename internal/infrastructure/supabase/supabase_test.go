package supabase

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"artargets/internal/domain/asset"
	"artargets/internal/domain/session"
	"artargets/internal/domain/target"
)

const anonKey = "anon-key"

func newTestClient(t *testing.T, h http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL, anonKey, 0, slog.Default(), opts...)
}

func TestRecordStore_List(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/rest/v1/targets", r.URL.Path)
		assert.Equal(t, "*", r.URL.Query().Get("select"))
		assert.Equal(t, "eq.u1", r.URL.Query().Get("user_id"))
		assert.Equal(t, anonKey, r.Header.Get("apikey"))
		assert.Equal(t, "Bearer user-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[{"id":"1","user_id":"u1","name":"photo.png","type":"image","contenturl":"https://x/y","scale":"1 1 1"}]`)
	}, WithTokenSource(func() string { return "user-token" }))

	store := NewRecordStore(c, "targets")
	list, err := store.List(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, target.Target{ID: "1", UserID: "u1", Name: "photo.png", Type: target.TypeImage, ContentURL: "https://x/y", Scale: "1 1 1"}, list[0])
}

func TestRecordStore_List_Error(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"code":"42703","message":"column targets.foo does not exist","details":"bad column","hint":"check the select"}`)
	})

	_, err := NewRecordStore(c, "targets").List(context.Background(), "u1")

	var storeErr *asset.StoreError
	require.True(t, errors.As(err, &storeErr))
	assert.Equal(t, "list", storeErr.Op)
	assert.Equal(t, http.StatusBadRequest, storeErr.Status)
	assert.Equal(t, "42703", storeErr.Code)
	assert.Equal(t, "column targets.foo does not exist", storeErr.Message)
	assert.Equal(t, "bad column", storeErr.Details)
	assert.Equal(t, "check the select", storeErr.Hint)
	assert.Contains(t, err.Error(), "bad column")
}

func TestRecordStore_Insert(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "return=representation", r.Header.Get("Prefer"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.NotContains(t, body, "id")
		assert.NotContains(t, body, "version")
		assert.Equal(t, "u1", body["user_id"])
		assert.Equal(t, "marker", body["type"])

		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `[{"id":"42","user_id":"u1","name":"hiro.patt","type":"marker","contenturl":"https://x/y","version":1}]`)
	})

	saved, err := NewRecordStore(c, "targets").Insert(context.Background(), target.Target{
		ID: "ignored", UserID: "u1", Name: "hiro.patt", Type: target.TypeMarker, ContentURL: "https://x/y",
	})
	require.NoError(t, err)
	assert.Equal(t, "42", saved.ID)
	assert.Equal(t, 1, saved.Version)
}

func TestRecordStore_Update(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "eq.42", r.URL.Query().Get("id"))
		assert.Empty(t, r.URL.Query().Get("version"))

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{"name": "X", "type": "nft"}, body)

		_, _ = io.WriteString(w, `[{"id":"42","user_id":"u1","name":"X","type":"nft","contenturl":"https://x/y"}]`)
	})

	name, typ := "X", target.TypeNFT
	updated, err := NewRecordStore(c, "targets").Update(context.Background(), "42", target.Patch{Name: &name, Type: &typ})
	require.NoError(t, err)
	assert.Equal(t, "X", updated.Name)
	assert.Equal(t, target.TypeNFT, updated.Type)
}

func TestRecordStore_Update_VersionConflict(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "eq.3", r.URL.Query().Get("version"))

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(4), body["version"])

		_, _ = io.WriteString(w, `[]`)
	})

	name := "X"
	expected := 3
	_, err := NewRecordStore(c, "targets").Update(context.Background(), "42", target.Patch{Name: &name, ExpectedVersion: &expected})
	assert.ErrorIs(t, err, target.ErrVersionConflict)
}

func TestRecordStore_Update_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[]`)
	})

	name := "X"
	_, err := NewRecordStore(c, "targets").Update(context.Background(), "missing", target.Patch{Name: &name})
	assert.ErrorIs(t, err, target.ErrNotFound)
}

func TestRecordStore_Delete(t *testing.T) {
	t.Run("unconditional", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodDelete, r.Method)
			assert.Equal(t, "eq.42", r.URL.Query().Get("id"))
			assert.Empty(t, r.Header.Get("Prefer"))
			w.WriteHeader(http.StatusNoContent)
		})
		assert.NoError(t, NewRecordStore(c, "targets").Delete(context.Background(), "42", nil))
	})

	t.Run("conditional conflict", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "eq.2", r.URL.Query().Get("version"))
			assert.Equal(t, "return=representation", r.Header.Get("Prefer"))
			_, _ = io.WriteString(w, `[]`)
		})
		v := 2
		assert.ErrorIs(t, NewRecordStore(c, "targets").Delete(context.Background(), "42", &v), target.ErrVersionConflict)
	})

	t.Run("remote failure", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			_, _ = io.WriteString(w, `{"code":"42501","message":"permission denied for table targets"}`)
		})
		err := NewRecordStore(c, "targets").Delete(context.Background(), "42", nil)
		var storeErr *asset.StoreError
		require.True(t, errors.As(err, &storeErr))
		assert.Equal(t, http.StatusForbidden, storeErr.Status)
	})
}

func TestObjectStore_Put(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/storage/v1/object/ar-assets/u1/1700000000000-my-photo.png", r.URL.Path)
		assert.Equal(t, "true", r.Header.Get("x-upsert"))
		assert.Equal(t, "image/png", r.Header.Get("Content-Type"))

		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, "png-bytes", string(body))

		_, _ = io.WriteString(w, `{"Key":"ar-assets/u1/1700000000000-my-photo.png","Id":"abc"}`)
	})

	stored, err := NewObjectStore(c).Put(context.Background(), "ar-assets", "u1/1700000000000-my-photo.png", asset.File{
		Name: "my photo.png", ContentType: "image/png", Body: strings.NewReader("png-bytes"),
	}, true)
	require.NoError(t, err)
	assert.Equal(t, "u1/1700000000000-my-photo.png", stored)
}

func TestObjectStore_Put_SendsContentLength(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, int64(9), r.ContentLength)
		assert.Empty(t, r.TransferEncoding)
		_, _ = io.WriteString(w, `{}`)
	})

	// MultiReader скрывает длину так же, как *os.File
	body := io.MultiReader(strings.NewReader("png-bytes"))
	_, err := NewObjectStore(c).Put(context.Background(), "ar-assets", "u1/1-photo.png", asset.File{
		Name: "photo.png", ContentType: "image/png", Size: 9, Body: body,
	}, true)
	require.NoError(t, err)
}

func TestObjectStore_Put_EscapesSegments(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/storage/v1/object/ar-assets/u1/1-a%3Fb.png", r.URL.EscapedPath())
		assert.Equal(t, asset.DefaultContentType, r.Header.Get("Content-Type"))
		_, _ = io.WriteString(w, `{}`)
	})

	stored, err := NewObjectStore(c).Put(context.Background(), "ar-assets", "u1/1-a?b.png", asset.File{Body: strings.NewReader("x")}, true)
	require.NoError(t, err)
	assert.Equal(t, "u1/1-a?b.png", stored)
}

func TestObjectStore_Put_Failure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusRequestEntityTooLarge)
		_, _ = io.WriteString(w, `{"statusCode":"413","error":"Payload too large","message":"The object exceeded the maximum allowed size"}`)
	})

	_, err := NewObjectStore(c).Put(context.Background(), "ar-assets", "u1/x.png", asset.File{Body: strings.NewReader("x")}, true)

	var uploadErr *asset.UploadError
	require.True(t, errors.As(err, &uploadErr))
	assert.Equal(t, http.StatusRequestEntityTooLarge, uploadErr.Status)
	assert.Contains(t, uploadErr.Body, "maximum allowed size")
}

func TestObjectStore_Remove(t *testing.T) {
	var called bool
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/storage/v1/object/ar-assets/u1/1-photo.png", r.URL.Path)
		_, _ = io.WriteString(w, `{"message":"Successfully deleted"}`)
	})

	require.NoError(t, NewObjectStore(c).Remove(context.Background(), "ar-assets", "u1/1-photo.png"))
	assert.True(t, called)
}

func TestObjectStore_Remove_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"statusCode":"404","error":"not_found","message":"Object not found"}`)
	})

	err := NewObjectStore(c).Remove(context.Background(), "ar-assets", "u1/missing.png")
	var storeErr *asset.StoreError
	require.True(t, errors.As(err, &storeErr))
	assert.Equal(t, "Object not found", storeErr.Message)
}

func TestAuthClient_SignIn(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/token", r.URL.Path)
		assert.Equal(t, "password", r.URL.Query().Get("grant_type"))
		assert.Equal(t, "Bearer "+anonKey, r.Header.Get("Authorization"))

		var body credentials
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, credentials{Email: "a@b.co", Password: "secret1"}, body)

		_, _ = io.WriteString(w, `{"access_token":"at","refresh_token":"rt","token_type":"bearer","user":{"id":"u1","email":"a@b.co"}}`)
	})

	id, err := NewAuthClient(c).SignIn(context.Background(), "a@b.co", "secret1")
	require.NoError(t, err)
	assert.Equal(t, session.Identity{UID: "u1", Email: "a@b.co", AccessToken: "at", RefreshToken: "rt"}, id)
}

func TestAuthClient_SignIn_InvalidCredentials(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":"invalid_grant","error_description":"Invalid login credentials"}`)
	})

	_, err := NewAuthClient(c).SignIn(context.Background(), "a@b.co", "bad")

	var authErr *session.AuthError
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, http.StatusBadRequest, authErr.Status)
	assert.Equal(t, "Invalid login credentials", authErr.Message)
	assert.ErrorIs(t, err, session.ErrInvalidCredentials)
}

func TestAuthClient_SignUp(t *testing.T) {
	tests := []struct {
		name string
		body string
		want session.Identity
	}{
		{
			name: "with session",
			body: `{"access_token":"at","refresh_token":"rt","user":{"id":"u2","email":"n@b.co"}}`,
			want: session.Identity{UID: "u2", Email: "n@b.co", AccessToken: "at", RefreshToken: "rt"},
		},
		{
			name: "confirmation pending",
			body: `{"id":"u3","email":"p@b.co","confirmation_sent_at":"2024-01-01T00:00:00Z"}`,
			want: session.Identity{UID: "u3", Email: "p@b.co"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/auth/v1/signup", r.URL.Path)
				_, _ = io.WriteString(w, tt.body)
			})

			id, err := NewAuthClient(c).SignUp(context.Background(), "x@b.co", "secret1")
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestAuthClient_SignUp_Rejected(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = io.WriteString(w, `{"code":422,"error_code":"user_already_exists","msg":"User already registered"}`)
	})

	_, err := NewAuthClient(c).SignUp(context.Background(), "a@b.co", "secret1")

	var authErr *session.AuthError
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, "User already registered", authErr.Message)
	assert.NotErrorIs(t, err, session.ErrInvalidCredentials)
}

func TestAuthClient_SignOut(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/logout", r.URL.Path)
		assert.Equal(t, "Bearer session-token", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	})

	assert.NoError(t, NewAuthClient(c).SignOut(context.Background(), "session-token"))
}

func TestAuthClient_SignOut_Failure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, "upstream exploded")
	})

	err := NewAuthClient(c).SignOut(context.Background(), "session-token")

	var authErr *session.AuthError
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, "sign_out", authErr.Op)
	assert.Equal(t, "upstream exploded", authErr.Message)
}

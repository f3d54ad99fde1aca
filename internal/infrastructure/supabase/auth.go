package supabase

import (
	"context"
	"errors"
	"net/http"

	"artargets/internal/domain/session"
)

// AuthClient - провайдер аутентификации GoTrue.
type AuthClient struct {
	c *Client
}

func NewAuthClient(c *Client) *AuthClient {
	return &AuthClient{c: c}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// authResponse покрывает оба ответа signup: с сессией и без (ожидает подтверждения email).
type authResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	User         *authUser `json:"user"`

	ID    string `json:"id"`
	Email string `json:"email"`
}

func (r authResponse) identity() session.Identity {
	id := session.Identity{AccessToken: r.AccessToken, RefreshToken: r.RefreshToken}
	if r.User != nil {
		id.UID, id.Email = r.User.ID, r.User.Email
	} else {
		id.UID, id.Email = r.ID, r.Email
	}
	return id
}

func (a *AuthClient) SignIn(ctx context.Context, email, password string) (session.Identity, error) {
	return a.authenticate(ctx, "sign_in", "/auth/v1/token?grant_type=password", email, password)
}

func (a *AuthClient) SignUp(ctx context.Context, email, password string) (session.Identity, error) {
	return a.authenticate(ctx, "sign_up", "/auth/v1/signup", email, password)
}

func (a *AuthClient) authenticate(ctx context.Context, op, path, email, password string) (session.Identity, error) {
	resp, err := a.c.doJSON(ctx, http.MethodPost, path, credentials{Email: email, Password: password}, nil)
	if err != nil {
		return session.Identity{}, &session.AuthError{Op: op, Err: err}
	}

	var out authResponse
	if err := a.c.parseResponse(resp, &out); err != nil {
		return session.Identity{}, authError(op, err)
	}

	id := out.identity()
	if id.UID == "" {
		return session.Identity{}, &session.AuthError{Op: op, Status: resp.StatusCode, Message: "response has no user id"}
	}

	return id, nil
}

func (a *AuthClient) SignOut(ctx context.Context, accessToken string) error {
	header := http.Header{}
	header.Set("Authorization", "Bearer "+accessToken)

	resp, err := a.c.doJSON(ctx, http.MethodPost, "/auth/v1/logout", nil, header)
	if err != nil {
		return &session.AuthError{Op: "sign_out", Err: err}
	}

	if err := a.c.parseResponse(resp, nil); err != nil {
		return authError("sign_out", err)
	}

	return nil
}

func authError(op string, err error) error {
	var apiErr *apiError
	if !errors.As(err, &apiErr) {
		return &session.AuthError{Op: op, Err: err}
	}

	authErr := &session.AuthError{Op: op, Status: apiErr.Status, Message: apiErr.Message, Err: err}
	if op == "sign_in" && (apiErr.Status == http.StatusBadRequest || apiErr.Status == http.StatusUnauthorized) {
		authErr.Err = session.ErrInvalidCredentials
	}
	return authErr
}

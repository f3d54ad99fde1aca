package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/exp/slog"
)

const userAgent = "artargets-cli/1.0"

// TokenSource отдаёт access token текущего пользователя. Пустая строка - анонимный запрос.
type TokenSource func() string

type Client struct {
	client  *http.Client
	log     *slog.Logger
	baseURL string
	apiKey  string
	token   TokenSource
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) {
		c.token = ts
	}
}

// New создаёт клиент хостинга. timeout == 0 - без дедлайна.
func New(baseURL, apiKey string, timeout time.Duration, log *slog.Logger, opts ...Option) *Client {
	c := &Client{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				IdleConnTimeout:     90 * time.Second,
				MaxIdleConnsPerHost: 10,
			},
		},
		log:     log.With("component", "supabase"),
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		token:   func() string { return "" },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) bearer() string {
	if t := c.token(); t != "" {
		return t
	}
	return c.apiKey
}

// doJSON отправляет тело в JSON.
func (c *Client) doJSON(ctx context.Context, method, path string, body any, header http.Header) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	if header == nil {
		header = http.Header{}
	}
	if body != nil {
		header.Set("Content-Type", "application/json")
	}

	return c.doRequest(ctx, method, path, reqBody, header)
}

// requestOption донастраивает запрос перед отправкой.
type requestOption func(*http.Request)

// withContentLength задаёт длину тела, которую http не может вывести сам (например, для *os.File).
func withContentLength(n int64) requestOption {
	return func(r *http.Request) {
		if n > 0 {
			r.ContentLength = n
		}
	}
}

func (c *Client) doRequest(ctx context.Context, method, path string, body io.Reader, header http.Header, opts ...requestOption) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	for _, opt := range opts {
		opt(req)
	}

	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("apikey", c.apiKey)
	if req.Header.Get("Authorization") == "" {
		req.Header.Set("Authorization", "Bearer "+c.bearer())
	}
	req.Header.Set("User-Agent", userAgent)

	c.log.Debug("sending request", "method", method, "url", req.URL.String())

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}

	return resp, nil
}

// parseResponse закрывает тело. Статус >= 400 превращается в *apiError.
func (c *Client) parseResponse(resp *http.Response, result any) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	c.log.Debug("response received", "status", resp.StatusCode, "bytes", len(body))

	if resp.StatusCode >= 400 {
		return newAPIError(resp.StatusCode, body)
	}

	if result != nil && len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}

	return nil
}

// apiError объединяет форматы ошибок PostgREST, Storage и GoTrue.
type apiError struct {
	Status  int
	Code    string
	Message string
	Details string
	Hint    string
	Body    string
}

func (e *apiError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("status %d", e.Status)
}

func newAPIError(status int, body []byte) *apiError {
	e := &apiError{Status: status, Body: string(body)}

	var fields map[string]any
	if err := json.Unmarshal(body, &fields); err != nil {
		e.Message = strings.TrimSpace(string(body))
		return e
	}

	e.Code = firstString(fields, "code", "error_code", "error")
	e.Message = firstString(fields, "message", "msg", "error_description", "error")
	e.Details = firstString(fields, "details")
	e.Hint = firstString(fields, "hint")
	return e
}

func firstString(fields map[string]any, keys ...string) string {
	for _, k := range keys {
		switch v := fields[k].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return fmt.Sprintf("%v", v)
		}
	}
	return ""
}

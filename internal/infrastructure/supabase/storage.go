package supabase

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"artargets/internal/domain/asset"
)

// ObjectStore - бинарное хранилище через Storage REST.
type ObjectStore struct {
	c *Client
}

func NewObjectStore(c *Client) *ObjectStore {
	return &ObjectStore{c: c}
}

func objectPath(bucket, path string) string {
	segments := strings.Split(path, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return "/storage/v1/object/" + url.PathEscape(bucket) + "/" + strings.Join(segments, "/")
}

func (s *ObjectStore) Put(ctx context.Context, bucket, path string, f asset.File, upsert bool) (string, error) {
	contentType := f.ContentType
	if contentType == "" {
		contentType = asset.DefaultContentType
	}

	header := http.Header{}
	header.Set("Content-Type", contentType)
	header.Set("x-upsert", strconv.FormatBool(upsert))
	header.Set("Cache-Control", "max-age=3600")

	resp, err := s.c.doRequest(ctx, http.MethodPut, objectPath(bucket, path), f.Body, header, withContentLength(f.Size))
	if err != nil {
		return "", &asset.UploadError{Err: err}
	}

	var out struct {
		Key string `json:"Key"`
	}
	if err := s.c.parseResponse(resp, &out); err != nil {
		var apiErr *apiError
		if errors.As(err, &apiErr) {
			return "", &asset.UploadError{Status: apiErr.Status, Body: apiErr.Body, Err: err}
		}
		return "", &asset.UploadError{Status: resp.StatusCode, Err: err}
	}

	if stored, ok := strings.CutPrefix(out.Key, bucket+"/"); ok && stored != "" {
		return stored, nil
	}
	return path, nil
}

func (s *ObjectStore) Remove(ctx context.Context, bucket, path string) error {
	resp, err := s.c.doRequest(ctx, http.MethodDelete, objectPath(bucket, path), nil, nil)
	if err != nil {
		return storeError("remove", err)
	}

	if err := s.c.parseResponse(resp, nil); err != nil {
		return storeError("remove", err)
	}

	return nil
}

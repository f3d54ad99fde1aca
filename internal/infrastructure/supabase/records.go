package supabase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"artargets/internal/domain/asset"
	"artargets/internal/domain/target"
)

// RecordStore - таблица таргетов через PostgREST.
type RecordStore struct {
	c     *Client
	table string
}

func NewRecordStore(c *Client, table string) *RecordStore {
	return &RecordStore{c: c, table: table}
}

func (s *RecordStore) path(q url.Values) string {
	p := "/rest/v1/" + url.PathEscape(s.table)
	if len(q) > 0 {
		p += "?" + q.Encode()
	}
	return p
}

func representation() http.Header {
	h := http.Header{}
	h.Set("Prefer", "return=representation")
	return h
}

func (s *RecordStore) List(ctx context.Context, userID string) ([]target.Target, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("user_id", "eq."+userID)

	resp, err := s.c.doJSON(ctx, http.MethodGet, s.path(q), nil, nil)
	if err != nil {
		return nil, storeError("list", err)
	}

	var targets []target.Target
	if err := s.c.parseResponse(resp, &targets); err != nil {
		return nil, storeError("list", err)
	}

	return targets, nil
}

func (s *RecordStore) Insert(ctx context.Context, t target.Target) (target.Target, error) {
	t.ID = ""
	t.Version = 0

	resp, err := s.c.doJSON(ctx, http.MethodPost, s.path(nil), t, representation())
	if err != nil {
		return target.Target{}, storeError("insert", err)
	}

	var rows []target.Target
	if err := s.c.parseResponse(resp, &rows); err != nil {
		return target.Target{}, storeError("insert", err)
	}
	if len(rows) == 0 {
		return target.Target{}, &asset.StoreError{Op: "insert", Message: "empty representation"}
	}

	return rows[0], nil
}

func (s *RecordStore) Update(ctx context.Context, id string, patch target.Patch) (target.Target, error) {
	q := url.Values{}
	q.Set("id", "eq."+id)

	fields := patch.Fields()
	if patch.ExpectedVersion != nil {
		q.Set("version", "eq."+strconv.Itoa(*patch.ExpectedVersion))
		fields["version"] = *patch.ExpectedVersion + 1
	}

	resp, err := s.c.doJSON(ctx, http.MethodPatch, s.path(q), fields, representation())
	if err != nil {
		return target.Target{}, storeError("update", err)
	}

	var rows []target.Target
	if err := s.c.parseResponse(resp, &rows); err != nil {
		return target.Target{}, storeError("update", err)
	}
	if len(rows) == 0 {
		if patch.ExpectedVersion != nil {
			return target.Target{}, target.ErrVersionConflict
		}
		return target.Target{}, fmt.Errorf("update %s: %w", id, target.ErrNotFound)
	}

	return rows[0], nil
}

func (s *RecordStore) Delete(ctx context.Context, id string, expectedVersion *int) error {
	q := url.Values{}
	q.Set("id", "eq."+id)

	var header http.Header
	if expectedVersion != nil {
		q.Set("version", "eq."+strconv.Itoa(*expectedVersion))
		header = representation()
	}

	resp, err := s.c.doJSON(ctx, http.MethodDelete, s.path(q), nil, header)
	if err != nil {
		return storeError("delete", err)
	}

	var rows []target.Target
	if err := s.c.parseResponse(resp, &rows); err != nil {
		return storeError("delete", err)
	}
	if expectedVersion != nil && len(rows) == 0 {
		return target.ErrVersionConflict
	}

	return nil
}

func storeError(op string, err error) error {
	var apiErr *apiError
	if errors.As(err, &apiErr) {
		return &asset.StoreError{
			Op:      op,
			Status:  apiErr.Status,
			Code:    apiErr.Code,
			Message: apiErr.Message,
			Details: apiErr.Details,
			Hint:    apiErr.Hint,
			Err:     err,
		}
	}
	return &asset.StoreError{Op: op, Err: err}
}

package memory

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/google/uuid"

	"artargets/internal/domain/asset"
	"artargets/internal/domain/target"
)

// KV - in-memory хранилище ключ-значение.
type KV struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewKV() *KV {
	return &KV{data: make(map[string]string)}
}

func (m *KV) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *KV) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *KV) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// RecordStore - таблица таргетов в памяти.
type RecordStore struct {
	mu      sync.RWMutex
	records map[string]target.Target
	order   []string
	calls   int
}

func NewRecordStore() *RecordStore {
	return &RecordStore{records: make(map[string]target.Target)}
}

// Calls - число обращений к хранилищу.
func (m *RecordStore) Calls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls
}

func (m *RecordStore) List(_ context.Context, userID string) ([]target.Target, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	result := make([]target.Target, 0)
	for _, id := range m.order {
		if t, ok := m.records[id]; ok && t.UserID == userID {
			result = append(result, t)
		}
	}
	return result, nil
}

func (m *RecordStore) Insert(_ context.Context, t target.Target) (target.Target, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	t.ID = uuid.NewString()
	t.Version = 1
	m.records[t.ID] = t
	m.order = append(m.order, t.ID)
	return t, nil
}

func (m *RecordStore) Update(_ context.Context, id string, patch target.Patch) (target.Target, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	t, ok := m.records[id]
	if !ok {
		return target.Target{}, target.ErrNotFound
	}
	if patch.ExpectedVersion != nil && *patch.ExpectedVersion != t.Version {
		return target.Target{}, target.ErrVersionConflict
	}

	t = patch.Apply(t)
	t.Version++
	m.records[id] = t
	return t, nil
}

func (m *RecordStore) Delete(_ context.Context, id string, expectedVersion *int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	t, ok := m.records[id]
	if !ok {
		return nil
	}
	if expectedVersion != nil && *expectedVersion != t.Version {
		return target.ErrVersionConflict
	}
	delete(m.records, id)
	return nil
}

// ObjectStore - бинарное хранилище в памяти.
type ObjectStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
	calls   int
}

func NewObjectStore() *ObjectStore {
	return &ObjectStore{objects: make(map[string][]byte)}
}

func (m *ObjectStore) Calls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls
}

// Keys возвращает отсортированные ключи вида bucket/path.
func (m *ObjectStore) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.objects))
	for k := range m.objects {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (m *ObjectStore) Put(_ context.Context, bucket, path string, f asset.File, upsert bool) (string, error) {
	var data []byte
	if f.Body != nil {
		var err error
		data, err = io.ReadAll(f.Body)
		if err != nil {
			return "", &asset.UploadError{Err: err}
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	key := bucket + "/" + path
	if _, exists := m.objects[key]; exists && !upsert {
		return "", &asset.UploadError{Status: 409, Body: "The resource already exists"}
	}
	m.objects[key] = data
	return path, nil
}

func (m *ObjectStore) Remove(_ context.Context, bucket, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	key := bucket + "/" + path
	if _, ok := m.objects[key]; !ok {
		return &asset.StoreError{Op: "remove", Status: 404, Message: fmt.Sprintf("object %s not found", key)}
	}
	delete(m.objects, key)
	return nil
}

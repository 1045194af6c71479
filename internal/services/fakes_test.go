package services

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/eshmelev/dropspace/internal/common"
	sc "github.com/eshmelev/dropspace/internal/config"
	"github.com/eshmelev/dropspace/internal/localstore"
	"github.com/eshmelev/dropspace/internal/logging"
	"github.com/eshmelev/dropspace/internal/models"
	"github.com/eshmelev/dropspace/internal/remote/docstore"
	"github.com/eshmelev/dropspace/internal/remote/objectstore"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.DiscardHandler))
}

func testConfig() *sc.Config {
	cfg := &sc.Config{}
	cfg.LoadDefaults()
	return cfg
}

// memStore is an in-memory localstore.Store.
type memStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string][]byte)}
}

func (m *memStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.data[key]
	if !ok {
		return nil, nil
	}
	return value, nil
}

func (m *memStore) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[string][]byte)
	return nil
}

// fakeAuth implements auth.Service through optional function fields; nil
// fields return zero values.
type fakeAuth struct {
	createIdentityFn  func(ctx context.Context, id, email, password, name string) (*models.Identity, error)
	createSessionFn   func(ctx context.Context, email, password string) (*models.Session, error)
	deleteSessionFn   func(ctx context.Context, token string) error
	currentIdentityFn func(ctx context.Context, token string) (*models.Identity, error)
	updatePrefsFn     func(ctx context.Context, token string, patch map[string]string) (*models.Identity, error)

	deletedTokens []string
}

func (f *fakeAuth) CreateIdentity(ctx context.Context, id, email, password, name string) (*models.Identity, error) {
	if f.createIdentityFn == nil {
		return &models.Identity{ID: id, Email: email, Name: name}, nil
	}
	return f.createIdentityFn(ctx, id, email, password, name)
}

func (f *fakeAuth) CreateSession(ctx context.Context, email, password string) (*models.Session, error) {
	if f.createSessionFn == nil {
		return &models.Session{Token: "tok"}, nil
	}
	return f.createSessionFn(ctx, email, password)
}

func (f *fakeAuth) DeleteSession(ctx context.Context, token string) error {
	f.deletedTokens = append(f.deletedTokens, token)
	if f.deleteSessionFn == nil {
		return nil
	}
	return f.deleteSessionFn(ctx, token)
}

func (f *fakeAuth) CurrentIdentity(ctx context.Context, token string) (*models.Identity, error) {
	if f.currentIdentityFn == nil {
		return nil, common.ErrUnauthorized
	}
	return f.currentIdentityFn(ctx, token)
}

func (f *fakeAuth) UpdatePreferences(ctx context.Context, token string, patch map[string]string) (*models.Identity, error) {
	if f.updatePrefsFn == nil {
		return nil, common.ErrUnauthorized
	}
	return f.updatePrefsFn(ctx, token, patch)
}

// fakeObjects implements objectstore.Store in memory.
type fakeObjects struct {
	mu       sync.Mutex
	objects  map[string][]byte
	putErr   error
	urlErr   error
	delErr   error
	deleted  []string
	listing  []objectstore.ObjectInfo
	putCalls int
}

func newFakeObjects() *fakeObjects {
	return &fakeObjects{objects: make(map[string][]byte)}
}

func (f *fakeObjects) Put(_ context.Context, bucket, id string, body io.Reader, size int64) (*objectstore.PutResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.putCalls++
	if f.putErr != nil {
		return nil, f.putErr
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}
	f.objects[id] = data
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return &objectstore.PutResult{
		BucketID:     bucket,
		ObjectID:     id,
		SizeOriginal: size,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func (f *fakeObjects) ViewURL(_ context.Context, bucket, id string) (string, error) {
	if f.urlErr != nil {
		return "", f.urlErr
	}
	return "https://files.test/" + bucket + "/view/" + id, nil
}

func (f *fakeObjects) PreviewURL(_ context.Context, bucket, id string) (string, error) {
	if f.urlErr != nil {
		return "", f.urlErr
	}
	return "https://files.test/" + bucket + "/preview/" + id, nil
}

func (f *fakeObjects) Delete(_ context.Context, _ string, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.delErr != nil {
		return f.delErr
	}
	delete(f.objects, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeObjects) List(_ context.Context, _ string) ([]objectstore.ObjectInfo, error) {
	return f.listing, nil
}

// fakeDocs implements docstore.Store in memory, honoring owner_id equality
// filters and limits.
type fakeDocs struct {
	mu        sync.Mutex
	records   map[string]*models.DocumentRecord
	order     []string
	createErr error
	listErr   error
	getCalls  int
	lastQuery docstore.Query
}

func newFakeDocs() *fakeDocs {
	return &fakeDocs{records: make(map[string]*models.DocumentRecord)}
}

func (f *fakeDocs) Create(_ context.Context, _, _, id string, fields models.DocumentFields) (*models.DocumentRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	rec := &models.DocumentRecord{
		ID:         id,
		OwnerID:    fields.OwnerID,
		Filename:   fields.Filename,
		Extension:  fields.Extension,
		MimeType:   fields.MimeType,
		SizeBytes:  fields.SizeBytes,
		SizeLabel:  fields.SizeLabel,
		ViewURL:    fields.ViewURL,
		PreviewURL: fields.PreviewURL,
		AccessCode: fields.AccessCode,
		Public:     fields.Public,
		CreatedAt:  fields.CreatedAt,
		UpdatedAt:  fields.UpdatedAt,
	}
	f.records[id] = rec
	f.order = append(f.order, id)
	return rec, nil
}

func (f *fakeDocs) Get(_ context.Context, _, _, id string) (*models.DocumentRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls++
	rec, ok := f.records[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return rec, nil
}

func (f *fakeDocs) List(_ context.Context, _, _ string, opts ...docstore.ListOption) (*docstore.ListResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.lastQuery = docstore.ResolveOptions(opts...)

	result := &docstore.ListResult{}
	for _, id := range f.order {
		rec := f.records[id]
		if !matches(rec, f.lastQuery.Filters) {
			continue
		}
		result.Total++
		if len(result.Documents) < f.lastQuery.Limit {
			result.Documents = append(result.Documents, rec)
		}
	}
	return result, nil
}

func matches(rec *models.DocumentRecord, filters []docstore.Filter) bool {
	for _, flt := range filters {
		switch flt.Field {
		case "owner_id":
			if rec.OwnerID != flt.Value {
				return false
			}
		case "public":
			if rec.Public != flt.Value {
				return false
			}
		}
	}
	return true
}

func (f *fakeDocs) Update(_ context.Context, _, _, id string, patch docstore.Patch) (*models.DocumentRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	if patch.Public != nil {
		rec.Public = *patch.Public
	}
	return rec, nil
}

func (f *fakeDocs) Delete(_ context.Context, _, _, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.records[id]; !ok {
		return common.ErrNotFound
	}
	delete(f.records, id)
	for i, existing := range f.order {
		if existing == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

func newTestSlot() *localstore.Slot {
	return localstore.NewSlot(newMemStore())
}

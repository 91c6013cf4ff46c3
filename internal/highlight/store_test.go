package highlight_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"pagemark/internal/highlight"
	"pagemark/internal/highlight/mocks"
	"pagemark/internal/storage"

	"go.uber.org/mock/gomock"
)

func init() {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// newTestStore returns a Store over a fresh SQLite key-value table.
func newTestStore(t *testing.T) *highlight.Store {
	t.Helper()

	db, err := storage.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("storage.New() error = %v", err)
	}
	if err := storage.Migrate(db); err != nil {
		t.Fatalf("storage.Migrate() error = %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	return highlight.NewStore(storage.NewKVRepo(db))
}

func record(id, url, text string, ts int64) highlight.Record {
	return highlight.Record{ID: id, Text: text, URL: url, Title: "Title " + id, Timestamp: ts}
}

func TestStore_EmptyCollection(t *testing.T) {
	store := newTestStore(t)

	all, err := store.GetAll(context.Background())
	if err != nil {
		t.Fatalf("GetAll() error = %v", err)
	}
	if all == nil || len(all) != 0 {
		t.Errorf("GetAll() = %v, want empty slice", all)
	}
}

func TestStore_SaveAndForURL(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	records := []highlight.Record{
		record("a1", "https://a.example/", "alpha", 1),
		record("b1", "https://b.example/", "beta", 2),
		record("a2", "https://a.example/", "gamma", 3),
	}
	for _, r := range records {
		if err := store.Save(ctx, r); err != nil {
			t.Fatalf("Save(%s) error = %v", r.ID, err)
		}
	}

	all, err := store.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll() error = %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("GetAll() len = %d, want 3", len(all))
	}

	forA, err := store.ForURL(ctx, "https://a.example/")
	if err != nil {
		t.Fatalf("ForURL() error = %v", err)
	}
	if len(forA) != 2 || forA[0].ID != "a1" || forA[1].ID != "a2" {
		t.Errorf("ForURL() = %+v, want a1, a2 in stored order", forA)
	}

	got, ok, err := store.Get(ctx, "b1")
	if err != nil || !ok {
		t.Fatalf("Get() = %v, %v, %v", got, ok, err)
	}
	if got != records[1] {
		t.Errorf("Get() = %+v, want %+v", got, records[1])
	}
}

func TestStore_SaveRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	if err := store.Save(ctx, record("a", "https://a.example/", "", 1)); err == nil {
		t.Error("Save() with empty text should fail")
	}

	if err := store.Save(ctx, record("a", "https://a.example/", "hello", 1)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	err := store.Save(ctx, record("a", "https://a.example/", "again", 2))
	var validationErr *highlight.ValidationError
	if !errors.As(err, &validationErr) || validationErr.Field != "id" {
		t.Errorf("Save() duplicate id error = %v, want ValidationError on id", err)
	}
}

func TestStore_DeleteByID(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	for _, r := range []highlight.Record{
		record("a", "https://a.example/", "alpha", 1),
		record("b", "https://a.example/", "beta", 2),
	} {
		if err := store.Save(ctx, r); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}

	removed, err := store.DeleteByID(ctx, "a")
	if err != nil || !removed {
		t.Fatalf("DeleteByID() = %v, %v, want true, nil", removed, err)
	}

	removed, err = store.DeleteByID(ctx, "a")
	if err != nil || removed {
		t.Errorf("DeleteByID() second call = %v, %v, want false, nil", removed, err)
	}

	all, _ := store.GetAll(ctx)
	if len(all) != 1 || all[0].ID != "b" {
		t.Errorf("GetAll() after delete = %+v", all)
	}
}

func TestStore_ClearAll(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	for i, id := range []string{"a", "b", "c"} {
		if err := store.Save(ctx, record(id, "https://a.example/", "text "+id, int64(i))); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}

	n, err := store.ClearAll(ctx)
	if err != nil {
		t.Fatalf("ClearAll() error = %v", err)
	}
	if n != 3 {
		t.Errorf("ClearAll() = %d, want 3", n)
	}

	all, _ := store.GetAll(ctx)
	if len(all) != 0 {
		t.Errorf("GetAll() after ClearAll() = %+v", all)
	}
}

func TestStore_APIKey(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	key, err := store.APIKey(ctx)
	if err != nil || key != "" {
		t.Fatalf("APIKey() unset = %q, %v", key, err)
	}

	if err := store.SetAPIKey(ctx, "  sk-test  "); err != nil {
		t.Fatalf("SetAPIKey() error = %v", err)
	}
	key, err = store.APIKey(ctx)
	if err != nil || key != "sk-test" {
		t.Errorf("APIKey() = %q, %v, want sk-test", key, err)
	}

	// The credential lives beside the collection, not inside it.
	all, _ := store.GetAll(ctx)
	if len(all) != 0 {
		t.Errorf("GetAll() = %+v, want empty", all)
	}
}

func TestStore_BackendFailures(t *testing.T) {
	ctx := context.Background()
	backendErr := errors.New("quota exceeded")

	tests := []struct {
		name      string
		mockSetup func(*mocks.MockBackend)
		call      func(*highlight.Store) error
		wantOp    string
	}{
		{
			name: "read failure on GetAll",
			mockSetup: func(m *mocks.MockBackend) {
				m.EXPECT().Get(gomock.Any(), highlight.CollectionKey).Return(nil, backendErr)
			},
			call: func(s *highlight.Store) error {
				_, err := s.GetAll(ctx)
				return err
			},
			wantOp: "read",
		},
		{
			name: "corrupt collection",
			mockSetup: func(m *mocks.MockBackend) {
				m.EXPECT().Get(gomock.Any(), highlight.CollectionKey).Return([]byte(`{"broken"`), nil)
			},
			call: func(s *highlight.Store) error {
				_, err := s.GetAll(ctx)
				return err
			},
			wantOp: "read",
		},
		{
			name: "write failure on Save",
			mockSetup: func(m *mocks.MockBackend) {
				m.EXPECT().Get(gomock.Any(), highlight.CollectionKey).Return(nil, storage.ErrNotFound)
				m.EXPECT().Set(gomock.Any(), highlight.CollectionKey, gomock.Any()).Return(backendErr)
			},
			call: func(s *highlight.Store) error {
				return s.Save(ctx, record("a", "https://a.example/", "hello", 1))
			},
			wantOp: "write",
		},
		{
			name: "write failure on SetAPIKey",
			mockSetup: func(m *mocks.MockBackend) {
				m.EXPECT().Set(gomock.Any(), highlight.APIKeyKey, gomock.Any()).Return(backendErr)
			},
			call: func(s *highlight.Store) error {
				return s.SetAPIKey(ctx, "sk")
			},
			wantOp: "write",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			backend := mocks.NewMockBackend(ctrl)
			tt.mockSetup(backend)

			err := tt.call(highlight.NewStore(backend))
			var storageErr *highlight.StorageError
			if !errors.As(err, &storageErr) {
				t.Fatalf("error = %v, want StorageError", err)
			}
			if storageErr.Op != tt.wantOp {
				t.Errorf("StorageError.Op = %v, want %v", storageErr.Op, tt.wantOp)
			}
		})
	}
}

func TestStore_DeleteAbsentDoesNotWrite(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	backend := mocks.NewMockBackend(ctrl)
	backend.EXPECT().Get(gomock.Any(), highlight.CollectionKey).Return([]byte(`[{"id":"a","url":"u","text":"t"}]`), nil)
	// No Set expected.

	removed, err := highlight.NewStore(backend).DeleteByID(context.Background(), "missing")
	if err != nil || removed {
		t.Errorf("DeleteByID() = %v, %v, want false, nil", removed, err)
	}
}

func TestStore_ClearAllUnreadableCollection(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	backend := mocks.NewMockBackend(ctrl)
	backend.EXPECT().Get(gomock.Any(), highlight.CollectionKey).Return([]byte(`not json`), nil)
	backend.EXPECT().Set(gomock.Any(), highlight.CollectionKey, []byte(`[]`)).Return(nil)

	n, err := highlight.NewStore(backend).ClearAll(context.Background())
	if err != nil || n != 0 {
		t.Errorf("ClearAll() = %d, %v, want 0, nil", n, err)
	}
}

func TestStore_Indexer(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	indexer := mocks.NewMockIndexer(ctrl)
	store := newTestStore(t).WithIndexer(indexer)

	a := record("a", "https://a.example/", "alpha", time.Now().UnixMilli())
	b := record("b", "https://a.example/", "beta", time.Now().UnixMilli())

	gomock.InOrder(
		indexer.EXPECT().Index(gomock.Any(), a).Return(nil),
		indexer.EXPECT().Index(gomock.Any(), b).Return(errors.New("embedding server down")),
		indexer.EXPECT().Remove(gomock.Any(), []string{"a"}).Return(nil),
		indexer.EXPECT().Remove(gomock.Any(), []string{"b"}).Return(nil),
	)

	if err := store.Save(ctx, a); err != nil {
		t.Fatalf("Save(a) error = %v", err)
	}
	// Index failures never fail the save.
	if err := store.Save(ctx, b); err != nil {
		t.Fatalf("Save(b) error = %v", err)
	}
	if _, err := store.DeleteByID(ctx, "a"); err != nil {
		t.Fatalf("DeleteByID() error = %v", err)
	}
	// Absent id: no indexer call.
	if _, err := store.DeleteByID(ctx, "a"); err != nil {
		t.Fatalf("DeleteByID() error = %v", err)
	}
	if _, err := store.ClearAll(ctx); err != nil {
		t.Fatalf("ClearAll() error = %v", err)
	}
}

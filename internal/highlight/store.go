package highlight

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_backend.go -package=mocks pagemark/internal/highlight Backend,Indexer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"pagemark/internal/contextutil"
	"pagemark/internal/storage"
)

const (
	// CollectionKey is the backend key holding the full record sequence.
	CollectionKey = "highlights"
	// APIKeyKey is the backend key holding the definition credential.
	APIKeyKey = "openai_api_key"
)

// Backend is the key-value interface the store persists through.
// Get returns storage.ErrNotFound for a key that was never written.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Indexer is notified after records are written or removed.
type Indexer interface {
	Index(ctx context.Context, record Record) error
	Remove(ctx context.Context, ids []string) error
}

// Store maps record ids to records. The whole collection lives under one
// backend key and every mutation is a read-modify-write of that key, so two
// contexts saving at the same moment can lose one of the updates.
type Store struct {
	backend Backend
	indexer Indexer
}

// NewStore creates a Store over backend.
func NewStore(backend Backend) *Store {
	return &Store{backend: backend}
}

// WithIndexer attaches a secondary index that follows every write.
func (s *Store) WithIndexer(indexer Indexer) *Store {
	s.indexer = indexer
	return s
}

// GetAll returns every record in stored order.
func (s *Store) GetAll(ctx context.Context) ([]Record, error) {
	raw, err := s.backend.Get(ctx, CollectionKey)
	if errors.Is(err, storage.ErrNotFound) {
		return []Record{}, nil
	}
	if err != nil {
		return nil, &StorageError{Op: "read", Key: CollectionKey, Err: err}
	}

	records, err := decodeCollection(raw)
	if err != nil {
		return nil, &StorageError{Op: "read", Key: CollectionKey, Err: err}
	}
	return records, nil
}

// ForURL returns the records captured on url, in stored order.
func (s *Store) ForURL(ctx context.Context, url string) ([]Record, error) {
	all, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(all))
	for _, r := range all {
		if r.URL == url {
			records = append(records, r)
		}
	}
	return records, nil
}

// Get looks up a record by id.
func (s *Store) Get(ctx context.Context, id string) (Record, bool, error) {
	all, err := s.GetAll(ctx)
	if err != nil {
		return Record{}, false, err
	}
	for _, r := range all {
		if r.ID == id {
			return r, true, nil
		}
	}
	return Record{}, false, nil
}

// Save appends record to the collection and writes it back.
func (s *Store) Save(ctx context.Context, record Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	all, err := s.GetAll(ctx)
	if err != nil {
		return err
	}
	for _, r := range all {
		if r.ID == record.ID {
			return &ValidationError{Field: "id", Message: "already exists"}
		}
	}

	if err := s.write(ctx, append(all, record)); err != nil {
		return err
	}

	contextutil.LoggerFromContext(ctx).DebugContext(ctx, "highlight saved", "id", record.ID, "url", record.URL)

	if s.indexer != nil {
		if err := s.indexer.Index(ctx, record); err != nil {
			contextutil.LoggerFromContext(ctx).WarnContext(ctx, "failed to index highlight", "id", record.ID, "error", err)
		}
	}
	return nil
}

// DeleteByID removes the record with id. It reports whether a record was
// removed; deleting an absent id writes nothing.
func (s *Store) DeleteByID(ctx context.Context, id string) (bool, error) {
	all, err := s.GetAll(ctx)
	if err != nil {
		return false, err
	}

	kept := make([]Record, 0, len(all))
	for _, r := range all {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(all) {
		return false, nil
	}

	if err := s.write(ctx, kept); err != nil {
		return false, err
	}

	contextutil.LoggerFromContext(ctx).DebugContext(ctx, "highlight deleted", "id", id)

	if s.indexer != nil {
		if err := s.indexer.Remove(ctx, []string{id}); err != nil {
			contextutil.LoggerFromContext(ctx).WarnContext(ctx, "failed to unindex highlight", "id", id, "error", err)
		}
	}
	return true, nil
}

// ClearAll writes back an empty collection and returns how many records it
// held. An unreadable collection is still cleared.
func (s *Store) ClearAll(ctx context.Context) (int, error) {
	logger := contextutil.LoggerFromContext(ctx)

	all, err := s.GetAll(ctx)
	if err != nil {
		logger.WarnContext(ctx, "clearing unreadable highlight collection", "error", err)
		all = nil
	}

	if err := s.write(ctx, []Record{}); err != nil {
		return 0, err
	}

	if s.indexer != nil && len(all) > 0 {
		ids := make([]string, len(all))
		for i, r := range all {
			ids[i] = r.ID
		}
		if err := s.indexer.Remove(ctx, ids); err != nil {
			logger.WarnContext(ctx, "failed to unindex highlights", "count", len(ids), "error", err)
		}
	}
	return len(all), nil
}

// APIKey returns the stored definition credential, or "" if none is set.
func (s *Store) APIKey(ctx context.Context) (string, error) {
	raw, err := s.backend.Get(ctx, APIKeyKey)
	if errors.Is(err, storage.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", &StorageError{Op: "read", Key: APIKeyKey, Err: err}
	}

	var key string
	if err := json.Unmarshal(raw, &key); err != nil {
		return "", &StorageError{Op: "read", Key: APIKeyKey, Err: err}
	}
	return key, nil
}

// SetAPIKey stores the definition credential.
func (s *Store) SetAPIKey(ctx context.Context, key string) error {
	raw, err := json.Marshal(strings.TrimSpace(key))
	if err != nil {
		return fmt.Errorf("failed to encode api key: %w", err)
	}
	if err := s.backend.Set(ctx, APIKeyKey, raw); err != nil {
		return &StorageError{Op: "write", Key: APIKeyKey, Err: err}
	}
	return nil
}

func (s *Store) write(ctx context.Context, records []Record) error {
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode highlights: %w", err)
	}
	if err := s.backend.Set(ctx, CollectionKey, raw); err != nil {
		return &StorageError{Op: "write", Key: CollectionKey, Err: err}
	}
	return nil
}

// decodeCollection accepts the flat record sequence and also the older
// layout keyed by page URL, which it flattens in URL order.
func decodeCollection(raw []byte) ([]Record, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return []Record{}, nil
	}

	switch raw[0] {
	case '[':
		var records []Record
		if err := json.Unmarshal(raw, &records); err != nil {
			return nil, fmt.Errorf("failed to decode highlights: %w", err)
		}
		return records, nil
	case '{':
		var byURL map[string][]Record
		if err := json.Unmarshal(raw, &byURL); err != nil {
			return nil, fmt.Errorf("failed to decode highlights: %w", err)
		}
		urls := make([]string, 0, len(byURL))
		for url := range byURL {
			urls = append(urls, url)
		}
		sort.Strings(urls)

		records := []Record{}
		for _, url := range urls {
			records = append(records, byURL[url]...)
		}
		return records, nil
	default:
		return nil, fmt.Errorf("unexpected highlights value starting with %q", raw[0])
	}
}

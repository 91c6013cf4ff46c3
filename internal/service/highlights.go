package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_highlight_store.go -package=mocks pagemark/internal/service HighlightStore,Notifier,SimilarSearcher
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_highlight_service.go -package=mocks -mock_names=HighlightService=MockHighlightService pagemark/internal/service HighlightService

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"pagemark/internal/contextutil"
	"pagemark/internal/highlight"
)

const (
	defaultSimilarLimit = 5
	maxSimilarLimit     = 50
)

// HighlightStore is the part of the highlight store the management view
// needs.
type HighlightStore interface {
	GetAll(ctx context.Context) ([]highlight.Record, error)
	DeleteByID(ctx context.Context, id string) (bool, error)
	ClearAll(ctx context.Context) (int, error)
	SetAPIKey(ctx context.Context, key string) error
}

// Notifier tells the active page to unwrap the marker of a deleted record.
type Notifier interface {
	NotifyRemove(ctx context.Context, id string) error
}

// SimilarSearcher finds records semantically close to a query.
type SimilarSearcher interface {
	Similar(ctx context.Context, query string, k int) ([]highlight.Match, error)
}

// ListResult is one rendering of the management view.
type ListResult struct {
	Highlights []highlight.Record `json:"highlights"`
	// Total is the size of the whole collection, Count the number shown.
	Total     int  `json:"total"`
	Count     int  `json:"count"`
	Empty     bool `json:"empty"`
	NoResults bool `json:"noResults"`
}

// ExportResult is a downloadable export.
type ExportResult struct {
	Document highlight.Export
	FileName string
}

// HighlightService backs the management view.
type HighlightService interface {
	// List returns the records matching query, newest first.
	List(ctx context.Context, query string) (ListResult, error)
	// Delete removes one record and asks the active page to unwrap it.
	Delete(ctx context.Context, id string) (bool, error)
	// ClearAll removes every record and returns how many there were.
	ClearAll(ctx context.Context) (int, error)
	// Export snapshots the whole collection.
	Export(ctx context.Context) (ExportResult, error)
	// Similar runs a semantic search.
	Similar(ctx context.Context, query string, k int) ([]highlight.Match, error)
	// SetAPIKey stores the definition credential.
	SetAPIKey(ctx context.Context, key string) error
}

// highlightService implements HighlightService.
type highlightService struct {
	store    HighlightStore
	notifier Notifier
	searcher SimilarSearcher
	now      func() time.Time
}

// NewHighlightService creates a new HighlightService. notifier and searcher
// may be nil.
func NewHighlightService(store HighlightStore, notifier Notifier, searcher SimilarSearcher) HighlightService {
	return &highlightService{
		store:    store,
		notifier: notifier,
		searcher: searcher,
		now:      time.Now,
	}
}

func (s *highlightService) List(ctx context.Context, query string) (ListResult, error) {
	logger := contextutil.LoggerFromContext(ctx)

	all, err := s.store.GetAll(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "failed to load highlights", "error", err)
		return ListResult{}, err
	}

	matched := make([]highlight.Record, 0, len(all))
	for _, r := range all {
		if r.Matches(query) {
			matched = append(matched, r)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Timestamp > matched[j].Timestamp
	})

	return ListResult{
		Highlights: matched,
		Total:      len(all),
		Count:      len(matched),
		Empty:      len(all) == 0,
		NoResults:  len(all) > 0 && len(matched) == 0,
	}, nil
}

func (s *highlightService) Delete(ctx context.Context, id string) (bool, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if strings.TrimSpace(id) == "" {
		return false, &ValidationError{Field: "id", Message: "cannot be empty"}
	}

	removed, err := s.store.DeleteByID(ctx, id)
	if err != nil {
		logger.ErrorContext(ctx, "failed to delete highlight", "id", id, "error", err)
		return false, err
	}

	// Best effort: with no page open there is no marker to unwrap.
	if s.notifier != nil {
		if err := s.notifier.NotifyRemove(ctx, id); err != nil {
			logger.WarnContext(ctx, "failed to notify active page", "id", id, "error", err)
		}
	}

	logger.InfoContext(ctx, "highlight deleted", "id", id, "removed", removed)
	return removed, nil
}

func (s *highlightService) ClearAll(ctx context.Context) (int, error) {
	logger := contextutil.LoggerFromContext(ctx)

	n, err := s.store.ClearAll(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "failed to clear highlights", "error", err)
		return 0, err
	}

	logger.InfoContext(ctx, "highlights cleared", "count", n)
	return n, nil
}

func (s *highlightService) Export(ctx context.Context) (ExportResult, error) {
	all, err := s.store.GetAll(ctx)
	if err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to load highlights for export", "error", err)
		return ExportResult{}, err
	}

	now := s.now()
	return ExportResult{
		Document: highlight.NewExport(all, now),
		FileName: highlight.FileName(now),
	}, nil
}

func (s *highlightService) Similar(ctx context.Context, query string, k int) ([]highlight.Match, error) {
	if s.searcher == nil {
		return nil, ErrUnavailable
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, &ValidationError{Field: "q", Message: "cannot be empty"}
	}
	if k <= 0 {
		k = defaultSimilarLimit
	}
	if k > maxSimilarLimit {
		k = maxSimilarLimit
	}

	matches, err := s.searcher.Similar(ctx, query, k)
	if err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "semantic search failed", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrExternalService, err)
	}
	return matches, nil
}

func (s *highlightService) SetAPIKey(ctx context.Context, key string) error {
	if strings.TrimSpace(key) == "" {
		return &ValidationError{Field: "apiKey", Message: "cannot be empty"}
	}
	if err := s.store.SetAPIKey(ctx, key); err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to store API key", "error", err)
		return err
	}
	return nil
}

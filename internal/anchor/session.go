// Package anchor turns selections into persisted, removable highlight
// markers inside a page document and rebuilds those markers from stored
// records on later visits.
package anchor

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_store.go -package=mocks pagemark/internal/anchor RecordStore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/net/html"

	"pagemark/internal/contextutil"
	"pagemark/internal/dom"
	"pagemark/internal/highlight"
)

// ErrClosed is returned by every operation on a closed session.
var ErrClosed = errors.New("session closed")

// RecordStore is the part of the highlight store a session needs.
type RecordStore interface {
	ForURL(ctx context.Context, url string) ([]highlight.Record, error)
	Save(ctx context.Context, record highlight.Record) error
	DeleteByID(ctx context.Context, id string) (bool, error)
}

// RestoreReport lists the outcome of one restoration pass.
type RestoreReport struct {
	Restored []string `json:"restored"`
	Skipped  []string `json:"skipped"`
}

// Session holds the state of one loaded page for as long as it is open.
// A Session must not be used by more than one goroutine at a time.
type Session struct {
	url       string
	title     string
	doc       *html.Node
	store     RecordStore
	now       func() time.Time
	selection *Range
	closed    bool
}

// NewSession opens a session for doc, loaded from url.
func NewSession(url string, doc *html.Node, store RecordStore) *Session {
	ensureStyle(doc)
	return &Session{
		url:   url,
		title: dom.Title(doc),
		doc:   doc,
		store: store,
		now:   time.Now,
	}
}

func (s *Session) URL() string {
	return s.url
}

func (s *Session) Title() string {
	return s.title
}

// Document returns the live document root.
func (s *Session) Document() *html.Node {
	return s.doc
}

// Select makes r the active selection.
func (s *Session) Select(r Range) {
	s.selection = &r
}

// Selection returns the active selection, or nil.
func (s *Session) Selection() *Range {
	return s.selection
}

// Close tears the session down. Later operations return ErrClosed.
func (s *Session) Close() {
	s.closed = true
	s.selection = nil
}

// Markers returns every marker in the document, in document order.
func (s *Session) Markers() []*html.Node {
	return dom.FindAll(s.doc, IsMarker)
}

// MarkerByID returns the marker carrying id, or nil.
func (s *Session) MarkerByID(id string) *html.Node {
	return dom.Find(s.doc, func(n *html.Node) bool {
		return IsMarker(n) && MarkerID(n) == id
	})
}

// CaptureSelection wraps r in a marker and saves a record for it. The
// structural wrap is tried first; when the boundaries do not share a
// parent the selection must have all of its text in one text node.
func (s *Session) CaptureSelection(ctx context.Context, r Range) (*highlight.Record, error) {
	if s.closed {
		return nil, ErrClosed
	}
	logger := contextutil.LoggerFromContext(ctx)

	start, err := resolve(s.doc, r.Start)
	if err != nil {
		return nil, fmt.Errorf("%w: start: %v", highlight.ErrDomStructure, err)
	}
	end, err := resolve(s.doc, r.End)
	if err != nil {
		return nil, fmt.Errorf("%w: end: %v", highlight.ErrDomStructure, err)
	}

	spans := collectSpans(s.doc, start, end)
	text := strings.TrimSpace(joinSpans(spans))
	if err := highlight.ValidateText(text); err != nil {
		return nil, err
	}

	if insideMarker(start.node) || insideMarker(end.node) {
		logger.DebugContext(ctx, "selection touches an existing highlight")
		return nil, fmt.Errorf("%w: %v", highlight.ErrDomStructure, errNestsMarker)
	}
	for _, sp := range spans {
		if insideMarker(sp.node) && strings.TrimSpace(sp.text()) != "" {
			logger.DebugContext(ctx, "selection overlaps an existing highlight")
			return nil, fmt.Errorf("%w: %v", highlight.ErrDomStructure, errNestsMarker)
		}
	}

	record := highlight.NewRecord(text, s.url, s.title, "", s.now())

	marker, err := wrapRange(start, end, record.ID)
	if err != nil {
		logger.DebugContext(ctx, "structural wrap failed, trying single text node", "error", err)
		marker, err = wrapSingleNode(spans, record.ID)
	}
	if err != nil {
		logger.DebugContext(ctx, "could not highlight selection, it may span multiple elements", "error", err)
		return nil, fmt.Errorf("%w: %v", highlight.ErrDomStructure, err)
	}
	record.LocatorHint = dom.XPath(marker.Parent)

	if err := s.store.Save(ctx, record); err != nil {
		unwrapChildren(marker)
		logger.ErrorContext(ctx, "failed to save highlight", "error", err)
		return nil, err
	}

	s.selection = nil
	logger.InfoContext(ctx, "highlight captured", "id", record.ID, "url", s.url, "text_length", len(text))
	return &record, nil
}

// CaptureActive captures the active selection.
func (s *Session) CaptureActive(ctx context.Context) (*highlight.Record, error) {
	if s.selection == nil {
		return nil, &highlight.ValidationError{Field: "selection", Message: "nothing is selected"}
	}
	return s.CaptureSelection(ctx, *s.selection)
}

// RemoveMarker replaces marker with its text, merges the surrounding text
// nodes and deletes the record. A marker that no longer has a parent was
// already removed and is left alone.
func (s *Session) RemoveMarker(ctx context.Context, marker *html.Node) (bool, error) {
	if s.closed {
		return false, ErrClosed
	}
	if !IsMarker(marker) {
		return false, fmt.Errorf("%w: node is not a highlight marker", highlight.ErrDomStructure)
	}
	parent := marker.Parent
	if parent == nil {
		return false, nil
	}

	id := MarkerID(marker)
	if err := dom.ReplaceChild(parent, dom.NewText(dom.TextContent(marker)), marker); err != nil {
		return false, fmt.Errorf("%w: %v", highlight.ErrDomStructure, err)
	}
	dom.Normalize(parent)

	logger := contextutil.LoggerFromContext(ctx)
	deleted, err := s.store.DeleteByID(ctx, id)
	if err != nil {
		logger.ErrorContext(ctx, "failed to delete highlight", "id", id, "error", err)
		return true, err
	}
	logger.InfoContext(ctx, "highlight removed", "id", id, "deleted", deleted)
	return true, nil
}

// RemoveByID removes the marker carrying id, if the document has one.
func (s *Session) RemoveByID(ctx context.Context, id string) (bool, error) {
	if s.closed {
		return false, ErrClosed
	}
	marker := s.MarkerByID(id)
	if marker == nil {
		return false, nil
	}
	return s.RemoveMarker(ctx, marker)
}

// HandleClick removes the marker that node belongs to, if any.
func (s *Session) HandleClick(ctx context.Context, node *html.Node) (bool, error) {
	marker := dom.Closest(node, IsMarker)
	if marker == nil {
		return false, nil
	}
	return s.RemoveMarker(ctx, marker)
}

// HandleKey removes a focused marker when key is "Delete".
func (s *Session) HandleKey(ctx context.Context, node *html.Node, key string) (bool, error) {
	if key != "Delete" || !IsMarker(node) {
		return false, nil
	}
	return s.RemoveMarker(ctx, node)
}

// RestoreAll re-wraps the stored highlights of this page. Records are
// handled in stored order and each wraps its first occurrence only. A
// record that cannot be restored is skipped; only a failed store read
// aborts the pass.
func (s *Session) RestoreAll(ctx context.Context) (RestoreReport, error) {
	if s.closed {
		return RestoreReport{}, ErrClosed
	}
	logger := contextutil.LoggerFromContext(ctx)

	records, err := s.store.ForURL(ctx, s.url)
	if err != nil {
		logger.ErrorContext(ctx, "failed to load highlights", "url", s.url, "error", err)
		return RestoreReport{}, err
	}

	report := RestoreReport{Restored: []string{}, Skipped: []string{}}
	for _, record := range records {
		ok, err := s.restore(record)
		switch {
		case err != nil:
			logger.WarnContext(ctx, "could not restore highlight", "id", record.ID, "error", err)
			report.Skipped = append(report.Skipped, record.ID)
		case !ok:
			logger.DebugContext(ctx, "highlight text not found on page", "id", record.ID)
			report.Skipped = append(report.Skipped, record.ID)
		default:
			report.Restored = append(report.Restored, record.ID)
		}
	}

	logger.InfoContext(ctx, "highlights restored",
		"url", s.url,
		"restored", len(report.Restored),
		"skipped", len(report.Skipped))
	return report, nil
}

func (s *Session) restore(record highlight.Record) (ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			ok, err = false, fmt.Errorf("%w: recovered: %v", highlight.ErrDomStructure, r)
		}
	}()

	if s.MarkerByID(record.ID) != nil {
		return true, nil
	}
	if strings.TrimSpace(record.Text) == "" {
		return false, nil
	}

	if n, at := findText(s.searchRoot(), record.Text); n != nil {
		if _, err := wrapText(n, at, at+len(record.Text), record.ID); err != nil {
			return false, fmt.Errorf("%w: %v", highlight.ErrDomStructure, err)
		}
		return true, nil
	}

	if record.LocatorHint == "" {
		return false, nil
	}
	el := dom.ResolveXPath(s.doc, record.LocatorHint)
	if el == nil || insideMarker(el) {
		return false, nil
	}
	start, end, found := locateIn(el, record.Text)
	if !found {
		return false, nil
	}
	if _, err := wrapRange(start, end, record.ID); err != nil {
		return false, fmt.Errorf("%w: %v", highlight.ErrDomStructure, err)
	}
	return true, nil
}

func (s *Session) searchRoot() *html.Node {
	if body := dom.Body(s.doc); body != nil {
		return body
	}
	return s.doc
}

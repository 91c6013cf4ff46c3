package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_page_service.go -package=mocks -mock_names=PageService=MockPageService pagemark/internal/service PageService

import (
	"context"
	"strings"

	"golang.org/x/net/html"

	"pagemark/internal/anchor"
	"pagemark/internal/contextutil"
	"pagemark/internal/dom"
	"pagemark/internal/highlight"
)

// DocumentLoader parses submitted page content of the given format.
type DocumentLoader func(content, format string) (*html.Node, error)

// PageRequest carries a page submitted for annotation.
type PageRequest struct {
	URL     string
	Content string
	Format  string // "html" or "markdown"
}

// CaptureRequest selects the first occurrence of Quote in the page.
type CaptureRequest struct {
	PageRequest
	Quote string
}

// RemoveRequest names the marker to unwrap.
type RemoveRequest struct {
	PageRequest
	ID string
}

// PageResult is the annotated document after an operation.
type PageResult struct {
	Content string
	Report  anchor.RestoreReport
	Record  *highlight.Record
	Removed bool
}

// PageService runs the anchor engine over submitted documents.
type PageService interface {
	// Restore re-wraps the stored highlights of the page.
	Restore(ctx context.Context, req PageRequest) (PageResult, error)
	// Capture restores the page, then highlights the quoted text.
	Capture(ctx context.Context, req CaptureRequest) (PageResult, error)
	// Remove restores the page, then unwraps the marker with the given id
	// and deletes its record.
	Remove(ctx context.Context, req RemoveRequest) (PageResult, error)
}

// pageService implements PageService.
type pageService struct {
	store anchor.RecordStore
	load  DocumentLoader
}

// NewPageService creates a new PageService.
func NewPageService(store anchor.RecordStore, load DocumentLoader) PageService {
	return &pageService{store: store, load: load}
}

func (s *pageService) Restore(ctx context.Context, req PageRequest) (PageResult, error) {
	session, report, err := s.open(ctx, req)
	if err != nil {
		return PageResult{}, err
	}
	defer session.Close()

	return s.result(session, report)
}

func (s *pageService) Capture(ctx context.Context, req CaptureRequest) (PageResult, error) {
	if strings.TrimSpace(req.Quote) == "" {
		return PageResult{}, &ValidationError{Field: "quote", Message: "cannot be empty"}
	}

	session, report, err := s.open(ctx, req.PageRequest)
	if err != nil {
		return PageResult{}, err
	}
	defer session.Close()

	r, ok := anchor.FindText(dom.Body(session.Document()), req.Quote)
	if !ok {
		return PageResult{}, &ValidationError{Field: "quote", Message: "not found in page"}
	}

	record, err := session.CaptureSelection(ctx, r)
	if err != nil {
		return PageResult{}, err
	}

	res, err := s.result(session, report)
	res.Record = record
	return res, err
}

func (s *pageService) Remove(ctx context.Context, req RemoveRequest) (PageResult, error) {
	if strings.TrimSpace(req.ID) == "" {
		return PageResult{}, &ValidationError{Field: "id", Message: "cannot be empty"}
	}

	session, report, err := s.open(ctx, req.PageRequest)
	if err != nil {
		return PageResult{}, err
	}
	defer session.Close()

	removed, err := session.RemoveByID(ctx, req.ID)
	if err != nil {
		return PageResult{}, err
	}

	res, err := s.result(session, report)
	res.Removed = removed
	return res, err
}

// open loads the document and restores its highlights.
func (s *pageService) open(ctx context.Context, req PageRequest) (*anchor.Session, anchor.RestoreReport, error) {
	if strings.TrimSpace(req.URL) == "" {
		return nil, anchor.RestoreReport{}, &ValidationError{Field: "url", Message: "cannot be empty"}
	}

	doc, err := s.load(req.Content, req.Format)
	if err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "failed to load page", "url", req.URL, "error", err)
		return nil, anchor.RestoreReport{}, &ValidationError{Field: "content", Message: err.Error()}
	}

	session := anchor.NewSession(req.URL, doc, s.store)
	report, err := session.RestoreAll(ctx)
	if err != nil {
		session.Close()
		return nil, anchor.RestoreReport{}, err
	}
	return session, report, nil
}

func (s *pageService) result(session *anchor.Session, report anchor.RestoreReport) (PageResult, error) {
	out, err := dom.Render(session.Document())
	if err != nil {
		return PageResult{}, WrapError(err, "failed to render page")
	}
	return PageResult{Content: out, Report: report}, nil
}

package page

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/net/html"

	"pagemark/internal/anchor"
	"pagemark/internal/contextutil"
	"pagemark/internal/dom"
	"pagemark/internal/highlight"
	"pagemark/internal/messaging"
	"pagemark/internal/service"
)

// ErrNotConnected is returned when a tab needs the hub but has no connection.
var ErrNotConnected = errors.New("not connected to hub")

// HubClient is the connection a tab keeps to the hub.
type HubClient interface {
	Send(ctx context.Context, msg messaging.Message) error
	Request(ctx context.Context, msg messaging.Message) (messaging.Message, error)
	Close() error
}

// Options configures a tab.
type Options struct {
	URL   string
	Doc   *html.Node
	Store anchor.RecordStore
	// DismissAfter is how long definition popups stay up.
	DismissAfter time.Duration
	// OnChange is called with the rendered document after every change.
	OnChange func(content string)
}

// Tab is one live page context. It owns the anchor session and the
// definition cache of its page; both live until Close. Tab serializes
// access to the document and is safe for concurrent use.
type Tab struct {
	mu           sync.Mutex
	session      *anchor.Session
	cache        *service.DefinitionCache
	hub          HubClient
	popup        *Popup
	dismissAfter time.Duration
	onChange     func(string)
	closed       bool
}

// Open creates a tab for the document and restores its highlights.
func Open(ctx context.Context, opts Options) (*Tab, anchor.RestoreReport, error) {
	if opts.Doc == nil {
		return nil, anchor.RestoreReport{}, fmt.Errorf("document is required")
	}
	if opts.DismissAfter <= 0 {
		opts.DismissAfter = DefaultDismissAfter
	}

	t := &Tab{
		session:      anchor.NewSession(opts.URL, opts.Doc, opts.Store),
		cache:        service.NewDefinitionCache(),
		dismissAfter: opts.DismissAfter,
		onChange:     opts.OnChange,
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	report, err := t.session.RestoreAll(ctx)
	if err != nil {
		t.session.Close()
		return nil, anchor.RestoreReport{}, err
	}
	if len(report.Restored) > 0 {
		t.changed(ctx)
	}
	return t, report, nil
}

// Connect dials the hub and registers the tab, which becomes active.
func (t *Tab) Connect(ctx context.Context, hubURL string) error {
	client, err := messaging.Dial(ctx, hubURL, t.handle)
	if err != nil {
		return err
	}
	return t.Attach(ctx, client)
}

// Attach registers the tab over an existing hub connection.
func (t *Tab) Attach(ctx context.Context, client HubClient) error {
	t.mu.Lock()
	t.hub = client
	url, title := t.session.URL(), t.session.Title()
	t.mu.Unlock()

	reply, err := client.Request(ctx, messaging.Message{Action: messaging.ActionRegister, URL: url, Title: title})
	if err != nil {
		return fmt.Errorf("failed to register tab: %w", err)
	}
	if err := reply.Err(); err != nil {
		return fmt.Errorf("failed to register tab: %w", err)
	}
	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "tab registered with hub", "url", url)
	return nil
}

// Activate makes this tab the one the hub sends to.
func (t *Tab) Activate(ctx context.Context) error {
	t.mu.Lock()
	hub := t.hub
	t.mu.Unlock()
	if hub == nil {
		return ErrNotConnected
	}
	return hub.Send(ctx, messaging.Message{Action: messaging.ActionActivate})
}

// handle reacts to messages pushed by the hub.
func (t *Tab) handle(ctx context.Context, msg messaging.Message) {
	logger := contextutil.LoggerFromContext(ctx)

	switch msg.Action {
	case messaging.ActionRemoveHighlight:
		if _, err := t.Remove(ctx, msg.HighlightID); err != nil {
			logger.WarnContext(ctx, "failed to remove highlight", "id", msg.HighlightID, "error", err)
		}
	case messaging.ActionGetDefinition:
		if _, err := t.ShowDefinition(ctx, msg.Text); err != nil {
			logger.WarnContext(ctx, "failed to show definition", "error", err)
		}
	default:
		logger.DebugContext(ctx, "ignoring message", "action", msg.Action)
	}
}

// Capture highlights the first occurrence of quote.
func (t *Tab) Capture(ctx context.Context, quote string) (*highlight.Record, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil, anchor.ErrClosed
	}

	r, ok := anchor.FindText(dom.Body(t.session.Document()), quote)
	if !ok {
		return nil, &highlight.ValidationError{Field: "quote", Message: "not found in page"}
	}
	t.session.Select(r)
	record, err := t.session.CaptureActive(ctx)
	if err != nil {
		return nil, err
	}
	t.changed(ctx)
	return record, nil
}

// Remove unwraps the marker with id. When the record was already deleted
// elsewhere the store delete is a no-op.
func (t *Tab) Remove(ctx context.Context, id string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return false, anchor.ErrClosed
	}

	removed, err := t.session.RemoveByID(ctx, id)
	if removed {
		t.changed(ctx)
	}
	return removed, err
}

// ShowDefinition shows a popup with the definition of text, from the cache
// or fetched through the hub. A failed fetch is shown in the popup and also
// returned.
func (t *Tab) ShowDefinition(ctx context.Context, text string) (*Popup, error) {
	t.mu.Lock()
	hub := t.hub
	closed := t.closed
	t.mu.Unlock()
	if closed {
		return nil, anchor.ErrClosed
	}

	def, err := t.definition(ctx, hub, text)

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil, anchor.ErrClosed
	}

	var popup *Popup
	if err != nil {
		popup = newPopup(text, "", err.Error())
	} else {
		popup = newPopup(text, def, "")
	}
	t.show(ctx, popup)
	return popup, err
}

func (t *Tab) definition(ctx context.Context, hub HubClient, text string) (string, error) {
	if def, ok := t.cache.Get(text); ok {
		return def, nil
	}
	if hub == nil {
		return "", ErrNotConnected
	}

	reply, err := hub.Request(ctx, messaging.Message{Action: messaging.ActionFetchDefinition, Text: text})
	if err != nil {
		return "", &highlight.NetworkError{Err: err}
	}
	if err := reply.Err(); err != nil {
		return "", err
	}
	t.cache.Put(text, reply.Definition)
	return reply.Definition, nil
}

// show replaces the current popup and schedules its dismissal.
// Callers hold t.mu.
func (t *Tab) show(ctx context.Context, popup *Popup) {
	if t.popup != nil {
		t.popup.detach()
	}
	body := dom.Body(t.session.Document())
	if body == nil {
		return
	}
	body.AppendChild(popup.node)
	t.popup = popup
	t.changed(ctx)

	popup.timer = time.AfterFunc(t.dismissAfter, func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		if t.closed || t.popup != popup {
			return
		}
		popup.detach()
		t.popup = nil
		t.changed(ctx)
	})
}

// Popup returns the popup on screen, if any.
func (t *Tab) Popup() *Popup {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.popup
}

// Render returns the current document as HTML.
func (t *Tab) Render() (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return dom.Render(t.session.Document())
}

// CachedDefinitions returns the number of definitions cached for this page.
func (t *Tab) CachedDefinitions() int {
	return t.cache.Len()
}

// changed reports the new document to OnChange. Callers hold t.mu.
func (t *Tab) changed(ctx context.Context) {
	if t.onChange == nil {
		return
	}
	out, err := dom.Render(t.session.Document())
	if err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to render page", "error", err)
		return
	}
	t.onChange(out)
}

// Close dismisses any popup, disconnects from the hub and ends the session.
func (t *Tab) Close() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}
	t.closed = true
	if t.popup != nil {
		t.popup.detach()
		t.popup = nil
	}
	hub := t.hub
	t.hub = nil
	t.session.Close()
	t.mu.Unlock()

	if hub != nil {
		return hub.Close()
	}
	return nil
}

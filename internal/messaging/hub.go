package messaging

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"pagemark/internal/contextutil"
	"pagemark/internal/service"
)

const writeTimeout = 5 * time.Second

// Definer fetches definitions for fetchDefinition requests.
type Definer interface {
	Define(ctx context.Context, cache *service.DefinitionCache, text string) (string, error)
}

// TabInfo describes a connected tab.
type TabInfo struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Active      bool      `json:"active"`
	ConnectedAt time.Time `json:"connectedAt"`
}

// conn is one connected tab. Writes are serialized by writeMu.
type conn struct {
	id          string
	ws          *websocket.Conn
	connectedAt time.Time
	writeMu     sync.Mutex

	// url and title are guarded by Hub.mu.
	url   string
	title string
}

func (c *conn) send(msg Message) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	_ = c.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.ws.WriteJSON(msg)
}

// Hub is the coordination context. It accepts tab connections on its
// websocket endpoint, tracks which tab is active and relays messages to it.
// Hub is safe for concurrent use.
type Hub struct {
	upgrader      websocket.Upgrader
	definer       Definer
	defineTimeout time.Duration

	mu     sync.RWMutex
	conns  map[string]*conn
	active string
	closed bool
}

// NewHub creates a hub. definer may be nil, in which case fetchDefinition
// requests fail.
func NewHub(definer Definer, defineTimeout time.Duration) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		definer:       definer,
		defineTimeout: defineTimeout,
		conns:         make(map[string]*conn),
	}
}

// ServeHTTP upgrades the request and serves the tab until it disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	h.mu.RLock()
	closed := h.closed
	h.mu.RUnlock()
	if closed {
		http.Error(w, "hub is shutting down", http.StatusServiceUnavailable)
		return
	}

	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.ErrorContext(ctx, "failed to upgrade connection", "error", err)
		return
	}

	c := &conn{id: NewID(), ws: ws, connectedAt: time.Now()}
	h.add(c)
	logger = logger.With("tab_id", c.id)
	ctx = contextutil.WithLogger(ctx, logger)
	logger.InfoContext(ctx, "tab connected", "remote_addr", r.RemoteAddr)

	defer func() {
		_ = ws.Close()
		h.remove(c.id)
		logger.InfoContext(ctx, "tab disconnected")
	}()

	for {
		var msg Message
		if err := ws.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.WarnContext(ctx, "websocket read failed", "error", err)
			}
			return
		}
		h.handle(ctx, c, msg)
	}
}

func (h *Hub) handle(ctx context.Context, c *conn, msg Message) {
	logger := contextutil.LoggerFromContext(ctx)
	logger.DebugContext(ctx, "message received", "action", msg.Action, "id", msg.ID)

	switch msg.Action {
	case ActionRegister:
		h.mu.Lock()
		c.url, c.title = msg.URL, msg.Title
		h.active = c.id
		h.mu.Unlock()
		logger.InfoContext(ctx, "tab registered", "url", msg.URL)
		h.ack(ctx, c, msg)

	case ActionActivate:
		h.mu.Lock()
		h.active = c.id
		h.mu.Unlock()
		h.ack(ctx, c, msg)

	case ActionFetchDefinition:
		go h.fetchDefinition(ctx, c, msg)

	case ActionReply:
		// Tabs do not request anything of the hub that needs a reply back.

	default:
		logger.WarnContext(ctx, "unknown action", "action", msg.Action)
		if msg.ID != "" {
			reply := msg.Reply()
			reply.Error = "unknown action: " + string(msg.Action)
			h.write(ctx, c, reply)
		}
	}
}

// ack answers a request that carries an id.
func (h *Hub) ack(ctx context.Context, c *conn, msg Message) {
	if msg.ID == "" {
		return
	}
	reply := msg.Reply()
	reply.Success = true
	h.write(ctx, c, reply)
}

func (h *Hub) fetchDefinition(ctx context.Context, c *conn, msg Message) {
	logger := contextutil.LoggerFromContext(ctx)
	reply := msg.Reply()

	if h.definer == nil {
		reply.Error = "definitions are not configured"
		h.write(ctx, c, reply)
		return
	}

	defineCtx := ctx
	if h.defineTimeout > 0 {
		var cancel context.CancelFunc
		defineCtx, cancel = context.WithTimeout(ctx, h.defineTimeout)
		defer cancel()
	}

	def, err := h.definer.Define(defineCtx, nil, msg.Text)
	if err != nil {
		logger.WarnContext(ctx, "definition request failed", "error", err)
		reply.Error = err.Error()
	} else {
		reply.Success = true
		reply.Definition = def
	}
	h.write(ctx, c, reply)
}

func (h *Hub) write(ctx context.Context, c *conn, msg Message) {
	if err := c.send(msg); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "failed to send message", "action", msg.Action, "error", err)
	}
}

func (h *Hub) add(c *conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[c.id] = c
}

func (h *Hub) remove(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, id)
	if h.active == id {
		h.active = ""
	}
}

func (h *Hub) activeConn() (*conn, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	c, ok := h.conns[h.active]
	return c, ok
}

// sendActive delivers msg to the active tab, once.
func (h *Hub) sendActive(ctx context.Context, msg Message) error {
	c, ok := h.activeConn()
	if !ok {
		return ErrNoActiveTab
	}
	if err := c.send(msg); err != nil {
		return err
	}
	contextutil.LoggerFromContext(ctx).DebugContext(ctx, "message sent to active tab", "action", msg.Action, "tab_id", c.id)
	return nil
}

// NotifyRemove asks the active tab to unwrap the marker of a deleted record.
func (h *Hub) NotifyRemove(ctx context.Context, id string) error {
	return h.sendActive(ctx, Message{Action: ActionRemoveHighlight, HighlightID: id})
}

// ShowDefinition asks the active tab to show a definition of text.
func (h *Hub) ShowDefinition(ctx context.Context, text string) error {
	return h.sendActive(ctx, Message{Action: ActionGetDefinition, Text: text})
}

// Tabs lists the connected tabs, oldest first.
func (h *Hub) Tabs() []TabInfo {
	h.mu.RLock()
	defer h.mu.RUnlock()

	tabs := make([]TabInfo, 0, len(h.conns))
	for _, c := range h.conns {
		tabs = append(tabs, TabInfo{
			ID:          c.id,
			URL:         c.url,
			Title:       c.title,
			Active:      c.id == h.active,
			ConnectedAt: c.connectedAt,
		})
	}
	sortTabs(tabs)
	return tabs
}

// Close disconnects every tab and refuses new connections.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	conns := make([]*conn, 0, len(h.conns))
	for _, c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.Unlock()

	for _, c := range conns {
		c.writeMu.Lock()
		_ = c.ws.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"),
			time.Now().Add(time.Second))
		c.writeMu.Unlock()
		_ = c.ws.Close()
	}
}

func sortTabs(tabs []TabInfo) {
	sort.Slice(tabs, func(i, j int) bool {
		if tabs[i].ConnectedAt.Equal(tabs[j].ConnectedAt) {
			return tabs[i].ID < tabs[j].ID
		}
		return tabs[i].ConnectedAt.Before(tabs[j].ConnectedAt)
	})
}

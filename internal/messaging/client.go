package messaging

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"pagemark/internal/contextutil"
)

// Handler is called for every message the hub pushes to a client. Each call
// runs on its own goroutine.
type Handler func(ctx context.Context, msg Message)

// Client is the tab side of a hub connection.
type Client struct {
	ws      *websocket.Conn
	handler Handler
	writeMu sync.Mutex

	mu      sync.Mutex
	pending map[string]chan Message

	done chan struct{}
}

// Dial connects to the hub at url. handler receives messages that are not
// replies; it may be nil.
func Dial(ctx context.Context, url string, handler Handler) (*Client, error) {
	ws, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to hub: %w", err)
	}

	c := &Client{
		ws:      ws,
		handler: handler,
		pending: make(map[string]chan Message),
		done:    make(chan struct{}),
	}
	go c.readLoop(context.WithoutCancel(ctx))
	return c, nil
}

func (c *Client) readLoop(ctx context.Context) {
	logger := contextutil.LoggerFromContext(ctx)
	defer close(c.done)

	for {
		var msg Message
		if err := c.ws.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.WarnContext(ctx, "hub connection lost", "error", err)
			}
			return
		}

		if msg.ReplyTo != "" {
			c.deliver(ctx, msg)
			continue
		}
		if c.handler != nil {
			go c.handler(ctx, msg)
		}
	}
}

// deliver hands a reply to its waiting request. Replies nobody waits for
// are dropped.
func (c *Client) deliver(ctx context.Context, msg Message) {
	c.mu.Lock()
	ch, ok := c.pending[msg.ReplyTo]
	delete(c.pending, msg.ReplyTo)
	c.mu.Unlock()

	if !ok {
		contextutil.LoggerFromContext(ctx).DebugContext(ctx, "dropping unexpected reply", "reply_to", msg.ReplyTo)
		return
	}
	ch <- msg
}

// Send delivers msg without waiting for a reply.
func (c *Client) Send(ctx context.Context, msg Message) error {
	select {
	case <-c.done:
		return ErrClosed
	default:
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(writeTimeout)
	}
	_ = c.ws.SetWriteDeadline(deadline)
	if err := c.ws.WriteJSON(msg); err != nil {
		return fmt.Errorf("failed to send %s: %w", msg.Action, err)
	}
	return nil
}

// Request sends msg with a fresh id and waits for its single reply.
func (c *Client) Request(ctx context.Context, msg Message) (Message, error) {
	msg.ID = NewID()
	ch := make(chan Message, 1)

	c.mu.Lock()
	c.pending[msg.ID] = ch
	c.mu.Unlock()

	forget := func() {
		c.mu.Lock()
		delete(c.pending, msg.ID)
		c.mu.Unlock()
	}

	if err := c.Send(ctx, msg); err != nil {
		forget()
		return Message{}, err
	}

	select {
	case reply := <-ch:
		return reply, nil
	case <-ctx.Done():
		forget()
		return Message{}, ctx.Err()
	case <-c.done:
		forget()
		return Message{}, ErrClosed
	}
}

// Done is closed when the connection ends.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// Close ends the connection and waits for the read loop to stop.
func (c *Client) Close() error {
	c.writeMu.Lock()
	_ = c.ws.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	c.writeMu.Unlock()

	err := c.ws.Close()
	<-c.done
	return err
}

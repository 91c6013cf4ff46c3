// Package messaging relays messages between the hub and page contexts over
// websockets. Delivery is at-most-once: there are no retries and a request
// gets at most one reply.
package messaging

import (
	"errors"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Action names what a message asks for.
type Action string

const (
	// ActionRegister announces a tab and its page. The tab becomes active.
	ActionRegister Action = "register"
	// ActionActivate marks the sending tab as the active one.
	ActionActivate Action = "activate"
	// ActionRemoveHighlight asks the active tab to unwrap a marker.
	ActionRemoveHighlight Action = "removeHighlight"
	// ActionGetDefinition asks the active tab to show a definition popup.
	ActionGetDefinition Action = "getDefinition"
	// ActionFetchDefinition asks the hub to fetch a definition.
	ActionFetchDefinition Action = "fetchDefinition"
	// ActionReply answers the message named by ReplyTo.
	ActionReply Action = "reply"
)

var (
	// ErrNoActiveTab is returned when a message has no tab to go to.
	ErrNoActiveTab = errors.New("no active tab")
	// ErrClosed is returned by operations on a closed connection.
	ErrClosed = errors.New("connection closed")
)

// Message is the envelope exchanged between contexts.
type Message struct {
	ID          string `json:"id,omitempty"`
	Action      Action `json:"action"`
	ReplyTo     string `json:"replyTo,omitempty"`
	Text        string `json:"text,omitempty"`
	HighlightID string `json:"highlightId,omitempty"`
	URL         string `json:"url,omitempty"`
	Title       string `json:"title,omitempty"`
	Success     bool   `json:"success,omitempty"`
	Definition  string `json:"definition,omitempty"`
	Error       string `json:"error,omitempty"`
}

// NewID returns a new message or connection id.
func NewID() string {
	id, err := gonanoid.New()
	if err != nil {
		// Only fails when the system random source does.
		panic(err)
	}
	return id
}

// Reply builds the reply to m.
func (m Message) Reply() Message {
	return Message{Action: ActionReply, ReplyTo: m.ID}
}

// Err returns the error carried by a failed reply, or nil.
func (m Message) Err() error {
	if m.Success {
		return nil
	}
	if m.Error == "" {
		return errors.New("request failed")
	}
	return errors.New(m.Error)
}

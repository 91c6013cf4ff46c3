// Package highlight holds the persisted highlight records and the store that
// keeps them in the shared key-value backend.
package highlight

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// MaxTextLength is the longest selection, in characters, that can be saved.
const MaxTextLength = 1000

// Record is the persisted form of one highlight. Text, URL and Title are
// written once at capture time and never updated.
type Record struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	URL         string `json:"url"`
	Title       string `json:"title"`
	Timestamp   int64  `json:"timestamp"`       // Unix milliseconds
	LocatorHint string `json:"xpath,omitempty"` // structural path of the containing element
}

// NewRecord builds a record with a fresh id stamped at now.
func NewRecord(text, url, title, locatorHint string, now time.Time) Record {
	return Record{
		ID:          NewID(),
		Text:        text,
		URL:         url,
		Title:       title,
		Timestamp:   now.UnixMilli(),
		LocatorHint: locatorHint,
	}
}

// NewID returns a new opaque record id.
func NewID() string {
	return uuid.New().String()
}

// ValidateText checks that a captured text is between 1 and MaxTextLength
// characters.
func ValidateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return &ValidationError{Field: "text", Message: "cannot be empty"}
	}
	if n := utf8.RuneCountInString(text); n > MaxTextLength {
		return &ValidationError{Field: "text", Message: "exceeds 1000 characters"}
	}
	return nil
}

// Validate checks the fields a record needs before it is stored.
func (r Record) Validate() error {
	if r.ID == "" {
		return &ValidationError{Field: "id", Message: "cannot be empty"}
	}
	if r.URL == "" {
		return &ValidationError{Field: "url", Message: "cannot be empty"}
	}
	return ValidateText(r.Text)
}

// Matches reports whether query occurs in the text, title or url of the
// record, ignoring case. An empty query matches everything.
func (r Record) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(r.Text), q) ||
		strings.Contains(strings.ToLower(r.Title), q) ||
		strings.Contains(strings.ToLower(r.URL), q)
}

// Match is a record found by semantic search, with its similarity score.
type Match struct {
	Record
	Score float32 `json:"score"`
}

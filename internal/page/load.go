// Package page runs a live page context: a loaded document with its anchor
// session, connected to the hub.
package page

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"pagemark/internal/dom"
)

// Supported content formats.
const (
	FormatHTML     = "html"
	FormatMarkdown = "markdown"
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Load parses content as a document. Markdown is rendered to HTML first and
// titled after its first heading.
func Load(content, format string) (*html.Node, error) {
	switch strings.ToLower(format) {
	case "", FormatHTML:
		return dom.ParseString(content)
	case FormatMarkdown, "md":
		return loadMarkdown(content)
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

// FormatOf guesses the format of a file from its extension.
func FormatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return FormatMarkdown
	default:
		return FormatHTML
	}
}

// LoadFile reads and parses the document at path.
func LoadFile(path string) (*html.Node, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Load(string(content), FormatOf(path))
}

func loadMarkdown(content string) (*html.Node, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(content), &buf); err != nil {
		return nil, fmt.Errorf("failed to render markdown: %w", err)
	}

	doc, err := dom.ParseString("<html><head></head><body>" + buf.String() + "</body></html>")
	if err != nil {
		return nil, err
	}

	h := dom.Find(doc, func(n *html.Node) bool {
		switch n.DataAtom {
		case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
			return true
		}
		return false
	})
	if h != nil {
		setTitle(doc, strings.TrimSpace(dom.TextContent(h)))
	}
	return doc, nil
}

func setTitle(doc *html.Node, title string) {
	head := dom.Find(doc, func(n *html.Node) bool { return n.DataAtom == atom.Head })
	if head == nil || title == "" {
		return
	}
	el := dom.NewElement("title")
	el.AppendChild(dom.NewText(title))
	head.AppendChild(el)
}

// Package dom provides the tree operations the anchor engine needs over
// golang.org/x/net/html node trees: text walking, text splitting, child
// replacement and normalization.
package dom

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrDetached is returned for operations on a node that has no parent.
var ErrDetached = errors.New("node is not attached to a parent")

// Parse parses an HTML document.
func Parse(r io.Reader) (*html.Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return doc, nil
}

// ParseString parses an HTML document held in s.
func ParseString(s string) (*html.Node, error) {
	return Parse(strings.NewReader(s))
}

// Render serializes the tree rooted at n.
func Render(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", fmt.Errorf("failed to render HTML: %w", err)
	}
	return buf.String(), nil
}

// IsText reports whether n is a text node.
func IsText(n *html.Node) bool {
	return n != nil && n.Type == html.TextNode
}

// IsElement reports whether n is an element node.
func IsElement(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode
}

// NewText creates a detached text node.
func NewText(data string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: data}
}

// NewElement creates a detached element node with the given attributes.
func NewElement(tag string, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
		Attr:     attrs,
	}
}

// Attr returns the value of attribute key on n.
func Attr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// HasClass reports whether the class attribute of n contains class.
func HasClass(n *html.Node, class string) bool {
	if !IsElement(n) {
		return false
	}
	v, ok := Attr(n, "class")
	if !ok {
		return false
	}
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}

// TextContent concatenates the data of every text node under n.
func TextContent(n *html.Node) string {
	if n == nil {
		return ""
	}
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(c *html.Node) {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
			return
		}
		for gc := c.FirstChild; gc != nil; gc = gc.NextSibling {
			walk(gc)
		}
	}
	walk(n)
	return b.String()
}

// Walk visits n and its descendants depth-first in document order.
// Returning false from fn stops the walk.
func Walk(n *html.Node, fn func(*html.Node) bool) bool {
	if !fn(n) {
		return false
	}
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if !Walk(c, fn) {
			return false
		}
		c = next
	}
	return true
}

// WalkText visits the text nodes under root in document order. Subtrees for
// which skip returns true are not entered. Returning false from fn stops
// the walk.
func WalkText(root *html.Node, skip func(*html.Node) bool, fn func(*html.Node) bool) {
	var walk func(*html.Node) bool
	walk = func(n *html.Node) bool {
		if skip != nil && skip(n) {
			return true
		}
		if n.Type == html.TextNode {
			return fn(n)
		}
		for c := n.FirstChild; c != nil; {
			next := c.NextSibling
			if !walk(c) {
				return false
			}
			c = next
		}
		return true
	}
	walk(root)
}

// Closest returns the nearest of n and its ancestors matching pred.
func Closest(n *html.Node, pred func(*html.Node) bool) *html.Node {
	for c := n; c != nil; c = c.Parent {
		if pred(c) {
			return c
		}
	}
	return nil
}

// Find returns the first node under root, in document order, matching pred.
func Find(root *html.Node, pred func(*html.Node) bool) *html.Node {
	var found *html.Node
	Walk(root, func(n *html.Node) bool {
		if pred(n) {
			found = n
			return false
		}
		return true
	})
	return found
}

// FindAll returns every node under root matching pred, in document order.
func FindAll(root *html.Node, pred func(*html.Node) bool) []*html.Node {
	var found []*html.Node
	Walk(root, func(n *html.Node) bool {
		if pred(n) {
			found = append(found, n)
		}
		return true
	})
	return found
}

// Contains reports whether n is root or one of its descendants.
func Contains(root, n *html.Node) bool {
	for c := n; c != nil; c = c.Parent {
		if c == root {
			return true
		}
	}
	return false
}

// Body returns the <body> element of doc, or nil.
func Body(doc *html.Node) *html.Node {
	return Find(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.DataAtom == atom.Body
	})
}

// Title returns the trimmed text of the first <title> element of doc.
func Title(doc *html.Node) string {
	t := Find(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.DataAtom == atom.Title
	})
	return strings.TrimSpace(TextContent(t))
}

// ChildCount returns the number of children of n.
func ChildCount(n *html.Node) int {
	count := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		count++
	}
	return count
}

// ChildAt returns the i-th child of n, or nil when i is out of range.
func ChildAt(n *html.Node, i int) *html.Node {
	if i < 0 {
		return nil
	}
	c := n.FirstChild
	for ; c != nil && i > 0; i-- {
		c = c.NextSibling
	}
	return c
}

// SplitText splits text node n at byte offset off. n keeps the data before
// off; a new text node holding the rest is inserted right after n and
// returned.
func SplitText(n *html.Node, off int) (*html.Node, error) {
	if !IsText(n) {
		return nil, fmt.Errorf("split: not a text node")
	}
	if n.Parent == nil {
		return nil, ErrDetached
	}
	if off < 0 || off > len(n.Data) || !utf8.RuneStart(byteAt(n.Data, off)) {
		return nil, fmt.Errorf("split: offset %d out of range for %d bytes", off, len(n.Data))
	}

	tail := NewText(n.Data[off:])
	n.Data = n.Data[:off]
	n.Parent.InsertBefore(tail, n.NextSibling)
	return tail, nil
}

// ReplaceChild puts newChild where oldChild is under parent.
func ReplaceChild(parent, newChild, oldChild *html.Node) error {
	if oldChild == nil || oldChild.Parent != parent {
		return fmt.Errorf("replace: old child is not a child of parent")
	}
	if newChild.Parent != nil {
		newChild.Parent.RemoveChild(newChild)
	}
	parent.InsertBefore(newChild, oldChild)
	parent.RemoveChild(oldChild)
	return nil
}

// Normalize merges adjacent text nodes and drops empty ones in the subtree
// rooted at n.
func Normalize(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		switch {
		case c.Type == html.TextNode && c.Data == "":
			n.RemoveChild(c)
		case c.Type == html.TextNode:
			for next != nil && next.Type == html.TextNode {
				c.Data += next.Data
				after := next.NextSibling
				n.RemoveChild(next)
				next = after
			}
		default:
			Normalize(c)
		}
		c = next
	}
}

// RuneOffset converts a character offset within s into a byte offset.
func RuneOffset(s string, runes int) (int, bool) {
	if runes < 0 {
		return 0, false
	}
	i := 0
	for pos := range s {
		if i == runes {
			return pos, true
		}
		i++
	}
	if i == runes {
		return len(s), true
	}
	return 0, false
}

func byteAt(s string, i int) byte {
	if i >= len(s) {
		return 0
	}
	return s[i]
}

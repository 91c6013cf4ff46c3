package anchor

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html"

	"pagemark/internal/dom"
)

var (
	errNotSiblings = errors.New("range boundaries do not share a parent")
	errEmptyRange  = errors.New("range selects nothing")
	errMultiNode   = errors.New("selected text spans more than one text node")
	errNestsMarker = errors.New("range would nest an existing marker")
	errNotContent  = errors.New("range contains hidden or runtime content")
)

// Boundary is one end of a Range. In a text node Offset counts characters;
// in any other node it counts children.
type Boundary struct {
	Node   *html.Node
	Offset int
}

// Range is a selection between two boundaries in document order.
type Range struct {
	Start Boundary
	End   Boundary
}

// TextRange selects characters [start, end) of text node n.
func TextRange(n *html.Node, start, end int) Range {
	return Range{Start: Boundary{Node: n, Offset: start}, End: Boundary{Node: n, Offset: end}}
}

// FindText returns a range over the first occurrence of text inside a
// single text node under root. Hidden content and existing markers are not
// searched.
func FindText(root *html.Node, text string) (Range, bool) {
	n, off := findText(root, text)
	if n == nil {
		return Range{}, false
	}
	start := utf8.RuneCountInString(n.Data[:off])
	return TextRange(n, start, start+utf8.RuneCountInString(text)), true
}

func findText(root *html.Node, text string) (*html.Node, int) {
	if text == "" {
		return nil, 0
	}
	var found *html.Node
	var at int
	dom.WalkText(root, skipSearch, func(n *html.Node) bool {
		if i := strings.Index(n.Data, text); i >= 0 {
			found, at = n, i
			return false
		}
		return true
	})
	return found, at
}

// point is a resolved boundary: a byte offset in a text node or a child
// index in any other node.
type point struct {
	node *html.Node
	off  int
}

func (p point) isText() bool {
	return dom.IsText(p.node)
}

func resolve(root *html.Node, b Boundary) (point, error) {
	if b.Node == nil {
		return point{}, errors.New("boundary has no node")
	}
	if !dom.Contains(root, b.Node) {
		return point{}, dom.ErrDetached
	}

	switch b.Node.Type {
	case html.TextNode:
		off, ok := dom.RuneOffset(b.Node.Data, b.Offset)
		if !ok {
			return point{}, fmt.Errorf("offset %d out of range", b.Offset)
		}
		return point{node: b.Node, off: off}, nil
	case html.ElementNode, html.DocumentNode:
		if b.Offset < 0 || b.Offset > dom.ChildCount(b.Node) {
			return point{}, fmt.Errorf("offset %d out of range", b.Offset)
		}
		return point{node: b.Node, off: b.Offset}, nil
	default:
		return point{}, fmt.Errorf("boundary in unsupported node type %d", b.Node.Type)
	}
}

// span is the selected byte range of one text node.
type span struct {
	node       *html.Node
	start, end int
}

func (s span) text() string {
	return s.node.Data[s.start:s.end]
}

// collectSpans walks the tree in document order and returns the parts of
// text nodes lying between start and end. Text of hidden elements and
// runtime UI is left out. A reversed range yields nothing.
func collectSpans(root *html.Node, start, end point) []span {
	c := &spanCollector{start: start, end: end}
	c.visit(root)
	return c.spans
}

type spanCollector struct {
	start, end point
	active     bool
	endSeen    bool
	done       bool
	hidden     int // depth inside non-content subtrees
	spans      []span
}

func (c *spanCollector) visit(n *html.Node) {
	i := 0
	for child := n.FirstChild; child != nil && !c.done; child = child.NextSibling {
		c.mark(n, i)
		if c.done {
			return
		}
		switch {
		case child.Type == html.TextNode:
			c.text(child)
		case notContent(child):
			c.hidden++
			c.visit(child)
			c.hidden--
		default:
			c.visit(child)
		}
		i++
	}
	if !c.done {
		c.mark(n, i)
	}
}

// mark handles boundaries expressed as a child index of n.
func (c *spanCollector) mark(n *html.Node, i int) {
	if !c.start.isText() && c.start.node == n && c.start.off == i && !c.endSeen {
		c.active = true
	}
	if !c.end.isText() && c.end.node == n && c.end.off == i {
		if c.active {
			c.done = true
		}
		c.active = false
		c.endSeen = true
	}
}

func (c *spanCollector) text(n *html.Node) {
	from := 0
	if c.start.node == n && !c.endSeen {
		c.active = true
		from = c.start.off
	}
	if c.end.node == n {
		if c.active && c.hidden == 0 && c.end.off >= from {
			c.spans = append(c.spans, span{node: n, start: from, end: c.end.off})
		}
		c.done = c.active
		c.active = false
		c.endSeen = true
		return
	}
	if c.active && c.hidden == 0 {
		c.spans = append(c.spans, span{node: n, start: from, end: len(n.Data)})
	}
}

func joinSpans(spans []span) string {
	var b strings.Builder
	for _, s := range spans {
		b.WriteString(s.text())
	}
	return b.String()
}

// container returns the node whose children a boundary sits between.
func (p point) container() *html.Node {
	if p.isText() {
		return p.node.Parent
	}
	return p.node
}

// wrapRange moves the sibling run between start and end into a new marker.
// Both boundaries must resolve to positions under the same parent. On
// failure the tree is left with its original text.
func wrapRange(start, end point, id string) (*html.Node, error) {
	parent := start.container()
	if parent == nil || parent != end.container() {
		return nil, errNotSiblings
	}

	// Element boundaries are resolved to nodes before any split shifts
	// child indexes.
	var first, stop *html.Node
	if !start.isText() {
		first = dom.ChildAt(parent, start.off)
	}
	if !end.isText() {
		stop = dom.ChildAt(parent, end.off)
	}

	var tails []*html.Node
	rollback := func() {
		for i := len(tails) - 1; i >= 0; i-- {
			tail := tails[i]
			if prev := tail.PrevSibling; dom.IsText(prev) {
				prev.Data += tail.Data
				parent.RemoveChild(tail)
			}
		}
	}

	// End first, so a start offset in the same text node stays valid.
	if end.isText() {
		n := end.node
		switch end.off {
		case 0:
			stop = n
		case len(n.Data):
			stop = n.NextSibling
		default:
			tail, err := dom.SplitText(n, end.off)
			if err != nil {
				return nil, err
			}
			tails = append(tails, tail)
			stop = tail
		}
	}
	if start.isText() {
		n := start.node
		switch start.off {
		case 0:
			first = n
		case len(n.Data):
			first = n.NextSibling
		default:
			tail, err := dom.SplitText(n, start.off)
			if err != nil {
				rollback()
				return nil, err
			}
			tails = append(tails, tail)
			first = tail
		}
	}

	if first == nil || first == stop {
		rollback()
		return nil, errEmptyRange
	}
	for n := first; n != stop; n = n.NextSibling {
		if n == nil {
			rollback()
			return nil, errEmptyRange
		}
		if dom.Find(n, IsMarker) != nil {
			rollback()
			return nil, errNestsMarker
		}
		if dom.Find(n, notContent) != nil {
			rollback()
			return nil, errNotContent
		}
	}

	marker := newMarker(id)
	parent.InsertBefore(marker, first)
	for n := first; n != stop; {
		next := n.NextSibling
		parent.RemoveChild(n)
		marker.AppendChild(n)
		n = next
	}
	return marker, nil
}

// wrapText splits text node n into before, match and after pieces and
// substitutes a marker for the match, which is the byte range [from, to).
func wrapText(n *html.Node, from, to int, id string) (*html.Node, error) {
	if n.Parent == nil {
		return nil, dom.ErrDetached
	}
	if from < 0 || to > len(n.Data) || from >= to {
		return nil, errEmptyRange
	}
	if !utf8.RuneStart(n.Data[from]) || (to < len(n.Data) && !utf8.RuneStart(n.Data[to])) {
		return nil, fmt.Errorf("offsets %d..%d split a character", from, to)
	}

	match := n
	if from > 0 {
		tail, err := dom.SplitText(n, from)
		if err != nil {
			return nil, err
		}
		match = tail
	}
	if rest := to - from; rest < len(match.Data) {
		if _, err := dom.SplitText(match, rest); err != nil {
			return nil, err
		}
	}

	marker := newMarker(id)
	if err := dom.ReplaceChild(match.Parent, marker, match); err != nil {
		return nil, err
	}
	marker.AppendChild(match)
	return marker, nil
}

// wrapSingleNode wraps the trimmed selection when all of its non-whitespace
// content lies in one text node.
func wrapSingleNode(spans []span, id string) (*html.Node, error) {
	var only *span
	for i := range spans {
		if strings.TrimSpace(spans[i].text()) == "" {
			continue
		}
		if only != nil {
			return nil, errMultiNode
		}
		only = &spans[i]
	}
	if only == nil {
		return nil, errEmptyRange
	}

	seg := only.text()
	lead := len(seg) - len(strings.TrimLeftFunc(seg, unicode.IsSpace))
	from := only.start + lead
	return wrapText(only.node, from, from+len(strings.TrimSpace(seg)), id)
}

// locateIn finds text in the flattened searchable content of el and returns
// the boundaries of the first occurrence. A skipped subtree breaks the
// flattened text, so a match never joins pieces on either side of it.
func locateIn(el *html.Node, text string) (point, point, bool) {
	type piece struct {
		node       *html.Node
		start, end int
	}
	var pieces []piece
	var b strings.Builder
	skip := func(n *html.Node) bool {
		if !skipSearch(n) {
			return false
		}
		if n != el {
			b.WriteByte(0)
		}
		return true
	}
	dom.WalkText(el, skip, func(n *html.Node) bool {
		pieces = append(pieces, piece{node: n, start: b.Len(), end: b.Len() + len(n.Data)})
		b.WriteString(n.Data)
		return true
	})

	idx := strings.Index(b.String(), text)
	if text == "" || idx < 0 {
		return point{}, point{}, false
	}
	last := idx + len(text)

	var start, end point
	var haveStart bool
	for _, p := range pieces {
		if !haveStart && idx >= p.start && idx < p.end {
			start = point{node: p.node, off: idx - p.start}
			haveStart = true
		}
		if haveStart && last > p.start && last <= p.end {
			end = point{node: p.node, off: last - p.start}
			return start, end, true
		}
	}
	return point{}, point{}, false
}

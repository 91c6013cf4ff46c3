package dom

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// XPath returns the locator hint for element n. An element carrying an id
// attribute is addressed as id("value"); the body as BODY; anything else as
// its parent's path followed by TAG[i], i counting same-tag element
// siblings from 1. Elements outside the body without an id have no path.
func XPath(n *html.Node) string {
	if !IsElement(n) {
		return ""
	}
	if id, ok := Attr(n, "id"); ok && id != "" {
		return fmt.Sprintf("id(%q)", id)
	}
	if n.DataAtom == atom.Body {
		return "BODY"
	}
	if n.Parent == nil || !IsElement(n.Parent) {
		return ""
	}

	parent := XPath(n.Parent)
	if parent == "" {
		return ""
	}

	ix := 1
	for c := n.Parent.FirstChild; c != nil && c != n; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == n.Data {
			ix++
		}
	}
	return fmt.Sprintf("%s/%s[%d]", parent, strings.ToUpper(n.Data), ix)
}

// ResolveXPath finds the element a locator hint produced by XPath points
// at. It returns nil when the path is malformed or no longer matches.
func ResolveXPath(doc *html.Node, path string) *html.Node {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}

	steps := strings.Split(path, "/")
	current := resolveFirstStep(doc, steps[0])
	for _, step := range steps[1:] {
		if current == nil {
			return nil
		}
		if step == "" {
			continue
		}
		tag, pos, ok := parseStep(step)
		if !ok {
			return nil
		}
		current = nthChild(current, tag, pos)
	}
	return current
}

func resolveFirstStep(doc *html.Node, step string) *html.Node {
	switch {
	case step == "":
		// Absolute form: /HTML[1]/BODY[1]/...
		return doc
	case strings.HasPrefix(step, "id(") && strings.HasSuffix(step, ")"):
		id, err := strconv.Unquote(step[3 : len(step)-1])
		if err != nil {
			return nil
		}
		return Find(doc, func(n *html.Node) bool {
			v, ok := Attr(n, "id")
			return n.Type == html.ElementNode && ok && v == id
		})
	case strings.EqualFold(step, "body"):
		return Body(doc)
	default:
		return nil
	}
}

// parseStep parses "P[2]" or a bare "P", which means position 1.
func parseStep(step string) (string, int, bool) {
	idx := strings.IndexByte(step, '[')
	if idx < 0 {
		return strings.ToLower(step), 1, true
	}
	if !strings.HasSuffix(step, "]") {
		return "", 0, false
	}
	pos, err := strconv.Atoi(step[idx+1 : len(step)-1])
	if err != nil || pos < 1 {
		return "", 0, false
	}
	return strings.ToLower(step[:idx]), pos, true
}

func nthChild(parent *html.Node, tag string, pos int) *html.Node {
	for c := parent.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || c.Data != tag {
			continue
		}
		pos--
		if pos == 0 {
			return c
		}
	}
	return nil
}

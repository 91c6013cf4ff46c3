package anchor

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"pagemark/internal/dom"
)

const (
	// MarkerClass is the class every highlight marker carries.
	MarkerClass = "pagemark-highlight"
	// IDAttr holds the record id on a marker.
	IDAttr = "data-highlight-id"
	// UIAttr marks elements the page runtime adds on top of the page, such
	// as popups. Their text is never page content.
	UIAttr = "data-pagemark-ui"

	markerTitle = "Click to remove highlight"
	styleID     = "pagemark-style"
	markerStyle = `.pagemark-highlight{background-color:#ffeb3b;color:inherit;cursor:pointer;border-radius:2px}` +
		`.pagemark-highlight:hover,.pagemark-highlight:focus{background-color:#fdd835;outline:none}`
)

// hiddenElements hold text that is never rendered as page content.
var hiddenElements = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Noscript: true,
	atom.Template: true,
	atom.Textarea: true,
}

func newMarker(id string) *html.Node {
	return dom.NewElement("span",
		html.Attribute{Key: "class", Val: MarkerClass},
		html.Attribute{Key: IDAttr, Val: id},
		html.Attribute{Key: "title", Val: markerTitle},
		html.Attribute{Key: "tabindex", Val: "0"},
		html.Attribute{Key: "role", Val: "button"},
	)
}

// IsMarker reports whether n is a highlight marker element.
func IsMarker(n *html.Node) bool {
	if !dom.HasClass(n, MarkerClass) {
		return false
	}
	_, ok := dom.Attr(n, IDAttr)
	return ok
}

// MarkerID returns the record id carried by marker n.
func MarkerID(n *html.Node) string {
	id, _ := dom.Attr(n, IDAttr)
	return id
}

func insideMarker(n *html.Node) bool {
	return dom.Closest(n, IsMarker) != nil
}

// IsUI reports whether n is an element added by the page runtime.
func IsUI(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	_, ok := dom.Attr(n, UIAttr)
	return ok
}

// notContent reports whether the subtree at n holds no selectable page
// text: hidden elements and runtime UI.
func notContent(n *html.Node) bool {
	return n.Type == html.ElementNode && (hiddenElements[n.DataAtom] || IsUI(n))
}

// skipSearch excludes non-content and existing markers from text scans.
func skipSearch(n *html.Node) bool {
	return notContent(n) || IsMarker(n)
}

// ensureStyle adds the marker stylesheet to the document head once.
func ensureStyle(doc *html.Node) {
	existing := dom.Find(doc, func(n *html.Node) bool {
		id, ok := dom.Attr(n, "id")
		return n.Type == html.ElementNode && ok && id == styleID
	})
	if existing != nil {
		return
	}
	head := dom.Find(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.DataAtom == atom.Head
	})
	if head == nil {
		return
	}

	style := dom.NewElement("style", html.Attribute{Key: "id", Val: styleID})
	style.AppendChild(dom.NewText(markerStyle))
	head.AppendChild(style)
}

// unwrapChildren moves the children of marker back into its parent and
// drops the marker, leaving the surrounding structure as it was.
func unwrapChildren(marker *html.Node) {
	parent := marker.Parent
	if parent == nil {
		return
	}
	for c := marker.FirstChild; c != nil; {
		next := c.NextSibling
		marker.RemoveChild(c)
		parent.InsertBefore(c, marker)
		c = next
	}
	parent.RemoveChild(marker)
	dom.Normalize(parent)
}

package page

import (
	"time"

	"golang.org/x/net/html"

	"pagemark/internal/anchor"
	"pagemark/internal/dom"
)

// PopupClass is the class of the definition popup element.
const PopupClass = "pagemark-definition-popup"

// DefaultDismissAfter is how long a popup stays up.
const DefaultDismissAfter = 10 * time.Second

// Popup is a definition popup shown in the page. It shows either the
// definition or the error of a failed request and dismisses itself.
type Popup struct {
	Text       string
	Definition string
	Error      string

	node  *html.Node
	timer *time.Timer
}

func newPopup(text, definition, errMsg string) *Popup {
	p := &Popup{Text: text, Definition: definition, Error: errMsg}

	p.node = dom.NewElement("div",
		html.Attribute{Key: "class", Val: PopupClass},
		html.Attribute{Key: "role", Val: "dialog"},
		html.Attribute{Key: anchor.UIAttr, Val: "popup"},
	)
	heading := dom.NewElement("strong")
	heading.AppendChild(dom.NewText(text))
	p.node.AppendChild(heading)

	body := dom.NewElement("p")
	if errMsg != "" {
		body.Attr = append(body.Attr, html.Attribute{Key: "class", Val: PopupClass + "-error"})
		body.AppendChild(dom.NewText(errMsg))
	} else {
		body.AppendChild(dom.NewText(definition))
	}
	p.node.AppendChild(body)
	return p
}

// Failed reports whether the popup shows an error.
func (p *Popup) Failed() bool {
	return p.Error != ""
}

// Visible reports whether the popup is still in the document.
func (p *Popup) Visible() bool {
	return p.node.Parent != nil
}

// detach removes the popup from the document and stops its timer.
func (p *Popup) detach() {
	if p.timer != nil {
		p.timer.Stop()
	}
	if p.node.Parent != nil {
		p.node.Parent.RemoveChild(p.node)
	}
}

// Package dom provides an HTML-backed scenery.Document.
//
// Markup is parsed with golang.org/x/net/html and queried with CSS selectors
// compiled by cascadia. Class changes are written back into the tree, so
// Render shows the current scene state. Dataset keys follow the browser
// convention: the key "sceneIndex" reads the attribute data-scene-index.
package dom

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/BrandonKowalski/scenery/pkg/scenery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// Document is a parsed HTML tree.
type Document struct {
	mu       sync.Mutex
	root     *html.Node
	elements map[*html.Node]*Element
}

// Parse reads HTML markup into a Document.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("dom: parse: %w", err)
	}
	return &Document{
		root:     root,
		elements: make(map[*html.Node]*Element),
	}, nil
}

// ParseString is Parse for in-memory markup.
func ParseString(markup string) (*Document, error) {
	return Parse(strings.NewReader(markup))
}

// Find returns the elements matching a selector group, in document order.
// Repeated queries return the same *Element for the same node.
func (d *Document) Find(selector string) ([]*Element, error) {
	group, err := cascadia.ParseGroup(selector)
	if err != nil {
		return nil, fmt.Errorf("dom: invalid selector %q: %w", selector, err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	nodes := cascadia.QueryAll(d.root, group)
	out := make([]*Element, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, d.wrap(n))
	}
	return out, nil
}

// First returns the first element matching selector, or nil.
func (d *Document) First(selector string) (*Element, error) {
	els, err := d.Find(selector)
	if err != nil || len(els) == 0 {
		return nil, err
	}
	return els[0], nil
}

// QueryAll implements scenery.Document.
func (d *Document) QueryAll(selector string) ([]scenery.Element, error) {
	els, err := d.Find(selector)
	if err != nil {
		return nil, err
	}
	out := make([]scenery.Element, len(els))
	for i, el := range els {
		out[i] = el
	}
	return out, nil
}

// Render writes the current tree as HTML.
func (d *Document) Render(w io.Writer) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return html.Render(w, d.root)
}

func (d *Document) wrap(n *html.Node) *Element {
	if el, ok := d.elements[n]; ok {
		return el
	}
	el := &Element{doc: d, node: n}
	d.elements[n] = el
	return el
}

// Element is a single HTML element node.
type Element struct {
	doc       *Document
	node      *html.Node
	listeners []func(*scenery.Event) error
}

// Tag returns the element's tag name.
func (e *Element) Tag() string {
	return e.node.Data
}

// ID returns the id attribute.
func (e *Element) ID() string {
	v, _ := e.Attr("id")
	return v
}

// Attr returns an attribute value.
func (e *Element) Attr(name string) (string, bool) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	return getAttr(e.node, name)
}

// SetAttr sets or replaces an attribute.
func (e *Element) SetAttr(name, value string) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	setAttr(e.node, name, value)
}

// Classes returns the class list.
func (e *Element) Classes() []string {
	v, _ := e.Attr("class")
	return strings.Fields(v)
}

// HasClass reports whether the class list contains name.
func (e *Element) HasClass(name string) bool {
	for _, c := range e.Classes() {
		if c == name {
			return true
		}
	}
	return false
}

// AddClass adds name to the class list if it is not already present.
func (e *Element) AddClass(name string) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()

	raw, _ := getAttr(e.node, "class")
	classes := strings.Fields(raw)
	for _, c := range classes {
		if c == name {
			return
		}
	}
	setAttr(e.node, "class", strings.Join(append(classes, name), " "))
}

// RemoveClass removes every occurrence of name from the class list.
func (e *Element) RemoveClass(name string) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()

	raw, ok := getAttr(e.node, "class")
	if !ok {
		return
	}
	classes := strings.Fields(raw)
	kept := classes[:0]
	for _, c := range classes {
		if c != name {
			kept = append(kept, c)
		}
	}
	setAttr(e.node, "class", strings.Join(kept, " "))
}

// Data reads a dataset entry. key is camelCase, as in element.dataset.
func (e *Element) Data(key string) (string, bool) {
	return e.Attr(DataAttr(key))
}

// SetData writes a dataset entry.
func (e *Element) SetData(key, value string) {
	e.SetAttr(DataAttr(key), value)
}

// Text returns the concatenated text content of the element.
func (e *Element) Text() string {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(e.node)
	return strings.TrimSpace(b.String())
}

// OnClick registers a click listener.
func (e *Element) OnClick(handler func(*scenery.Event) error) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	e.listeners = append(e.listeners, handler)
}

// Click dispatches a click to every listener in registration order. A failing
// listener does not stop the rest; all failures are joined.
func (e *Element) Click() error {
	e.doc.mu.Lock()
	listeners := make([]func(*scenery.Event) error, len(e.listeners))
	copy(listeners, e.listeners)
	e.doc.mu.Unlock()

	var errs []error
	for _, l := range listeners {
		evt := &scenery.Event{Source: "click", Target: e, Time: time.Now()}
		if err := l(evt); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// DataAttr converts a camelCase dataset key to its data-* attribute name.
func DataAttr(key string) string {
	var b strings.Builder
	b.WriteString("data-")
	for _, r := range key {
		if unicode.IsUpper(r) {
			b.WriteByte('-')
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func getAttr(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

func setAttr(n *html.Node, name, value string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: name, Val: value})
}

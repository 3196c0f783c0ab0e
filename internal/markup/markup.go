// Package markup embeds a scoped stylesheet into rendered HTML: the root
// element gets the scoping class and a <style> element is placed next to it.
package markup

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrNoElement is returned when a fragment has no element to style.
var ErrNoElement = errors.New("fragment has no root element")

// Embed adds className to root's class attribute and creates the <style>
// sibling carrying css. If root is attached to a parent the style element is
// inserted right after it. The returned slice is root followed by the style
// element.
func Embed(root *html.Node, className, css string) []*html.Node {
	AddClass(root, className)

	style := &html.Node{Type: html.ElementNode, Data: "style", DataAtom: atom.Style}
	style.AppendChild(&html.Node{Type: html.TextNode, Data: css})

	if root.Parent != nil {
		root.Parent.InsertBefore(style, root.NextSibling)
	}

	return []*html.Node{root, style}
}

// AddClass appends className to n's class attribute unless already present.
func AddClass(n *html.Node, className string) {
	for i, attr := range n.Attr {
		if attr.Namespace != "" || attr.Key != "class" {
			continue
		}
		for _, existing := range strings.Fields(attr.Val) {
			if existing == className {
				return
			}
		}
		if strings.TrimSpace(attr.Val) == "" {
			n.Attr[i].Val = className
		} else {
			n.Attr[i].Val = attr.Val + " " + className
		}
		return
	}

	n.Attr = append(n.Attr, html.Attribute{Key: "class", Val: className})
}

// RenderFragment parses an HTML fragment, styles its first element and
// writes the result. Nodes around the first element are kept in place.
func RenderFragment(w io.Writer, fragment, className, css string) error {
	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}

	nodes, err := html.ParseFragment(strings.NewReader(fragment), context)
	if err != nil {
		return fmt.Errorf("parse fragment: %w", err)
	}

	rootIdx := -1
	for i, n := range nodes {
		if n.Type == html.ElementNode {
			rootIdx = i
			break
		}
	}
	if rootIdx < 0 {
		return ErrNoElement
	}

	styled := Embed(nodes[rootIdx], className, css)

	out := make([]*html.Node, 0, len(nodes)+1)
	out = append(out, nodes[:rootIdx]...)
	out = append(out, styled...)
	out = append(out, nodes[rootIdx+1:]...)

	for _, n := range out {
		if err := html.Render(w, n); err != nil {
			return fmt.Errorf("render: %w", err)
		}
	}
	return nil
}

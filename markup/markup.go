// Package markup projects document trees to and from HTML fragments. The
// projection is deterministic and intentionally narrow: an element's "type"
// property is its tag name, its remaining string properties are attributes,
// and text leaves are escaped character data. It exists for export and
// import at the edges of the system; the in-memory tree stays the source of
// truth.
package markup

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/weft-tools/weft"
)

// DefaultTag is the tag used for elements without a "type" property.
const DefaultTag = "div"

///
/// rendering
///

// Render writes a single node as an HTML fragment.
func Render(n weft.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, toHTML(n)); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderDocument writes the children of a document root as one fragment,
// leaving the root container itself out.
func RenderDocument(root *weft.Element) (string, error) {
	var buf bytes.Buffer
	for _, child := range root.Children {
		if err := html.Render(&buf, toHTML(child)); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

func toHTML(n weft.Node) *html.Node {
	switch n := n.(type) {
	case *weft.Text:
		return &html.Node{Type: html.TextNode, Data: n.Text}
	case *weft.Element:
		tag := DefaultTag
		if t, ok := n.Props["type"].(string); ok && t != "" {
			tag = t
		}
		out := &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}
		for _, key := range sortedKeys(n.Props) {
			if key == "type" {
				continue
			}
			if value, ok := n.Props[key].(string); ok {
				out.Attr = append(out.Attr, html.Attribute{Key: key, Val: value})
			}
		}
		for _, child := range n.Children {
			out.AppendChild(toHTML(child))
		}
		return out
	}
	return &html.Node{Type: html.TextNode}
}

func sortedKeys(props weft.Props) []string {
	keys := make([]string, 0, len(props))
	for key := range props {
		keys = append(keys, key)
	}
	// attribute order must not depend on map iteration
	slices.Sort(keys)
	return keys
}

///
/// parsing
///

// Parse reads an HTML fragment into a document root. Elements keep their tag
// as the "type" property and their attributes as string properties; comments
// and other non-content nodes are dropped.
func Parse(fragment string) (*weft.Element, error) {
	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	parsed, err := html.ParseFragment(strings.NewReader(fragment), context)
	if err != nil {
		return nil, fmt.Errorf("markup: %w", err)
	}
	root := &weft.Element{}
	for _, n := range parsed {
		if node := fromHTML(n); node != nil {
			root.Children = append(root.Children, node)
		}
	}
	return root, nil
}

func fromHTML(n *html.Node) weft.Node {
	switch n.Type {
	case html.TextNode:
		return &weft.Text{Text: n.Data}
	case html.ElementNode:
		props := weft.Props{"type": n.Data}
		for _, attr := range n.Attr {
			props[attr.Key] = attr.Val
		}
		out := &weft.Element{Props: props}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if node := fromHTML(c); node != nil {
				out.Children = append(out.Children, node)
			}
		}
		return out
	}
	return nil
}

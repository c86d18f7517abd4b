package corpus

import (
	"encoding/xml"
	"strings"
)

// Node is a generic XML element. The corpus carries no fixed schema, so the
// tree is decoded structurally and queried by tag name. Text is kept as
// child pseudo-nodes (empty XMLName) so that mixed content preserves
// document order.
type Node struct {
	XMLName  xml.Name
	Attrs    []xml.Attr
	Chardata string // set only on text pseudo-nodes
	Children []Node
}

// UnmarshalXML builds the element tree from the token stream, keeping text
// and element children interleaved in document order.
func (n *Node) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	n.XMLName = start.Name
	n.Attrs = start.Attr

	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			var child Node
			if err := child.UnmarshalXML(d, t); err != nil {
				return err
			}
			n.Children = append(n.Children, child)
		case xml.CharData:
			if text := string(t); strings.TrimSpace(text) != "" {
				n.Children = append(n.Children, Node{Chardata: text})
			}
		case xml.EndElement:
			return nil
		}
	}
}

// Name returns the local element name; empty for text pseudo-nodes.
func (n *Node) Name() string {
	return n.XMLName.Local
}

func (n *Node) isText() bool {
	return n.XMLName.Local == ""
}

// First returns the first descendant element with the given name, in
// document order, or nil. The receiver itself is not considered.
func (n *Node) First(name string) *Node {
	for i := range n.Children {
		child := &n.Children[i]
		if child.isText() {
			continue
		}
		if child.Name() == name {
			return child
		}
		if found := child.First(name); found != nil {
			return found
		}
	}
	return nil
}

// FindPath returns the first descendant reached by locating the first
// element named names[0] anywhere under n, then following the remaining
// names as a strict child chain. Mirrors an ElementTree ".//a/b/c" lookup.
func (n *Node) FindPath(names ...string) *Node {
	if len(names) == 0 {
		return nil
	}
	for _, head := range n.all(names[0], nil) {
		if found := head.childPath(names[1:]); found != nil {
			return found
		}
	}
	return nil
}

func (n *Node) childPath(names []string) *Node {
	if len(names) == 0 {
		return n
	}
	for i := range n.Children {
		child := &n.Children[i]
		if child.Name() != names[0] {
			continue
		}
		if found := child.childPath(names[1:]); found != nil {
			return found
		}
	}
	return nil
}

// All returns every descendant element with the given name, in document
// order.
func (n *Node) All(name string) []*Node {
	return n.all(name, nil)
}

func (n *Node) all(name string, acc []*Node) []*Node {
	for i := range n.Children {
		child := &n.Children[i]
		if child.isText() {
			continue
		}
		if child.Name() == name {
			acc = append(acc, child)
		}
		acc = child.all(name, acc)
	}
	return acc
}

// Text returns the whitespace-normalized text content of the element and
// all of its descendants: each text node stripped, empties dropped, parts
// joined with single spaces, in document order.
func (n *Node) Text() string {
	var parts []string
	n.collectText(&parts)
	return strings.Join(parts, " ")
}

func (n *Node) collectText(parts *[]string) {
	for i := range n.Children {
		child := &n.Children[i]
		if child.isText() {
			*parts = append(*parts, strings.Fields(child.Chardata)...)
			continue
		}
		child.collectText(parts)
	}
}

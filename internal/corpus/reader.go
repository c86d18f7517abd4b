package corpus

import (
	"encoding/xml"
	"fmt"
	"os"
	"regexp"
	"strings"

	"golang.org/x/net/html/charset"
)

// USPTO full-text files concatenate one XML document per grant, each with
// its own prolog and doctype, and no shared root element. The reader
// repairs that textually before handing the result to the decoder.
var (
	xmlDeclRe = regexp.MustCompile(`<\?xml.*\?>`)
	doctypeRe = regexp.MustCompile(`<!DOCTYPE.*>`)
)

// Document is a parsed patent-grant corpus.
type Document struct {
	root Node
}

// Load reads and parses a corpus file. A missing file or an unparseable
// corpus is fatal for the whole run.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}
	return Parse(string(data))
}

// Parse repairs and parses raw corpus text: prolog and doctype declarations
// are stripped by pattern substitution, then the remainder is wrapped in a
// synthetic root element and decoded.
func Parse(raw string) (*Document, error) {
	repaired := xmlDeclRe.ReplaceAllString(raw, "")
	repaired = doctypeRe.ReplaceAllString(repaired, "")
	wrapped := "<root>" + strings.TrimSpace(repaired) + "</root>"

	doc := &Document{}
	dec := xml.NewDecoder(strings.NewReader(wrapped))
	dec.CharsetReader = charset.NewReaderLabel
	dec.Entity = xml.HTMLEntity
	if err := dec.Decode(&doc.root); err != nil {
		return nil, fmt.Errorf("parse corpus: %w", err)
	}
	return doc, nil
}

// Elements returns the top-level elements with the given name, in document
// order. Nested occurrences are not included.
func (d *Document) Elements(name string) []*Node {
	var out []*Node
	for i := range d.root.Children {
		child := &d.root.Children[i]
		if child.Name() == name {
			out = append(out, child)
		}
	}
	return out
}

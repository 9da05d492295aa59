// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package document

import (
	"fmt"
	"os"

	"github.com/beevik/etree"

	"github.com/pdiddy/metadata-extender/pkg/types"
)

// DefaultIndent is the number of spaces per nesting level.
const DefaultIndent = 2

const xmlDeclaration = `version="1.0" encoding="UTF-8"`

// Write serializes doc to path with an XML declaration and indent spaces
// per level, replacing any existing file. An indent of zero or less writes
// the whole document on one line. Every failure is returned as a
// *types.WriteError.
func Write(doc *Document, path string, indent int) error {
	if doc == nil || doc.tree.Root() == nil {
		return &types.WriteError{Path: path, Err: fmt.Errorf("empty document")}
	}
	if indent <= 0 {
		indent = etree.NoIndent
	}

	out := etree.NewDocument()
	out.CreateProcInst("xml", xmlDeclaration)
	out.SetRoot(doc.tree.Root().Copy())
	out.Indent(indent)

	f, err := os.Create(path)
	if err != nil {
		return &types.WriteError{Path: path, Err: err}
	}
	if _, err := out.WriteTo(f); err != nil {
		f.Close()
		return &types.WriteError{Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &types.WriteError{Path: path, Err: err}
	}
	return nil
}

// Read parses a document previously produced by Write.
func Read(path string) (*Document, error) {
	tree := etree.NewDocument()
	if err := tree.ReadFromFile(path); err != nil {
		return nil, fmt.Errorf("reading document %s: %w", path, err)
	}
	root := tree.Root()
	if root == nil || root.Tag != RootElement {
		return nil, fmt.Errorf("reading document %s: root element is not <%s>", path, RootElement)
	}
	return &Document{tree: tree}, nil
}

// ImageName returns the header image-name text.
func (d *Document) ImageName() string {
	return d.text(HeaderElement, ImageNameElement)
}

// PubDate returns the header pubdate text.
func (d *Document) PubDate() string {
	return d.text(HeaderElement, PubDateElement)
}

// Exif returns the exif children as name/value pairs in document order.
func (d *Document) Exif() []types.Field {
	return d.children(ExifElement)
}

// Section returns the fields of the named section node and whether the
// node is present.
func (d *Document) Section(name types.SectionName) ([]types.Field, bool) {
	if d.Root().SelectElement(name.Element()) == nil {
		return nil, false
	}
	return d.children(name.Element()), true
}

// Nodes returns the names of the top-level nodes under the root.
func (d *Document) Nodes() []string {
	var names []string
	for _, el := range d.Root().ChildElements() {
		names = append(names, el.Tag)
	}
	return names
}

func (d *Document) text(path ...string) string {
	el := d.Root()
	for _, p := range path {
		if el = el.SelectElement(p); el == nil {
			return ""
		}
	}
	return el.Text()
}

func (d *Document) children(node string) []types.Field {
	el := d.Root().SelectElement(node)
	if el == nil {
		return nil
	}
	fields := []types.Field{}
	for _, c := range el.ChildElements() {
		fields = append(fields, types.Field{Key: c.Tag, Value: c.Text()})
	}
	return fields
}

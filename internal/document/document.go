// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package document assembles the extended metadata tree for one image and
// serializes it to an XML file beside the image.
//
// Every document has the same shape:
//
//	<image>
//	  <header>
//	    <image-name>a.jpg</image-name>
//	    <pubdate>06012014</pubdate>
//	  </header>
//	  <exif>...one child per scalar tag...</exif>
//	  <photographer>...</photographer>
//	  <client>...</client>
//	  <abstract>...</abstract>
//	  <process-steps>...</process-steps>
//	</image>
//
// Only the sections enabled in the configuration record are present.
package document

import (
	"time"

	"github.com/beevik/etree"

	"github.com/pdiddy/metadata-extender/pkg/types"
)

// Element names of the fixed part of the tree.
const (
	RootElement      = "image"
	HeaderElement    = "header"
	ImageNameElement = "image-name"
	PubDateElement   = "pubdate"
	ExifElement      = "exif"
)

// PubDateLayout renders the publication date as MMDDYYYY.
const PubDateLayout = "01022006"

// Document is an assembled metadata tree.
type Document struct {
	tree *etree.Document
}

// Root returns the image element.
func (d *Document) Root() *etree.Element { return d.tree.Root() }

// Assembler builds documents. Now supplies the publication date.
type Assembler struct {
	Now func() time.Time
}

// NewAssembler returns an Assembler dated by the system clock.
func NewAssembler() *Assembler {
	return &Assembler{Now: time.Now}
}

// Assemble builds the tree for imageName from its tags and the selected
// sections. Non-scalar tags are skipped; empty field values produce empty
// elements.
func (a *Assembler) Assemble(imageName string, tags *types.TagMap, sections []types.Section) *Document {
	now := time.Now
	if a != nil && a.Now != nil {
		now = a.Now
	}

	tree := etree.NewDocument()
	root := tree.CreateElement(RootElement)

	header := root.CreateElement(HeaderElement)
	header.CreateElement(ImageNameElement).SetText(imageName)
	header.CreateElement(PubDateElement).SetText(now().Local().Format(PubDateLayout))

	exif := root.CreateElement(ExifElement)
	scalars := tags.Scalars()
	for _, name := range scalars.Names() {
		v, _ := scalars.Get(name)
		exif.CreateElement(name).SetText(v.String())
	}

	for _, s := range sections {
		node := root.CreateElement(s.Name.Element())
		for _, f := range s.Fields {
			node.CreateElement(f.Key).SetText(f.Value)
		}
	}
	return &Document{tree: tree}
}

package epub

import "encoding/xml"

// XML namespaces used in package documents.
const (
	NsDC  = "http://purl.org/dc/elements/1.1/"
	NsOPF = "http://www.idpf.org/2007/opf"
	NsXML = "http://www.w3.org/XML/1998/namespace"
)

// Package is the root element of the OPF file. It covers both EPUB 2.0 and
// EPUB 3.x attributes so either vintage round-trips through Save.
type Package struct {
	XMLName          xml.Name `xml:"http://www.idpf.org/2007/opf package"`
	Version          string   `xml:"version,attr"`
	UniqueIdentifier string   `xml:"unique-identifier,attr"`
	Prefix           string   `xml:"prefix,attr,omitempty"`
	Dir              string   `xml:"dir,attr,omitempty"`
	Id               string   `xml:"id,attr,omitempty"`

	Metadata Metadata `xml:"metadata"`
	Manifest Manifest `xml:"manifest"`
	Spine    Spine    `xml:"spine"`
	Guide    *Guide   `xml:"guide,omitempty"` // EPUB 2 holdover, still common
}

// Metadata holds the union of EPUB 2 Dublin Core elements and generic meta
// tags (EPUB 2 name/content and EPUB 3 property styles).
type Metadata struct {
	XMLName xml.Name `xml:"metadata"`

	Titles       []SimpleMeta `xml:"http://purl.org/dc/elements/1.1/ title"`
	Creators     []AuthorMeta `xml:"http://purl.org/dc/elements/1.1/ creator"`
	Subjects     []SimpleMeta `xml:"http://purl.org/dc/elements/1.1/ subject"`
	Descriptions []SimpleMeta `xml:"http://purl.org/dc/elements/1.1/ description"`
	Publishers   []SimpleMeta `xml:"http://purl.org/dc/elements/1.1/ publisher"`
	Contributors []AuthorMeta `xml:"http://purl.org/dc/elements/1.1/ contributor"`
	Dates        []SimpleMeta `xml:"http://purl.org/dc/elements/1.1/ date"`
	Types        []SimpleMeta `xml:"http://purl.org/dc/elements/1.1/ type"`
	Formats      []SimpleMeta `xml:"http://purl.org/dc/elements/1.1/ format"`
	Identifiers  []IDMeta     `xml:"http://purl.org/dc/elements/1.1/ identifier"`
	Sources      []SimpleMeta `xml:"http://purl.org/dc/elements/1.1/ source"`
	Languages    []SimpleMeta `xml:"http://purl.org/dc/elements/1.1/ language"`
	Rights       []SimpleMeta `xml:"http://purl.org/dc/elements/1.1/ rights"`

	Meta []Meta `xml:"meta"`
}

// SimpleMeta is a plain DC element like <dc:title>Value</dc:title>.
type SimpleMeta struct {
	Value string `xml:",chardata"`
	ID    string `xml:"id,attr,omitempty"`
	Dir   string `xml:"dir,attr,omitempty"`
	Lang  string `xml:"http://www.w3.org/XML/1998/namespace lang,attr,omitempty"`
}

// AuthorMeta is a creator or contributor element.
type AuthorMeta struct {
	SimpleMeta
	FileAs string `xml:"http://www.idpf.org/2007/opf file-as,attr,omitempty"`
	Role   string `xml:"http://www.idpf.org/2007/opf role,attr,omitempty"`
	Scheme string `xml:"http://www.idpf.org/2007/opf scheme,attr,omitempty"`
}

// IDMeta is a <dc:identifier> element.
type IDMeta struct {
	Value  string `xml:",chardata"`
	ID     string `xml:"id,attr,omitempty"`
	Scheme string `xml:"http://www.idpf.org/2007/opf scheme,attr,omitempty"`
}

// Meta is the generic <meta> tag in either EPUB 2 (name/content) or
// EPUB 3 (property, inner text) form.
type Meta struct {
	ID string `xml:"id,attr,omitempty"`

	Name    string `xml:"name,attr,omitempty"`
	Content string `xml:"content,attr,omitempty"`

	Property string `xml:"property,attr,omitempty"`
	Refines  string `xml:"refines,attr,omitempty"`
	Scheme   string `xml:"scheme,attr,omitempty"`

	Value string `xml:",chardata"`
}

// Manifest lists every file in the EPUB.
type Manifest struct {
	Items []Item `xml:"item"`
}

type Item struct {
	ID           string `xml:"id,attr"`
	Href         string `xml:"href,attr"`
	MediaType    string `xml:"media-type,attr"`
	Properties   string `xml:"properties,attr,omitempty"`
	Fallback     string `xml:"fallback,attr,omitempty"`
	MediaOverlay string `xml:"media-overlay,attr,omitempty"`
}

// Spine defines the reading order.
type Spine struct {
	Toc      string    `xml:"toc,attr,omitempty"`
	PageProg string    `xml:"page-progression-direction,attr,omitempty"`
	ItemRefs []ItemRef `xml:"itemref"`
}

type ItemRef struct {
	IDRef      string `xml:"idref,attr"`
	Linear     string `xml:"linear,attr,omitempty"`
	Properties string `xml:"properties,attr,omitempty"`
}

// Guide is deprecated in EPUB 3 but kept for round-trip fidelity.
type Guide struct {
	References []Reference `xml:"reference"`
}

type Reference struct {
	Type  string `xml:"type,attr"`
	Title string `xml:"title,attr,omitempty"`
	Href  string `xml:"href,attr"`
}

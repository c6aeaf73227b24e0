package content

import (
	"github.com/cockroachdb/errors"
)

// ErrHeadingRange is returned when a heading would land outside levels 1..6.
var ErrHeadingRange = errors.New("heading level out of range")

const (
	MinHeadingLevel = 1
	MaxHeadingLevel = 6
)

// Block is one renderer-agnostic unit of generated content.
// The concrete types are Heading, Text, List and Table.
type Block interface {
	block()
}

// Heading is a titled, optionally anchored heading.
type Heading struct {
	Title string
	Level int
	ID    string // in-page anchor, empty when the heading has none
	Link  string // external reference URL
}

// Text holds one or more paragraphs of Markdown.
type Text struct {
	Paragraphs []string
}

// ListItem is a single `label: description` entry of a List.
type ListItem struct {
	Label       string
	Description string
}

// List is a flat bullet list of labelled items.
type List struct {
	Items []ListItem
}

// Table is a header row plus data rows of plain Markdown cells.
type Table struct {
	Headers []string
	Rows    [][]string
}

func (Heading) block() {}
func (Text) block()    {}
func (List) block()    {}
func (Table) block()   {}

// NewHeading builds a heading block. Levels outside 1..6 are rejected.
func NewHeading(title string, level int, id, link string) (Heading, error) {
	if level < MinHeadingLevel || level > MaxHeadingLevel {
		return Heading{}, errors.Wrapf(ErrHeadingRange, "heading %q at level %d", title, level)
	}
	return Heading{Title: title, Level: level, ID: id, Link: link}, nil
}

// NewText builds a text block from one or more paragraphs.
func NewText(paragraphs ...string) Text {
	return Text{Paragraphs: append([]string(nil), paragraphs...)}
}

// NewList builds a list block.
func NewList(items ...ListItem) List {
	return List{Items: append([]ListItem(nil), items...)}
}

// NewTable builds a table block.
func NewTable(headers []string, rows [][]string) Table {
	return Table{
		Headers: append([]string(nil), headers...),
		Rows:    append([][]string(nil), rows...),
	}
}

// Headings filters blocks down to their headings, in order.
func Headings(blocks []Block) []Heading {
	var out []Heading
	for _, b := range blocks {
		if h, ok := b.(Heading); ok {
			out = append(out, h)
		}
	}
	return out
}

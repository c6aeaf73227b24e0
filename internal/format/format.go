// Package format normalizes generated Markdown and converts between
// Markdown and HTML.
package format

import (
	"path/filepath"
	"regexp"
	"strings"

	"reflectdoc/internal/content"
)

// Dialect is the markup an output file is written in.
type Dialect string

const (
	Markdown Dialect = "markdown"
	HTML     Dialect = "html"
)

// DialectFor picks the dialect from a file extension. Anything that is not
// .html or .htm is Markdown.
func DialectFor(path string) Dialect {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return HTML
	}
	return Markdown
}

var (
	trailingSpace = regexp.MustCompile(`[ \t]+\n`)
	blankRuns     = regexp.MustCompile(`\n{3,}`)
)

// Formatter is an idempotent pretty-printer. Outside fenced code it strips
// trailing whitespace and collapses runs of blank lines; fenced code is kept
// byte for byte.
type Formatter struct {
	Dialect Dialect
}

// New returns a formatter for d.
func New(d Dialect) *Formatter {
	return &Formatter{Dialect: d}
}

// Format implements content.Formatter.
func (f *Formatter) Format(text string) (string, error) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if f.Dialect == HTML {
		text = normalize(text)
	} else {
		text = content.MapProse(text, normalize)
	}
	return strings.TrimRight(strings.TrimLeft(text, "\n"), " \t\n"), nil
}

func normalize(text string) string {
	text = trailingSpace.ReplaceAllString(text, "\n")
	return blankRuns.ReplaceAllString(text, "\n\n")
}

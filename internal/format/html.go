package format

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/cockroachdb/errors"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

var absoluteURL = regexp.MustCompile(`^(?:[a-zA-Z][a-zA-Z0-9+.-]*:|//|/|#)`)

// baseURLTransformer prefixes relative link and image destinations.
type baseURLTransformer struct {
	base string
}

func (t *baseURLTransformer) Transform(doc *ast.Document, _ text.Reader, _ parser.Context) {
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := n.(type) {
		case *ast.Link:
			v.Destination = t.rebase(v.Destination)
		case *ast.Image:
			v.Destination = t.rebase(v.Destination)
		}
		return ast.WalkContinue, nil
	})
}

func (t *baseURLTransformer) rebase(dest []byte) []byte {
	if len(dest) == 0 || absoluteURL.Match(dest) {
		return dest
	}
	return []byte(strings.TrimSuffix(t.base, "/") + "/" + string(dest))
}

// sanitizer keeps what generated pages need: section markers, heading
// anchors, reference markers and highlighted code.
var sanitizer = func() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.RequireNoFollowOnLinks(false)
	p.AllowElements("section")
	p.AllowAttrs("id").Globally()
	p.AllowAttrs("data-generated").OnElements("section")
	p.AllowAttrs("data-sref").OnElements("a")
	return p
}()

// ToHTML renders Markdown to sanitized HTML. Relative links are resolved
// against baseURL when it is set.
func ToHTML(markdown, baseURL string) (string, error) {
	opts := []parser.Option{}
	if baseURL != "" {
		opts = append(opts, parser.WithASTTransformers(util.Prioritized(&baseURLTransformer{base: baseURL}, 100)))
	}
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(opts...),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)
	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		return "", errors.Wrap(err, "render markdown")
	}
	return strings.TrimSpace(sanitizer.Sanitize(buf.String())), nil
}

var htmlConverter = converter.NewConverter(
	converter.WithPlugins(
		base.NewBasePlugin(),
		commonmark.NewCommonmarkPlugin(),
		table.NewTablePlugin(),
	),
)

// HTMLToMarkdown converts an HTML fragment so it can be spliced into a
// Markdown document.
func HTMLToMarkdown(fragment string) (string, error) {
	md, err := htmlConverter.ConvertString(fragment)
	if err != nil {
		return "", errors.Wrap(err, "convert html")
	}
	return strings.TrimSpace(md), nil
}

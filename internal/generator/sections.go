package generator

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"

	"reflectdoc/internal/config"
	"reflectdoc/internal/content"
	"reflectdoc/internal/convert"
	"reflectdoc/internal/declaration"
	"reflectdoc/internal/format"
)

var ErrUnknownBuiltin = errors.New("unknown builtin section")

// Builtin section names.
const (
	BuiltinHead    = "head"
	BuiltinLicense = "license"
	BuiltinTOC     = "toc"
	BuiltinTOCX    = "tocx"
)

// tocPlaceholder stands in for the table of contents until every heading of
// the file is known.
const tocPlaceholder = "<!-- reflectdoc:toc -->"

// renderedSection is one section of an output file before assembly. Text is
// Markdown for generated sections and the on-disk text for passthrough ones.
type renderedSection struct {
	Name      string
	Text      string
	Attrs     string
	Generated bool
	TOC       string // BuiltinTOC or BuiltinTOCX when Text is the placeholder
}

// renderSection produces the Markdown of one configured section.
func (g *Generator) renderSection(sec config.Section) (renderedSection, error) {
	out := renderedSection{Name: sec.Name, Generated: true}
	var err error
	switch sec.Kind {
	case config.SectionBuiltin:
		out.Text, err = g.renderBuiltin(sec.Name)
		if sec.Name == BuiltinTOC || sec.Name == BuiltinTOCX {
			out.TOC = sec.Name
		}
	case config.SectionInclude:
		out.Text, err = g.renderInclude(sec.Include, sec.HeadingOffset)
	case config.SectionConvert:
		out.Text, err = g.renderConversion(sec)
	}
	if err != nil {
		return out, errors.Wrapf(err, "section %q", sec.Name)
	}
	return out, nil
}

func (g *Generator) renderBuiltin(name string) (string, error) {
	md := format.New(format.Markdown)
	switch name {
	case BuiltinHead:
		h, err := content.NewHeading(g.meta.Name, 1, content.BuildID(g.meta.Name), "")
		if err != nil {
			return "", err
		}
		blocks := []content.Block{h}
		if g.meta.Description != "" {
			blocks = append(blocks, content.NewText(g.meta.Description))
		}
		return content.RenderAll(blocks, md)
	case BuiltinLicense:
		if g.meta.LicenseText == "" && g.meta.License == "" {
			return "", nil
		}
		h, err := content.NewHeading("License", 2, "license", "")
		if err != nil {
			return "", err
		}
		text := g.meta.LicenseText
		if text == "" {
			text = "Released under the " + g.meta.License + " license."
		}
		return content.RenderAll([]content.Block{h, content.NewText(text)}, md)
	case BuiltinTOC, BuiltinTOCX:
		return tocPlaceholder, nil
	}
	return "", errors.WithHint(
		errors.Wrapf(ErrUnknownBuiltin, "%q", name),
		"builtin sections are head, license, toc and tocx",
	)
}

// renderInclude splices a file. HTML fragments become Markdown first. A
// missing file yields no content.
func (g *Generator) renderInclude(path string, headingOffset int) (string, error) {
	data, err := os.ReadFile(g.cfg.Resolve(path))
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", errors.Wrapf(err, "read include %s", path)
	}
	text := strings.TrimSpace(string(data))
	if format.DialectFor(path) == format.HTML {
		if text, err = format.HTMLToMarkdown(text); err != nil {
			return "", errors.Wrapf(err, "include %s", path)
		}
	}
	if headingOffset != 0 {
		if text, err = content.ModifyHeadings(text, headingOffset); err != nil {
			return "", errors.Wrapf(err, "include %s", path)
		}
	}
	return text, nil
}

func (g *Generator) renderConversion(sec config.Section) (string, error) {
	d, err := g.cache.Resolve(sec.Input)
	if err != nil {
		return "", errors.Wrapf(err, "input %q", sec.Input)
	}
	blocks, err := g.conv.Convert(d, sec.Output, convertOptions(sec.Options))
	if err != nil {
		return "", err
	}
	return content.RenderAll(blocks, format.New(format.Markdown))
}

func convertOptions(o config.Options) convert.Options {
	return convert.Options{
		ID:            o.ID,
		Level:         o.Level,
		Title:         o.Title,
		Link:          o.Link,
		Raw:           o.Raw,
		LocalAnchors:  o.LocalAnchors,
		NoHeading:     o.NoHeading,
		HeadingOffset: o.HeadingOffset,
		Filter:        buildFilter(o.Filter),
	}
}

// buildFilter combines the configured criteria; a child must meet all of
// them. Kinds compare case-insensitively, and call signatures are matched by
// the kind of the function or method they belong to.
func buildFilter(f *config.Filter) declaration.Filter {
	if f == nil || (len(f.Suffix) == 0 && len(f.Names) == 0 && len(f.Kinds) == 0) {
		return nil
	}
	var suffix declaration.Filter
	if len(f.Suffix) > 0 {
		suffix = declaration.NameSuffix(f.Suffix...)
	}
	return func(d *declaration.Declaration) bool {
		if suffix != nil && !suffix(d) {
			return false
		}
		if len(f.Names) > 0 && !slices.Contains(f.Names, d.Name()) {
			return false
		}
		if len(f.Kinds) > 0 {
			kind := d.Kind()
			if d.IsCallSignature() && d.Node().Parent() != nil {
				kind = d.Node().Parent().Kind
			}
			return slices.ContainsFunc(f.Kinds, func(k string) bool {
				return strings.EqualFold(k, string(kind))
			})
		}
		return true
	}
}

// priorSections reads the sections of an existing output file. A missing
// file has none.
func priorSections(path string) ([]content.Section, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return content.ExtractSections(string(data)), nil
}

// tocHeadings are the headings listed by a table of contents: everything
// below the document title.
func tocHeadings(headings []content.Heading) ([]content.Block, int) {
	var blocks []content.Block
	minLevel := 0
	for _, h := range headings {
		if h.Level < 2 {
			continue
		}
		if minLevel == 0 || h.Level < minLevel {
			minLevel = h.Level
		}
		blocks = append(blocks, h)
	}
	return blocks, minLevel
}

func (g *Generator) renderTOC(kind string, headings []content.Heading, fromPath string) string {
	blocks, minLevel := tocHeadings(headings)
	toc := content.RenderTOC(blocks, minLevel)
	if kind != BuiltinTOCX {
		return toc
	}
	ref := g.cfg.LinkBase()
	if ref == "" {
		ref = relativeURL(fromPath, g.cfg.Project.ReferencePage)
	}
	more := "See the [detailed reference](" + ref + ")."
	if toc == "" {
		return more
	}
	return toc + "\n\n" + more
}

// relativeURL links from one output path to another, both relative to the
// output directory.
func relativeURL(from, to string) string {
	rel, err := filepath.Rel(filepath.Dir(filepath.FromSlash(from)), filepath.FromSlash(to))
	if err != nil {
		return to
	}
	return filepath.ToSlash(rel)
}


package convert

import (
	"strings"

	"reflectdoc/internal/content"
	"reflectdoc/internal/declaration"
	"reflectdoc/internal/reflection"
)

type part int

const (
	partSummary part = iota
	partDetail
	partFull
)

// category is one kind of child listing.
type category struct {
	rootTitle string // heading under the root
	childWord string // heading word under an interface or class
	headers   []string
	supported func(*declaration.Declaration) bool
	list      func(*declaration.Declaration, declaration.Filter) ([]*declaration.Declaration, error)
	row       func(child *declaration.Declaration, name string) []string
	// nested children are rendered with FULL instead of SELF
	nested bool
}

var (
	values = &category{
		rootTitle: "Variables",
		childWord: "properties",
		headers:   []string{"Name", "Type", "Description"},
		supported: (*declaration.Declaration).HasVariablesOrProperties,
		list:      (*declaration.Declaration).VariablesOrProperties,
		row: func(c *declaration.Declaration, name string) []string {
			return []string{name, c.DisplayType(), c.ShortText()}
		},
	}
	functions = &category{
		rootTitle: "Functions",
		childWord: "methods",
		headers:   []string{"Function", "Return Type", "Description"},
		supported: (*declaration.Declaration).HasFunctionsOrMethods,
		list:      (*declaration.Declaration).FunctionsOrMethods,
		row: func(c *declaration.Declaration, name string) []string {
			return []string{name, c.DisplayType(), c.ShortText()}
		},
	}
	interfaces = &category{
		rootTitle: "Interfaces",
		childWord: "interfaces",
		headers:   []string{"Interface", "Description"},
		supported: (*declaration.Declaration).HasInterfaces,
		list:      (*declaration.Declaration).Interfaces,
		row: func(c *declaration.Declaration, name string) []string {
			return []string{name, c.ShortText()}
		},
		nested: true,
	}
	classes = &category{
		rootTitle: "Classes",
		childWord: "classes",
		headers:   []string{"Class", "Description"},
		supported: (*declaration.Declaration).HasClasses,
		list:      (*declaration.Declaration).Classes,
		row: func(c *declaration.Declaration, name string) []string {
			return []string{name, c.ShortText()}
		},
		nested: true,
	}

	categories = []*category{values, functions, interfaces, classes}

	categoryNames = map[string]*category{
		"VARIABLES":  values,
		"PROPERTIES": values,
		"FUNCTIONS":  functions,
		"METHODS":    functions,
		"INTERFACES": interfaces,
		"CLASSES":    classes,
	}
)

func parseCategoryMode(mode string) (part, *category, bool) {
	prefixes := []struct {
		prefix string
		part   part
	}{
		{"SUMMARY_", partSummary},
		{"DETAIL_", partDetail},
		{"FULL_", partFull},
	}
	for _, p := range prefixes {
		if !strings.HasPrefix(mode, p.prefix) {
			continue
		}
		cat, ok := categoryNames[mode[len(p.prefix):]]
		return p.part, cat, ok
	}
	return 0, nil, false
}

// title is the default heading of the category under d.
func (cat *category) title(d *declaration.Declaration) string {
	if d.IsKind(reflection.KindGlobal) {
		return cat.rootTitle
	}
	return "`" + d.Name() + "` " + cat.childWord
}

// anchor is the id of the category heading under d.
func (cat *category) anchor(d *declaration.Declaration) string {
	if d.IsKind(reflection.KindGlobal) {
		return content.BuildID(d.ID() + " " + cat.rootTitle)
	}
	return content.BuildID(d.ID() + " " + cat.childWord)
}

// summary renders the one-row-per-child table. Names link to the in-page
// anchor or to the external reference, required values and functions are
// bold.
func summary(d *declaration.Declaration, cat *category, opts Options, localDefault bool) ([]content.Block, error) {
	children, err := cat.list(d, opts.Filter)
	if err != nil {
		return nil, err
	}
	local := opts.localAnchors(localDefault)
	rows := make([][]string, 0, len(children))
	for _, c := range children {
		name := c.Name()
		if c.IsCallSignature() {
			name = c.Signature()
		}
		switch {
		case local && c.ID() != "":
			name = "[" + name + "](#" + c.ID() + ")"
		case c.Link() != "":
			name = "[" + name + "](" + c.Link() + ")"
		}
		if !cat.nested && !c.IsOptional() {
			name = "**" + name + "**"
		}
		rows = append(rows, cat.row(c, name))
	}
	return []content.Block{content.NewTable(cat.headers, rows)}, nil
}

// detail renders every child one level below headingLevel, each followed by
// a horizontal rule.
func (c *Converter) detail(d *declaration.Declaration, cat *category, opts Options, headingLevel int) ([]content.Block, error) {
	children, err := cat.list(d, opts.Filter)
	if err != nil {
		return nil, err
	}
	childOpts := Options{LocalAnchors: opts.LocalAnchors}
	var blocks []content.Block
	for _, child := range children {
		child = child.WithLevel(headingLevel + 1)
		var converted []content.Block
		if cat.nested {
			converted, err = c.full(child, childOpts)
		} else {
			converted, err = self(child, childOpts)
		}
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, converted...)
		blocks = append(blocks, content.NewText("---"))
	}
	return blocks, nil
}

// fullCategory renders the category heading, the summary table and the
// details. Summary rows link locally unless told otherwise.
func (c *Converter) fullCategory(d *declaration.Declaration, cat *category, opts Options) ([]content.Block, error) {
	var blocks []content.Block
	headingLevel := d.Level() - 1
	if !opts.NoHeading {
		headingLevel = d.Level()
		title := opts.Title
		if title == "" {
			title = cat.title(d)
		}
		h, err := content.NewHeading(title, headingLevel, cat.anchor(d), opts.Link)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, h)
	}
	table, err := summary(d, cat, opts, true)
	if err != nil {
		return nil, err
	}
	blocks = append(blocks, table...)

	details, err := c.detail(d, cat, Options{Filter: opts.Filter, LocalAnchors: Bool(opts.localAnchors(true))}, headingLevel)
	if err != nil {
		return nil, err
	}
	return append(blocks, details...), nil
}

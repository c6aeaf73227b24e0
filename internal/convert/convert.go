// Package convert turns declarations into content blocks under named
// output modes.
package convert

import (
	"strings"

	"github.com/cockroachdb/errors"

	"reflectdoc/internal/content"
	"reflectdoc/internal/declaration"
	"reflectdoc/internal/reflection"
)

var ErrUnknownOutput = errors.New("unknown output")

// Output modes. Category modes are built from a prefix and a category.
const (
	ModeSelf          = "SELF"
	ModeFull          = "FULL"
	ModeValue         = "VALUE"
	ModeSectionPrefix = "SECTION:"
)

// Options tune a single conversion.
type Options struct {
	ID    string // overrides the declaration id
	Level int    // overrides the heading level when > 0
	Title string // custom heading title
	Link  string // custom heading link
	// Raw renders object and array values as a fenced JSON block.
	Raw bool
	// LocalAnchors links summary rows to in-page anchors instead of the
	// external reference. Nil means the mode's default.
	LocalAnchors *bool
	// NoHeading suppresses the category heading of FULL_<CATEGORY>.
	NoHeading bool
	Filter    declaration.Filter
	// HeadingOffset shifts the headings of a SECTION:<id> conversion.
	HeadingOffset int
}

// Bool returns a pointer to b, for Options.LocalAnchors.
func Bool(b bool) *bool {
	return &b
}

func (o Options) localAnchors(def bool) bool {
	if o.LocalAnchors == nil {
		return def
	}
	return *o.LocalAnchors
}

// Func is a caller-registered converter for a custom output mode.
type Func func(d *declaration.Declaration, opts Options) ([]content.Block, error)

// Converter dispatches output modes. The zero value handles the built-in
// modes only.
type Converter struct {
	custom map[string]Func
}

// New returns a converter that falls back to custom for modes it does not
// know.
func New(custom map[string]Func) *Converter {
	c := &Converter{custom: make(map[string]Func, len(custom))}
	for name, fn := range custom {
		c.custom[name] = fn
	}
	return c
}

// Register adds a custom output mode.
func (c *Converter) Register(name string, fn Func) {
	if c.custom == nil {
		c.custom = make(map[string]Func)
	}
	c.custom[name] = fn
}

// Convert renders d under mode.
func (c *Converter) Convert(d *declaration.Declaration, mode string, opts Options) ([]content.Block, error) {
	d = position(d, opts)
	name := strings.TrimSpace(mode)
	upper := strings.ToUpper(name)

	switch {
	case upper == ModeSelf:
		return self(d, opts)
	case upper == ModeFull:
		return c.full(d, opts)
	case upper == ModeValue:
		return value(d, opts)
	case strings.HasPrefix(upper, ModeSectionPrefix):
		return section(d, strings.TrimSpace(name[len(ModeSectionPrefix):]), opts)
	}
	if part, cat, ok := parseCategoryMode(upper); ok {
		switch part {
		case partSummary:
			return summary(d, cat, opts, false)
		case partDetail:
			return c.detail(d, cat, opts, d.Level()-1)
		default:
			return c.fullCategory(d, cat, opts)
		}
	}
	if fn, ok := c.custom[name]; ok {
		return fn(d, opts)
	}
	return nil, errors.WithHint(
		errors.Wrapf(ErrUnknownOutput, "output %q for %q", mode, d.Name()),
		"use SELF, FULL, VALUE, SECTION:<id> or a SUMMARY_/DETAIL_/FULL_ category mode",
	)
}

// position applies the id and level overrides of opts.
func position(d *declaration.Declaration, opts Options) *declaration.Declaration {
	if opts.ID != "" {
		d = d.WithID(opts.ID)
	}
	if opts.Level > 0 {
		d = d.WithLevel(opts.Level)
	}
	return d
}

// full renders the declaration itself followed by every child category it
// has. The root has no heading of its own, so its categories start at its
// level.
func (c *Converter) full(d *declaration.Declaration, opts Options) ([]content.Block, error) {
	var blocks []content.Block
	level := d.Level()
	if !d.IsKind(reflection.KindGlobal) {
		own, err := self(d, opts)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, own...)
		level++
	}
	sub := Options{LocalAnchors: opts.LocalAnchors}
	for _, cat := range categories {
		if !cat.supported(d) {
			continue
		}
		children, err := cat.list(d, nil)
		if err != nil {
			return nil, err
		}
		if len(children) == 0 {
			continue
		}
		catBlocks, err := c.fullCategory(d.WithLevel(level), cat, sub)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, catBlocks...)
	}
	return blocks, nil
}

func section(d *declaration.Declaration, id string, opts Options) ([]content.Block, error) {
	text, ok := d.Section(id)
	if !ok {
		return []content.Block{content.NewText()}, nil
	}
	if opts.HeadingOffset != 0 {
		shifted, err := content.ModifyHeadings(text, opts.HeadingOffset)
		if err != nil {
			return nil, errors.Wrapf(err, "section %q of %q", id, d.Name())
		}
		text = shifted
	}
	return []content.Block{content.NewText(text)}, nil
}

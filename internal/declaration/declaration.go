// Package declaration wraps reflection nodes in positioned, read-only views.
//
// A Declaration carries the id and heading level it will be rendered with.
// WithID, WithLevel and Shift return new views; the underlying reflection
// node is shared and never modified.
package declaration

import (
	"regexp"
	"strings"

	"github.com/cockroachdb/errors"

	"reflectdoc/internal/content"
	"reflectdoc/internal/literal"
	"reflectdoc/internal/reflection"
)

// DefaultLevel is the heading level of a freshly resolved declaration.
const DefaultLevel = 2

var blankRuns = regexp.MustCompile(`\n{3,}`)

// Parameter is one parameter of a call signature.
type Parameter struct {
	Name         string
	Type         *reflection.Type
	DisplayType  string
	IsOptional   bool
	Text         string
	DefaultValue string
}

// Declaration is a positioned view over one reflection node.
type Declaration struct {
	svc      *reflection.Service
	node     *reflection.Node
	info     reflection.Info
	id       string
	level    int
	longText string
	sections map[string]string
}

// New wraps node. The id defaults to the slug of its name (empty for the
// root) and the level to DefaultLevel.
func New(svc *reflection.Service, node *reflection.Node) *Declaration {
	info := svc.Extract(node)
	d := &Declaration{
		svc:      svc,
		node:     node,
		info:     info,
		level:    DefaultLevel,
		sections: map[string]string{},
	}
	if node.Kind != reflection.KindGlobal {
		d.id = content.BuildID(node.Name)
	}
	if info.LongText != "" {
		d.sections = content.SectionMap(content.ExtractSections(info.LongText))
		d.longText = strings.TrimSpace(blankRuns.ReplaceAllString(content.StripSections(info.LongText), "\n\n"))
	}
	return d
}

// Resolve looks up selector in svc and wraps the result. The segments of a
// dotted selector after the first are positioned like Child, so
// "Greeter.greet" has the id greeter-greet one level below Greeter.
func Resolve(svc *reflection.Service, selector string) (*Declaration, error) {
	selector = strings.TrimSpace(selector)
	head, rest, dotted := strings.Cut(selector, ".")
	if !dotted || strings.HasPrefix(selector, "[") {
		node, err := svc.Resolve(selector)
		if err != nil {
			return nil, err
		}
		return New(svc, node), nil
	}

	node, err := svc.Resolve(head)
	if err != nil {
		return nil, errors.Wrapf(err, "selector %q", selector)
	}
	d := New(svc, node)
	for _, name := range strings.Split(rest, ".") {
		if d, err = d.Child(name); err != nil {
			return nil, errors.Wrapf(err, "selector %q", selector)
		}
	}
	return d, nil
}

// WithID returns a copy of d with another id.
func (d *Declaration) WithID(id string) *Declaration {
	c := *d
	c.id = id
	return &c
}

// WithLevel returns a copy of d at another heading level.
func (d *Declaration) WithLevel(level int) *Declaration {
	c := *d
	c.level = level
	return &c
}

// Shift returns a copy of d moved offset heading levels deeper (or shallower
// for a negative offset).
func (d *Declaration) Shift(offset int) *Declaration {
	return d.WithLevel(d.level + offset)
}

func (d *Declaration) ID() string                   { return d.id }
func (d *Declaration) Level() int                   { return d.level }
func (d *Declaration) Name() string                 { return d.info.Name }
func (d *Declaration) Kind() reflection.Kind        { return d.node.Kind }
func (d *Declaration) Node() *reflection.Node       { return d.node }
func (d *Declaration) Service() *reflection.Service { return d.svc }
func (d *Declaration) Link() string                 { return d.info.Link }
func (d *Declaration) ShortText() string            { return d.info.ShortText }
func (d *Declaration) ReturnsText() string          { return d.info.ReturnsText }
func (d *Declaration) Type() *reflection.Type       { return d.info.Type }
func (d *Declaration) DisplayType() string          { return d.info.DisplayType }
func (d *Declaration) IsOptional() bool             { return d.info.IsOptional }
func (d *Declaration) SourceFileName() string       { return d.info.SourceFileName }

// LongText is the long-form doc text with local sections removed.
func (d *Declaration) LongText() string {
	return d.longText
}

// DefaultValue is the parsed initializer.
func (d *Declaration) DefaultValue() literal.Value {
	return literal.Parse(d.info.DefaultValue)
}

// Section returns a local section of the long-form doc text.
func (d *Declaration) Section(id string) (string, bool) {
	s, ok := d.sections[id]
	return s, ok
}

// IsKind reports whether the wrapped node has kind k.
func (d *Declaration) IsKind(k reflection.Kind) bool {
	return d.node.Kind == k
}

// IsCallSignature reports whether d renders as `name(params)`.
func (d *Declaration) IsCallSignature() bool {
	return d.node.Kind == reflection.KindCallSignature
}

// IsValue reports whether d is a variable, property or accessor.
func (d *Declaration) IsValue() bool {
	switch d.node.Kind {
	case reflection.KindVariable, reflection.KindProperty, reflection.KindAccessor:
		return true
	}
	return false
}

// Parameters lists the parameters of a call signature. Other kinds have none.
func (d *Declaration) Parameters() []Parameter {
	if !d.IsCallSignature() {
		return nil
	}
	out := make([]Parameter, 0, len(d.node.Parameters))
	for _, p := range d.node.Parameters {
		info := d.svc.Extract(p)
		text := info.ShortText
		if text == "" {
			text = strings.TrimSpace(d.info.Params[p.Name])
		}
		out = append(out, Parameter{
			Name:         p.Name,
			Type:         info.Type,
			DisplayType:  info.DisplayType,
			IsOptional:   info.IsOptional,
			Text:         text,
			DefaultValue: info.DefaultValue,
		})
	}
	return out
}

// Signature renders a call signature as `name(a, b?)`.
func (d *Declaration) Signature() string {
	var names []string
	for _, p := range d.Parameters() {
		name := p.Name
		if p.IsOptional {
			name += "?"
		}
		names = append(names, name)
	}
	return d.Name() + "(" + strings.Join(names, ", ") + ")"
}

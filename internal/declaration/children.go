package declaration

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"reflectdoc/internal/content"
	"reflectdoc/internal/reflection"
)

var ErrUnsupported = errors.New("unsupported capability")

// Filter keeps the declarations it returns true for.
type Filter func(*Declaration) bool

// NameSuffix keeps declarations whose name ends with one of the suffixes.
func NameSuffix(suffixes ...string) Filter {
	return func(d *Declaration) bool {
		for _, s := range suffixes {
			if strings.HasSuffix(d.Name(), s) {
				return true
			}
		}
		return false
	}
}

// HasVariablesOrProperties reports whether d can list variables or
// properties.
func (d *Declaration) HasVariablesOrProperties() bool {
	switch d.node.Kind {
	case reflection.KindGlobal, reflection.KindInterface, reflection.KindClass:
		return true
	}
	return false
}

// HasFunctionsOrMethods reports whether d can list functions or methods.
func (d *Declaration) HasFunctionsOrMethods() bool {
	switch d.node.Kind {
	case reflection.KindGlobal, reflection.KindClass:
		return true
	}
	return false
}

// HasInterfaces reports whether d can list interfaces.
func (d *Declaration) HasInterfaces() bool {
	return d.node.Kind == reflection.KindGlobal
}

// HasClasses reports whether d can list classes.
func (d *Declaration) HasClasses() bool {
	return d.node.Kind == reflection.KindGlobal
}

// Child returns the named child one level deeper, with an id composed from
// d's id and the child name.
func (d *Declaration) Child(name string) (*Declaration, error) {
	node, err := d.svc.Child(d.node, name)
	if err != nil {
		return nil, err
	}
	return d.position(node, ""), nil
}

// VariablesOrProperties lists variables, properties and accessors.
func (d *Declaration) VariablesOrProperties(filter Filter) ([]*Declaration, error) {
	if !d.HasVariablesOrProperties() {
		return nil, d.unsupported("variables or properties")
	}
	nodes := d.svc.ChildrenByKind(d.node, reflection.KindVariable, reflection.KindProperty, reflection.KindAccessor)
	return d.wrap(nodes, filter), nil
}

// FunctionsOrMethods lists one declaration per call signature. Overloads of
// the same function get ids suffixed with their index.
func (d *Declaration) FunctionsOrMethods(filter Filter) ([]*Declaration, error) {
	if !d.HasFunctionsOrMethods() {
		return nil, d.unsupported("functions or methods")
	}
	var out []*Declaration
	for _, fn := range d.svc.ChildrenByKind(d.node, reflection.KindFunction, reflection.KindMethod) {
		switch len(fn.Signatures) {
		case 0:
			out = append(out, d.position(fn, ""))
		case 1:
			out = append(out, d.position(fn.Signatures[0], ""))
		default:
			for i, sig := range fn.Signatures {
				out = append(out, d.position(sig, strconv.Itoa(i)))
			}
		}
	}
	return apply(out, filter), nil
}

// Signatures lists the call signatures of a function or method at d's own
// id and level. Overloads get ids suffixed with their index.
func (d *Declaration) Signatures() []*Declaration {
	switch d.node.Kind {
	case reflection.KindFunction, reflection.KindMethod:
	default:
		return nil
	}
	out := make([]*Declaration, 0, len(d.node.Signatures))
	for i, sig := range d.node.Signatures {
		s := New(d.svc, sig)
		s.id, s.level = d.id, d.level
		if len(d.node.Signatures) > 1 {
			s.id = d.id + "-" + strconv.Itoa(i)
		}
		out = append(out, s)
	}
	return out
}

// Interfaces lists nested interfaces.
func (d *Declaration) Interfaces(filter Filter) ([]*Declaration, error) {
	if !d.HasInterfaces() {
		return nil, d.unsupported("interfaces")
	}
	return d.wrap(d.svc.ChildrenByKind(d.node, reflection.KindInterface), filter), nil
}

// Classes lists nested classes.
func (d *Declaration) Classes(filter Filter) ([]*Declaration, error) {
	if !d.HasClasses() {
		return nil, d.unsupported("classes")
	}
	return d.wrap(d.svc.ChildrenByKind(d.node, reflection.KindClass), filter), nil
}

func (d *Declaration) unsupported(what string) error {
	return errors.Wrapf(ErrUnsupported, "%s %q has no %s", strings.ToLower(string(d.node.Kind)), d.Name(), what)
}

func (d *Declaration) wrap(nodes []*reflection.Node, filter Filter) []*Declaration {
	out := make([]*Declaration, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, d.position(n, ""))
	}
	return apply(out, filter)
}

// position wraps a child node one level below d.
func (d *Declaration) position(node *reflection.Node, suffix string) *Declaration {
	child := New(d.svc, node)
	id := content.BuildID(d.id + " " + node.Name)
	if suffix != "" {
		id += "-" + suffix
	}
	child.id = id
	child.level = d.level + 1
	return child
}

func apply(list []*Declaration, filter Filter) []*Declaration {
	if filter == nil {
		return list
	}
	out := list[:0]
	for _, d := range list {
		if filter(d) {
			out = append(out, d)
		}
	}
	return out
}

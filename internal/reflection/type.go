package reflection

import "strings"

// TypeKind tags a Type.
type TypeKind string

const (
	TypeIntrinsic    TypeKind = "intrinsic"
	TypeReference    TypeKind = "reference"
	TypeArray        TypeKind = "array"
	TypeUnion        TypeKind = "union"
	TypeIntersection TypeKind = "intersection"
	TypeTuple        TypeKind = "tuple"
	TypeLiteral      TypeKind = "literal"
	// TypeRaw holds source text the producer did not decompose
	// (object literal types, function types, conditional types...).
	TypeRaw TypeKind = "raw"
)

// Type is a structured TypeScript type expression.
type Type struct {
	Kind          TypeKind `json:"type"`
	Name          string   `json:"name,omitempty"`
	ElementType   *Type    `json:"elementType,omitempty"`
	Types         []*Type  `json:"types,omitempty"`
	TypeArguments []*Type  `json:"typeArguments,omitempty"`
}

// TypeLinker returns the link of a documented entity by its simple name.
type TypeLinker func(name string) (string, bool)

// String renders t the way it would be written in TypeScript source.
func (t *Type) String() string {
	return t.render(nil)
}

// Display renders t like String, except that references the linker knows
// become Markdown links. Everything else is returned as inline code.
func (t *Type) Display(link TypeLinker) string {
	if t == nil {
		return ""
	}
	if link == nil || !t.hasLinkedReference(link) {
		return "`" + t.String() + "`"
	}
	return t.render(link)
}

// ReferenceNames lists every referenced type name in t, depth first.
func (t *Type) ReferenceNames() []string {
	if t == nil {
		return nil
	}
	var out []string
	if t.Kind == TypeReference {
		out = append(out, t.Name)
	}
	if t.ElementType != nil {
		out = append(out, t.ElementType.ReferenceNames()...)
	}
	for _, list := range [][]*Type{t.Types, t.TypeArguments} {
		for _, c := range list {
			out = append(out, c.ReferenceNames()...)
		}
	}
	return out
}

func (t *Type) hasLinkedReference(link TypeLinker) bool {
	for _, name := range t.ReferenceNames() {
		if _, ok := link(name); ok {
			return true
		}
	}
	return false
}

// render writes t. With a linker, linked names become `[Name](url)` and the
// remaining fragments are wrapped in code spans.
func (t *Type) render(link TypeLinker) string {
	if t == nil {
		return ""
	}
	code := func(s string) string {
		if link == nil || s == "" {
			return s
		}
		return "`" + s + "`"
	}
	switch t.Kind {
	case TypeReference:
		name := code(t.Name)
		if link != nil {
			if url, ok := link(t.Name); ok {
				name = "[" + t.Name + "](" + url + ")"
			}
		}
		if len(t.TypeArguments) == 0 {
			return name
		}
		return name + code("<") + t.join(t.TypeArguments, ", ", link) + code(">")
	case TypeArray:
		elem := t.ElementType.render(link)
		if t.ElementType.Kind == TypeUnion || t.ElementType.Kind == TypeIntersection {
			elem = code("(") + elem + code(")")
		}
		return elem + code("[]")
	case TypeUnion:
		return t.join(t.Types, " | ", link)
	case TypeIntersection:
		return t.join(t.Types, " & ", link)
	case TypeTuple:
		return code("[") + t.join(t.Types, ", ", link) + code("]")
	default:
		return code(t.Name)
	}
}

func (t *Type) join(types []*Type, sep string, link TypeLinker) string {
	parts := make([]string, 0, len(types))
	for _, c := range types {
		parts = append(parts, c.render(link))
	}
	if link != nil {
		sep = "`" + strings.TrimSpace(sep) + "`"
		return strings.Join(parts, " "+sep+" ")
	}
	return strings.Join(parts, sep)
}

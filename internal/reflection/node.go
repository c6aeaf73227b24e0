package reflection

import "strings"

// Kind tags a reflection node.
type Kind string

const (
	KindGlobal        Kind = "Global"
	KindInterface     Kind = "Interface"
	KindClass         Kind = "Class"
	KindProperty      Kind = "Property"
	KindMethod        Kind = "Method"
	KindFunction      Kind = "Function"
	KindVariable      Kind = "Variable"
	KindCallSignature Kind = "CallSignature"
	KindAccessor      Kind = "Accessor"
	KindGetSignature  Kind = "GetSignature"
	KindSetSignature  Kind = "SetSignature"
	KindParameter     Kind = "Parameter"
)

// Comment is a parsed doc comment.
type Comment struct {
	ShortText string            `json:"shortText,omitempty"`
	Text      string            `json:"text,omitempty"`
	Returns   string            `json:"returns,omitempty"`
	Params    map[string]string `json:"params,omitempty"`
}

// Flags carries boolean modifiers of a node.
type Flags struct {
	IsOptional bool `json:"isOptional,omitempty"`
	IsExported bool `json:"isExported,omitempty"`
	IsStatic   bool `json:"isStatic,omitempty"`
}

// Source points at the declaration site.
type Source struct {
	FileName string `json:"fileName"`
	Line     int    `json:"line,omitempty"`
}

// Node is one entry of the reflection tree. Nodes are read-only once the
// tree is built; parent links are restored by Link.
type Node struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Kind         Kind      `json:"kind"`
	Flags        Flags     `json:"flags,omitempty"`
	Comment      *Comment  `json:"comment,omitempty"`
	Type         *Type     `json:"type,omitempty"`
	DefaultValue string    `json:"defaultValue,omitempty"`
	Sources      []Source  `json:"sources,omitempty"`
	Children     []*Node   `json:"children,omitempty"`
	Signatures   []*Node   `json:"signatures,omitempty"`
	Parameters   []*Node   `json:"parameters,omitempty"`
	GetSignature *Node     `json:"getSignature,omitempty"`
	SetSignature *Node     `json:"setSignature,omitempty"`

	parent *Node
}

// Parent returns the enclosing node, nil for the root.
func (n *Node) Parent() *Node {
	return n.parent
}

// QualifiedName joins the names from the first non-root ancestor down to n
// with dots.
func (n *Node) QualifiedName() string {
	var parts []string
	for cur := n; cur != nil; cur = cur.parent {
		if cur.Kind == KindGlobal {
			break
		}
		if cur.Kind == KindCallSignature || cur.Kind == KindGetSignature || cur.Kind == KindSetSignature {
			continue
		}
		parts = append([]string{cur.Name}, parts...)
	}
	return strings.Join(parts, ".")
}

// SourceFileName returns the first recorded source file, if any.
func (n *Node) SourceFileName() string {
	if len(n.Sources) == 0 {
		return ""
	}
	return n.Sources[0].FileName
}

// Link restores parent pointers below n.
func (n *Node) Link() {
	for _, list := range [][]*Node{n.Children, n.Signatures, n.Parameters} {
		for _, c := range list {
			c.parent = n
			c.Link()
		}
	}
	for _, c := range []*Node{n.GetSignature, n.SetSignature} {
		if c != nil {
			c.parent = n
			c.Link()
		}
	}
}

// Walk visits n and every node below it, depth first.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, list := range [][]*Node{n.Children, n.Signatures, n.Parameters} {
		for _, c := range list {
			c.Walk(fn)
		}
	}
	for _, c := range []*Node{n.GetSignature, n.SetSignature} {
		if c != nil {
			c.Walk(fn)
		}
	}
}

// Renumber assigns sequential ids in walk order, starting at 0 for n.
func (n *Node) Renumber() {
	next := 0
	n.Walk(func(c *Node) {
		c.ID = next
		next++
	})
}

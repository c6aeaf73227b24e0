package reflection

import (
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"

	"reflectdoc/internal/content"
)

var (
	ErrNoReflection = errors.New("no reflection found")
	ErrNoChild      = errors.New("no child")
)

// Info is the normalized metadata of one node.
type Info struct {
	Name           string
	Link           string
	Type           *Type
	DisplayType    string
	IsOptional     bool
	DefaultValue   string
	ShortText      string
	LongText       string
	ReturnsText    string
	Params         map[string]string
	SourceFileName string
}

// Service answers selector lookups over one reflection tree.
type Service struct {
	root     *Node
	linkBase string
	// documented interfaces and classes by simple name
	types map[string]*Node
}

// NewService wraps root. linkBase is the URL of the reference page; when it
// is empty nodes have no external link.
func NewService(root *Node, linkBase string) *Service {
	root.Link()
	s := &Service{root: root, linkBase: linkBase, types: make(map[string]*Node)}
	root.Walk(func(n *Node) {
		if n.Kind != KindInterface && n.Kind != KindClass {
			return
		}
		if _, ok := s.types[n.Name]; !ok {
			s.types[n.Name] = n
		}
	})
	return s
}

// Root returns the Global node.
func (s *Service) Root() *Node {
	return s.root
}

// LinkBase returns the reference page URL.
func (s *Service) LinkBase() string {
	return s.linkBase
}

// Resolve finds the node a selector names:
//
//	"" or "*"          the root
//	"[a.ts, b.ts]"     an ad-hoc Global holding the top-level declarations of the listed sources
//	"Name.child.child" a dotted path from the root
func (s *Service) Resolve(selector string) (*Node, error) {
	selector = strings.TrimSpace(selector)
	switch {
	case selector == "" || selector == "*":
		return s.root, nil
	case strings.HasPrefix(selector, "[") && strings.HasSuffix(selector, "]"):
		return s.resolveSources(selector[1 : len(selector)-1])
	}

	parts := strings.Split(selector, ".")
	node := s.findTopLevel(parts[0])
	if node == nil {
		return nil, errors.Wrapf(ErrNoReflection, "selector %q", selector)
	}
	for _, name := range parts[1:] {
		child, err := s.Child(node, name)
		if err != nil {
			return nil, errors.Wrapf(err, "selector %q", selector)
		}
		node = child
	}
	return node, nil
}

// Child returns the direct child of n called name.
func (s *Service) Child(n *Node, name string) (*Node, error) {
	for _, c := range n.Children {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, errors.Wrapf(ErrNoChild, "%q has no child %q", n.Name, name)
}

// ChildrenByKind returns the direct children of n whose kind is one of kinds,
// in declaration order.
func (s *Service) ChildrenByKind(n *Node, kinds ...Kind) []*Node {
	var out []*Node
	for _, c := range n.Children {
		for _, k := range kinds {
			if c.Kind == k {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// Link returns the external reference URL of n, or "" without a link base.
func (s *Service) Link(n *Node) string {
	if s.linkBase == "" || n.Kind == KindGlobal {
		return ""
	}
	return s.linkBase + "#" + content.BuildID(n.QualifiedName())
}

// TypeLink resolves a type name to the link of a documented interface or
// class.
func (s *Service) TypeLink(name string) (string, bool) {
	n, ok := s.types[name]
	if !ok {
		return "", false
	}
	link := s.Link(n)
	return link, link != ""
}

// Extract derives the normalized metadata of n. Functions take their doc and
// return type from the first signature, accessors from the getter.
func (s *Service) Extract(n *Node) Info {
	info := Info{
		Name:           n.Name,
		Link:           s.Link(n),
		Type:           n.Type,
		IsOptional:     n.Flags.IsOptional,
		DefaultValue:   n.DefaultValue,
		SourceFileName: n.SourceFileName(),
	}
	comment := n.Comment
	switch {
	case n.Kind == KindAccessor && n.GetSignature != nil:
		info.Type = n.GetSignature.Type
		if comment == nil {
			comment = n.GetSignature.Comment
		}
	case len(n.Signatures) > 0 && comment == nil:
		comment = n.Signatures[0].Comment
	}
	if n.Kind == KindCallSignature && n.Parent() != nil && info.SourceFileName == "" {
		info.SourceFileName = n.Parent().SourceFileName()
	}
	if comment != nil {
		info.ShortText = strings.TrimSpace(comment.ShortText)
		info.LongText = strings.TrimSpace(comment.Text)
		info.ReturnsText = strings.TrimSpace(comment.Returns)
		info.Params = comment.Params
	}
	if info.Type != nil {
		info.DisplayType = info.Type.Display(s.TypeLink)
	}
	return info
}

func (s *Service) findTopLevel(name string) *Node {
	for _, c := range s.root.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func (s *Service) resolveSources(list string) (*Node, error) {
	var paths []string
	for _, p := range strings.Split(list, ",") {
		if p = strings.TrimSpace(p); p != "" {
			paths = append(paths, filepath.ToSlash(filepath.Clean(p)))
		}
	}
	project := &Node{Name: strings.Join(paths, ", "), Kind: KindGlobal}
	for _, c := range s.root.Children {
		file := filepath.ToSlash(c.SourceFileName())
		for _, p := range paths {
			if file == p || strings.HasPrefix(file, p+"/") {
				project.Children = append(project.Children, c)
				break
			}
		}
	}
	if len(project.Children) == 0 {
		return nil, errors.Wrapf(ErrNoReflection, "sources %v", paths)
	}
	return project, nil
}

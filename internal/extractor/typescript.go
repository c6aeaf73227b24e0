package extractor

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"reflectdoc/internal/reflection"
)

// TypeScriptExtractor implements LanguageExtractor for TypeScript. Only
// exported top-level declarations are reported.
type TypeScriptExtractor struct{}

func (t *TypeScriptExtractor) GetLanguage() *sitter.Language {
	return typescript.GetLanguage()
}

func (t *TypeScriptExtractor) GetQuery() string {
	return `(program (export_statement) @export)`
}

func (t *TypeScriptExtractor) ExtractNodes(captureName string, node *sitter.Node, sourceCode []byte, fileName string) []*reflection.Node {
	if captureName != "export" {
		return nil
	}
	decl := node.ChildByFieldName("declaration")
	if decl == nil {
		return nil
	}
	comment := docComment(node, sourceCode)
	source := []reflection.Source{{FileName: fileName, Line: int(decl.StartPoint().Row) + 1}}

	var out []*reflection.Node
	switch decl.Type() {
	case "function_declaration", "function_signature":
		if n := t.extractFunction(decl, sourceCode, comment); n != nil {
			out = append(out, n)
		}
	case "class_declaration", "abstract_class_declaration":
		if n := t.extractClass(decl, sourceCode, fileName, comment); n != nil {
			out = append(out, n)
		}
	case "interface_declaration":
		if n := t.extractInterface(decl, sourceCode, fileName, comment); n != nil {
			out = append(out, n)
		}
	case "lexical_declaration", "variable_declaration":
		out = append(out, t.extractVariables(decl, sourceCode, comment)...)
	}
	for _, n := range out {
		n.Sources = source
		n.Flags.IsExported = true
	}
	return out
}

func (t *TypeScriptExtractor) extractFunction(node *sitter.Node, src []byte, comment *reflection.Comment) *reflection.Node {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	name := nameNode.Content(src)
	return &reflection.Node{
		Name:       name,
		Kind:       reflection.KindFunction,
		Signatures: []*reflection.Node{t.signature(name, node, src, comment)},
	}
}

// signature builds a call signature from anything carrying parameters and
// return_type fields.
func (t *TypeScriptExtractor) signature(name string, node *sitter.Node, src []byte, comment *reflection.Comment) *reflection.Node {
	sig := &reflection.Node{
		Name:    name,
		Kind:    reflection.KindCallSignature,
		Comment: comment,
		Type:    parseType(node.ChildByFieldName("return_type"), src),
	}
	if sig.Type == nil {
		sig.Type = &reflection.Type{Kind: reflection.TypeIntrinsic, Name: "void"}
	}
	sig.Parameters = t.parameters(node.ChildByFieldName("parameters"), src)
	return sig
}

func (t *TypeScriptExtractor) parameters(params *sitter.Node, src []byte) []*reflection.Node {
	if params == nil {
		return nil
	}
	var out []*reflection.Node
	for i := 0; i < int(params.NamedChildCount()); i++ {
		p := params.NamedChild(i)
		if p.Type() != "required_parameter" && p.Type() != "optional_parameter" {
			continue
		}
		pattern := p.ChildByFieldName("pattern")
		if pattern == nil {
			continue
		}
		param := &reflection.Node{
			Name: pattern.Content(src),
			Kind: reflection.KindParameter,
			Type: parseType(p.ChildByFieldName("type"), src),
		}
		if v := p.ChildByFieldName("value"); v != nil {
			param.DefaultValue = v.Content(src)
		}
		param.Flags.IsOptional = p.Type() == "optional_parameter" || param.DefaultValue != ""
		out = append(out, param)
	}
	return out
}

func (t *TypeScriptExtractor) extractClass(node *sitter.Node, src []byte, fileName string, comment *reflection.Comment) *reflection.Node {
	nameNode := node.ChildByFieldName("name")
	body := node.ChildByFieldName("body")
	if nameNode == nil || body == nil {
		return nil
	}
	class := &reflection.Node{
		Name:    nameNode.Content(src),
		Kind:    reflection.KindClass,
		Comment: comment,
	}

	accessors := map[string]*reflection.Node{}
	var members []*reflection.Node
	for i := 0; i < int(body.NamedChildCount()); i++ {
		member := body.NamedChild(i)
		nameNode := member.ChildByFieldName("name")
		if nameNode == nil || !isPublic(member, nameNode, src) {
			continue
		}
		name := memberName(nameNode, src)
		doc := docComment(member, src)
		source := []reflection.Source{{FileName: fileName, Line: int(member.StartPoint().Row) + 1}}
		mods := modifiers(member)

		switch member.Type() {
		case "public_field_definition":
			prop := &reflection.Node{
				Name:    name,
				Kind:    reflection.KindProperty,
				Comment: doc,
				Type:    parseType(member.ChildByFieldName("type"), src),
				Sources: source,
			}
			if v := member.ChildByFieldName("value"); v != nil {
				prop.DefaultValue = v.Content(src)
				if prop.Type == nil {
					prop.Type = inferType(v)
				}
			}
			prop.Flags.IsOptional = mods["?"]
			prop.Flags.IsStatic = mods["static"]
			members = append(members, prop)
		case "method_definition", "method_signature", "abstract_method_signature":
			if name == "constructor" {
				continue
			}
			if mods["get"] || mods["set"] {
				acc, ok := accessors[name]
				if !ok {
					acc = &reflection.Node{Name: name, Kind: reflection.KindAccessor, Sources: source}
					acc.Flags.IsStatic = mods["static"]
					accessors[name] = acc
					members = append(members, acc)
				}
				sig := t.signature(name, member, src, doc)
				if mods["get"] {
					sig.Kind = reflection.KindGetSignature
					acc.GetSignature = sig
				} else {
					sig.Kind = reflection.KindSetSignature
					acc.SetSignature = sig
				}
				continue
			}
			method := &reflection.Node{
				Name:       name,
				Kind:       reflection.KindMethod,
				Sources:    source,
				Signatures: []*reflection.Node{t.signature(name, member, src, doc)},
			}
			method.Flags.IsStatic = mods["static"]
			method.Flags.IsOptional = mods["?"]
			members = append(members, method)
		}
	}
	class.Children = mergeOverloads(members)
	return class
}

func (t *TypeScriptExtractor) extractInterface(node *sitter.Node, src []byte, fileName string, comment *reflection.Comment) *reflection.Node {
	nameNode := node.ChildByFieldName("name")
	body := node.ChildByFieldName("body")
	if nameNode == nil || body == nil {
		return nil
	}
	iface := &reflection.Node{
		Name:    nameNode.Content(src),
		Kind:    reflection.KindInterface,
		Comment: comment,
	}
	for i := 0; i < int(body.NamedChildCount()); i++ {
		member := body.NamedChild(i)
		nameNode := member.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}
		prop := &reflection.Node{
			Name:    memberName(nameNode, src),
			Kind:    reflection.KindProperty,
			Comment: docComment(member, src),
			Sources: []reflection.Source{{FileName: fileName, Line: int(member.StartPoint().Row) + 1}},
		}
		prop.Flags.IsOptional = modifiers(member)["?"]
		switch member.Type() {
		case "property_signature":
			prop.Type = parseType(member.ChildByFieldName("type"), src)
		case "method_signature":
			prop.Type = &reflection.Type{Kind: reflection.TypeRaw, Name: functionTypeText(member, src)}
		default:
			continue
		}
		iface.Children = append(iface.Children, prop)
	}
	return iface
}

func (t *TypeScriptExtractor) extractVariables(node *sitter.Node, src []byte, comment *reflection.Comment) []*reflection.Node {
	var out []*reflection.Node
	for i := 0; i < int(node.NamedChildCount()); i++ {
		declarator := node.NamedChild(i)
		if declarator.Type() != "variable_declarator" {
			continue
		}
		nameNode := declarator.ChildByFieldName("name")
		if nameNode == nil || nameNode.Type() != "identifier" {
			continue
		}
		name := nameNode.Content(src)
		value := declarator.ChildByFieldName("value")
		if value != nil && (value.Type() == "arrow_function" || value.Type() == "function" || value.Type() == "function_expression") {
			out = append(out, &reflection.Node{
				Name:       name,
				Kind:       reflection.KindFunction,
				Signatures: []*reflection.Node{t.signature(name, value, src, comment)},
			})
			continue
		}
		v := &reflection.Node{
			Name:    name,
			Kind:    reflection.KindVariable,
			Comment: comment,
			Type:    parseType(declarator.ChildByFieldName("type"), src),
		}
		if value != nil {
			v.DefaultValue = value.Content(src)
			if v.Type == nil {
				v.Type = inferType(value)
			}
		}
		out = append(out, v)
	}
	return out
}

// docComment reads the /** */ comment directly above node.
func docComment(node *sitter.Node, src []byte) *reflection.Comment {
	prev := node.PrevSibling()
	if prev == nil || prev.Type() != "comment" {
		return nil
	}
	if node.StartPoint().Row-prev.EndPoint().Row > 1 {
		return nil
	}
	return parseJSDoc(prev.Content(src))
}

// modifiers collects the keyword tokens of a member: static, get, set, ?,
// readonly and the accessibility modifier text.
func modifiers(node *sitter.Node) map[string]bool {
	mods := map[string]bool{}
	for i := 0; i < int(node.ChildCount()); i++ {
		c := node.Child(i)
		switch c.Type() {
		case "static", "get", "set", "?", "readonly", "abstract":
			mods[c.Type()] = true
		}
	}
	return mods
}

func isPublic(member, name *sitter.Node, src []byte) bool {
	if name.Type() == "private_property_identifier" {
		return false
	}
	for i := 0; i < int(member.NamedChildCount()); i++ {
		c := member.NamedChild(i)
		if c.Type() == "accessibility_modifier" {
			access := c.Content(src)
			return access != "private" && access != "protected"
		}
	}
	return true
}

func memberName(name *sitter.Node, src []byte) string {
	text := name.Content(src)
	if name.Type() == "string" {
		return strings.Trim(text, `"'`)
	}
	return text
}

func functionTypeText(node *sitter.Node, src []byte) string {
	params := "()"
	if p := node.ChildByFieldName("parameters"); p != nil {
		params = p.Content(src)
	}
	ret := "void"
	if r := node.ChildByFieldName("return_type"); r != nil {
		ret = strings.TrimSpace(strings.TrimPrefix(r.Content(src), ":"))
	}
	return params + " => " + ret
}

// inferType guesses the type of an unannotated initializer from literals.
func inferType(value *sitter.Node) *reflection.Type {
	switch value.Type() {
	case "string", "template_string":
		return &reflection.Type{Kind: reflection.TypeIntrinsic, Name: "string"}
	case "number":
		return &reflection.Type{Kind: reflection.TypeIntrinsic, Name: "number"}
	case "true", "false":
		return &reflection.Type{Kind: reflection.TypeIntrinsic, Name: "boolean"}
	case "object":
		return &reflection.Type{Kind: reflection.TypeRaw, Name: "object"}
	case "array":
		return &reflection.Type{Kind: reflection.TypeRaw, Name: "any[]"}
	}
	return nil
}

// parseType turns a type expression into a reflection type. Shapes that are
// not decomposed are kept as raw source text.
func parseType(node *sitter.Node, src []byte) *reflection.Type {
	if node == nil {
		return nil
	}
	switch node.Type() {
	case "type_annotation", "parenthesized_type":
		if node.NamedChildCount() == 0 {
			return nil
		}
		return parseType(node.NamedChild(0), src)
	case "predefined_type":
		return &reflection.Type{Kind: reflection.TypeIntrinsic, Name: node.Content(src)}
	case "type_identifier", "nested_type_identifier":
		return &reflection.Type{Kind: reflection.TypeReference, Name: node.Content(src)}
	case "generic_type":
		ref := &reflection.Type{Kind: reflection.TypeReference}
		if name := node.ChildByFieldName("name"); name != nil {
			ref.Name = name.Content(src)
		}
		if args := node.ChildByFieldName("type_arguments"); args != nil {
			for i := 0; i < int(args.NamedChildCount()); i++ {
				ref.TypeArguments = append(ref.TypeArguments, parseType(args.NamedChild(i), src))
			}
		}
		return ref
	case "array_type":
		if node.NamedChildCount() == 0 {
			break
		}
		return &reflection.Type{Kind: reflection.TypeArray, ElementType: parseType(node.NamedChild(0), src)}
	case "union_type", "intersection_type":
		kind := reflection.TypeUnion
		if node.Type() == "intersection_type" {
			kind = reflection.TypeIntersection
		}
		return &reflection.Type{Kind: kind, Types: flatten(node, node.Type(), src)}
	case "literal_type":
		return &reflection.Type{Kind: reflection.TypeLiteral, Name: node.Content(src)}
	case "tuple_type":
		tuple := &reflection.Type{Kind: reflection.TypeTuple}
		for i := 0; i < int(node.NamedChildCount()); i++ {
			tuple.Types = append(tuple.Types, parseType(node.NamedChild(i), src))
		}
		return tuple
	}
	return &reflection.Type{Kind: reflection.TypeRaw, Name: node.Content(src)}
}

// flatten collects the members of nested unions (or intersections), which
// the grammar nests left-recursively.
func flatten(node *sitter.Node, kind string, src []byte) []*reflection.Type {
	var out []*reflection.Type
	for i := 0; i < int(node.NamedChildCount()); i++ {
		c := node.NamedChild(i)
		if c.Type() == kind {
			out = append(out, flatten(c, kind, src)...)
			continue
		}
		out = append(out, parseType(c, src))
	}
	return out
}

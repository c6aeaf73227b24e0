// Package literal parses the source text of a default value into a typed
// variant that renderers can walk without knowing TypeScript syntax.
package literal

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// Kind tags a Value.
type Kind int

const (
	Raw Kind = iota
	String
	Number
	Bool
	Null
	Array
	Object
)

func (k Kind) String() string {
	switch k {
	case String:
		return "string"
	case Number:
		return "number"
	case Bool:
		return "boolean"
	case Null:
		return "null"
	case Array:
		return "array"
	case Object:
		return "object"
	}
	return "raw"
}

// Field is one key of an object literal, in source order.
type Field struct {
	Key   string
	Value Value
}

// Value is a parsed literal. Text holds the decoded string for String, the
// source text for Number and Raw.
type Value struct {
	Kind   Kind
	Text   string
	Num    float64
	Bool   bool
	Items  []Value
	Fields []Field
}

const prefix = "const __literal = "

// Parse decodes a literal expression. Anything that is not a plain JSON-like
// literal (calls, identifiers, templates with substitutions) comes back as
// Raw holding the trimmed source text.
func Parse(text string) Value {
	text = strings.TrimSpace(text)
	if text == "" {
		return Value{Kind: Raw}
	}
	src := []byte(prefix + text + ";")
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(typescript.GetLanguage())
	tree, err := parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return Value{Kind: Raw, Text: text}
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return Value{Kind: Raw, Text: text}
	}
	decl := root.NamedChild(0)
	if decl == nil || decl.NamedChildCount() == 0 {
		return Value{Kind: Raw, Text: text}
	}
	value := decl.NamedChild(0).ChildByFieldName("value")
	if value == nil {
		return Value{Kind: Raw, Text: text}
	}
	return convert(value, src)
}

func convert(n *sitter.Node, src []byte) Value {
	raw := Value{Kind: Raw, Text: n.Content(src)}
	switch n.Type() {
	case "string":
		return Value{Kind: String, Text: stringContent(n, src)}
	case "template_string":
		for i := 0; i < int(n.NamedChildCount()); i++ {
			if n.NamedChild(i).Type() == "template_substitution" {
				return raw
			}
		}
		return Value{Kind: String, Text: stringContent(n, src)}
	case "number":
		if f, ok := parseNumber(raw.Text); ok {
			return Value{Kind: Number, Text: raw.Text, Num: f}
		}
		return raw
	case "unary_expression":
		arg := n.ChildByFieldName("argument")
		op := n.ChildByFieldName("operator")
		if arg == nil || op == nil || arg.Type() != "number" {
			return raw
		}
		v := convert(arg, src)
		switch op.Content(src) {
		case "-":
			v.Num, v.Text = -v.Num, "-"+v.Text
		case "+":
		default:
			return raw
		}
		return v
	case "true", "false":
		return Value{Kind: Bool, Bool: n.Type() == "true", Text: raw.Text}
	case "null", "undefined":
		return Value{Kind: Null, Text: raw.Text}
	case "parenthesized_expression", "as_expression", "satisfies_expression", "non_null_expression":
		if n.NamedChildCount() == 0 {
			return raw
		}
		return convert(n.NamedChild(0), src)
	case "array":
		v := Value{Kind: Array}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			c := n.NamedChild(i)
			switch c.Type() {
			case "comment":
				continue
			case "spread_element":
				return raw
			}
			v.Items = append(v.Items, convert(c, src))
		}
		return v
	case "object":
		v := Value{Kind: Object}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			c := n.NamedChild(i)
			switch c.Type() {
			case "comment":
			case "pair":
				key, value := c.ChildByFieldName("key"), c.ChildByFieldName("value")
				if key == nil || value == nil {
					return raw
				}
				v.Fields = append(v.Fields, Field{Key: keyText(key, src), Value: convert(value, src)})
			case "shorthand_property_identifier":
				name := c.Content(src)
				v.Fields = append(v.Fields, Field{Key: name, Value: Value{Kind: Raw, Text: name}})
			default:
				return raw
			}
		}
		return v
	}
	return raw
}

func keyText(n *sitter.Node, src []byte) string {
	if n.Type() == "string" {
		return stringContent(n, src)
	}
	return n.Content(src)
}

// stringContent decodes a quoted or template string without substitutions.
func stringContent(n *sitter.Node, src []byte) string {
	var sb strings.Builder
	fragments := false
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		switch c.Type() {
		case "string_fragment":
			fragments = true
			sb.WriteString(c.Content(src))
		case "escape_sequence":
			sb.WriteString(unescape(c.Content(src)))
		}
	}
	// some grammar versions keep template text anonymous
	if !fragments && n.Type() == "template_string" {
		text := n.Content(src)
		return strings.TrimSuffix(strings.TrimPrefix(text, "`"), "`")
	}
	return sb.String()
}

func unescape(seq string) string {
	switch seq {
	case `\'`:
		return "'"
	case "\\`":
		return "`"
	}
	if s, err := strconv.Unquote(`"` + seq + `"`); err == nil {
		return s
	}
	return strings.TrimPrefix(seq, `\`)
}

func parseNumber(text string) (float64, bool) {
	clean := strings.ReplaceAll(strings.TrimSuffix(text, "n"), "_", "")
	if f, err := strconv.ParseFloat(clean, 64); err == nil {
		return f, true
	}
	if i, err := strconv.ParseInt(clean, 0, 64); err == nil {
		return float64(i), true
	}
	return 0, false
}

// Interface converts v into plain Go values suitable for encoding/json.
// Raw values become their source text.
func (v Value) Interface() any {
	switch v.Kind {
	case String, Raw:
		return v.Text
	case Number:
		return v.Num
	case Bool:
		return v.Bool
	case Null:
		return nil
	case Array:
		out := make([]any, 0, len(v.Items))
		for _, it := range v.Items {
			out = append(out, it.Interface())
		}
		return out
	}
	return orderedObject(v.Fields)
}

// JSON renders v as indented JSON, keeping object keys in source order.
func (v Value) JSON() (string, error) {
	data, err := json.MarshalIndent(v.Interface(), "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

type orderedObject []Field

func (o orderedObject) MarshalJSON() ([]byte, error) {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, f := range o {
		if i > 0 {
			sb.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(f.Value.Interface())
		if err != nil {
			return nil, err
		}
		sb.Write(key)
		sb.WriteByte(':')
		sb.Write(val)
	}
	sb.WriteByte('}')
	return []byte(sb.String()), nil
}

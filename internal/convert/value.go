package convert

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"

	"reflectdoc/internal/content"
	"reflectdoc/internal/declaration"
	"reflectdoc/internal/literal"
)

// value renders the parsed default value of d.
func value(d *declaration.Declaration, opts Options) ([]content.Block, error) {
	v := d.DefaultValue()
	if opts.Raw && (v.Kind == literal.Object || v.Kind == literal.Array) {
		data, err := v.JSON()
		if err != nil {
			return nil, errors.Wrapf(err, "encode default value of %q", d.Name())
		}
		return []content.Block{content.NewText("```json\n" + data + "\n```")}, nil
	}
	return []content.Block{content.NewText(strings.Join(valueLines(v, ""), "\n"))}, nil
}

// valueLines renders arrays as ordered lists and objects as `key: value`
// bullet lists, nesting compound members one indentation deeper.
func valueLines(v literal.Value, indent string) []string {
	switch v.Kind {
	case literal.Array:
		if len(v.Items) == 0 {
			return []string{indent + "`[]`"}
		}
		var lines []string
		for i, item := range v.Items {
			marker := fmt.Sprintf("%d. ", i+1)
			if !compound(item) {
				lines = append(lines, indent+marker+scalar(item))
				continue
			}
			lines = append(lines, indent+marker+"_"+item.Kind.String()+"_")
			lines = append(lines, valueLines(item, indent+strings.Repeat(" ", len(marker)))...)
		}
		return lines
	case literal.Object:
		if len(v.Fields) == 0 {
			return []string{indent + "`{}`"}
		}
		var lines []string
		for _, f := range v.Fields {
			if !compound(f.Value) {
				lines = append(lines, indent+"- "+f.Key+": "+scalar(f.Value))
				continue
			}
			lines = append(lines, indent+"- "+f.Key+":")
			lines = append(lines, valueLines(f.Value, indent+"  ")...)
		}
		return lines
	}
	return []string{indent + scalar(v)}
}

func compound(v literal.Value) bool {
	switch v.Kind {
	case literal.Array:
		return len(v.Items) > 0
	case literal.Object:
		return len(v.Fields) > 0
	}
	return false
}

// scalar renders strings as literal text and everything else as code.
func scalar(v literal.Value) string {
	switch v.Kind {
	case literal.String:
		return v.Text
	case literal.Bool:
		return fmt.Sprintf("`%t`", v.Bool)
	case literal.Null:
		return "`" + v.Text + "`"
	case literal.Array:
		return "`[]`"
	case literal.Object:
		return "`{}`"
	case literal.Raw:
		if v.Text == "" {
			return ""
		}
	}
	return "`" + v.Text + "`"
}

package convert

import (
	"fmt"
	"strings"

	"github.com/stoewer/go-strcase"

	"reflectdoc/internal/content"
	"reflectdoc/internal/declaration"
	"reflectdoc/internal/reflection"
)

// kindLabel words a kind for prose: CallSignature becomes "call signature".
// Signatures are described by the function or method they belong to.
func kindLabel(d *declaration.Declaration) string {
	kind := d.Kind()
	if d.IsCallSignature() {
		if parent := d.Node().Parent(); parent != nil {
			kind = parent.Kind
		}
	}
	return strings.ReplaceAll(strcase.KebabCase(string(kind)), "-", " ")
}

// selfTitle is the default heading of d.
func selfTitle(d *declaration.Declaration) string {
	switch {
	case d.IsCallSignature():
		return "`" + d.Signature() + "`"
	case d.IsValue():
		return "`" + d.Name() + "`"
	}
	return fmt.Sprintf("The `%s` %s", d.Name(), kindLabel(d))
}

// self renders the heading and doc text of d. Call signatures add a
// parameter table and their return value. A function or method renders
// each of its signatures; title and link overrides apply to the first.
func self(d *declaration.Declaration, opts Options) ([]content.Block, error) {
	if sigs := d.Signatures(); len(sigs) > 0 {
		var blocks []content.Block
		for i, sig := range sigs {
			if i == 1 {
				opts.Title, opts.Link = "", ""
			}
			b, err := self(sig, opts)
			if err != nil {
				return nil, err
			}
			blocks = append(blocks, b...)
		}
		return blocks, nil
	}

	title := opts.Title
	if title == "" {
		title = selfTitle(d)
	}
	h, err := content.NewHeading(title, d.Level(), d.ID(), opts.Link)
	if err != nil {
		return nil, err
	}
	blocks := []content.Block{h, description(d)}

	if !d.IsCallSignature() {
		return blocks, nil
	}
	if params := d.Parameters(); len(params) > 0 {
		rows := make([][]string, 0, len(params))
		for _, p := range params {
			name := p.Name
			if !p.IsOptional {
				name = "**" + name + "**"
			}
			rows = append(rows, []string{name, p.DisplayType, p.Text})
		}
		blocks = append(blocks, content.NewTable([]string{"Param", "Type", "Description"}, rows))
	}
	if returns := returnsText(d); returns != "" {
		blocks = append(blocks, content.NewText(returns))
	}
	return blocks, nil
}

// description is the bold short text, or a generated sentence, followed by
// the long text.
func description(d *declaration.Declaration) content.Text {
	short := d.ShortText()
	if short == "" {
		short = fmt.Sprintf("The `%s` %s.", d.Name(), kindLabel(d))
	}
	paragraphs := []string{"**" + short + "**"}
	if long := d.LongText(); long != "" {
		paragraphs = append(paragraphs, long)
	}
	return content.NewText(paragraphs...)
}

func returnsText(d *declaration.Declaration) string {
	t := d.Type()
	text := d.ReturnsText()
	if t == nil && text == "" {
		return ""
	}
	if t != nil && t.Kind == reflection.TypeIntrinsic && t.Name == "void" && text == "" {
		return ""
	}
	out := "Returns"
	if t != nil {
		out += " " + d.DisplayType()
	}
	if text != "" {
		out += ": " + text
	} else {
		out += "."
	}
	return out
}

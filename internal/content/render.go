package content

import (
	"fmt"
	"strings"
)

// Formatter pretty-prints rendered Markdown. Implementations must be
// idempotent: formatting formatted text returns it unchanged.
type Formatter interface {
	Format(text string) (string, error)
}

// BlockSeparator sits between two rendered blocks.
const BlockSeparator = "\n\n"

// RenderBlock renders a single block to Markdown.
func RenderBlock(b Block) string {
	switch v := b.(type) {
	case Heading:
		return renderHeading(v)
	case Text:
		return strings.Join(v.Paragraphs, BlockSeparator)
	case List:
		return renderList(v)
	case Table:
		return renderTable(v)
	default:
		return ""
	}
}

// RenderAll joins the rendered blocks with blank lines and hands the result
// to the formatter. A nil formatter leaves the text as is.
func RenderAll(blocks []Block, f Formatter) (string, error) {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		rendered := RenderBlock(b)
		if rendered == "" {
			continue
		}
		parts = append(parts, rendered)
	}
	text := strings.Join(parts, BlockSeparator)
	if f == nil {
		return text, nil
	}
	return f.Format(text)
}

// RenderTOC renders the headings among blocks as a nested bullet list. A
// heading at levelOffset sits at the outermost indentation.
func RenderTOC(blocks []Block, levelOffset int) string {
	var sb strings.Builder
	for _, h := range Headings(blocks) {
		target := h.Link
		if h.ID != "" {
			target = "#" + h.ID
		}
		depth := h.Level - levelOffset
		if depth < 0 {
			depth = 0
		}
		sb.WriteString(strings.Repeat("  ", depth))
		if target == "" {
			fmt.Fprintf(&sb, "- %s\n", h.Title)
			continue
		}
		fmt.Fprintf(&sb, "- [%s](%s)\n", h.Title, target)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func renderHeading(h Heading) string {
	var sb strings.Builder
	sb.WriteString(strings.Repeat("#", h.Level))
	sb.WriteString(" ")
	if h.ID != "" {
		fmt.Fprintf(&sb, `<a id="%s"></a>`, h.ID)
	}
	if h.Link != "" {
		fmt.Fprintf(&sb, "[%s](%s)", h.Title, h.Link)
	} else {
		sb.WriteString(h.Title)
	}
	return sb.String()
}

func renderList(l List) string {
	lines := make([]string, 0, len(l.Items))
	for _, item := range l.Items {
		if item.Description == "" {
			lines = append(lines, "- "+item.Label)
			continue
		}
		lines = append(lines, fmt.Sprintf("- %s: %s", item.Label, item.Description))
	}
	return strings.Join(lines, "\n")
}

func renderTable(t Table) string {
	if len(t.Headers) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("| " + strings.Join(t.Headers, " | ") + " |\n")
	sep := make([]string, len(t.Headers))
	for i := range sep {
		sep[i] = "---"
	}
	sb.WriteString("| " + strings.Join(sep, " | ") + " |")
	for _, row := range t.Rows {
		cells := make([]string, len(t.Headers))
		for i := range cells {
			if i < len(row) {
				cells[i] = escapeCell(row[i])
			}
		}
		sb.WriteString("\n| " + strings.Join(cells, " | ") + " |")
	}
	return sb.String()
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.Join(strings.Fields(strings.ReplaceAll(s, "\n", " ")), " ")
}

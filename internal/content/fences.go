package content

import "strings"

// segment is a run of lines that is either inside a fenced code block or not.
type segment struct {
	code bool
	text string
}

// splitFences cuts text into prose and fenced-code segments. Joining the
// segment texts gives back the input unchanged.
func splitFences(text string) []segment {
	var (
		out    []segment
		buf    strings.Builder
		inCode bool
		fence  string
	)
	flush := func(code bool) {
		if buf.Len() == 0 {
			return
		}
		out = append(out, segment{code: code, text: buf.String()})
		buf.Reset()
	}

	lines := strings.SplitAfter(text, "\n")
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case !inCode && (strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~")):
			flush(false)
			inCode = true
			fence = trimmed[:3]
			buf.WriteString(line)
		case inCode && strings.HasPrefix(trimmed, fence) && strings.Trim(trimmed, fence[:1]) == "":
			buf.WriteString(line)
			flush(true)
			inCode = false
		default:
			buf.WriteString(line)
		}
	}
	flush(inCode)
	return out
}

// MapProse applies fn to every run of text outside fenced code and
// reassembles the document.
func MapProse(text string, fn func(string) string) string {
	var sb strings.Builder
	for _, seg := range splitFences(text) {
		if seg.code {
			sb.WriteString(seg.text)
			continue
		}
		sb.WriteString(fn(seg.text))
	}
	return sb.String()
}

package extractor

import (
	"regexp"
	"strings"

	"reflectdoc/internal/reflection"
)

var (
	paramTag   = regexp.MustCompile(`^(?:\{[^}]*\}\s*)?\[?([A-Za-z_$][\w$.]*)(?:=[^\]]*)?\]?\s*(?:-\s*)?(.*)$`)
	paragraphs = regexp.MustCompile(`\n[ \t]*\n`)
)

// parseJSDoc turns a /** ... */ comment into a reflection comment. The first
// paragraph becomes the short text, the remaining ones the long text.
// @param and @returns are collected; other tags are ignored.
func parseJSDoc(raw string) *reflection.Comment {
	if !strings.HasPrefix(raw, "/**") {
		return nil
	}
	body := strings.TrimSuffix(strings.TrimPrefix(raw, "/**"), "*/")

	var lines []string
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "*")
		if strings.HasPrefix(line, " ") {
			line = line[1:]
		}
		lines = append(lines, strings.TrimRight(line, " \t"))
	}

	var (
		text    []string
		comment = &reflection.Comment{}
		tag     string
		tagText []string
	)
	flush := func() {
		value := strings.TrimSpace(strings.Join(tagText, "\n"))
		switch tag {
		case "param":
			if m := paramTag.FindStringSubmatch(value); m != nil {
				if comment.Params == nil {
					comment.Params = map[string]string{}
				}
				comment.Params[m[1]] = strings.TrimSpace(m[2])
			}
		case "returns", "return":
			comment.Returns = value
		}
		tag, tagText = "", nil
	}
	inFence := false
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inFence = !inFence
		}
		if !inFence && strings.HasPrefix(line, "@") {
			flush()
			name, rest, _ := strings.Cut(line[1:], " ")
			tag = name
			tagText = []string{rest}
			continue
		}
		if tag != "" {
			tagText = append(tagText, line)
			continue
		}
		text = append(text, line)
	}
	flush()

	joined := strings.TrimSpace(strings.Join(text, "\n"))
	parts := paragraphs.Split(joined, 2)
	comment.ShortText = strings.TrimSpace(parts[0])
	if len(parts) > 1 {
		comment.Text = strings.TrimSpace(parts[1])
	}
	if comment.ShortText == "" && comment.Text == "" && comment.Returns == "" && comment.Params == nil {
		return nil
	}
	return comment
}

package content

import (
	"fmt"
	"regexp"
	"strings"
)

// GeneratedAttr marks sections written by the generator.
const GeneratedAttr = `data-generated="auto-generated, do not edit"`

const sectionClose = "</section>"

var sectionOpen = regexp.MustCompile(`<section\s+id="([^"]*)"([^>]*)>`)

// Section is one named region delimited by section markers.
type Section struct {
	ID      string
	Attrs   string // raw attributes after the id, without surrounding spaces
	Content string
}

// WrapSection delimits content with section markers. The blank lines keep
// Markdown inside the section renderable when the file is converted to HTML.
func WrapSection(id, content string, attrs ...string) string {
	open := fmt.Sprintf(`<section id="%s"`, id)
	for _, a := range attrs {
		if a = strings.TrimSpace(a); a != "" {
			open += " " + a
		}
	}
	return open + ">\n\n" + content + "\n\n" + sectionClose
}

// ExtractSections scans text for section markers and returns the sections in
// document order. Unterminated sections are ignored.
func ExtractSections(text string) []Section {
	var out []Section
	rest := text
	for {
		loc := sectionOpen.FindStringSubmatchIndex(rest)
		if loc == nil {
			return out
		}
		id := rest[loc[2]:loc[3]]
		attrs := strings.TrimSpace(rest[loc[4]:loc[5]])
		body := rest[loc[1]:]
		end := strings.Index(body, sectionClose)
		if end < 0 {
			return out
		}
		out = append(out, Section{ID: id, Attrs: attrs, Content: unpad(body[:end])})
		rest = body[end+len(sectionClose):]
	}
}

// SectionMap indexes sections by id. The first occurrence of an id wins.
func SectionMap(sections []Section) map[string]string {
	m := make(map[string]string, len(sections))
	for _, s := range sections {
		if _, ok := m[s.ID]; ok {
			continue
		}
		m[s.ID] = s.Content
	}
	return m
}

// StripSections removes every delimited section (markers included) from text.
func StripSections(text string) string {
	var sb strings.Builder
	rest := text
	for {
		loc := sectionOpen.FindStringIndex(rest)
		if loc == nil {
			break
		}
		end := strings.Index(rest[loc[1]:], sectionClose)
		if end < 0 {
			break
		}
		sb.WriteString(rest[:loc[0]])
		rest = rest[loc[1]+end+len(sectionClose):]
	}
	sb.WriteString(rest)
	return sb.String()
}

func unpad(s string) string {
	switch {
	case strings.HasPrefix(s, "\n\n"):
		s = s[2:]
	case strings.HasPrefix(s, "\n"):
		s = s[1:]
	}
	switch {
	case strings.HasSuffix(s, "\n\n"):
		s = s[:len(s)-2]
	case strings.HasSuffix(s, "\n"):
		s = s[:len(s)-1]
	}
	return s
}

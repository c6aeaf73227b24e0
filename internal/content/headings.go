package content

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

var (
	atxHeading    = regexp.MustCompile(`^( {0,3})(#{1,6})([ \t]+.*)?$`)
	htmlHeading   = regexp.MustCompile(`^(\s*)<h([1-6])((?:\s[^>]*)?)>(.*)</h([1-6])>\s*$`)
	inlineAnchor  = regexp.MustCompile(`^\s*<a\s+(?:id|name)="([^"]*)"\s*>\s*</a>\s*`)
	idAttr        = regexp.MustCompile(`\sid="([^"]*)"`)
	linkedTitle   = regexp.MustCompile(`^\[(.*)\]\(([^)]*)\)$`)
	closingHashes = regexp.MustCompile(`[ \t]+#+[ \t]*$`)
	htmlTags      = regexp.MustCompile(`<[^>]+>`)
)

// headingLine is a heading found on one line of a document.
type headingLine struct {
	heading Heading
	html    bool
}

// ExtractHeadings finds every ATX (`## Title`) and single-line HTML
// (`<h2 id="x">Title</h2>`) heading outside fenced code. Headings without an
// explicit id or anchor get the slug of their title.
func ExtractHeadings(text string) []Heading {
	var out []Heading
	for _, seg := range splitFences(text) {
		if seg.code {
			continue
		}
		for _, line := range strings.SplitAfter(seg.text, "\n") {
			if hl, ok := parseHeadingLine(line); ok {
				out = append(out, hl.heading)
			}
		}
	}
	return out
}

// ModifyHeadings shifts every heading level by offset. Headings are
// renumbered by position, so repeated titles are each handled. If any
// heading would end up outside 1..6 nothing is changed and ErrHeadingRange
// is returned.
func ModifyHeadings(text string, offset int) (string, error) {
	if offset == 0 {
		return text, nil
	}
	for i, h := range ExtractHeadings(text) {
		next := h.Level + offset
		if next < MinHeadingLevel || next > MaxHeadingLevel {
			return text, errors.WithHint(
				errors.Wrapf(ErrHeadingRange, "heading #%d %q: level %d shifted by %d", i+1, h.Title, h.Level, offset),
				"insert the content at a shallower heading level",
			)
		}
	}
	return MapProse(text, func(prose string) string {
		lines := strings.SplitAfter(prose, "\n")
		for i, line := range lines {
			lines[i] = shiftHeadingLine(line, offset)
		}
		return strings.Join(lines, "")
	}), nil
}

func parseHeadingLine(line string) (headingLine, bool) {
	body := strings.TrimRight(line, "\r\n")
	if m := atxHeading.FindStringSubmatch(body); m != nil {
		raw := strings.TrimSpace(closingHashes.ReplaceAllString(m[3], ""))
		h := Heading{Level: len(m[2])}
		if a := inlineAnchor.FindStringSubmatch(raw); a != nil {
			h.ID = a[1]
			raw = strings.TrimSpace(raw[len(a[0]):])
		}
		h.Title, h.Link = splitLinkedTitle(raw)
		if h.ID == "" {
			h.ID = BuildID(plainTitle(h.Title))
		}
		return headingLine{heading: h}, true
	}
	if m := htmlHeading.FindStringSubmatch(body); m != nil && m[2] == m[5] {
		level, _ := strconv.Atoi(m[2])
		h := Heading{Level: level}
		if id := idAttr.FindStringSubmatch(m[3]); id != nil {
			h.ID = id[1]
		}
		h.Title = strings.TrimSpace(m[4])
		if a := inlineAnchor.FindStringSubmatch(h.Title); a != nil {
			if h.ID == "" {
				h.ID = a[1]
			}
			h.Title = strings.TrimSpace(h.Title[len(a[0]):])
		}
		if h.ID == "" {
			h.ID = BuildID(plainTitle(h.Title))
		}
		return headingLine{heading: h, html: true}, true
	}
	return headingLine{}, false
}

func shiftHeadingLine(line string, offset int) string {
	hl, ok := parseHeadingLine(line)
	if !ok {
		return line
	}
	next := hl.heading.Level + offset
	if hl.html {
		m := htmlHeading.FindStringSubmatchIndex(strings.TrimRight(line, "\r\n"))
		// m[4]:m[5] is the opening level digit, m[10]:m[11] the closing one.
		digit := strconv.Itoa(next)
		return line[:m[4]] + digit + line[m[5]:m[10]] + digit + line[m[11]:]
	}
	m := atxHeading.FindStringSubmatchIndex(strings.TrimRight(line, "\r\n"))
	return line[:m[4]] + strings.Repeat("#", next) + line[m[5]:]
}

func splitLinkedTitle(raw string) (title, link string) {
	if m := linkedTitle.FindStringSubmatch(raw); m != nil {
		return m[1], m[2]
	}
	return raw, ""
}

func plainTitle(title string) string {
	return htmlTags.ReplaceAllString(title, "")
}

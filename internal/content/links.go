package content

import (
	"fmt"
	"regexp"
	"strings"
)

// Resolver maps a reference id to a URL. ok is false when the id is unknown.
type Resolver func(id string) (url string, ok bool)

var (
	// The label separator may arrive escaped as `\|` from a table cell.
	bracketRef    = regexp.MustCompile(`\[\[([^\]|\\]+)(?:\\?\|([^\]]*))?\]\]`)
	atLinkRef     = regexp.MustCompile(`\{@link\s+([^}|\s\\]+)\s*(?:\\?\|([^}]*))?\}`)
	unresolvedRef = regexp.MustCompile(`<a data-sref="([^"]*)">`)
	anyRef        = regexp.MustCompile(`<a (?:href="[^"]*" )?data-sref="([^"]*)">`)
)

// ConvertLinks rewrites `[[id]]`, `[[id|label]]`, `{@link id}` and
// `{@link id|label}` into reference anchors and resolves them. Ids the
// resolver does not know keep their data-sref marker without an href.
func ConvertLinks(text string, resolve Resolver) string {
	return ResolveReferences(MarkReferences(text), resolve)
}

// MarkReferences performs the first pass of ConvertLinks: both inline
// reference syntaxes become `<a data-sref="id">label</a>`.
func MarkReferences(text string) string {
	return MapProse(text, func(prose string) string {
		prose = bracketRef.ReplaceAllStringFunc(prose, func(m string) string {
			sub := bracketRef.FindStringSubmatch(m)
			return referenceAnchor(sub[1], sub[2])
		})
		return atLinkRef.ReplaceAllStringFunc(prose, func(m string) string {
			sub := atLinkRef.FindStringSubmatch(m)
			return referenceAnchor(sub[1], sub[2])
		})
	})
}

// ResolveReferences adds an href to every marker that does not have one yet.
func ResolveReferences(text string, resolve Resolver) string {
	if resolve == nil {
		return text
	}
	return unresolvedRef.ReplaceAllStringFunc(text, func(m string) string {
		id := unresolvedRef.FindStringSubmatch(m)[1]
		url, ok := resolve(id)
		if !ok {
			return m
		}
		return fmt.Sprintf(`<a href="%s" data-sref="%s">`, url, id)
	})
}

// UnresolvedReferences lists the ids of markers still lacking an href.
func UnresolvedReferences(text string) []string {
	var ids []string
	for _, m := range unresolvedRef.FindAllStringSubmatch(text, -1) {
		ids = append(ids, m[1])
	}
	return ids
}

// References lists the ids of all reference markers in text.
func References(text string) []string {
	var ids []string
	for _, m := range anyRef.FindAllStringSubmatch(text, -1) {
		ids = append(ids, m[1])
	}
	return ids
}

func referenceAnchor(id, label string) string {
	id = strings.TrimSpace(id)
	label = strings.TrimSpace(label)
	if label == "" {
		label = "<code>" + id + "</code>"
	}
	return fmt.Sprintf(`<a data-sref="%s">%s</a>`, id, label)
}

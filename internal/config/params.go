package config

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

var ErrBadParam = errors.New("bad parameter")

// ParseParams reads conversion options from key=value pairs as given on the
// command line. suffix, names and kinds take comma-separated lists.
func ParseParams(params []string) (Options, error) {
	var (
		o      Options
		filter Filter
	)
	for _, p := range params {
		key, value, ok := strings.Cut(p, "=")
		if !ok {
			return o, errors.WithHint(errors.Wrapf(ErrBadParam, "%q", p), "write parameters as key=value")
		}
		key = strings.TrimSpace(key)
		var err error
		switch key {
		case "id":
			o.ID = value
		case "title":
			o.Title = value
		case "link":
			o.Link = value
		case "level":
			o.Level, err = strconv.Atoi(value)
		case "heading_offset":
			o.HeadingOffset, err = strconv.Atoi(value)
		case "raw":
			o.Raw, err = strconv.ParseBool(value)
		case "no_heading":
			o.NoHeading, err = strconv.ParseBool(value)
		case "local_anchors":
			var b bool
			b, err = strconv.ParseBool(value)
			o.LocalAnchors = &b
		case "suffix":
			filter.Suffix = splitList(value)
		case "names":
			filter.Names = splitList(value)
		case "kinds":
			filter.Kinds = splitList(value)
		default:
			return o, errors.WithHint(
				errors.Wrapf(ErrBadParam, "unknown key %q", key),
				"known keys: id, level, title, link, raw, local_anchors, no_heading, heading_offset, suffix, names, kinds",
			)
		}
		if err != nil {
			return o, errors.Wrapf(ErrBadParam, "%s: %v", key, err)
		}
	}
	if len(filter.Suffix)+len(filter.Names)+len(filter.Kinds) > 0 {
		o.Filter = &filter
	}
	return o, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

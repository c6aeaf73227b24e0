package generator

import (
	"reflectdoc/internal/content"
)

// resolver resolves a reference id for doc: a heading of doc itself first,
// then a heading of another file of the batch, then a declaration's
// reference link. Heading ids are matched as written and as a slug.
func (g *Generator) resolver(doc *fileDoc, batch []*fileDoc) content.Resolver {
	local := headingIDs(doc)
	return func(id string) (string, bool) {
		anchor := id
		if !local[anchor] {
			anchor = content.BuildID(id)
		}
		if local[anchor] {
			return "#" + anchor, true
		}
		for _, other := range batch {
			if other == doc {
				continue
			}
			ids := headingIDs(other)
			for _, a := range []string{id, content.BuildID(id)} {
				if ids[a] {
					return relativeURL(doc.Path, other.Path) + "#" + a, true
				}
			}
		}
		return g.cache.Link(id)
	}
}

func headingIDs(doc *fileDoc) map[string]bool {
	ids := make(map[string]bool, len(doc.Headings))
	for _, h := range doc.Headings {
		if h.ID != "" {
			ids[h.ID] = true
		}
	}
	return ids
}

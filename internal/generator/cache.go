package generator

import (
	"strings"

	"reflectdoc/internal/declaration"
	"reflectdoc/internal/reflection"
)

// declCache memoizes selector lookups for one run. Failed lookups are
// remembered too.
type declCache struct {
	svc     *reflection.Service
	entries map[string]cacheEntry
}

type cacheEntry struct {
	decl *declaration.Declaration
	err  error
}

func newDeclCache(svc *reflection.Service) *declCache {
	return &declCache{svc: svc, entries: make(map[string]cacheEntry)}
}

func (c *declCache) Resolve(selector string) (*declaration.Declaration, error) {
	key := strings.TrimSpace(selector)
	if e, ok := c.entries[key]; ok {
		return e.decl, e.err
	}
	d, err := declaration.Resolve(c.svc, key)
	c.entries[key] = cacheEntry{decl: d, err: err}
	return d, err
}

// Link resolves id as a selector and returns the declaration's reference
// link.
func (c *declCache) Link(id string) (string, bool) {
	d, err := c.Resolve(id)
	if err != nil || d.Link() == "" {
		return "", false
	}
	return d.Link(), true
}

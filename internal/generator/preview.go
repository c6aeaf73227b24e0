package generator

import (
	"strings"

	"reflectdoc/internal/config"
	"reflectdoc/internal/content"
	"reflectdoc/internal/format"
)

// Preview renders one section on its own, outside any file. References
// resolve to declaration links only.
func (g *Generator) Preview(sec config.Section) (string, error) {
	rs, err := g.renderSection(sec)
	if err != nil {
		return "", err
	}
	text := rs.Text
	if rs.TOC != "" {
		text = strings.Replace(text, tocPlaceholder, g.renderTOC(rs.TOC, nil, g.cfg.Project.ReferencePage), 1)
	}
	return format.New(format.Markdown).Format(content.ConvertLinks(text, g.cache.Link))
}

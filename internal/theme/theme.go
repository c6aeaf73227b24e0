// Package theme wraps rendered pages in an HTML shell with a navigation
// menu.
package theme

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/Masterminds/sprig/v3"
	"github.com/cockroachdb/errors"

	"reflectdoc/internal/content"
)

//go:embed templates/page.html.tmpl
var defaultTemplate embed.FS

// PageTemplate is the file a theme directory must provide.
const PageTemplate = "page.html.tmpl"

// Page is one output file of a website batch.
type Page struct {
	Path     string // slash-separated, relative to the output root
	Headings []content.Heading
}

// MenuItem links one page, optionally with its second-level headings.
type MenuItem struct {
	Title    string
	URL      string
	Active   bool
	Children []MenuItem
}

// MenuGroup collects the pages of one directory.
type MenuGroup struct {
	Category string
	Items    []MenuItem
}

// PageData is what the page template is executed with.
type PageData struct {
	Title   string
	Project string
	Content template.HTML
	Menu    []MenuGroup
	Root    string // relative path from the page to the output root
	Data    map[string]string
}

// Theme renders page shells.
type Theme struct {
	tmpl   *template.Template
	assets string
}

// Load reads PageTemplate from dir, or uses the built-in shell when dir is
// empty. A dir/assets directory is copied next to the pages by CopyAssets.
func Load(dir string) (*Theme, error) {
	var (
		src []byte
		err error
	)
	if dir == "" {
		src, err = defaultTemplate.ReadFile("templates/" + PageTemplate)
	} else {
		src, err = os.ReadFile(filepath.Join(dir, PageTemplate))
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read theme %q", dir)
	}
	tmpl, err := template.New("page").Funcs(sprig.FuncMap()).Parse(string(src))
	if err != nil {
		return nil, errors.Wrap(err, "parse page template")
	}
	t := &Theme{tmpl: tmpl}
	if dir != "" {
		t.assets = filepath.Join(dir, "assets")
	}
	return t, nil
}

// Render executes the page template.
func (t *Theme) Render(data PageData) (string, error) {
	if data.Data == nil {
		data.Data = map[string]string{}
	}
	var buf bytes.Buffer
	if err := t.tmpl.Execute(&buf, data); err != nil {
		return "", errors.Wrapf(err, "render page %q", data.Title)
	}
	return buf.String(), nil
}

// CopyAssets copies the theme's assets directory below outDir/assets.
// Themes without assets copy nothing.
func (t *Theme) CopyAssets(outDir string) ([]string, error) {
	if t.assets == "" {
		return nil, nil
	}
	if _, err := os.Stat(t.assets); os.IsNotExist(err) {
		return nil, nil
	}
	var written []string
	err := filepath.WalkDir(t.assets, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(t.assets, p)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		dst := filepath.Join(outDir, "assets", rel)
		if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(dst, data, 0644); err != nil {
			return err
		}
		written = append(written, dst)
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "copy theme assets")
	}
	return written, nil
}

// RootFrom is the relative prefix leading from page back to the output root.
func RootFrom(page string) string {
	depth := strings.Count(path.Clean(page), "/")
	return strings.Repeat("../", depth)
}

// BuildMenu groups pages by directory, in batch order. The title of a page
// is its first level-1 heading, falling back to the file name.
func BuildMenu(pages []Page, current string, withHeadings bool) []MenuGroup {
	var groups []MenuGroup
	index := map[string]int{}
	for _, p := range pages {
		dir := path.Dir(p.Path)
		i, ok := index[dir]
		if !ok {
			i = len(groups)
			index[dir] = i
			groups = append(groups, MenuGroup{Category: categoryTitle(dir)})
		}
		url := relativeURL(current, p.Path)
		item := MenuItem{Title: pageTitle(p), URL: url, Active: p.Path == current}
		if withHeadings {
			for _, h := range p.Headings {
				if h.Level == 2 && h.ID != "" {
					item.Children = append(item.Children, MenuItem{
						Title: plain(h.Title),
						URL:   url + "#" + h.ID,
					})
				}
			}
		}
		groups[i].Items = append(groups[i].Items, item)
	}
	return groups
}

func pageTitle(p Page) string {
	for _, h := range p.Headings {
		if h.Level == 1 {
			return plain(h.Title)
		}
	}
	base := path.Base(p.Path)
	return strings.TrimSuffix(base, path.Ext(base))
}

func categoryTitle(dir string) string {
	if dir == "." || dir == "" {
		return "Documentation"
	}
	words := strings.FieldsFunc(path.Base(dir), func(r rune) bool { return r == '-' || r == '_' })
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func relativeURL(from, to string) string {
	rel, err := filepath.Rel(path.Dir(from), to)
	if err != nil {
		return to
	}
	return filepath.ToSlash(rel)
}

func plain(title string) string {
	return strings.ReplaceAll(title, "`", "")
}

package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reflectdoc/internal/content"
)

func TestBuildMenu(t *testing.T) {
	pages := []Page{
		{Path: "index.html", Headings: []content.Heading{{Title: "Home", Level: 1, ID: "home"}}},
		{Path: "guides/getting-started.html", Headings: []content.Heading{
			{Title: "Getting started", Level: 1, ID: "getting-started"},
			{Title: "Install `cli`", Level: 2, ID: "install-cli"},
			{Title: "Deep", Level: 3, ID: "deep"},
		}},
		{Path: "guides/api_reference.html"},
	}

	menu := BuildMenu(pages, "guides/getting-started.html", true)
	require.Len(t, menu, 2)
	assert.Equal(t, "Documentation", menu[0].Category)
	assert.Equal(t, MenuItem{Title: "Home", URL: "../index.html"}, menu[0].Items[0])

	assert.Equal(t, "Guides", menu[1].Category)
	require.Len(t, menu[1].Items, 2)
	started := menu[1].Items[0]
	assert.True(t, started.Active)
	assert.Equal(t, "getting-started.html", started.URL)
	assert.Equal(t, []MenuItem{{Title: "Install cli", URL: "getting-started.html#install-cli"}}, started.Children)
	assert.Equal(t, "api_reference", menu[1].Items[1].Title)

	flat := BuildMenu(pages, "index.html", false)
	assert.Empty(t, flat[1].Items[0].Children)
	assert.Equal(t, "guides/getting-started.html", flat[1].Items[0].URL)
}

func TestTheme_RenderDefault(t *testing.T) {
	th, err := Load("")
	require.NoError(t, err)

	out, err := th.Render(PageData{
		Title:   "API",
		Project: "demo",
		Content: "<h1>API</h1>",
		Root:    RootFrom("guides/api.html"),
		Menu:    []MenuGroup{{Category: "Guides", Items: []MenuItem{{Title: "API", URL: "api.html", Active: true}}}},
		Data:    map[string]string{"description": "Demo <docs>"},
	})
	require.NoError(t, err)
	assert.Contains(t, out, "<title>API | demo</title>")
	assert.Contains(t, out, `<html lang="en">`)
	assert.Contains(t, out, `href="../assets/style.css"`)
	assert.Contains(t, out, `<li class="active"><a href="api.html">API</a>`)
	assert.Contains(t, out, "<main>\n<h1>API</h1>\n</main>")
	assert.Contains(t, out, `content="Demo &lt;docs&gt;"`)
}

func TestTheme_CustomDirAndAssets(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, PageTemplate), []byte(`{{ .Title | upper }}:{{ .Content }}`), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "assets", "css"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "assets", "css", "site.css"), []byte("body{}"), 0644))

	th, err := Load(dir)
	require.NoError(t, err)
	out, err := th.Render(PageData{Title: "api", Content: "<p>x</p>"})
	require.NoError(t, err)
	assert.Equal(t, "API:<p>x</p>", out)

	outDir := t.TempDir()
	written, err := th.CopyAssets(outDir)
	require.NoError(t, err)
	require.Len(t, written, 1)
	data, err := os.ReadFile(filepath.Join(outDir, "assets", "css", "site.css"))
	require.NoError(t, err)
	assert.Equal(t, "body{}", string(data))
}

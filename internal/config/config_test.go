package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
project:
  name: demo
  base_url: https://docs.example.com
  reference_page: api.html
clean: false
files:
  README.md:
    clean: true
    sections:
      head: true
      intro: docs/intro.md
      toc: true
      skipped: false
      usage:
        include: docs/usage.html
        heading_offset: 1
      api:
        input: Greeter
        output: FULL
        options:
          level: 3
          local_anchors: false
          filter:
            suffix: [Options]
  docs/api.html:
    sections:
      reference:
        output: FULL
`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, TargetFiles, cfg.Target)
	assert.Equal(t, OnErrorAbort, cfg.OnError)
	assert.Equal(t, "https://docs.example.com/api.html", cfg.LinkBase())

	require.Len(t, cfg.Files, 2)
	readme := cfg.Files[0]
	assert.Equal(t, "README.md", readme.Path)
	assert.Equal(t, []string{"head", "intro", "toc", "usage", "api"}, readme.Sections.Names())
	assert.True(t, cfg.CleanFor(readme.File))
	assert.False(t, cfg.CleanFor(cfg.Files[1].File))

	intro := readme.Sections[1]
	assert.Equal(t, SectionInclude, intro.Kind)
	assert.Equal(t, "docs/intro.md", intro.Include)

	usage := readme.Sections[3]
	assert.Equal(t, SectionInclude, usage.Kind)
	assert.Equal(t, 1, usage.HeadingOffset)

	api := readme.Sections[4]
	assert.Equal(t, SectionConvert, api.Kind)
	assert.Equal(t, "Greeter", api.Input)
	assert.Equal(t, "FULL", api.Output)
	assert.Equal(t, 3, api.Options.Level)
	require.NotNil(t, api.Options.LocalAnchors)
	assert.False(t, *api.Options.LocalAnchors)
	assert.Equal(t, []string{"Options"}, api.Options.Filter.Suffix)
}

func TestParse_SchemaErrors(t *testing.T) {
	for name, doc := range map[string]string{
		"unknown key":     "colour: blue\n",
		"bad target":      "target: pdf\n",
		"bad level":       "files:\n  a.md:\n    sections:\n      x:\n        output: SELF\n        options:\n          level: 9\n",
		"missing output":  "files:\n  a.md:\n    sections:\n      x:\n        input: Foo\n",
		"include and out": "files:\n  a.md:\n    sections:\n      x:\n        include: a.md\n        output: SELF\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultPath)
	require.NoError(t, os.WriteFile(path, []byte(sample), 0644))

	t.Setenv("REFLECTDOC_BASE_URL", "https://override.dev/")
	t.Setenv("REFLECTDOC_CLEAN", "true")
	t.Setenv("REFLECTDOC_DB", "/tmp/other.db")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "https://override.dev/api.html", cfg.LinkBase())
	assert.True(t, cfg.Clean)
	assert.Equal(t, "/tmp/other.db", cfg.Reflection.DB)
	assert.Equal(t, filepath.Join(dir, "docs", "intro.md"), cfg.Resolve("docs/intro.md"))

	t.Setenv("REFLECTDOC_CLEAN", "maybe")
	_, err = LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_Missing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

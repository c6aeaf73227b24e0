package generator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reflectdoc/internal/config"
)

func TestLoadMetadata_PackageJSON(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte(`{
  "name": "@acme/demo",
  "description": "From package.json.",
  "license": "Apache-2.0",
  "repository": { "type": "git", "url": "git+https://github.com/acme/demo.git" }
}`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "LICENSE"), []byte("\nCopyright Acme.\n"), 0644))

	cfg := config.Default()
	cfg.Dir = dir
	cfg.Project.Description = "From the config."

	meta := LoadMetadata(cfg)
	assert.Equal(t, "@acme/demo", meta.Name)
	assert.Equal(t, "From the config.", meta.Description)
	assert.Equal(t, "Apache-2.0", meta.License)
	assert.Equal(t, "https://github.com/acme/demo", meta.Repository)
	assert.Equal(t, "Copyright Acme.", meta.LicenseText)
}

func TestLoadMetadata_Fallbacks(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "my-lib")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte(`{"repository": "github.com/acme/lib"}`), 0644))

	cfg := config.Default()
	cfg.Dir = dir
	meta := LoadMetadata(cfg)
	assert.Equal(t, "my-lib", meta.Name)
	assert.Empty(t, meta.LicenseText)
	assert.Contains(t, meta.Repository, "github.com/acme/lib")
}

func TestRepositoryURL(t *testing.T) {
	assert.Equal(t, "https://a/b", repositoryURL([]byte(`"https://a/b"`)))
	assert.Equal(t, "https://a/c", repositoryURL([]byte(`{"url":"https://a/c"}`)))
	assert.Empty(t, repositoryURL(nil))
	assert.Empty(t, repositoryURL([]byte(`42`)))
}

func TestReport_Finalize(t *testing.T) {
	r := NewReport(config.TargetFiles)
	h := r.BeginStage("render_sections")
	r.EndStage(h, map[string]float64{"files": 2, " ": 1}, nil)
	r.AddFile(FileMetric{Path: "a.md", Status: "ok", Unresolved: []string{"x", "y"}})
	r.AddFile(FileMetric{Path: "b.md", Status: "error"})
	r.AddFile(FileMetric{})
	r.AddSignal("unresolved_reference", "assemble", "Warning", "a.md", "no target")
	r.AddSignal("file_skipped", "render_sections", "critical", "b.md", "boom")
	r.AddSignal("", "assemble", "info", "", "dropped")

	path := filepath.Join(t.TempDir(), "out", "report.json")
	require.NoError(t, r.Save(path))
	assert.FileExists(t, path)

	assert.Equal(t, 1, r.Summary.StageCount)
	assert.Equal(t, 2, r.Summary.FileCount)
	assert.Equal(t, 1, r.Summary.FailedFiles)
	assert.Equal(t, 2, r.Summary.UnresolvedLinks)
	assert.Equal(t, map[string]int{"critical": 1, "warning": 1, "info": 0}, r.Summary.SignalsBySeverity)
	require.Len(t, r.Signals, 2)
	assert.Equal(t, "file_skipped", r.Signals[0].Code)
	assert.Equal(t, map[string]float64{"files": 2}, r.Stages[0].Counters)
}

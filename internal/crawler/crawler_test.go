package crawler

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reflectdoc/internal/extractor"
	"reflectdoc/internal/reflection"
)

func TestCrawler_ScanProject(t *testing.T) {
	root := t.TempDir()
	files := map[string]string{
		"src/a.ts":                  "export function a(): void {}\n",
		"src/nested/b.ts":           "export const B = 1;\n",
		"src/types.d.ts":            "export declare const T: number;\n",
		"src/a.test.ts":             "export function testA(): void {}\n",
		"src/a.spec.ts":             "export function specA(): void {}\n",
		"node_modules/dep/index.ts": "export function dep(): void {}\n",
		"dist/a.ts":                 "export function built(): void {}\n",
		"README.md":                 "# readme\n",
	}
	for name, body := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	}

	ext, err := extractor.NewExtractor("typescript")
	require.NoError(t, err)

	var found []string
	var sources []string
	err = NewCrawler(ext).ScanProject(root, func(n *reflection.Node) {
		found = append(found, n.Name)
		sources = append(sources, n.SourceFileName())
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "B"}, found)
	assert.Equal(t, []string{"src/a.ts", "src/nested/b.ts"}, sources)
}

func TestIsSource(t *testing.T) {
	assert.True(t, isSource("index.ts"))
	assert.False(t, isSource("index.d.ts"))
	assert.False(t, isSource("index.test.ts"))
	assert.False(t, isSource("index.js"))
}

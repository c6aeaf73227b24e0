package crawler

import (
	"io/fs"
	"path/filepath"
	"strings"

	"reflectdoc/internal/extractor"
	"reflectdoc/internal/logger"
	"reflectdoc/internal/reflection"
)

// Crawler scans a directory for TypeScript source files.
type Crawler struct {
	extractor *extractor.Extractor
	ignored   []string
}

// NewCrawler creates a new crawler instance.
func NewCrawler(ext *extractor.Extractor) *Crawler {
	return &Crawler{
		extractor: ext,
		ignored:   []string{".git", "node_modules", "dist", "build", "coverage", "testdata"},
	}
}

// ScanProject walks the root directory and extracts every exported
// declaration. File names passed to onNode are slash-separated and relative
// to root; files are visited in lexical order.
func (c *Crawler) ScanProject(root string, onNode func(*reflection.Node)) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path == root {
				return nil
			}
			for _, ign := range c.ignored {
				if d.Name() == ign {
					return filepath.SkipDir
				}
			}
			return nil
		}

		if !isSource(d.Name()) {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		nodes, err := c.extractor.ExtractFromFile(path, rel)
		if err != nil {
			// one broken file should not fail the scan
			logger.Logger.Warnw("skipping unparsable file", logger.FieldFile, rel, logger.FieldError, err)
			return nil
		}
		for _, n := range nodes {
			onNode(n)
		}
		return nil
	})
}

func isSource(name string) bool {
	if !strings.HasSuffix(name, ".ts") || strings.HasSuffix(name, ".d.ts") {
		return false
	}
	base := strings.TrimSuffix(name, ".ts")
	return !strings.HasSuffix(base, ".test") && !strings.HasSuffix(base, ".spec")
}

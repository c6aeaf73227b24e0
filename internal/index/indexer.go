package index

import (
	"github.com/cockroachdb/errors"

	"reflectdoc/internal/crawler"
	"reflectdoc/internal/reflection"
)

// Indexer orchestrates source scanning and reflection tree management.
type Indexer struct {
	crawler *crawler.Crawler
}

// NewIndexer creates a new indexer.
func NewIndexer(c *crawler.Crawler) *Indexer {
	return &Indexer{
		crawler: c,
	}
}

// BuildTree scans the project root and assembles the Global reflection node
// named name. Node ids are assigned in walk order.
func (i *Indexer) BuildTree(root, name string) (*reflection.Node, error) {
	tree := &reflection.Node{Name: name, Kind: reflection.KindGlobal}

	err := i.crawler.ScanProject(root, func(n *reflection.Node) {
		tree.Children = append(tree.Children, n)
	})
	if err != nil {
		return nil, errors.Wrapf(err, "scan %s", root)
	}

	tree.Link()
	tree.Renumber()
	return tree, nil
}

// SaveTree persists the tree to a JSON file.
func (i *Indexer) SaveTree(tree *reflection.Node, path string) error {
	return reflection.SaveJSON(path, tree)
}

// LoadTree loads a tree from a JSON file.
func (i *Indexer) LoadTree(path string) (*reflection.Node, error) {
	return reflection.LoadJSON(path)
}

package reflection

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
)

// Decode parses a JSON reflection tree and restores parent links.
func Decode(data []byte) (*Node, error) {
	var root Node
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, errors.Wrap(err, "decode reflection")
	}
	if root.Kind == "" {
		root.Kind = KindGlobal
	}
	root.Link()
	return &root, nil
}

// Encode serializes a reflection tree.
func Encode(root *Node) ([]byte, error) {
	data, err := json.MarshalIndent(root, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "encode reflection")
	}
	return data, nil
}

// LoadJSON reads a reflection snapshot from disk.
func LoadJSON(path string) (*Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read reflection %s", path)
	}
	return Decode(data)
}

// SaveJSON writes a reflection snapshot, creating parent directories.
func SaveJSON(path string, root *Node) error {
	data, err := Encode(root)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, "create %s", filepath.Dir(path))
	}
	return os.WriteFile(path, data, 0644)
}

package extractor

import (
	"context"
	"os"

	"github.com/cockroachdb/errors"
	sitter "github.com/smacker/go-tree-sitter"

	"reflectdoc/internal/reflection"
)

// Extractor orchestrates the extraction process using a language-specific
// extractor.
type Extractor struct {
	langExtractor LanguageExtractor
	langName      string
}

// NewExtractor creates a new extractor for a given language.
func NewExtractor(lang string) (*Extractor, error) {
	var langExt LanguageExtractor
	switch lang {
	case "typescript", "ts":
		langExt = &TypeScriptExtractor{}
	default:
		return nil, errors.Newf("unsupported language: %s", lang)
	}
	return &Extractor{langExtractor: langExt, langName: lang}, nil
}

// ExtractFromFile parses a source file and returns its exported top-level
// declarations. fileName is recorded as the declarations' source.
func (e *Extractor) ExtractFromFile(path, fileName string) ([]*reflection.Node, error) {
	sourceCode, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return e.ExtractSource(sourceCode, fileName)
}

// ExtractSource parses sourceCode and returns its exported top-level
// declarations in source order. Overloads of one function are merged.
func (e *Extractor) ExtractSource(sourceCode []byte, fileName string) ([]*reflection.Node, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(e.langExtractor.GetLanguage())
	tree, err := parser.ParseCtx(context.Background(), nil, sourceCode)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", fileName)
	}
	defer tree.Close()

	query, err := sitter.NewQuery([]byte(e.langExtractor.GetQuery()), e.langExtractor.GetLanguage())
	if err != nil {
		return nil, errors.Wrap(err, "create query")
	}
	defer query.Close()

	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(query, tree.RootNode())

	var nodes []*reflection.Node
	for {
		m, ok := qc.NextMatch()
		if !ok {
			break
		}
		for _, c := range m.Captures {
			captureName := query.CaptureNameForId(c.Index)
			nodes = append(nodes, e.langExtractor.ExtractNodes(captureName, c.Node, sourceCode, fileName)...)
		}
	}
	return mergeOverloads(nodes), nil
}

// mergeOverloads folds same-named functions into one node. Overload
// signatures precede the implementation, so in a group of several the last
// one is the implementation and is dropped.
func mergeOverloads(nodes []*reflection.Node) []*reflection.Node {
	var out []*reflection.Node
	groups := map[string][]*reflection.Node{}
	for _, n := range nodes {
		if n.Kind != reflection.KindFunction && n.Kind != reflection.KindMethod {
			out = append(out, n)
			continue
		}
		if _, ok := groups[n.Name]; !ok {
			out = append(out, n)
		}
		groups[n.Name] = append(groups[n.Name], n)
	}
	for _, group := range groups {
		if len(group) < 2 {
			continue
		}
		var sigs []*reflection.Node
		for _, n := range group[:len(group)-1] {
			sigs = append(sigs, n.Signatures...)
		}
		group[0].Signatures = sigs
	}
	return out
}

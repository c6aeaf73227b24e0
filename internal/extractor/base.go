package extractor

import (
	sitter "github.com/smacker/go-tree-sitter"

	"reflectdoc/internal/reflection"
)

// LanguageExtractor defines what each language front end must provide.
type LanguageExtractor interface {
	GetLanguage() *sitter.Language
	GetQuery() string
	// ExtractNodes turns one captured top-level declaration into reflection
	// nodes. A lexical declaration may hold several variables.
	ExtractNodes(captureName string, node *sitter.Node, sourceCode []byte, fileName string) []*reflection.Node
}

package extractor

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"

	"reflectdoc/internal/reflection"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// SymbolID creates a deterministic id for a declaration. It stays the same
// across scans as long as the qualified name, kind, source file and
// signature shapes do not change.
func SymbolID(n *reflection.Node) string {
	if n == nil {
		return ""
	}
	name := strings.TrimSpace(n.QualifiedName())
	if name == "" {
		name = "_"
	}
	file := n.SourceFileName()
	if file == "" {
		file = "_"
	}

	var shapes []string
	for _, sig := range n.Signatures {
		shapes = append(shapes, canonicalize(signatureShape(sig)))
	}
	if n.Type != nil {
		shapes = append(shapes, canonicalize(n.Type.String()))
	}

	fingerprint := strings.Join(append([]string{file, string(n.Kind), name}, shapes...), "|")
	sum := sha256.Sum256([]byte(fingerprint))
	return fmt.Sprintf("%s:%s:%s", strings.ToLower(string(n.Kind)), name, hex.EncodeToString(sum[:8]))
}

func signatureShape(sig *reflection.Node) string {
	params := make([]string, 0, len(sig.Parameters))
	for _, p := range sig.Parameters {
		params = append(params, p.Name+":"+p.Type.String())
	}
	return "(" + strings.Join(params, ",") + ")" + sig.Type.String()
}

func canonicalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return whitespaceRe.ReplaceAllString(s, " ")
}

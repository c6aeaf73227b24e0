package extractor

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reflectdoc/internal/reflection"
)

func TestExtractor_ExtractFromFile(t *testing.T) {
	ext, err := NewExtractor("typescript")
	require.NoError(t, err)

	nodes, err := ext.ExtractFromFile(filepath.Join("testdata", "greeter.ts"), "src/greeter.ts")
	require.NoError(t, err)

	byName := make(map[string]*reflection.Node)
	var names []string
	for _, n := range nodes {
		byName[n.Name] = n
		names = append(names, n.Name)
	}

	t.Run("Exported Only", func(t *testing.T) {
		assert.Equal(t, []string{"Person", "Greeter", "f", "DEFAULTS", "add", "mode"}, names)
		for _, n := range nodes {
			assert.True(t, n.Flags.IsExported)
			assert.Equal(t, "src/greeter.ts", n.SourceFileName())
		}
	})

	t.Run("Interface", func(t *testing.T) {
		person := byName["Person"]
		require.NotNil(t, person)
		assert.Equal(t, reflection.KindInterface, person.Kind)
		assert.Equal(t, "A person.", person.Comment.ShortText)
		require.Len(t, person.Children, 3)

		name := person.Children[0]
		assert.Equal(t, "Full name.", name.Comment.ShortText)
		assert.Equal(t, "string", name.Type.String())
		assert.True(t, person.Children[1].Flags.IsOptional)

		greet := person.Children[2]
		assert.Equal(t, reflection.KindProperty, greet.Kind)
		assert.Equal(t, reflection.TypeRaw, greet.Type.Kind)
		assert.Equal(t, "(other: Person) => string", greet.Type.Name)
	})

	t.Run("Class", func(t *testing.T) {
		greeter := byName["Greeter"]
		require.NotNil(t, greeter)
		assert.Equal(t, "Says hello.", greeter.Comment.ShortText)
		assert.Equal(t, "Greets a [[Person]].", greeter.Comment.Text)

		var members []string
		for _, c := range greeter.Children {
			members = append(members, c.Name)
		}
		assert.Equal(t, []string{"prefix", "instances", "count", "greet"}, members)

		prefix := greeter.Children[0]
		assert.Equal(t, `"Hello"`, prefix.DefaultValue)
		assert.True(t, greeter.Children[1].Flags.IsStatic)

		count := greeter.Children[2]
		assert.Equal(t, reflection.KindAccessor, count.Kind)
		require.NotNil(t, count.GetSignature)
		assert.Equal(t, "number", count.GetSignature.Type.String())
		assert.Equal(t, "Greetings so far.", count.GetSignature.Comment.ShortText)

		greet := greeter.Children[3]
		require.Len(t, greet.Signatures, 1)
		sig := greet.Signatures[0]
		assert.Equal(t, "Greets someone.", sig.Comment.ShortText)
		assert.Equal(t, "The greeting.", sig.Comment.Returns)
		assert.Equal(t, "Who to greet.", sig.Comment.Params["who"])
		require.Len(t, sig.Parameters, 2)
		assert.Equal(t, reflection.TypeReference, sig.Parameters[0].Type.Kind)
		assert.True(t, sig.Parameters[1].Flags.IsOptional)
	})

	t.Run("Overloads", func(t *testing.T) {
		f := byName["f"]
		require.NotNil(t, f)
		require.Len(t, f.Signatures, 2)
		assert.Equal(t, "From a string.", f.Signatures[0].Comment.ShortText)
		assert.Equal(t, "number", f.Signatures[1].Type.String())
	})

	t.Run("Variables", func(t *testing.T) {
		defaults := byName["DEFAULTS"]
		assert.Equal(t, reflection.KindVariable, defaults.Kind)
		assert.Equal(t, "Default options.", defaults.Comment.ShortText)
		assert.Contains(t, defaults.DefaultValue, "retries: 3")

		add := byName["add"]
		assert.Equal(t, reflection.KindFunction, add.Kind)
		sig := add.Signatures[0]
		assert.Equal(t, "Adds two numbers.", sig.Comment.ShortText)
		assert.Equal(t, "1", sig.Parameters[1].DefaultValue)
		assert.True(t, sig.Parameters[1].Flags.IsOptional)

		mode := byName["mode"]
		require.Equal(t, reflection.TypeUnion, mode.Type.Kind)
		assert.Equal(t, `"fast" | "slow" | Array<string | number>`, mode.Type.String())
	})
}

func TestNewExtractor_Unsupported(t *testing.T) {
	_, err := NewExtractor("cobol")
	assert.Error(t, err)
}

func TestParseJSDoc(t *testing.T) {
	c := parseJSDoc("/**\n * Short.\n *\n * Long text\n * ```ts\n * @decorator()\n * ```\n * @param {string} [name=x] - The name.\n * @return Nothing.\n * @default 3\n */")
	require.NotNil(t, c)
	assert.Equal(t, "Short.", c.ShortText)
	assert.Equal(t, "Long text\n```ts\n@decorator()\n```", c.Text)
	assert.Equal(t, "The name.", c.Params["name"])
	assert.Equal(t, "Nothing.", c.Returns)

	assert.Nil(t, parseJSDoc("// line"))
	assert.Nil(t, parseJSDoc("/** */"))
}

func TestSymbolID(t *testing.T) {
	ext, err := NewExtractor("ts")
	require.NoError(t, err)
	a, err := ext.ExtractSource([]byte("export function g(x: number): void {}"), "a.ts")
	require.NoError(t, err)
	b, err := ext.ExtractSource([]byte("export function g(x:   number): void {\n  return;\n}"), "a.ts")
	require.NoError(t, err)
	c, err := ext.ExtractSource([]byte("export function g(x: string): void {}"), "a.ts")
	require.NoError(t, err)

	assert.Equal(t, SymbolID(a[0]), SymbolID(b[0]))
	assert.NotEqual(t, SymbolID(a[0]), SymbolID(c[0]))
	assert.Regexp(t, `^function:g:[0-9a-f]{16}$`, SymbolID(a[0]))
}

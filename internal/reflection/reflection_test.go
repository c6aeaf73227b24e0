package reflection

import (
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFixture(t *testing.T, linkBase string) *Service {
	t.Helper()
	root, err := LoadJSON(filepath.Join("testdata", "project.json"))
	require.NoError(t, err)
	return NewService(root, linkBase)
}

func TestService_Resolve(t *testing.T) {
	svc := loadFixture(t, "")

	t.Run("Root", func(t *testing.T) {
		for _, sel := range []string{"", "*", "  "} {
			n, err := svc.Resolve(sel)
			require.NoError(t, err)
			assert.Equal(t, KindGlobal, n.Kind)
		}
	})

	t.Run("Dotted path", func(t *testing.T) {
		n, err := svc.Resolve("Greeter.greet")
		require.NoError(t, err)
		assert.Equal(t, KindMethod, n.Kind)
		assert.Equal(t, "Greeter.greet", n.QualifiedName())
		assert.Equal(t, "Greeter", n.Parent().Name)
	})

	t.Run("Unknown top level", func(t *testing.T) {
		_, err := svc.Resolve("Nope")
		assert.True(t, errors.Is(err, ErrNoReflection))
		assert.Contains(t, err.Error(), "Nope")
	})

	t.Run("Unknown child", func(t *testing.T) {
		_, err := svc.Resolve("Person.missing")
		assert.True(t, errors.Is(err, ErrNoChild))
		assert.Contains(t, err.Error(), "missing")
	})

	t.Run("Ad-hoc sources", func(t *testing.T) {
		n, err := svc.Resolve("[src/util.ts, ./src/person.ts]")
		require.NoError(t, err)
		assert.Equal(t, KindGlobal, n.Kind)
		var names []string
		for _, c := range n.Children {
			names = append(names, c.Name)
		}
		assert.Equal(t, []string{"Person", "f", "DEFAULTS"}, names)

		_, err = svc.Resolve("[src/none.ts]")
		assert.True(t, errors.Is(err, ErrNoReflection))
	})
}

func TestService_ChildrenByKind(t *testing.T) {
	svc := loadFixture(t, "")
	greeter, err := svc.Resolve("Greeter")
	require.NoError(t, err)

	props := svc.ChildrenByKind(greeter, KindProperty, KindAccessor)
	require.Len(t, props, 2)
	assert.Equal(t, "prefix", props[0].Name)
	assert.Equal(t, "count", props[1].Name)
	assert.Empty(t, svc.ChildrenByKind(greeter, KindInterface))
}

func TestService_Extract(t *testing.T) {
	svc := loadFixture(t, "https://docs.example.com/reference.html")

	t.Run("Links use the qualified name", func(t *testing.T) {
		n, err := svc.Resolve("Person.age")
		require.NoError(t, err)
		info := svc.Extract(n)
		assert.Equal(t, "https://docs.example.com/reference.html#person-age", info.Link)
		assert.True(t, info.IsOptional)
		assert.Equal(t, "`number`", info.DisplayType)
	})

	t.Run("Accessor takes the getter", func(t *testing.T) {
		n, err := svc.Resolve("Greeter.count")
		require.NoError(t, err)
		info := svc.Extract(n)
		assert.Equal(t, "number", info.Type.String())
		assert.Equal(t, "Greetings so far.", info.ShortText)
	})

	t.Run("Function takes the first signature comment", func(t *testing.T) {
		n, err := svc.Resolve("f")
		require.NoError(t, err)
		info := svc.Extract(n)
		assert.Equal(t, "From a string.", info.ShortText)
		assert.Equal(t, "src/util.ts", info.SourceFileName)
	})

	t.Run("Signature inherits the source file", func(t *testing.T) {
		n, err := svc.Resolve("Greeter.greet")
		require.NoError(t, err)
		info := svc.Extract(n.Signatures[0])
		assert.Equal(t, "The greeting.", info.ReturnsText)
		assert.Equal(t, "Who to greet.", info.Params["who"])
	})

	t.Run("No link base", func(t *testing.T) {
		plain := loadFixture(t, "")
		n, err := plain.Resolve("Person")
		require.NoError(t, err)
		assert.Empty(t, plain.Extract(n).Link)
	})
}

func TestType_Display(t *testing.T) {
	linker := func(name string) (string, bool) {
		if name == "Person" {
			return "ref.html#person", true
		}
		return "", false
	}
	union := &Type{Kind: TypeUnion, Types: []*Type{
		{Kind: TypeIntrinsic, Name: "string"},
		{Kind: TypeLiteral, Name: "42"},
	}}

	assert.Equal(t, "(string | 42)[]", (&Type{Kind: TypeArray, ElementType: union}).String())
	assert.Equal(t, "`string | 42`", union.Display(linker))
	assert.Equal(t, "`Map<string, number>`", (&Type{Kind: TypeReference, Name: "Map", TypeArguments: []*Type{
		{Kind: TypeIntrinsic, Name: "string"}, {Kind: TypeIntrinsic, Name: "number"},
	}}).Display(linker))

	person := &Type{Kind: TypeReference, Name: "Person"}
	assert.Equal(t, "[Person](ref.html#person)", person.Display(linker))
	assert.Equal(t, "[Person](ref.html#person)`[]`", (&Type{Kind: TypeArray, ElementType: person}).Display(linker))
	assert.Equal(t, "[Person](ref.html#person) `|` `null`", (&Type{Kind: TypeUnion, Types: []*Type{
		person, {Kind: TypeLiteral, Name: "null"},
	}}).Display(linker))
}

func TestJSON_RoundTrip(t *testing.T) {
	svc := loadFixture(t, "")
	path := filepath.Join(t.TempDir(), "out", "reflection.json")
	require.NoError(t, SaveJSON(path, svc.Root()))

	back, err := LoadJSON(path)
	require.NoError(t, err)
	again := NewService(back, "")
	n, err := again.Resolve("Greeter.greet")
	require.NoError(t, err)
	require.Len(t, n.Signatures, 1)
	assert.Len(t, n.Signatures[0].Parameters, 2)
	assert.Equal(t, n, n.Signatures[0].Parameters[0].Parent().Parent())
}

package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reflectdoc/internal/reflection"
)

func TestSQLiteStore_SaveSnapshot_Sync(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "test.db")
	store, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()

	// Initial snapshot: A and B
	first, err := store.SaveSnapshot(ctx, "demo", testTree(
		testNode("FuncA", "a.ts", 1, "Does A."),
		testNode("FuncB", "b.ts", 3, "Does B."),
	))
	require.NoError(t, err)

	// New snapshot: A removed, C added
	second, err := store.SaveSnapshot(ctx, "demo", testTree(
		testNode("FuncB", "b.ts", 3, "Does B."),
		testNode("FuncC", "c.ts", 5, "Does C."),
	))
	require.NoError(t, err)
	assert.Greater(t, second, first)

	loaded, err := store.LoadLatest(ctx, "demo")
	require.NoError(t, err)
	require.Len(t, loaded.Children, 2)
	assert.Equal(t, "FuncC", loaded.Children[1].Name)
	assert.Same(t, loaded, loaded.Children[0].Parent())

	a, err := store.FindByName(ctx, "FuncA")
	require.NoError(t, err)
	assert.Empty(t, a)

	c, err := store.FindByFile(ctx, "c.ts")
	require.NoError(t, err)
	require.Len(t, c, 1)
	assert.Equal(t, "FuncC", c[0].Name)
	assert.Equal(t, reflection.KindFunction, c[0].Kind)
	assert.Equal(t, 5, c[0].Line)
	assert.Equal(t, "Does C.", c[0].ShortText)
	assert.Equal(t, second, c[0].SnapshotID)
}

func TestSQLiteStore_QualifiedNames(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	class := &reflection.Node{
		Name:    "Greeter",
		Kind:    reflection.KindClass,
		Sources: []reflection.Source{{FileName: "greeter.ts", Line: 1}},
		Children: []*reflection.Node{{
			Name:    "prefix",
			Kind:    reflection.KindProperty,
			Comment: &reflection.Comment{ShortText: "Greeting prefix."},
			Sources: []reflection.Source{{FileName: "greeter.ts", Line: 2}},
		}},
	}
	_, err = store.SaveSnapshot(ctx, "demo", testTree(class))
	require.NoError(t, err)

	found, err := store.FindByName(ctx, "Greeter.prefix")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "prefix", found[0].Name)
	assert.Equal(t, "Greeting prefix.", found[0].ShortText)

	all, err := store.FindByFile(ctx, "greeter.ts")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestSQLiteStore_LoadLatest_Missing(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer store.Close()

	_, err = store.LoadLatest(context.Background(), "nothing")
	assert.ErrorIs(t, err, ErrNoSnapshot)
}

func testTree(children ...*reflection.Node) *reflection.Node {
	return &reflection.Node{Name: "demo", Kind: reflection.KindGlobal, Children: children}
}

func testNode(name, file string, line int, short string) *reflection.Node {
	return &reflection.Node{
		Name:    name,
		Kind:    reflection.KindFunction,
		Sources: []reflection.Source{{FileName: file, Line: line}},
		Signatures: []*reflection.Node{{
			Name:    name,
			Kind:    reflection.KindCallSignature,
			Comment: &reflection.Comment{ShortText: short},
			Type:    &reflection.Type{Kind: reflection.TypeIntrinsic, Name: "void"},
		}},
	}
}

package storage

import (
	"context"

	"github.com/cockroachdb/errors"

	"reflectdoc/internal/reflection"
)

// ErrNoSnapshot is returned when a project has never been scanned.
var ErrNoSnapshot = errors.New("no snapshot stored")

// Declaration is the indexed row of one documented node of the latest
// snapshot.
type Declaration struct {
	SymbolID      string
	SnapshotID    int64
	Name          string
	QualifiedName string
	Kind          reflection.Kind
	File          string
	Line          int
	ShortText     string
}

// Store combines snapshot persistence and declaration lookups.
type Store interface {
	SnapshotStore
	DeclarationIndex
	Close() error
}

// SnapshotStore persists whole reflection trees.
type SnapshotStore interface {
	// SaveSnapshot stores tree as the newest snapshot of project and
	// reindexes its declarations.
	SaveSnapshot(ctx context.Context, project string, tree *reflection.Node) (int64, error)

	// LoadLatest returns the newest snapshot of project.
	LoadLatest(ctx context.Context, project string) (*reflection.Node, error)
}

// DeclarationIndex answers lookups over the declarations of the newest
// snapshot.
type DeclarationIndex interface {
	// FindByName returns declarations whose simple or qualified name matches.
	FindByName(ctx context.Context, name string) ([]Declaration, error)

	// FindByFile returns the declarations of one source file.
	FindByFile(ctx context.Context, file string) ([]Declaration, error)
}

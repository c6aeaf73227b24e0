package storage

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	_ "github.com/mattn/go-sqlite3"

	"reflectdoc/internal/extractor"
	"reflectdoc/internal/reflection"
)

type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore creates or opens a SQLite database.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, errors.Wrapf(err, "create %s", dir)
		}
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "open %s", path)
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to init schema")
	}

	return s, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS snapshots (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			project TEXT NOT NULL,
			created_at TEXT NOT NULL,
			tree JSON NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS declarations (
			symbol_id TEXT PRIMARY KEY,
			snapshot_id INTEGER NOT NULL,
			name TEXT,
			qualified_name TEXT,
			kind TEXT,
			file TEXT,
			line INTEGER,
			short_text TEXT
		);`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_project ON snapshots(project, id);`,
		`CREATE INDEX IF NOT EXISTS idx_declarations_file ON declarations(file);`,
		`CREATE INDEX IF NOT EXISTS idx_declarations_name ON declarations(name);`,
	}

	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

// SaveSnapshot stores tree and replaces the declaration index with its
// nodes, so the index always mirrors the newest snapshot.
func (s *SQLiteStore) SaveSnapshot(ctx context.Context, project string, tree *reflection.Node) (int64, error) {
	data, err := reflection.Encode(tree)
	if err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO snapshots (project, created_at, tree) VALUES (?, ?, ?)`,
		project, time.Now().UTC().Format(time.RFC3339), data)
	if err != nil {
		return 0, errors.Wrap(err, "insert snapshot")
	}
	snapshotID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM declarations`); err != nil {
		return 0, errors.Wrap(err, "clear declarations")
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO declarations (symbol_id, snapshot_id, name, qualified_name, kind, file, line, short_text)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(symbol_id) DO UPDATE SET
			snapshot_id=excluded.snapshot_id,
			name=excluded.name,
			qualified_name=excluded.qualified_name,
			kind=excluded.kind,
			file=excluded.file,
			line=excluded.line,
			short_text=excluded.short_text
	`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	tree.Link()
	var execErr error
	tree.Walk(func(n *reflection.Node) {
		if execErr != nil || !indexed(n) {
			return
		}
		line := 0
		if len(n.Sources) > 0 {
			line = n.Sources[0].Line
		}
		_, execErr = stmt.ExecContext(ctx, extractor.SymbolID(n), snapshotID, n.Name, n.QualifiedName(),
			string(n.Kind), n.SourceFileName(), line, shortText(n))
	})
	if execErr != nil {
		return 0, errors.Wrap(execErr, "index declarations")
	}

	return snapshotID, tx.Commit()
}

func (s *SQLiteStore) LoadLatest(ctx context.Context, project string) (*reflection.Node, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT tree FROM snapshots WHERE project = ? ORDER BY id DESC LIMIT 1`, project).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.WithHint(errors.Wrapf(ErrNoSnapshot, "project %q", project), "run `reflectdoc scan` first")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to query snapshot")
	}
	return reflection.Decode(data)
}

func (s *SQLiteStore) FindByName(ctx context.Context, name string) ([]Declaration, error) {
	return s.queryDeclarations(ctx, `WHERE name = ? OR qualified_name = ?`, name, name)
}

func (s *SQLiteStore) FindByFile(ctx context.Context, file string) ([]Declaration, error) {
	return s.queryDeclarations(ctx, `WHERE file = ?`, file)
}

func (s *SQLiteStore) queryDeclarations(ctx context.Context, where string, args ...any) ([]Declaration, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT symbol_id, snapshot_id, name, qualified_name, kind, file, line, short_text
		FROM declarations `+where+` ORDER BY file, line, qualified_name`, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query declarations")
	}
	defer rows.Close()

	var out []Declaration
	for rows.Next() {
		var d Declaration
		var kind string
		if err := rows.Scan(&d.SymbolID, &d.SnapshotID, &d.Name, &d.QualifiedName, &kind, &d.File, &d.Line, &d.ShortText); err != nil {
			return nil, errors.Wrap(err, "failed to scan declaration")
		}
		d.Kind = reflection.Kind(kind)
		out = append(out, d)
	}
	return out, rows.Err()
}

func indexed(n *reflection.Node) bool {
	switch n.Kind {
	case reflection.KindInterface, reflection.KindClass, reflection.KindProperty, reflection.KindMethod,
		reflection.KindFunction, reflection.KindVariable, reflection.KindAccessor:
		return true
	}
	return false
}

func shortText(n *reflection.Node) string {
	switch {
	case n.Comment != nil:
		return n.Comment.ShortText
	case len(n.Signatures) > 0 && n.Signatures[0].Comment != nil:
		return n.Signatures[0].Comment.ShortText
	case n.GetSignature != nil && n.GetSignature.Comment != nil:
		return n.GetSignature.Comment.ShortText
	}
	return ""
}

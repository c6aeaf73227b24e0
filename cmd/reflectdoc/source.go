package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"

	"reflectdoc/internal/config"
	"reflectdoc/internal/crawler"
	"reflectdoc/internal/extractor"
	"reflectdoc/internal/generator"
	"reflectdoc/internal/index"
	"reflectdoc/internal/logger"
	"reflectdoc/internal/reflection"
	"reflectdoc/internal/storage"
)

// project is everything a command needs about the documented project.
type project struct {
	cfg  *config.Config
	meta generator.Metadata
}

// loadProject reads the project file for dir. Without --config a missing
// reflectdoc.yaml means defaults.
func loadProject(dir string) (*project, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	path := configPath
	if path == "" {
		path = filepath.Join(abs, config.DefaultPath)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			logger.Logger.Debugw("no project file, using defaults", logger.FieldFile, path)
			cfg := config.Default()
			cfg.Dir = abs
			return &project{cfg: cfg, meta: generator.LoadMetadata(cfg)}, nil
		}
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	return &project{cfg: cfg, meta: generator.LoadMetadata(cfg)}, nil
}

func (p *project) sourceRoot() string {
	if p.cfg.Reflection.Source == "" {
		return p.cfg.Dir
	}
	return p.cfg.Resolve(p.cfg.Reflection.Source)
}

func (p *project) indexer() (*index.Indexer, error) {
	ext, err := extractor.NewExtractor("typescript")
	if err != nil {
		return nil, err
	}
	return index.NewIndexer(crawler.NewCrawler(ext)), nil
}

// scan parses the TypeScript sources into a fresh reflection tree.
func (p *project) scan() (*reflection.Node, error) {
	idx, err := p.indexer()
	if err != nil {
		return nil, err
	}
	return idx.BuildTree(p.sourceRoot(), p.meta.Name)
}

// openStore opens the snapshot database if it exists.
func (p *project) openStore() (storage.Store, bool, error) {
	db := p.cfg.Resolve(p.cfg.Reflection.DB)
	if _, err := os.Stat(db); os.IsNotExist(err) {
		return nil, false, nil
	}
	store, err := storage.NewSQLiteStore(db)
	if err != nil {
		return nil, false, err
	}
	return store, true, nil
}

// service picks the first available source: the JSON snapshot, the
// latest stored snapshot, then a fresh scan.
func (p *project) service(ctx context.Context) (*reflection.Service, error) {
	root, err := p.loadTree(ctx)
	if err != nil {
		return nil, err
	}
	return reflection.NewService(root, p.cfg.LinkBase()), nil
}

func (p *project) loadTree(ctx context.Context) (*reflection.Node, error) {
	if p.cfg.Reflection.JSON != "" {
		path := p.cfg.Resolve(p.cfg.Reflection.JSON)
		if _, err := os.Stat(path); err == nil {
			logger.Logger.Debugw("loading reflection snapshot", logger.FieldFile, path)
			idx, err := p.indexer()
			if err != nil {
				return nil, err
			}
			return idx.LoadTree(path)
		}
		logger.Logger.Debugw("reflection snapshot missing", logger.FieldFile, path)
	}

	store, ok, err := p.openStore()
	if err != nil {
		return nil, err
	}
	if ok {
		defer store.Close()
		tree, err := store.LoadLatest(ctx, p.meta.Name)
		if err == nil {
			logger.Logger.Debugw("loaded stored snapshot", logger.FieldFile, p.cfg.Reflection.DB)
			return tree, nil
		}
		if !errors.Is(err, storage.ErrNoSnapshot) {
			return nil, err
		}
	}

	logger.Logger.Debugw("scanning sources", logger.FieldFile, p.sourceRoot())
	return p.scan()
}

func (p *project) generator(ctx context.Context) (*generator.Generator, error) {
	svc, err := p.service(ctx)
	if err != nil {
		return nil, err
	}
	return generator.New(p.cfg, svc, nil, p.meta)
}

// Package generator renders the configured output files: it merges freshly
// converted sections with the sections already on disk, resolves references
// across the batch and writes the results.
package generator

import (
	"context"
	"fmt"
	"html/template"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"

	"reflectdoc/internal/config"
	"reflectdoc/internal/content"
	"reflectdoc/internal/convert"
	"reflectdoc/internal/format"
	"reflectdoc/internal/logger"
	"reflectdoc/internal/reflection"
	"reflectdoc/internal/theme"
)

// Generator runs one batch. It is not reused across runs: the declaration
// cache lives exactly as long as the Generator.
type Generator struct {
	cfg   *config.Config
	conv  *convert.Converter
	cache *declCache
	meta  Metadata
	theme *theme.Theme
}

// Result lists what a run wrote and which files failed under the skip
// policy.
type Result struct {
	Written []string
	Failed  []FileError
	Report  *Report
}

// FileError is a file that could not be rendered.
type FileError struct {
	Path string
	Err  error
}

// fileDoc is one output file between rendering and writing.
type fileDoc struct {
	Path     string // as configured, slash-separated, relative to the output directory
	OutPath  string
	Dialect  format.Dialect
	Title    string
	Sections []renderedSection
	Headings []content.Heading
	Text     string
}

// New prepares a run over svc. A nil conv handles the built-in modes only.
func New(cfg *config.Config, svc *reflection.Service, conv *convert.Converter, meta Metadata) (*Generator, error) {
	if conv == nil {
		conv = convert.New(nil)
	}
	g := &Generator{cfg: cfg, conv: conv, cache: newDeclCache(svc), meta: meta}
	if cfg.Target == config.TargetWebsite {
		th, err := theme.Load(cfg.Resolve(cfg.Theme))
		if err != nil {
			return nil, err
		}
		g.theme = th
	}
	return g, nil
}

// Generate renders every configured file and writes them. With the abort
// policy nothing is written when any file fails.
func (g *Generator) Generate(ctx context.Context) (*Result, error) {
	report := NewReport(g.cfg.Target)
	result := &Result{Report: report}

	stage := report.BeginStage("render_sections")
	var docs []*fileDoc
	for _, f := range g.cfg.Files {
		if err := ctx.Err(); err != nil {
			report.EndStage(stage, nil, err)
			return result, err
		}
		doc, err := g.renderFile(f)
		if err != nil {
			err = errors.Wrapf(err, "file %s", f.Path)
			report.AddFile(FileMetric{Path: f.Path, Status: "error", Error: err.Error()})
			if g.cfg.OnError != config.OnErrorSkip {
				report.EndStage(stage, nil, err)
				return result, err
			}
			logger.Logger.Warnw("skipping file", logger.FieldFile, f.Path, logger.FieldError, err)
			report.AddSignal("file_skipped", "render_sections", "critical", f.Path, err.Error())
			result.Failed = append(result.Failed, FileError{Path: f.Path, Err: err})
			continue
		}
		docs = append(docs, doc)
	}
	report.EndStage(stage, map[string]float64{"files": float64(len(docs))}, nil)

	stage = report.BeginStage("assemble")
	for _, doc := range docs {
		if err := g.assemble(doc, docs); err != nil {
			err = errors.Wrapf(err, "file %s", doc.Path)
			report.EndStage(stage, nil, err)
			return result, err
		}
		metric := g.fileMetric(doc)
		for _, id := range metric.Unresolved {
			logger.Logger.Warnw("unresolved reference", logger.FieldFile, doc.Path, logger.FieldSelector, id)
			report.AddSignal("unresolved_reference", "assemble", "warning", doc.Path, fmt.Sprintf("no target for %q", id))
		}
		report.AddFile(metric)
	}
	if g.theme != nil {
		if err := g.wrapPages(docs); err != nil {
			report.EndStage(stage, nil, err)
			return result, err
		}
	}
	report.EndStage(stage, nil, nil)

	stage = report.BeginStage("write")
	for _, doc := range docs {
		if err := writeFile(doc.OutPath, doc.Text); err != nil {
			report.EndStage(stage, nil, err)
			return result, err
		}
		result.Written = append(result.Written, doc.OutPath)
		logger.Logger.Debugw("wrote file", logger.FieldFile, doc.OutPath)
	}
	if g.theme != nil {
		assets, err := g.theme.CopyAssets(g.outputDir())
		if err != nil {
			report.EndStage(stage, nil, err)
			return result, err
		}
		result.Written = append(result.Written, assets...)
	}
	report.EndStage(stage, map[string]float64{"written": float64(len(result.Written))}, nil)
	return result, nil
}

func (g *Generator) outputDir() string {
	return g.cfg.Resolve(g.cfg.OutputDir)
}

func (g *Generator) outputPath(p string) string {
	return filepath.Join(g.outputDir(), filepath.FromSlash(p))
}

// renderFile renders the configured sections of f and appends the prior
// sections the configuration no longer mentions, in their original order.
func (g *Generator) renderFile(f config.NamedFile) (*fileDoc, error) {
	doc := &fileDoc{
		Path:    path.Clean(filepath.ToSlash(f.Path)),
		OutPath: g.outputPath(f.Path),
		Dialect: format.DialectFor(f.Path),
		Title:   f.Title,
	}

	var prior []content.Section
	if !g.cfg.CleanFor(f.File) {
		var err error
		if prior, err = priorSections(doc.OutPath); err != nil {
			return nil, err
		}
	}

	configured := make(map[string]bool, len(f.Sections))
	for _, sec := range f.Sections {
		if configured[sec.Name] {
			return nil, errors.Newf("section %q is configured twice", sec.Name)
		}
		configured[sec.Name] = true
		rs, err := g.renderSection(sec)
		if err != nil {
			return nil, err
		}
		logger.Logger.Debugw("rendered section", logger.FieldFile, f.Path, logger.FieldSection, sec.Name)
		doc.Sections = append(doc.Sections, rs)
	}
	for _, p := range prior {
		if configured[p.ID] {
			continue
		}
		configured[p.ID] = true
		doc.Sections = append(doc.Sections, renderedSection{Name: p.ID, Text: p.Content, Attrs: p.Attrs})
	}

	for _, s := range doc.Sections {
		if s.TOC == "" {
			doc.Headings = append(doc.Headings, content.ExtractHeadings(s.Text)...)
		}
	}
	return doc, nil
}

// assemble fills the table of contents, resolves references against the
// whole batch, converts generated sections of HTML files and joins the
// sections.
func (g *Generator) assemble(doc *fileDoc, batch []*fileDoc) error {
	resolve := g.resolver(doc, batch)
	parts := make([]string, 0, len(doc.Sections))
	for _, s := range doc.Sections {
		if !s.Generated {
			parts = append(parts, content.WrapSection(s.Name, content.ResolveReferences(s.Text, resolve), s.Attrs))
			continue
		}
		text := s.Text
		if s.TOC != "" {
			text = strings.Replace(text, tocPlaceholder, g.renderTOC(s.TOC, doc.Headings, doc.Path), 1)
		}
		text = content.ConvertLinks(text, resolve)
		if doc.Dialect == format.HTML && text != "" {
			html, err := format.ToHTML(text, g.htmlBase())
			if err != nil {
				return errors.Wrapf(err, "section %q", s.Name)
			}
			text = html
		}
		parts = append(parts, content.WrapSection(s.Name, text, content.GeneratedAttr))
	}
	text, err := format.New(doc.Dialect).Format(strings.Join(parts, content.BlockSeparator))
	if err != nil {
		return err
	}
	doc.Text = text + "\n"
	return nil
}

// htmlBase is the base URL relative links of generated HTML are resolved
// against. Website pages link relatively.
func (g *Generator) htmlBase() string {
	if g.cfg.Target == config.TargetWebsite {
		return ""
	}
	return g.cfg.Project.BaseURL
}

func (g *Generator) fileMetric(doc *fileDoc) FileMetric {
	m := FileMetric{Path: doc.Path, Status: "ok", Headings: len(doc.Headings)}
	for _, s := range doc.Sections {
		if s.Generated {
			m.Generated = append(m.Generated, s.Name)
		} else {
			m.Passthrough = append(m.Passthrough, s.Name)
		}
	}
	m.Unresolved = content.UnresolvedReferences(doc.Text)
	return m
}

// wrapPages puts every HTML file of the batch into the theme's page shell.
func (g *Generator) wrapPages(docs []*fileDoc) error {
	var pages []theme.Page
	for _, doc := range docs {
		if doc.Dialect == format.HTML {
			pages = append(pages, theme.Page{Path: doc.Path, Headings: doc.Headings})
		}
	}
	for _, doc := range docs {
		if doc.Dialect != format.HTML {
			continue
		}
		out, err := g.theme.Render(theme.PageData{
			Title:   pageTitle(doc),
			Project: g.meta.Name,
			Content: template.HTML(doc.Text),
			Menu:    theme.BuildMenu(pages, doc.Path, g.cfg.MenuHeadings),
			Root:    theme.RootFrom(doc.Path),
			Data:    g.cfg.PageData,
		})
		if err != nil {
			return errors.Wrapf(err, "page %s", doc.Path)
		}
		doc.Text = out
	}
	return nil
}

func pageTitle(doc *fileDoc) string {
	if doc.Title != "" {
		return doc.Title
	}
	for _, h := range doc.Headings {
		if h.Level == 1 {
			return h.Title
		}
	}
	return strings.TrimSuffix(path.Base(doc.Path), path.Ext(doc.Path))
}

func writeFile(p, text string) error {
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return errors.Wrapf(err, "create %s", filepath.Dir(p))
	}
	if err := os.WriteFile(p, []byte(text), 0644); err != nil {
		return errors.Wrapf(err, "write %s", p)
	}
	return nil
}

// Summary is a one-line description of a result for CLI output.
func (r *Result) Summary() string {
	return fmt.Sprintf("%d written, %d failed", len(r.Written), len(r.Failed))
}

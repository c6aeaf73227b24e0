package config

import (
	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// SectionKind tells how a section is produced.
type SectionKind int

const (
	// SectionBuiltin is a `name: true` entry: head, license, toc or tocx.
	SectionBuiltin SectionKind = iota
	// SectionInclude splices a file.
	SectionInclude
	// SectionConvert converts a declaration.
	SectionConvert
)

// Filter selects children in category modes.
type Filter struct {
	Suffix []string `yaml:"suffix"`
	Names  []string `yaml:"names"`
	Kinds  []string `yaml:"kinds"`
}

// Options mirror the converter options.
type Options struct {
	ID            string  `yaml:"id"`
	Level         int     `yaml:"level"`
	Title         string  `yaml:"title"`
	Link          string  `yaml:"link"`
	Raw           bool    `yaml:"raw"`
	LocalAnchors  *bool   `yaml:"local_anchors"`
	NoHeading     bool    `yaml:"no_heading"`
	HeadingOffset int     `yaml:"heading_offset"`
	Filter        *Filter `yaml:"filter"`
}

// Section is one named entry of a file's sections mapping.
type Section struct {
	Name string
	Kind SectionKind

	Include       string
	HeadingOffset int

	Input   string
	Output  string
	Options Options
}

// Sections keeps the sections in the order they are written.
type Sections []Section

// NamedFile is one output file in the order it is written.
type NamedFile struct {
	Path string
	File
}

// Files keeps the output files in the order they are written.
type Files []NamedFile

func (s *Sections) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return errors.Newf("line %d: sections must be a mapping", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		sec, keep, err := decodeSection(name, node.Content[i+1])
		if err != nil {
			return err
		}
		if keep {
			*s = append(*s, sec)
		}
	}
	return nil
}

func (f *Files) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return errors.Newf("line %d: files must be a mapping", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		var file File
		if err := node.Content[i+1].Decode(&file); err != nil {
			return errors.Wrapf(err, "file %q", node.Content[i].Value)
		}
		*f = append(*f, NamedFile{Path: node.Content[i].Value, File: file})
	}
	return nil
}

// decodeSection accepts `true` (builtin), a path (include), an include
// mapping or a conversion mapping. `false` drops the section.
func decodeSection(name string, node *yaml.Node) (Section, bool, error) {
	sec := Section{Name: name}
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!bool" {
			var on bool
			if err := node.Decode(&on); err != nil {
				return sec, false, err
			}
			sec.Kind = SectionBuiltin
			return sec, on, nil
		}
		sec.Kind = SectionInclude
		sec.Include = node.Value
		return sec, true, nil
	case yaml.MappingNode:
		var raw struct {
			Include       string  `yaml:"include"`
			HeadingOffset int     `yaml:"heading_offset"`
			Input         string  `yaml:"input"`
			Output        string  `yaml:"output"`
			Options       Options `yaml:"options"`
		}
		if err := node.Decode(&raw); err != nil {
			return sec, false, errors.Wrapf(err, "section %q", name)
		}
		if raw.Include != "" {
			sec.Kind = SectionInclude
			sec.Include = raw.Include
			sec.HeadingOffset = raw.HeadingOffset
			return sec, true, nil
		}
		sec.Kind = SectionConvert
		sec.Input = raw.Input
		sec.Output = raw.Output
		sec.Options = raw.Options
		return sec, true, nil
	}
	return sec, false, errors.Newf("line %d: section %q must be a boolean, a path or a mapping", node.Line, name)
}

// Names lists the section names in order.
func (s Sections) Names() []string {
	names := make([]string, 0, len(s))
	for _, sec := range s {
		names = append(names, sec.Name)
	}
	return names
}

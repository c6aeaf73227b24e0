package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the project file looked up when none is given.
const DefaultPath = "reflectdoc.yaml"

const (
	TargetFiles   = "files"
	TargetWebsite = "website"

	OnErrorAbort = "abort"
	OnErrorSkip  = "skip"
)

//go:embed reflectdoc.schema.json
var schemaJSON []byte

type Project struct {
	Name          string `yaml:"name"`
	Description   string `yaml:"description"`
	License       string `yaml:"license"`
	LicenseFile   string `yaml:"license_file"`
	Repository    string `yaml:"repository"`
	BaseURL       string `yaml:"base_url"`
	ReferencePage string `yaml:"reference_page"`
}

type Reflection struct {
	Source string `yaml:"source"` // TypeScript source tree scanned with tree-sitter
	JSON   string `yaml:"json"`   // reflection snapshot
	DB     string `yaml:"db"`     // SQLite snapshot store
}

type File struct {
	Clean    *bool    `yaml:"clean"`
	Title    string   `yaml:"title"`
	Sections Sections `yaml:"sections"`
}

type Config struct {
	Project      Project           `yaml:"project"`
	Reflection   Reflection        `yaml:"reflection"`
	Target       string            `yaml:"target"`
	Clean        bool              `yaml:"clean"`
	OnError      string            `yaml:"on_error"`
	OutputDir    string            `yaml:"output_dir"`
	Theme        string            `yaml:"theme"`
	MenuHeadings bool              `yaml:"menu_headings"`
	PageData     map[string]string `yaml:"page_data"`
	Files        Files             `yaml:"files"`

	// Dir is the directory of the project file; relative paths resolve
	// against it.
	Dir string `yaml:"-"`
}

// LoadConfig reads a project file. A .env file next to the working directory
// is loaded first, then REFLECTDOC_* environment variables override the
// file.
func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	file, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", path)
	}
	cfg, err := Parse(file)
	if err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	abs, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, err
	}
	cfg.Dir = abs
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse validates and decodes a YAML project document.
func Parse(data []byte) (*Config, error) {
	if err := validate(data); err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	cfg.setDefaults()
	return &cfg, nil
}

// Default is the configuration used when no project file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	cfg.Dir, _ = os.Getwd()
	_ = cfg.applyEnv()
	return cfg
}

func (c *Config) setDefaults() {
	if c.Target == "" {
		c.Target = TargetFiles
	}
	if c.OnError == "" {
		c.OnError = OnErrorAbort
	}
	if c.OutputDir == "" {
		c.OutputDir = "."
	}
	if c.Project.ReferencePage == "" {
		c.Project.ReferencePage = "reference.html"
	}
	if c.Reflection.DB == "" {
		c.Reflection.DB = "reflectdoc.db"
	}
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("REFLECTDOC_BASE_URL"); v != "" {
		c.Project.BaseURL = v
	}
	if v := os.Getenv("REFLECTDOC_DB"); v != "" {
		c.Reflection.DB = v
	}
	if v := os.Getenv("REFLECTDOC_CLEAN"); v != "" {
		clean, err := strconv.ParseBool(v)
		if err != nil {
			return errors.WithHint(errors.Wrapf(err, "REFLECTDOC_CLEAN=%q", v), "use true or false")
		}
		c.Clean = clean
	}
	return nil
}

// Resolve makes p relative to the project directory unless it is absolute.
func (c *Config) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || c.Dir == "" {
		return p
	}
	return filepath.Join(c.Dir, p)
}

// LinkBase is the URL of the reference page that declaration links point
// into. It is empty when no base URL is configured.
func (c *Config) LinkBase() string {
	if c.Project.BaseURL == "" {
		return ""
	}
	base := c.Project.BaseURL
	if base[len(base)-1] != '/' {
		base += "/"
	}
	return base + c.Project.ReferencePage
}

// CleanFor reports whether prior content of file is discarded.
func (c *Config) CleanFor(f File) bool {
	if f.Clean != nil {
		return *f.Clean
	}
	return c.Clean
}

func validate(data []byte) error {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("reflectdoc.schema.json", bytes.NewReader(schemaJSON)); err != nil {
		return errors.Wrap(err, "load config schema")
	}
	schema, err := compiler.Compile("reflectdoc.schema.json")
	if err != nil {
		return errors.Wrap(err, "compile config schema")
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return errors.Wrap(err, "decode config")
	}
	if doc == nil {
		doc = map[string]any{}
	}
	// round-trip through JSON so the validator sees JSON types
	raw, err := json.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "normalize config")
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return errors.Wrap(err, "normalize config")
	}
	if err := schema.Validate(v); err != nil {
		return errors.WithHint(errors.Wrap(err, "invalid config"), "check the keys against the documented reflectdoc.yaml layout")
	}
	return nil
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yourorg/kontentgen/internal/generator"
	"github.com/yourorg/kontentgen/internal/management"
	"github.com/yourorg/kontentgen/internal/naming"
	"github.com/yourorg/kontentgen/pkg/types"
)

const (
	defaultDirName  = ".kontentgen"
	defaultFileName = "config.yaml"
	defaultDBName   = "kontentgen.db"
)

type ProjectConfig struct {
	ID      string `yaml:"id"`
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
}

type OutputConfig struct {
	Dir              string `yaml:"dir"`
	TypesFolder      string `yaml:"types_folder"`
	SnippetsFolder   string `yaml:"snippets_folder"`
	TaxonomiesFolder string `yaml:"taxonomies_folder"`
	ProjectFolder    string `yaml:"project_folder"`
	ModuleResolution string `yaml:"module_resolution"`
	AddTimestamp     bool   `yaml:"add_timestamp"`
	Barrel           bool   `yaml:"barrel"`
}

// NamingConfig holds case names (camelCase, pascalCase, snakeCase) per
// naming target. Empty values keep the built-in default.
type NamingConfig struct {
	ContentType     string `yaml:"content_type"`
	ContentTypeFile string `yaml:"content_type_file"`
	Snippet         string `yaml:"snippet"`
	SnippetFile     string `yaml:"snippet_file"`
	Taxonomy        string `yaml:"taxonomy"`
	TaxonomyFile    string `yaml:"taxonomy_file"`
	Element         string `yaml:"element"`
}

type StoreConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type Config struct {
	Project ProjectConfig           `yaml:"project"`
	Output  OutputConfig            `yaml:"output"`
	Naming  NamingConfig            `yaml:"naming"`
	Format  generator.FormatOptions `yaml:"format"`
	Export  types.ExportSettings    `yaml:"export"`
	Store   StoreConfig             `yaml:"store"`
	Log     LogConfig               `yaml:"log"`
}

// DefaultDir is ~/.kontentgen.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, defaultDirName), nil
}

// Default returns a config with every default applied, including the
// boolean and formatting defaults that SetDefaults cannot tell apart from
// explicit zero values: all project facets exported, barrels on, and the
// default format options.
func Default() *Config {
	c := &Config{
		Output: OutputConfig{Barrel: true},
		Format: generator.DefaultFormatOptions(),
		Export: types.ExportAll(),
	}
	c.SetDefaults()
	return c
}

// Load loads YAML config over Default, then applies env overrides.
func Load(configPath string) (*Config, error) {
	cfg := Default()

	if configPath == "" {
		dir, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		configPath = filepath.Join(dir, defaultFileName)
	}

	if data, err := os.ReadFile(configPath); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read config: %w", err)
	}

	applyEnvOverrides(cfg)
	cfg.SetDefaults()
	return cfg, nil
}

// SetDefaults fills empty string and numeric settings. Explicit zero values
// of max_blank_lines, export toggles and barrel are kept.
func (c *Config) SetDefaults() {
	if c.Project.BaseURL == "" {
		c.Project.BaseURL = management.DefaultBaseURL
	}
	if c.Output.Dir == "" {
		c.Output.Dir = "./models"
	}
	if c.Output.TypesFolder == "" {
		c.Output.TypesFolder = generator.DefaultTypesFolder
	}
	if c.Output.SnippetsFolder == "" {
		c.Output.SnippetsFolder = generator.DefaultSnippetsFolder
	}
	if c.Output.TaxonomiesFolder == "" {
		c.Output.TaxonomiesFolder = generator.DefaultTaxonomiesFolder
	}
	if c.Output.ProjectFolder == "" {
		c.Output.ProjectFolder = generator.DefaultProjectFolder
	}
	if c.Output.ModuleResolution == "" {
		c.Output.ModuleResolution = string(naming.NodeResolution)
	}
	if c.Format.IndentWidth == 0 {
		c.Format.IndentWidth = generator.DefaultFormatOptions().IndentWidth
	}
	if c.Store.Path == "" {
		if dir, err := DefaultDir(); err == nil {
			c.Store.Path = filepath.Join(dir, defaultDBName)
		}
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Output.Dir) == "" {
		return errors.New("output.dir cannot be empty")
	}
	if _, err := naming.ParseModuleResolution(c.Output.ModuleResolution); err != nil {
		return fmt.Errorf("output.module_resolution: %w", err)
	}
	if _, err := c.NamingConfig(); err != nil {
		return err
	}
	if c.Format.MaxBlankLines < 0 {
		return errors.New("format.max_blank_lines cannot be negative")
	}

	if err := ensureWritableDir(c.Output.Dir); err != nil {
		return fmt.Errorf("output.dir not writable: %w", err)
	}
	return nil
}

// ValidateFetch enforces requirements for talking to the management API.
func (c *Config) ValidateFetch() error {
	if strings.TrimSpace(c.Project.ID) == "" {
		return errors.New("project.id cannot be empty")
	}
	if strings.TrimSpace(c.Project.APIKey) == "" {
		return errors.New("project.api_key cannot be empty")
	}
	return nil
}

// NamingConfig parses the configured case names into resolver strategies.
func (c *Config) NamingConfig() (naming.Config, error) {
	var out naming.Config
	fields := []struct {
		key   string
		value string
		set   func(naming.Case)
	}{
		{"naming.content_type", c.Naming.ContentType, func(v naming.Case) { out.ContentType = naming.UseCase[types.ContentType](v) }},
		{"naming.content_type_file", c.Naming.ContentTypeFile, func(v naming.Case) { out.ContentTypeFile = naming.UseCase[types.ContentType](v) }},
		{"naming.snippet", c.Naming.Snippet, func(v naming.Case) { out.Snippet = naming.UseCase[types.ContentTypeSnippet](v) }},
		{"naming.snippet_file", c.Naming.SnippetFile, func(v naming.Case) { out.SnippetFile = naming.UseCase[types.ContentTypeSnippet](v) }},
		{"naming.taxonomy", c.Naming.Taxonomy, func(v naming.Case) { out.Taxonomy = naming.UseCase[types.TaxonomyGroup](v) }},
		{"naming.taxonomy_file", c.Naming.TaxonomyFile, func(v naming.Case) { out.TaxonomyFile = naming.UseCase[types.TaxonomyGroup](v) }},
		{"naming.element", c.Naming.Element, func(v naming.Case) { out.Element = naming.FieldStrategy{Case: v} }},
	}
	for _, f := range fields {
		v, err := naming.ParseCase(f.value)
		if err != nil {
			return naming.Config{}, fmt.Errorf("%s: %w", f.key, err)
		}
		f.set(v)
	}
	return out, nil
}

// GeneratorOptions maps the config onto a generation run.
func (c *Config) GeneratorOptions() (generator.Options, error) {
	names, err := c.NamingConfig()
	if err != nil {
		return generator.Options{}, err
	}
	resolution, err := naming.ParseModuleResolution(c.Output.ModuleResolution)
	if err != nil {
		return generator.Options{}, fmt.Errorf("output.module_resolution: %w", err)
	}
	return generator.Options{
		OutputDir: c.Output.Dir,
		Folders: generator.Folders{
			Types:      c.Output.TypesFolder,
			Snippets:   c.Output.SnippetsFolder,
			Taxonomies: c.Output.TaxonomiesFolder,
			Project:    c.Output.ProjectFolder,
		},
		ModuleResolution: resolution,
		AddTimestamp:     c.Output.AddTimestamp,
		Naming:           names,
		Format:           c.Format,
		Export:           c.Export,
		Barrel:           c.Output.Barrel,
	}, nil
}

func ensureWritableDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".writable-*")
	if err != nil {
		return err
	}
	name := f.Name()
	_ = f.Close()
	return os.Remove(name)
}

func applyEnvOverrides(c *Config) {
	setString(&c.Project.ID, "KONTENTGEN_PROJECT_ID")
	setString(&c.Project.APIKey, "KONTENTGEN_API_KEY")
	setString(&c.Project.BaseURL, "KONTENTGEN_BASE_URL")
	setString(&c.Output.Dir, "KONTENTGEN_OUTPUT_DIR")
	setString(&c.Output.ModuleResolution, "KONTENTGEN_MODULE_RESOLUTION")
	setBool(&c.Output.AddTimestamp, "KONTENTGEN_ADD_TIMESTAMP")
	setInt(&c.Format.IndentWidth, "KONTENTGEN_INDENT_WIDTH")
	setString(&c.Store.Path, "KONTENTGEN_STORE_PATH")
	setString(&c.Log.Level, "KONTENTGEN_LOG_LEVEL")
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

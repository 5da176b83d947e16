// Package config loads and validates brickend project files. A project
// file names the project, picks the target stack, and declares the
// entities to generate code for. Entity records are kept as raw maps
// here; structural validation happens when the render context is built.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/inovahubco/brickend/engine/gen"
	"github.com/inovahubco/brickend/engine/load"
)

// FileNames are the project file names looked for, in order.
var FileNames = []string{"brickend.yaml", "brickend.yml"}

// Defaults applied to omitted optional fields.
const (
	DefaultVersion      = "0.1.0"
	DefaultOutputDir    = "."
	DefaultTemplatesDir = "templates_user"
)

// Project is the project metadata block.
type Project struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Stack       string `yaml:"stack"`
	Description string `yaml:"description,omitempty"`
}

// Config is a fully parsed project file.
type Config struct {
	Project  Project          `yaml:"project"`
	Entities []map[string]any `yaml:"entities"`
	// OutputDir is where generated files are written, relative to the
	// project file unless absolute.
	OutputDir string `yaml:"output_dir"`
	// TemplatesDir is the user template override root, relative to the
	// project file unless absolute.
	TemplatesDir string         `yaml:"templates_dir"`
	Settings     map[string]any `yaml:"settings,omitempty"`

	// dir is the directory the config was loaded from, used to resolve
	// relative paths. Empty for configs parsed from memory.
	dir string
}

// Find locates a project file in dir. It returns a *ConfigError when
// none of the known file names exists.
func Find(dir string) (string, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", gen.NewConfigError("project file", dir,
		fmt.Sprintf("no %s found", FileNames[0]))
}

// Load reads and parses the project file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, gen.NewConfigError("project file", path, err.Error())
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	cfg.dir = filepath.Dir(path)
	return cfg, nil
}

// Parse decodes a project file from memory, applies defaults and
// validates the result.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, gen.NewConfigError("project file", nil, err.Error())
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Project.Version == "" {
		c.Project.Version = DefaultVersion
	}
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
	if c.TemplatesDir == "" {
		c.TemplatesDir = DefaultTemplatesDir
	}
}

func (c *Config) validate() error {
	if c.Project.Name == "" {
		return gen.NewConfigError("project.name", "", "project name is required")
	}
	if c.Project.Stack == "" {
		return gen.NewConfigError("project.stack", "", "project stack is required")
	}
	if len(c.Entities) == 0 {
		return gen.NewConfigError("entities", nil, "at least one entity is required")
	}
	return nil
}

// Records returns the entity declarations as a raw-record input for
// context building.
func (c *Config) Records() load.RecordList {
	return load.RecordList(c.Entities)
}

// Info converts the project block into the metadata structure carried
// through rendering.
func (c *Config) Info() gen.ProjectInfo {
	return gen.ProjectInfo{
		Name:     c.Project.Name,
		Version:  c.Project.Version,
		Stack:    c.Project.Stack,
		Settings: c.Settings,
	}
}

// ResolveOutputDir returns the absolute-or-relative output directory,
// anchored at the project file's directory when loaded from disk.
func (c *Config) ResolveOutputDir() string {
	return c.resolve(c.OutputDir)
}

// ResolveTemplatesDir returns the user template override root, anchored
// like ResolveOutputDir.
func (c *Config) ResolveTemplatesDir() string {
	return c.resolve(c.TemplatesDir)
}

func (c *Config) resolve(path string) string {
	if filepath.IsAbs(path) || c.dir == "" {
		return path
	}
	return filepath.Join(c.dir, path)
}

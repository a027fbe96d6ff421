package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/iancoleman/strcase"
	"gopkg.in/yaml.v3"
)

// Tag styles applied to JSON keys when they become XML tag names.
const (
	TagStyleKeep  = "keep"
	TagStyleCamel = "camel"
	TagStyleSnake = "snake"
)

// Config represents the complete configuration for xmljson
type Config struct {
	RootTag string        `yaml:"root_tag"`
	Convert ConvertConfig `yaml:"convert"`
	Output  OutputConfig  `yaml:"output"`
	Dev     DevConfig     `yaml:"dev"`
}

// ConvertConfig controls the XML/JSON tree conversion conventions
type ConvertConfig struct {
	// AttrPrefix is prepended to attribute names when they become JSON
	// object keys, and stripped again on the way back. Keys already
	// spelled with the prefix are reserved for attributes.
	AttrPrefix string `yaml:"attr_prefix"`
	// TextKey holds element text when the element also carries
	// attributes or child elements.
	TextKey string `yaml:"text_key"`
	// CoerceText enables coercion of element text to JSON numbers,
	// booleans and null.
	CoerceText bool `yaml:"coerce_text"`
	// TagStyle rewrites JSON keys into XML tag names: keep, camel or
	// snake.
	TagStyle string `yaml:"tag_style"`
	// ItemTag names the child elements produced from a top-level JSON
	// array.
	ItemTag string `yaml:"item_tag"`
}

// OutputConfig controls serialization options
type OutputConfig struct {
	Pretty bool   `yaml:"pretty"`
	Indent string `yaml:"indent"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug bool `yaml:"debug"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		RootTag: "root",
		Convert: ConvertConfig{
			AttrPrefix: "@",
			TextKey:    "#text",
			CoerceText: true,
			TagStyle:   TagStyleKeep,
			ItemTag:    "item",
		},
		Output: OutputConfig{
			Pretty: false,
			Indent: "  ",
		},
		Dev: DevConfig{
			Debug: false,
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks configuration values that cannot be defaulted away
func (c *Config) Validate() error {
	switch c.Convert.TagStyle {
	case TagStyleKeep, TagStyleCamel, TagStyleSnake:
	default:
		return fmt.Errorf("invalid tag_style '%s': must be keep, camel or snake", c.Convert.TagStyle)
	}
	if c.Convert.AttrPrefix == "" {
		return fmt.Errorf("attr_prefix must not be empty")
	}
	if c.Convert.TextKey == "" {
		return fmt.Errorf("text_key must not be empty")
	}
	if c.RootTag == "" {
		return fmt.Errorf("root_tag must not be empty")
	}
	return nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".xmljson.yml", ".xmljson.yaml", "xmljson.yml", "xmljson.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	// Search up the directory tree
	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}

// GetTagName returns the XML tag name for a JSON key, applying the
// configured tag style.
func (c *Config) GetTagName(jsonKey string) string {
	switch c.Convert.TagStyle {
	case TagStyleCamel:
		return strcase.ToLowerCamel(jsonKey)
	case TagStyleSnake:
		return strcase.ToSnake(jsonKey)
	default:
		return jsonKey
	}
}

// LoadConfigWithCLI loads config with CLI argument precedence. CLI
// values override the file only when they differ from the defaults.
func LoadConfigWithCLI(configPath, cliRootTag string, cliPretty bool) (*Config, error) {
	cfg := NewConfig()

	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	if cliRootTag != "" && cliRootTag != "root" {
		cfg.RootTag = cliRootTag
	}
	if cliPretty {
		cfg.Output.Pretty = true
	}

	return cfg, nil
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-websummary/internal/budget"
	"github.com/alnah/go-websummary/internal/dateutil"
	"github.com/alnah/go-websummary/internal/fileutil"
	"github.com/alnah/go-websummary/internal/pipeline"
	"github.com/alnah/go-websummary/internal/slots"
	"github.com/alnah/go-websummary/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidConfig   = errors.New("invalid config")
)

// AppDirName is the directory under the user config dir searched by name.
const AppDirName = "go-websummary"

// Field length limits.
const (
	MaxPathLength     = 4096
	MaxSlotNameLength = 128
	MaxSlots          = 256
	MaxSearchPaths    = 32
)

// Config holds all configuration for summary generation.
type Config struct {
	SizeCeilingBytes *int64        `yaml:"sizeCeilingBytes"` // nil = budget.DefaultCeiling, <= 0 disables
	BudgetMode       string        `yaml:"budgetMode"`       // "fail" (default) or "warn"
	SearchPaths      []string      `yaml:"searchPaths"`      // Resource library roots, in lookup order
	StrictSlots      *bool         `yaml:"strictSlots"`      // nil = true
	DataVariable     string        `yaml:"dataVariable"`     // Empty = "data"
	Template         string        `yaml:"template"`         // Skeleton file (empty = embedded default)
	TemplateDir      string        `yaml:"templateDir"`      // Directory holding template.html and include files
	Slots            []SlotConfig  `yaml:"slots"`
	Summary          SummaryConfig `yaml:"summary"`
	Output           OutputConfig  `yaml:"output"`
	Stamp            StampConfig   `yaml:"stamp"`
	Log              LogConfig     `yaml:"log"`
}

// SlotConfig binds one slot to a resource or literal content.
type SlotConfig struct {
	Name     string `yaml:"name"`
	Kind     string `yaml:"kind"`     // Empty = inferred from the resource extension
	Resource string `yaml:"resource"` // Resource name resolved against searchPaths
	Content  string `yaml:"content"`  // Literal content (exclusive with resource)
	Minified string `yaml:"minified"` // Smaller alternative used when over budget
}

// SummaryConfig defines the summary body bound to the "summary" slot.
type SummaryConfig struct {
	Path     string `yaml:"path"`
	Markdown bool   `yaml:"markdown"` // Forced on for .md files
}

// OutputConfig defines the output destination.
type OutputConfig struct {
	Dir  string `yaml:"dir"`
	File string `yaml:"file"` // Default "web_summary.html"
}

// StampConfig binds a generation date into a slot. Off unless Slot is set.
type StampConfig struct {
	Slot string `yaml:"slot"`
	Date string `yaml:"date"` // "auto", "auto:FORMAT" or a literal
}

// LogConfig defines logging verbosity.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
	File   string `yaml:"file"`   // Optional rotated log file
}

// DefaultOutputFile is the output file name when none is configured.
const DefaultOutputFile = "web_summary.html"

var logLevels = map[string]bool{"": true, "debug": true, "info": true, "warn": true, "error": true}

// Validate checks values and field lengths.
// Called automatically by LoadConfig, but available for callers who build
// a Config in code.
func (c *Config) Validate() error {
	if _, err := budget.ParseMode(c.BudgetMode); err != nil {
		return fmt.Errorf("%w: budgetMode: %v", ErrInvalidConfig, err)
	}
	if c.DataVariable != "" {
		if err := pipeline.ValidateVariableName(c.DataVariable); err != nil {
			return fmt.Errorf("%w: dataVariable: %v", ErrInvalidConfig, err)
		}
	}
	if !logLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("%w: log.level: unknown level %q", ErrInvalidConfig, c.Log.Level)
	}
	if f := strings.ToLower(c.Log.Format); f != "" && f != "text" && f != "json" {
		return fmt.Errorf("%w: log.format: unknown format %q", ErrInvalidConfig, c.Log.Format)
	}

	if len(c.SearchPaths) > MaxSearchPaths {
		return fmt.Errorf("%w: searchPaths: at most %d entries", ErrInvalidConfig, MaxSearchPaths)
	}
	for i, p := range c.SearchPaths {
		if p == "" {
			return fmt.Errorf("%w: searchPaths[%d] is empty", ErrInvalidConfig, i)
		}
		if err := validateFieldLength(fmt.Sprintf("searchPaths[%d]", i), p, MaxPathLength); err != nil {
			return err
		}
	}
	for name, value := range map[string]string{
		"template":     c.Template,
		"templateDir":  c.TemplateDir,
		"summary.path": c.Summary.Path,
		"output.dir":   c.Output.Dir,
		"output.file":  c.Output.File,
		"log.file":     c.Log.File,
	} {
		if err := validateFieldLength(name, value, MaxPathLength); err != nil {
			return err
		}
	}
	if strings.ContainsAny(c.Output.File, "/\\") {
		return fmt.Errorf("%w: output.file must be a file name, not a path", ErrInvalidConfig)
	}

	if len(c.Slots) > MaxSlots {
		return fmt.Errorf("%w: slots: at most %d entries", ErrInvalidConfig, MaxSlots)
	}
	seen := make(map[string]bool, len(c.Slots))
	for i, s := range c.Slots {
		if err := s.validate(); err != nil {
			return fmt.Errorf("slots[%d]: %w", i, err)
		}
		if seen[s.Name] {
			return fmt.Errorf("%w: slots[%d]: slot %q bound twice", ErrInvalidConfig, i, s.Name)
		}
		seen[s.Name] = true
	}

	if c.Stamp.Slot != "" {
		if err := validateFieldLength("stamp.slot", c.Stamp.Slot, MaxSlotNameLength); err != nil {
			return err
		}
		if c.Stamp.Date != "" {
			if _, err := dateutil.ResolveDate(c.Stamp.Date, dateutil.Epoch); err != nil {
				return fmt.Errorf("%w: stamp.date: %v", ErrInvalidConfig, err)
			}
		}
	}
	return nil
}

func (s SlotConfig) validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidConfig)
	}
	if err := validateFieldLength("name", s.Name, MaxSlotNameLength); err != nil {
		return err
	}
	if (s.Resource == "") == (s.Content == "") {
		return fmt.Errorf("%w: slot %q needs exactly one of resource or content", ErrInvalidConfig, s.Name)
	}
	if s.Minified != "" && s.Resource == "" {
		return fmt.Errorf("%w: slot %q: minified requires resource", ErrInvalidConfig, s.Name)
	}
	if s.Kind != "" {
		if _, err := slots.ParseKind(s.Kind); err != nil {
			return fmt.Errorf("%w: slot %q: %v", ErrInvalidConfig, s.Name, err)
		}
	} else if s.Content != "" {
		return fmt.Errorf("%w: slot %q: kind is required for literal content", ErrInvalidConfig, s.Name)
	}
	return nil
}

// validateFieldLength returns ErrFieldTooLong if value exceeds maxLength.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s exceeds %d characters", ErrFieldTooLong, fieldName, maxLength)
	}
	return nil
}

// Ceiling returns the configured size ceiling, or budget.DefaultCeiling.
func (c *Config) Ceiling() int64 {
	if c.SizeCeilingBytes == nil {
		return budget.DefaultCeiling
	}
	return *c.SizeCeilingBytes
}

// Strict reports whether slot errors are fatal (default true).
func (c *Config) Strict() bool {
	return c.StrictSlots == nil || *c.StrictSlots
}

// Variable returns the data variable name, or pipeline.DefaultVariable.
func (c *Config) Variable() string {
	if c.DataVariable == "" {
		return pipeline.DefaultVariable
	}
	return c.DataVariable
}

// OutputFile returns the configured output file name or DefaultOutputFile.
func (c *Config) OutputFile() string {
	if c.Output.File == "" {
		return DefaultOutputFile
	}
	return c.Output.File
}

// DefaultConfig returns a Config with all defaults applied.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it searches for {name}.yaml or {name}.yml in the current
// directory, then in the user config directory under AppDirName.
// Unknown fields are rejected.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		if configPath, err = resolveConfigPath(nameOrPath); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SearchedPaths lists the candidate files for a config name, in lookup order.
func SearchedPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, AppDirName, name+ext))
		}
	}
	return paths
}

func resolveConfigPath(name string) (string, error) {
	tried := SearchedPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}

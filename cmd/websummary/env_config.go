package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-websummary/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath    string        // WEBSUMMARY_CONFIG: config file name or path
	SearchPaths   []string      // WEBSUMMARY_SEARCH_PATH: resource dirs, OS list separator
	Ceiling       *int64        // WEBSUMMARY_CEILING: size ceiling in bytes
	OutputDir     string        // WEBSUMMARY_OUTPUT_DIR: output directory
	DataVariable  string        // WEBSUMMARY_DATA_VAR: data variable name
	LogLevel      string        // WEBSUMMARY_LOG_LEVEL: debug, info, warn, error
	VerifyTimeout time.Duration // WEBSUMMARY_VERIFY_TIMEOUT: verification timeout
}

// knownEnvVars lists valid WEBSUMMARY_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"WEBSUMMARY_CONFIG":         true,
	"WEBSUMMARY_SEARCH_PATH":    true,
	"WEBSUMMARY_CEILING":        true,
	"WEBSUMMARY_OUTPUT_DIR":     true,
	"WEBSUMMARY_DATA_VAR":       true,
	"WEBSUMMARY_LOG_LEVEL":      true,
	"WEBSUMMARY_VERIFY_TIMEOUT": true,
}

// loadEnvConfig reads configuration from environment variables.
// Unparseable numbers and durations are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath:   os.Getenv("WEBSUMMARY_CONFIG"),
		OutputDir:    os.Getenv("WEBSUMMARY_OUTPUT_DIR"),
		DataVariable: os.Getenv("WEBSUMMARY_DATA_VAR"),
		LogLevel:     os.Getenv("WEBSUMMARY_LOG_LEVEL"),
	}

	if list := os.Getenv("WEBSUMMARY_SEARCH_PATH"); list != "" {
		for _, p := range filepath.SplitList(list) {
			if p != "" {
				cfg.SearchPaths = append(cfg.SearchPaths, p)
			}
		}
	}

	if ceiling := os.Getenv("WEBSUMMARY_CEILING"); ceiling != "" {
		if n, err := strconv.ParseInt(ceiling, 10, 64); err == nil && n >= 0 {
			cfg.Ceiling = &n
		}
	}

	if timeout := os.Getenv("WEBSUMMARY_VERIFY_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.VerifyTimeout = d
		}
	}

	return cfg
}

// warnUnknownEnvVars prints warnings for unrecognized WEBSUMMARY_* variables.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "WEBSUMMARY_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				printWarning(w, fmt.Sprintf("unknown environment variable %s (typo?)", name))
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Only sets values if the env var is set AND the config value is empty.
// This ensures: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if len(env.SearchPaths) > 0 && len(cfg.SearchPaths) == 0 {
		cfg.SearchPaths = env.SearchPaths
	}
	if env.Ceiling != nil && cfg.SizeCeilingBytes == nil {
		cfg.SizeCeilingBytes = env.Ceiling
	}
	if env.OutputDir != "" && cfg.Output.Dir == "" {
		cfg.Output.Dir = env.OutputDir
	}
	if env.DataVariable != "" && cfg.DataVariable == "" {
		cfg.DataVariable = env.DataVariable
	}
	if env.LogLevel != "" && cfg.Log.Level == "" {
		cfg.Log.Level = env.LogLevel
	}
}

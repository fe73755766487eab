// Package config loads javelin settings from JSON files, merging a
// per-project file over the user's global one.
package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// Config holds all configurable javelin settings.
type Config struct {
	JavacPath       string `json:"javac_path"`        // compiler executable
	JavaPath        string `json:"java_path"`         // JVM executable for test runs
	Banner          string `json:"banner"`            // interactions banner override
	EvalTimeoutSecs int    `json:"eval_timeout_secs"` // 0 disables the deadline
}

// Defaults returns the built-in configuration values.
func Defaults() Config {
	return Config{
		JavacPath:       "javac",
		JavaPath:        "java",
		EvalTimeoutSecs: 30,
	}
}

// LoadGlobal reads ~/.config/javelin/config.json.
// Returns defaults if the file is absent.
func LoadGlobal() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	path := filepath.Join(home, ".config", "javelin", "config.json")
	return loadFile(path, true)
}

// LoadProject reads .javelinrc in the current working directory.
// Returns nil (no error) if the file is absent.
func LoadProject() (*Config, error) {
	return loadFile(".javelinrc", false)
}

// Load merges defaults, the global file and the project file.
func Load() (Config, error) {
	global, err := LoadGlobal()
	if err != nil {
		return Config{}, err
	}
	project, err := LoadProject()
	if err != nil {
		return Config{}, err
	}
	return Merge(global, project), nil
}

func loadFile(path string, returnDefaults bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if returnDefaults {
				d := Defaults()
				return &d, nil
			}
			return nil, nil
		}
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return &cfg, nil
}

// Merge combines global and project configs, with project taking
// precedence and unset keys falling back to global, then defaults.
func Merge(global, project *Config) Config {
	result := Defaults()

	for _, c := range []*Config{global, project} {
		if c == nil {
			continue
		}
		if c.JavacPath != "" {
			result.JavacPath = c.JavacPath
		}
		if c.JavaPath != "" {
			result.JavaPath = c.JavaPath
		}
		if c.Banner != "" {
			result.Banner = c.Banner
		}
		if c.EvalTimeoutSecs != 0 {
			result.EvalTimeoutSecs = c.EvalTimeoutSecs
		}
	}

	return result
}

// ParseError is returned when a config file exists but cannot be
// parsed.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return "failed to parse config file " + e.Path + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

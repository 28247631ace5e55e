package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

const (
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "SAFERENV_"

	// PathEnvVar names a config file when --config is not given.
	PathEnvVar = EnvPrefix + "CONFIG"

	maxConfigFileSize = 1024 * 1024 // 1MB
)

// envKeys maps SAFERENV_* suffixes to config keys.
var envKeys = map[string]string{
	"REDACT_VALUE": "redact_value",
	"DEFAULTS":     "defaults",
}

// DefaultPath returns <user config dir>/saferenv/config.yaml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config directory: %w", err)
	}
	return filepath.Join(dir, "saferenv", "config.yaml"), nil
}

// Load reads the rules file and applies SAFERENV_* overrides.
//
// File resolution, first match wins:
//  1. path, if non-empty (must exist)
//  2. $SAFERENV_CONFIG, if set (must exist)
//  3. DefaultPath(), if the file exists
//
// With no file, the result holds only environment overrides.
func Load(path string) (*Config, error) {
	explicit := true
	if path == "" {
		path = os.Getenv(PathEnvVar)
	}
	if path == "" {
		explicit = false
		if p, err := DefaultPath(); err == nil {
			path = p
		}
	}

	k := koanf.New(".")

	loaded := ""
	if path != "" {
		content, err := readConfigFile(path)
		switch {
		case err == nil:
			if err := checkKnownFields(content); err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
			}
			if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("%w: failed to parse %s: %v", ErrInvalidConfig, path, err)
			}
			loaded = path
		case !explicit && errors.Is(err, os.ErrNotExist):
			// No default config file.
		default:
			return nil, err
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment overrides: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	cfg.Path = loaded

	if err := cfg.Validate(); err != nil {
		if loaded != "" {
			return nil, fmt.Errorf("%s: %w", loaded, err)
		}
		return nil, err
	}
	return &cfg, nil
}

// envKey maps SAFERENV_REDACT_VALUE to redact_value. Unknown SAFERENV_*
// variables map to "" and are skipped.
func envKey(s string) string {
	return envKeys[strings.TrimPrefix(s, EnvPrefix)]
}

// readConfigFile reads path, rejecting directories and files over the size limit.
func readConfigFile(path string) ([]byte, error) {
	f, err := os.Open(path) //nolint:gosec // path is user-supplied by design
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrInvalidConfig, path)
	}
	if info.Size() > maxConfigFileSize {
		return nil, fmt.Errorf("%w: %s is larger than %d bytes", ErrInvalidConfig, path, maxConfigFileSize)
	}

	content, err := io.ReadAll(io.LimitReader(f, maxConfigFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return content, nil
}

// fileSchema mirrors Config for strict key checking.
type fileSchema struct {
	Defaults    *bool  `yaml:"defaults"`
	RedactValue string `yaml:"redact_value"`
	Rules       []struct {
		Pattern string `yaml:"pattern"`
		Action  string `yaml:"action"`
	} `yaml:"rules"`
}

// checkKnownFields rejects unknown keys at any level; koanf ignores them.
func checkKnownFields(content []byte) error {
	dec := yamlv3.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)
	var s fileSchema
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

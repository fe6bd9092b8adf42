// Package config provides functionality for managing configuration options
// for saltpass using a YAML file and environment variables. Command-line
// flags are applied on top by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/atinyakov/saltpass/internal/saltpass"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix prefixes every environment variable read by Load.
	EnvPrefix = "SALTPASS_"

	// EnvConfig names the environment variable holding the config file path.
	EnvConfig = EnvPrefix + "CONFIG"

	defaultLogLevel = "warn"
)

// envKeys maps lowercased environment suffixes onto config keys.
var envKeys = map[string]string{
	"algorithm":          "algorithm",
	"keep":               "keep",
	"nul_separator":      "nulSeparator",
	"nulseparator":       "nulSeparator",
	"standardize_domain": "standardizeDomain",
	"standardizedomain":  "standardizeDomain",
	"log_level":          "log.level",
}

// Options holds the configuration values for the application.
type Options struct {
	// Algorithm is the default derivation algorithm.
	Algorithm string `koanf:"algorithm"`

	// Keep keeps prompting for more passwords in interactive mode.
	Keep bool `koanf:"keep"`

	// NulSeparator makes batch output NUL separated.
	NulSeparator bool `koanf:"nulSeparator"`

	// StandardizeDomain reduces URLs to bare domain names before salting.
	StandardizeDomain bool `koanf:"standardizeDomain"`

	Log struct {
		Level string `koanf:"level"`
	} `koanf:"log"`
}

// Defaults returns the options used when nothing else is configured.
func Defaults() *Options {
	o := &Options{Algorithm: string(saltpass.Default)}
	o.Log.Level = defaultLogLevel
	return o
}

// DefaultPath returns <UserConfigDir>/saltpass/config.yaml, or "" when the
// user config directory cannot be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "saltpass", "config.yaml")
}

// Load reads options from the YAML file at path and then from SALTPASS_*
// environment variables, which take precedence. An empty path falls back
// to $SALTPASS_CONFIG and then to DefaultPath; only an explicitly named
// file is required to exist.
func Load(path string) (*Options, error) {
	explicit := true
	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path == "" {
		path, explicit = DefaultPath(), false
	}

	k := koanf.New(".")

	if path != "" {
		_, err := os.Stat(path)
		switch {
		case err == nil:
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("read config file %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist) && !explicit:
		default:
			return nil, fmt.Errorf("stat config file: %w", err)
		}
	}

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(key, value string) (string, any) {
			// SALTPASS_LOG_LEVEL -> log.level; unknown names are skipped.
			return envKeys[strings.ToLower(strings.TrimPrefix(key, EnvPrefix))], value
		},
	}), nil); err != nil {
		return nil, fmt.Errorf("load env variables: %w", err)
	}

	opts := Defaults()
	if err := k.UnmarshalWithConf("", opts, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           opts,
			WeaklyTypedInput: true,
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

// Validate canonicalises the algorithm name and rejects unknown ones.
func (o *Options) Validate() error {
	alg, err := saltpass.Resolve(o.Algorithm)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	o.Algorithm = string(alg)
	return nil
}

// Copyright 2026 The LogModule Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package logmodule

import (
	"fmt"
	"os"
	"time"

	"dario.cat/mergo"
	"github.com/goccy/go-yaml"
	"github.com/spf13/cast"

	"github.com/JackXuCN/LogModule/logging"
	"github.com/JackXuCN/LogModule/telemetry"
)

// Config is the file- and environment-loadable configuration of the
// process-wide logger and telemetry client. Zero-valued fields fall back
// to package defaults when merged via LoadConfig; Configure applies it
// as-is through the functional options of the underlying packages.
type Config struct {
	// Local file sink
	Directory     string `yaml:"directory"`
	FileExtension string `yaml:"file_extension"`
	MaxFileSize   int64  `yaml:"max_file_size"`
	SourceName    string `yaml:"source_name"`

	// Sink switches
	ConsoleEnabled   *bool `yaml:"console_enabled"`
	LocalEnabled     *bool `yaml:"local_enabled"`
	TelemetryEnabled *bool `yaml:"telemetry_enabled"`

	// Telemetry client
	TelemetryProvider string `yaml:"telemetry_provider"`
	SDKVersion        string `yaml:"sdk_version"`
	CacheFolderName   string `yaml:"cache_folder_name"`
	CacheRoot         string `yaml:"cache_root"`
	RegistryBaseURL   string `yaml:"registry_base_url"`
	FlushDelayMS      int    `yaml:"flush_delay_ms"`
}

// DefaultConfig returns the built-in defaults: all sinks enabled, files
// under logging.DefaultDirectory, OTLP gRPC telemetry with the pinned
// SDK version.
func DefaultConfig() Config {
	enabled := true
	return Config{
		Directory:         logging.DefaultDirectory,
		FileExtension:     logging.DefaultFileExtension,
		MaxFileSize:       logging.DefaultMaxFileSize,
		ConsoleEnabled:    &enabled,
		LocalEnabled:      &enabled,
		TelemetryEnabled:  &enabled,
		TelemetryProvider: string(telemetry.OTLPProvider),
		SDKVersion:        telemetry.DefaultSDKVersion,
		CacheFolderName:   telemetry.DefaultCacheFolderName,
		RegistryBaseURL:   telemetry.DefaultRegistryBaseURL,
		FlushDelayMS:      int(telemetry.DefaultFlushDelay / time.Millisecond),
	}
}

// LoadConfig reads a YAML config file, merges it over DefaultConfig and
// applies LOGMODULE_* environment overrides. The file may be absent, in
// which case defaults plus environment apply.
func LoadConfig(path string) (Config, error) {
	cfg := Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Defaults plus environment only.
		case err != nil:
			return Config{}, fmt.Errorf("reading config file %q: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parsing config file %q: %w", path, err)
			}
		}
	}

	defaults := DefaultConfig()
	// WithoutDereference keeps non-nil *bool switches as loaded; a plain
	// merge dereferences them and treats false as empty, flipping
	// explicitly disabled sinks back to the enabled default.
	if err := mergo.Merge(&cfg, defaults, mergo.WithoutDereference); err != nil {
		return Config{}, fmt.Errorf("merging config defaults: %w", err)
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyEnvOverrides layers LOGMODULE_* environment variables on top of
// the merged configuration. Values are coerced with cast so "10485760",
// "true" and friends all parse the obvious way.
func applyEnvOverrides(cfg *Config) error {
	if v, ok := os.LookupEnv("LOGMODULE_DIRECTORY"); ok {
		cfg.Directory = v
	}
	if v, ok := os.LookupEnv("LOGMODULE_FILE_EXTENSION"); ok {
		cfg.FileExtension = v
	}
	if v, ok := os.LookupEnv("LOGMODULE_SOURCE_NAME"); ok {
		cfg.SourceName = v
	}
	if v, ok := os.LookupEnv("LOGMODULE_MAX_FILE_SIZE"); ok {
		size, err := cast.ToInt64E(v)
		if err != nil {
			return fmt.Errorf("LOGMODULE_MAX_FILE_SIZE: %w", err)
		}
		cfg.MaxFileSize = size
	}
	if v, ok := os.LookupEnv("LOGMODULE_FLUSH_DELAY_MS"); ok {
		delay, err := cast.ToIntE(v)
		if err != nil {
			return fmt.Errorf("LOGMODULE_FLUSH_DELAY_MS: %w", err)
		}
		cfg.FlushDelayMS = delay
	}
	if v, ok := os.LookupEnv("LOGMODULE_TELEMETRY_PROVIDER"); ok {
		cfg.TelemetryProvider = v
	}
	if v, ok := os.LookupEnv("LOGMODULE_SDK_VERSION"); ok {
		cfg.SDKVersion = v
	}

	for env, dst := range map[string]**bool{
		"LOGMODULE_CONSOLE_ENABLED":   &cfg.ConsoleEnabled,
		"LOGMODULE_LOCAL_ENABLED":     &cfg.LocalEnabled,
		"LOGMODULE_TELEMETRY_ENABLED": &cfg.TelemetryEnabled,
	} {
		if v, ok := os.LookupEnv(env); ok {
			b, err := cast.ToBoolE(v)
			if err != nil {
				return fmt.Errorf("%s: %w", env, err)
			}
			*dst = &b
		}
	}
	return nil
}

// loggingOptions translates the config into logging package options.
func (c Config) loggingOptions(sink logging.TraceSink) []logging.Option {
	opts := []logging.Option{
		logging.WithDirectory(c.Directory),
		logging.WithFileExtension(c.FileExtension),
		logging.WithMaxFileSize(c.MaxFileSize),
		logging.WithTraceSink(sink),
	}
	if c.SourceName != "" {
		opts = append(opts, logging.WithSourceName(c.SourceName))
	}
	if c.ConsoleEnabled != nil && !*c.ConsoleEnabled {
		opts = append(opts, logging.WithConsoleDisabled())
	}
	if c.LocalEnabled != nil && !*c.LocalEnabled {
		opts = append(opts, logging.WithLocalDisabled())
	}
	if c.TelemetryEnabled != nil && !*c.TelemetryEnabled {
		opts = append(opts, logging.WithTelemetryDisabled())
	}
	return opts
}

// telemetryOptions translates the config into telemetry package options.
func (c Config) telemetryOptions() []telemetry.Option {
	opts := []telemetry.Option{
		telemetry.WithSDKVersion(c.SDKVersion),
		telemetry.WithCacheFolderName(c.CacheFolderName),
		telemetry.WithCacheRoot(c.CacheRoot),
		telemetry.WithRegistryBaseURL(c.RegistryBaseURL),
		telemetry.WithFlushDelay(time.Duration(c.FlushDelayMS) * time.Millisecond),
	}
	if c.TelemetryProvider != "" {
		opts = append(opts, telemetry.WithProvider(telemetry.Provider(c.TelemetryProvider)))
	}
	return opts
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/jeranaias/painel-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete painel configuration.
type Config struct {
	Version string `toml:"version" json:"version"`
	Debug   bool   `toml:"debug" json:"debug"`

	Backend BackendConfig `toml:"backend" json:"backend"`
	Session SessionConfig `toml:"session" json:"session"`
	Storage StorageConfig `toml:"storage" json:"storage"`
	UI      UIConfig      `toml:"ui" json:"ui"`
}

// BackendConfig describes the remote PHP backend.
type BackendConfig struct {
	// URL is the base URL the endpoint file names are appended to.
	URL string `toml:"url" json:"url"`

	// TimeoutSeconds bounds every backend call. Zero disables the bound.
	TimeoutSeconds int `toml:"timeout_seconds" json:"timeout_seconds"`

	// RateLimit is requests per second; RateBurst the bucket size.
	RateLimit float64 `toml:"rate_limit" json:"rate_limit"`
	RateBurst int     `toml:"rate_burst" json:"rate_burst"`

	// MinVersion is a semver constraint the backend must satisfy when it
	// reports a version. Empty disables the check.
	MinVersion string `toml:"min_version" json:"min_version"`

	// Offline refuses any backend that is not on localhost.
	Offline bool `toml:"offline" json:"offline"`
}

// SessionConfig controls the session lifecycle.
type SessionConfig struct {
	// VerifyFencing discards verification responses that resolve after a
	// newer one was issued. Off keeps last-resolved-wins ordering.
	VerifyFencing bool `toml:"verify_fencing" json:"verify_fencing"`

	// RestoreOnStart replays the persisted token at startup.
	RestoreOnStart bool `toml:"restore_on_start" json:"restore_on_start"`
}

// StorageConfig selects the token persistence driver.
type StorageConfig struct {
	Driver   string `toml:"driver" json:"driver"` // file, sqlite, redis, memory
	Path     string `toml:"path" json:"path"`
	RedisURL string `toml:"redis_url" json:"redis_url"`
}

// UIConfig contains TUI settings.
type UIConfig struct {
	Theme         string `toml:"theme" json:"theme"` // auto, dark, light
	ShowCountdown bool   `toml:"show_countdown" json:"show_countdown"`
	PageSize      int    `toml:"page_size" json:"page_size"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// CurrentVersion is the config schema version written by Save.
const CurrentVersion = "1"

// Default returns a config with built-in defaults.
func Default() *Config {
	return &Config{
		Version: CurrentVersion,
		Backend: BackendConfig{
			URL:            "http://localhost:8080/api/",
			TimeoutSeconds: 30,
			RateLimit:      10,
			RateBurst:      5,
		},
		Session: SessionConfig{
			RestoreOnStart: true,
		},
		Storage: StorageConfig{
			Driver: "file",
		},
		UI: UIConfig{
			Theme:         "auto",
			ShowCountdown: true,
			PageSize:      20,
		},
	}
}

// Timeout returns the backend timeout as a duration.
func (b BackendConfig) Timeout() time.Duration {
	return time.Duration(b.TimeoutSeconds) * time.Second
}

// =============================================================================
// PATHS
// =============================================================================

// ConfigDir returns the painel state directory. PAINEL_HOME overrides it.
func ConfigDir() string {
	if dir := os.Getenv("PAINEL_HOME"); dir != "" {
		return dir
	}
	return util.PainelDir()
}

// ConfigPathTOML returns the path to config.toml.
func ConfigPathTOML() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// ConfigPathJSON returns the path to config.json.
func ConfigPathJSON() string {
	return filepath.Join(ConfigDir(), "config.json")
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults. The .env file
// and PAINEL_* environment overrides are applied last.
func Load() (*Config, error) {
	cfg := Default()

	var loadErr error
	switch {
	case fileExists(ConfigPathTOML()):
		loadErr = LoadTOML(cfg, ConfigPathTOML())
	case fileExists(ConfigPathJSON()):
		loadErr = LoadJSON(cfg, ConfigPathJSON())
	}
	if loadErr != nil {
		// Keep going on defaults so a broken file never locks the user out.
		cfg = Default()
	}

	if err := finish(cfg); err != nil {
		return nil, err
	}
	return cfg, loadErr
}

// LoadFromPath loads configuration from a specific file with full validation.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	var err error
	if strings.HasSuffix(path, ".json") {
		err = LoadJSON(cfg, path)
	} else {
		err = LoadTOML(cfg, path)
	}
	if err != nil {
		return nil, err
	}
	if err := finish(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadTOML decodes a TOML file over cfg.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file %s: %w", path, err)
	}
	return nil
}

// LoadJSON decodes a JSON file over cfg.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file %s: %w", path, err)
	}
	return nil
}

func finish(cfg *Config) error {
	loadDotEnv()
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// loadDotEnv reads .env from the working directory. godotenv.Load never
// overrides variables that are already set.
func loadDotEnv() {
	if fileExists(".env") {
		_ = godotenv.Load(".env")
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save writes cfg to ~/.painel/config.toml.
func Save(cfg *Config) error {
	return SaveTOML(cfg, ConfigPathTOML())
}

// SaveTOML writes cfg as TOML atomically with owner-only permissions.
func SaveTOML(cfg *Config, path string) error {
	var b strings.Builder
	b.WriteString("# painel configuration\n\n")
	if err := toml.NewEncoder(&b).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, []byte(b.String()), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a single configuration problem.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

var validDrivers = map[string]bool{"file": true, "sqlite": true, "redis": true, "memory": true}
var validThemes = map[string]bool{"auto": true, "dark": true, "light": true}

// Validate checks every section and returns all problems at once.
func (c *Config) Validate() error {
	var errs ValidateErrors

	u, err := url.Parse(c.Backend.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, ValidationError{
			Field:   "backend.url",
			Message: fmt.Sprintf("invalid URL %q, must be http(s)://host/...", c.Backend.URL),
		})
	}
	if c.Backend.TimeoutSeconds < 0 {
		errs = append(errs, ValidationError{Field: "backend.timeout_seconds", Message: "must be >= 0"})
	}
	if c.Backend.RateLimit < 0 {
		errs = append(errs, ValidationError{Field: "backend.rate_limit", Message: "must be >= 0"})
	}
	if c.Backend.MinVersion != "" {
		if _, err := parseConstraint(c.Backend.MinVersion); err != nil {
			errs = append(errs, ValidationError{Field: "backend.min_version", Message: err.Error()})
		}
	}

	if !validDrivers[c.Storage.Driver] {
		errs = append(errs, ValidationError{
			Field:   "storage.driver",
			Message: fmt.Sprintf("invalid driver '%s', must be one of: file, sqlite, redis, memory", c.Storage.Driver),
		})
	}
	if c.Storage.Driver == "redis" && c.Storage.RedisURL == "" {
		errs = append(errs, ValidationError{Field: "storage.redis_url", Message: "required when driver is redis"})
	}

	if !validThemes[c.UI.Theme] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: auto, dark, light", c.UI.Theme),
		})
	}
	if c.UI.PageSize < 0 {
		errs = append(errs, ValidationError{Field: "ui.page_size", Message: "must be >= 0"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults fills zero values that have a meaningful default.
func (c *Config) SetDefaults() {
	d := Default()
	if c.Version == "" {
		c.Version = d.Version
	}
	if c.Backend.URL == "" {
		c.Backend.URL = d.Backend.URL
	}
	if c.Backend.RateBurst <= 0 {
		c.Backend.RateBurst = d.Backend.RateBurst
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = d.Storage.Driver
	}
	if c.Storage.Path == "" {
		switch c.Storage.Driver {
		case "sqlite":
			c.Storage.Path = filepath.Join(ConfigDir(), "painel.db")
		case "file":
			c.Storage.Path = filepath.Join(ConfigDir(), "storage.json")
		}
	}
	if c.UI.Theme == "" {
		c.UI.Theme = d.UI.Theme
	}
	if c.UI.PageSize == 0 {
		c.UI.PageSize = d.UI.PageSize
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - PAINEL_BACKEND_URL: overrides backend.url
//   - PAINEL_TIMEOUT: overrides backend.timeout_seconds
//   - PAINEL_RATE_LIMIT: overrides backend.rate_limit
//   - PAINEL_OFFLINE: "1" or "true" refuses non-local backends
//   - PAINEL_STORAGE_DRIVER / PAINEL_STORAGE_PATH / PAINEL_REDIS_URL
//   - PAINEL_VERIFY_FENCING: "1" or "true" discards stale verifications
//   - PAINEL_THEME: overrides ui.theme
//   - PAINEL_DEBUG: "1" or "true" enables debug logging
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("PAINEL_BACKEND_URL"); v != "" {
		c.Backend.URL = v
	}
	if v := os.Getenv("PAINEL_TIMEOUT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Backend.TimeoutSeconds = n
		}
	}
	if v := os.Getenv("PAINEL_RATE_LIMIT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Backend.RateLimit = f
		}
	}
	if v := os.Getenv("PAINEL_OFFLINE"); v != "" {
		c.Backend.Offline = truthy(v)
	}
	if v := os.Getenv("PAINEL_STORAGE_DRIVER"); v != "" {
		c.Storage.Driver = v
	}
	if v := os.Getenv("PAINEL_STORAGE_PATH"); v != "" {
		c.Storage.Path = v
	}
	if v := os.Getenv("PAINEL_REDIS_URL"); v != "" {
		c.Storage.RedisURL = v
	}
	if v := os.Getenv("PAINEL_VERIFY_FENCING"); v != "" {
		c.Session.VerifyFencing = truthy(v)
	}
	if v := os.Getenv("PAINEL_THEME"); v != "" {
		c.UI.Theme = v
	}
	if v := os.Getenv("PAINEL_DEBUG"); v != "" {
		c.Debug = truthy(v)
	}
}

func truthy(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes"
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation (e.g., "backend.url").
func (c *Config) Get(key string) (interface{}, error) {
	field, err := c.lookup(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set sets a configuration value using dot notation. String values are
// converted to the field's type.
func (c *Config) Set(key string, value interface{}) error {
	field, err := c.lookup(key)
	if err != nil {
		return err
	}
	if !field.CanSet() {
		return fmt.Errorf("cannot set field: %s", key)
	}
	return setFieldValue(field, value)
}

func (c *Config) lookup(key string) (reflect.Value, error) {
	if key == "" {
		return reflect.Value{}, errors.New("empty key")
	}
	parts := strings.Split(key, ".")
	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		field := fieldByTag(v, part)
		if !field.IsValid() {
			return reflect.Value{}, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}
		if i == len(parts)-1 {
			if field.Kind() == reflect.Struct {
				return reflect.Value{}, fmt.Errorf("field '%s' is a section, not a value", key)
			}
			return field, nil
		}
		if field.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("field '%s' is not a section", strings.Join(parts[:i+1], "."))
		}
		v = field
	}
	return reflect.Value{}, fmt.Errorf("invalid key: %s", key)
}

// fieldByTag finds a struct field by its toml tag.
func fieldByTag(v reflect.Value, name string) reflect.Value {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		if strings.EqualFold(t.Field(i).Tag.Get("toml"), name) {
			return v.Field(i)
		}
	}
	return reflect.Value{}
}

func setFieldValue(field reflect.Value, value interface{}) error {
	if s, ok := value.(string); ok {
		switch field.Kind() {
		case reflect.String:
			field.SetString(s)
			return nil
		case reflect.Int, reflect.Int64:
			n, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer value: %w", err)
			}
			field.SetInt(n)
			return nil
		case reflect.Float64:
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return fmt.Errorf("invalid float value: %w", err)
			}
			field.SetFloat(f)
			return nil
		case reflect.Bool:
			field.SetBool(truthy(s))
			return nil
		}
	}

	val := reflect.ValueOf(value)
	if val.Type().AssignableTo(field.Type()) {
		field.Set(val)
		return nil
	}
	if val.Type().ConvertibleTo(field.Type()) {
		field.Set(val.Convert(field.Type()))
		return nil
	}
	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

// AllKeys returns every settable key in dot notation, sorted.
func AllKeys() []string {
	var keys []string
	var walk func(t reflect.Type, prefix string)
	walk = func(t reflect.Type, prefix string) {
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			name := prefix + f.Tag.Get("toml")
			if f.Type.Kind() == reflect.Struct {
				walk(f.Type, name+".")
				continue
			}
			keys = append(keys, name)
		}
	}
	walk(reflect.TypeOf(Config{}), "")
	sort.Strings(keys)
	return keys
}

// Clone returns a copy of the config. All fields are values.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// String returns the config as JSON with the Redis password redacted.
func (c *Config) String() string {
	safe := c.Clone()
	safe.Storage.RedisURL = RedactURL(safe.Storage.RedisURL)
	data, _ := json.MarshalIndent(safe, "", "  ")
	return string(data)
}

// RedactURL replaces the password of a URL with REDACTED.
func RedactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	if _, has := u.User.Password(); !has {
		return raw
	}
	u.User = url.UserPassword(u.User.Username(), "REDACTED")
	return u.String()
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the process configuration, loading it on first access.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
			if cfg == nil {
				cfg = Default()
			}
		}
		globalConfigMu.Lock()
		if globalConfig == nil {
			globalConfig = cfg
		}
		globalConfigMu.Unlock()
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// SetGlobal replaces the process configuration.
func SetGlobal(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets the global config state between tests.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}

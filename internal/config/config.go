// Package config provides configuration loading and validation for the CLI
// and the HTTP server.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/talent-search/internal/llm"
	"github.com/jonathan/talent-search/internal/logging"
	"github.com/jonathan/talent-search/internal/store"
)

// Defaults applied when neither a config file nor the environment sets a value.
const (
	DefaultDataDir   = ".talent-search"
	DefaultPort      = 8080
	DefaultRateLimit = 1.0
	DefaultRateBurst = 5
)

// Config represents the configuration that can be loaded from a JSON file or
// the environment. All fields are optional; missing values use defaults.
type Config struct {
	// Model
	APIKey   string `json:"api_key,omitempty"`                                          // Gemini API key
	Provider string `json:"provider,omitempty" validate:"omitempty,oneof=gemini genai"` // LLM SDK
	Model    string `json:"model,omitempty"`                                            // Overrides the standard-tier model
	Project  string `json:"project,omitempty"`                                          // Vertex AI project (genai provider)
	Location string `json:"location,omitempty"`                                         // Vertex AI location (genai provider)

	// Storage
	Backend     string `json:"backend,omitempty" validate:"omitempty,oneof=memory file redis postgres s3"`
	StorageKey  string `json:"storage_key,omitempty"`
	DataDir     string `json:"data_dir,omitempty"`
	RedisURL    string `json:"redis_url,omitempty" validate:"omitempty,url"`
	DatabaseURL string `json:"database_url,omitempty"`
	S3Bucket    string `json:"s3_bucket,omitempty"`
	S3Prefix    string `json:"s3_prefix,omitempty"`
	S3Region    string `json:"s3_region,omitempty"`
	S3Endpoint  string `json:"s3_endpoint,omitempty" validate:"omitempty,url"`

	// Logging
	LogLevel  string `json:"log_level,omitempty" validate:"omitempty,oneof=trace debug info warn warning error"`
	LogFormat string `json:"log_format,omitempty" validate:"omitempty,oneof=text json"`

	// Server
	Port       int     `json:"port,omitempty" validate:"omitempty,min=1,max=65535"`
	RateLimit  float64 `json:"rate_limit,omitempty" validate:"gte=0"` // AI requests per second per client
	RateBurst  int     `json:"rate_burst,omitempty" validate:"gte=0"`
	CORSOrigin string  `json:"cors_origin,omitempty"`

	// Behavior
	UseBrowser bool `json:"use_browser,omitempty"` // Use headless browser for JavaScript-rendered pages
	Verbose    bool `json:"verbose,omitempty"`     // Print detailed debug information
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Provider:   string(llm.ProviderGemini),
		Backend:    string(store.KindFile),
		StorageKey: store.DefaultKey,
		DataDir:    DefaultDataDir,
		LogLevel:   "info",
		LogFormat:  string(logging.FormatText),
		Port:       DefaultPort,
		RateLimit:  DefaultRateLimit,
		RateBurst:  DefaultRateBurst,
		CORSOrigin: "*",
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv reads the configuration from environment variables. Unset
// variables leave fields empty.
func FromEnv() (*Config, error) {
	cfg := &Config{
		APIKey:      os.Getenv("GEMINI_API_KEY"),
		Provider:    os.Getenv("LLM_PROVIDER"),
		Model:       os.Getenv("LLM_MODEL"),
		Project:     os.Getenv("GOOGLE_CLOUD_PROJECT"),
		Location:    os.Getenv("GOOGLE_CLOUD_LOCATION"),
		Backend:     os.Getenv("STORAGE_BACKEND"),
		StorageKey:  os.Getenv("STORAGE_KEY"),
		DataDir:     os.Getenv("DATA_DIR"),
		RedisURL:    os.Getenv("REDIS_URL"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		S3Bucket:    os.Getenv("S3_BUCKET"),
		S3Prefix:    os.Getenv("S3_PREFIX"),
		S3Region:    os.Getenv("S3_REGION"),
		S3Endpoint:  os.Getenv("S3_ENDPOINT"),
		LogLevel:    os.Getenv("LOG_LEVEL"),
		LogFormat:   os.Getenv("LOG_FORMAT"),
		CORSOrigin:  os.Getenv("CORS_ORIGIN"),
	}

	var err error
	if cfg.Port, err = envInt("PORT"); err != nil {
		return nil, err
	}
	if cfg.RateBurst, err = envInt("RATE_LIMIT_BURST"); err != nil {
		return nil, err
	}
	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		if cfg.RateLimit, err = strconv.ParseFloat(v, 64); err != nil {
			return nil, fmt.Errorf("invalid RATE_LIMIT_RPS %q: %w", v, err)
		}
	}
	if v := os.Getenv("USE_BROWSER"); v != "" {
		if cfg.UseBrowser, err = strconv.ParseBool(v); err != nil {
			return nil, fmt.Errorf("invalid USE_BROWSER %q: %w", v, err)
		}
	}
	return cfg, nil
}

func envInt(name string) (int, error) {
	v := os.Getenv(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, v, err)
	}
	return n, nil
}

// Validate checks that the configuration has valid values. Enum and range
// checks come from the struct tags; backend requirements are checked here.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("config error: '%s' failed '%s' check (value %v)", jsonName(fe.StructField()), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("config error: %w", err)
	}

	switch store.Kind(c.Backend) {
	case store.KindRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("config error: 'redis_url' is required for the redis backend")
		}
	case store.KindPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("config error: 'database_url' is required for the postgres backend")
		}
	case store.KindS3:
		if c.S3Bucket == "" {
			return fmt.Errorf("config error: 's3_bucket' is required for the s3 backend")
		}
	}

	if (c.Project == "") != (c.Location == "") {
		return fmt.Errorf("config error: 'project' and 'location' must be set together")
	}

	return nil
}

// jsonName maps a struct field to its JSON key for error messages.
func jsonName(field string) string {
	if f, ok := configFields[field]; ok {
		return f
	}
	return strings.ToLower(field)
}

var configFields = map[string]string{
	"APIKey":      "api_key",
	"StorageKey":  "storage_key",
	"DataDir":     "data_dir",
	"RedisURL":    "redis_url",
	"DatabaseURL": "database_url",
	"S3Endpoint":  "s3_endpoint",
	"LogLevel":    "log_level",
	"LogFormat":   "log_format",
	"RateLimit":   "rate_limit",
	"RateBurst":   "rate_burst",
	"CORSOrigin":  "cors_origin",
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// It layers config file values over the environment and the environment over
// the built-in defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	fillString(&result.APIKey, defaults.APIKey)
	fillString(&result.Provider, defaults.Provider)
	fillString(&result.Model, defaults.Model)
	fillString(&result.Project, defaults.Project)
	fillString(&result.Location, defaults.Location)
	fillString(&result.Backend, defaults.Backend)
	fillString(&result.StorageKey, defaults.StorageKey)
	fillString(&result.DataDir, defaults.DataDir)
	fillString(&result.RedisURL, defaults.RedisURL)
	fillString(&result.DatabaseURL, defaults.DatabaseURL)
	fillString(&result.S3Bucket, defaults.S3Bucket)
	fillString(&result.S3Prefix, defaults.S3Prefix)
	fillString(&result.S3Region, defaults.S3Region)
	fillString(&result.S3Endpoint, defaults.S3Endpoint)
	fillString(&result.LogLevel, defaults.LogLevel)
	fillString(&result.LogFormat, defaults.LogFormat)
	fillString(&result.CORSOrigin, defaults.CORSOrigin)

	// Numeric fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.RateLimit == 0 {
		result.RateLimit = defaults.RateLimit
	}
	if result.RateBurst == 0 {
		result.RateBurst = defaults.RateBurst
	}

	// Bool fields: unset and false look the same, so either source enables them
	result.UseBrowser = result.UseBrowser || defaults.UseBrowser
	result.Verbose = result.Verbose || defaults.Verbose

	return result
}

func fillString(field *string, fallback string) {
	if *field == "" {
		*field = fallback
	}
}

// Resolve layers file over env over the built-in defaults. A nil file skips
// that layer.
func Resolve(file, env *Config) Config {
	merged := Defaults()
	if env != nil {
		merged = env.MergeWithDefaults(merged)
	}
	if file != nil {
		merged = file.MergeWithDefaults(merged)
	}
	return merged
}

// StorageConfig returns the storage backend settings.
func (c *Config) StorageConfig() store.BackendConfig {
	return store.BackendConfig{
		Kind:        store.Kind(c.Backend),
		DataDir:     c.DataDir,
		RedisURL:    c.RedisURL,
		DatabaseURL: c.DatabaseURL,
		S3: store.S3Config{
			Bucket:   c.S3Bucket,
			Prefix:   c.S3Prefix,
			Region:   c.S3Region,
			Endpoint: c.S3Endpoint,
		},
	}
}

// LLMConfig returns the model settings, starting from the provider defaults.
func (c *Config) LLMConfig() *llm.Config {
	cfg := llm.DefaultConfig()
	if c.Provider != "" {
		cfg = cfg.WithProvider(llm.Provider(c.Provider))
	}
	if c.Model != "" {
		cfg = cfg.WithModel(llm.TierStandard, c.Model)
	}
	return cfg.WithVertex(c.Project, c.Location)
}

// LogLevelName returns the effective log level, forced to debug by Verbose.
func (c *Config) LogLevelName() string {
	if c.Verbose {
		return "debug"
	}
	return c.LogLevel
}

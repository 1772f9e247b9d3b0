// Package config loads the settings a mapping session is created with.
//
// Settings come from an optional YAML file, then a ".env" file, then
// DATAMAPPER_* environment variables; later sources win.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"datamapper/internal/common"
)

// DefaultSearchMatchLimit bounds how many fields a search may mark visible.
const DefaultSearchMatchLimit = 10000

// Config is the explicit per-session configuration.
type Config struct {
	// Inspection holds the base URLs of the per-format inspection services.
	Inspection InspectionConfig `yaml:"inspection"`

	// FieldActionServiceURL is the base URL of the field action registry.
	FieldActionServiceURL string `yaml:"field_action_service_url,omitempty"`

	// MappingServiceURL is the base URL of the mapping runtime (preview).
	MappingServiceURL string `yaml:"mapping_service_url,omitempty"`

	// ActionsFile points to a preloaded ActionDetails JSON blob; when set no fetch is made.
	ActionsFile string `yaml:"actions_file,omitempty"`

	// SearchMatchLimit caps the number of matches a field search may produce.
	SearchMatchLimit int `yaml:"search_match_limit,omitempty"`

	// RequestTimeout bounds each call to an external service.
	RequestTimeout time.Duration `yaml:"request_timeout,omitempty"`

	// InspectionCacheSize is the number of inspection responses kept in memory.
	InspectionCacheSize int `yaml:"inspection_cache_size,omitempty"`

	// Catalog selects where catalog archives are stored.
	Catalog CatalogConfig `yaml:"catalog"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level,omitempty"`
}

// InspectionConfig holds the inspection service base URLs, one per document format.
type InspectionConfig struct {
	JavaServiceURL         string `yaml:"java,omitempty"`
	XMLServiceURL          string `yaml:"xml,omitempty"`
	JSONServiceURL         string `yaml:"json,omitempty"`
	CSVServiceURL          string `yaml:"csv,omitempty"`
	KafkaConnectServiceURL string `yaml:"kafkaconnect,omitempty"`
}

// CatalogConfig configures catalog persistence.
type CatalogConfig struct {
	// Backend is one of "file", "s3" or "sqlite".
	Backend string `yaml:"backend,omitempty"`

	// Dir is the directory used by the file backend.
	Dir string `yaml:"dir,omitempty"`

	// SQLitePath is the database path used by the sqlite backend.
	SQLitePath string `yaml:"sqlite_path,omitempty"`

	// S3 settings used by the s3 backend.
	S3 S3Config `yaml:"s3"`
}

// S3Config holds object storage settings.
type S3Config struct {
	Endpoint  string `yaml:"endpoint,omitempty"`
	Region    string `yaml:"region,omitempty"`
	AccessKey string `yaml:"access_key,omitempty"`
	SecretKey string `yaml:"secret_key,omitempty"`
	Bucket    string `yaml:"bucket,omitempty"`
	UseSSL    bool   `yaml:"use_ssl,omitempty"`
}

// Default returns a configuration with defaults applied and no services configured.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)

	return cfg
}

// Load reads the YAML file at path (optional, may be empty), a ".env" file if present,
// and environment overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		cfg, err = Parse(data)
		if err != nil {
			return nil, err
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	applyEnv(cfg)
	applyDefaults(cfg)

	return cfg, nil
}

// Parse parses YAML data into a Config and applies defaults.
func Parse(data []byte) (*Config, error) {
	var cfg Config

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(cfg *Config) {
	if cfg.SearchMatchLimit <= 0 {
		cfg.SearchMatchLimit = DefaultSearchMatchLimit
	}

	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}

	if cfg.InspectionCacheSize <= 0 {
		cfg.InspectionCacheSize = 64
	}

	if cfg.Catalog.Backend == "" {
		cfg.Catalog.Backend = "file"
	}

	if cfg.Catalog.Dir == "" {
		cfg.Catalog.Dir = "catalogs"
	}

	if cfg.Catalog.S3.Region == "" {
		cfg.Catalog.S3.Region = "us-east-1"
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
}

func applyEnv(cfg *Config) {
	in := &cfg.Inspection
	in.JavaServiceURL = common.FirstNonEmpty(os.Getenv("DATAMAPPER_JAVA_INSPECTION_URL"), in.JavaServiceURL)
	in.XMLServiceURL = common.FirstNonEmpty(os.Getenv("DATAMAPPER_XML_INSPECTION_URL"), in.XMLServiceURL)
	in.JSONServiceURL = common.FirstNonEmpty(os.Getenv("DATAMAPPER_JSON_INSPECTION_URL"), in.JSONServiceURL)
	in.CSVServiceURL = common.FirstNonEmpty(os.Getenv("DATAMAPPER_CSV_INSPECTION_URL"), in.CSVServiceURL)
	in.KafkaConnectServiceURL = common.FirstNonEmpty(os.Getenv("DATAMAPPER_KAFKACONNECT_INSPECTION_URL"), in.KafkaConnectServiceURL)

	cfg.FieldActionServiceURL = common.FirstNonEmpty(os.Getenv("DATAMAPPER_FIELD_ACTION_URL"), cfg.FieldActionServiceURL)
	cfg.MappingServiceURL = common.FirstNonEmpty(os.Getenv("DATAMAPPER_MAPPING_SERVICE_URL"), cfg.MappingServiceURL)
	cfg.ActionsFile = common.FirstNonEmpty(os.Getenv("DATAMAPPER_ACTIONS_FILE"), cfg.ActionsFile)
	cfg.LogLevel = common.FirstNonEmpty(os.Getenv("DATAMAPPER_LOG_LEVEL"), cfg.LogLevel)

	if raw := strings.TrimSpace(os.Getenv("DATAMAPPER_SEARCH_MATCH_LIMIT")); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			cfg.SearchMatchLimit = v
		}
	}

	cat := &cfg.Catalog
	cat.Backend = common.FirstNonEmpty(os.Getenv("DATAMAPPER_CATALOG_BACKEND"), cat.Backend)
	cat.Dir = common.FirstNonEmpty(os.Getenv("DATAMAPPER_CATALOG_DIR"), cat.Dir)
	cat.SQLitePath = common.FirstNonEmpty(os.Getenv("DATAMAPPER_CATALOG_SQLITE_PATH"), cat.SQLitePath)
	cat.S3.Endpoint = common.FirstNonEmpty(os.Getenv("DATAMAPPER_S3_ENDPOINT"), cat.S3.Endpoint)
	cat.S3.Region = common.FirstNonEmpty(os.Getenv("DATAMAPPER_S3_REGION"), cat.S3.Region)
	cat.S3.AccessKey = common.FirstNonEmpty(os.Getenv("DATAMAPPER_S3_ACCESS_KEY"), cat.S3.AccessKey)
	cat.S3.SecretKey = common.FirstNonEmpty(os.Getenv("DATAMAPPER_S3_SECRET_KEY"), cat.S3.SecretKey)
	cat.S3.Bucket = common.FirstNonEmpty(os.Getenv("DATAMAPPER_S3_BUCKET"), cat.S3.Bucket)

	if raw := strings.TrimSpace(os.Getenv("DATAMAPPER_S3_USE_SSL")); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			cat.S3.UseSSL = v
		}
	}
}

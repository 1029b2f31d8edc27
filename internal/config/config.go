package config

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"net"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/deuce-x/deuce/internal/errors"
)

// ConfigFileNames are the configuration files Load looks for, in order.
var ConfigFileNames = []string{"deuce.json", "deuce.yaml", "deuce.yml"}

const (
	// DefaultPort is the default inspector port.
	DefaultPort = 7070

	// DefaultHost is the default inspector host.
	DefaultHost = "localhost"

	// DefaultDemo is the demo rendered when none is named.
	DefaultDemo = "hello"

	// DefaultStoreDir is the directory of the file store.
	DefaultStoreDir = ".deuce"

	// DefaultStoreKey names the stored to-do list.
	DefaultStoreKey = "todos"

	// DefaultRedisPrefix prefixes every Redis key.
	DefaultRedisPrefix = "deuce:"
)

// Store backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendS3     = "s3"
)

// Config represents the complete deuce configuration.
type Config struct {
	// Log configures the process logger.
	Log LogConfig `json:"log,omitempty" yaml:"log,omitempty"`

	// Inspector configures the live view HTTP server.
	Inspector InspectorConfig `json:"inspector,omitempty" yaml:"inspector,omitempty"`

	// Metrics configures Prometheus metrics.
	Metrics MetricsConfig `json:"metrics,omitempty" yaml:"metrics,omitempty"`

	// Tracing configures OpenTelemetry spans.
	Tracing TracingConfig `json:"tracing,omitempty" yaml:"tracing,omitempty"`

	// Store configures where the to-do demo keeps its list.
	Store StoreConfig `json:"store,omitempty" yaml:"store,omitempty"`

	// Demo is the demo rendered by default.
	Demo string `json:"demo,omitempty" yaml:"demo,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level,omitempty" yaml:"level,omitempty"`

	// Format is text or json.
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// InspectorConfig contains inspector server settings.
type InspectorConfig struct {
	// Host is the host to bind to.
	Host string `json:"host,omitempty" yaml:"host,omitempty"`

	// Port is the port to listen on.
	Port int `json:"port,omitempty" yaml:"port,omitempty"`
}

// MetricsConfig contains metrics settings.
type MetricsConfig struct {
	// Enabled registers the render metrics and serves /metrics.
	Enabled bool `json:"enabled,omitempty" yaml:"enabled,omitempty"`

	// Namespace is the metrics namespace (default: "deuce").
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty"`
}

// TracingConfig contains tracing settings.
type TracingConfig struct {
	// Enabled turns on render spans.
	Enabled bool `json:"enabled,omitempty" yaml:"enabled,omitempty"`

	// TracerName is the name of the tracer (default: "deuce").
	TracerName string `json:"tracerName,omitempty" yaml:"tracerName,omitempty"`
}

// StoreConfig contains to-do store settings.
type StoreConfig struct {
	// Backend is memory, file, redis or s3.
	Backend string `json:"backend,omitempty" yaml:"backend,omitempty"`

	// Dir is the directory of the file backend.
	Dir string `json:"dir,omitempty" yaml:"dir,omitempty"`

	// Key names the stored list in every backend.
	Key string `json:"key,omitempty" yaml:"key,omitempty"`

	// Redis configures the redis backend.
	Redis RedisConfig `json:"redis,omitempty" yaml:"redis,omitempty"`

	// S3 configures the s3 backend.
	S3 S3Config `json:"s3,omitempty" yaml:"s3,omitempty"`
}

// RedisConfig contains Redis connection settings.
type RedisConfig struct {
	Addr     string `json:"addr,omitempty" yaml:"addr,omitempty"`
	Password string `json:"password,omitempty" yaml:"password,omitempty"`
	DB       int    `json:"db,omitempty" yaml:"db,omitempty"`
	Prefix   string `json:"prefix,omitempty" yaml:"prefix,omitempty"`

	// TTL expires the stored list (e.g., "24h"). Empty keeps it forever.
	TTL string `json:"ttl,omitempty" yaml:"ttl,omitempty"`
}

// S3Config contains S3 bucket settings.
type S3Config struct {
	Bucket string `json:"bucket,omitempty" yaml:"bucket,omitempty"`
	Prefix string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Region string `json:"region,omitempty" yaml:"region,omitempty"`

	// Endpoint overrides the AWS endpoint, for MinIO and other
	// S3-compatible servers.
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`

	// PathStyle addresses the bucket in the path instead of the host.
	PathStyle bool `json:"pathStyle,omitempty" yaml:"pathStyle,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Inspector: InspectorConfig{
			Host: DefaultHost,
			Port: DefaultPort,
		},
		Metrics: MetricsConfig{
			Namespace: "deuce",
		},
		Tracing: TracingConfig{
			TracerName: "deuce",
		},
		Store: StoreConfig{
			Backend: BackendMemory,
			Dir:     DefaultStoreDir,
			Key:     DefaultStoreKey,
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: DefaultRedisPrefix,
			},
			S3: S3Config{
				Region: "us-east-1",
			},
		},
		Demo: DefaultDemo,
	}
}

// Load reads configuration from the specified directory.
// It uses the first of ConfigFileNames that exists.
func Load(dir string) (*Config, error) {
	for _, name := range ConfigFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return nil, errors.New("D100").
		WithDetail("No deuce.json, deuce.yaml or deuce.yml found in " + dir).
		WithSuggestion("Create deuce.json, or run without a config file to use the defaults")
}

// LoadFile reads configuration from the specified file path. Files ending in
// .yaml or .yml are parsed as YAML, anything else as JSON.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("D100").
				WithDetail("No config file at " + path)
		}
		return nil, errors.New("D101").Wrap(err)
	}

	cfg := New()
	if isYAML(path) {
		err = yaml.Unmarshal(data, cfg)
	} else {
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		perr := errors.New("D101").
			WithDetail("Failed to parse " + filepath.Base(path) + ".").
			WithSuggestion("Check the file against the documented sections: log, inspector, metrics, tracing, store, demo").
			Wrap(err)
		if line := errorLine(data, err); line > 0 {
			perr.WithLocation(path, line, 0)
		}
		return nil, perr
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

var yamlLine = regexp.MustCompile(`line (\d+)`)

// errorLine returns the 1-based line a parse error refers to, or 0.
func errorLine(data []byte, err error) int {
	var syntax *json.SyntaxError
	if stderrors.As(err, &syntax) {
		return bytes.Count(data[:min(int(syntax.Offset), len(data))], []byte("\n")) + 1
	}
	var typeErr *json.UnmarshalTypeError
	if stderrors.As(err, &typeErr) {
		return bytes.Count(data[:min(int(typeErr.Offset), len(data))], []byte("\n")) + 1
	}
	if m := yamlLine.FindStringSubmatch(err.Error()); m != nil {
		n, _ := strconv.Atoi(m[1])
		return n
	}
	return 0
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path, as YAML or JSON
// depending on its extension.
func (c *Config) SaveTo(path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return errors.New("D101").Wrap(err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.New("D101").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return "."
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	d := New()
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = d.Log.Format
	}
	if c.Inspector.Host == "" {
		c.Inspector.Host = d.Inspector.Host
	}
	if c.Inspector.Port == 0 {
		c.Inspector.Port = d.Inspector.Port
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = d.Metrics.Namespace
	}
	if c.Tracing.TracerName == "" {
		c.Tracing.TracerName = d.Tracing.TracerName
	}
	if c.Store.Backend == "" {
		c.Store.Backend = d.Store.Backend
	}
	if c.Store.Dir == "" {
		c.Store.Dir = d.Store.Dir
	}
	if c.Store.Key == "" {
		c.Store.Key = d.Store.Key
	}
	if c.Store.Redis.Addr == "" {
		c.Store.Redis.Addr = d.Store.Redis.Addr
	}
	if c.Store.Redis.Prefix == "" {
		c.Store.Redis.Prefix = d.Store.Redis.Prefix
	}
	if c.Store.S3.Region == "" {
		c.Store.S3.Region = d.Store.S3.Region
	}
	if c.Demo == "" {
		c.Demo = d.Demo
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.New("D102").
			WithDetail("log.level must be debug, info, warn or error, got " + strconv.Quote(c.Log.Level))
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return errors.New("D102").
			WithDetail("log.format must be text or json, got " + strconv.Quote(c.Log.Format))
	}
	if c.Inspector.Port < 0 || c.Inspector.Port > 65535 {
		return errors.New("D102").
			WithDetail("inspector.port must be between 0 and 65535")
	}
	switch c.Store.Backend {
	case BackendMemory, BackendFile, BackendRedis:
	case BackendS3:
		if c.Store.S3.Bucket == "" {
			return errors.New("D102").
				WithDetail("store.s3.bucket is required for the s3 backend")
		}
	default:
		return errors.New("D200").
			WithDetail("store.backend is " + strconv.Quote(c.Store.Backend))
	}
	if _, err := c.RedisTTL(); err != nil {
		return errors.New("D102").
			WithDetail("store.redis.ttl is not a duration").
			Wrap(err)
	}
	return nil
}

// InspectorAddress returns the listen address of the inspector.
func (c *Config) InspectorAddress() string {
	return net.JoinHostPort(c.Inspector.Host, strconv.Itoa(c.Inspector.Port))
}

// InspectorURL returns the URL of the inspector.
func (c *Config) InspectorURL() string {
	return "http://" + c.InspectorAddress()
}

// StorePath returns the absolute path of the file store directory.
func (c *Config) StorePath() string {
	if filepath.IsAbs(c.Store.Dir) {
		return c.Store.Dir
	}
	return filepath.Join(c.Dir(), c.Store.Dir)
}

// RedisTTL parses store.redis.ttl. An empty value is zero.
func (c *Config) RedisTTL() (time.Duration, error) {
	if c.Store.Redis.TTL == "" {
		return 0, nil
	}
	return time.ParseDuration(c.Store.Redis.TTL)
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	for _, name := range ConfigFileNames {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

// FindProjectRoot walks up directories to find the directory containing a
// config file.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("D100").
				WithDetail("No config file found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads the configuration of the current directory or
// its nearest parent that has one. Without any config file it returns the
// defaults.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		cfg := New()
		return cfg, nil
	}

	return Load(root)
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/deuce-x/deuce/internal/errors"
)

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Inspector.Port != DefaultPort {
		t.Errorf("Inspector.Port = %d, want %d", cfg.Inspector.Port, DefaultPort)
	}
	if cfg.Store.Backend != BackendMemory {
		t.Errorf("Store.Backend = %q, want %q", cfg.Store.Backend, BackendMemory)
	}
	if cfg.Demo != DefaultDemo {
		t.Errorf("Demo = %q, want %q", cfg.Demo, DefaultDemo)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		config string
		check  func(t *testing.T, cfg *Config)
	}{
		{
			name: "json",
			file: "deuce.json",
			config: `{
  "log": {"level": "debug"},
  "inspector": {"port": 9000},
  "store": {"backend": "redis", "redis": {"addr": "cache:6379", "ttl": "1h"}}
}`,
			check: func(t *testing.T, cfg *Config) {
				if cfg.Log.Level != "debug" || cfg.Log.Format != "text" {
					t.Errorf("Log = %+v", cfg.Log)
				}
				if cfg.Inspector.Port != 9000 || cfg.Inspector.Host != DefaultHost {
					t.Errorf("Inspector = %+v", cfg.Inspector)
				}
				if cfg.Store.Redis.Addr != "cache:6379" || cfg.Store.Redis.Prefix != DefaultRedisPrefix {
					t.Errorf("Store.Redis = %+v", cfg.Store.Redis)
				}
				if ttl, err := cfg.RedisTTL(); err != nil || ttl != time.Hour {
					t.Errorf("RedisTTL() = %v, %v", ttl, err)
				}
			},
		},
		{
			name: "yaml",
			file: "deuce.yaml",
			config: `demo: todo
metrics:
  enabled: true
  namespace: app
store:
  backend: s3
  s3:
    bucket: lists
    endpoint: http://localhost:9000
    pathStyle: true
`,
			check: func(t *testing.T, cfg *Config) {
				if cfg.Demo != "todo" {
					t.Errorf("Demo = %q", cfg.Demo)
				}
				if !cfg.Metrics.Enabled || cfg.Metrics.Namespace != "app" {
					t.Errorf("Metrics = %+v", cfg.Metrics)
				}
				s3 := cfg.Store.S3
				if s3.Bucket != "lists" || !s3.PathStyle || s3.Region != "us-east-1" {
					t.Errorf("Store.S3 = %+v", s3)
				}
			},
		},
		{
			name:   "yml",
			file:   "deuce.yml",
			config: "tracing:\n  enabled: true\n",
			check: func(t *testing.T, cfg *Config) {
				if !cfg.Tracing.Enabled || cfg.Tracing.TracerName != "deuce" {
					t.Errorf("Tracing = %+v", cfg.Tracing)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if err := os.WriteFile(filepath.Join(dir, tt.file), []byte(tt.config), 0o644); err != nil {
				t.Fatal(err)
			}

			cfg, err := Load(dir)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if cfg.Path() != filepath.Join(dir, tt.file) {
				t.Errorf("Path() = %q", cfg.Path())
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("Validate() error = %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(t.TempDir())
	var derr *errors.DeuceError
	if !errors.As(err, &derr) || derr.Code != "D100" {
		t.Fatalf("Load() error = %v, want D100", err)
	}
}

func TestLoadParseError(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		config   string
		wantLine int
	}{
		{"json syntax", "deuce.json", "{\n  \"log\": {\n    \"level\": debug\n  }\n}\n", 3},
		{"json type", "deuce.json", "{\n  \"inspector\": {\n    \"port\": \"high\"\n  }\n}\n", 3},
		{"yaml type", "deuce.yaml", "log:\n  level: info\ninspector:\n  port: [1, 2]\n", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			if err := os.WriteFile(path, []byte(tt.config), 0o644); err != nil {
				t.Fatal(err)
			}

			_, err := LoadFile(path)
			var derr *errors.DeuceError
			if !errors.As(err, &derr) || derr.Code != "D101" {
				t.Fatalf("LoadFile() error = %v, want D101", err)
			}
			if derr.Location == nil || derr.Location.Line != tt.wantLine {
				t.Errorf("Location = %v, want line %d", derr.Location, tt.wantLine)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		code   string
	}{
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "D102"},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, "D102"},
		{"bad port", func(c *Config) { c.Inspector.Port = 70000 }, "D102"},
		{"unknown backend", func(c *Config) { c.Store.Backend = "etcd" }, "D200"},
		{"s3 without bucket", func(c *Config) { c.Store.Backend = BackendS3 }, "D102"},
		{"bad ttl", func(c *Config) { c.Store.Redis.TTL = "soon" }, "D102"},
		{"valid file", func(c *Config) { c.Store.Backend = BackendFile }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.code == "" {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if got := errors.Code(err); got != tt.code {
				t.Errorf("Validate() code = %q, want %q (%v)", got, tt.code, err)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	for _, name := range []string{"deuce.json", "deuce.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			cfg := New()
			cfg.Demo = "futures"
			cfg.Store.Redis.TTL = "30m"
			if err := cfg.SaveTo(path); err != nil {
				t.Fatalf("SaveTo() error = %v", err)
			}

			loaded, err := LoadFile(path)
			if err != nil {
				t.Fatalf("LoadFile() error = %v", err)
			}
			if loaded.Demo != "futures" || loaded.Store.Redis.TTL != "30m" {
				t.Errorf("loaded = %+v", loaded)
			}
			loaded.Demo = "todo"
			if err := loaded.Save(); err != nil {
				t.Fatalf("Save() error = %v", err)
			}
		})
	}

	if err := New().Save(); err == nil {
		t.Error("Save() without a path succeeded")
	}
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "deuce.yml"), []byte("demo: hello\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := FindProjectRoot(nested)
	if err != nil {
		t.Fatalf("FindProjectRoot() error = %v", err)
	}
	want, _ := filepath.EvalSymlinks(root)
	if g, _ := filepath.EvalSymlinks(got); g != want {
		t.Errorf("FindProjectRoot() = %q, want %q", got, root)
	}
}

func TestAddresses(t *testing.T) {
	cfg := New()
	cfg.Inspector.Host = "0.0.0.0"
	cfg.Inspector.Port = 8081
	if got := cfg.InspectorAddress(); got != "0.0.0.0:8081" {
		t.Errorf("InspectorAddress() = %q", got)
	}
	if got := cfg.InspectorURL(); got != "http://0.0.0.0:8081" {
		t.Errorf("InspectorURL() = %q", got)
	}

	cfg.configPath = filepath.Join("/srv", "app", "deuce.json")
	if got := cfg.StorePath(); got != filepath.Join("/srv", "app", DefaultStoreDir) {
		t.Errorf("StorePath() = %q", got)
	}
}

package config_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zeebo/assert"

	. "github.com/Cogwheel-Validator/spectra-explorer/explorer/config"
)

// isolate runs the test in an empty dir so godotenv finds no .env file and clears
// every EXPLORER_ variable for the duration of the test
func isolate(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	for _, e := range os.Environ() {
		if name, _, ok := strings.Cut(e, "="); ok && strings.HasPrefix(name, "EXPLORER_") {
			t.Setenv(name, "")
			_ = os.Unsetenv(name)
		}
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "explorer.toml")
	if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return p
}

func TestLoadExplorerConfig_FromEnv_Success(t *testing.T) {
	isolate(t)
	t.Setenv("EXPLORER_PORT", "9090")
	t.Setenv("EXPLORER_HOST", "0.0.0.0")
	t.Setenv("EXPLORER_API_URLS", "https://api.example.com,https://backup.example.com")

	cfg, err := LoadExplorerConfig(nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	assert.Equal(t, cfg.Port, 9090)
	assert.Equal(t, cfg.Address(), "0.0.0.0:9090")
	assert.DeepEqual(t, cfg.APIURLs, []string{"https://api.example.com", "https://backup.example.com"})

	// defaults
	assert.Equal(t, cfg.VisibleBlocks, 10)
	assert.Equal(t, cfg.RefreshIntervalSeconds, 5)
	assert.Equal(t, cfg.CacheBackend, "memory")
	assert.DeepEqual(t, cfg.AllowedOrigins, []string{"*"})

	qc := cfg.QueryConfig()
	assert.Equal(t, len(qc.URLs), 2)
	assert.Equal(t, qc.MaxRetries, 2)
}

func TestLoadExplorerConfig_FromEnv_FailVerification(t *testing.T) {
	isolate(t)
	t.Setenv("EXPLORER_PORT", "8080")

	// missing api urls
	if _, err := LoadExplorerConfig(nil); err == nil {
		t.Fatalf("expected verification error")
	}
}

func TestLoadExplorerConfig_FromFile(t *testing.T) {
	isolate(t)
	path := writeConfig(t, `
port = 8181
host = "127.0.0.1"
allowed_origins = ["https://explorer.example.com"]
api_urls = ["https://api.example.com"]
refresh_interval_seconds = 2
visible_blocks = 20
cache_backend = "leveldb"
cache_path = "/var/lib/explorer/cache"
enable_metrics = true
service_name = "explorer-test"
`)

	cfg, err := LoadExplorerConfig(&path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	assert.Equal(t, cfg.Port, 8181)
	assert.Equal(t, cfg.VisibleBlocks, 20)
	assert.Equal(t, cfg.RefreshInterval().Seconds(), float64(2))
	assert.Equal(t, cfg.CachePath, "/var/lib/explorer/cache")

	sc := cfg.ServerConfig()
	assert.Equal(t, sc.Address, "127.0.0.1:8181")
	assert.True(t, sc.EnableMetrics)
	assert.Equal(t, sc.OTelConfig.ServiceName, "explorer-test")
	assert.True(t, sc.OTelConfig.UsePrometheus)
}

func TestLoadExplorerConfig_FromFile_Invalid(t *testing.T) {
	isolate(t)
	tests := []struct {
		name string
		body string
	}{
		{"bad port", `port = 70000
api_urls = ["https://api.example.com"]`},
		{"relative api url", `api_urls = ["api.example.com"]`},
		{"leveldb without path", `api_urls = ["https://api.example.com"]
cache_backend = "leveldb"`},
		{"unknown backend", `api_urls = ["https://api.example.com"]
cache_backend = "redis"`},
		{"zero window", `api_urls = ["https://api.example.com"]
visible_blocks = 0`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.body)
			_, err := LoadExplorerConfig(&path)
			assert.Error(t, err)
		})
	}

	notToml := filepath.Join(t.TempDir(), "explorer.yaml")
	_, err := LoadExplorerConfig(&notToml)
	assert.Error(t, err)
}

const denomMap = `
[[denom]]
ibc_denom = "ibc/CUSTOM"
path = "transfer/channel-9"
base_denom = "uosmo"

[[denom]]
path = "transfer/channel-0"
base_denom = "uatom"
`

func TestParseDenomMap(t *testing.T) {
	traces, err := ParseDenomMap([]byte(denomMap))
	assert.NoError(t, err)
	assert.Equal(t, len(traces), 2)
	assert.Equal(t, traces["ibc/CUSTOM"].BaseDenom, "uosmo")
	assert.Equal(t, traces["ibc/27394FB092D2ECCD56123C74F36E4C1F926001CEADA9CA97EA622B25F41E5EB2"].Path, "transfer/channel-0")

	_, err = ParseDenomMap([]byte("[[denom]]\nibc_denom = \"ibc/X\"\n"))
	assert.Error(t, err)
	_, err = ParseDenomMap([]byte("[[denom]]\nibc_denom = \"uatom\"\nbase_denom = \"uatom\"\n"))
	assert.Error(t, err)
	_, err = ParseDenomMap([]byte("not toml ["))
	assert.Error(t, err)
}

func TestLoadDenomMap(t *testing.T) {
	traces, err := LoadDenomMap(context.Background(), "")
	assert.NoError(t, err)
	assert.Equal(t, len(traces), 0)

	src := filepath.Join(t.TempDir(), "denoms.toml")
	if err := os.WriteFile(src, []byte(denomMap), 0o600); err != nil {
		t.Fatalf("failed to write denom map: %v", err)
	}
	traces, err = LoadDenomMap(context.Background(), src)
	assert.NoError(t, err)
	assert.Equal(t, traces.Resolve("ibc/CUSTOM"), "uosmo")

	_, err = LoadDenomMap(context.Background(), filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

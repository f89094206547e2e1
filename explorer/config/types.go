// Package config loads the explorer configuration from a TOML file or from EXPLORER_*
// environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/Cogwheel-Validator/spectra-explorer/explorer/query"
	"github.com/Cogwheel-Validator/spectra-explorer/explorer/rpc"
)

type ExplorerConfig struct {
	// server configs
	Port int    `mapstructure:"port" toml:"port"`
	Host string `mapstructure:"host" toml:"host"`

	// CORS configs
	AllowedOrigins []string `mapstructure:"allowed_origins" toml:"allowed_origins"`

	// rate limiting configs
	RatePerMinute         int `mapstructure:"rate_per_minute" toml:"rate_per_minute"`
	MaxConcurrentRequests int `mapstructure:"max_concurrent_requests" toml:"max_concurrent_requests"`

	// chain REST API, the first url is the primary
	APIURLs               []string `mapstructure:"api_urls" toml:"api_urls"`
	RequestTimeoutSeconds int      `mapstructure:"request_timeout_seconds" toml:"request_timeout_seconds"`
	MaxRetries            int      `mapstructure:"max_retries" toml:"max_retries"`

	// dashboard configs
	RefreshIntervalSeconds int `mapstructure:"refresh_interval_seconds" toml:"refresh_interval_seconds"`
	VisibleBlocks          int `mapstructure:"visible_blocks" toml:"visible_blocks"`

	// validator cache, "memory" or "leveldb"
	CacheBackend string `mapstructure:"cache_backend" toml:"cache_backend"`
	CachePath    string `mapstructure:"cache_path" toml:"cache_path"`

	// go-getter source of a TOML denom override file, optional
	DenomMapSource string `mapstructure:"denom_map_source" toml:"denom_map_source"`

	// OpenTelemetry configs
	ServiceName    string `mapstructure:"service_name" toml:"service_name"`
	ServiceVersion string `mapstructure:"service_version" toml:"service_version"`
	Environment    string `mapstructure:"environment" toml:"environment"` // PROD, DEV, TEST, LOCAL
	EnableTracing  bool   `mapstructure:"enable_tracing" toml:"enable_tracing"`
	UseOTLPTraces  bool   `mapstructure:"use_otlp_traces" toml:"use_otlp_traces"`
	OTLPTracesURL  string `mapstructure:"otlp_traces_url" toml:"otlp_traces_url"`
	EnableMetrics  bool   `mapstructure:"enable_metrics" toml:"enable_metrics"`
	UsePrometheus  bool   `mapstructure:"use_prometheus" toml:"use_prometheus"`
	UseOTLPMetrics bool   `mapstructure:"use_otlp_metrics" toml:"use_otlp_metrics"`
	OTLPMetricsURL string `mapstructure:"otlp_metrics_url" toml:"otlp_metrics_url"`
	EnableLogs     bool   `mapstructure:"enable_logs" toml:"enable_logs"`
	UseOTLPLogs    bool   `mapstructure:"use_otlp_logs" toml:"use_otlp_logs"`
	OTLPLogsURL    string `mapstructure:"otlp_logs_url" toml:"otlp_logs_url"`

	InsecureOTLP bool `mapstructure:"insecure_otlp" toml:"insecure_otlp"`

	// Development mode uses stdout exporters
	DevelopmentMode bool `mapstructure:"development_mode" toml:"development_mode"`
}

// Address is the listen address of the HTTP server
func (c *ExplorerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// RefreshInterval is the dashboard polling interval
func (c *ExplorerConfig) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshIntervalSeconds) * time.Second
}

// QueryConfig builds the API client configuration
func (c *ExplorerConfig) QueryConfig() query.Config {
	qc := query.DefaultConfig(c.APIURLs[0])
	qc.URLs = c.APIURLs
	qc.MaxRetries = c.MaxRetries
	qc.Timeout = time.Duration(c.RequestTimeoutSeconds) * time.Second
	return qc
}

// ServerConfig builds the HTTP server configuration
func (c *ExplorerConfig) ServerConfig() *rpc.ServerConfig {
	sc := rpc.DefaultServerConfig()
	sc.Address = c.Address()
	sc.AllowedOrigins = c.AllowedOrigins
	sc.EnableMetrics = c.EnableMetrics
	sc.RatePerMinute = &c.RatePerMinute
	sc.MaxConcurrentRequests = &c.MaxConcurrentRequests
	sc.OTelConfig = c.OTelConfig()
	return sc
}

// OTelConfig builds the telemetry configuration
func (c *ExplorerConfig) OTelConfig() *rpc.OTelConfig {
	return &rpc.OTelConfig{
		ServiceName:     c.ServiceName,
		ServiceVersion:  c.ServiceVersion,
		Environment:     c.Environment,
		EnableTracing:   c.EnableTracing,
		UseOTLPTraces:   c.UseOTLPTraces,
		OTLPTracesURL:   c.OTLPTracesURL,
		EnableMetrics:   c.EnableMetrics,
		UsePrometheus:   c.UsePrometheus,
		UseOTLPMetrics:  c.UseOTLPMetrics,
		OTLPMetricsURL:  c.OTLPMetricsURL,
		EnableLogs:      c.EnableLogs,
		UseOTLPLogs:     c.UseOTLPLogs,
		OTLPLogsURL:     c.OTLPLogsURL,
		InsecureOTLP:    c.InsecureOTLP,
		DevelopmentMode: c.DevelopmentMode,
	}
}

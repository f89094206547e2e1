package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/Cogwheel-Validator/spectra-explorer/explorer/cache"
)

// keys lists every config key, env-only mode binds each one to EXPLORER_<KEY>
var keys = []string{
	"port", "host", "allowed_origins",
	"rate_per_minute", "max_concurrent_requests",
	"api_urls", "request_timeout_seconds", "max_retries",
	"refresh_interval_seconds", "visible_blocks",
	"cache_backend", "cache_path", "denom_map_source",
	"service_name", "service_version", "environment",
	"enable_tracing", "use_otlp_traces", "otlp_traces_url",
	"enable_metrics", "use_prometheus", "use_otlp_metrics", "otlp_metrics_url",
	"enable_logs", "use_otlp_logs", "otlp_logs_url",
	"insecure_otlp", "development_mode",
}

// LoadExplorerConfig loads the config from the given TOML file, or from the
// environment when configPath is nil
func LoadExplorerConfig(configPath *string) (*ExplorerConfig, error) {
	v := viper.New()
	setDefaults(v)

	if configPath == nil {
		config, err := loadEnv(v)
		if err != nil {
			return nil, fmt.Errorf("failed to load env config: %w", err)
		}
		return config, nil
	}
	config, err := loadFile(v, *configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load file config: %w", err)
	}
	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", 8080)
	v.SetDefault("host", "localhost")
	v.SetDefault("allowed_origins", []string{"*"})
	v.SetDefault("max_concurrent_requests", 200)
	v.SetDefault("request_timeout_seconds", 10)
	v.SetDefault("max_retries", 2)
	v.SetDefault("refresh_interval_seconds", 5)
	v.SetDefault("visible_blocks", 10)
	v.SetDefault("cache_backend", "memory")
	v.SetDefault("service_name", "spectra-explorer")
	v.SetDefault("service_version", "1.0.0")
	v.SetDefault("environment", "PROD")
	v.SetDefault("use_prometheus", true)
	v.SetDefault("otlp_traces_url", "localhost:4318")
	v.SetDefault("otlp_metrics_url", "localhost:4318")
	v.SetDefault("otlp_logs_url", "localhost:4318")
}

func loadEnv(v *viper.Viper) (*ExplorerConfig, error) {
	// a missing .env is fine, the variables may come from docker or systemd
	_ = godotenv.Load()
	v.SetEnvPrefix("EXPLORER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, k := range keys {
		_ = v.BindEnv(k)
	}
	return decode(v)
}

func loadFile(v *viper.Viper, configPath string) (*ExplorerConfig, error) {
	if !strings.HasSuffix(configPath, ".toml") {
		return nil, fmt.Errorf("config file must be a toml file")
	}
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (*ExplorerConfig, error) {
	var config ExplorerConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := verifyConfig(&config); err != nil {
		return nil, fmt.Errorf("failed to verify config: %w", err)
	}
	return &config, nil
}

func verifyConfig(config *ExplorerConfig) error {
	if config.Port <= 0 || config.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535")
	}
	if config.Host == "" {
		return fmt.Errorf("host is required")
	}
	if len(config.AllowedOrigins) == 0 {
		return fmt.Errorf("allowed_origins is required")
	}
	if len(config.APIURLs) == 0 {
		return fmt.Errorf("api_urls is required")
	}
	for _, raw := range config.APIURLs {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("api_urls entry %q is not an absolute url", raw)
		}
	}
	if config.RequestTimeoutSeconds <= 0 {
		return fmt.Errorf("request_timeout_seconds must be positive")
	}
	if config.MaxRetries < 0 {
		return fmt.Errorf("max_retries must not be negative")
	}
	if config.RefreshIntervalSeconds <= 0 {
		return fmt.Errorf("refresh_interval_seconds must be positive")
	}
	if config.VisibleBlocks <= 0 {
		return fmt.Errorf("visible_blocks must be positive")
	}

	switch config.CacheBackend {
	case cache.BackendMemory:
	case cache.BackendLevelDB:
		if config.CachePath == "" {
			return fmt.Errorf("cache_path is required for the leveldb cache")
		}
	default:
		return fmt.Errorf("unknown cache_backend %q", config.CacheBackend)
	}
	return nil
}

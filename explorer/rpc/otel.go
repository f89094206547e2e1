package rpc

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutlog"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/propagation"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.27.0"
)

// OTelConfig configures the OpenTelemetry pipelines of the explorer
type OTelConfig struct {
	ServiceName    string
	ServiceVersion string
	Environment    string

	EnableTracing bool
	UseOTLPTraces bool
	OTLPTracesURL string

	// Prometheus metrics are served on /server/metrics
	EnableMetrics  bool
	UsePrometheus  bool
	UseOTLPMetrics bool
	OTLPMetricsURL string

	// zerolog stays the application logger, this only exports OTel log records
	EnableLogs  bool
	UseOTLPLogs bool
	OTLPLogsURL string

	// InsecureOTLP sends telemetry over plain HTTP. Local setups only.
	InsecureOTLP bool

	// Client side TLS towards the collector, independent of the explorer's own listener
	OTLPClientCertFile string
	OTLPClientKeyFile  string
	OTLPCACertFile     string

	// DevelopmentMode writes traces, metrics and logs to stdout
	DevelopmentMode bool
}

// DefaultOTelConfig enables tracing over OTLP and Prometheus metrics
func DefaultOTelConfig() *OTelConfig {
	return &OTelConfig{
		ServiceName:    "spectra-explorer",
		ServiceVersion: "1.0.0",
		Environment:    "production",
		EnableTracing:  true,
		UseOTLPTraces:  true,
		OTLPTracesURL:  "localhost:4318",
		EnableMetrics:  true,
		UsePrometheus:  true,
		OTLPMetricsURL: "localhost:4318",
		OTLPLogsURL:    "localhost:4318",
	}
}

// enabled reports whether any pipeline is switched on
func (c *OTelConfig) enabled() bool {
	return c != nil && (c.EnableTracing || c.EnableMetrics || c.EnableLogs)
}

// NewOTelSDK installs the global tracer, meter and logger providers. The returned
// shutdown flushes and closes every provider that was installed, call it on exit even
// when an error is returned.
func NewOTelSDK(ctx context.Context, config *OTelConfig) (func(context.Context) error, error) {
	if config == nil {
		config = DefaultOTelConfig()
	}

	var shutdownFuncs []func(context.Context) error
	shutdown := func(ctx context.Context) error {
		var err error
		for _, fn := range shutdownFuncs {
			err = errors.Join(err, fn(ctx))
		}
		shutdownFuncs = nil
		return err
	}
	fail := func(err error) (func(context.Context) error, error) {
		return shutdown, errors.Join(err, shutdown(ctx))
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(config.ServiceName),
			semconv.ServiceVersion(config.ServiceVersion),
			semconv.DeploymentEnvironmentName(config.Environment),
		),
	)
	if err != nil {
		return shutdown, fmt.Errorf("failed to create resource: %w", err)
	}

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	if config.EnableTracing {
		tp, err := newTracerProvider(ctx, res, config)
		if err != nil {
			return fail(err)
		}
		shutdownFuncs = append(shutdownFuncs, tp.Shutdown)
		otel.SetTracerProvider(tp)
	}

	if config.EnableMetrics {
		mp, err := newMeterProvider(ctx, res, config)
		if err != nil {
			return fail(err)
		}
		shutdownFuncs = append(shutdownFuncs, mp.Shutdown)
		otel.SetMeterProvider(mp)
	}

	if config.EnableLogs {
		lp, err := newLoggerProvider(ctx, res, config)
		if err != nil {
			return fail(err)
		}
		shutdownFuncs = append(shutdownFuncs, lp.Shutdown)
		global.SetLoggerProvider(lp)
	}

	return shutdown, nil
}

// clientTLS builds the TLS config used towards the collector, nil when InsecureOTLP is set
func clientTLS(config *OTelConfig) (*tls.Config, error) {
	if config.InsecureOTLP {
		return nil, nil
	}
	tlsConfig := &tls.Config{MinVersion: tls.VersionTLS12}

	if config.OTLPCACertFile != "" {
		caCert, err := os.ReadFile(config.OTLPCACertFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA certificate: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(caCert) {
			return nil, fmt.Errorf("no certificates found in %s", config.OTLPCACertFile)
		}
		tlsConfig.RootCAs = pool
	}

	if config.OTLPClientCertFile != "" && config.OTLPClientKeyFile != "" {
		cert, err := tls.LoadX509KeyPair(config.OTLPClientCertFile, config.OTLPClientKeyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load client certificate: %w", err)
		}
		tlsConfig.Certificates = []tls.Certificate{cert}
	}
	return tlsConfig, nil
}

func newTracerProvider(ctx context.Context, res *resource.Resource, config *OTelConfig) (*trace.TracerProvider, error) {
	var exporter trace.SpanExporter
	switch {
	case config.DevelopmentMode:
		exp, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, fmt.Errorf("failed to create stdout trace exporter: %w", err)
		}
		exporter = exp
	case config.UseOTLPTraces:
		opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(config.OTLPTracesURL)}
		if config.InsecureOTLP {
			opts = append(opts, otlptracehttp.WithInsecure())
		} else {
			tlsConfig, err := clientTLS(config)
			if err != nil {
				return nil, fmt.Errorf("traces: %w", err)
			}
			opts = append(opts, otlptracehttp.WithTLSClientConfig(tlsConfig))
		}
		exp, err := otlptracehttp.New(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create OTLP trace exporter: %w", err)
		}
		exporter = exp
	default:
		return trace.NewTracerProvider(trace.WithResource(res)), nil
	}

	return trace.NewTracerProvider(
		trace.WithBatcher(exporter, trace.WithBatchTimeout(5*time.Second)),
		trace.WithResource(res),
	), nil
}

func newMeterProvider(ctx context.Context, res *resource.Resource, config *OTelConfig) (*metric.MeterProvider, error) {
	opts := []metric.Option{metric.WithResource(res)}

	if config.UsePrometheus {
		// registers with the default prometheus registerer served by promhttp
		exp, err := prometheus.New()
		if err != nil {
			return nil, fmt.Errorf("failed to create Prometheus exporter: %w", err)
		}
		opts = append(opts, metric.WithReader(exp))
	}

	if config.UseOTLPMetrics {
		if config.DevelopmentMode {
			exp, err := stdoutmetric.New()
			if err != nil {
				return nil, fmt.Errorf("failed to create stdout metric exporter: %w", err)
			}
			opts = append(opts, metric.WithReader(metric.NewPeriodicReader(exp, metric.WithInterval(10*time.Second))))
		} else {
			otlpOpts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(config.OTLPMetricsURL)}
			if config.InsecureOTLP {
				otlpOpts = append(otlpOpts, otlpmetrichttp.WithInsecure())
			} else {
				tlsConfig, err := clientTLS(config)
				if err != nil {
					return nil, fmt.Errorf("metrics: %w", err)
				}
				otlpOpts = append(otlpOpts, otlpmetrichttp.WithTLSClientConfig(tlsConfig))
			}
			exp, err := otlpmetrichttp.New(ctx, otlpOpts...)
			if err != nil {
				return nil, fmt.Errorf("failed to create OTLP metric exporter: %w", err)
			}
			opts = append(opts, metric.WithReader(metric.NewPeriodicReader(exp, metric.WithInterval(time.Minute))))
		}
	}

	return metric.NewMeterProvider(opts...), nil
}

func newLoggerProvider(ctx context.Context, res *resource.Resource, config *OTelConfig) (*sdklog.LoggerProvider, error) {
	var exporter sdklog.Exporter
	switch {
	case config.DevelopmentMode:
		exp, err := stdoutlog.New()
		if err != nil {
			return nil, fmt.Errorf("failed to create stdout log exporter: %w", err)
		}
		exporter = exp
	case config.UseOTLPLogs:
		opts := []otlploghttp.Option{otlploghttp.WithEndpoint(config.OTLPLogsURL)}
		if config.InsecureOTLP {
			opts = append(opts, otlploghttp.WithInsecure())
		} else {
			tlsConfig, err := clientTLS(config)
			if err != nil {
				return nil, fmt.Errorf("logs: %w", err)
			}
			opts = append(opts, otlploghttp.WithTLSClientConfig(tlsConfig))
		}
		exp, err := otlploghttp.New(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create OTLP log exporter: %w", err)
		}
		exporter = exp
	default:
		return sdklog.NewLoggerProvider(sdklog.WithResource(res)), nil
	}

	return sdklog.NewLoggerProvider(
		sdklog.WithProcessor(sdklog.NewBatchProcessor(exporter)),
		sdklog.WithResource(res),
	), nil
}

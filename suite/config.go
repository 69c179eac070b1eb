package suite

import (
	"os"
	"strings"
)

// Environment variables consulted for fields left at their zero value.
// Constructor values always win.
const (
	EnvServiceName  = "OTEL_SERVICE_NAME"
	EnvOTLPEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
	EnvEnvironment  = "TRACEWRIGHT_ENVIRONMENT"
	EnvTrigger      = "TRACEWRIGHT_TRIGGER"
	EnvBrowser      = "TRACEWRIGHT_BROWSER"
	EnvHeadless     = "TRACEWRIGHT_HEADLESS"
)

// Defaults applied when neither the constructor nor the environment sets a value.
const (
	DefaultServiceName    = "tracewright"
	DefaultEndpoint       = "http://localhost:4317"
	DefaultEnvironment    = "development"
	DefaultTrigger        = "manual"
	DefaultBrowser        = "chromium"
	DefaultViewportWidth  = 1280
	DefaultViewportHeight = 720
)

// Config configures one instrumented suite run.
type Config struct {
	ServiceName string
	SuiteName   string
	BaseURL     string

	// Endpoint is the OTLP gRPC endpoint spans, logs and metrics go to.
	// Insecure selects plaintext transport; nil means true.
	Endpoint string
	Insecure *bool

	Environment string
	Trigger     string

	// Browser identity. Headless nil means true.
	Browser        string
	Headless       *bool
	ViewportWidth  int
	ViewportHeight int

	// Exporter selection, passed through to the telemetry pipeline.
	// Empty means otlp; "stdout" and "none" are mainly for development.
	TraceExporter  string
	LogExporter    string
	MetricExporter string
}

// withDefaults resolves the environment fallbacks and fixed defaults.
func (c Config) withDefaults() Config {
	if c.ServiceName == "" {
		c.ServiceName = envOr(EnvServiceName, DefaultServiceName)
	}
	if c.Endpoint == "" {
		c.Endpoint = envOr(EnvOTLPEndpoint, DefaultEndpoint)
	}
	if c.Environment == "" {
		c.Environment = envOr(EnvEnvironment, DefaultEnvironment)
	}
	if c.Trigger == "" {
		c.Trigger = envOr(EnvTrigger, DefaultTrigger)
	}
	if c.Browser == "" {
		c.Browser = envOr(EnvBrowser, DefaultBrowser)
	}
	if c.Headless == nil {
		headless := true
		if v, ok := os.LookupEnv(EnvHeadless); ok {
			headless = parseBool(v)
		}
		c.Headless = &headless
	}
	if c.Insecure == nil {
		insecure := true
		c.Insecure = &insecure
	}
	if c.ViewportWidth == 0 {
		c.ViewportWidth = DefaultViewportWidth
	}
	if c.ViewportHeight == 0 {
		c.ViewportHeight = DefaultViewportHeight
	}
	return c
}

func (c Config) headless() bool { return c.Headless == nil || *c.Headless }
func (c Config) insecure() bool { return c.Insecure == nil || *c.Insecure }

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseBool(v string) bool {
	switch strings.ToLower(v) {
	case "false", "0", "no":
		return false
	default:
		return true
	}
}

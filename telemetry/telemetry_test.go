package telemetry

import (
	"context"
	"errors"
	"testing"
)

func noneConfig() Config {
	return Config{
		ServiceName:    "telemetry-test",
		TraceExporter:  "none",
		LogExporter:    "none",
		MetricExporter: "none",
	}
}

// TestConfig_Validate covers the accepted and rejected configurations.
func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{name: "valid", cfg: noneConfig(), wantErr: nil},
		{name: "missing service name", cfg: Config{}, wantErr: ErrMissingServiceName},
		{
			name:    "unknown trace exporter",
			cfg:     Config{ServiceName: "x", TraceExporter: "carrier-pigeon"},
			wantErr: ErrInvalidExporter,
		},
		{
			name:    "unknown log exporter",
			cfg:     Config{ServiceName: "x", LogExporter: "syslog"},
			wantErr: ErrInvalidExporter,
		},
		{
			name:    "unknown metric exporter",
			cfg:     Config{ServiceName: "x", MetricExporter: "statsd"},
			wantErr: ErrInvalidExporter,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("Validate() = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

// TestNew_ProvidesInstruments verifies a pipeline hands out non-nil
// telemetry primitives.
func TestNew_ProvidesInstruments(t *testing.T) {
	p, err := New(context.Background(), noneConfig())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer p.Shutdown(context.Background())

	if p.Tracer() == nil {
		t.Error("expected non-nil tracer")
	}
	if p.Logger() == nil {
		t.Error("expected non-nil logger")
	}
	if p.Meter() == nil {
		t.Error("expected non-nil meter")
	}
}

// TestPipeline_FlushAndShutdown verifies flush and shutdown succeed on an
// idle pipeline.
func TestPipeline_FlushAndShutdown(t *testing.T) {
	p, err := New(context.Background(), noneConfig())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if err := p.ForceFlush(context.Background()); err != nil {
		t.Errorf("ForceFlush failed: %v", err)
	}
	if err := p.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown failed: %v", err)
	}
}

// TestNew_InvalidConfig verifies construction rejects invalid configs up front.
func TestNew_InvalidConfig(t *testing.T) {
	if _, err := New(context.Background(), Config{}); !errors.Is(err, ErrMissingServiceName) {
		t.Fatalf("New = %v, want ErrMissingServiceName", err)
	}
}

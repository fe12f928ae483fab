package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PULSE_CONFIG", "")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	if cfg.Stream.TickInterval != 5*time.Second || cfg.Stream.LoadDelay != 1500*time.Millisecond {
		t.Fatalf("unexpected stream defaults: %+v", cfg.Stream)
	}
	if cfg.Alerts.AvgDeliveryTimeDays != 3 || cfg.Alerts.OnTimeRatePercent != 90 {
		t.Fatalf("unexpected alert defaults: %+v", cfg.Alerts)
	}
	if cfg.Server.Address != ":50051" {
		t.Fatalf("unexpected address %s", cfg.Server.Address)
	}
}

func TestLoadFileAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pulse.yaml")
	data := []byte(`
server:
  address: ":6000"
stream:
  tickInterval: 2s
  seedPath: /tmp/seed.yaml
charts:
  format: svg
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("PULSE_TICK_INTERVAL", "250ms")
	t.Setenv("PULSE_ALERT_ON_TIME_PERCENT", "92.5")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Address != ":6000" {
		t.Fatalf("file value not applied: %s", cfg.Server.Address)
	}
	if cfg.Stream.TickInterval != 250*time.Millisecond {
		t.Fatalf("env override not applied: %s", cfg.Stream.TickInterval)
	}
	if cfg.Stream.LoadDelay != 1500*time.Millisecond {
		t.Fatalf("unset keys should keep defaults: %s", cfg.Stream.LoadDelay)
	}
	if cfg.Alerts.OnTimeRatePercent != 92.5 || cfg.Charts.Format != "svg" {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := defaultConfig()
	cfg.Stream.TickInterval = 0
	cfg.Charts.Format = "gif"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected validation error")
	}
}

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.App.Name != "proyeccion-ventas" {
		t.Fatalf("app.name = %q", cfg.App.Name)
	}
	if cfg.Ingest.AmountLabel != "VENTAS" {
		t.Fatalf("ingest.amount_label = %q, want VENTAS", cfg.Ingest.AmountLabel)
	}
	if cfg.Ingest.PreviewRows != 15 {
		t.Fatalf("ingest.preview_rows = %d, want 15", cfg.Ingest.PreviewRows)
	}
	if cfg.Forecast.HorizonMonths != 6 || cfg.Forecast.RiskPct != 10.0 {
		t.Fatalf("forecast defaults = %d/%v, want 6/10", cfg.Forecast.HorizonMonths, cfg.Forecast.RiskPct)
	}
	if cfg.Forecast.SeasonalPeriod != 12 {
		t.Fatalf("forecast.seasonal_period = %d, want 12", cfg.Forecast.SeasonalPeriod)
	}
	if cfg.Watch.Interval != 24*time.Hour {
		t.Fatalf("watch.interval = %v, want 24h", cfg.Watch.Interval)
	}
	if cfg.Database.DSN != "" {
		t.Fatalf("database.dsn should default empty, got %q", cfg.Database.DSN)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
ingest:
  default_year: 2026
forecast:
  horizon_months: 12
  risk_pct: 25
watch:
  interval: 1h
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Ingest.DefaultYear != 2026 {
		t.Fatalf("ingest.default_year = %d, want 2026", cfg.Ingest.DefaultYear)
	}
	if cfg.Forecast.HorizonMonths != 12 || cfg.Forecast.RiskPct != 25 {
		t.Fatalf("forecast = %d/%v, want 12/25", cfg.Forecast.HorizonMonths, cfg.Forecast.RiskPct)
	}
	if cfg.Watch.Interval != time.Hour {
		t.Fatalf("watch.interval = %v, want 1h", cfg.Watch.Interval)
	}
	// Untouched keys keep their defaults.
	if cfg.Ingest.AmountLabel != "VENTAS" {
		t.Fatalf("ingest.amount_label = %q, want VENTAS", cfg.Ingest.AmountLabel)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	base := func() *Config {
		cfg, err := Load("")
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		return cfg
	}

	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"year too early", func(c *Config) { c.Ingest.DefaultYear = 2019 }, "default_year"},
		{"year too late", func(c *Config) { c.Ingest.DefaultYear = 2031 }, "default_year"},
		{"empty amount label", func(c *Config) { c.Ingest.AmountLabel = "  " }, "amount_label"},
		{"horizon too short", func(c *Config) { c.Forecast.HorizonMonths = 2 }, "horizon_months"},
		{"horizon too long", func(c *Config) { c.Forecast.HorizonMonths = 25 }, "horizon_months"},
		{"risk below floor", func(c *Config) { c.Forecast.RiskPct = 0.5 }, "risk_pct"},
		{"risk above cap", func(c *Config) { c.Forecast.RiskPct = 51 }, "risk_pct"},
		{"zero interval", func(c *Config) { c.Watch.Interval = 0 }, "interval"},
		{"telegram without token", func(c *Config) {
			c.Alerting.Telegram.Enabled = true
			c.Alerting.Telegram.ChatID = "chat"
		}, "bot_token"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base()
			tc.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate should reject the mutated config")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q should mention %q", err, tc.want)
			}
		})
	}
}

func TestResolveChartPoints(t *testing.T) {
	cfg := &Config{Export: ExportConfig{MaxChartPoints: 600}}
	if got := cfg.ResolveChartPoints(0); got != 600 {
		t.Fatalf("default = %d, want 600", got)
	}
	if got := cfg.ResolveChartPoints(50); got != 50 {
		t.Fatalf("override = %d, want 50", got)
	}
}

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/PauloAguilarSoliz/proyeccion-ventas/internal/logging"
)

// Config materialises application configuration.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Logging  logging.Config `mapstructure:"logging"`
	Ingest   IngestConfig   `mapstructure:"ingest"`
	Forecast ForecastConfig `mapstructure:"forecast"`
	Watch    WatchConfig    `mapstructure:"watch"`
	Alerting AlertingConfig `mapstructure:"alerting"`
	Database DatabaseConfig `mapstructure:"database"`
	Export   ExportConfig   `mapstructure:"export"`
}

// AppConfig general metadata.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
}

// IngestConfig governs workbook harvesting.
type IngestConfig struct {
	DefaultYear int    `mapstructure:"default_year"`
	AmountLabel string `mapstructure:"amount_label"`
	PreviewRows int    `mapstructure:"preview_rows"`
}

// ForecastConfig sets projection defaults.
type ForecastConfig struct {
	HorizonMonths  int     `mapstructure:"horizon_months"`
	RiskPct        float64 `mapstructure:"risk_pct"`
	SeasonalPeriod int     `mapstructure:"seasonal_period"`
}

// WatchConfig drives the periodic re-forecast loop.
type WatchConfig struct {
	InputGlob       string        `mapstructure:"input_glob"`
	Interval        time.Duration `mapstructure:"interval"`
	AlignToBucket   bool          `mapstructure:"align_to_bucket"`
	AdvisoryLockKey int64         `mapstructure:"advisory_lock_key"`
	StartupDelay    time.Duration `mapstructure:"startup_delay"`
}

// AlertingConfig defines forecast-quality alert thresholds and routing.
type AlertingConfig struct {
	Enabled         bool           `mapstructure:"enabled"`
	MinPrecisionPct float64        `mapstructure:"min_precision_pct"`
	Telegram        TelegramConfig `mapstructure:"telegram"`
}

// TelegramConfig describes the Telegram delivery channel.
type TelegramConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	BotToken string `mapstructure:"bot_token"`
	ChatID   string `mapstructure:"chat_id"`
	APIBase  string `mapstructure:"api_base"`
}

// DatabaseConfig encapsulates the optional PostgreSQL run archive.
type DatabaseConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	MigrationsPath  string        `mapstructure:"migrations_path"`
}

// ExportConfig sets CLI export behaviour.
type ExportConfig struct {
	MaxChartPoints int `mapstructure:"max_chart_points"`
}

// Load builds configuration from file, environment, and defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("PROYECCION")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, decodeHook()); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "proyeccion-ventas")
	v.SetDefault("app.environment", "development")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("ingest.default_year", 2024)
	v.SetDefault("ingest.amount_label", "VENTAS")
	v.SetDefault("ingest.preview_rows", 15)

	v.SetDefault("forecast.horizon_months", 6)
	v.SetDefault("forecast.risk_pct", 10.0)
	v.SetDefault("forecast.seasonal_period", 12)

	v.SetDefault("watch.interval", "24h")
	v.SetDefault("watch.align_to_bucket", true)
	v.SetDefault("watch.advisory_lock_key", int64(0x70726f79))
	v.SetDefault("watch.startup_delay", "0s")

	v.SetDefault("alerting.enabled", false)
	v.SetDefault("alerting.min_precision_pct", 80.0)
	v.SetDefault("alerting.telegram.enabled", false)
	v.SetDefault("alerting.telegram.api_base", "https://api.telegram.org")

	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("database.migrations_path", "migrations")

	v.SetDefault("export.max_chart_points", 600)
}

func decodeHook() viper.DecoderConfigOption {
	return func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}
}

// Validate performs basic sanity checks on the configuration values.
func (c *Config) Validate() error {
	if c.Ingest.DefaultYear < 2020 || c.Ingest.DefaultYear > 2030 {
		return fmt.Errorf("ingest.default_year must fall in 2020-2030")
	}
	if strings.TrimSpace(c.Ingest.AmountLabel) == "" {
		return fmt.Errorf("ingest.amount_label must not be empty")
	}
	if c.Ingest.PreviewRows <= 0 {
		return fmt.Errorf("ingest.preview_rows must be greater than zero")
	}
	if c.Forecast.HorizonMonths < 3 || c.Forecast.HorizonMonths > 24 {
		return fmt.Errorf("forecast.horizon_months must fall in 3-24")
	}
	if c.Forecast.RiskPct < 1 || c.Forecast.RiskPct > 50 {
		return fmt.Errorf("forecast.risk_pct must fall in 1-50")
	}
	if c.Forecast.SeasonalPeriod <= 1 {
		return fmt.Errorf("forecast.seasonal_period must be greater than one")
	}
	if c.Watch.Interval <= 0 {
		return fmt.Errorf("watch.interval must be greater than zero")
	}
	if c.Export.MaxChartPoints <= 0 {
		return fmt.Errorf("export.max_chart_points must be greater than zero")
	}
	if c.Alerting.MinPrecisionPct < 0 || c.Alerting.MinPrecisionPct > 100 {
		return fmt.Errorf("alerting.min_precision_pct must fall in 0-100")
	}
	if c.Alerting.Telegram.Enabled {
		if c.Alerting.Telegram.BotToken == "" {
			return fmt.Errorf("alerting.telegram.bot_token is required when telegram is enabled")
		}
		if c.Alerting.Telegram.ChatID == "" {
			return fmt.Errorf("alerting.telegram.chat_id is required when telegram is enabled")
		}
	}
	return nil
}

// ResolveChartPoints returns either the CLI override or config default.
func (c *Config) ResolveChartPoints(override int) int {
	if override > 0 {
		return override
	}
	return c.Export.MaxChartPoints
}

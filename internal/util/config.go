package util

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/DaanHessen/daybreak/internal/engine"
)

// Config holds runtime settings. Environment first, flags override in main.
type Config struct {
	SeedText       string `env:"DAYBREAK_SEED"`
	DSN            string `env:"DATABASE_URL"`
	CatalogDir     string `env:"DAYBREAK_CATALOG_DIR"`
	LogFile        string `env:"DAYBREAK_LOG_FILE"`
	Theme          string `env:"DAYBREAK_THEME" envDefault:"catppuccin"`
	BootstrapEvent string `env:"DAYBREAK_BOOTSTRAP_EVENT" envDefault:"first_morning"`

	StartMoney  float64 `env:"DAYBREAK_START_MONEY" envDefault:"0"`
	StartHealth int     `env:"DAYBREAK_START_HEALTH" envDefault:"100"`
	StartHope   int     `env:"DAYBREAK_START_HOPE" envDefault:"100"`
	StartTrust  int     `env:"DAYBREAK_START_TRUST" envDefault:"50"`

	// DailyCost is charged every morning after the first, e.g. rent or transport.
	DailyCost float64 `env:"DAYBREAK_DAILY_COST" envDefault:"0"`

	RulesVersion string
}

// Load reads Config from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func (c Config) StartingStats() engine.StartingStats {
	return engine.StartingStats{
		Money:          c.StartMoney,
		Health:         c.StartHealth,
		Hope:           c.StartHope,
		CommunityTrust: c.StartTrust,
	}
}

// JournalEnabled reports whether runs should be written to postgres.
func (c Config) JournalEnabled() bool { return c.DSN != "" }

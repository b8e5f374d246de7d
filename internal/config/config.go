package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Player struct {
		ID string `yaml:"id"`
	} `yaml:"player"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Engine struct {
		ClickRateLimit int           `yaml:"click_rate_limit"`
		OfflineCap     time.Duration `yaml:"offline_cap"`
		MaxEarnRate    float64       `yaml:"max_earn_rate"`
	} `yaml:"engine"`
	Schedule struct {
		Tick        time.Duration `yaml:"tick"`
		ClickWindow time.Duration `yaml:"click_window"`
		Spawner     time.Duration `yaml:"spawner"`
		Autosave    time.Duration `yaml:"autosave"`
	} `yaml:"schedule"`
	Spawner struct {
		Disabled     bool          `yaml:"disabled"`
		InitialDelay time.Duration `yaml:"initial_delay"`
		MinDelay     time.Duration `yaml:"min_delay"`
		MaxDelay     time.Duration `yaml:"max_delay"`
		OfferTimeout time.Duration `yaml:"offer_timeout"`
	} `yaml:"spawner"`
	Storage struct {
		Backend     string `yaml:"backend"` // "sqlite", "file" or "memory"
		SQLitePath  string `yaml:"sqlite_path"`
		SaveDir     string `yaml:"save_dir"`
		HistoryPath string `yaml:"history_path"`
	} `yaml:"storage"`
	CatalogFile string `yaml:"catalog_file"`
	Proxy       string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("PLAYER_ID"); v != "" {
		cfg.Player.ID = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("STORAGE_BACKEND"); v != "" {
		cfg.Storage.Backend = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Storage.SQLitePath = v
	}
	if v := os.Getenv("SAVE_DIR"); v != "" {
		cfg.Storage.SaveDir = v
	}
	if v := os.Getenv("HISTORY_PATH"); v != "" {
		cfg.Storage.HistoryPath = v
	}
	if v := os.Getenv("CATALOG_FILE"); v != "" {
		cfg.CatalogFile = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("CLICK_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Engine.ClickRateLimit = n
		}
	}

	// Defaults
	if cfg.Engine.ClickRateLimit == 0 {
		cfg.Engine.ClickRateLimit = 20
	}
	if cfg.Engine.OfflineCap == 0 {
		cfg.Engine.OfflineCap = time.Hour
	}
	if cfg.Engine.MaxEarnRate == 0 {
		cfg.Engine.MaxEarnRate = 1_000_000
	}
	if cfg.Schedule.Tick == 0 {
		cfg.Schedule.Tick = time.Second
	}
	if cfg.Schedule.ClickWindow == 0 {
		cfg.Schedule.ClickWindow = time.Second
	}
	if cfg.Schedule.Spawner == 0 {
		cfg.Schedule.Spawner = time.Second
	}
	if cfg.Schedule.Autosave == 0 {
		cfg.Schedule.Autosave = 10 * time.Second
	}
	if cfg.Spawner.InitialDelay == 0 {
		cfg.Spawner.InitialDelay = 120 * time.Second
	}
	if cfg.Spawner.MinDelay == 0 {
		cfg.Spawner.MinDelay = 120 * time.Second
	}
	if cfg.Spawner.MaxDelay == 0 {
		cfg.Spawner.MaxDelay = 300 * time.Second
	}
	if cfg.Spawner.OfferTimeout == 0 {
		cfg.Spawner.OfferTimeout = 10 * time.Second
	}
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = "sqlite"
	}
	if cfg.Storage.SQLitePath == "" {
		cfg.Storage.SQLitePath = "data/curb_clicker.db"
	}
	if cfg.Storage.SaveDir == "" {
		cfg.Storage.SaveDir = "data/saves"
	}

	return cfg, nil
}

// Validate checks that all values are usable.
func (c *Config) Validate() error {
	if c.Engine.ClickRateLimit <= 0 {
		return fmt.Errorf("engine.click_rate_limit must be positive")
	}
	if c.Engine.OfflineCap < 0 {
		return fmt.Errorf("engine.offline_cap must not be negative")
	}
	if c.Engine.MaxEarnRate <= 0 {
		return fmt.Errorf("engine.max_earn_rate must be positive")
	}
	for name, d := range map[string]time.Duration{
		"schedule.tick":         c.Schedule.Tick,
		"schedule.click_window": c.Schedule.ClickWindow,
		"schedule.spawner":      c.Schedule.Spawner,
		"schedule.autosave":     c.Schedule.Autosave,
	} {
		if d < time.Second {
			return fmt.Errorf("%s must be at least 1s", name)
		}
	}
	if c.Spawner.MinDelay <= 0 || c.Spawner.MaxDelay < c.Spawner.MinDelay {
		return fmt.Errorf("spawner delays must satisfy 0 < min_delay <= max_delay")
	}
	if c.Spawner.OfferTimeout <= 0 {
		return fmt.Errorf("spawner.offer_timeout must be positive")
	}
	switch c.Storage.Backend {
	case "sqlite", "file", "memory":
	default:
		return fmt.Errorf("storage.backend %q is not one of sqlite, file, memory", c.Storage.Backend)
	}
	if c.Telegram.BotToken != "" && c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required when bot_token is set")
	}
	return nil
}

// NotificationsEnabled reports whether a Telegram chat is configured.
func (c *Config) NotificationsEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}

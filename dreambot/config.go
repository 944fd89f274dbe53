package dreambot

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"reflect"

	"github.com/caarlos0/env/v11"
	"github.com/disgoorg/snowflake/v2"
	"github.com/pelletier/go-toml/v2"
)

// LoadConfig reads the TOML file at path and then applies environment overrides.
// A missing file is not an error: the bot can run from the environment alone.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	file, err := os.Open(path)
	switch {
	case err == nil:
		defer file.Close()
		if err = toml.NewDecoder(file).Decode(&cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
		slog.Warn("Config file not found, using environment only", slog.String("path", path))
	default:
		return nil, fmt.Errorf("failed to open config: %w", err)
	}

	if err = ApplyEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyEnv overlays environment variables on top of cfg. Unset variables keep the
// value already present in cfg.
func ApplyEnv(cfg *Config) error {
	opts := env.Options{
		FuncMap: map[reflect.Type]env.ParserFunc{
			reflect.TypeOf(snowflake.ID(0)): func(v string) (any, error) {
				return snowflake.Parse(v)
			},
		},
	}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func DefaultConfig() Config {
	return Config{
		Log: LogConfig{Level: slog.LevelInfo},
		Bot: BotConfig{Prefix: "!"},
		DB: DBConfig{
			Driver:   "postgres",
			Host:     "localhost",
			Port:     5432,
			Database: "dream11",
			PoolSize: 10,
			SSLMode:  "disable",
		},
		Limits: LimitsConfig{
			MaxPointsPerUpdate:   100,
			MaxMatchNumber:       74,
			CommandCooldown:      3,
			MaxCommandsPerMinute: 10,
		},
		Schedule: ScheduleConfig{
			Path:     "IPL_2025_SEASON_SCHEDULE.csv",
			Timezone: "Asia/Kolkata",
		},
		Notifier: NotifierConfig{
			IntervalSeconds: 60,
			LeadMinutes:     30,
			MaxParallel:     5,
		},
	}
}

type Config struct {
	Log      LogConfig      `toml:"log"`
	Bot      BotConfig      `toml:"bot"`
	DB       DBConfig       `toml:"db"`
	Limits   LimitsConfig   `toml:"limits"`
	Schedule ScheduleConfig `toml:"schedule"`
	Notifier NotifierConfig `toml:"notifier"`
	Archive  ArchiveConfig  `toml:"archive"`
	Web      WebConfig      `toml:"web"`
}

// Validate reports every missing required setting keyed by its environment name.
func (c Config) Validate() map[string]string {
	problems := map[string]string{}
	if c.Bot.Token == "" {
		problems["DISCORD_TOKEN"] = "Discord token is required"
	}
	if len(c.Bot.Admins) == 0 {
		problems["ADMIN_USER_IDS"] = "At least one admin user ID is required"
	}
	if c.Limits.MaxPointsPerUpdate <= 0 {
		problems["MAX_POINTS_PER_UPDATE"] = "must be positive"
	}
	if c.Limits.MaxMatchNumber <= 0 {
		problems["MAX_MATCH_NUMBER"] = "must be positive"
	}
	return problems
}

type BotConfig struct {
	DevGuilds []snowflake.ID `toml:"dev_guilds" env:"DEV_GUILD_IDS" envSeparator:","`
	Token     string         `toml:"token" env:"DISCORD_TOKEN"`
	Admins    []snowflake.ID `toml:"admins" env:"ADMIN_USER_IDS" envSeparator:","`
	Prefix    string         `toml:"prefix" env:"COMMAND_PREFIX"`
}

type LogConfig struct {
	Level     slog.Level `toml:"level" env:"LOG_LEVEL"`
	AddSource bool       `toml:"add_source" env:"LOG_ADD_SOURCE"`
}

func (c LogConfig) HandlerOptions() *slog.HandlerOptions {
	return &slog.HandlerOptions{Level: c.Level, AddSource: c.AddSource}
}

type DBConfig struct {
	Driver      string `toml:"driver" env:"DB_DRIVER"`
	Path        string `toml:"path" env:"DB_PATH"`
	Host        string `toml:"host" env:"DB_HOST"`
	Port        int    `toml:"port" env:"DB_PORT"`
	User        string `toml:"user" env:"DB_USER"`
	Password    string `toml:"password" env:"DB_PASSWORD"`
	Database    string `toml:"database" env:"DB_NAME"`
	SSLMode     string `toml:"ssl_mode" env:"DB_SSLMODE"`
	PoolSize    int    `toml:"pool_size" env:"DB_POOL_SIZE"`
	MinConns    int    `toml:"min_conns" env:"DB_MIN_CONNS"`
	MaxLifetime int    `toml:"max_lifetime" env:"DB_MAX_LIFETIME"`
}

type LimitsConfig struct {
	MaxPointsPerUpdate   int `toml:"max_points_per_update" env:"MAX_POINTS_PER_UPDATE"`
	MaxMatchNumber       int `toml:"max_match_number" env:"MAX_MATCH_NUMBER"`
	CommandCooldown      int `toml:"command_cooldown" env:"COMMAND_COOLDOWN"`
	MaxCommandsPerMinute int `toml:"max_commands_per_minute" env:"MAX_COMMANDS_PER_MINUTE"`
}

type ScheduleConfig struct {
	Path     string `toml:"path" env:"SCHEDULE_PATH"`
	Timezone string `toml:"timezone" env:"SCHEDULE_TZ"`
}

type NotifierConfig struct {
	Enabled         bool `toml:"enabled" env:"ALERTS_ENABLED"`
	IntervalSeconds int  `toml:"interval_seconds" env:"ALERTS_INTERVAL"`
	LeadMinutes     int  `toml:"lead_minutes" env:"ALERTS_LEAD_MINUTES"`
	MaxParallel     int  `toml:"max_parallel" env:"ALERTS_MAX_PARALLEL"`
}

type ArchiveConfig struct {
	Key    string `toml:"key" env:"SPACES_KEY"`
	Secret string `toml:"secret" env:"SPACES_SECRET"`
	Region string `toml:"region" env:"SPACES_REGION"`
	Bucket string `toml:"bucket" env:"SPACES_BUCKET"`
	Prefix string `toml:"prefix" env:"SPACES_PREFIX"`
}

// Enabled reports whether enough settings are present to reach the bucket.
func (a ArchiveConfig) Enabled() bool {
	return a.Key != "" && a.Secret != "" && a.Region != "" && a.Bucket != ""
}

type WebConfig struct {
	Addr string `toml:"addr" env:"WEB_ADDR"`
}

package dreambot

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/prd11/dream11-bot/dreambot/archive"
	"github.com/prd11/dream11-bot/dreambot/database"
	"github.com/prd11/dream11-bot/dreambot/database/repositories"
	"github.com/prd11/dream11-bot/dreambot/ledger"
	"github.com/prd11/dream11-bot/dreambot/schedule"
)

func (c DBConfig) Options() database.DBConfig {
	return database.DBConfig{
		Driver:      c.Driver,
		Path:        c.Path,
		Host:        c.Host,
		Port:        c.Port,
		User:        c.User,
		Password:    c.Password,
		Database:    c.Database,
		SSLMode:     c.SSLMode,
		PoolSize:    c.PoolSize,
		MinConns:    c.MinConns,
		MaxLifetime: c.MaxLifetime,
	}
}

// Location loads the schedule time zone, UTC when unset.
func (c ScheduleConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// OpenDatabase connects with cfg and makes sure the schema is in place.
func OpenDatabase(ctx context.Context, cfg DBConfig) (*database.DB, error) {
	start := time.Now()
	db, err := database.New(ctx, cfg.Options())
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	slog.Info("Database connected successfully",
		slog.String("type", "sys"),
		slog.String("driver", cfg.Driver),
		slog.Duration("took", time.Since(start)))

	if err = db.InitializeSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database schema: %w", err)
	}
	return db, nil
}

// NewLedger builds the points service on db, archiving to Spaces when
// credentials are configured.
func NewLedger(ctx context.Context, cfg Config, db *database.DB) (*ledger.Service, error) {
	svc := ledger.NewService(
		repositories.NewLedgerRepository(db.BunDB()),
		ledger.Limits{
			MaxPointsPerUpdate: int64(cfg.Limits.MaxPointsPerUpdate),
			MaxMatchNumber:     cfg.Limits.MaxMatchNumber,
		},
	)

	if !cfg.Archive.Enabled() {
		slog.Info("Season archive disabled", slog.String("type", "sys"))
		return svc, nil
	}
	spaces, err := archive.NewSpaces(ctx,
		cfg.Archive.Key,
		cfg.Archive.Secret,
		cfg.Archive.Region,
		cfg.Archive.Bucket,
		cfg.Archive.Prefix,
	)
	if err != nil {
		return nil, err
	}
	svc.SetArchiver(spaces)
	slog.Info("Season archive enabled",
		slog.String("type", "sys"),
		slog.String("bucket", spaces.Bucket()))
	return svc, nil
}

// LoadSchedule reads the fixture list configured in cfg.
func LoadSchedule(cfg ScheduleConfig) (*schedule.Schedule, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	return schedule.Load(cfg.Path, loc)
}

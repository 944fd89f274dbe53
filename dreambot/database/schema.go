package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/prd11/dream11-bot/dreambot/database/models"
)

const schemaVersion = 1 // bump when schema changes

// AppTables lists every table the bot owns, children first.
var AppTables = []string{"match_results", "history", "points", "user_alerts"}

var indexes = []string{
	"CREATE INDEX IF NOT EXISTS idx_user_alerts_user_id ON user_alerts(user_id)",
	"CREATE INDEX IF NOT EXISTS idx_user_alerts_enabled ON user_alerts(enabled)",
	"CREATE INDEX IF NOT EXISTS idx_history_username ON history(username)",
	"CREATE INDEX IF NOT EXISTS idx_history_match_number ON history(match_number)",
	"CREATE INDEX IF NOT EXISTS idx_history_created_at ON history(created_at)",
	"CREATE INDEX IF NOT EXISTS idx_match_results_winner ON match_results(winner)",
}

const updatedAtFunction = `
CREATE OR REPLACE FUNCTION update_updated_at_column()
RETURNS TRIGGER AS $$
BEGIN
	NEW.updated_at = now();
	RETURN NEW;
END;
$$ LANGUAGE plpgsql`

// timestamped tables get the before-update trigger
var timestampedTables = []string{"user_alerts", "points"}

// Owner-only policies. app.user_id is set per transaction by the repositories;
// app.service_role is only set by the service identity.
var alertPolicies = []string{
	"ALTER TABLE user_alerts ENABLE ROW LEVEL SECURITY",
	"ALTER TABLE user_alerts FORCE ROW LEVEL SECURITY",
	"DROP POLICY IF EXISTS user_alerts_select_own ON user_alerts",
	"DROP POLICY IF EXISTS user_alerts_update_own ON user_alerts",
	"DROP POLICY IF EXISTS user_alerts_insert_own ON user_alerts",
	`CREATE POLICY user_alerts_select_own ON user_alerts FOR SELECT
		USING (` + ownerPredicate + `)`,
	`CREATE POLICY user_alerts_update_own ON user_alerts FOR UPDATE
		USING (` + ownerPredicate + `) WITH CHECK (` + ownerPredicate + `)`,
	`CREATE POLICY user_alerts_insert_own ON user_alerts FOR INSERT
		WITH CHECK (` + ownerPredicate + `)`,
}

const ownerPredicate = `current_setting('app.service_role', true) = 'on'
		OR user_id = NULLIF(current_setting('app.user_id', true), '')::bigint`

// InitializeSchema creates all required tables, triggers, policies and indexes.
// It is safe to run on every start.
func (db *DB) InitializeSchema(ctx context.Context) error {
	if os.Getenv("DB_FAST_INIT") == "1" {
		if err := db.ensureAppMeta(ctx); err == nil {
			if v, _ := db.getAppMeta(ctx, "schema_version"); v == strconv.Itoa(schemaVersion) {
				slog.Info("Fast DB init: schema up-to-date, skipping initialization",
					slog.Int("schema_version", schemaVersion))
				return nil
			}
		}
	}

	tables := []any{
		(*models.UserAlert)(nil),
		(*models.PointTotal)(nil),
		(*models.HistoryEntry)(nil),
		(*models.MatchResult)(nil),
	}
	for _, model := range tables {
		if _, err := db.bunDB.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	if db.IsPostgres() {
		if err := db.initializePostgres(ctx); err != nil {
			return err
		}
	}

	for _, idx := range indexes {
		if _, err := db.ExecWithLog(ctx, idx); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	if err := db.ensureAppMeta(ctx); err != nil {
		return fmt.Errorf("failed to create app_meta: %w", err)
	}
	return db.setAppMeta(ctx, "schema_version", strconv.Itoa(schemaVersion))
}

func (db *DB) initializePostgres(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, updatedAtFunction); err != nil {
		return fmt.Errorf("failed to create updated_at function: %w", err)
	}
	for _, table := range timestampedTables {
		trigger := "update_" + table + "_updated_at"
		stmts := []string{
			fmt.Sprintf("DROP TRIGGER IF EXISTS %s ON %s", trigger, table),
			fmt.Sprintf("CREATE TRIGGER %s BEFORE UPDATE ON %s FOR EACH ROW EXECUTE FUNCTION update_updated_at_column()", trigger, table),
		}
		for _, stmt := range stmts {
			if _, err := db.pool.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("failed to install trigger on %s: %w", table, err)
			}
		}
	}
	for _, stmt := range alertPolicies {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply row level security: %w", err)
		}
	}
	return nil
}

// ResetAppTables removes every row the bot owns.
func (db *DB) ResetAppTables(ctx context.Context) error {
	if db.IsPostgres() {
		stmt := "TRUNCATE TABLE " + joinIdentifiers(AppTables) + " RESTART IDENTITY CASCADE"
		if _, err := db.ExecWithLog(ctx, stmt); err != nil {
			return fmt.Errorf("failed to truncate tables: %w", err)
		}
	} else {
		for _, table := range AppTables {
			if _, err := db.ExecWithLog(ctx, "DELETE FROM "+quoteIdentifier(table)); err != nil {
				return fmt.Errorf("failed to clear %s: %w", table, err)
			}
		}
	}

	slog.Info("App tables reset", slog.String("type", "db"), slog.Any("tables", AppTables))
	return nil
}

func joinIdentifiers(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = quoteIdentifier(n)
	}
	return strings.Join(quoted, ", ")
}

func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func (db *DB) ensureAppMeta(ctx context.Context) error {
	_, err := db.ExecWithLog(ctx, `CREATE TABLE IF NOT EXISTS app_meta (key TEXT PRIMARY KEY, value TEXT)`)
	return err
}

func (db *DB) getAppMeta(ctx context.Context, key string) (string, error) {
	var v string
	err := db.bunDB.QueryRowContext(ctx, `SELECT value FROM app_meta WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return v, err
}

func (db *DB) setAppMeta(ctx context.Context, key, value string) error {
	_, err := db.ExecWithLog(ctx,
		`INSERT INTO app_meta (key, value) VALUES (?, ?) ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
		key, value)
	return err
}

// SchemaVersion returns the version recorded by the last successful InitializeSchema.
func (db *DB) SchemaVersion(ctx context.Context) (string, error) {
	return db.getAppMeta(ctx, "schema_version")
}

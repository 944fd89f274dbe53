package repositories

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prd11/dream11-bot/dreambot/access"
	"github.com/prd11/dream11-bot/dreambot/database"
	"github.com/prd11/dream11-bot/dreambot/database/models"
	"github.com/uptrace/bun"
)

// postgresDSNEnv points the Postgres tests at a disposable database. Its app
// tables are emptied before and after each test.
const postgresDSNEnv = "DREAMBOT_TEST_POSTGRES_DSN"

const rlsTestRole = "dreambot_rls_test"

func openPostgresTestDB(t *testing.T) *database.DB {
	t.Helper()
	dsn := os.Getenv(postgresDSNEnv)
	if dsn == "" {
		t.Skipf("%s not set", postgresDSNEnv)
	}

	pc, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		t.Fatalf("parse %s: %v", postgresDSNEnv, err)
	}
	sslMode := "disable"
	if pc.ConnConfig.TLSConfig != nil {
		sslMode = "require"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	db, err := database.New(ctx, database.DBConfig{
		Driver:   database.DriverPostgres,
		Host:     pc.ConnConfig.Host,
		Port:     int(pc.ConnConfig.Port),
		User:     pc.ConnConfig.User,
		Password: pc.ConnConfig.Password,
		Database: pc.ConnConfig.Database,
		SSLMode:  sslMode,
		PoolSize: 2,
	})
	if err != nil {
		t.Fatalf("database.New() error = %v", err)
	}
	if err := db.InitializeSchema(ctx); err != nil {
		db.Close()
		t.Fatalf("InitializeSchema() error = %v", err)
	}
	if err := db.ResetAppTables(ctx); err != nil {
		db.Close()
		t.Fatalf("ResetAppTables() error = %v", err)
	}
	t.Cleanup(func() {
		_ = db.ResetAppTables(context.Background())
		db.Close()
	})
	return db
}

// asMember runs fn in a transaction bound to userID the way the repositories
// bind callers. Superusers bypass row level security, so they switch to an
// unprivileged role first.
func asMember(t *testing.T, db *bun.DB, userID snowflake.ID, fn func(ctx context.Context, tx bun.Tx) error) error {
	t.Helper()
	ctx := context.Background()

	var super bool
	if err := db.QueryRowContext(ctx, "SELECT rolsuper FROM pg_roles WHERE rolname = current_user").Scan(&super); err != nil {
		t.Fatalf("read role: %v", err)
	}
	if super {
		stmts := []string{
			`DO $$ BEGIN
				IF NOT EXISTS (SELECT FROM pg_roles WHERE rolname = '` + rlsTestRole + `') THEN
					CREATE ROLE ` + rlsTestRole + ` NOLOGIN;
				END IF;
			END $$`,
			"GRANT SELECT, INSERT, UPDATE ON user_alerts TO " + rlsTestRole,
		}
		for _, stmt := range stmts {
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				t.Fatalf("prepare %s: %v", rlsTestRole, err)
			}
		}
	}

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		t.Fatalf("BeginTx() error = %v", err)
	}
	defer tx.Rollback()

	if super {
		if _, err := tx.ExecContext(ctx, "SET LOCAL ROLE "+rlsTestRole); err != nil {
			t.Fatalf("set role: %v", err)
		}
	}
	repo := &alertRepository{BaseRepository: NewBaseRepository(db)}
	if err := repo.bindCaller(ctx, tx, access.Member(userID)); err != nil {
		t.Fatalf("bindCaller() error = %v", err)
	}
	return fn(ctx, tx)
}

func TestPostgresAlertRepositoryRoundTrip(t *testing.T) {
	db := openPostgresTestDB(t)
	ctx := context.Background()
	repo := NewAlertRepository(db.BunDB())
	const alice, bob = snowflake.ID(7001), snowflake.ID(7002)

	if _, err := repo.Upsert(ctx, access.Member(alice), alice, true); err != nil {
		t.Fatalf("Upsert(alice) error = %v", err)
	}
	if err := repo.Insert(ctx, access.Member(bob), &models.UserAlert{UserID: int64(bob)}); err != nil {
		t.Fatalf("Insert(bob) error = %v", err)
	}
	if err := repo.Insert(ctx, access.Member(bob), &models.UserAlert{UserID: int64(bob)}); !IsConflict(err) {
		t.Errorf("duplicate Insert(bob) error = %v, want conflict", err)
	}

	got, err := repo.Get(ctx, access.Member(alice), alice)
	if err != nil {
		t.Fatalf("Get(alice) error = %v", err)
	}
	if !got.Enabled {
		t.Error("alice should have alerts enabled")
	}

	ids, err := repo.ListEnabled(ctx, access.Service)
	if err != nil {
		t.Fatalf("ListEnabled() error = %v", err)
	}
	if len(ids) != 1 || ids[0] != alice {
		t.Errorf("ListEnabled() = %v, want [%v]", ids, alice)
	}
}

func TestPostgresUpdatedAtTrigger(t *testing.T) {
	db := openPostgresTestDB(t)
	ctx := context.Background()
	repo := NewAlertRepository(db.BunDB())
	const user = snowflake.ID(7101)

	if _, err := repo.Upsert(ctx, access.Member(user), user, false); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	// the trigger overrides whatever updated_at the statement writes
	err := asMember(t, db.BunDB(), user, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.ExecContext(ctx,
			"UPDATE user_alerts SET updated_at = '2000-01-01T00:00:00Z' WHERE user_id = ?", int64(user)); err != nil {
			return err
		}
		return tx.Commit()
	})
	if err != nil {
		t.Fatalf("raw update error = %v", err)
	}

	got, err := repo.Get(ctx, access.Member(user), user)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.UpdatedAt.Year() <= 2000 {
		t.Errorf("updated_at = %v, trigger did not rewrite it", got.UpdatedAt)
	}
}

func TestPostgresRowLevelSecurity(t *testing.T) {
	db := openPostgresTestDB(t)
	ctx := context.Background()
	repo := NewAlertRepository(db.BunDB())
	const alice, bob, carol = snowflake.ID(7201), snowflake.ID(7202), snowflake.ID(7203)

	for _, id := range []snowflake.ID{alice, bob} {
		if _, err := repo.Upsert(ctx, access.Member(id), id, false); err != nil {
			t.Fatalf("Upsert(%v) error = %v", id, err)
		}
	}

	t.Run("reads only own row", func(t *testing.T) {
		err := asMember(t, db.BunDB(), alice, func(ctx context.Context, tx bun.Tx) error {
			var n int
			if err := tx.QueryRowContext(ctx, "SELECT count(*) FROM user_alerts").Scan(&n); err != nil {
				return err
			}
			if n != 1 {
				t.Errorf("alice sees %d rows, want 1", n)
			}
			return nil
		})
		if err != nil {
			t.Fatal(err)
		}
	})

	t.Run("cannot update another row", func(t *testing.T) {
		err := asMember(t, db.BunDB(), alice, func(ctx context.Context, tx bun.Tx) error {
			res, err := tx.ExecContext(ctx, "UPDATE user_alerts SET enabled = TRUE WHERE user_id = ?", int64(bob))
			if err != nil {
				return err
			}
			if n, _ := res.RowsAffected(); n != 0 {
				t.Errorf("alice updated %d of bob's rows", n)
			}
			return nil
		})
		if err != nil {
			t.Fatal(err)
		}
	})

	t.Run("cannot insert for another member", func(t *testing.T) {
		err := asMember(t, db.BunDB(), alice, func(ctx context.Context, tx bun.Tx) error {
			_, err := tx.ExecContext(ctx,
				"INSERT INTO user_alerts (user_id, enabled, created_at, updated_at) VALUES (?, FALSE, now(), now())",
				int64(carol))
			return err
		})
		if err == nil {
			t.Error("insert for carol as alice succeeded")
		}
	})

	got, err := repo.Get(ctx, access.Member(bob), bob)
	if err != nil {
		t.Fatalf("Get(bob) error = %v", err)
	}
	if got.Enabled {
		t.Error("bob's preference changed through alice")
	}
}

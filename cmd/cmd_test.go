package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prd11/dream11-bot/dreambot"
	"github.com/prd11/dream11-bot/dreambot/database/repositories"
	"github.com/prd11/dream11-bot/dreambot/ledger"
)

func writeConfig(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "bot.db")
	cfgPath := filepath.Join(dir, "config.toml")
	body := "[db]\ndriver = \"sqlite\"\npath = \"" + filepath.ToSlash(dbPath) + "\"\n"
	if err := os.WriteFile(cfgPath, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return cfgPath, dbPath
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetConfirmed = false
	archiveOut = ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func seed(t *testing.T, cfgPath string) {
	t.Helper()
	ctx := context.Background()
	cfg, err := dreambot.LoadConfig(cfgPath)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	db, err := dreambot.OpenDatabase(ctx, cfg.DB)
	if err != nil {
		t.Fatalf("OpenDatabase() error = %v", err)
	}
	defer db.Close()

	repo := repositories.NewLedgerRepository(db.BunDB())
	by := repositories.Actor{Name: "admin", ID: 1}
	if _, err := repo.RecordWin(ctx, "rahul", 1, by); err != nil {
		t.Fatalf("RecordWin() error = %v", err)
	}
	if _, err := repo.Adjust(ctx, "priya", 4, by); err != nil {
		t.Fatalf("Adjust() error = %v", err)
	}
}

func TestResetRequiresConfirmation(t *testing.T) {
	cfgPath, dbPath := writeConfig(t)

	_, err := run(t, "reset", "--config", cfgPath)
	if err == nil || !strings.Contains(err.Error(), "--yes") {
		t.Fatalf("reset error = %v, want confirmation error", err)
	}
	if _, statErr := os.Stat(dbPath); !os.IsNotExist(statErr) {
		t.Errorf("database touched before confirmation: %v", statErr)
	}
}

func TestLeaderboardCommand(t *testing.T) {
	cfgPath, _ := writeConfig(t)

	if _, err := run(t, "migrate", "--config", cfgPath); err != nil {
		t.Fatalf("migrate error = %v", err)
	}
	out, err := run(t, "leaderboard", "--config", cfgPath)
	if err != nil {
		t.Fatalf("leaderboard error = %v", err)
	}
	if !strings.Contains(out, "No points recorded yet!") {
		t.Errorf("empty leaderboard output = %q", out)
	}

	seed(t, cfgPath)
	out, err = run(t, "leaderboard", "--config", cfgPath)
	if err != nil {
		t.Fatalf("leaderboard error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("leaderboard lines = %q", lines)
	}
	if !strings.Contains(lines[1], "priya") || !strings.Contains(lines[2], "rahul") {
		t.Errorf("leaderboard order = %q", lines)
	}
}

func TestArchiveToFile(t *testing.T) {
	cfgPath, _ := writeConfig(t)
	seed(t, cfgPath)

	outPath := filepath.Join(t.TempDir(), "snap.json")
	if _, err := run(t, "archive", "--config", cfgPath, "--out", outPath); err != nil {
		t.Fatalf("archive error = %v", err)
	}

	body, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	var snap ledger.Snapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		t.Fatalf("unmarshal snapshot: %v", err)
	}
	if len(snap.Standings) != 2 || len(snap.Results) != 1 {
		t.Errorf("snapshot = %+v", snap)
	}
}

func TestArchiveWithoutSettings(t *testing.T) {
	cfgPath, _ := writeConfig(t)

	_, err := run(t, "archive", "--config", cfgPath)
	if err == nil || !strings.Contains(err.Error(), "archive settings") {
		t.Errorf("archive error = %v, want missing settings", err)
	}
}

func TestResetClearsTables(t *testing.T) {
	cfgPath, _ := writeConfig(t)
	seed(t, cfgPath)

	out, err := run(t, "reset", "--config", cfgPath, "--yes")
	if err != nil {
		t.Fatalf("reset error = %v", err)
	}
	if !strings.Contains(out, "reset") {
		t.Errorf("reset output = %q", out)
	}

	out, err = run(t, "leaderboard", "--config", cfgPath)
	if err != nil {
		t.Fatalf("leaderboard error = %v", err)
	}
	if !strings.Contains(out, "No points recorded yet!") {
		t.Errorf("leaderboard after reset = %q", out)
	}
}
